// Package scraper provides resilient article extraction from arbitrary web
// pages. A batch of seed URLs is fanned out concurrently; each URL is
// classified as a single article or a listing page, listing pages are
// harvested for a bounded set of article links, and every article URL runs
// through an ordered chain of independent extraction strategies until one
// yields usable content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., trafilatura/, rod/, sqlite/), with
// orchestration in pipeline/.
package scraper
