package lingua_test

import (
	"testing"

	"github.com/ZOUBAIRELFADILI/scraper-service/lingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	d := lingua.NewDetector()

	t.Run("detects english", func(t *testing.T) {
		t.Parallel()

		code, err := d.Detect("The harbour expansion project will take five years to complete and cost several hundred million dollars according to the latest estimates.")

		require.NoError(t, err)
		assert.Equal(t, "en", code)
	})

	t.Run("detects french", func(t *testing.T) {
		t.Parallel()

		code, err := d.Detect("Le conseil municipal a approuvé mardi un nouveau plan de transport qui ajoutera trois couloirs de bus au cours des cinq prochaines années.")

		require.NoError(t, err)
		assert.Equal(t, "fr", code)
	})
}
