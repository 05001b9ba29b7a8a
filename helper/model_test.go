package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareModel(t *testing.T) {
	t.Run("Returns existing model path without download", func(t *testing.T) {
		tmpDir := t.TempDir()
		oldWd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		defer func() {
			require.NoError(t, os.Chdir(oldWd))
		}()

		// Pre-create the cached model directory so no download happens
		modelPath := filepath.Join("models", "sentence-transformers_all-MiniLM-L6-v2")
		require.NoError(t, os.MkdirAll(modelPath, 0755))

		path, err := PrepareModel("sentence-transformers/all-MiniLM-L6-v2")

		require.NoError(t, err)
		assert.Equal(t, modelPath, path)
	})
}

func TestNewError(t *testing.T) {
	t.Run("Wraps the underlying error", func(t *testing.T) {
		underlying := os.ErrNotExist

		err := NewError("open index", underlying)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open index")
		assert.ErrorIs(t, err, underlying)
	})
}
