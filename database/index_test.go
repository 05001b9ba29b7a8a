package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeIndexType(t *testing.T) {
	database := initDB(t)

	vectorsDbHandler, err := NewVectorsDBHandler(database, 3, true)
	require.NoError(t, err, "Expected NewVectorsDBHandler to not return an error")

	indexType := func(t *testing.T) string {
		var indexDef string
		err := database.Instance.QueryRow(
			`SELECT indexdef FROM pg_indexes WHERE indexname = 'idx_vector_chunks_embedding';`,
		).Scan(&indexDef)
		require.NoError(t, err)
		return indexDef
	}

	t.Run("Switch to IVFFlat", func(t *testing.T) {
		err := vectorsDbHandler.ChangeIndexType(context.Background(), "ivfflat", map[string]interface{}{"lists": 10})
		assert.NoError(t, err)
		assert.Contains(t, indexType(t), "ivfflat")
	})

	t.Run("Switch back to HNSW with params", func(t *testing.T) {
		err := vectorsDbHandler.ChangeIndexType(context.Background(), "hnsw", map[string]interface{}{"m": 8, "ef_construction": 32})
		assert.NoError(t, err)
		assert.Contains(t, indexType(t), "hnsw")
	})

	t.Run("Unsupported index type", func(t *testing.T) {
		err := vectorsDbHandler.ChangeIndexType(context.Background(), "btree", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported index type")
	})
}
