package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/averoth/datachat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	results []*model.RetrievalResult
	err     error

	gotEmbedding []float32
	gotLimit     int
}

func (f *fakeSearcher) SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*model.RetrievalResult, error) {
	f.gotEmbedding = embedding
	f.gotLimit = limit
	return f.results, f.err
}

func TestKeywordStrategy(t *testing.T) {
	t.Run("Retrieves through the engine", func(t *testing.T) {
		engine := NewEngine()
		engine.SetIndex(testIndex("total sales by region"))
		strategy := NewKeywordStrategy(engine)
		config := model.DefaultQueryConfig()

		results, err := strategy.Retrieve(context.Background(), "total sales", &config)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 2.0, results[0].Score)
	})

	t.Run("Backend label", func(t *testing.T) {
		strategy := NewKeywordStrategy(NewEngine())

		assert.Equal(t, "keyword", strategy.Backend())
	})

	t.Run("Empty engine yields empty results without error", func(t *testing.T) {
		strategy := NewKeywordStrategy(NewEngine())
		config := model.DefaultQueryConfig()

		results, err := strategy.Retrieve(context.Background(), "total", &config)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestVectorStrategy(t *testing.T) {
	t.Run("Embeds the query and delegates to the searcher", func(t *testing.T) {
		searcher := &fakeSearcher{
			results: []*model.RetrievalResult{
				{Content: "chunk text", Score: 0.92, ChunkID: 3},
			},
		}
		embedder := func(text string) ([]float32, error) {
			return []float32{0.1, 0.2, 0.3}, nil
		}
		strategy := NewVectorStrategy(searcher, embedder)
		config := model.DefaultQueryConfig()

		results, err := strategy.Retrieve(context.Background(), "sales trends", &config)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, 0.92, results[0].Score)
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, searcher.gotEmbedding)
		assert.Equal(t, config.TopK, searcher.gotLimit)
	})

	t.Run("Embedding failure surfaces as error", func(t *testing.T) {
		strategy := NewVectorStrategy(&fakeSearcher{}, func(text string) ([]float32, error) {
			return nil, errors.New("model not loaded")
		})
		config := model.DefaultQueryConfig()

		_, err := strategy.Retrieve(context.Background(), "sales", &config)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "embed query")
	})

	t.Run("Searcher failure surfaces as error", func(t *testing.T) {
		searcher := &fakeSearcher{err: errors.New("connection refused")}
		strategy := NewVectorStrategy(searcher, func(text string) ([]float32, error) {
			return []float32{1}, nil
		})
		config := model.DefaultQueryConfig()

		_, err := strategy.Retrieve(context.Background(), "sales", &config)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "similarity search")
	})

	t.Run("Backend label", func(t *testing.T) {
		strategy := NewVectorStrategy(&fakeSearcher{}, nil)

		assert.Equal(t, "embedding", strategy.Backend())
	})
}
