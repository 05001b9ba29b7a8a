package retrieval

import (
	"context"

	"github.com/averoth/datachat/core/pipeline"
	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
)

// Strategy defines a retrieval backend. The orchestrator is agnostic to
// which backend serves it; both the keyword and the embedding backend
// satisfy the same contract.
type Strategy interface {
	Retrieve(ctx context.Context, query string, config *model.QueryConfig) ([]*model.RetrievalResult, error)
	Backend() string
}

// KeywordStrategy retrieves by deterministic keyword overlap against
// the engine's in-memory index.
type KeywordStrategy struct {
	engine *Engine
}

// NewKeywordStrategy creates a keyword strategy over the engine
func NewKeywordStrategy(engine *Engine) *KeywordStrategy {
	return &KeywordStrategy{engine: engine}
}

// Retrieve performs keyword retrieval; it never fails
func (s *KeywordStrategy) Retrieve(ctx context.Context, query string, config *model.QueryConfig) ([]*model.RetrievalResult, error) {
	return s.engine.KeywordRetrieve(query, config.TopK), nil
}

// Backend names the backend for status reporting
func (s *KeywordStrategy) Backend() string {
	return "keyword"
}

// VectorSearcher selects stored chunks by embedding similarity.
// Implemented by the database vectors handler.
type VectorSearcher interface {
	SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*model.RetrievalResult, error)
}

// VectorStrategy retrieves by embedding similarity from a vector store.
// This is the advanced backend behind the same contract as the keyword
// strategy.
type VectorStrategy struct {
	searcher VectorSearcher
	embedder pipeline.EmbedFunc
}

// NewVectorStrategy creates a vector strategy from a searcher and an
// embedding function
func NewVectorStrategy(searcher VectorSearcher, embedder pipeline.EmbedFunc) *VectorStrategy {
	return &VectorStrategy{
		searcher: searcher,
		embedder: embedder,
	}
}

// Retrieve embeds the query and selects the most similar stored chunks
func (s *VectorStrategy) Retrieve(ctx context.Context, query string, config *model.QueryConfig) ([]*model.RetrievalResult, error) {
	embedding, err := s.embedder(query)
	if err != nil {
		return nil, helper.NewError("embed query", err)
	}

	results, err := s.searcher.SelectChunksBySimilarity(ctx, embedding, config.TopK, config.SimilarityThreshold)
	if err != nil {
		return nil, helper.NewError("similarity search", err)
	}

	return results, nil
}

// Backend names the backend for status reporting
func (s *VectorStrategy) Backend() string {
	return "embedding"
}
