package model

import "fmt"

// IndexConfig represents configuration for dataset indexing
type IndexConfig struct {
	// ChunkSize is the number of rows per chunk; the final chunk may
	// hold fewer rows (the remainder), never zero.
	ChunkSize int `json:"chunk_size"`
}

// DefaultIndexConfig returns a sensible default configuration
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		ChunkSize: 20,
	}
}

// Validate checks the configuration, failing fast on invalid values
func (c *IndexConfig) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %v", c.ChunkSize)
	}
	return nil
}

// QueryConfig represents configuration for a retrieval query
type QueryConfig struct {
	// TopK limits how many results a retrieval call returns.
	TopK int `json:"top_k"`
	// ContextResults is how many results the orchestrator folds
	// into the augmented prompt.
	ContextResults int `json:"context_results"`
	// ExcerptLimit caps each retrieved excerpt in characters.
	ExcerptLimit int `json:"excerpt_limit"`
	// ContextLimit caps the assembled context block in characters.
	ContextLimit int `json:"context_limit"`
	// SimilarityThreshold applies to the embedding backend only.
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`
}

// DefaultQueryConfig returns a sensible default configuration
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TopK:                3,
		ContextResults:      2,
		ExcerptLimit:        400,
		ContextLimit:        2000,
		SimilarityThreshold: 0.0,
	}
}

// Validate checks the configuration, failing fast on invalid values
func (c *QueryConfig) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top k must be positive, got %v", c.TopK)
	}
	if c.ContextResults <= 0 {
		return fmt.Errorf("context results must be positive, got %v", c.ContextResults)
	}
	if c.ExcerptLimit <= 0 {
		return fmt.Errorf("excerpt limit must be positive, got %v", c.ExcerptLimit)
	}
	if c.ContextLimit <= 0 {
		return fmt.Errorf("context limit must be positive, got %v", c.ContextLimit)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be between 0 and 1, got %v", c.SimilarityThreshold)
	}
	return nil
}
