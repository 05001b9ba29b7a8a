package model

// RetrievalResult represents a chunk retrieved by a query. Results are
// transient: produced fresh per retrieval call, ordered by descending
// score with ties resolved by ascending chunk ID.
type RetrievalResult struct {
	Content string  `json:"content"`          // the chunk's rendered text
	Score   float64 `json:"score"`            // keyword-overlap count or cosine similarity
	ChunkID int     `json:"chunk_id"`         // source chunk within the index
	Source  string  `json:"source,omitempty"` // data source label for citation
}
