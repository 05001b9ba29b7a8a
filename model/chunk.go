package model

import (
	"github.com/google/uuid"
)

// Chunk represents one contiguous slice of dataset rows with its
// precomputed text summary. Chunks are created at index time and
// immutable afterwards.
type Chunk struct {
	ID       int      `json:"id"`        // 0-based, in row order
	StartRow int      `json:"start_row"` // inclusive
	EndRow   int      `json:"end_row"`   // exclusive
	RowCount int      `json:"row_count"`
	Columns  []string `json:"columns"`
	Text     string   `json:"text"` // rendered summary used for retrieval
}

// Index owns the ordered chunk sequence for exactly one dataset.
// Chunk IDs are contiguous integers starting at 0 and the row ranges
// partition [0, totalRows) without gaps or overlap. Re-indexing replaces
// the whole Index, never individual chunks.
type Index struct {
	DatasetRID  uuid.UUID `json:"dataset_rid"`
	DatasetName string    `json:"dataset_name"`
	Chunks      []Chunk   `json:"chunks"`
}

// NumChunks returns the number of chunks in the index
func (i *Index) NumChunks() int {
	if i == nil {
		return 0
	}
	return len(i.Chunks)
}
