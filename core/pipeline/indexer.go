package pipeline

import (
	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
)

// Indexer splits a tabular dataset into fixed-size row chunks and
// renders each chunk into a descriptive text summary.
type Indexer struct {
	config model.IndexConfig
}

// NewIndexer creates an indexer, failing fast on an invalid config
func NewIndexer(config model.IndexConfig) (*Indexer, error) {
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("validate index config", err)
	}
	return &Indexer{config: config}, nil
}

// DefaultIndexer creates an indexer with the default chunk size of 20
func DefaultIndexer() *Indexer {
	indexer, _ := NewIndexer(model.DefaultIndexConfig())
	return indexer
}

// Index partitions the dataset's rows in order into chunks of exactly
// ChunkSize rows each, except possibly the last which holds the
// remainder. An empty dataset yields an index with zero chunks, never
// an error. Chunk IDs are contiguous from 0 and the row ranges
// partition [0, totalRows) without overlap.
func (i *Indexer) Index(dataset *model.Dataset) *model.Index {
	index := &model.Index{
		DatasetRID:  dataset.RID,
		DatasetName: dataset.Name,
	}

	totalRows := dataset.NumRows()
	chunkSize := i.config.ChunkSize
	columns := dataset.ColumnNames()

	for start := 0; start < totalRows; start += chunkSize {
		end := start + chunkSize
		if end > totalRows {
			end = totalRows
		}

		index.Chunks = append(index.Chunks, model.Chunk{
			ID:       start / chunkSize,
			StartRow: start,
			EndRow:   end,
			RowCount: end - start,
			Columns:  columns,
			Text:     renderChunkText(dataset, start, end),
		})
	}

	return index
}
