package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
	loadSql "github.com/averoth/datachat/sql"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// VectorsDBHandlerFunctions defines the interface for vector store database operations.
type VectorsDBHandlerFunctions interface {
	InsertChunk(datasetRID uuid.UUID, datasetName string, chunk *model.Chunk, embedding []float32) (*StoredChunk, error)
	SelectChunk(id int) (*StoredChunk, error)
	SelectChunksByDataset(datasetRID uuid.UUID) ([]*StoredChunk, error)
	SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*model.RetrievalResult, error)
	ReplaceDataset(ctx context.Context, index *model.Index, embeddings [][]float32) error
	DeleteDataset(datasetRID uuid.UUID) (int, error)
	CountChunks() (int, error)
}

// StoredChunk is one row of the vector_chunks table.
type StoredChunk struct {
	ID          int
	DatasetRID  uuid.UUID
	DatasetName string
	ChunkID     int
	StartRow    int
	EndRow      int
	RowCount    int
	Content     string
	Embedding   []float32
	CreatedAt   time.Time
}

// VectorsDBHandler handles chunk embedding storage and similarity search
type VectorsDBHandler struct {
	db *helper.Database
}

// NewVectorsDBHandler creates a new vector store database handler.
// It initializes the database connection and loads the vector SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewVectorsDBHandler(db *helper.Database, embeddingDim int, force bool) (*VectorsDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	vectorsDbHandler := &VectorsDBHandler{
		db: db,
	}

	err := loadSql.LoadVectorsSql(vectorsDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load vectors sql", err)
	}

	err = vectorsDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized VectorsDBHandler")

	return vectorsDbHandler, nil
}

// CreateTable creates the 'vector_chunks' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary extensions and indexes.
func (h *VectorsDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_vectors($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing vector_chunks table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table vector_chunks")

	return nil
}

// InsertChunk inserts one chunk with its embedding
func (h *VectorsDBHandler) InsertChunk(datasetRID uuid.UUID, datasetName string, chunk *model.Chunk, embedding []float32) (*StoredChunk, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_vector_chunk($1, $2, $3, $4, $5, $6, $7, $8)`,
		datasetRID,
		datasetName,
		chunk.ID,
		chunk.StartRow,
		chunk.EndRow,
		chunk.RowCount,
		chunk.Text,
		pgvector.NewVector(embedding),
	)

	stored, err := scanStoredChunk(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return stored, nil
}

// SelectChunk retrieves a stored chunk by row ID
func (h *VectorsDBHandler) SelectChunk(id int) (*StoredChunk, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_vector_chunk($1)`,
		id,
	)

	stored, err := scanStoredChunk(row)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return stored, nil
}

// SelectChunksByDataset retrieves all stored chunks of a dataset in chunk order
func (h *VectorsDBHandler) SelectChunksByDataset(datasetRID uuid.UUID) ([]*StoredChunk, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_chunks_by_dataset($1)`,
		datasetRID,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*StoredChunk
	for rows.Next() {
		stored, err := scanStoredChunk(rows)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		chunks = append(chunks, stored)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

// SelectChunksBySimilarity performs cosine similarity search over all
// stored chunks and returns retrieval results ordered by similarity.
func (h *VectorsDBHandler) SelectChunksBySimilarity(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*model.RetrievalResult, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_chunks_by_similarity($1, $2, $3)`,
		pgvector.NewVector(embedding),
		limit,
		threshold,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.RetrievalResult
	for rows.Next() {
		result := &model.RetrievalResult{}
		err := rows.Scan(
			&result.Content,
			&result.ChunkID,
			&result.Source,
			&result.Score,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, result)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// ReplaceDataset replaces all stored chunks of the indexed dataset in a
// single transaction. embeddings must hold one vector per index chunk.
func (h *VectorsDBHandler) ReplaceDataset(ctx context.Context, index *model.Index, embeddings [][]float32) error {
	if index == nil {
		return helper.NewError("replace dataset", fmt.Errorf("index is nil"))
	}
	if len(embeddings) != len(index.Chunks) {
		return helper.NewError("replace dataset", fmt.Errorf("embedding count %v does not match chunk count %v", len(embeddings), len(index.Chunks)))
	}

	tx, err := h.db.Instance.BeginTx(ctx, nil)
	if err != nil {
		return helper.NewError("begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT delete_dataset_chunks($1)`, index.DatasetRID)
	if err != nil {
		return helper.NewError("delete dataset chunks", err)
	}

	for i, chunk := range index.Chunks {
		_, err = tx.ExecContext(
			ctx,
			`SELECT * FROM insert_vector_chunk($1, $2, $3, $4, $5, $6, $7, $8)`,
			index.DatasetRID,
			index.DatasetName,
			chunk.ID,
			chunk.StartRow,
			chunk.EndRow,
			chunk.RowCount,
			chunk.Text,
			pgvector.NewVector(embeddings[i]),
		)
		if err != nil {
			return helper.NewError("insert chunk", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return helper.NewError("commit transaction", err)
	}

	h.db.Logger.Info(fmt.Sprintf("Replaced dataset %v with %v chunks", index.DatasetName, len(index.Chunks)))

	return nil
}

// DeleteDataset deletes all stored chunks of a dataset and returns the
// number of deleted rows
func (h *VectorsDBHandler) DeleteDataset(datasetRID uuid.UUID) (int, error) {
	var deleted int
	err := h.db.Instance.QueryRow(
		`SELECT delete_dataset_chunks($1)`,
		datasetRID,
	).Scan(&deleted)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return deleted, nil
}

// CountChunks returns the total number of stored chunks
func (h *VectorsDBHandler) CountChunks() (int, error) {
	var count int
	err := h.db.Instance.QueryRow(`SELECT count_vector_chunks()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoredChunk(row rowScanner) (*StoredChunk, error) {
	stored := &StoredChunk{}
	var embedding pgvector.Vector

	err := row.Scan(
		&stored.ID,
		&stored.DatasetRID,
		&stored.DatasetName,
		&stored.ChunkID,
		&stored.StartRow,
		&stored.EndRow,
		&stored.RowCount,
		&stored.Content,
		&embedding,
		&stored.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored.Embedding = embedding.Slice()
	return stored, nil
}
