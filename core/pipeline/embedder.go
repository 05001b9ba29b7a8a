package pipeline

import (
	"fmt"

	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
	"github.com/knights-analytics/hugot"
)

// DefaultEmbedder creates an embedder using a real sentence transformer
// model. Uses all-MiniLM-L6-v2, which produces 384-dimensional embeddings.
func DefaultEmbedder() (EmbedFunc, error) {
	modelName := "sentence-transformers/all-MiniLM-L6-v2"
	modelPath, err := helper.PrepareModel(modelName)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	return func(text string) ([]float32, error) {
		result, err := sentencePipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to generate embedding: %w", err)
		}

		if len(result.Embeddings) == 0 {
			return nil, fmt.Errorf("no embedding generated")
		}

		return result.Embeddings[0], nil
	}, nil
}

// EmbedIndex generates one embedding per chunk of the index, in chunk
// order. Used when loading an index into the embedding backend.
func EmbedIndex(index *model.Index, embedder EmbedFunc) ([][]float32, error) {
	embeddings := make([][]float32, 0, index.NumChunks())
	for _, chunk := range index.Chunks {
		embedding, err := embedder(chunk.Text)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("embed chunk %v", chunk.ID), err)
		}
		embeddings = append(embeddings, embedding)
	}
	return embeddings, nil
}
