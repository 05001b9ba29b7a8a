package retrieval

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/averoth/datachat/model"
)

// minTokenLength filters stop-word-like query tokens by length only;
// there is no stemming and no stop-word list.
const minTokenLength = 3

// Engine holds the single current index and scores its chunks against
// queries by keyword overlap. The index lives in one atomic slot:
// re-indexing swaps it wholesale, so concurrent readers always observe
// either the old or the new index, never a partially-rebuilt one.
type Engine struct {
	index atomic.Pointer[model.Index]
}

// NewEngine creates an engine with no index loaded
func NewEngine() *Engine {
	return &Engine{}
}

// SetIndex replaces the current index wholesale. There is no merge or
// append mode; passing nil clears the engine.
func (e *Engine) SetIndex(index *model.Index) {
	e.index.Store(index)
}

// Snapshot returns the currently loaded index, or nil
func (e *Engine) Snapshot() *model.Index {
	return e.index.Load()
}

// NumChunks returns the chunk count of the current index
func (e *Engine) NumChunks() int {
	return e.index.Load().NumChunks()
}

// KeywordRetrieve scores every chunk of the current index against the
// query and returns at most topK results in descending score order.
// The query is lower-cased and split on whitespace; tokens shorter than
// three characters are discarded. Each remaining token, duplicates
// included, adds one point to every chunk whose rendered text contains
// it as a substring. Zero-score chunks are excluded; score ties keep
// chunk order. An empty index or an empty token set yields an empty
// result, not an error.
func (e *Engine) KeywordRetrieve(query string, topK int) []*model.RetrievalResult {
	index := e.index.Load()
	if index.NumChunks() == 0 {
		return nil
	}

	var tokens []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len(token) >= minTokenLength {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var results []*model.RetrievalResult
	for i := range index.Chunks {
		chunk := &index.Chunks[i]
		chunkText := strings.ToLower(chunk.Text)

		score := 0
		for _, token := range tokens {
			if strings.Contains(chunkText, token) {
				score++
			}
		}
		if score == 0 {
			continue
		}

		results = append(results, &model.RetrievalResult{
			Content: chunk.Text,
			Score:   float64(score),
			ChunkID: chunk.ID,
			Source:  index.DatasetName,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results
}
