// Package rag composes retrieval, context assembly and delegation to an
// externally supplied answer function into augmented answers.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/averoth/datachat/core/retrieval"
	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
)

// AnswerFunc produces the final natural-language answer for a possibly
// augmented query. It is supplied by the host; this package never
// generates answer content itself.
type AnswerFunc func(ctx context.Context, query, contextText string) (string, error)

// Status is a read-only snapshot of the orchestrator for diagnostics
type Status struct {
	Backend            string `json:"backend"`
	IndexedChunks      int    `json:"indexed_chunks"`
	ConversationLength int    `json:"conversation_length"`
}

const contextHeader = "=== Relevant Tabular Data ==="

const enhancedQueryTemplate = `Based on the following relevant context, please answer the user's question comprehensively:

Context:
%v

User Question: %v

Please provide a detailed answer based on the context above. Reference specific data points when relevant.
`

// Orchestrator builds context-augmented answers. All call-time failures
// in the augmented path degrade to an unaugmented answer; no error from
// retrieval or context assembly ever reaches the caller.
type Orchestrator struct {
	engine   *retrieval.Engine
	config   model.QueryConfig
	log      *slog.Logger
	strategy retrieval.Strategy

	mu      sync.Mutex
	history []model.ConversationRecord
}

// NewOrchestrator creates an orchestrator over the given retrieval
// strategy, failing fast on an invalid config.
func NewOrchestrator(strategy retrieval.Strategy, engine *retrieval.Engine, config model.QueryConfig, logger *slog.Logger) (*Orchestrator, error) {
	if strategy == nil {
		return nil, helper.NewError("create orchestrator", fmt.Errorf("retrieval strategy is nil"))
	}
	if engine == nil {
		return nil, helper.NewError("create orchestrator", fmt.Errorf("retrieval engine is nil"))
	}
	if err := config.Validate(); err != nil {
		return nil, helper.NewError("validate query config", err)
	}
	return &Orchestrator{
		engine:   engine,
		config:   config,
		log:      logger,
		strategy: strategy,
	}, nil
}

// SetStrategy switches the retrieval backend. The keyword and embedding
// backends share the same contract, so the swap is transparent.
func (o *Orchestrator) SetStrategy(strategy retrieval.Strategy) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.strategy = strategy
}

func (o *Orchestrator) currentStrategy() retrieval.Strategy {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.strategy
}

// GenerateResponse answers the query with retrieval augmentation. On any
// failure along the augmented path it falls back to calling answerFn
// with the unmodified query and no context; only a failure of that
// fallback call itself is returned to the caller.
func (o *Orchestrator) GenerateResponse(ctx context.Context, query string, answerFn AnswerFunc) (string, error) {
	if answerFn == nil {
		return "", helper.NewError("generate response", fmt.Errorf("answer function is nil"))
	}

	response, err := o.augmentedResponse(ctx, query, answerFn)
	if err != nil {
		o.log.Warn(fmt.Sprintf("Augmented answer failed, falling back to direct answer: %v", err))
		return answerFn(ctx, query, "")
	}

	return response, nil
}

// augmentedResponse runs the full RAG path: retrieve, assemble context,
// delegate, cite, record.
func (o *Orchestrator) augmentedResponse(ctx context.Context, query string, answerFn AnswerFunc) (string, error) {
	strategy := o.currentStrategy()

	config := o.config
	config.TopK = o.config.ContextResults
	results, err := strategy.Retrieve(ctx, query, &config)
	if err != nil {
		return "", err
	}

	fullContext, sources := o.buildContext(results)

	enhancedQuery := query
	if fullContext != "" {
		enhancedQuery = fmt.Sprintf(enhancedQueryTemplate, fullContext, query)
	}

	response, err := answerFn(ctx, enhancedQuery, fullContext)
	if err != nil {
		return "", err
	}

	if len(sources) > 0 {
		response += fmt.Sprintf("\n\n📊 *Based on: %v* (%v retrieval)", strings.Join(sources, ", "), strategy.Backend())
	}

	o.appendHistory(query, response, sources)

	return response, nil
}

// buildContext assembles the context block from retrieved excerpts and
// collects the source labels for citation. Each excerpt is truncated to
// the excerpt limit and the whole block to the context limit.
func (o *Orchestrator) buildContext(results []*model.RetrievalResult) (string, []string) {
	if len(results) == 0 {
		return "", nil
	}

	parts := []string{contextHeader}
	seen := make(map[string]bool)
	var sources []string
	for _, result := range results {
		excerpt := truncate(result.Content, o.config.ExcerptLimit)
		parts = append(parts, fmt.Sprintf("Data: %v...", excerpt))

		label := "tabular data"
		if result.Source != "" {
			label = result.Source + " data"
		}
		if !seen[label] {
			seen[label] = true
			sources = append(sources, label)
		}
	}

	fullContext := strings.Join(parts, "\n")
	if len(fullContext) > o.config.ContextLimit {
		fullContext = truncate(fullContext, o.config.ContextLimit) + "..."
	}

	return fullContext, sources
}

// truncate cuts s to at most limit bytes, backing up to the previous
// rune boundary so a multibyte rune is never split.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

func (o *Orchestrator) appendHistory(query, response string, sources []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = append(o.history, model.NewConversationRecord(query, response, sources))
}

// History returns a copy of the conversation records accumulated so
// far. The history is append-only and unbounded; hosts that need
// eviction persist or trim the copy themselves.
func (o *Orchestrator) History() []model.ConversationRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	history := make([]model.ConversationRecord, len(o.history))
	copy(history, o.history)
	return history
}

// Status reports the active retrieval backend and the current index
// and history sizes.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Status{
		Backend:            o.strategy.Backend(),
		IndexedChunks:      o.engine.NumChunks(),
		ConversationLength: len(o.history),
	}
}
