// Package route dispatches classified questions to per-category
// handlers supplied by the host.
package route

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/averoth/datachat/core/classify"
	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
)

// Handler answers questions of one category. Handler internals are the
// host's concern; database, analytics and schema handlers all plug in
// through this interface.
type Handler interface {
	Handle(ctx context.Context, question string) (string, error)
}

// HandlerFunc adapts a plain function to a Handler
type HandlerFunc func(ctx context.Context, question string) (string, error)

// Handle calls the wrapped function
func (f HandlerFunc) Handle(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// Dispatcher classifies a question and delegates it to the handler
// registered for the resulting category. Categories without a handler
// fall back to the general handler.
type Dispatcher struct {
	classifier *classify.Classifier
	handlers   map[model.Category]Handler
	log        *slog.Logger
}

// NewDispatcher creates a dispatcher. A general handler is required so
// that every question has somewhere to go.
func NewDispatcher(classifier *classify.Classifier, handlers map[model.Category]Handler, logger *slog.Logger) (*Dispatcher, error) {
	if classifier == nil {
		return nil, helper.NewError("create dispatcher", fmt.Errorf("classifier is nil"))
	}
	if handlers[model.CategoryGeneral] == nil {
		return nil, helper.NewError("create dispatcher", fmt.Errorf("no handler registered for category %v", model.CategoryGeneral))
	}
	for category := range handlers {
		if !category.Valid() {
			return nil, helper.NewError("create dispatcher", fmt.Errorf("unknown category %q", category))
		}
	}

	return &Dispatcher{
		classifier: classifier,
		handlers:   handlers,
		log:        logger,
	}, nil
}

// Dispatch classifies the question and delegates to the matching
// handler, returning the handler's answer and the category it was
// routed to.
func (d *Dispatcher) Dispatch(ctx context.Context, question string) (string, model.Category, error) {
	category := d.classifier.Classify(question)

	handler, ok := d.handlers[category]
	if !ok {
		d.log.Debug(fmt.Sprintf("No handler for category %v, using general handler", category))
		handler = d.handlers[model.CategoryGeneral]
	}

	answer, err := handler.Handle(ctx, question)
	if err != nil {
		return "", category, helper.NewError(fmt.Sprintf("handle %v question", category), err)
	}

	return answer, category, nil
}
