package route

import (
	"context"
	"strings"
)

type cannedResponse struct {
	Keyword  string
	Response string
}

// defaultCannedResponses are matched against the question in order, so
// a question containing several keywords gets the first one's answer.
func defaultCannedResponses() []cannedResponse {
	return []cannedResponse{
		{
			Keyword:  "hello",
			Response: "Hello! I'm your database and CSV analysis assistant. How can I help you today?",
		},
		{
			Keyword:  "help",
			Response: "I can help you with:\n• Database queries and schema exploration\n• CSV data analysis and insights\n• Generating SQL queries from natural language\n• Statistical analysis and data visualization",
		},
		{
			Keyword:  "what can you do",
			Response: "I can analyze databases, process CSV files, generate SQL queries, and provide data insights.",
		},
		{
			Keyword:  "how to use",
			Response: "Simply ask me questions about your data! For example:\n• 'What tables are in the database?'\n• 'Show me the total sales'\n• 'Generate a query to find top customers'",
		},
	}
}

const defaultGeneralFallback = "I'm here to help with database queries and CSV analysis. What would you like to know about your data?"

// GeneralHandler answers small-talk and capability questions from a
// fixed keyword table and hands everything else to an optional
// fallback handler.
type GeneralHandler struct {
	responses []cannedResponse
	fallback  Handler
}

// NewGeneralHandler creates a general handler. The fallback handles
// questions no canned response matches and may be nil, in which case a
// static hint is returned instead.
func NewGeneralHandler(fallback Handler) *GeneralHandler {
	return &GeneralHandler{
		responses: defaultCannedResponses(),
		fallback:  fallback,
	}
}

// Handle returns the first canned response whose keyword occurs in the
// question, ignoring case and trailing punctuation.
func (h *GeneralHandler) Handle(ctx context.Context, question string) (string, error) {
	cleaned := strings.Trim(strings.ToLower(question), "?!., ")

	for _, canned := range h.responses {
		if strings.Contains(cleaned, canned.Keyword) {
			return canned.Response, nil
		}
	}

	if h.fallback != nil {
		return h.fallback.Handle(ctx, question)
	}

	return defaultGeneralFallback, nil
}
