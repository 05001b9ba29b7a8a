package model

import (
	"time"

	"github.com/google/uuid"
)

// ConversationRecord is one entry of the append-only RAG history.
// Records are never updated or removed once appended.
type ConversationRecord struct {
	ID        uuid.UUID `json:"id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewConversationRecord creates a record for a completed exchange
func NewConversationRecord(query, response string, sources []string) ConversationRecord {
	return ConversationRecord{
		ID:        uuid.New(),
		Query:     query,
		Response:  response,
		Sources:   sources,
		CreatedAt: time.Now(),
	}
}
