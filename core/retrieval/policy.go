package retrieval

import (
	"strings"
)

// maxDirectTokens is the question length above which keyword-free
// questions still get retrieval augmentation.
const maxDirectTokens = 6

// DefaultTriggerWords returns the analytical vocabulary whose presence
// in a question makes retrieval augmentation worthwhile.
func DefaultTriggerWords() []string {
	return []string{
		"analyze", "pattern", "trend", "correlation", "insight", "relationship",
		"compare", "similarity", "difference", "context", "explain", "why",
		"how", "tell me about", "understand", "explore", "investigate",
	}
}

// Policy decides, per question, whether retrieval augmentation should
// be applied. It is a two-tier heuristic: an analytical trigger word
// dominates; question length is the fallback for longer, keyword-free
// questions presumed to need more context.
type Policy struct {
	triggerWords []string
}

// NewPolicy creates a policy with the given trigger vocabulary;
// an empty vocabulary falls back to the default one.
func NewPolicy(triggerWords []string) *Policy {
	if len(triggerWords) == 0 {
		triggerWords = DefaultTriggerWords()
	}
	return &Policy{triggerWords: triggerWords}
}

// ShouldAugment reports whether the question warrants retrieval
// augmentation
func (p *Policy) ShouldAugment(question string) bool {
	questionLower := strings.ToLower(question)

	for _, word := range p.triggerWords {
		if strings.Contains(questionLower, word) {
			return true
		}
	}

	return len(strings.Fields(question)) > maxDirectTokens
}
