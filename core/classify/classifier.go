package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
)

// compiledPatterns holds one category's compiled regex list
type compiledPatterns struct {
	category model.Category
	patterns []*regexp.Regexp
}

// Classifier assigns a question to a handling category by weighted
// pattern scoring. Classification is a pure function of the question
// text and the pattern table; a Classifier is safe for concurrent use.
type Classifier struct {
	table []compiledPatterns
}

// NewClassifier compiles a pattern table into a classifier. Malformed
// patterns, unknown categories and empty tables are construction-time
// errors, never silently coerced.
func NewClassifier(table []CategoryPatterns) (*Classifier, error) {
	if len(table) == 0 {
		return nil, helper.NewError("compile pattern table", fmt.Errorf("pattern table is empty"))
	}

	compiled := make([]compiledPatterns, 0, len(table))
	for _, entry := range table {
		if !entry.Category.Valid() {
			return nil, helper.NewError("compile pattern table", fmt.Errorf("unknown category %q", entry.Category))
		}
		cp := compiledPatterns{category: entry.Category}
		for _, pattern := range entry.Patterns {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, helper.NewError("compile pattern table", fmt.Errorf("pattern %q for category %v: %w", pattern, entry.Category, err))
			}
			cp.patterns = append(cp.patterns, re)
		}
		compiled = append(compiled, cp)
	}

	return &Classifier{table: compiled}, nil
}

// DefaultClassifier creates a classifier with the built-in vocabulary
func DefaultClassifier() (*Classifier, error) {
	return NewClassifier(DefaultPatternTable())
}

// Classify scores the question against every category and returns the
// highest-scoring one. Each pattern contributes the count of its
// non-overlapping matches in the lower-cased question. Ties resolve to
// the earliest category in table order; if nothing matches at all, the
// default category is returned.
func (c *Classifier) Classify(question string) model.Category {
	questionLower := strings.ToLower(question)

	best := model.DefaultCategory
	bestScore := 0
	for _, entry := range c.table {
		score := 0
		for _, re := range entry.patterns {
			score += len(re.FindAllStringIndex(questionLower, -1))
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
		}
	}

	return best
}

// Scores returns the per-category match counts for a question, in
// table order. Useful for diagnostics; Classify is derived from it.
func (c *Classifier) Scores(question string) map[model.Category]int {
	questionLower := strings.ToLower(question)

	scores := make(map[model.Category]int, len(c.table))
	for _, entry := range c.table {
		score := 0
		for _, re := range entry.patterns {
			score += len(re.FindAllStringIndex(questionLower, -1))
		}
		scores[entry.category] = score
	}

	return scores
}
