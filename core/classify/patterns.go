package classify

import "github.com/averoth/datachat/model"

// CategoryPatterns pairs a category with its raw regex patterns.
// Pattern tables are ordered: earlier categories win score ties, so
// the declaration order is part of the classification contract.
type CategoryPatterns struct {
	Category model.Category
	Patterns []string
}

// DefaultPatternTable returns the built-in classification vocabulary.
// Patterns are word-boundary-anchored and matched against the
// lower-cased question.
func DefaultPatternTable() []CategoryPatterns {
	return []CategoryPatterns{
		{
			Category: model.CategoryDatabase,
			Patterns: []string{
				`\b(sql|query|table|database|schema|select|insert|update|delete|join)\b`,
				`\b(show\s+tables|describe|explain)\b`,
				`\b(primary\s+key|foreign\s+key|index|constraint)\b`,
			},
		},
		{
			Category: model.CategoryTabular,
			Patterns: []string{
				`\b(csv|data|dataset|file|average|mean|sum|total|count|distribution)\b`,
				`\b(columns?|rows?|records?|fields?)\b`,
				`\b(correlation|relationship|analysis|statistics)\b`,
			},
		},
		{
			Category: model.CategorySchema,
			Patterns: []string{
				`\b(schema|structure|tables?|columns?|fields?)\b`,
				`\b(what\s+(tables|columns|fields))\b`,
				`\b(show\s+me\s+the\s+structure)\b`,
			},
		},
		{
			Category: model.CategoryGeneral,
			Patterns: []string{
				`\b(hello|hi|help|what|how|can\s+you)\b`,
			},
		},
	}
}
