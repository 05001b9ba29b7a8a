package model

// Category is the handling bucket a question is routed to.
type Category string

const (
	CategoryDatabase Category = "database"
	CategoryTabular  Category = "tabular"
	CategorySchema   Category = "schema"
	CategoryGeneral  Category = "general"
)

// DefaultCategory is returned when no classification pattern matches.
const DefaultCategory = CategoryGeneral

// Categories returns all categories in priority order. Classification
// tie-breaks resolve to the earliest category in this order, so the
// order is part of the classifier contract.
func Categories() []Category {
	return []Category{
		CategoryDatabase,
		CategoryTabular,
		CategorySchema,
		CategoryGeneral,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDatabase, CategoryTabular, CategorySchema, CategoryGeneral:
		return true
	}
	return false
}
