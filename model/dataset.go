package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ColumnType distinguishes how a column is summarized during indexing
type ColumnType string

const (
	ColumnNumeric     ColumnType = "numeric"
	ColumnCategorical ColumnType = "categorical"
)

// Column describes one named, typed column of a dataset
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Dataset is an in-memory tabular structure with ordered rows and typed columns.
// Rows hold cell values as strings; numeric columns are parsed at render time.
type Dataset struct {
	RID       uuid.UUID  `json:"rid"`
	Name      string     `json:"name"`
	Columns   []Column   `json:"columns"`
	Rows      [][]string `json:"rows"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewDataset creates a dataset and validates that every row matches the
// column count. A dataset with zero rows is valid.
func NewDataset(name string, columns []Column, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("dataset %v needs at least one column", name)
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %v has %v cells, expected %v", i, len(row), len(columns))
		}
	}
	return &Dataset{
		RID:       uuid.New(),
		Name:      name,
		Columns:   columns,
		Rows:      rows,
		CreatedAt: time.Now(),
	}, nil
}

// NumRows returns the number of rows in the dataset
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// ColumnNames returns the ordered column names
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// ColumnsOfType returns the columns of the given type in source order
func (d *Dataset) ColumnsOfType(columnType ColumnType) []int {
	var indices []int
	for i, col := range d.Columns {
		if col.Type == columnType {
			indices = append(indices, i)
		}
	}
	return indices
}
