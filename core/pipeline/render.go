package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/averoth/datachat/model"
)

const (
	maxSummarizedColumns = 3
	maxDistinctValues    = 3
	maxSampleRows        = 2
	maxSampleColumns     = 5
)

// renderChunkText builds the human-readable summary for the rows in
// [startRow, endRow): column names, statistics for the first numeric
// columns, distinct samples for the first categorical columns, and the
// literal first rows. A column whose statistics cannot be computed is
// recorded with a placeholder instead of aborting the render.
func renderChunkText(dataset *model.Dataset, startRow, endRow int) string {
	var parts []string

	parts = append(parts, "Columns: "+strings.Join(dataset.ColumnNames(), ", "))

	numericColumns := dataset.ColumnsOfType(model.ColumnNumeric)
	if len(numericColumns) > 0 {
		parts = append(parts, "Numeric statistics:")
		for _, col := range limitColumns(numericColumns) {
			parts = append(parts, renderNumericColumn(dataset, col, startRow, endRow))
		}
	}

	categoricalColumns := dataset.ColumnsOfType(model.ColumnCategorical)
	if len(categoricalColumns) > 0 {
		parts = append(parts, "Categorical data:")
		for _, col := range limitColumns(categoricalColumns) {
			parts = append(parts, renderCategoricalColumn(dataset, col, startRow, endRow))
		}
	}

	parts = append(parts, "Sample data:")
	parts = append(parts, renderSampleRows(dataset, startRow, endRow)...)

	return strings.Join(parts, "\n")
}

func limitColumns(columns []int) []int {
	if len(columns) > maxSummarizedColumns {
		return columns[:maxSummarizedColumns]
	}
	return columns
}

// renderNumericColumn renders mean/min/max rounded to 2 decimal places.
// Coercion failures degrade to a placeholder marker, never an error.
func renderNumericColumn(dataset *model.Dataset, col, startRow, endRow int) string {
	name := dataset.Columns[col].Name

	mean, min, max, err := numericStats(dataset, col, startRow, endRow)
	if err != nil {
		return fmt.Sprintf("  %v: numeric column", name)
	}

	return fmt.Sprintf("  %v: mean=%.2f, min=%.2f, max=%.2f", name, mean, min, max)
}

func numericStats(dataset *model.Dataset, col, startRow, endRow int) (mean, min, max float64, err error) {
	count := 0
	sum := 0.0
	for row := startRow; row < endRow; row++ {
		value, parseErr := strconv.ParseFloat(strings.TrimSpace(dataset.Rows[row][col]), 64)
		if parseErr != nil {
			return 0, 0, 0, parseErr
		}
		if count == 0 || value < min {
			min = value
		}
		if count == 0 || value > max {
			max = value
		}
		sum += value
		count++
	}
	if count == 0 {
		return 0, 0, 0, fmt.Errorf("no values in column")
	}
	return sum / float64(count), min, max, nil
}

// renderCategoricalColumn lists the first distinct observed values in
// first-seen order within the chunk.
func renderCategoricalColumn(dataset *model.Dataset, col, startRow, endRow int) string {
	name := dataset.Columns[col].Name

	seen := make(map[string]bool)
	var distinct []string
	for row := startRow; row < endRow && len(distinct) < maxDistinctValues; row++ {
		value := dataset.Rows[row][col]
		if !seen[value] {
			seen[value] = true
			distinct = append(distinct, value)
		}
	}

	return fmt.Sprintf("  %v: %v", name, strings.Join(distinct, ", "))
}

// renderSampleRows renders the literal first rows of the chunk,
// truncated to the first columns.
func renderSampleRows(dataset *model.Dataset, startRow, endRow int) []string {
	names := dataset.ColumnNames()
	if len(names) > maxSampleColumns {
		names = names[:maxSampleColumns]
	}

	lines := []string{strings.Join(names, " | ")}
	for row := startRow; row < endRow && row < startRow+maxSampleRows; row++ {
		cells := dataset.Rows[row]
		if len(cells) > maxSampleColumns {
			cells = cells[:maxSampleColumns]
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	return lines
}
