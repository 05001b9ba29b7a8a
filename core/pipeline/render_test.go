package pipeline

import (
	"strings"
	"testing"

	"github.com/averoth/datachat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChunkText(t *testing.T) {
	t.Run("Numeric statistics rounded to two decimals", func(t *testing.T) {
		columns := []model.Column{
			{Name: "amount", Type: model.ColumnNumeric},
		}
		rows := [][]string{{"10"}, {"20"}, {"33"}}
		dataset, err := model.NewDataset("sales", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 3)

		assert.Contains(t, text, "Numeric statistics:")
		assert.Contains(t, text, "amount: mean=21.00, min=10.00, max=33.00")
	})

	t.Run("Numeric coercion failure degrades to placeholder", func(t *testing.T) {
		columns := []model.Column{
			{Name: "amount", Type: model.ColumnNumeric},
		}
		rows := [][]string{{"10"}, {"not-a-number"}}
		dataset, err := model.NewDataset("sales", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 2)

		assert.Contains(t, text, "amount: numeric column")
		assert.NotContains(t, text, "mean=")
	})

	t.Run("Only first three numeric columns are summarized", func(t *testing.T) {
		columns := []model.Column{
			{Name: "n1", Type: model.ColumnNumeric},
			{Name: "n2", Type: model.ColumnNumeric},
			{Name: "n3", Type: model.ColumnNumeric},
			{Name: "n4", Type: model.ColumnNumeric},
		}
		rows := [][]string{{"1", "2", "3", "4"}}
		dataset, err := model.NewDataset("wide", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 1)

		assert.Contains(t, text, "n3: mean=")
		assert.NotContains(t, text, "n4: mean=")
	})

	t.Run("Categorical columns list first three distinct values in first-seen order", func(t *testing.T) {
		columns := []model.Column{
			{Name: "region", Type: model.ColumnCategorical},
		}
		rows := [][]string{{"north"}, {"south"}, {"north"}, {"east"}, {"west"}}
		dataset, err := model.NewDataset("regions", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 5)

		assert.Contains(t, text, "Categorical data:")
		assert.Contains(t, text, "region: north, south, east")
		assert.NotContains(t, text, "west")
	})

	t.Run("Sample data shows first two rows truncated to five columns", func(t *testing.T) {
		columns := []model.Column{
			{Name: "h1", Type: model.ColumnCategorical},
			{Name: "h2", Type: model.ColumnCategorical},
			{Name: "h3", Type: model.ColumnCategorical},
			{Name: "h4", Type: model.ColumnCategorical},
			{Name: "h5", Type: model.ColumnCategorical},
			{Name: "h6", Type: model.ColumnCategorical},
		}
		rows := [][]string{
			{"a1", "a2", "a3", "a4", "a5", "a6"},
			{"b1", "b2", "b3", "b4", "b5", "b6"},
			{"x1", "x2", "x3", "x4", "x5", "x6"},
		}
		dataset, err := model.NewDataset("wide", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 3)

		assert.Contains(t, text, "Sample data:")
		assert.Contains(t, text, "h1 | h2 | h3 | h4 | h5")
		assert.Contains(t, text, "a1 | a2 | a3 | a4 | a5")
		assert.Contains(t, text, "b1 | b2 | b3 | b4 | b5")
		// Sixth column and third row stay out of the sample
		assert.NotContains(t, text, "a6")
		assert.NotContains(t, text, "b6")
		assert.NotContains(t, text, "x4")
	})

	t.Run("Sections appear in fixed order", func(t *testing.T) {
		columns := []model.Column{
			{Name: "product", Type: model.ColumnCategorical},
			{Name: "amount", Type: model.ColumnNumeric},
		}
		rows := [][]string{{"widget", "10"}}
		dataset, err := model.NewDataset("sales", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 1)

		columnsIdx := strings.Index(text, "Columns:")
		numericIdx := strings.Index(text, "Numeric statistics:")
		categoricalIdx := strings.Index(text, "Categorical data:")
		sampleIdx := strings.Index(text, "Sample data:")

		assert.True(t, columnsIdx < numericIdx, "Columns should come before numeric stats")
		assert.True(t, numericIdx < categoricalIdx, "Numeric stats should come before categorical data")
		assert.True(t, categoricalIdx < sampleIdx, "Categorical data should come before sample rows")
	})

	t.Run("Stats are scoped to the chunk rows only", func(t *testing.T) {
		columns := []model.Column{
			{Name: "amount", Type: model.ColumnNumeric},
		}
		rows := [][]string{{"1"}, {"2"}, {"100"}}
		dataset, err := model.NewDataset("sales", columns, rows)
		require.NoError(t, err)

		text := renderChunkText(dataset, 0, 2)

		assert.Contains(t, text, "mean=1.50, min=1.00, max=2.00")
	})
}
