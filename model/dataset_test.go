package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	t.Run("Valid dataset with rows", func(t *testing.T) {
		columns := []Column{
			{Name: "product", Type: ColumnCategorical},
			{Name: "amount", Type: ColumnNumeric},
		}
		rows := [][]string{
			{"Widget", "10.50"},
			{"Gadget", "20.00"},
		}

		dataset, err := NewDataset("sales", columns, rows)

		require.NoError(t, err)
		assert.NotEqual(t, [16]byte{}, dataset.RID, "Expected a generated RID")
		assert.Equal(t, "sales", dataset.Name)
		assert.Equal(t, 2, dataset.NumRows())
		assert.Equal(t, []string{"product", "amount"}, dataset.ColumnNames())
	})

	t.Run("Valid dataset with zero rows", func(t *testing.T) {
		columns := []Column{{Name: "a", Type: ColumnNumeric}}

		dataset, err := NewDataset("empty", columns, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, dataset.NumRows())
	})

	t.Run("Error with no columns", func(t *testing.T) {
		_, err := NewDataset("broken", nil, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least one column")
	})

	t.Run("Error with ragged rows", func(t *testing.T) {
		columns := []Column{
			{Name: "a", Type: ColumnNumeric},
			{Name: "b", Type: ColumnNumeric},
		}
		rows := [][]string{
			{"1", "2"},
			{"3"},
		}

		_, err := NewDataset("ragged", columns, rows)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "row 1")
	})
}

func TestDatasetColumnsOfType(t *testing.T) {
	columns := []Column{
		{Name: "region", Type: ColumnCategorical},
		{Name: "amount", Type: ColumnNumeric},
		{Name: "quantity", Type: ColumnNumeric},
		{Name: "product", Type: ColumnCategorical},
	}
	dataset, err := NewDataset("sales", columns, nil)
	require.NoError(t, err)

	t.Run("Numeric columns in source order", func(t *testing.T) {
		assert.Equal(t, []int{1, 2}, dataset.ColumnsOfType(ColumnNumeric))
	})

	t.Run("Categorical columns in source order", func(t *testing.T) {
		assert.Equal(t, []int{0, 3}, dataset.ColumnsOfType(ColumnCategorical))
	})
}

func TestCategory(t *testing.T) {
	t.Run("Categories returns priority order", func(t *testing.T) {
		expected := []Category{CategoryDatabase, CategoryTabular, CategorySchema, CategoryGeneral}

		assert.Equal(t, expected, Categories())
	})

	t.Run("Default category is general", func(t *testing.T) {
		assert.Equal(t, CategoryGeneral, DefaultCategory)
	})

	t.Run("Valid categories", func(t *testing.T) {
		for _, category := range Categories() {
			assert.True(t, category.Valid(), "Expected %v to be valid", category)
		}
		assert.False(t, Category("weather").Valid())
	})
}
