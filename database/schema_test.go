package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchemaDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewSchemaDBHandler", func(t *testing.T) {
		schemaDbHandler, err := NewSchemaDBHandler(database, "")
		assert.NoError(t, err)
		require.NotNil(t, schemaDbHandler)
		assert.Equal(t, "public", schemaDbHandler.schema)
	})

	t.Run("Invalid call NewSchemaDBHandler with nil database", func(t *testing.T) {
		_, err := NewSchemaDBHandler(nil, "public")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database connection is nil")
	})
}

func TestSchemaIntrospection(t *testing.T) {
	database := initDB(t)

	_, err := database.Instance.Exec(`
		CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			city TEXT
		);
	`)
	require.NoError(t, err)

	_, err = database.Instance.Exec(`INSERT INTO customers (name, city) VALUES ('Alice', 'Berlin'), ('Bob', 'Hamburg');`)
	require.NoError(t, err)

	schemaDbHandler, err := NewSchemaDBHandler(database, "public")
	require.NoError(t, err)

	t.Run("ListTables contains created table", func(t *testing.T) {
		tables, err := schemaDbHandler.ListTables(context.Background())
		assert.NoError(t, err)
		assert.Contains(t, tables, "customers")
	})

	t.Run("DescribeTable returns columns and row count", func(t *testing.T) {
		info, err := schemaDbHandler.DescribeTable(context.Background(), "customers")
		assert.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "customers", info.Name)
		assert.Equal(t, []string{"id", "name", "city"}, info.ColumnNames())
		assert.GreaterOrEqual(t, info.RowCount, 2)

		assert.False(t, info.Columns[1].Nullable)
		assert.True(t, info.Columns[2].Nullable)
	})

	t.Run("DescribeTable fails for unknown table", func(t *testing.T) {
		_, err := schemaDbHandler.DescribeTable(context.Background(), "nonexistent")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("SchemaInfo covers all tables", func(t *testing.T) {
		infos, err := schemaDbHandler.SchemaInfo(context.Background())
		assert.NoError(t, err)

		var found bool
		for _, info := range infos {
			if info.Name == "customers" {
				found = true
			}
		}
		assert.True(t, found, "customers table should be part of the schema info")
	})
}

func TestAnswerSchemaQuestion(t *testing.T) {
	database := initDB(t)

	_, err := database.Instance.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			amount NUMERIC
		);
	`)
	require.NoError(t, err)

	schemaDbHandler, err := NewSchemaDBHandler(database, "public")
	require.NoError(t, err)

	t.Run("Question about tables lists the tables", func(t *testing.T) {
		answer, err := schemaDbHandler.AnswerSchemaQuestion(context.Background(), "What tables are in the database?")
		assert.NoError(t, err)
		assert.Contains(t, answer, "Available tables in the database:")
		assert.Contains(t, answer, "• orders")
	})

	t.Run("Question naming a table lists its columns", func(t *testing.T) {
		answer, err := schemaDbHandler.AnswerSchemaQuestion(context.Background(), "What columns does orders have?")
		assert.NoError(t, err)
		assert.Contains(t, answer, "Schema for 'orders' table:")
		assert.Contains(t, answer, "• amount")
	})

	t.Run("Generic question returns full schema as JSON", func(t *testing.T) {
		answer, err := schemaDbHandler.AnswerSchemaQuestion(context.Background(), "Show everything")
		assert.NoError(t, err)
		assert.Contains(t, answer, `"name": "orders"`)
		assert.Contains(t, answer, `"columns"`)
	})
}
