package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
	"github.com/lib/pq"
)

// SchemaDBHandlerFunctions defines the interface for schema introspection operations.
type SchemaDBHandlerFunctions interface {
	ListTables(ctx context.Context) ([]string, error)
	DescribeTable(ctx context.Context, table string) (*model.TableInfo, error)
	SchemaInfo(ctx context.Context) ([]*model.TableInfo, error)
	AnswerSchemaQuestion(ctx context.Context, question string) (string, error)
}

// SchemaDBHandler answers questions about the connected database's own
// structure via information_schema.
type SchemaDBHandler struct {
	db     *helper.Database
	schema string
}

// NewSchemaDBHandler creates a new schema introspection handler for the
// given schema. An empty schema defaults to public.
func NewSchemaDBHandler(db *helper.Database, schema string) (*SchemaDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if schema == "" {
		schema = "public"
	}

	db.Logger.Info("Initialized SchemaDBHandler")

	return &SchemaDBHandler{
		db:     db,
		schema: schema,
	}, nil
}

// ListTables returns the names of all base tables in the schema
func (h *SchemaDBHandler) ListTables(ctx context.Context) ([]string, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT table_name FROM information_schema.tables
		 WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		 ORDER BY table_name`,
		h.schema,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, helper.NewError("scan", err)
		}
		tables = append(tables, name)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return tables, nil
}

// DescribeTable returns column information and the row count of a table
func (h *SchemaDBHandler) DescribeTable(ctx context.Context, table string) (*model.TableInfo, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT column_name, data_type, is_nullable FROM information_schema.columns
		 WHERE table_schema = $1 AND table_name = $2
		 ORDER BY ordinal_position`,
		h.schema,
		table,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	info := &model.TableInfo{Name: table}
	for rows.Next() {
		var column model.TableColumn
		var nullable string
		if err := rows.Scan(&column.Name, &column.DataType, &nullable); err != nil {
			return nil, helper.NewError("scan", err)
		}
		column.Nullable = nullable == "YES"
		info.Columns = append(info.Columns, column)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	if len(info.Columns) == 0 {
		return nil, helper.NewError("describe table", fmt.Errorf("table %v not found in schema %v", table, h.schema))
	}

	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM %v.%v`,
		pq.QuoteIdentifier(h.schema),
		pq.QuoteIdentifier(table),
	)
	err = h.db.Instance.QueryRowContext(ctx, countQuery).Scan(&info.RowCount)
	if err != nil {
		return nil, helper.NewError("count rows", err)
	}

	return info, nil
}

// SchemaInfo returns column information and row counts for all base
// tables in the schema
func (h *SchemaDBHandler) SchemaInfo(ctx context.Context) ([]*model.TableInfo, error) {
	tables, err := h.ListTables(ctx)
	if err != nil {
		return nil, helper.NewError("list tables", err)
	}

	infos := make([]*model.TableInfo, 0, len(tables))
	for _, table := range tables {
		info, err := h.DescribeTable(ctx, table)
		if err != nil {
			return nil, helper.NewError("describe table", err)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// AnswerSchemaQuestion formats a textual answer to a schema question.
// Questions asking for tables get a table list, questions naming a
// table get its columns, everything else gets the full schema as JSON.
func (h *SchemaDBHandler) AnswerSchemaQuestion(ctx context.Context, question string) (string, error) {
	questionLower := strings.ToLower(question)

	tables, err := h.ListTables(ctx)
	if err != nil {
		return "", helper.NewError("list tables", err)
	}

	if strings.Contains(questionLower, "tables") {
		var builder strings.Builder
		builder.WriteString("Available tables in the database:\n")
		for _, table := range tables {
			builder.WriteString(fmt.Sprintf("• %v\n", table))
		}
		return strings.TrimRight(builder.String(), "\n"), nil
	}

	for _, table := range tables {
		if strings.Contains(questionLower, strings.ToLower(table)) {
			info, err := h.DescribeTable(ctx, table)
			if err != nil {
				return "", helper.NewError("describe table", err)
			}

			var builder strings.Builder
			builder.WriteString(fmt.Sprintf("Schema for '%v' table:\n", table))
			for _, column := range info.Columns {
				builder.WriteString(fmt.Sprintf("• %v\n", column.Name))
			}
			return strings.TrimRight(builder.String(), "\n"), nil
		}
	}

	infos, err := h.SchemaInfo(ctx)
	if err != nil {
		return "", helper.NewError("schema info", err)
	}

	formatted, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return "", helper.NewError("marshal schema info", err)
	}

	return string(formatted), nil
}
