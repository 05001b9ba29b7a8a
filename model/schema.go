package model

// TableColumn describes one column of a database table.
type TableColumn struct {
	Name     string `json:"name"`
	DataType string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// TableInfo describes one table of the connected database schema.
type TableInfo struct {
	Name     string        `json:"name"`
	Columns  []TableColumn `json:"columns"`
	RowCount int           `json:"row_count"`
}

// ColumnNames returns the column names in table order.
func (t *TableInfo) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, column := range t.Columns {
		names = append(names, column.Name)
	}
	return names
}
