// Package loader reads tabular files into datasets.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/averoth/datachat/helper"
	"github.com/averoth/datachat/model"
)

// CSV reads a CSV file into a dataset. The dataset name is the file
// name without extension.
func CSV(path string) (*model.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, helper.NewError("open csv file", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	dataset, err := CSVReader(name, file)
	if err != nil {
		return nil, helper.NewError("read csv file", err)
	}

	return dataset, nil
}

// CSVReader reads CSV data from a reader into a dataset. The first
// record is the header. Column types are inferred from the data: a
// column where every non-empty cell parses as a float is numeric,
// everything else is categorical.
func CSVReader(name string, r io.Reader) (*model.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, helper.NewError("parse csv", err)
	}
	if len(records) == 0 {
		return nil, helper.NewError("parse csv", fmt.Errorf("no header record found"))
	}

	header := records[0]
	rows := records[1:]

	columns := make([]model.Column, 0, len(header))
	for i, columnName := range header {
		columnName = strings.TrimSpace(columnName)
		if columnName == "" {
			return nil, helper.NewError("parse csv", fmt.Errorf("empty column name at position %v", i))
		}

		columns = append(columns, model.Column{
			Name: columnName,
			Type: inferColumnType(rows, i),
		})
	}

	dataset, err := model.NewDataset(name, columns, rows)
	if err != nil {
		return nil, helper.NewError("create dataset", err)
	}

	return dataset, nil
}

// inferColumnType returns numeric when every non-empty cell of the
// column parses as a float. Columns with no non-empty cells are
// categorical.
func inferColumnType(rows [][]string, column int) model.ColumnType {
	sawValue := false
	for _, row := range rows {
		if column >= len(row) {
			continue
		}

		cell := strings.TrimSpace(row[column])
		if cell == "" {
			continue
		}

		sawValue = true
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return model.ColumnCategorical
		}
	}

	if !sawValue {
		return model.ColumnCategorical
	}
	return model.ColumnNumeric
}
