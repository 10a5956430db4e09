/*
 * Copyright 2022 Google LLC.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package dataset loads delimited text files into typed, column-major tables.
//
// Column types are inferred the way a data-frame reader does it: a column is numerical
// when every non-missing cell parses as a float, and categorical otherwise. Columns can
// be forced to the categorical (string) type.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/file"
)

// ColumnType is the semantic type of a column.
type ColumnType int32

// Supported column types.
const (
	ColumnTypeUnknown ColumnType = 0
	Numerical         ColumnType = 1
	Categorical       ColumnType = 2
)

func (c ColumnType) String() string {
	switch c {
	case Numerical:
		return "NUMERICAL"
	case Categorical:
		return "CATEGORICAL"
	default:
		return "UNKNOWN"
	}
}

var (
	// ErrUnknownColumn is returned when a requested column does not exist.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrEmptyDataset is returned when a file contains no header or no rows.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrMissingValues is returned when a column that cannot contain missing values does.
	ErrMissingValues = errors.New("column contains missing values")
)

// DefaultNAValues are the cells interpreted as missing values.
var DefaultNAValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan", "1.#IND",
	"1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a", "nan", "null",
}

// ReadOptions controls how a file is parsed.
type ReadOptions struct {
	// Delimiter between fields. Defaults to ','.
	Delimiter rune
	// IndexColumn is the column holding the row labels. It is not part of the
	// feature columns. Empty means no index.
	IndexColumn string
	// StringColumns are always read as categorical.
	StringColumns []string
	// NAValues are the cells considered missing. nil means DefaultNAValues.
	NAValues []string
}

// Column is a single typed column.
type Column struct {
	Name string
	Type ColumnType
	// Raw cell values.
	Values []string
	// Parsed values of a numerical column. Missing values are NaN. nil for categorical
	// columns.
	Numbers []float64
	// Missing[i] is true if the i-th cell is missing.
	Missing []bool
}

// NumMissing is the number of missing cells.
func (c *Column) NumMissing() int {
	count := 0
	for _, m := range c.Missing {
		if m {
			count++
		}
	}
	return count
}

// Table is a set of columns of identical length, with optional row labels.
type Table struct {
	// Name of the index column. Empty if the table has no index.
	Index string
	// Row labels. Row numbers (as strings) if the table has no index.
	IndexValues []string
	Columns     []*Column
}

// ReadCSV reads a delimited file from disk.
func ReadCSV(ctx context.Context, path string, opts ReadOptions) (*Table, error) {
	fileHandle, err := file.OpenRead(ctx, path)
	if err != nil {
		return nil, err
	}
	defer fileHandle.Close()
	table, err := ReadCSVFrom(fileHandle.IO(ctx), opts)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return table, nil
}

// ReadCSVFrom reads a delimited stream.
func ReadCSVFrom(r io.Reader, opts ReadOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	header := records[0]
	rows := records[1:]

	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("duplicated column %q", name)
		}
		seen[name] = true
	}

	naValues := opts.NAValues
	if naValues == nil {
		naValues = DefaultNAValues
	}
	isNA := make(map[string]bool, len(naValues))
	for _, v := range naValues {
		isNA[v] = true
	}
	forceString := make(map[string]bool, len(opts.StringColumns))
	for _, name := range opts.StringColumns {
		forceString[name] = true
	}

	table := &Table{Index: opts.IndexColumn}
	indexIdx := -1
	if opts.IndexColumn != "" {
		for colIdx, name := range header {
			if name == opts.IndexColumn {
				indexIdx = colIdx
			}
		}
		if indexIdx == -1 {
			return nil, fmt.Errorf("index column %q: %w", opts.IndexColumn, ErrUnknownColumn)
		}
	}

	table.IndexValues = make([]string, len(rows))
	for rowIdx, row := range rows {
		if indexIdx >= 0 {
			table.IndexValues[rowIdx] = row[indexIdx]
		} else {
			table.IndexValues[rowIdx] = strconv.Itoa(rowIdx)
		}
	}

	for colIdx, name := range header {
		if colIdx == indexIdx {
			continue
		}
		column := &Column{
			Name:    name,
			Values:  make([]string, len(rows)),
			Missing: make([]bool, len(rows)),
		}
		for rowIdx, row := range rows {
			column.Values[rowIdx] = row[colIdx]
			column.Missing[rowIdx] = isNA[row[colIdx]]
		}
		if forceString[name] {
			column.Type = Categorical
		} else {
			column.Numbers, column.Type = parseNumbers(column)
		}
		table.Columns = append(table.Columns, column)
	}
	return table, nil
}

// parseNumbers tries to interpret a column as numerical.
func parseNumbers(column *Column) ([]float64, ColumnType) {
	numbers := make([]float64, len(column.Values))
	numValues := 0
	for i, raw := range column.Values {
		if column.Missing[i] {
			numbers[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, Categorical
		}
		numbers[i] = v
		numValues++
	}
	if numValues == 0 {
		// A fully missing column has no numerical evidence.
		return nil, Categorical
	}
	return numbers, Numerical
}

// NumRows is the number of rows.
func (t *Table) NumRows() int {
	return len(t.IndexValues)
}

// Column returns a column by name.
func (t *Table) Column(name string) (*Column, error) {
	for _, column := range t.Columns {
		if column.Name == name {
			return column, nil
		}
	}
	return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
}

// ColumnNames lists the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		names[i] = column.Name
	}
	return names
}

// Select returns a table restricted to the given columns, in the given order. The
// columns are shared with the source table.
func (t *Table) Select(names ...string) (*Table, error) {
	selected := &Table{Index: t.Index, IndexValues: t.IndexValues}
	for _, name := range names {
		column, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		selected.Columns = append(selected.Columns, column)
	}
	return selected, nil
}

// Labels returns the raw values of a column used as a label. Missing values are
// rejected.
func (t *Table) Labels(name string) ([]string, error) {
	column, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if n := column.NumMissing(); n > 0 {
		return nil, fmt.Errorf("label %q has %d missing value(s): %w", name, n, ErrMissingValues)
	}
	return column.Values, nil
}

// Head returns the header and the first "n" rows (index first, if any) as strings.
func (t *Table) Head(n int) ([]string, [][]string) {
	if n > t.NumRows() || n < 0 {
		n = t.NumRows()
	}
	header := make([]string, 0, len(t.Columns)+1)
	if t.Index != "" {
		header = append(header, t.Index)
	}
	header = append(header, t.ColumnNames()...)

	rows := make([][]string, n)
	for rowIdx := 0; rowIdx < n; rowIdx++ {
		row := make([]string, 0, len(header))
		if t.Index != "" {
			row = append(row, t.IndexValues[rowIdx])
		}
		for _, column := range t.Columns {
			if column.Missing[rowIdx] {
				row = append(row, "NaN")
			} else {
				row = append(row, column.Values[rowIdx])
			}
		}
		rows[rowIdx] = row
	}
	return header, rows
}
