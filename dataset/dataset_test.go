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

package dataset

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

const csvContent = `id;color;size;weight;label
a;red;1;2.5;yes
b;blue;2;NA;no
c;red;;3.5;yes
d;;4;1;no
`

func readTable(t *testing.T, opts ReadOptions) *Table {
	t.Helper()
	table, err := ReadCSVFrom(strings.NewReader(csvContent), opts)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestReadCSVFrom(t *testing.T) {
	table := readTable(t, ReadOptions{Delimiter: ';', IndexColumn: "id"})

	test.CheckEq(t, table.Index, "id", "")
	test.CheckEq(t, table.IndexValues, []string{"a", "b", "c", "d"}, "")
	test.CheckEq(t, table.NumRows(), 4, "")
	test.CheckEq(t, table.ColumnNames(), []string{"color", "size", "weight", "label"}, "")

	color, err := table.Column("color")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, color.Type, Categorical, "")
	test.CheckEq(t, color.Missing, []bool{false, false, false, true}, "")
	test.CheckEq(t, color.NumMissing(), 1, "")
	if color.Numbers != nil {
		t.Error("categorical columns have no numbers")
	}

	size, err := table.Column("size")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, size.Type, Numerical, "")
	test.CheckEq(t, size.Numbers[:2], []float64{1, 2}, "")
	if !math.IsNaN(size.Numbers[2]) {
		t.Errorf("missing value should be NaN, got %v", size.Numbers[2])
	}

	weight, err := table.Column("weight")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, weight.Type, Numerical, "")
	test.CheckEq(t, weight.Missing, []bool{false, true, false, false}, "")
}

func TestReadCSVStringColumns(t *testing.T) {
	table := readTable(t, ReadOptions{Delimiter: ';', StringColumns: []string{"size"}})
	test.CheckEq(t, table.Index, "", "")
	test.CheckEq(t, table.IndexValues, []string{"0", "1", "2", "3"}, "")
	test.CheckEq(t, table.ColumnNames(), []string{"id", "color", "size", "weight", "label"}, "")

	size, err := table.Column("size")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, size.Type, Categorical, "")
	test.CheckEq(t, size.Type.String(), "CATEGORICAL", "")
}

func TestReadCSVCars(t *testing.T) {
	table, err := ReadCSV(context.Background(), "../data/cars_dataset.csv", ReadOptions{
		Delimiter:     ';',
		IndexColumn:   "cars",
		StringColumns: []string{"cars", "doors", "seats"},
	})
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, table.NumRows(), 24, "")
	test.CheckEq(t, table.ColumnNames(), []string{"buying", "maint", "doors", "seats", "lugg_boot", "safety", "target"}, "")
	for _, column := range table.Columns {
		test.CheckEq(t, column.Type, Categorical, column.Name)
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSVFrom(strings.NewReader(""), ReadOptions{}); !errors.Is(err, ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}
	if _, err := ReadCSVFrom(strings.NewReader("a,a\n1,2\n"), ReadOptions{}); err == nil {
		t.Error("expected an error for duplicated columns")
	}
	if _, err := ReadCSVFrom(strings.NewReader("a,b\n1,2,3\n"), ReadOptions{}); err == nil {
		t.Error("expected an error for a ragged row")
	}
	if _, err := ReadCSVFrom(strings.NewReader("a,b\n1,2\n"), ReadOptions{IndexColumn: "c"}); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if _, err := ReadCSV(context.Background(), "missing.csv", ReadOptions{}); err == nil {
		t.Error("expected an error for a missing file")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadCSV(ctx, "../data/cars_dataset.csv", ReadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSelectAndLabels(t *testing.T) {
	table := readTable(t, ReadOptions{Delimiter: ';', IndexColumn: "id"})

	selected, err := table.Select("weight", "color")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, selected.ColumnNames(), []string{"weight", "color"}, "")
	test.CheckEq(t, selected.IndexValues, table.IndexValues, "")
	if _, err := table.Select("shape"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}

	labels, err := table.Labels("label")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, labels, []string{"yes", "no", "yes", "no"}, "")
	if _, err := table.Labels("color"); !errors.Is(err, ErrMissingValues) {
		t.Errorf("expected ErrMissingValues, got %v", err)
	}
}

func TestHead(t *testing.T) {
	table := readTable(t, ReadOptions{Delimiter: ';', IndexColumn: "id"})
	header, rows := table.Head(2)
	test.CheckEq(t, header, []string{"id", "color", "size", "weight", "label"}, "")
	test.CheckEq(t, rows, [][]string{{"a", "red", "1", "2.5", "yes"}, {"b", "blue", "2", "NaN", "no"}}, "")

	_, rows = table.Head(-1)
	test.CheckEq(t, len(rows), 4, "")
	_, rows = table.Head(10)
	test.CheckEq(t, len(rows), 4, "")
}
