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

// Package onehot converts the columns of a table into a dense numerical matrix with one
// indicator feature per category ("dummy" variables).
//
// Feature layout: the numerical columns first, in column order, followed by the
// indicators of each categorical column, in column order, with the categories sorted
// lexicographically. The indicator of category "c" of column "col" is named "col_c".
// Missing and unknown categories encode as all-zero indicators.
package onehot

import (
	"errors"
	"fmt"
	"math"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
)

// Separator between the column name and the category in indicator names.
const Separator = "_"

// ErrNaN is returned when a numerical feature is missing.
var ErrNaN = errors.New("input contains NaN")

// Feature is one column of the encoded matrix.
type Feature struct {
	Name string
	// Index of the source column in the spec.
	Column int
	// Index of the category in the source column categories. -1 for numerical features.
	Category int
}

// IsIndicator tests if the feature is a category indicator.
func (f Feature) IsIndicator() bool {
	return f.Category >= 0
}

// Encoder encodes tables according to a data spec.
type Encoder struct {
	spec     *dataset.Spec
	features []Feature
}

// NewEncoder creates an encoder for all the columns of "spec".
func NewEncoder(spec *dataset.Spec) *Encoder {
	e := &Encoder{spec: spec}
	for colIdx, column := range spec.Columns {
		if column.Type == dataset.Numerical {
			e.features = append(e.features, Feature{Name: column.Name, Column: colIdx, Category: -1})
		}
	}
	for colIdx, column := range spec.Columns {
		if column.Type != dataset.Categorical {
			continue
		}
		for catIdx, category := range column.Categories {
			e.features = append(e.features, Feature{
				Name:     column.Name + Separator + category,
				Column:   colIdx,
				Category: catIdx,
			})
		}
	}
	return e
}

// Spec is the data spec of the encoder.
func (e *Encoder) Spec() *dataset.Spec {
	return e.spec
}

// NumFeatures is the number of encoded features.
func (e *Encoder) NumFeatures() int {
	return len(e.features)
}

// Feature returns the definition of the i-th encoded feature.
func (e *Encoder) Feature(i int) Feature {
	return e.features[i]
}

// Source returns the source column and category of the i-th feature. The category is
// empty for numerical features.
func (e *Encoder) Source(i int) (column string, category string) {
	f := e.features[i]
	columnSpec := e.spec.Columns[f.Column]
	if f.IsIndicator() {
		category = columnSpec.Categories[f.Category]
	}
	return columnSpec.Name, category
}

// FeatureNames lists the names of the encoded features.
func (e *Encoder) FeatureNames() []string {
	names := make([]string, len(e.features))
	for i, f := range e.features {
		names[i] = f.Name
	}
	return names
}

// Transform encodes a table into an example-major matrix of NumRows x NumFeatures values.
// The table should contain all the columns of the spec; other columns are ignored.
func (e *Encoder) Transform(table *dataset.Table) ([]float32, error) {
	numFeatures := len(e.features)
	numRows := table.NumRows()
	values := make([]float32, numRows*numFeatures)

	columns := make([]*dataset.Column, len(e.spec.Columns))
	for colIdx, columnSpec := range e.spec.Columns {
		column, err := table.Column(columnSpec.Name)
		if err != nil {
			return nil, err
		}
		columns[colIdx] = column
	}

	// Category index of each cell of the categorical columns.
	categories := make([][]int, len(e.spec.Columns))
	for colIdx, columnSpec := range e.spec.Columns {
		if columnSpec.Type != dataset.Categorical {
			continue
		}
		column := columns[colIdx]
		indices := make([]int, numRows)
		for rowIdx, raw := range column.Values {
			if column.Missing[rowIdx] {
				indices[rowIdx] = -1
				continue
			}
			indices[rowIdx] = columnSpec.CategoryIndex(raw)
		}
		categories[colIdx] = indices
	}

	for featureIdx, feature := range e.features {
		column := columns[feature.Column]
		if !feature.IsIndicator() {
			if column.Type != dataset.Numerical {
				return nil, fmt.Errorf("column %q is %v but numerical values are expected",
					column.Name, column.Type)
			}
			for rowIdx, v := range column.Numbers {
				if math.IsNaN(v) {
					return nil, fmt.Errorf("column %q row %d: %w", column.Name, rowIdx, ErrNaN)
				}
				values[rowIdx*numFeatures+featureIdx] = float32(v)
			}
			continue
		}
		for rowIdx, catIdx := range categories[feature.Column] {
			if catIdx == feature.Category {
				values[rowIdx*numFeatures+featureIdx] = 1
			}
		}
	}
	return values, nil
}
