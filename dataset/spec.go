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
	"fmt"
	"sort"

	"google.golang.org/protobuf/proto"

	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/dataset/proto"
)

// ColumnSpec is the meta-data of a column, as seen during training.
type ColumnSpec struct {
	Name string
	Type ColumnType
	// Sorted distinct values of a categorical column.
	Categories []string
	// Mean of the non-missing values of a numerical column.
	Mean float64
	// Number of missing values.
	NumMissing int
}

// Spec is the data specification: the meta-data of the columns of a dataset.
type Spec struct {
	Columns []ColumnSpec
}

// NewSpec computes the data specification of a table.
func NewSpec(table *Table) *Spec {
	spec := &Spec{Columns: make([]ColumnSpec, 0, len(table.Columns))}
	for _, column := range table.Columns {
		columnSpec := ColumnSpec{
			Name:       column.Name,
			Type:       column.Type,
			NumMissing: column.NumMissing(),
		}
		switch column.Type {
		case Numerical:
			sum := 0.0
			count := 0
			for i, v := range column.Numbers {
				if !column.Missing[i] {
					sum += v
					count++
				}
			}
			if count > 0 {
				columnSpec.Mean = sum / float64(count)
			}
		case Categorical:
			seen := map[string]bool{}
			for i, v := range column.Values {
				if column.Missing[i] || seen[v] {
					continue
				}
				seen[v] = true
				columnSpec.Categories = append(columnSpec.Categories, v)
			}
			sort.Strings(columnSpec.Categories)
		}
		spec.Columns = append(spec.Columns, columnSpec)
	}
	return spec
}

// Column returns the spec of a column by name.
func (s *Spec) Column(name string) (*ColumnSpec, error) {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("column %q: %w", name, ErrUnknownColumn)
}

// CategoryIndex returns the position of "value" in the sorted categories, or -1.
func (c *ColumnSpec) CategoryIndex(value string) int {
	idx := sort.SearchStrings(c.Categories, value)
	if idx < len(c.Categories) && c.Categories[idx] == value {
		return idx
	}
	return -1
}

// MarshalBinary serializes the spec.
func (s *Spec) MarshalBinary() ([]byte, error) {
	raw := &pb.DataSpecification{Columns: make([]*pb.Column, 0, len(s.Columns))}
	for _, column := range s.Columns {
		raw.Columns = append(raw.Columns, &pb.Column{
			Name:       column.Name,
			Type:       int32(column.Type),
			Categories: column.Categories,
			Mean:       column.Mean,
			NumMissing: int64(column.NumMissing),
		})
	}
	return proto.Marshal(raw)
}

// UnmarshalBinary parses a spec serialized with MarshalBinary.
func (s *Spec) UnmarshalBinary(data []byte) error {
	raw := &pb.DataSpecification{}
	if err := proto.Unmarshal(data, raw); err != nil {
		return err
	}
	s.Columns = make([]ColumnSpec, 0, len(raw.GetColumns()))
	for _, column := range raw.GetColumns() {
		columnType := ColumnType(column.GetType())
		if columnType != Numerical && columnType != Categorical {
			return fmt.Errorf("column %q has an unknown type %d", column.GetName(), column.GetType())
		}
		s.Columns = append(s.Columns, ColumnSpec{
			Name:       column.GetName(),
			Type:       columnType,
			Categories: column.GetCategories(),
			Mean:       column.GetMean(),
			NumMissing: int(column.GetNumMissing()),
		})
	}
	return nil
}
