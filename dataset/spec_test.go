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
	"errors"
	"testing"

	"google.golang.org/protobuf/proto"

	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/dataset/proto"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func TestNewSpec(t *testing.T) {
	table := readTable(t, ReadOptions{Delimiter: ';', IndexColumn: "id"})
	spec := NewSpec(table)
	test.CheckEq(t, spec, &Spec{Columns: []ColumnSpec{
		{Name: "color", Type: Categorical, Categories: []string{"blue", "red"}, NumMissing: 1},
		{Name: "size", Type: Numerical, Mean: 7.0 / 3, NumMissing: 1},
		{Name: "weight", Type: Numerical, Mean: 7.0 / 3, NumMissing: 1},
		{Name: "label", Type: Categorical, Categories: []string{"no", "yes"}},
	}}, "", test.ApproxFloats(1e-12))

	color, err := spec.Column("color")
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, color.CategoryIndex("red"), 1, "")
	test.CheckEq(t, color.CategoryIndex("blue"), 0, "")
	test.CheckEq(t, color.CategoryIndex("green"), -1, "")
	test.CheckEq(t, color.CategoryIndex("zzz"), -1, "")

	if _, err := spec.Column("shape"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSpecSerialization(t *testing.T) {
	spec := NewSpec(readTable(t, ReadOptions{Delimiter: ';', IndexColumn: "id"}))
	data, err := spec.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	parsed := &Spec{Columns: []ColumnSpec{{Name: "stale"}}}
	if err := parsed.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, parsed, spec, "")

	if err := parsed.UnmarshalBinary([]byte{0x0a, 0x05, 0x01}); err == nil {
		t.Error("expected an error for a truncated message")
	}
}

func TestSpecUnknownColumnType(t *testing.T) {
	data, err := proto.Marshal(&pb.DataSpecification{Columns: []*pb.Column{{Name: "x", Type: 7}}})
	if err != nil {
		t.Fatal(err)
	}
	if err := (&Spec{}).UnmarshalBinary(data); err == nil {
		t.Error("expected an error for an unknown column type")
	}
}
