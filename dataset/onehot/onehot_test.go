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

package onehot

import (
	"errors"
	"strings"
	"testing"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func readTable(t *testing.T, content string) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSVFrom(strings.NewReader(content), dataset.ReadOptions{
		Delimiter:     ';',
		StringColumns: []string{"doors"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return table
}

const trainContent = `buying;doors;weight
vhigh;2;1.5
low;4;2
med;2;3
`

func TestEncoder(t *testing.T) {
	table := readTable(t, trainContent)
	encoder := NewEncoder(dataset.NewSpec(table))

	test.CheckEq(t, encoder.NumFeatures(), 6, "")
	test.CheckEq(t, encoder.FeatureNames(), []string{
		"weight", "buying_low", "buying_med", "buying_vhigh", "doors_2", "doors_4",
	}, "numerical features first, then the sorted categories")
	test.CheckEq(t, encoder.Feature(0), Feature{Name: "weight", Column: 2, Category: -1}, "")
	test.CheckEq(t, encoder.Feature(0).IsIndicator(), false, "")
	test.CheckEq(t, encoder.Feature(4), Feature{Name: "doors_2", Column: 1, Category: 0}, "")

	column, category := encoder.Source(3)
	test.CheckEq(t, []string{column, category}, []string{"buying", "vhigh"}, "")
	column, category = encoder.Source(0)
	test.CheckEq(t, []string{column, category}, []string{"weight", ""}, "")

	x, err := encoder.Transform(table)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, x, []float32{
		1.5, 0, 0, 1, 1, 0,
		2, 1, 0, 0, 0, 1,
		3, 0, 1, 0, 1, 0,
	}, "")
}

func TestTransformUnknownAndMissing(t *testing.T) {
	encoder := NewEncoder(dataset.NewSpec(readTable(t, trainContent)))

	// "high" is unknown and the doors are missing: all-zero indicators.
	x, err := encoder.Transform(readTable(t, "weight;doors;buying;extra\n1;NA;high;z\n"))
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, x, []float32{1, 0, 0, 0, 0, 0}, "")
}

func TestTransformErrors(t *testing.T) {
	encoder := NewEncoder(dataset.NewSpec(readTable(t, trainContent)))

	if _, err := encoder.Transform(readTable(t, "buying;doors\nlow;2\n")); !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if _, err := encoder.Transform(readTable(t, "buying;doors;weight\nlow;2;NA\nlow;2;1\n")); !errors.Is(err, ErrNaN) {
		t.Errorf("expected ErrNaN, got %v", err)
	}
	if _, err := encoder.Transform(readTable(t, "buying;doors;weight\nlow;2;heavy\n")); err == nil {
		t.Error("expected an error for a categorical column used as numerical")
	}
}
