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

package example

import (
	"errors"
	"strings"
	"testing"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func testSpec() *dataset.Spec {
	return &dataset.Spec{Columns: []dataset.ColumnSpec{
		{Name: "age", Type: dataset.Numerical, Mean: 30},
		{Name: "country", Type: dataset.Categorical, Categories: []string{"FR", "UK"}},
		{Name: "height", Type: dataset.Numerical, Mean: 1.5},
	}}
}

func TestNewFeatures(t *testing.T) {
	features, buildMap, err := NewFeatures(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, features.NumericalFeatures, map[string]NumericalFeatureID{"age": 0, "height": 1}, "")
	test.CheckEq(t, features.CategoricalFeatures, map[string]CategoricalFeatureID{"country": 0}, "")
	test.CheckEq(t, features.MissingNumericalValues, []float32{30, 1.5}, "")
	test.CheckEq(t, features.MissingCategoricalValues, []uint32{OutOfVocabulary}, "")
	test.CheckEq(t, features.CategoricalSpec, []CategoricalSpec{
		{NumUniqueValues: 3, Dictionary: map[string]uint32{"FR": 1, "UK": 2}},
	}, "")
	test.CheckEq(t, buildMap.NumericalFeatures, map[int]NumericalFeatureID{0: 0, 2: 1}, "")
	test.CheckEq(t, buildMap.CategoricalFeatures, map[int]CategoricalFeatureID{1: 0}, "")
	test.CheckEq(t, features.NumFeatures(), 3, "")

	if _, _, err := NewFeatures(&dataset.Spec{Columns: []dataset.ColumnSpec{{Name: "x"}}}); err == nil {
		t.Error("expected an error for a column without type")
	}
}

func TestSetFromFields(t *testing.T) {
	features, _, err := NewFeatures(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	batch := NewBatch(3, features)
	batch.FillMissing()

	header := []string{"country", "age", "unused", "height"}
	if err := batch.SetFromFields(0, header, []string{"UK", "40", "z", "NA"}); err != nil {
		t.Fatal(err)
	}
	if err := batch.SetFromFields(1, header, []string{"DE", "", "z", "1.8"}); err != nil {
		t.Fatal(err)
	}
	if err := batch.SetFromFields(2, header, []string{"NaN", "20", "z", "2"}); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, batch.NumericalValues, []float32{40, 1.5, 30, 1.8, 20, 2}, "")
	test.CheckEq(t, batch.CategoricalValues, []uint32{2, OutOfVocabulary, OutOfVocabulary}, "")

	if err := batch.SetFromFields(0, header, []string{"UK", "forty", "z", "1"}); err == nil {
		t.Error("expected a parsing error")
	}
	if err := batch.SetFromFields(0, header, []string{"UK"}); err == nil {
		t.Error("expected an error for a short example")
	}
}

func TestSetFromTable(t *testing.T) {
	features, _, err := NewFeatures(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	table, err := dataset.ReadCSVFrom(strings.NewReader("age,country,height\n25,FR,\n,UK,1.7\n"), dataset.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	batch := NewBatch(2, features)
	if err := batch.SetFromTable(table); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, batch.NumericalValues, []float32{25, 1.5, 30, 1.7}, "")
	test.CheckEq(t, batch.CategoricalValues, []uint32{1, 2}, "")

	small := NewBatch(1, features)
	if err := small.SetFromTable(table); err == nil {
		t.Error("expected an error for a too small batch")
	}
}

func TestCopyFromAndDebug(t *testing.T) {
	features, _, err := NewFeatures(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	src := NewBatch(3, features)
	src.FillMissing()
	src.SetNumerical(2, 0, 50)
	src.SetCategoricalFromString(2, 0, "FR")

	dst := NewBatch(1, features)
	dst.CopyFrom(src, 2, 3)
	test.CheckEq(t, dst.NumericalValues, []float32{50, 1.5}, "")
	test.CheckEq(t, dst.CategoricalValues, []uint32{1}, "")

	test.CheckEq(t, dst.ToStringDebug(), "batch with 1 example(s)\n"+
		"exampleIdx: 0\n"+
		"\"age\" (NUMERICAL id:0): \"50\"\n"+
		"\"height\" (NUMERICAL id:1): \"1.5\"\n"+
		"\"country\" (CATEGORICAL id:0): \"FR\"\n", "")
}

func TestSetFromTableMissingColumn(t *testing.T) {
	features, _, err := NewFeatures(testSpec())
	if err != nil {
		t.Fatal(err)
	}
	table, err := dataset.ReadCSVFrom(strings.NewReader("age,country,weight\n25,FR,70\n"), dataset.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	err = NewBatch(1, features).SetFromTable(table)
	if !errors.Is(err, dataset.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), `"height"`) {
		t.Errorf("the error should name the missing column, got %v", err)
	}
}
