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

package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/export/importance"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func testModel() *cart.Model {
	header := &model.Header{
		ID:            "model-1",
		Label:         "target",
		ClassLabels:   []string{"acc", "unacc"},
		InputFeatures: []string{"safety_low", "seats_2"},
	}
	tree := &dt.Tree{Root: &dt.Node{
		RawNode:       &pb.Node{Condition: &pb.Condition{Attribute: 0, Threshold: 0.5}, Distribution: []float64{2, 2}},
		PositiveChild: &dt.Node{RawNode: &pb.Node{Distribution: []float64{2, 1}}},
		NegativeChild: &dt.Node{RawNode: &pb.Node{Distribution: []float64{0, 1}}},
	}}
	return cart.New(header, nil, &cart.Header{FeatureImportances: []float64{1, 0}}, tree)
}

func TestAccuracyAndConfusionMatrix(t *testing.T) {
	accuracy, err := Accuracy([]int{0, 1, 1, 2}, []int{0, 1, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	test.CheckNearFloat64(t, accuracy, 0.75, 1e-9, "")

	matrix, err := ConfusionMatrix(3, []int{0, 1, 1, 2}, []int{0, 1, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, matrix, [][]int{{1, 0, 0}, {0, 1, 1}, {0, 0, 1}}, "")

	if _, err := Accuracy([]int{0}, []int{}); err == nil {
		t.Error("expected an error")
	}
	if _, err := ConfusionMatrix(2, []int{0}, []int{3}); err == nil {
		t.Error("expected an error")
	}
}

func TestClassIndices(t *testing.T) {
	indices, err := ClassIndices([]string{"acc", "unacc"}, []string{"unacc", "acc", "unacc"})
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, indices, []int{1, 0, 1}, "")

	if _, err := ClassIndices([]string{"acc"}, []string{"good"}); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("expected ErrUnknownClass, got %v", err)
	}
}

func TestReport(t *testing.T) {
	r, err := New(testModel(), []int{0, 0, 1, 1}, []int{0, 0, 0, 1}, 5)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, r, &Report{
		ModelID:         "model-1",
		Label:           "target",
		NumExamples:     4,
		NumFeatures:     2,
		Classes:         []string{"acc", "unacc"},
		Accuracy:        0.75,
		ConfusionMatrix: [][]int{{2, 0}, {1, 1}},
		NumNodes:        3,
		NumLeaves:       2,
		Depth:           1,
		Importances:     []importance.Importance{{Feature: "safety_low", Importance: 1}},
	}, "")

	var b bytes.Buffer
	if err := r.WriteYAML(&b); err != nil {
		t.Fatal(err)
	}
	var parsed Report
	if err := yaml.Unmarshal(b.Bytes(), &parsed); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, &parsed, r, "yaml round trip")
	if !strings.Contains(b.String(), "confusion_matrix:") {
		t.Errorf("unexpected yaml:\n%s", b.String())
	}

	rendered := r.Table()
	for _, want := range []string{"model-1", "0.7500", "safety_low", "unacc"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("%q not found in:\n%s", want, rendered)
		}
	}
}

func TestRenderTable(t *testing.T) {
	rendered := RenderTable([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
	for _, want := range []string{"a", "b", "1", "4"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("%q not found in:\n%s", want, rendered)
		}
	}
	test.CheckEq(t, strings.Count(rendered, "\n"), 5, "header, separator, two rows and borders")
}
