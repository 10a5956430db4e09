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

package cart

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
	_ "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/io/canonical"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

const tableContent = `color,label
red,yes
blue,no
red,no
blue,no
`

func readTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.ReadCSVFrom(strings.NewReader(tableContent), dataset.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	inputs, err := table.Select("color")
	if err != nil {
		t.Fatal(err)
	}
	return inputs
}

// testModel predicts "no" for blue, and "no" (2 vs 1) for red.
func testModel(t *testing.T) *Model {
	t.Helper()
	spec := dataset.NewSpec(readTable(t))
	header := &model.Header{
		ID:            "test-model",
		Label:         "label",
		ClassLabels:   []string{"no", "yes"},
		InputFeatures: []string{"color_blue", "color_red"},
		Framework:     "test",
	}
	tree := &dt.Tree{Root: &dt.Node{
		RawNode: &pb.Node{
			Condition:    &pb.Condition{Attribute: 1, Threshold: 0.5},
			Distribution: []float64{3, 1},
			Impurity:     0.375,
			NumExamples:  4,
		},
		PositiveChild: &dt.Node{RawNode: &pb.Node{Distribution: []float64{2, 0}, NumExamples: 2}},
		NegativeChild: &dt.Node{RawNode: &pb.Node{Distribution: []float64{1, 1}, Impurity: 0.5, NumExamples: 2}},
	}}
	hparams := DefaultHyperparameters()
	hparams.MaxDepth = 4
	hparams.RandomState = 7
	return New(header, spec, &Header{Hyperparameters: hparams, FeatureImportances: []float64{0, 1}}, tree)
}

func TestHyperparameters(t *testing.T) {
	hparams := DefaultHyperparameters()
	if err := hparams.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, mutate := range []func(*Hyperparameters){
		func(h *Hyperparameters) { h.Criterion = "log_loss" },
		func(h *Hyperparameters) { h.MaxDepth = -1 },
		func(h *Hyperparameters) { h.MinSamplesSplit = 1 },
		func(h *Hyperparameters) { h.MinSamplesLeaf = 0 },
		func(h *Hyperparameters) { h.MinImpurityDecrease = -0.1 },
		func(h *Hyperparameters) { h.MaxFeatures = -2 },
	} {
		h := DefaultHyperparameters()
		mutate(&h)
		if err := h.Validate(); err == nil {
			t.Errorf("expected an error for %+v", h)
		}
	}
}

func TestNew(t *testing.T) {
	m := testModel(t)
	test.CheckEq(t, m.Name(), ModelKey, "")
	test.CheckEq(t, m.Header().Name, ModelKey, "")
	test.CheckEq(t, m.CartHeader.NodeFormat, dt.DefaultNodeFormat, "")
	test.CheckEq(t, m.CartHeader.NumNodeShards, 1, "")
	test.CheckEq(t, m.CartHeader.NumNodes, 3, "")
	test.CheckEq(t, m.NumClasses(), 2, "")
	test.CheckEq(t, m.NumFeatures(), 2, "")
	test.CheckEq(t, m.Encoder().FeatureNames(), m.Header().InputFeatures, "")
}

func TestPredict(t *testing.T) {
	m := testModel(t)
	// blue, red, red
	x := []float32{1, 0, 0, 1, 0, 1}

	probas, err := m.PredictProba(x)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, probas, []float64{1, 0, 0.5, 0.5, 0.5, 0.5}, "")

	predictions, err := m.Predict(x)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, predictions, []int{0, 0, 0}, "ties go to the lowest class")

	labels, err := m.PredictLabels(x)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, labels, []string{"no", "no", "no"}, "")

	predictions, err = m.PredictTable(readTable(t))
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, predictions, []int{0, 0, 0, 0}, "")

	if _, err := m.Predict([]float32{1, 0, 1}); err == nil {
		t.Error("expected an error for a partial example")
	}
}

func TestArgmax(t *testing.T) {
	test.CheckEq(t, Argmax([]float64{1, 3, 3, 2}), 1, "")
	test.CheckEq(t, Argmax([]float64{5}), 0, "")
}

func TestSaveLoadSpecific(t *testing.T) {
	m := testModel(t)
	modelPath := t.TempDir()
	if err := m.SaveSpecific(modelPath, "p_"); err != nil {
		t.Fatal(err)
	}
	loaded := Create(m.Header(), m.Dataspec()).(*Model)
	if err := loaded.LoadSpecific(modelPath, "p_"); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, loaded.CartHeader, m.CartHeader, "")
	test.CheckEq(t, loaded.Tree, m.Tree, "")

	if err := loaded.LoadSpecific(filepath.Join(modelPath, "missing"), "p_"); err == nil {
		t.Error("expected an error for a missing model")
	}
}

func TestHeaderSerialization(t *testing.T) {
	header := testModel(t).CartHeader
	data, err := header.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	parsed := &Header{NumNodes: 42}
	if err := parsed.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, parsed, header, "")
}
