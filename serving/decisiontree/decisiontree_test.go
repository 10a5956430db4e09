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

package decisiontree

// The end-to-end tests for the "decisiontree" package are in "serving/serving_test.go".

import (
	"math"
	"testing"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func TestGetSetBit(t *testing.T) {
	data := []byte{0x00, 0x00}

	test.CheckEq(t, GetBit(data, 4), false, "")
	SetBit(data, 4)
	test.CheckEq(t, data, []byte{1 << 4, 0x00}, "")

	test.CheckEq(t, GetBit(data, 4), true, "")

	SetBit(data, 6)
	test.CheckEq(t, data, []byte{(1 << 4) | (1 << 6), 0x00}, "")

	SetBit(data, 10)
	test.CheckEq(t, data, []byte{(1 << 4) | (1 << 6), 1 << 2}, "")
}

func TestLowerOrEqualThreshold(t *testing.T) {
	for _, threshold := range []float64{0.5, 2.5, 0.1, 0.15000000596046448, 1e-8, -3.3, 1e30} {
		t32 := lowerOrEqualThreshold(threshold)
		if float64(t32) > threshold {
			t.Errorf("threshold %v: %v is above the threshold", threshold, t32)
		}
		next := math.Nextafter32(t32, float32(math.Inf(1)))
		if float64(next) <= threshold {
			t.Errorf("threshold %v: %v is not the largest float32 below the threshold", threshold, t32)
		}
	}
	test.CheckEq(t, lowerOrEqualThreshold(2.5), float32(2.5), "")
}

func TestIndicatorMask(t *testing.T) {
	// Values: 0=OOV, 1..3 = categories.
	test.CheckEq(t, indicatorMask(4, 2, 0.5), []byte{0b1011}, "")
	test.CheckEq(t, indicatorMask(4, 2, 1.5), []byte{0b1111}, "")
	test.CheckEq(t, indicatorMask(4, 2, -0.5), []byte{0b0000}, "")
	test.CheckEq(t, indicatorMask(10, 9, 0.5), []byte{0xff, 0b01}, "")
}

// newTestModel creates a model with a numerical column "n" and a categorical column "c"
// with 40 categories, so that conditions on "c" use the bitmap buffer.
func newTestModel() *cart.Model {
	spec := &dataset.Spec{Columns: []dataset.ColumnSpec{
		{Name: "n", Type: dataset.Numerical, Mean: 1},
		{Name: "c", Type: dataset.Categorical},
	}}
	for i := 0; i < 40; i++ {
		spec.Columns[1].Categories = append(spec.Columns[1].Categories, string(rune('A'+i)))
	}
	header := &model.Header{ClassLabels: []string{"x", "y"}}
	for i := 0; i < 41; i++ {
		header.InputFeatures = append(header.InputFeatures, "f")
	}

	leaf := func(a, b float64) *dt.Node {
		return &dt.Node{RawNode: &pb.Node{Distribution: []float64{a, b}}}
	}
	// n <= 0.5 ? (c_C <= 0.5 ? [1,3] : [4,0]) : [0,2]
	// Feature 0 is "n", feature 1+i is the indicator of the category i of "c".
	tree := &dt.Tree{Root: &dt.Node{
		RawNode: &pb.Node{Condition: &pb.Condition{Attribute: 0, Threshold: 0.5}, Distribution: []float64{5, 5}},
		PositiveChild: &dt.Node{
			RawNode:       &pb.Node{Condition: &pb.Condition{Attribute: 3, Threshold: 0.5}, Distribution: []float64{5, 3}},
			PositiveChild: leaf(1, 3),
			NegativeChild: leaf(4, 0),
		},
		NegativeChild: leaf(0, 2),
	}}
	return cart.New(header, spec, &cart.Header{}, tree)
}

func TestEngineConditions(t *testing.T) {
	e, err := NewEngine(newTestModel())
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, e.NumNodes(), 5, "")
	test.CheckEq(t, e.OutputDim(), 2, "")

	examples := e.AllocateExamples(4)
	predictions := e.AllocatePredictions(4)
	examples.FillMissing()
	n := e.Features().NumericalFeatures["n"]
	c := e.Features().CategoricalFeatures["c"]

	examples.SetNumerical(0, n, 0.5)
	examples.SetCategoricalFromString(0, c, "C")
	examples.SetNumerical(1, n, 0.25)
	examples.SetCategoricalFromString(1, c, "A")
	examples.SetNumerical(2, n, 0.75)
	// Example 3 is missing: "n" is imputed with its mean (1).

	e.Predict(examples, 4, predictions)
	test.CheckEq(t, predictions, []float32{1, 0, 0.25, 0.75, 0, 1, 0, 1}, "")
}

func TestEngineInvalidLeaf(t *testing.T) {
	m := newTestModel()
	m.Tree.Root.NegativeChild.RawNode.Distribution = []float64{1, 2, 3}
	if _, err := NewEngine(m); err == nil {
		t.Fatal("expected an error")
	}
}
