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

// Package decisiontree contains the engine inference code for decision tree
// classifiers.
//
// The tree is compiled into a flat array of nodes. Conditions on one-hot indicators are
// compiled back into conditions on the raw categorical columns, so examples are fed with
// the original column values.
package decisiontree

import (
	"fmt"
	"math"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset/onehot"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/serving/example"
)

// Type of a condition.
type genericConditionType uint8

const (
	// When the node is a leaf i.e. does not contain a condition.
	leafConditionType genericConditionType = 0

	// Condition: feature <= threshold.
	numericalIsLowerOrEqualConditionType genericConditionType = 1

	// Condition: feature \in mask with mask a 32 bits bitmap.
	categoricalContainsMaskConditionType genericConditionType = 2

	// Condition: feature \in mask with mask containing any number of bits.
	categoricalContainsBufferConditionType genericConditionType = 3
)

// genericNode is a flat decision tree node.
type genericNode struct {

	// Offset to the positive child node.
	//
	// Note: The negative node is always next to its parent node. In other words,
	// the offset of the negative child node is always 1.
	rightIdx uint32

	// Index of the feature being tested. The exact interpretation of "featureIdx"
	// depends on "condition".
	featureIdx uint16

	// The main parameter of the condition:
	//   leaf: Index of the first class probability in "leafValues".
	//
	//   numericalIsLowerOrEqual: Numerical condition as "value <=
	//     interpret_cast_float32(condition)".
	//
	//   categoricalContainsMask: Categorical condition as "condition[value]",
	//     where "condition" is a bitmap. Only when the maximum value of the
	//     attribute is < 32.
	//
	//   categoricalContainsBuffer: Categorical condition as
	//     "categoricalBitmap[condition + value]", where "categoricalBitmap"
	//     is a bitmap.
	condition uint32

	// Type of the condition.
	conditionType genericConditionType
}

// Engine is the inference engine of a decision tree classifier.
type Engine struct {
	// features used as input.
	features *example.Features

	// The list of nodes in a depth first (node, negative, positive) order.
	nodes []genericNode

	// Bitmap used in categorical conditions. Used with the following conditions:
	// [categoricalContainsBufferConditionType].
	categoricalBitmap []byte

	// Class probabilities of the leaves.
	leafValues []float32

	classLabels []string
}

// NewEngine compiles a decision tree classifier.
func NewEngine(model *cart.Model) (*Engine, error) {
	if model.Tree == nil || model.Tree.Root == nil {
		return nil, fmt.Errorf("The model does not contain a tree")
	}
	features, buildMap, err := example.NewFeatures(model.Dataspec())
	if err != nil {
		return nil, err
	}
	encoder := model.Encoder()
	if encoder.NumFeatures() != model.NumFeatures() {
		return nil, fmt.Errorf("The dataspec defines %d encoded features while the model expects %d",
			encoder.NumFeatures(), model.NumFeatures())
	}

	e := &Engine{
		features:    features,
		nodes:       make([]genericNode, 0, model.Tree.NumNodes()),
		classLabels: model.Header().ClassLabels,
	}
	if err := e.addNode(model.Tree.Root, encoder, buildMap); err != nil {
		return nil, err
	}
	return e, nil
}

// getLeaf gets the active leaf of a given example.
func (e *Engine) getLeaf(examples *example.Batch, exampleIdx int) *genericNode {
	nodeIdx := 0
	for {
		node := &e.nodes[nodeIdx]
		var eval bool
		switch node.conditionType {

		case leafConditionType:
			return node

		case numericalIsLowerOrEqualConditionType:
			valueIdx := int(node.featureIdx) + exampleIdx*len(e.features.NumericalFeatures)
			eval = examples.NumericalValues[valueIdx] <= math.Float32frombits(node.condition)

		case categoricalContainsBufferConditionType:
			valueIdx := int(node.featureIdx) + exampleIdx*len(e.features.CategoricalFeatures)
			bitmapIdx := node.condition + examples.CategoricalValues[valueIdx]
			eval = GetBit(e.categoricalBitmap, bitmapIdx)

		case categoricalContainsMaskConditionType:
			valueIdx := int(node.featureIdx) + exampleIdx*len(e.features.CategoricalFeatures)
			eval = (node.condition & (1 << examples.CategoricalValues[valueIdx])) != 0
		}

		if eval {
			nodeIdx += int(node.rightIdx)
		} else {
			nodeIdx++
		}
	}
}

// addNode recursively adds a node and its descendants to the engine.
func (e *Engine) addNode(srcNode *dt.Node, encoder *onehot.Encoder,
	buildMap *example.FeatureConstructionMap) error {
	nodeIdx := len(e.nodes)
	e.nodes = append(e.nodes, genericNode{})
	dstNode := &e.nodes[nodeIdx]

	if srcNode.IsLeaf() {
		dstNode.conditionType = leafConditionType
		return e.setLeaf(srcNode, dstNode)
	}

	attributeIdx := int(srcNode.RawNode.GetCondition().GetAttribute())
	threshold := srcNode.RawNode.GetCondition().GetThreshold()
	if attributeIdx < 0 || attributeIdx >= encoder.NumFeatures() {
		return fmt.Errorf("Invalid attribute %d", attributeIdx)
	}
	feature := encoder.Feature(attributeIdx)

	if !feature.IsIndicator() {
		featureID, found := buildMap.NumericalFeatures[feature.Column]
		if !found {
			return fmt.Errorf("Cannot find column %v in the input features", feature.Column)
		}
		if featureID > math.MaxUint16 {
			return fmt.Errorf("Too many features in the model")
		}
		dstNode.featureIdx = uint16(featureID)
		dstNode.condition = math.Float32bits(lowerOrEqualThreshold(threshold))
		dstNode.conditionType = numericalIsLowerOrEqualConditionType
	} else {
		featureID, found := buildMap.CategoricalFeatures[feature.Column]
		if !found {
			return fmt.Errorf("Cannot find column %v in the input features", feature.Column)
		}
		if featureID > math.MaxUint16 {
			return fmt.Errorf("Too many features in the model")
		}
		numUniqueValues := e.features.CategoricalSpec[featureID].NumUniqueValues
		mask := indicatorMask(numUniqueValues, uint32(feature.Category)+1, threshold)
		e.setCategoricalContainsCondition(featureID, dstNode, numUniqueValues, mask)
	}

	// Build the negative branch.
	if err := e.addNode(srcNode.NegativeChild, encoder, buildMap); err != nil {
		return err
	}
	// Note: "dstNode" is now invalid.

	rightIdx := len(e.nodes) - nodeIdx
	if rightIdx <= 0 || rightIdx > math.MaxUint32 {
		return fmt.Errorf("Invalid child")
	}
	e.nodes[nodeIdx].rightIdx = uint32(rightIdx)

	// Build the positive branch.
	return e.addNode(srcNode.PositiveChild, encoder, buildMap)
}

// lowerOrEqualThreshold returns the largest float32 "t" such that, for any float32 "x",
// "x <= t" iff "float64(x) <= threshold".
func lowerOrEqualThreshold(threshold float64) float32 {
	t := float32(threshold)
	if float64(t) > threshold {
		t = math.Nextafter32(t, float32(math.Inf(-1)))
	}
	return t
}

// indicatorMask returns the set of categorical values for which the condition
// "indicator(value == category) <= threshold" is true.
func indicatorMask(numUniqueValues, category uint32, threshold float64) []byte {
	mask := make([]byte, (numUniqueValues+7)/8)
	for value := uint32(0); value < numUniqueValues; value++ {
		indicator := 0.0
		if value == category {
			indicator = 1
		}
		if indicator <= threshold {
			SetBit(mask, value)
		}
	}
	return mask
}

func (e *Engine) setCategoricalContainsCondition(featureID example.CategoricalFeatureID,
	dstNode *genericNode, numUniqueValues uint32, mask []byte) {
	dstNode.featureIdx = uint16(featureID)
	if len(mask) <= 4 {
		// Store the mask in an uint32.
		dstNode.conditionType = categoricalContainsMaskConditionType
		var value uint32
		for i := uint32(0); i < numUniqueValues; i++ {
			if GetBit(mask, i) {
				value |= 1 << i
			}
		}
		dstNode.condition = value
	} else {
		// Store the mask in the byte buffer.
		dstNode.condition = uint32(len(e.categoricalBitmap)) * 8
		dstNode.conditionType = categoricalContainsBufferConditionType
		e.categoricalBitmap = append(e.categoricalBitmap, mask...)
	}
}

// setLeaf stores the class probabilities of a leaf.
func (e *Engine) setLeaf(srcNode *dt.Node, dstNode *genericNode) error {
	counts := srcNode.RawNode.GetDistribution()
	if len(counts) != len(e.classLabels) {
		return fmt.Errorf("Invalid leaf: %d class counts for %d classes", len(counts), len(e.classLabels))
	}
	sum := 0.0
	for _, c := range counts {
		sum += c
	}
	dstNode.condition = uint32(len(e.leafValues))
	for _, c := range counts {
		var p float32
		if sum > 0 {
			p = float32(c / sum)
		}
		e.leafValues = append(e.leafValues, p)
	}
	return nil
}

// GetBit gets the i-th bit in a bitmap.
func GetBit(bitmap []byte, i uint32) bool {
	byteValue := bitmap[i/8]
	return (byteValue & (1 << (i & 7))) != 0
}

// SetBit sets the i-th bit in a bitmap.
func SetBit(bitmap []byte, i uint32) {
	byteIdx := i / 8
	byteValue := bitmap[byteIdx]
	bitmap[byteIdx] = byteValue | (1 << (i & 7))
}

// AllocateExamples allocates a set of examples.
func (e *Engine) AllocateExamples(maxNumExamples int) *example.Batch {
	return example.NewBatch(maxNumExamples, e.Features())
}

// AllocatePredictions allocates a set of predictions.
func (e *Engine) AllocatePredictions(maxNumExamples int) []float32 {
	return make([]float32, maxNumExamples*e.OutputDim())
}

// Features of the engine.
func (e *Engine) Features() *example.Features {
	return e.features
}

// OutputDim is the number of classes.
func (e *Engine) OutputDim() int {
	return len(e.classLabels)
}

// ClassLabels are the labels of the output dimensions.
func (e *Engine) ClassLabels() []string {
	return e.classLabels
}

// NumNodes is the number of compiled nodes.
func (e *Engine) NumNodes() int {
	return len(e.nodes)
}

// Predict generates the class probabilities of the examples.
func (e *Engine) Predict(examples *example.Batch, numExamples int, predictions []float32) {
	outputDim := e.OutputDim()
	for exampleIdx := 0; exampleIdx < numExamples; exampleIdx++ {
		leaf := e.getLeaf(examples, exampleIdx)
		copy(predictions[exampleIdx*outputDim:(exampleIdx+1)*outputDim],
			e.leafValues[leaf.condition:leaf.condition+uint32(outputDim)])
	}
}
