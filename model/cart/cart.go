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

// Package cart defines the decision tree classifier model (Classification And Regression
// Tree, classification only).
package cart

import (
	"context"
	"fmt"
	"path/filepath"

	"google.golang.org/protobuf/proto"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset/onehot"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart/proto"
	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/file"
)

// ModelKey is the unique identifier of the model for serialization.
const ModelKey = "CART_CLASSIFIER"

// Filename containing the CART header.
const headerFilename = "cart_header.pb"

// Split criteria.
const (
	CriterionGini    = "gini"
	CriterionEntropy = "entropy"
)

// Hyperparameters of the learning algorithm. They are stored in the model for reference.
type Hyperparameters struct {
	// Function measuring the quality of a split: "gini" or "entropy".
	Criterion string `koanf:"criterion" yaml:"criterion"`
	// Maximum depth of the tree. 0 means unlimited.
	MaxDepth int `koanf:"max_depth" yaml:"max_depth"`
	// Minimum number of examples required to split a node.
	MinSamplesSplit int `koanf:"min_samples_split" yaml:"min_samples_split"`
	// Minimum number of examples in each leaf.
	MinSamplesLeaf int `koanf:"min_samples_leaf" yaml:"min_samples_leaf"`
	// A split is only accepted if it decreases the weighted impurity by at least this value.
	MinImpurityDecrease float64 `koanf:"min_impurity_decrease" yaml:"min_impurity_decrease"`
	// Number of features evaluated per split. 0 means all the features.
	MaxFeatures int `koanf:"max_features" yaml:"max_features"`
	// Seed of the feature sampling.
	RandomState int64 `koanf:"random_state" yaml:"random_state"`
}

// DefaultHyperparameters are the default hyperparameters.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Criterion:       CriterionGini,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
}

// Validate checks the hyperparameters.
func (h *Hyperparameters) Validate() error {
	if h.Criterion != CriterionGini && h.Criterion != CriterionEntropy {
		return fmt.Errorf("unknown criterion %q, expecting %q or %q", h.Criterion, CriterionGini, CriterionEntropy)
	}
	if h.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0, got %d", h.MaxDepth)
	}
	if h.MinSamplesSplit < 2 {
		return fmt.Errorf("min_samples_split must be >= 2, got %d", h.MinSamplesSplit)
	}
	if h.MinSamplesLeaf < 1 {
		return fmt.Errorf("min_samples_leaf must be >= 1, got %d", h.MinSamplesLeaf)
	}
	if h.MinImpurityDecrease < 0 {
		return fmt.Errorf("min_impurity_decrease must be >= 0, got %v", h.MinImpurityDecrease)
	}
	if h.MaxFeatures < 0 {
		return fmt.Errorf("max_features must be >= 0, got %d", h.MaxFeatures)
	}
	return nil
}

// Header is the CART specific header.
type Header struct {
	NodeFormat         string
	NumNodeShards      int
	NumNodes           int
	Hyperparameters    Hyperparameters
	FeatureImportances []float64
}

// Model is a decision tree classifier.
type Model struct {
	header     *model.Header
	dataspec   *dataset.Spec
	CartHeader *Header
	Tree       *dt.Tree
	encoder    *onehot.Encoder
}

func init() {
	// Register the constructor (loader) for CART models.
	model.RegisteredBuilders[ModelKey] = Create
}

// Create creates an empty CART model. Used by the model loader.
func Create(header *model.Header, dataspec *dataset.Spec) model.Implementation {
	return &Model{header: header, dataspec: dataspec}
}

// New creates a trained model.
func New(header *model.Header, dataspec *dataset.Spec, cartHeader *Header, tree *dt.Tree) *Model {
	header.Name = ModelKey
	if cartHeader.NodeFormat == "" {
		cartHeader.NodeFormat = dt.DefaultNodeFormat
	}
	if cartHeader.NumNodeShards == 0 {
		cartHeader.NumNodeShards = 1
	}
	cartHeader.NumNodes = tree.NumNodes()
	return &Model{header: header, dataspec: dataspec, CartHeader: cartHeader, Tree: tree}
}

// Name of the model.
func (me *Model) Name() string {
	return ModelKey
}

// Header of the model.
func (me *Model) Header() *model.Header {
	return me.header
}

// Dataspec of the model.
func (me *Model) Dataspec() *dataset.Spec {
	return me.dataspec
}

// NumClasses is the number of classes.
func (me *Model) NumClasses() int {
	return len(me.header.ClassLabels)
}

// NumFeatures is the number of encoded input features.
func (me *Model) NumFeatures() int {
	return len(me.header.InputFeatures)
}

// Encoder returns the one-hot encoder of the input columns.
func (me *Model) Encoder() *onehot.Encoder {
	if me.encoder == nil {
		me.encoder = onehot.NewEncoder(me.dataspec)
	}
	return me.encoder
}

// FeatureImportances returns the normalized total impurity decrease of each input feature.
func (me *Model) FeatureImportances() []float64 {
	return me.CartHeader.FeatureImportances
}

func (me *Model) checkFeatures(x []float32) (int, error) {
	numFeatures := me.NumFeatures()
	if numFeatures == 0 {
		if len(x) != 0 {
			return 0, fmt.Errorf("the model has no input features")
		}
		return 0, nil
	}
	if len(x)%numFeatures != 0 {
		return 0, fmt.Errorf("expecting a multiple of %d feature values, got %d", numFeatures, len(x))
	}
	return len(x) / numFeatures, nil
}

// leafDistribution returns the class counts of the leaf reached by the i-th example.
func (me *Model) leafDistribution(x []float32, exampleIdx int) []float64 {
	numFeatures := me.NumFeatures()
	leaf := me.Tree.Leaf(func(featureIdx int) float64 {
		return float64(x[exampleIdx*numFeatures+featureIdx])
	})
	return leaf.RawNode.GetDistribution()
}

// PredictProba returns the class probabilities of example-major feature values "x".
// The result is example major and contains NumClasses values per example.
func (me *Model) PredictProba(x []float32) ([]float64, error) {
	numExamples, err := me.checkFeatures(x)
	if err != nil {
		return nil, err
	}
	numClasses := me.NumClasses()
	probas := make([]float64, numExamples*numClasses)
	for exampleIdx := 0; exampleIdx < numExamples; exampleIdx++ {
		counts := me.leafDistribution(x, exampleIdx)
		sum := 0.0
		for _, c := range counts {
			sum += c
		}
		for classIdx := 0; classIdx < numClasses && classIdx < len(counts); classIdx++ {
			if sum > 0 {
				probas[exampleIdx*numClasses+classIdx] = counts[classIdx] / sum
			}
		}
	}
	return probas, nil
}

// Predict returns the index of the predicted class of each example. Ties are resolved in
// favor of the lowest class index.
func (me *Model) Predict(x []float32) ([]int, error) {
	numExamples, err := me.checkFeatures(x)
	if err != nil {
		return nil, err
	}
	predictions := make([]int, numExamples)
	for exampleIdx := range predictions {
		predictions[exampleIdx] = Argmax(me.leafDistribution(x, exampleIdx))
	}
	return predictions, nil
}

// PredictLabels returns the predicted label of each example.
func (me *Model) PredictLabels(x []float32) ([]string, error) {
	predictions, err := me.Predict(x)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(predictions))
	for i, classIdx := range predictions {
		labels[i] = me.header.ClassLabels[classIdx]
	}
	return labels, nil
}

// PredictTable encodes a table and predicts the class index of each row.
func (me *Model) PredictTable(table *dataset.Table) ([]int, error) {
	x, err := me.Encoder().Transform(table)
	if err != nil {
		return nil, err
	}
	return me.Predict(x)
}

// Argmax returns the index of the largest value; the first one in case of ties.
func Argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// LoadSpecific loads a model from disk.
func (me *Model) LoadSpecific(modelPath string, prefix string) error {
	serializedHeader, err := file.ReadFile(context.Background(),
		filepath.Join(modelPath, prefix+headerFilename))
	if err != nil {
		return err
	}
	me.CartHeader = &Header{}
	if err := me.CartHeader.UnmarshalBinary(serializedHeader); err != nil {
		return err
	}

	me.Tree, err = dt.LoadTree(
		filepath.Join(modelPath, prefix+dt.DefaultNodeFilename),
		me.CartHeader.NumNodeShards,
		me.CartHeader.NodeFormat)
	if err != nil {
		return err
	}

	if me.Tree.NumNodes() != me.CartHeader.NumNodes {
		return fmt.Errorf("wrong number of nodes in the model: got %d, expected %d",
			me.Tree.NumNodes(), me.CartHeader.NumNodes)
	}
	if len(me.CartHeader.FeatureImportances) != 0 &&
		len(me.CartHeader.FeatureImportances) != me.NumFeatures() {
		return fmt.Errorf("wrong number of feature importances")
	}
	return nil
}

// SaveSpecific saves the CART header and the tree nodes.
func (me *Model) SaveSpecific(modelPath string, prefix string) error {
	serializedHeader, err := me.CartHeader.MarshalBinary()
	if err != nil {
		return err
	}
	if err := file.WriteFile(context.Background(),
		filepath.Join(modelPath, prefix+headerFilename), serializedHeader); err != nil {
		return err
	}
	return dt.SaveTree(me.Tree,
		filepath.Join(modelPath, prefix+dt.DefaultNodeFilename),
		me.CartHeader.NumNodeShards,
		me.CartHeader.NodeFormat)
}

// MarshalBinary serializes the header.
func (h *Header) MarshalBinary() ([]byte, error) {
	hp := h.Hyperparameters
	return proto.Marshal(&pb.Header{
		NodeFormat:    h.NodeFormat,
		NumNodeShards: int32(h.NumNodeShards),
		NumNodes:      int64(h.NumNodes),
		Hyperparameters: &pb.Hyperparameters{
			Criterion:           hp.Criterion,
			MaxDepth:            int32(hp.MaxDepth),
			MinSamplesSplit:     int32(hp.MinSamplesSplit),
			MinSamplesLeaf:      int32(hp.MinSamplesLeaf),
			MinImpurityDecrease: hp.MinImpurityDecrease,
			MaxFeatures:         int32(hp.MaxFeatures),
			RandomState:         hp.RandomState,
		},
		FeatureImportances: h.FeatureImportances,
	})
}

// UnmarshalBinary parses a header serialized with MarshalBinary.
func (h *Header) UnmarshalBinary(data []byte) error {
	raw := &pb.Header{}
	if err := proto.Unmarshal(data, raw); err != nil {
		return err
	}
	hp := raw.GetHyperparameters()
	*h = Header{
		NodeFormat:    raw.GetNodeFormat(),
		NumNodeShards: int(raw.GetNumNodeShards()),
		NumNodes:      int(raw.GetNumNodes()),
		Hyperparameters: Hyperparameters{
			Criterion:           hp.GetCriterion(),
			MaxDepth:            int(hp.GetMaxDepth()),
			MinSamplesSplit:     int(hp.GetMinSamplesSplit()),
			MinSamplesLeaf:      int(hp.GetMinSamplesLeaf()),
			MinImpurityDecrease: hp.GetMinImpurityDecrease(),
			MaxFeatures:         int(hp.GetMaxFeatures()),
			RandomState:         hp.GetRandomState(),
		},
		FeatureImportances: raw.GetFeatureImportances(),
	}
	return nil
}
