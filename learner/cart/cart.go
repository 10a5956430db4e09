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

// Package cart trains decision tree classifiers with the CART algorithm: greedy,
// depth-first, binary splits "feature <= threshold" chosen with the best splitter.
//
// Usage example:
//
//	learner := cart.NewLearner("target", hparams, cart.WithLogger(logger))
//	model, err := learner.Train(ctx, inputs, labels)
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset/onehot"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	cart_model "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
)

// Framework is the name recorded in the header of the trained models.
const Framework = "cartree"

const (
	// Impurities at or below this value are considered null.
	epsilon = 1e-7
	// Feature values closer than this value are considered equal.
	featureThreshold = 1e-7
)

var (
	// ErrEmptyDataset is returned when training on zero examples.
	ErrEmptyDataset = errors.New("cannot train on an empty dataset")
	// ErrShapeMismatch is returned when the features and the labels disagree.
	ErrShapeMismatch = errors.New("inconsistent number of examples")
	// ErrNaN is returned when a feature value is NaN or infinite.
	ErrNaN = errors.New("input contains NaN or infinity")
)

// Learner trains CART models.
type Learner struct {
	Label           string
	Hyperparameters cart_model.Hyperparameters
	// Number of features evaluated in parallel when searching for a split.
	Workers int
	Logger  *zap.Logger
}

// Option configures a Learner.
type Option func(*Learner)

// WithWorkers sets the number of features evaluated in parallel.
func WithWorkers(n int) Option { return func(l *Learner) { l.Workers = n } }

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option { return func(l *Learner) { l.Logger = logger } }

// NewLearner creates a learner predicting the column "label".
func NewLearner(label string, hparams cart_model.Hyperparameters, opts ...Option) *Learner {
	l := &Learner{
		Label:           label,
		Hyperparameters: hparams,
		Workers:         runtime.GOMAXPROCS(0),
		Logger:          zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	if l.Workers < 1 {
		l.Workers = 1
	}
	return l
}

// Train trains a model on the columns of "inputs". "labels" contains the label of each row.
func (l *Learner) Train(ctx context.Context, inputs *dataset.Table, labels []string) (*cart_model.Model, error) {
	if err := l.Hyperparameters.Validate(); err != nil {
		return nil, err
	}
	if inputs.NumRows() == 0 {
		return nil, ErrEmptyDataset
	}
	if len(labels) != inputs.NumRows() {
		return nil, fmt.Errorf("%w: %d rows and %d labels", ErrShapeMismatch, inputs.NumRows(), len(labels))
	}

	spec := dataset.NewSpec(inputs)
	encoder := onehot.NewEncoder(spec)
	x, err := encoder.Transform(inputs)
	if err != nil {
		return nil, err
	}
	classes, y := EncodeLabels(labels)

	l.Logger.Info("Training decision tree",
		zap.Int("examples", len(y)),
		zap.Int("columns", len(spec.Columns)),
		zap.Int("features", encoder.NumFeatures()),
		zap.Int("classes", len(classes)),
		zap.String("criterion", l.Hyperparameters.Criterion))

	begin := time.Now()
	tree, importances, err := l.TrainMatrix(ctx, x, encoder.NumFeatures(), y, len(classes))
	if err != nil {
		return nil, err
	}

	header := &model.Header{
		ID:            uuid.NewString(),
		Label:         l.Label,
		ClassLabels:   classes,
		InputFeatures: encoder.FeatureNames(),
		Framework:     Framework,
		CreatedUnix:   time.Now().Unix(),
	}
	m := cart_model.New(header, spec, &cart_model.Header{
		Hyperparameters:    l.Hyperparameters,
		FeatureImportances: importances,
	}, tree)

	l.Logger.Info("Decision tree trained",
		zap.String("model_id", header.ID),
		zap.Int("nodes", tree.NumNodes()),
		zap.Int("leaves", tree.NumLeafs()),
		zap.Int("depth", tree.Depth()),
		zap.Duration("duration", time.Since(begin)))
	return m, nil
}

// EncodeLabels maps labels to class indices. The classes are the sorted distinct labels:
// numerically sorted if all the labels are numbers, lexicographically sorted otherwise.
func EncodeLabels(labels []string) ([]string, []int) {
	seen := map[string]bool{}
	var classes []string
	for _, label := range labels {
		if !seen[label] {
			seen[label] = true
			classes = append(classes, label)
		}
	}

	numeric := true
	values := make(map[string]float64, len(classes))
	for _, class := range classes {
		v, err := strconv.ParseFloat(class, 64)
		if err != nil {
			numeric = false
			break
		}
		values[class] = v
	}
	sort.Slice(classes, func(i, j int) bool {
		if numeric && values[classes[i]] != values[classes[j]] {
			return values[classes[i]] < values[classes[j]]
		}
		return classes[i] < classes[j]
	})

	index := make(map[string]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}
	y := make([]int, len(labels))
	for i, label := range labels {
		y[i] = index[label]
	}
	return classes, y
}

// TrainMatrix grows a tree on the example-major matrix "x" (len(y) x numFeatures) and the
// class indices "y". It returns the tree and the normalized feature importances.
func (l *Learner) TrainMatrix(ctx context.Context, x []float32, numFeatures int, y []int, numClasses int) (*dt.Tree, []float64, error) {
	if err := l.Hyperparameters.Validate(); err != nil {
		return nil, nil, err
	}
	numExamples := len(y)
	if numExamples == 0 {
		return nil, nil, ErrEmptyDataset
	}
	if len(x) != numExamples*numFeatures {
		return nil, nil, fmt.Errorf("%w: %d feature values for %d examples and %d features",
			ErrShapeMismatch, len(x), numExamples, numFeatures)
	}
	for i, v := range x {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, nil, fmt.Errorf("example %d feature %d: %w", i/numFeatures, i%numFeatures, ErrNaN)
		}
	}
	for i, c := range y {
		if c < 0 || c >= numClasses {
			return nil, nil, fmt.Errorf("example %d: class %d out of range [0, %d)", i, c, numClasses)
		}
	}
	if l.Hyperparameters.MaxFeatures > numFeatures {
		return nil, nil, fmt.Errorf("max_features must be in [0, %d], got %d", numFeatures, l.Hyperparameters.MaxFeatures)
	}

	b := &builder{
		ctx:         ctx,
		hp:          l.Hyperparameters,
		x:           x,
		numFeatures: numFeatures,
		y:           y,
		numClasses:  numClasses,
		rnd:         rand.New(rand.NewSource(l.Hyperparameters.RandomState)),
		workers:     l.Workers,
		importances: make([]float64, numFeatures),
		numExamples: float64(numExamples),
		samples:     make([]int, numExamples),
		buffer:      make([]int, numExamples),
		features:    make([]int, numFeatures),
	}
	if b.workers < 1 {
		b.workers = 1
	}
	if l.Hyperparameters.Criterion == cart_model.CriterionEntropy {
		b.impurity = entropy
	} else {
		b.impurity = gini
	}
	for i := range b.samples {
		b.samples[i] = i
	}
	for i := range b.features {
		b.features[i] = i
	}

	root, err := b.build(0, numExamples, 0)
	if err != nil {
		return nil, nil, err
	}

	total := 0.0
	for _, v := range b.importances {
		total += v
	}
	if total > 0 {
		for i := range b.importances {
			b.importances[i] /= total
		}
	}
	return &dt.Tree{Root: root}, b.importances, nil
}

// builder holds the state of the growth of a single tree.
type builder struct {
	ctx         context.Context
	hp          cart_model.Hyperparameters
	x           []float32
	numFeatures int
	y           []int
	numClasses  int
	impurity    func(counts []float64, total float64) float64
	rnd         *rand.Rand
	workers     int
	importances []float64
	numExamples float64

	// Example indices. The examples of a node are contiguous.
	samples []int
	// Scratch space used when partitioning "samples".
	buffer []int
	// Feature visit order. Permuted at each node.
	features []int
}

// split is a candidate split.
type split struct {
	feature   int
	threshold float64
	// -sum_{child} numExamples(child) * impurity(child). Higher is better.
	proxy    float64
	numLeft  int
	impLeft  float64
	impRight float64
	found    bool
}

func (b *builder) value(example, feature int) float64 {
	return float64(b.x[example*b.numFeatures+feature])
}

func (b *builder) counts(start, end int) []float64 {
	counts := make([]float64, b.numClasses)
	for _, example := range b.samples[start:end] {
		counts[b.y[example]]++
	}
	return counts
}

// build grows the sub-tree of the examples samples[start:end].
func (b *builder) build(start, end, depth int) (*dt.Node, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, err
	}
	numExamples := end - start
	counts := b.counts(start, end)
	impurity := b.impurity(counts, float64(numExamples))
	node := &dt.Node{RawNode: &pb.Node{
		Distribution: counts,
		Impurity:     impurity,
		NumExamples:  int64(numExamples),
	}}

	isLeaf := (b.hp.MaxDepth > 0 && depth >= b.hp.MaxDepth) ||
		numExamples < b.hp.MinSamplesSplit ||
		numExamples < 2*b.hp.MinSamplesLeaf ||
		impurity <= epsilon
	if isLeaf {
		return node, nil
	}

	best, err := b.findSplit(start, end)
	if err != nil {
		return nil, err
	}
	if !best.found {
		return node, nil
	}

	n := float64(numExamples)
	nLeft := float64(best.numLeft)
	nRight := n - nLeft
	improvement := (n / b.numExamples) *
		(impurity - nRight/n*best.impRight - nLeft/n*best.impLeft)
	if improvement+epsilon < b.hp.MinImpurityDecrease {
		return node, nil
	}

	pos := b.partition(start, end, best.feature, best.threshold)
	if pos-start != best.numLeft {
		return nil, fmt.Errorf("internal error: partition of feature %d gave %d examples, expected %d",
			best.feature, pos-start, best.numLeft)
	}
	b.importances[best.feature] += n*impurity - nLeft*best.impLeft - nRight*best.impRight

	node.RawNode.Condition = &pb.Condition{Attribute: int32(best.feature), Threshold: best.threshold}
	if node.PositiveChild, err = b.build(start, pos, depth+1); err != nil {
		return nil, err
	}
	if node.NegativeChild, err = b.build(pos, end, depth+1); err != nil {
		return nil, err
	}
	return node, nil
}

// partition stably moves the examples with "feature <= threshold" first, and returns the
// index of the first other example.
func (b *builder) partition(start, end, feature int, threshold float64) int {
	left := start
	right := 0
	for _, example := range b.samples[start:end] {
		if b.value(example, feature) <= threshold {
			b.samples[left] = example
			left++
		} else {
			b.buffer[right] = example
			right++
		}
	}
	copy(b.samples[left:end], b.buffer[:right])
	return left
}

// isConstant tests if a feature is constant over the examples samples[start:end].
func (b *builder) isConstant(start, end, feature int) bool {
	minValue := math.Inf(1)
	maxValue := math.Inf(-1)
	for _, example := range b.samples[start:end] {
		v := b.value(example, feature)
		minValue = math.Min(minValue, v)
		maxValue = math.Max(maxValue, v)
	}
	return maxValue <= minValue+featureThreshold
}

// findSplit finds the best split of the examples samples[start:end]. Features are visited in
// a random order, and at most MaxFeatures non-constant features are evaluated. When several
// splits are equally good, the first one in the visit order wins.
func (b *builder) findSplit(start, end int) (split, error) {
	b.rnd.Shuffle(len(b.features), func(i, j int) {
		b.features[i], b.features[j] = b.features[j], b.features[i]
	})

	maxFeatures := b.hp.MaxFeatures
	if maxFeatures == 0 {
		maxFeatures = b.numFeatures
	}
	candidates := make([]int, 0, maxFeatures)
	for _, feature := range b.features {
		if len(candidates) == maxFeatures {
			break
		}
		if b.isConstant(start, end, feature) {
			continue
		}
		candidates = append(candidates, feature)
	}

	results := make([]split, len(candidates))
	g, ctx := errgroup.WithContext(b.ctx)
	g.SetLimit(b.workers)
	for i, feature := range candidates {
		i, feature := i, feature
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = b.evaluateFeature(start, end, feature)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return split{}, err
	}

	best := split{proxy: math.Inf(-1)}
	for _, result := range results {
		if result.found && result.proxy > best.proxy {
			best = result
		}
	}
	return best, nil
}

type valueLabel struct {
	value float64
	label int
}

// evaluateFeature finds the best threshold of a feature. Safe for concurrent calls on
// different features.
func (b *builder) evaluateFeature(start, end, feature int) split {
	numExamples := end - start
	items := make([]valueLabel, numExamples)
	for i, example := range b.samples[start:end] {
		items[i] = valueLabel{value: b.value(example, feature), label: b.y[example]}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].value < items[j].value })

	total := make([]float64, b.numClasses)
	for _, item := range items {
		total[item.label]++
	}
	left := make([]float64, b.numClasses)
	right := make([]float64, b.numClasses)

	best := split{feature: feature, proxy: math.Inf(-1)}
	minLeaf := b.hp.MinSamplesLeaf
	p := 0
	for p < numExamples {
		for p+1 < numExamples && items[p+1].value <= items[p].value+featureThreshold {
			left[items[p].label]++
			p++
		}
		left[items[p].label]++
		p++
		if p >= numExamples {
			break
		}
		numLeft := p
		numRight := numExamples - p
		if numLeft < minLeaf || numRight < minLeaf {
			continue
		}
		for c := range right {
			right[c] = total[c] - left[c]
		}
		impLeft := b.impurity(left, float64(numLeft))
		impRight := b.impurity(right, float64(numRight))
		proxy := -float64(numRight)*impRight - float64(numLeft)*impLeft
		if proxy > best.proxy {
			threshold := items[p-1].value/2 + items[p].value/2
			if threshold == items[p].value || math.IsInf(threshold, 0) || math.IsNaN(threshold) {
				threshold = items[p-1].value
			}
			best = split{
				feature:   feature,
				threshold: threshold,
				proxy:     proxy,
				numLeft:   numLeft,
				impLeft:   impLeft,
				impRight:  impRight,
				found:     true,
			}
		}
	}
	return best
}

// gini is the Gini impurity: 1 - sum_c p_c^2.
func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	sumSq := 0.0
	for _, c := range counts {
		sumSq += c * c
	}
	return 1 - sumSq/(total*total)
}

// entropy is the Shannon entropy in bits: -sum_c p_c log2(p_c).
func entropy(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	e := 0.0
	for _, c := range counts {
		if c > 0 {
			p := c / total
			e -= p * math.Log2(p)
		}
	}
	return e
}
