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

/*
Package benchmark measures the inference speed of a model.

Usage example:

	# Disable CPU power scaling
	sudo apt install linux-cpupower
	sudo cpupower frequency-set --governor performance

	cartree benchmark \
		--model=/tmp/cars_model \
		--dataset=csv:$(pwd)/data/cars_dataset.csv \
		--batch-size=100 \
		--warmup-runs=10 \
		--num-runs=100

Naming convention:
  - A (benchmark) "run" evaluates the speed of a model on a dataset.
  - A "run" is composed of one of more "unit runs".
  - A "unit run" measure the speed of a specific inference implementation (called "engine") with
    specific parameters (e.g. batchSize=10).
*/
package benchmark

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	model_io "github.com/MargaridaSolas/ensembleMethodsTutorial/model/io/canonical"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/serving"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/serving/engine"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/serving/example"
)

// Options are the options to run the benchmark.
type Options struct {
	// Number of times the entire dataset is run.
	NumRuns int

	// Number of runs to "warmup" the engine i.e. running the engine before the benchmark.
	WarmupRuns int

	// Number of examples in each batch. Some engine speed can be impacted by the batch size.
	BatchSize int

	// How to parse the dataset file.
	ReadOptions dataset.ReadOptions
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.NumRuns <= 0 {
		return fmt.Errorf("the number of runs should be greater or equal to 1, got %d", o.NumRuns)
	}
	if o.BatchSize <= 0 {
		return fmt.Errorf("the batch size should be greater or equal to 1, got %d", o.BatchSize)
	}
	if o.WarmupRuns < 0 {
		return fmt.Errorf("the number of warmup runs should be positive, got %d", o.WarmupRuns)
	}
	return nil
}

// Run runs the benchmark. The results are printed in "w".
func Run(ctx context.Context, w io.Writer, modelPath string, datasetPath string, options *Options, logger *zap.Logger) (*UnitRunResult, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Run benchmark",
		zap.String("model", modelPath),
		zap.String("dataset", datasetPath),
		zap.Int("num_runs", options.NumRuns),
		zap.Int("batch_size", options.BatchSize),
		zap.Int("warmup_runs", options.WarmupRuns))

	model, err := model_io.LoadModel(modelPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("Found model", zap.String("name", model.Name()))

	engine, err := serving.NewEngine(model)
	if err != nil {
		return nil, err
	}
	logger.Debug("Built engine",
		zap.String("engine", fmt.Sprintf("%T", engine)),
		zap.Int("input_features", engine.Features().NumFeatures()))

	examples, err := loadDataset(ctx, engine, datasetPath, options.ReadOptions)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded dataset", zap.Int("examples", examples.NumAllocatedExamples()))

	// For now, the benchmark is composed of a single evaluation.
	result, err := UnitRun(ctx, engine, examples, options)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprint(w, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UnitRunResult contains the benchmark result for a single run.
type UnitRunResult struct {
	DurationPerExample time.Duration
	NumExamples        int
	BatchSize          int
}

func (result *UnitRunResult) String() string {
	return fmt.Sprintf(
		`Avg. time per dataset:  %v
Avg. time per batch:    %v
Avg. time per examples: %v
`,
		result.DurationPerExample*time.Duration(result.NumExamples),
		result.DurationPerExample*time.Duration(result.BatchSize),
		result.DurationPerExample)
}

func loadDataset(ctx context.Context, engine engine.Engine, typedPath string, opts dataset.ReadOptions) (*example.Batch, error) {
	format, path, err := parseTypedPath(typedPath)
	if err != nil {
		return nil, err
	}
	switch format {
	case "csv":
		return loadDatasetCsv(ctx, engine, path, opts)
	default:
		return nil, fmt.Errorf("non supported dataset format %q", format)
	}
}

// parseTypedPath parses a typed path into its constituents.
//
// For example:
//
//	Input: "csv:/path/to/cars.csv"
//	Results:
//	  1. "csv"
//	  2. "/path/to/cars.csv"
//	  3. nil (i.e. no error)
func parseTypedPath(typedPath string) (pathType string, path string, err error) {
	i := strings.Index(typedPath, ":")
	if i == -1 {
		err = fmt.Errorf("malformed typed dataset path. Expecting [format]:[path]. Instead, got %v", typedPath)
		return
	}
	pathType = typedPath[:i]
	path = typedPath[i+1:]
	return
}

func loadDatasetCsv(ctx context.Context, engine engine.Engine, path string, opts dataset.ReadOptions) (*example.Batch, error) {
	table, err := dataset.ReadCSV(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	examples := engine.AllocateExamples(table.NumRows())
	if err := examples.SetFromTable(table); err != nil {
		return nil, err
	}
	return examples, nil
}

// UnitRun benchmark a single engine on a give dataset.
func UnitRun(ctx context.Context, engine engine.Engine, dataset *example.Batch, options *Options) (*UnitRunResult, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	batchSize := options.BatchSize
	numExamples := dataset.NumAllocatedExamples()
	if numExamples == 0 {
		return nil, fmt.Errorf("the dataset is empty")
	}
	numBatches := (numExamples + batchSize - 1) / batchSize

	batch := engine.AllocateExamples(batchSize)
	predictions := engine.AllocatePredictions(batchSize)

	run := func(numRuns int) error {
		for runIdx := 0; runIdx < numRuns; runIdx++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			for batchIdx := 0; batchIdx < numBatches; batchIdx++ {
				beginIdx := batchIdx * batchSize
				endIdx := min((batchIdx+1)*batchSize, numExamples)

				// The benchmark time account for a single copy of the feature values.
				batch.CopyFrom(dataset, beginIdx, endIdx)
				engine.Predict(batch, endIdx-beginIdx, predictions)
			}
		}
		return nil
	}

	if err := run(options.WarmupRuns); err != nil {
		return nil, err
	}

	start := time.Now()
	if err := run(options.NumRuns); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return &UnitRunResult{
		NumExamples:        numExamples,
		BatchSize:          batchSize,
		DurationPerExample: elapsed / time.Duration(options.NumRuns*numExamples),
	}, nil
}
