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

package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/learner/cart"
	model_io "github.com/MargaridaSolas/ensembleMethodsTutorial/model/io/canonical"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/report"
)

func newTrainCmd(a *app) *cobra.Command {
	var (
		dataPath    string
		modelDir    string
		reportPath  string
		criterion   string
		maxDepth    int
		randomState int64
		workers     int
	)
	export := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a decision tree and export it",
		Long: `Train a decision tree classifier on the configured dataset, print its training
accuracy, and export the tree to the Graphviz dot language.

With the default configuration, the model is trained on <project>/data/cars_dataset.csv
with the entropy criterion and exported to <project>/tree2.dot.

Examples:
  # Reference run
  cartree train --project-dir=.

  # Shallow gini tree saved to disk, with a training report
  cartree train --criterion=gini --max-depth=3 --model-dir=/tmp/cars_model --report=/tmp/report.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			setString(flags.Changed("data"), &cfg.Data.Path, dataPath)
			setString(flags.Changed("model-dir"), &cfg.Train.ModelDir, modelDir)
			setString(flags.Changed("report"), &cfg.Train.Report, reportPath)
			setString(flags.Changed("criterion"), &cfg.Train.Criterion, criterion)
			setInt(flags.Changed("max-depth"), &cfg.Train.MaxDepth, maxDepth)
			setInt(flags.Changed("workers"), &cfg.Train.Workers, workers)
			if flags.Changed("random-state") {
				cfg.Train.RandomState = randomState
			}
			export.apply(cmd, &cfg.Export)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runTrain(cmd, a)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the dataset (default: <project>/data/cars_dataset.csv)")
	cmd.Flags().StringVar(&modelDir, "model-dir", "", "Directory where the model is saved")
	cmd.Flags().StringVar(&reportPath, "report", "", "Path of the YAML training report")
	cmd.Flags().StringVar(&criterion, "criterion", "", "Split criterion: gini or entropy")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum depth of the tree, 0 for unlimited")
	cmd.Flags().Int64Var(&randomState, "random-state", 0, "Seed of the feature sampling")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of goroutines searching the splits, 0 for all the CPUs")
	export.register(cmd)
	return cmd
}

func runTrain(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	cfg := a.cfg
	logger := a.logger

	dataPath, err := cfg.Resolve(cfg.Data.Path)
	if err != nil {
		return err
	}
	logger.Info("Reading dataset", zap.String("path", dataPath))
	table, err := dataset.ReadCSV(ctx, dataPath, cfg.ReadOptions())
	if err != nil {
		return err
	}
	labels, err := table.Labels(cfg.Data.Label)
	if err != nil {
		return err
	}
	inputs, err := table.Select(cfg.Data.Inputs...)
	if err != nil {
		return err
	}

	opts := []cart.Option{cart.WithLogger(logger)}
	if cfg.Train.Workers > 0 {
		opts = append(opts, cart.WithWorkers(cfg.Train.Workers))
	}
	m, err := cart.NewLearner(cfg.Data.Label, cfg.Train.Hyperparameters, opts...).Train(ctx, inputs, labels)
	if err != nil {
		return err
	}

	yPred, err := m.PredictTable(inputs)
	if err != nil {
		return err
	}
	yTrue, err := report.ClassIndices(m.Header().ClassLabels, labels)
	if err != nil {
		return err
	}
	r, err := report.New(m, yTrue, yPred, cfg.Train.TopImportances)
	if err != nil {
		return err
	}
	logger.Info("Training accuracy", zap.Float64("accuracy", r.Accuracy))
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), r.Table()); err != nil {
		return err
	}

	reportPath, err := cfg.Resolve(cfg.Train.Report)
	if err != nil {
		return err
	}
	if reportPath != "" {
		if err := writeFile(ctx, reportPath, func(w *bufio.Writer) error { return r.WriteYAML(w) }); err != nil {
			return err
		}
		logger.Info("Wrote report", zap.String("path", reportPath))
	}

	modelDir, err := cfg.Resolve(cfg.Train.ModelDir)
	if err != nil {
		return err
	}
	if modelDir != "" {
		if err := model_io.SaveModel(ctx, modelDir, m, ""); err != nil {
			return err
		}
		logger.Info("Saved model", zap.String("path", modelDir))
	}

	return exportModel(ctx, cfg, m, logger)
}
