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
	"github.com/spf13/cobra"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/cli/benchmark"
)

func newBenchmarkCmd(a *app) *cobra.Command {
	var modelPath, datasetPath string
	var numRuns, batchSize, warmupRuns int
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark the inference speed of a saved model",
		Long: `Benchmark the inference speed of a saved model on a dataset.

Examples:
  cartree benchmark --model=/tmp/cars_model --dataset=csv:data/cars_dataset.csv --num-runs=100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			setInt(flags.Changed("num-runs"), &cfg.Benchmark.NumRuns, numRuns)
			setInt(flags.Changed("batch-size"), &cfg.Benchmark.BatchSize, batchSize)
			setInt(flags.Changed("warmup-runs"), &cfg.Benchmark.WarmupRuns, warmupRuns)
			if datasetPath == "" {
				dataPath, err := cfg.Resolve(cfg.Data.Path)
				if err != nil {
					return err
				}
				datasetPath = "csv:" + dataPath
			}
			options := &benchmark.Options{
				NumRuns:     cfg.Benchmark.NumRuns,
				BatchSize:   cfg.Benchmark.BatchSize,
				WarmupRuns:  cfg.Benchmark.WarmupRuns,
				ReadOptions: cfg.ReadOptions(),
			}
			_, err := benchmark.Run(cmd.Context(), cmd.OutOrStdout(), modelPath, datasetPath, options, a.logger)
			return err
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "Path to the model directory")
	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Typed path to the dataset e.g. csv:/tmp/cars.csv (default: the configured dataset)")
	cmd.Flags().IntVar(&numRuns, "num-runs", 20, "Number of times the dataset is run. Higher values increase the precision of the timings, but increase the duration of the benchmark.")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Number of examples per batch.")
	cmd.Flags().IntVar(&warmupRuns, "warmup-runs", 1, "Number of runs through the dataset before the benchmark.")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}
