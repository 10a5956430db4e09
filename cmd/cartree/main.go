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

// Command cartree trains, inspects and serves decision tree classifiers over delimited
// datasets.
//
// Usage example:
//
//	# Train on <project>/data/cars_dataset.csv and write <project>/tree2.dot.
//	cartree train --project-dir=.
//
//	# Train with a configuration file and save the model.
//	cartree train --config=cartree.yaml --model-dir=/tmp/cars_model
//
//	# Predict with a saved model.
//	cartree predict --model=/tmp/cars_model --data=data/cars_dataset.csv
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/config"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by the commands.
type app struct {
	configPath string
	projectDir string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "cartree",
		Short: "Decision tree classifiers for delimited datasets",
		Long: `cartree trains a CART decision tree classifier on one-hot encoded categorical
columns, evaluates it, and exports it to the Graphviz dot language.

Configuration is read from the file given with --config, then from the CARTREE_*
environment variables (e.g. CARTREE_TRAIN_MAX_DEPTH=3), then from the flags.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.projectDir, "project-dir", "", "Directory against which relative paths are resolved (default: parent of the working directory)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json or console")

	rootCmd.AddCommand(newTrainCmd(a))
	rootCmd.AddCommand(newPredictCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newHeadCmd(a))
	rootCmd.AddCommand(newBenchmarkCmd(a))
	return rootCmd
}

// setup loads the configuration, applies the global flags and creates the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Context(), a.configPath)
	if err != nil {
		return err
	}
	if a.projectDir != "" {
		cfg.ProjectDir = a.projectDir
	}
	if a.logLevel != "" {
		level, err := zapcore.ParseLevel(a.logLevel)
		if err != nil {
			return err
		}
		cfg.Log.Level = level
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	logger, err := logging.NewWithWriter(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
