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

// Package config loads the configuration of the cartree tools.
//
// Configuration precedence (highest to lowest):
//  1. Command line flags (applied by the caller).
//  2. Environment variables prefixed with "CARTREE_".
//  3. The YAML configuration file.
//  4. Defaults.
//
// Environment variables map to configuration keys by splitting on the first underscore
// after the prefix:
//
//	CARTREE_TRAIN_MAX_DEPTH -> train.max_depth
//	CARTREE_DATA_DELIMITER  -> data.delimiter
//	CARTREE_LOG_LEVEL       -> log.level
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/export/graphviz"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/logging"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/file"
)

// EnvPrefix is the prefix of the environment variables read by Load.
const EnvPrefix = "CARTREE_"

const maxConfigFileSize = 1024 * 1024

// Config is the complete configuration.
type Config struct {
	// Directory against which the relative paths are resolved. Empty means the parent of
	// the working directory.
	ProjectDir string          `koanf:"project_dir" yaml:"project_dir"`
	Log        logging.Config  `koanf:"log" yaml:"log"`
	Data       DataConfig      `koanf:"data" yaml:"data"`
	Train      TrainConfig     `koanf:"train" yaml:"train"`
	Export     ExportConfig    `koanf:"export" yaml:"export"`
	Benchmark  BenchmarkConfig `koanf:"benchmark" yaml:"benchmark"`
}

// DataConfig describes the dataset file and its columns.
type DataConfig struct {
	Path          string   `koanf:"path" yaml:"path"`
	Delimiter     string   `koanf:"delimiter" yaml:"delimiter"`
	IndexColumn   string   `koanf:"index_column" yaml:"index_column"`
	StringColumns []string `koanf:"string_columns" yaml:"string_columns"`
	Inputs        []string `koanf:"inputs" yaml:"inputs"`
	Label         string   `koanf:"label" yaml:"label"`
}

// TrainConfig holds the learner settings and the training outputs.
type TrainConfig struct {
	cart.Hyperparameters `koanf:",squash" yaml:",inline"`
	// Number of goroutines evaluating the candidate splits. 0 uses all the CPUs.
	Workers int `koanf:"workers" yaml:"workers"`
	// Directory where the model is saved. Empty disables saving.
	ModelDir string `koanf:"model_dir" yaml:"model_dir"`
	// Path of the YAML training report. Empty disables the report file.
	Report string `koanf:"report" yaml:"report"`
	// Number of feature importances shown in the report. -1 shows all of them.
	TopImportances int `koanf:"top_importances" yaml:"top_importances"`
}

// ExportConfig controls the Graphviz export.
type ExportConfig struct {
	// Path of the dot file. Empty disables the export.
	DotPath string `koanf:"dot_path" yaml:"dot_path"`
	// If set, the dot file is also rendered with the "dot" binary in this format, e.g. "png".
	Render string `koanf:"render" yaml:"render"`
	// Path of the importance chart. Empty disables the chart.
	ImportancePlot    string `koanf:"importance_plot" yaml:"importance_plot"`
	MaxDepth          int    `koanf:"max_depth" yaml:"max_depth"`
	FeatureNames      bool   `koanf:"feature_names" yaml:"feature_names"`
	ClassNames        bool   `koanf:"class_names" yaml:"class_names"`
	Label             string `koanf:"label" yaml:"label"`
	Filled            bool   `koanf:"filled" yaml:"filled"`
	LeavesParallel    bool   `koanf:"leaves_parallel" yaml:"leaves_parallel"`
	Impurity          bool   `koanf:"impurity" yaml:"impurity"`
	NodeIDs           bool   `koanf:"node_ids" yaml:"node_ids"`
	Proportion        bool   `koanf:"proportion" yaml:"proportion"`
	Rotate            bool   `koanf:"rotate" yaml:"rotate"`
	Rounded           bool   `koanf:"rounded" yaml:"rounded"`
	SpecialCharacters bool   `koanf:"special_characters" yaml:"special_characters"`
	Precision         int    `koanf:"precision" yaml:"precision"`
}

// BenchmarkConfig controls the inference benchmark.
type BenchmarkConfig struct {
	NumRuns    int `koanf:"num_runs" yaml:"num_runs"`
	BatchSize  int `koanf:"batch_size" yaml:"batch_size"`
	WarmupRuns int `koanf:"warmup_runs" yaml:"warmup_runs"`
}

// Default returns the configuration of the reference run: an entropy tree over the cars
// dataset, exported to "tree2.dot".
func Default() *Config {
	hparams := cart.DefaultHyperparameters()
	hparams.Criterion = cart.CriterionEntropy
	defaultExport := graphviz.DefaultOptions()
	return &Config{
		Log: logging.DefaultConfig(),
		Data: DataConfig{
			Path:          filepath.Join("data", "cars_dataset.csv"),
			Delimiter:     ";",
			IndexColumn:   "cars",
			StringColumns: []string{"cars", "doors", "seats"},
			Inputs:        []string{"buying", "maint", "doors", "lugg_boot", "safety"},
			Label:         "target",
		},
		Train: TrainConfig{
			Hyperparameters: hparams,
			TopImportances:  10,
		},
		Export: ExportConfig{
			DotPath:   "tree2.dot",
			MaxDepth:  defaultExport.MaxDepth,
			Label:     defaultExport.Label,
			Impurity:  defaultExport.Impurity,
			Precision: defaultExport.Precision,
		},
		Benchmark: BenchmarkConfig{
			NumRuns:    20,
			BatchSize:  100,
			WarmupRuns: 1,
		},
	}
}

// envKey maps an environment variable to a configuration key.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	// Keys of the root section contain an underscore themselves.
	if lower == "project_dir" {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Load reads the configuration file at "configPath" (skipped if empty), then the
// environment variables, on top of the defaults.
func Load(ctx context.Context, configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := file.ReadFile(ctx, configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if len(content) > maxConfigFileSize {
			return nil, fmt.Errorf("config file %s is larger than %d bytes", configPath, maxConfigFileSize)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	// Lists replace the defaults instead of being merged into them. The environment
	// provides them comma separated.
	for _, key := range []string{"data.string_columns", "data.inputs"} {
		if s, ok := k.Get(key).(string); ok {
			if err := k.Set(key, splitList(s)); err != nil {
				return nil, err
			}
		}
	}
	if k.Exists("data.string_columns") {
		cfg.Data.StringColumns = nil
	}
	if k.Exists("data.inputs") {
		cfg.Data.Inputs = nil
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("data.delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if c.Data.Label == "" {
		return fmt.Errorf("data.label is required")
	}
	if len(c.Data.Inputs) == 0 {
		return fmt.Errorf("data.inputs must not be empty")
	}
	for _, input := range c.Data.Inputs {
		if input == c.Data.Label {
			return fmt.Errorf("label %q is also an input", input)
		}
		if input == c.Data.IndexColumn {
			return fmt.Errorf("index column %q is also an input", input)
		}
	}
	if err := c.Train.Hyperparameters.Validate(); err != nil {
		return err
	}
	if c.Train.Workers < 0 {
		return fmt.Errorf("train.workers must be >= 0, got %d", c.Train.Workers)
	}
	if c.Export.Precision < 0 {
		return fmt.Errorf("export.precision must be >= 0, got %d", c.Export.Precision)
	}
	switch c.Export.Label {
	case graphviz.LabelAll, graphviz.LabelRoot, graphviz.LabelNone:
	default:
		return fmt.Errorf("unknown export.label %q", c.Export.Label)
	}
	if c.Benchmark.NumRuns < 1 || c.Benchmark.BatchSize < 1 || c.Benchmark.WarmupRuns < 0 {
		return fmt.Errorf("invalid benchmark settings %+v", c.Benchmark)
	}
	return nil
}

// ResolveProjectDir returns the project directory: ProjectDir if set, the parent of the
// working directory otherwise.
func (c *Config) ResolveProjectDir() (string, error) {
	if c.ProjectDir != "" {
		return filepath.Abs(c.ProjectDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Dir(wd), nil
}

// Resolve returns "path" joined to the project directory, unless it is empty or absolute.
func (c *Config) Resolve(path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return path, nil
	}
	projectDir, err := c.ResolveProjectDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(projectDir, path), nil
}

// ReadOptions are the dataset parsing options.
func (c *Config) ReadOptions() dataset.ReadOptions {
	delimiter, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return dataset.ReadOptions{
		Delimiter:     delimiter,
		IndexColumn:   c.Data.IndexColumn,
		StringColumns: c.Data.StringColumns,
	}
}

// GraphvizOptions are the export options of a model with the given feature and class
// names and split criterion.
func (c *Config) GraphvizOptions(featureNames, classNames []string, criterion string) graphviz.Options {
	opts := graphviz.Options{
		MaxDepth:          c.Export.MaxDepth,
		Label:             c.Export.Label,
		Filled:            c.Export.Filled,
		LeavesParallel:    c.Export.LeavesParallel,
		Impurity:          c.Export.Impurity,
		NodeIDs:           c.Export.NodeIDs,
		Proportion:        c.Export.Proportion,
		Rotate:            c.Export.Rotate,
		Rounded:           c.Export.Rounded,
		SpecialCharacters: c.Export.SpecialCharacters,
		Precision:         c.Export.Precision,
		CriterionName:     criterion,
	}
	if c.Export.FeatureNames {
		opts.FeatureNames = featureNames
	}
	if c.Export.ClassNames {
		opts.ClassNames = classNames
	}
	return opts
}
