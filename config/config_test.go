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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cartree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, cart.CriterionEntropy, cfg.Train.Criterion)
	assert.Equal(t, int64(0), cfg.Train.RandomState)
	assert.Equal(t, 2, cfg.Train.MinSamplesSplit)
	assert.Equal(t, filepath.Join("data", "cars_dataset.csv"), cfg.Data.Path)
	assert.Equal(t, ";", cfg.Data.Delimiter)
	assert.Equal(t, "cars", cfg.Data.IndexColumn)
	assert.Equal(t, []string{"cars", "doors", "seats"}, cfg.Data.StringColumns)
	assert.Equal(t, []string{"buying", "maint", "doors", "lugg_boot", "safety"}, cfg.Data.Inputs)
	assert.Equal(t, "target", cfg.Data.Label)
	assert.Equal(t, "tree2.dot", cfg.Export.DotPath)
	assert.Equal(t, -1, cfg.Export.MaxDepth)
	assert.True(t, cfg.Export.Impurity)
	assert.False(t, cfg.Export.FeatureNames)
	assert.Equal(t, zapcore.InfoLevel, cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
project_dir: /tmp/project
log:
  level: debug
  format: json
data:
  inputs: [buying, safety]
train:
  criterion: gini
  max_depth: 3
  workers: 4
export:
  filled: true
  rounded: true
`)
	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/project", cfg.ProjectDir)
	assert.Equal(t, zapcore.DebugLevel, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"buying", "safety"}, cfg.Data.Inputs)
	assert.Equal(t, "gini", cfg.Train.Criterion)
	assert.Equal(t, 3, cfg.Train.MaxDepth)
	assert.Equal(t, 4, cfg.Train.Workers)
	assert.True(t, cfg.Export.Filled)
	assert.True(t, cfg.Export.Rounded)
	// Untouched values keep their defaults.
	assert.Equal(t, "target", cfg.Data.Label)
	assert.Equal(t, 1, cfg.Train.MinSamplesLeaf)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "train:\n  max_depth: 3\n")
	t.Setenv("CARTREE_TRAIN_MAX_DEPTH", "5")
	t.Setenv("CARTREE_TRAIN_MODEL_DIR", "/tmp/model")
	t.Setenv("CARTREE_DATA_INPUTS", "buying, maint")
	t.Setenv("CARTREE_EXPORT_FILLED", "true")
	t.Setenv("CARTREE_PROJECT_DIR", "/srv/cars")

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Train.MaxDepth)
	assert.Equal(t, "/tmp/model", cfg.Train.ModelDir)
	assert.Equal(t, []string{"buying", "maint"}, cfg.Data.Inputs)
	assert.True(t, cfg.Export.Filled)
	assert.Equal(t, "/srv/cars", cfg.ProjectDir)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "train.max_depth", envKey("CARTREE_TRAIN_MAX_DEPTH"))
	assert.Equal(t, "log.level", envKey("CARTREE_LOG_LEVEL"))
	assert.Equal(t, "project_dir", envKey("CARTREE_PROJECT_DIR"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(context.Background(), writeConfig(t, "train: [unclosed"))
	assert.Error(t, err)

	_, err = Load(context.Background(), writeConfig(t, "train:\n  criterion: log_loss\n"))
	assert.ErrorContains(t, err, "criterion")

	_, err = Load(context.Background(), writeConfig(t, "data:\n  delimiter: ';;'\n"))
	assert.ErrorContains(t, err, "delimiter")

	_, err = Load(context.Background(), writeConfig(t, "data:\n  inputs: [target]\n"))
	assert.ErrorContains(t, err, "label")

	_, err = Load(context.Background(), writeConfig(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "format")
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.ProjectDir = "/srv/cars"
	path, err := cfg.Resolve("data/cars_dataset.csv")
	require.NoError(t, err)
	assert.Equal(t, "/srv/cars/data/cars_dataset.csv", path)

	path, err = cfg.Resolve("/abs/tree.dot")
	require.NoError(t, err)
	assert.Equal(t, "/abs/tree.dot", path)

	cfg.ProjectDir = ""
	wd, err := os.Getwd()
	require.NoError(t, err)
	projectDir, err := cfg.ResolveProjectDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(wd), projectDir)
}

func TestDerivedOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.ReadOptions()
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, "cars", opts.IndexColumn)

	export := cfg.GraphvizOptions([]string{"a"}, []string{"x", "y"}, "entropy")
	assert.Nil(t, export.FeatureNames)
	assert.Nil(t, export.ClassNames)
	assert.Equal(t, "entropy", export.CriterionName)
	assert.Equal(t, 3, export.Precision)

	cfg.Export.FeatureNames = true
	cfg.Export.ClassNames = true
	export = cfg.GraphvizOptions([]string{"a"}, []string{"x", "y"}, "gini")
	assert.Equal(t, []string{"a"}, export.FeatureNames)
	assert.Equal(t, []string{"x", "y"}, export.ClassNames)
}
