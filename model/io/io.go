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

// Package io contains utilities to save and load models. It doesn't include any actual model
// type support by default. Consider using instead the subpackage `canonical` that includes
// the canonical (standard) model types support.
package io

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/file"
)

// Specific model filenames.
const modelHeaderFileName = "header.pb"
const modelDataSpecFileName = "data_spec.pb"

// LoadModel loads a model from disk.
func LoadModel(modelPath string) (model.Model, error) {
	prefix, err := DetectFilePrefix(modelPath)
	if err != nil {
		return nil, err
	}
	return LoadModelWithPrefix(modelPath, prefix)
}

func registeredModelNames() []string {
	names := make([]string, 0, len(model.RegisteredBuilders))
	for name := range model.RegisteredBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadModelWithPrefix loads a model with a prefix from disk.
//
// The "prefix" is a string append to the name of all the files in the model. Using a prefix make
// it possible to store multiple models in the same directory without sub-directories.
func LoadModelWithPrefix(modelPath string, prefix string) (model.Model, error) {
	ctx := context.Background()

	serializedHeader, err := file.ReadFile(ctx, filepath.Join(modelPath, prefix+modelHeaderFileName))
	if err != nil {
		return nil, err
	}
	header := &model.Header{}
	if err := header.UnmarshalBinary(serializedHeader); err != nil {
		return nil, fmt.Errorf("invalid model header: %w", err)
	}

	serializedDataspec, err := file.ReadFile(ctx, filepath.Join(modelPath, prefix+modelDataSpecFileName))
	if err != nil {
		return nil, err
	}
	dataspec := &dataset.Spec{}
	if err := dataspec.UnmarshalBinary(serializedDataspec); err != nil {
		return nil, fmt.Errorf("invalid dataspec: %w", err)
	}

	// Instantiate the model object.
	builder, hasBuilder := model.RegisteredBuilders[header.Name]
	if !hasBuilder {
		return nil, fmt.Errorf(
			"unknown model %q. The available models are: %v. This may be because this type of model "+
				"was not imported -- directly or through the \"canonical\" package that automatically "+
				"imports all implemented models",
			header.Name, registeredModelNames())
	}

	// Load the model specific content.
	model := builder(header, dataspec)
	if err = model.LoadSpecific(modelPath, prefix); err != nil {
		return nil, err
	}

	return model, nil
}

// SaveModel saves a model in a directory. The directory is created if missing.
func SaveModel(ctx context.Context, modelPath string, m model.Implementation, prefix string) error {
	if err := file.MkdirAll(ctx, modelPath); err != nil {
		return err
	}

	serializedHeader, err := m.Header().MarshalBinary()
	if err != nil {
		return err
	}
	if err := file.WriteFile(ctx, filepath.Join(modelPath, prefix+modelHeaderFileName), serializedHeader); err != nil {
		return err
	}

	serializedDataspec, err := m.Dataspec().MarshalBinary()
	if err != nil {
		return err
	}
	if err := file.WriteFile(ctx, filepath.Join(modelPath, prefix+modelDataSpecFileName), serializedDataspec); err != nil {
		return err
	}

	return m.SaveSpecific(modelPath, prefix)
}

// DetectFilePrefix detect the prefix of the model.
func DetectFilePrefix(modelPath string) (string, error) {
	files, err := file.Match(context.Background(), filepath.Join(modelPath, "*"+modelDataSpecFileName), file.StatNone)
	if err != nil {
		return "", err
	}
	if len(files) != 1 {
		return "", fmt.Errorf("file prefix cannot be autodetected: %v models exist in %v. A model directory should contain a filename finishing by \"data_spec.pb\"",
			len(files), modelPath)
	}
	dataspecFilename := filepath.Base(files[0].Path)
	return dataspecFilename[:len(dataspecFilename)-len(modelDataSpecFileName)], nil
}
