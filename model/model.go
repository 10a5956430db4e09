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

// Package model defines the "Model" interface.
package model

import (
	"google.golang.org/protobuf/proto"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/proto"
)

// Model is a generic model interface.
//
// Examples:
//
// // Train a new decision tree
// model, err := cart.NewLearner(hparams).Train(ctx, table, "target")
//
// // Load an existing model.
// model, err := io.LoadModel("/path/to/model")
// fmt.Println("My model is a %v.", model.Name())
// >> My model is a CART_CLASSIFIER.
type Model interface {

	// Registered name of the model.
	Name() string

	// Header of the model.
	Header() *Header

	// Dataspec of the input columns of the model.
	Dataspec() *dataset.Spec
}

// Implementation interface needs to be implemented by Models (mostly internal).
// Not needed by those only using a model.
type Implementation interface {
	Model

	// LoadSpecific loads the model implementation specific data from a directory.
	// Users are not expected to call this method directly. Instead, models
	// should be loaded with "model, err := io.LoadModel(path)".
	LoadSpecific(modelPath string, prefix string) error

	// SaveSpecific saves the model implementation specific data in a directory.
	SaveSpecific(modelPath string, prefix string) error
}

// RegisteredBuilders is the list of model builders, keyed by a unique `ModelKey` string per model type.
// Only register (change) this during the runtime initialization, in `init()` function.
// End users probably want to use `io.LoadModel()` to load models instead.
var RegisteredBuilders = make(map[string]func(header *Header, dataspec *dataset.Spec) Implementation)

// Header contains the meta-data shared by all the models.
type Header struct {
	// Registered name of the model.
	Name string
	// Unique identifier of the model, generated at training time.
	ID string
	// Name of the label column.
	Label string
	// Label values. The i-th class of the model has label ClassLabels[i].
	ClassLabels []string
	// Names of the input features, as consumed by the model (after encoding).
	InputFeatures []string
	// Tool that trained the model.
	Framework string
	// Training time, in seconds since the epoch.
	CreatedUnix int64
}

// MarshalBinary serializes the header.
func (h *Header) MarshalBinary() ([]byte, error) {
	return proto.Marshal(&pb.Header{
		Name:          h.Name,
		Id:            h.ID,
		Label:         h.Label,
		ClassLabels:   h.ClassLabels,
		InputFeatures: h.InputFeatures,
		Framework:     h.Framework,
		CreatedUnix:   h.CreatedUnix,
	})
}

// UnmarshalBinary parses a header serialized with MarshalBinary.
func (h *Header) UnmarshalBinary(data []byte) error {
	raw := &pb.Header{}
	if err := proto.Unmarshal(data, raw); err != nil {
		return err
	}
	*h = Header{
		Name:          raw.GetName(),
		ID:            raw.GetId(),
		Label:         raw.GetLabel(),
		ClassLabels:   raw.GetClassLabels(),
		InputFeatures: raw.GetInputFeatures(),
		Framework:     raw.GetFramework(),
		CreatedUnix:   raw.GetCreatedUnix(),
	}
	return nil
}
