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

// Package engine defines the Engine interface.
package engine

import "github.com/MargaridaSolas/ensembleMethodsTutorial/serving/example"

// Engine generates predictions for a model, given an example.
/*
Usage example:

	import ".../model/io/canonical"

	// Load a model
	model, err := canonical.LoadModel("/path/to/model")

	// Compile the model for fast inference.
	// At this point, the "model" object can be discarded.
	engine, err := serving.NewEngine(model)

	// Obtain the ID of the model input feature (should be only done once).
	featureSafety, used := engine.Features().CategoricalFeatures["safety"]

	// Allocate a batch of examples and predictions
	examples := engine.AllocateExamples(10)
	predictions := engine.AllocatePredictions(10)

	// Set all the example values as missing. This operation is only necessary if
	// not all the feature values will be set.
	examples.FillMissing()

	// Set the feature "safety" to be "high" for the first example.
	examples.SetCategoricalFromString(0, featureSafety, "high")

	// Generates the predictions for the first two examples.
	engine.Predict(examples, 2, predictions)

	// Each example has OutputDim() class probabilities.
	fmt.Println(predictions[:engine.OutputDim()])
*/
type Engine interface {

	// Number of dimensions in the predictions, i.e. the number of classes. Predictions
	// (allocated by "AllocatePredictions" and populated by "Predict") contain "OutputDim"
	// elements for each example (example major; output dim minor).
	OutputDim() int

	// Populates "predictions" with the class probabilities of the examples.
	// If "numExamples" is less than the number of examples allocated in
	// "examples", "Predict" computes the predictions for the first "numExamples"
	// examples.
	Predict(examples *example.Batch, numExamples int, predictions []float32)

	// Allocates a set of examples. A same batch can be re-used multiple time.
	AllocateExamples(maxNumExamples int) *example.Batch

	// Allocates a set of predictions.
	AllocatePredictions(maxNumExamples int) []float32

	// Input features of the model. "Features()" is used to get the feature
	// ids (e.g. "Features().CategoricalFeatures["safety"]") of the model during
	// the initialization phase.
	Features() *example.Features

	// Class labels, indexed like the prediction dimensions.
	ClassLabels() []string
}
