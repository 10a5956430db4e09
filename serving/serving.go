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

// Package serving is the entry point for model inference (serving). It picks the inference
// engine matching the model.
package serving

import (
	"fmt"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/model"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	dt_engine "github.com/MargaridaSolas/ensembleMethodsTutorial/serving/decisiontree"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/serving/engine"
)

// NewEngine creates the best available engine for the model. It fails if no engine is available
// for the model.
func NewEngine(model model.Model) (engine.Engine, error) {
	if cartModel, match := model.(*cart.Model); match {
		return dt_engine.NewEngine(cartModel)
	}
	return nil, fmt.Errorf("No engine compatible to the model %q", model.Name())
}
