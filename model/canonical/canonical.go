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

// Package canonical registers the "canonical" models.
//
// Model implementations are made accessible through a registration mechanism. Importing
// this package registers all the models of the repository. A binary serving a single type
// of model can instead import the implementation package of that model.
//
// Models (in the "/model" directory) and engines (i.e. optimized code to run models, in
// the "/serving" directory) are independent.
package canonical

import (
	_ "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart" // Okay
)
