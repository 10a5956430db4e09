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

// Package example defines "Batch": a batch of examples; and "Features": the
// specification of the input features of a model.
package example

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
)

// OutOfVocabulary (OOV) is the value of unknown or missing categorical values.
const OutOfVocabulary = uint32(0)

// NumericalFeatureID is the unique identifier of a numerical feature.
type NumericalFeatureID int

// CategoricalFeatureID is the unique identifier of a categorical feature.
type CategoricalFeatureID int

// Features contains the definition of the input features of a model.
type Features struct {
	// NumericalFeatures is the mapping between numerical feature names and numerical feature ids.
	// Indexed by "NumericalFeatureID".
	NumericalFeatures map[string]NumericalFeatureID
	// CategoricalFeatures is the mapping between categorical feature names and categorical feature
	// ids. Indexed by "CategoricalFeatureID".
	CategoricalFeatures map[string]CategoricalFeatureID

	// MissingNumericalValues is the representation of a "missing value" for each of the numerical
	// features: the mean of the training values.
	MissingNumericalValues []float32
	// MissingCategoricalValues is the representation of a "missing value" for each of the
	// categorical features.
	MissingCategoricalValues []uint32

	// CategoricalSpec is the meta-data about the categorical features. Indexed by
	// "CategoricalFeatureID".
	CategoricalSpec []CategoricalSpec

	// NAValues are the raw values considered missing by "SetFromFields".
	NAValues map[string]bool
}

// CategoricalSpec is the meta-data about a categorical feature.
type CategoricalSpec struct {
	// NumUniqueValues of this feature, including the OOV item. The feature value should be in
	// [0, NumUniqueValues).
	NumUniqueValues uint32

	// Dictionary of string values to integer values for this feature. The training category
	// "i" (in sorted order) is mapped to "i+1".
	Dictionary map[string]uint32
}

// FeatureConstructionMap contains the mapping between the column index and the
// feature id. FeatureConstructionMap is only used during the model to engine
// compilation, and it is then discarded.
type FeatureConstructionMap struct {
	// Mapping between a column index (i.e. the index of the column in the
	// dataspec) and a NumericalFeatureID.
	NumericalFeatures map[int]NumericalFeatureID

	// Mapping between a column index (in the dataspec) and a
	// CategoricalFeatureID.
	CategoricalFeatures map[int]CategoricalFeatureID
}

// NewFeatures converts a dataspec into a feature definition used by an engine. All the
// columns of the dataspec are input features.
func NewFeatures(dataspec *dataset.Spec) (*Features, *FeatureConstructionMap, error) {
	features := &Features{
		NumericalFeatures:        map[string]NumericalFeatureID{},
		CategoricalFeatures:      map[string]CategoricalFeatureID{},
		MissingNumericalValues:   make([]float32, 0),
		MissingCategoricalValues: make([]uint32, 0),
		CategoricalSpec:          make([]CategoricalSpec, 0),
		NAValues:                 map[string]bool{},
	}
	for _, v := range dataset.DefaultNAValues {
		features.NAValues[v] = true
	}

	buildMap := &FeatureConstructionMap{
		NumericalFeatures:   map[int]NumericalFeatureID{},
		CategoricalFeatures: map[int]CategoricalFeatureID{},
	}

	for columnIdx, column := range dataspec.Columns {
		switch column.Type {

		case dataset.Numerical:
			featureID := NumericalFeatureID(len(features.NumericalFeatures))
			buildMap.NumericalFeatures[columnIdx] = featureID
			features.NumericalFeatures[column.Name] = featureID
			features.MissingNumericalValues = append(features.MissingNumericalValues, float32(column.Mean))

		case dataset.Categorical:
			featureID := CategoricalFeatureID(len(features.CategoricalFeatures))
			buildMap.CategoricalFeatures[columnIdx] = featureID
			features.CategoricalFeatures[column.Name] = featureID
			features.MissingCategoricalValues = append(features.MissingCategoricalValues, OutOfVocabulary)

			spec := CategoricalSpec{
				NumUniqueValues: uint32(len(column.Categories) + 1),
				Dictionary:      make(map[string]uint32, len(column.Categories)),
			}
			for catIdx, category := range column.Categories {
				spec.Dictionary[category] = uint32(catIdx + 1)
			}
			features.CategoricalSpec = append(features.CategoricalSpec, spec)

		default:
			return nil, nil, fmt.Errorf("Non supported feature %v with type %v", column.Name, column.Type)
		}
	}
	return features, buildMap, nil
}

// NumFeatures is the number of features.
func (f *Features) NumFeatures() int {
	return len(f.NumericalFeatures) + len(f.CategoricalFeatures)
}

// Batch is a set of examples.
type Batch struct {
	features    *Features
	numExamples int

	// {Example major, feature minor} values for the unary feature values.
	NumericalValues   []float32
	CategoricalValues []uint32
}

// NewBatch creates a batch of examples. The example values are in a
// non-defined state: Before being used, the features values should be set
// either with "FillMissing" or "Set*".
func NewBatch(numExamples int, features *Features) *Batch {
	batch := &Batch{numExamples: numExamples, features: features}
	batch.NumericalValues = make([]float32, len(features.NumericalFeatures)*numExamples)
	batch.CategoricalValues = make([]uint32, len(features.CategoricalFeatures)*numExamples)
	return batch
}

// NumAllocatedExamples is the number of allocated examples.
func (batch *Batch) NumAllocatedExamples() int {
	return batch.numExamples
}

// FillMissing sets all the feature values of all the examples as missing.
//
// This method is equivalent to, but more efficient than, calling the
// "SetMissing*" methods for all the features and all the examples.
func (batch *Batch) FillMissing() {
	numNumerical := len(batch.features.NumericalFeatures)
	numCategorical := len(batch.features.CategoricalFeatures)
	for exampleIdx := 0; exampleIdx < batch.numExamples; exampleIdx++ {
		copy(batch.NumericalValues[exampleIdx*numNumerical:(exampleIdx+1)*numNumerical],
			batch.features.MissingNumericalValues)
		copy(batch.CategoricalValues[exampleIdx*numCategorical:(exampleIdx+1)*numCategorical],
			batch.features.MissingCategoricalValues)
	}
}

// SetNumerical sets the value of a numerical feature.
func (batch *Batch) SetNumerical(exampleIdx int, feature NumericalFeatureID, value float32) {
	batch.NumericalValues[int(feature)+exampleIdx*len(batch.features.NumericalFeatures)] = value
}

// SetMissingNumerical sets a numerical feature value as missing.
func (batch *Batch) SetMissingNumerical(exampleIdx int, feature NumericalFeatureID) {
	batch.NumericalValues[int(feature)+exampleIdx*len(batch.features.NumericalFeatures)] =
		batch.features.MissingNumericalValues[feature]
}

// SetCategorical sets the value of a categorical feature as an integer.
func (batch *Batch) SetCategorical(exampleIdx int, feature CategoricalFeatureID, value uint32) {
	batch.CategoricalValues[int(feature)+exampleIdx*len(batch.features.CategoricalFeatures)] = value
}

// SetCategoricalFromString sets the value of a categorical feature. Unknown values are
// out-of-vocabulary.
func (batch *Batch) SetCategoricalFromString(exampleIdx int, feature CategoricalFeatureID, rawValue string) {
	value, exists := batch.features.CategoricalSpec[feature].Dictionary[rawValue]
	if !exists {
		value = OutOfVocabulary
	}
	batch.SetCategorical(exampleIdx, feature, value)
}

// SetMissingCategorical sets a categorical feature value as missing.
func (batch *Batch) SetMissingCategorical(exampleIdx int, feature CategoricalFeatureID) {
	batch.CategoricalValues[int(feature)+exampleIdx*len(batch.features.CategoricalFeatures)] =
		batch.features.MissingCategoricalValues[feature]
}

// SetFromFields sets all the fields of an example from a csv-like field and
// header. This method is slow and should not be used for speed-sensitive code.
//
// Fields equal to one of the NA values (e.g. "", "NA", "NaN") are considered "missing values".
//
// Example:
//
//	examples.SetFromFields(0, ["a","b","c"], ["0.5","UK","NA"])
func (batch *Batch) SetFromFields(exampleIdx int, header []string, values []string) error {
	if len(header) != len(values) {
		return fmt.Errorf("header has %d fields but the example has %d", len(header), len(values))
	}
	for fieldIdx, key := range header {
		rawValue := values[fieldIdx]
		isMissing := batch.features.NAValues[rawValue]

		if numericalFeatureID, found := batch.features.NumericalFeatures[key]; found {
			if isMissing {
				batch.SetMissingNumerical(exampleIdx, numericalFeatureID)
				continue
			}
			value, err := strconv.ParseFloat(rawValue, 32)
			if err != nil {
				return fmt.Errorf("feature %q: %w", key, err)
			}
			batch.SetNumerical(exampleIdx, numericalFeatureID, float32(value))
			continue
		}

		if categoricalFeatureID, found := batch.features.CategoricalFeatures[key]; found {
			if isMissing {
				batch.SetMissingCategorical(exampleIdx, categoricalFeatureID)
				continue
			}
			batch.SetCategoricalFromString(exampleIdx, categoricalFeatureID, rawValue)
			continue
		}
		// This column is not used by the model. We ignore it.
	}
	return nil
}

// SetFromTable sets the examples [0, table.NumRows()) from the rows of a table.
func (batch *Batch) SetFromTable(table *dataset.Table) error {
	if table.NumRows() > batch.numExamples {
		return fmt.Errorf("the table has %d rows but the batch only holds %d examples",
			table.NumRows(), batch.numExamples)
	}
	present := make(map[string]bool, len(table.Columns))
	for _, name := range table.ColumnNames() {
		present[name] = true
	}
	for _, names := range [][]string{
		sortedKeys(batch.features.NumericalFeatures),
		sortedKeys(batch.features.CategoricalFeatures)} {
		for _, name := range names {
			if !present[name] {
				return fmt.Errorf("column %q: %w", name, dataset.ErrUnknownColumn)
			}
		}
	}
	for _, column := range table.Columns {
		if featureID, found := batch.features.NumericalFeatures[column.Name]; found {
			for rowIdx := range column.Values {
				if column.Missing[rowIdx] {
					batch.SetMissingNumerical(rowIdx, featureID)
					continue
				}
				if column.Numbers == nil {
					return fmt.Errorf("column %q is %v but numerical values are expected", column.Name, column.Type)
				}
				batch.SetNumerical(rowIdx, featureID, float32(column.Numbers[rowIdx]))
			}
			continue
		}
		if featureID, found := batch.features.CategoricalFeatures[column.Name]; found {
			for rowIdx, rawValue := range column.Values {
				if column.Missing[rowIdx] {
					batch.SetMissingCategorical(rowIdx, featureID)
					continue
				}
				batch.SetCategoricalFromString(rowIdx, featureID, rawValue)
			}
		}
	}
	return nil
}

// CopyFrom copies the content of a batch from another batch.
// Assumes both batches have the exact same features (e.g. they are created by the same engine).
func (batch *Batch) CopyFrom(src *Batch, beginIdx int, endIdx int) {
	numNumerical := len(batch.features.NumericalFeatures)
	numCategorical := len(batch.features.CategoricalFeatures)
	copy(
		batch.NumericalValues[:(endIdx-beginIdx)*numNumerical],
		src.NumericalValues[beginIdx*numNumerical:endIdx*numNumerical])
	copy(
		batch.CategoricalValues[:(endIdx-beginIdx)*numCategorical],
		src.CategoricalValues[beginIdx*numCategorical:endIdx*numCategorical])
}

// ToStringDebug exports the content of the set of examples into a text-debug representation.
// Features are listed by name.
func (batch *Batch) ToStringDebug() string {
	var repr strings.Builder
	fmt.Fprintf(&repr, "batch with %v example(s)\n", batch.NumAllocatedExamples())

	numericalNames := sortedKeys(batch.features.NumericalFeatures)
	categoricalNames := sortedKeys(batch.features.CategoricalFeatures)

	for exampleIdx := 0; exampleIdx < batch.NumAllocatedExamples(); exampleIdx++ {
		fmt.Fprintf(&repr, "exampleIdx: %v\n", exampleIdx)

		for _, name := range numericalNames {
			featureID := batch.features.NumericalFeatures[name]
			value := batch.NumericalValues[int(featureID)+exampleIdx*len(batch.features.NumericalFeatures)]
			fmt.Fprintf(&repr, "\"%v\" (NUMERICAL id:%v): \"%v\"\n", name, featureID, value)
		}

		for _, name := range categoricalNames {
			featureID := batch.features.CategoricalFeatures[name]
			value := batch.CategoricalValues[int(featureID)+exampleIdx*len(batch.features.CategoricalFeatures)]
			strValue := "<OOV>"
			for itemKey, itemIdx := range batch.features.CategoricalSpec[featureID].Dictionary {
				if itemIdx == value {
					strValue = itemKey
					break
				}
			}
			fmt.Fprintf(&repr, "\"%v\" (CATEGORICAL id:%v): \"%v\"\n", name, featureID, strValue)
		}
	}
	return repr.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
