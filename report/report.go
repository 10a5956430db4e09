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

// Package report evaluates a trained model on labeled examples and renders the result as
// YAML or as terminal tables.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/export/importance"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
)

// ErrUnknownClass is returned when a label is not one of the classes of the model.
var ErrUnknownClass = errors.New("unknown class")

// Report summarizes a model and its quality on a dataset.
type Report struct {
	ModelID     string   `yaml:"model_id"`
	Label       string   `yaml:"label"`
	NumExamples int      `yaml:"num_examples"`
	NumFeatures int      `yaml:"num_features"`
	Classes     []string `yaml:"classes"`
	Accuracy    float64  `yaml:"accuracy"`
	// ConfusionMatrix[i][j] is the number of examples of class i predicted as class j.
	ConfusionMatrix [][]int                 `yaml:"confusion_matrix"`
	NumNodes        int                     `yaml:"num_nodes"`
	NumLeaves       int                     `yaml:"num_leaves"`
	Depth           int                     `yaml:"depth"`
	Importances     []importance.Importance `yaml:"importances,omitempty"`
}

// ClassIndices maps labels to their index in "classes".
func ClassIndices(classes []string, labels []string) ([]int, error) {
	index := make(map[string]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}
	indices := make([]int, len(labels))
	for i, label := range labels {
		classIdx, found := index[label]
		if !found {
			return nil, fmt.Errorf("label %q of example %d: %w", label, i, ErrUnknownClass)
		}
		indices[i] = classIdx
	}
	return indices, nil
}

// Accuracy is the ratio of correct predictions.
func Accuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("%d labels for %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, nil
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts the (true class, predicted class) pairs.
func ConfusionMatrix(numClasses int, yTrue, yPred []int) ([][]int, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%d labels for %d predictions", len(yTrue), len(yPred))
	}
	matrix := make([][]int, numClasses)
	for i := range matrix {
		matrix[i] = make([]int, numClasses)
	}
	for i := range yTrue {
		if yTrue[i] < 0 || yTrue[i] >= numClasses || yPred[i] < 0 || yPred[i] >= numClasses {
			return nil, fmt.Errorf("example %d: class out of range [0, %d)", i, numClasses)
		}
		matrix[yTrue[i]][yPred[i]]++
	}
	return matrix, nil
}

// New evaluates the predictions "yPred" of a model against the labels "yTrue". At most
// "topImportances" feature importances are reported; -1 reports all of them.
func New(m *cart.Model, yTrue, yPred []int, topImportances int) (*Report, error) {
	accuracy, err := Accuracy(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	matrix, err := ConfusionMatrix(m.NumClasses(), yTrue, yPred)
	if err != nil {
		return nil, err
	}
	r := &Report{
		ModelID:         m.Header().ID,
		Label:           m.Header().Label,
		NumExamples:     len(yTrue),
		NumFeatures:     m.NumFeatures(),
		Classes:         m.Header().ClassLabels,
		Accuracy:        accuracy,
		ConfusionMatrix: matrix,
		NumNodes:        m.Tree.NumNodes(),
		NumLeaves:       m.Tree.NumLeafs(),
		Depth:           m.Tree.Depth(),
	}
	if importances := m.FeatureImportances(); len(importances) > 0 {
		ranked, err := importance.Ranked(m.Header().InputFeatures, importances)
		if err != nil {
			return nil, err
		}
		if topImportances >= 0 && len(ranked) > topImportances {
			ranked = ranked[:topImportances]
		}
		r.Importances = ranked
	}
	return r, nil
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r); err != nil {
		return err
	}
	return encoder.Close()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#399de5"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// RenderTable renders rows of cells as a bordered table.
func RenderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// Table renders the report as terminal tables.
func (r *Report) Table() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Model"))
	sb.WriteString("\n")
	sb.WriteString(RenderTable([]string{"property", "value"}, [][]string{
		{"model id", r.ModelID},
		{"label", r.Label},
		{"examples", strconv.Itoa(r.NumExamples)},
		{"features", strconv.Itoa(r.NumFeatures)},
		{"nodes", strconv.Itoa(r.NumNodes)},
		{"leaves", strconv.Itoa(r.NumLeaves)},
		{"depth", strconv.Itoa(r.Depth)},
		{"accuracy", strconv.FormatFloat(r.Accuracy, 'f', 4, 64)},
	}))
	sb.WriteString("\n\n")

	sb.WriteString(titleStyle.Render("Confusion matrix (rows: truth, columns: prediction)"))
	sb.WriteString("\n")
	headers := append([]string{""}, r.Classes...)
	rows := make([][]string, len(r.ConfusionMatrix))
	for i, counts := range r.ConfusionMatrix {
		row := make([]string, 0, len(counts)+1)
		row = append(row, r.Classes[i])
		for _, c := range counts {
			row = append(row, strconv.Itoa(c))
		}
		rows[i] = row
	}
	sb.WriteString(RenderTable(headers, rows))

	if len(r.Importances) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(titleStyle.Render("Feature importances"))
		sb.WriteString("\n")
		rows := make([][]string, len(r.Importances))
		for i, item := range r.Importances {
			rows[i] = []string{item.Feature, strconv.FormatFloat(item.Importance, 'f', 4, 64)}
		}
		sb.WriteString(RenderTable([]string{"feature", "importance"}, rows))
	}
	return sb.String()
}
