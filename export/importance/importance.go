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

// Package importance ranks and plots the feature importances of a model.
package importance

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNothingToPlot is returned when all the importances are zero.
var ErrNothingToPlot = errors.New("no feature with a non-zero importance")

// Importance is the importance of a single feature.
type Importance struct {
	Feature    string  `yaml:"feature"`
	Importance float64 `yaml:"importance"`
}

// Ranked returns the features with a non-zero importance, most important first. Features
// with equal importance keep their original order.
func Ranked(names []string, importances []float64) ([]Importance, error) {
	if len(names) != len(importances) {
		return nil, fmt.Errorf("%d feature names for %d importances", len(names), len(importances))
	}
	var ranked []Importance
	for i, v := range importances {
		if v > 0 {
			ranked = append(ranked, Importance{Feature: names[i], Importance: v})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Importance > ranked[j].Importance })
	return ranked, nil
}

// Plot draws a horizontal bar chart of the non-zero importances. "format" is one of the
// formats supported by gonum plot, e.g. "png", "svg" or "pdf".
func Plot(w io.Writer, names []string, importances []float64, format string) error {
	ranked, err := Ranked(names, importances)
	if err != nil {
		return err
	}
	if len(ranked) == 0 {
		return ErrNothingToPlot
	}

	// The most important feature is drawn at the top.
	values := make(plotter.Values, len(ranked))
	labels := make([]string, len(ranked))
	for i, item := range ranked {
		values[len(ranked)-1-i] = item.Importance
		labels[len(ranked)-1-i] = item.Feature
	}

	p := plot.New()
	p.Title.Text = "Feature importances"
	p.X.Label.Text = "Normalized impurity decrease"
	p.X.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Horizontal = true
	bars.Color = color.RGBA{R: 57, G: 157, B: 229, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(labels...)

	height := vg.Length(len(ranked))*vg.Points(18) + 1.5*vg.Inch
	writer, err := p.WriterTo(6*vg.Inch, height, format)
	if err != nil {
		return err
	}
	_, err = writer.WriteTo(w)
	return err
}
