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

package main

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	model_io "github.com/MargaridaSolas/ensembleMethodsTutorial/model/io/canonical"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/serving"
)

func newPredictCmd(a *app) *cobra.Command {
	var modelPath, dataPath, outputPath string
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of the rows of a dataset with a saved model",
		Long: `Predict the class of the rows of a dataset with a saved model. Each output row
contains the row label, the predicted class and the probability of each class.

Examples:
  cartree predict --model=/tmp/cars_model --data=data/cars_dataset.csv --output=/tmp/predictions.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg
			setString(cmd.Flags().Changed("data"), &cfg.Data.Path, dataPath)
			path, err := cfg.Resolve(cfg.Data.Path)
			if err != nil {
				return err
			}

			m, err := model_io.LoadModel(modelPath)
			if err != nil {
				return err
			}
			engine, err := serving.NewEngine(m)
			if err != nil {
				return err
			}
			table, err := dataset.ReadCSV(ctx, path, cfg.ReadOptions())
			if err != nil {
				return err
			}
			examples := engine.AllocateExamples(table.NumRows())
			if err := examples.SetFromTable(table); err != nil {
				return err
			}
			predictions := engine.AllocatePredictions(table.NumRows())
			engine.Predict(examples, table.NumRows(), predictions)
			a.logger.Info("Predicted", zap.Int("examples", table.NumRows()), zap.String("model_id", m.Header().ID))

			delimiter, _ := utf8.DecodeRuneInString(cfg.Data.Delimiter)
			if outputPath == "" {
				return writePredictions(cmd.OutOrStdout(), delimiter, table, engine.ClassLabels(), predictions)
			}
			return writeFile(ctx, outputPath, func(w *bufio.Writer) error {
				return writePredictions(w, delimiter, table, engine.ClassLabels(), predictions)
			})
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "Path to the model directory")
	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the dataset (default: <project>/data/cars_dataset.csv)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Path of the predictions (default: standard output)")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

// writePredictions writes one row per example: the row label, the predicted class and
// the class probabilities.
func writePredictions(w io.Writer, delimiter rune, table *dataset.Table, classes []string, predictions []float32) error {
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	index := table.Index
	if index == "" {
		index = "row"
	}
	header := []string{index, "prediction"}
	for _, class := range classes {
		header = append(header, "p_"+class)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	numClasses := len(classes)
	for exampleIdx := 0; exampleIdx < table.NumRows(); exampleIdx++ {
		probas := predictions[exampleIdx*numClasses : (exampleIdx+1)*numClasses]
		best := 0
		for classIdx, p := range probas {
			if p > probas[best] {
				best = classIdx
			}
		}
		row := []string{table.IndexValues[exampleIdx], classes[best]}
		for _, p := range probas {
			row = append(row, strconv.FormatFloat(float64(p), 'g', 6, 32))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
