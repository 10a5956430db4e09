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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/dataset"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/report"
)

func newHeadCmd(a *app) *cobra.Command {
	var dataPath string
	var numRows int
	cmd := &cobra.Command{
		Use:   "head",
		Short: "Print the first rows of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			setString(cmd.Flags().Changed("data"), &cfg.Data.Path, dataPath)
			path, err := cfg.Resolve(cfg.Data.Path)
			if err != nil {
				return err
			}
			table, err := dataset.ReadCSV(cmd.Context(), path, cfg.ReadOptions())
			if err != nil {
				return err
			}
			header, rows := table.Head(numRows)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n[%d rows x %d columns]\n",
				report.RenderTable(header, rows), table.NumRows(), len(table.Columns))
			return err
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the dataset (default: <project>/data/cars_dataset.csv)")
	cmd.Flags().IntVarP(&numRows, "num-rows", "n", 5, "Number of rows to print, -1 for all")
	return cmd
}
