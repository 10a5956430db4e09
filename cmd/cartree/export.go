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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/config"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/export/graphviz"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/export/importance"
	cart "github.com/MargaridaSolas/ensembleMethodsTutorial/model/cart"
	model_io "github.com/MargaridaSolas/ensembleMethodsTutorial/model/io/canonical"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/file"
)

// exportFlags are the flags controlling the Graphviz export. They override the
// configuration when set.
type exportFlags struct {
	dotPath           string
	render            string
	importancePlot    string
	maxDepth          int
	featureNames      bool
	classNames        bool
	label             string
	filled            bool
	leavesParallel    bool
	impurity          bool
	nodeIDs           bool
	proportion        bool
	rotate            bool
	rounded           bool
	specialCharacters bool
	precision         int
}

func (f *exportFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.dotPath, "out-dot", "", "Path of the Graphviz dot file (default: <project>/tree2.dot)")
	flags.StringVar(&f.render, "render", "", "Also render the dot file with Graphviz in this format, e.g. png")
	flags.StringVar(&f.importancePlot, "importance-plot", "", "Path of the feature importance chart (.png, .svg or .pdf)")
	flags.IntVar(&f.maxDepth, "export-max-depth", -1, "Maximum depth of the exported nodes, -1 for all")
	flags.BoolVar(&f.featureNames, "feature-names", false, "Name the features in the node labels")
	flags.BoolVar(&f.classNames, "class-names", false, "Show the majority class of each node")
	flags.StringVar(&f.label, "label", graphviz.LabelAll, "Nodes with informative labels: all, root or none")
	flags.BoolVar(&f.filled, "filled", false, "Paint the nodes with the color of their majority class")
	flags.BoolVar(&f.leavesParallel, "leaves-parallel", false, "Draw all the leaves at the bottom of the tree")
	flags.BoolVar(&f.impurity, "impurity", true, "Show the impurity of each node")
	flags.BoolVar(&f.nodeIDs, "node-ids", false, "Show the id of each node")
	flags.BoolVar(&f.proportion, "proportion", false, "Show proportions instead of counts")
	flags.BoolVar(&f.rotate, "rotate", false, "Draw the tree from left to right")
	flags.BoolVar(&f.rounded, "rounded", false, "Draw rounded boxes with the Helvetica font")
	flags.BoolVar(&f.specialCharacters, "special-characters", false, "Use HTML labels")
	flags.IntVar(&f.precision, "precision", 3, "Number of decimal digits")
}

func (f *exportFlags) apply(cmd *cobra.Command, cfg *config.ExportConfig) {
	flags := cmd.Flags()
	setString(flags.Changed("out-dot"), &cfg.DotPath, f.dotPath)
	setString(flags.Changed("render"), &cfg.Render, f.render)
	setString(flags.Changed("importance-plot"), &cfg.ImportancePlot, f.importancePlot)
	setString(flags.Changed("label"), &cfg.Label, f.label)
	setInt(flags.Changed("export-max-depth"), &cfg.MaxDepth, f.maxDepth)
	setInt(flags.Changed("precision"), &cfg.Precision, f.precision)
	setBool(flags.Changed("feature-names"), &cfg.FeatureNames, f.featureNames)
	setBool(flags.Changed("class-names"), &cfg.ClassNames, f.classNames)
	setBool(flags.Changed("filled"), &cfg.Filled, f.filled)
	setBool(flags.Changed("leaves-parallel"), &cfg.LeavesParallel, f.leavesParallel)
	setBool(flags.Changed("impurity"), &cfg.Impurity, f.impurity)
	setBool(flags.Changed("node-ids"), &cfg.NodeIDs, f.nodeIDs)
	setBool(flags.Changed("proportion"), &cfg.Proportion, f.proportion)
	setBool(flags.Changed("rotate"), &cfg.Rotate, f.rotate)
	setBool(flags.Changed("rounded"), &cfg.Rounded, f.rounded)
	setBool(flags.Changed("special-characters"), &cfg.SpecialCharacters, f.specialCharacters)
}

func setString(changed bool, dst *string, value string) {
	if changed {
		*dst = value
	}
}

func setInt(changed bool, dst *int, value int) {
	if changed {
		*dst = value
	}
}

func setBool(changed bool, dst *bool, value bool) {
	if changed {
		*dst = value
	}
}

func newExportCmd(a *app) *cobra.Command {
	var modelPath string
	flags := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a saved model to the Graphviz dot language",
		Long: `Export a saved model to the Graphviz dot language, and optionally render it and
plot its feature importances. At least one of --out-dot and --importance-plot is required.

Examples:
  # Export with colored, rounded nodes and render a png
  cartree export --model=/tmp/cars_model --out-dot=/tmp/tree.dot --filled --rounded --render=png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The dot file is only written when requested on the command line.
			a.cfg.Export.DotPath = ""
			flags.apply(cmd, &a.cfg.Export)
			if a.cfg.Export.DotPath == "" && a.cfg.Export.ImportancePlot == "" {
				return fmt.Errorf("nothing to export: set --out-dot or --importance-plot")
			}
			loaded, err := model_io.LoadModel(modelPath)
			if err != nil {
				return err
			}
			m, ok := loaded.(*cart.Model)
			if !ok {
				return fmt.Errorf("model %q of type %T cannot be exported", modelPath, loaded)
			}
			return exportModel(cmd.Context(), a.cfg, m, a.logger)
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "Path to the model directory")
	_ = cmd.MarkFlagRequired("model")
	flags.register(cmd)
	return cmd
}

// exportModel writes the dot file, its rendering and the importance chart enabled in the
// configuration.
func exportModel(ctx context.Context, cfg *config.Config, m *cart.Model, logger *zap.Logger) error {
	dotPath, err := cfg.Resolve(cfg.Export.DotPath)
	if err != nil {
		return err
	}
	if dotPath != "" {
		opts := cfg.GraphvizOptions(m.Header().InputFeatures, m.Header().ClassLabels,
			m.CartHeader.Hyperparameters.Criterion)
		if err := writeDot(ctx, dotPath, m, opts); err != nil {
			return err
		}
		logger.Info("Exported tree", zap.String("path", dotPath))

		if cfg.Export.Render != "" {
			imagePath := strings.TrimSuffix(dotPath, filepath.Ext(dotPath)) + "." + cfg.Export.Render
			if err := graphviz.Render(ctx, dotPath, cfg.Export.Render, imagePath); err != nil {
				return err
			}
			logger.Info("Rendered tree", zap.String("path", imagePath))
		}
	}

	plotPath, err := cfg.Resolve(cfg.Export.ImportancePlot)
	if err != nil {
		return err
	}
	if plotPath != "" {
		format := strings.TrimPrefix(filepath.Ext(plotPath), ".")
		if format == "" {
			return fmt.Errorf("cannot infer the format of %q from its extension", plotPath)
		}
		if err := writeFile(ctx, plotPath, func(w *bufio.Writer) error {
			return importance.Plot(w, m.Header().InputFeatures, m.FeatureImportances(), format)
		}); err != nil {
			return err
		}
		logger.Info("Plotted feature importances", zap.String("path", plotPath))
	}
	return nil
}

func writeDot(ctx context.Context, path string, m *cart.Model, opts graphviz.Options) error {
	return writeFile(ctx, path, func(w *bufio.Writer) error {
		return graphviz.Export(w, m.Tree, opts)
	})
}

// writeFile creates "path" and fills it with "write".
func writeFile(ctx context.Context, path string, write func(w *bufio.Writer) error) error {
	if err := file.MkdirAll(ctx, filepath.Dir(path)); err != nil {
		return err
	}
	fileHandle, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(fileHandle.IO(ctx))
	if err := write(w); err != nil {
		fileHandle.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		fileHandle.Close()
		return err
	}
	return fileHandle.Close()
}
