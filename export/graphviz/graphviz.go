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

// Package graphviz exports decision trees in the Graphviz "dot" language.
//
// The output follows the layout of the scikit-learn "export_graphviz" function: one box
// per node with the split condition, the impurity, the number of samples and the class
// counts, and "True" / "False" labels on the edges of the root. Node ids are assigned in
// pre-order, true branch first.
//
// Usage example:
//
//	opts := graphviz.DefaultOptions()
//	opts.Filled = true
//	err := graphviz.Export(w, model.Tree, opts)
package graphviz

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	dt "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree"
)

// Label modes.
const (
	LabelAll  = "all"
	LabelRoot = "root"
	LabelNone = "none"
)

// Options of the export.
type Options struct {
	// Maximum depth of the exported nodes. Deeper nodes are drawn as "(...)". -1 exports the
	// whole tree.
	MaxDepth int
	// Names of the features. If empty, features are named "X[i]".
	FeatureNames []string
	// Names of the classes, in class index order. If set, the majority class of each node
	// is shown.
	ClassNames []string
	// Show the majority class index "y[i]" of each node. Ignored if ClassNames is set.
	ShowClassIndex bool
	// Which nodes have informative labels ("samples = ..."): LabelAll, LabelRoot or LabelNone.
	Label string
	// Paint the nodes with the color of their majority class.
	Filled bool
	// Draw all the leaves at the bottom of the tree.
	LeavesParallel bool
	// Show the impurity of each node.
	Impurity bool
	// Show the id of each node.
	NodeIDs bool
	// Show the class proportions and the percentage of samples instead of counts.
	Proportion bool
	// Orient the tree left to right instead of top down.
	Rotate bool
	// Draw boxes with rounded corners and use the Helvetica font.
	Rounded bool
	// Use HTML labels, compatible with PostScript rendering.
	SpecialCharacters bool
	// Number of decimal digits of the thresholds, impurities and proportions.
	Precision int
	// Name of the impurity shown in the labels, e.g. "gini" or "entropy".
	CriterionName string
}

// DefaultOptions are the default export options.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      -1,
		Label:         LabelAll,
		Impurity:      true,
		Precision:     3,
		CriterionName: "gini",
	}
}

var (
	// ErrInvalidOptions is returned when the export options are inconsistent.
	ErrInvalidOptions = errors.New("invalid export options")
	// ErrEmptyTree is returned when the tree has no root.
	ErrEmptyTree = errors.New("empty tree")
)

// characters are the formatting tokens of the labels.
type characters struct {
	hash, subOpen, subClose, le, newline, open, close string
}

var (
	plainCharacters   = characters{"#", "[", "]", "<=", `\n`, `"`, `"`}
	specialCharacters = characters{"&#35;", "<SUB>", "</SUB>", "&le;", "<br/>", "<", ">"}
)

type exporter struct {
	opts       Options
	chars      characters
	w          *bufio.Writer
	numClasses int
	rootCount  int64
	palette    [][3]int
	// Node ids per rank ("0", "1", ... or "leaves").
	ranks map[string][]string
}

// Export writes the tree in the dot language.
func Export(w io.Writer, tree *dt.Tree, opts Options) error {
	if tree == nil || tree.Root == nil {
		return ErrEmptyTree
	}
	if opts.Precision < 0 {
		return fmt.Errorf("%w: precision must be >= 0, got %d", ErrInvalidOptions, opts.Precision)
	}
	switch opts.Label {
	case LabelAll, LabelRoot, LabelNone:
	default:
		return fmt.Errorf("%w: unknown label mode %q", ErrInvalidOptions, opts.Label)
	}

	e := &exporter{
		opts:       opts,
		chars:      plainCharacters,
		w:          bufio.NewWriter(w),
		numClasses: len(tree.Root.RawNode.GetDistribution()),
		rootCount:  tree.Root.RawNode.GetNumExamples(),
		ranks:      map[string][]string{"leaves": nil},
	}
	if opts.SpecialCharacters {
		e.chars = specialCharacters
	}
	if len(opts.ClassNames) > 0 && len(opts.ClassNames) < e.numClasses {
		return fmt.Errorf("%w: %d class names for %d classes", ErrInvalidOptions, len(opts.ClassNames), e.numClasses)
	}
	if opts.Filled {
		e.palette = colorBrew(e.numClasses)
	}
	if err := e.checkFeatureNames(tree); err != nil {
		return err
	}

	e.writeHeader()
	e.recurse(tree.Root, 0, -1, 0, new(int))
	if opts.LeavesParallel {
		names := make([]string, 0, len(e.ranks))
		for name := range e.ranks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(e.w, "{rank=same ; %s} ;\n", strings.Join(e.ranks[name], "; "))
		}
	}
	e.w.WriteString("}")
	return e.w.Flush()
}

func (e *exporter) checkFeatureNames(tree *dt.Tree) error {
	if len(e.opts.FeatureNames) == 0 {
		return nil
	}
	var err error
	tree.Walk(func(node *dt.Node, nodeID, parentID, depth int) bool {
		if node.IsLeaf() {
			return true
		}
		attribute := int(node.RawNode.GetCondition().GetAttribute())
		if attribute >= len(e.opts.FeatureNames) {
			err = fmt.Errorf("%w: %d feature names but node %d tests feature %d",
				ErrInvalidOptions, len(e.opts.FeatureNames), nodeID, attribute)
			return false
		}
		return true
	})
	return err
}

func (e *exporter) writeHeader() {
	e.w.WriteString("digraph Tree {\n")
	e.w.WriteString("node [shape=box")
	var style []string
	if e.opts.Filled {
		style = append(style, "filled")
	}
	if e.opts.Rounded {
		style = append(style, "rounded")
	}
	if len(style) > 0 {
		fmt.Fprintf(e.w, `, style="%s", color="black"`, strings.Join(style, ", "))
	}
	if e.opts.Rounded {
		e.w.WriteString(", fontname=helvetica")
	}
	e.w.WriteString("] ;\n")

	if e.opts.LeavesParallel {
		e.w.WriteString("graph [ranksep=equally, splines=polyline] ;\n")
	}
	if e.opts.Rounded {
		e.w.WriteString("edge [fontname=helvetica] ;\n")
	}
	if e.opts.Rotate {
		e.w.WriteString("rankdir=LR ;\n")
	}
}

// recurse writes a node and its descendants. "nextID" is the next available node id.
func (e *exporter) recurse(node *dt.Node, nodeID, parentID, depth int, nextID *int) {
	*nextID = nodeID + 1
	id := strconv.Itoa(nodeID)

	if e.opts.MaxDepth >= 0 && depth > e.opts.MaxDepth {
		// Skipped sub-trees still consume their node ids.
		*nextID = nodeID + numNodes(node)
		e.ranks["leaves"] = append(e.ranks["leaves"], id)
		fmt.Fprintf(e.w, `%d [label="(...)"`, nodeID)
		if e.opts.Filled {
			e.w.WriteString(`, fillcolor="#C0C0C0"`)
		}
		e.w.WriteString("] ;\n")
		if parentID >= 0 {
			fmt.Fprintf(e.w, "%d -> %d ;\n", parentID, nodeID)
		}
		return
	}

	if node.IsLeaf() {
		e.ranks["leaves"] = append(e.ranks["leaves"], id)
	} else {
		rank := strconv.Itoa(depth)
		e.ranks[rank] = append(e.ranks[rank], id)
	}

	fmt.Fprintf(e.w, "%d [label=%s", nodeID, e.nodeLabel(node, nodeID))
	if e.opts.Filled {
		fmt.Fprintf(e.w, `, fillcolor="%s"`, nodeColor(e.palette, proportions(node)))
	}
	e.w.WriteString("] ;\n")

	if parentID >= 0 {
		fmt.Fprintf(e.w, "%d -> %d", parentID, nodeID)
		if parentID == 0 {
			sign := 1
			if e.opts.Rotate {
				sign = -1
			}
			if nodeID == 1 {
				fmt.Fprintf(e.w, ` [labeldistance=2.5, labelangle=%d, headlabel="True"]`, 45*sign)
			} else {
				fmt.Fprintf(e.w, ` [labeldistance=2.5, labelangle=%d, headlabel="False"]`, -45*sign)
			}
		}
		e.w.WriteString(" ;\n")
	}

	if !node.IsLeaf() {
		e.recurse(node.PositiveChild, *nextID, nodeID, depth+1, nextID)
		e.recurse(node.NegativeChild, *nextID, nodeID, depth+1, nextID)
	}
}

func numNodes(node *dt.Node) int {
	if node.IsLeaf() {
		return 1
	}
	return 1 + numNodes(node.PositiveChild) + numNodes(node.NegativeChild)
}

// proportions are the class counts of a node divided by its number of samples.
func proportions(node *dt.Node) []float64 {
	counts := node.RawNode.GetDistribution()
	n := float64(node.RawNode.GetNumExamples())
	values := make([]float64, len(counts))
	for i, c := range counts {
		if n > 0 {
			values[i] = c / n
		}
	}
	return values
}

// nodeLabel is the quoted (or HTML) label of a node.
func (e *exporter) nodeLabel(node *dt.Node, nodeID int) string {
	c := e.chars
	opts := &e.opts
	labels := opts.Label == LabelAll || (opts.Label == LabelRoot && nodeID == 0)

	var s strings.Builder
	s.WriteString(c.open)

	if opts.NodeIDs {
		if labels {
			s.WriteString("node ")
		}
		s.WriteString(c.hash + strconv.Itoa(nodeID) + c.newline)
	}

	if !node.IsLeaf() {
		condition := node.RawNode.GetCondition()
		attribute := int(condition.GetAttribute())
		var feature string
		if len(opts.FeatureNames) > 0 {
			feature = opts.FeatureNames[attribute]
		} else {
			feature = "X" + c.subOpen + strconv.Itoa(attribute) + c.subClose
		}
		fmt.Fprintf(&s, "%s %s %s%s", feature, c.le,
			formatRounded(condition.GetThreshold(), opts.Precision), c.newline)
	}

	if opts.Impurity {
		if labels {
			s.WriteString(opts.CriterionName + " = ")
		}
		s.WriteString(formatRounded(node.RawNode.GetImpurity(), opts.Precision) + c.newline)
	}

	if labels {
		s.WriteString("samples = ")
	}
	numExamples := node.RawNode.GetNumExamples()
	if opts.Proportion {
		percent := 0.0
		if e.rootCount > 0 {
			percent = 100. * float64(numExamples) / float64(e.rootCount)
		}
		s.WriteString(formatRounded(percent, 1) + "%" + c.newline)
	} else {
		s.WriteString(strconv.FormatInt(numExamples, 10) + c.newline)
	}

	if labels {
		s.WriteString("value = ")
	}
	s.WriteString(e.valueText(node) + c.newline)

	if len(opts.ClassNames) > 0 || opts.ShowClassIndex {
		if labels {
			s.WriteString("class = ")
		}
		best := argmax(node.RawNode.GetDistribution())
		if len(opts.ClassNames) > 0 {
			s.WriteString(opts.ClassNames[best])
		} else {
			s.WriteString("y" + c.subOpen + strconv.Itoa(best) + c.subClose)
		}
	}

	label := strings.TrimSuffix(s.String(), c.newline)
	return label + c.close
}

// valueText prints the class counts (or proportions) of a node.
func (e *exporter) valueText(node *dt.Node) string {
	counts := node.RawNode.GetDistribution()
	values := make([]string, len(counts))
	switch {
	case e.opts.Proportion:
		for i, p := range proportions(node) {
			values[i] = formatRounded(p, e.opts.Precision)
		}
	case allIntegers(counts):
		for i, c := range counts {
			values[i] = strconv.FormatInt(int64(c), 10)
		}
	default:
		for i, c := range counts {
			values[i] = formatRounded(c, e.opts.Precision)
		}
	}
	return formatArray(values, e.chars.newline)
}

func allIntegers(values []float64) bool {
	for _, v := range values {
		if v != float64(int64(v)) {
			return false
		}
	}
	return true
}

func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
