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

package decisiontree

import (
	"path/filepath"
	"testing"

	_ "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/io/canonical"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func leaf(counts ...float64) *Node {
	return &Node{RawNode: &pb.Node{Distribution: counts}}
}

// testTree is:
//
//	X[1] <= 0.5
//	├── true:  X[0] <= 2.5
//	│          ├── true:  [3, 0]
//	│          └── false: [0, 1]
//	└── false: [0, 4]
func testTree() *Tree {
	return &Tree{Root: &Node{
		RawNode: &pb.Node{
			Condition:    &pb.Condition{Attribute: 1, Threshold: 0.5},
			Distribution: []float64{3, 5},
			Impurity:     0.9544340029249649,
			NumExamples:  8,
		},
		PositiveChild: &Node{
			RawNode: &pb.Node{
				Condition:    &pb.Condition{Attribute: 0, Threshold: 2.5},
				Distribution: []float64{3, 1},
				NumExamples:  4,
			},
			PositiveChild: leaf(3, 0),
			NegativeChild: leaf(0, 1),
		},
		NegativeChild: leaf(0, 4),
	}}
}

func TestStructure(t *testing.T) {
	tree := testTree()
	test.CheckEq(t, tree.NumNodes(), 5, "")
	test.CheckEq(t, tree.NumLeafs(), 3, "")
	test.CheckEq(t, tree.Root.NumNonLeafs(), 2, "")
	test.CheckEq(t, tree.Depth(), 2, "")
	test.CheckEq(t, (&Tree{}).NumNodes(), 0, "")
}

func TestWalk(t *testing.T) {
	type visit struct{ ID, Parent, Depth int }
	var visits []visit
	testTree().Walk(func(node *Node, nodeID, parentID, depth int) bool {
		visits = append(visits, visit{nodeID, parentID, depth})
		return true
	})
	test.CheckEq(t, visits, []visit{{0, -1, 0}, {1, 0, 1}, {2, 1, 2}, {3, 1, 2}, {4, 0, 1}}, "")

	// Skipped sub-trees consume their ids.
	visits = nil
	testTree().Walk(func(node *Node, nodeID, parentID, depth int) bool {
		visits = append(visits, visit{nodeID, parentID, depth})
		return depth < 1 || node.IsLeaf()
	})
	test.CheckEq(t, visits, []visit{{0, -1, 0}, {1, 0, 1}, {4, 0, 1}}, "")
}

func TestLeaf(t *testing.T) {
	tree := testTree()
	features := func(values ...float64) func(int) float64 {
		return func(i int) float64 { return values[i] }
	}
	test.CheckEq(t, tree.Leaf(features(1, 0)).RawNode.GetDistribution(), []float64{3, 0}, "")
	test.CheckEq(t, tree.Leaf(features(2.5, 0.5)).RawNode.GetDistribution(), []float64{3, 0}, "thresholds are inclusive")
	test.CheckEq(t, tree.Leaf(features(3, 0)).RawNode.GetDistribution(), []float64{0, 1}, "")
	test.CheckEq(t, tree.Leaf(features(0, 1)).RawNode.GetDistribution(), []float64{0, 4}, "")
}

func TestSaveLoadTree(t *testing.T) {
	for _, numShards := range []int{1, 2, 5} {
		basePath := filepath.Join(t.TempDir(), DefaultNodeFilename)
		tree := testTree()
		if err := SaveTree(tree, basePath, numShards, DefaultNodeFormat); err != nil {
			t.Fatal(err)
		}
		loaded, err := LoadTree(basePath, numShards, DefaultNodeFormat)
		if err != nil {
			t.Fatal(err)
		}
		test.CheckEq(t, loaded, tree, "")
	}
}

func TestSaveLoadTreeErrors(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), DefaultNodeFilename)
	if err := SaveTree(&Tree{}, basePath, 1, DefaultNodeFormat); err == nil {
		t.Error("expected an error for an empty tree")
	}
	if err := SaveTree(testTree(), basePath, 1, "UNKNOWN_FORMAT"); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if _, err := LoadTree(basePath, 1, DefaultNodeFormat); err == nil {
		t.Error("expected an error for a missing file")
	}

	// Single leaf tree.
	if err := SaveTree(&Tree{Root: leaf(1, 1)}, basePath, 1, DefaultNodeFormat); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTree(basePath, 1, DefaultNodeFormat); err != nil {
		t.Fatal(err)
	}
}
