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

// Package decisiontree contains utilities to handle decision trees.
package decisiontree

import (
	"fmt"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/io"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"

	// Include I/O support for standard formats.
	_ "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/io/canonical"
)

// DefaultNodeFilename is the default filename to store nodes.
const DefaultNodeFilename = "nodes"

// DefaultNodeFormat is the default format to store nodes.
const DefaultNodeFormat = "BLOB_SEQUENCE"

// Node is a tree node.
//
// The positive child is the branch taken when the condition "feature <= threshold" holds.
type Node struct {
	RawNode       *pb.Node
	PositiveChild *Node
	NegativeChild *Node
}

// IsLeaf tests if a node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.PositiveChild == nil
}

// Tree is a decision tree.
type Tree struct {
	// Root node of the tree. nil if the tree is empty.
	Root *Node
}

// NumLeafs is the number of leafs in a sub-tree.
func (n *Node) NumLeafs() int {
	if n.IsLeaf() {
		return 1
	}
	return n.PositiveChild.NumLeafs() + n.NegativeChild.NumLeafs()
}

// NumNonLeafs is the number of non-leaf nodes in a sub-tree.
func (n *Node) NumNonLeafs() int {
	if n.IsLeaf() {
		return 0
	}
	return 1 + n.PositiveChild.NumNonLeafs() + n.NegativeChild.NumNonLeafs()
}

// Depth is the length of the longest path from the node to a leaf. A leaf has depth 0.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	return 1 + max(n.PositiveChild.Depth(), n.NegativeChild.Depth())
}

// NumNodes is the total number of nodes in the tree.
func (t *Tree) NumNodes() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.NumLeafs() + t.Root.NumNonLeafs()
}

// NumLeafs is the number of leafs in the tree.
func (t *Tree) NumLeafs() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.NumLeafs()
}

// Depth is the depth of the tree. An empty tree and a single leaf have depth 0.
func (t *Tree) Depth() int {
	if t.Root == nil {
		return 0
	}
	return t.Root.Depth()
}

// WalkFunc is called on each node visited by Walk. "parentID" is -1 for the root.
// Returning false skips the children of the node.
type WalkFunc func(node *Node, nodeID int, parentID int, depth int) bool

// Walk visits the nodes in pre-order, positive child first. Node ids are assigned in the
// visit order, starting at 0 for the root. Skipped sub-trees still consume their ids.
func (t *Tree) Walk(fn WalkFunc) {
	if t.Root == nil {
		return
	}
	nextID := 0
	var visit func(node *Node, parentID int, depth int)
	visit = func(node *Node, parentID int, depth int) {
		nodeID := nextID
		nextID++
		if !fn(node, nodeID, parentID, depth) {
			nextID += node.NumLeafs() + node.NumNonLeafs() - 1
			return
		}
		if node.IsLeaf() {
			return
		}
		visit(node.PositiveChild, nodeID, depth+1)
		visit(node.NegativeChild, nodeID, depth+1)
	}
	visit(t.Root, -1, 0)
}

// Leaf returns the leaf reached by an example. "value(featureIdx)" returns the value of a
// feature.
func (t *Tree) Leaf(value func(featureIdx int) float64) *Node {
	node := t.Root
	for node != nil && !node.IsLeaf() {
		condition := node.RawNode.GetCondition()
		if value(int(condition.GetAttribute())) <= condition.GetThreshold() {
			node = node.PositiveChild
		} else {
			node = node.NegativeChild
		}
	}
	return node
}

func newNode(reader io.Reader) (*Node, error) {
	rawNode, err := reader.Next()
	if err != nil {
		return nil, err
	}
	if rawNode == nil {
		// No more nodes
		return nil, fmt.Errorf("not enough nodes")
	}

	node := &Node{RawNode: rawNode}

	if rawNode.GetCondition() != nil {
		// Read the two child nodes
		node.NegativeChild, err = newNode(reader)
		if err != nil {
			return nil, err
		}

		node.PositiveChild, err = newNode(reader)
		if err != nil {
			return nil, err
		}
	}

	return node, nil
}

// LoadTree loads a tree from disk.
func LoadTree(basePath string, numShards int, format string) (*Tree, error) {
	reader, err := io.NewNodeReader(basePath, numShards, format)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	root, err := newNode(reader)
	if err != nil {
		return nil, fmt.Errorf("decisiontree.LoadTree(): %w", err)
	}
	extra, err := reader.Next()
	if err != nil {
		return nil, err
	}
	if extra != nil {
		return nil, fmt.Errorf("decisiontree.LoadTree(): unexpected nodes after the tree")
	}
	return &Tree{Root: root}, nil
}

func writeNode(writer io.Writer, node *Node) error {
	if err := writer.Write(node.RawNode); err != nil {
		return err
	}
	if node.IsLeaf() {
		return nil
	}
	if err := writeNode(writer, node.NegativeChild); err != nil {
		return err
	}
	return writeNode(writer, node.PositiveChild)
}

// SaveTree saves a tree to disk. The nodes are stored in depth first (node, negative,
// positive) order.
func SaveTree(tree *Tree, basePath string, numShards int, format string) error {
	if tree.Root == nil {
		return fmt.Errorf("decisiontree.SaveTree(): empty tree")
	}
	writer, err := io.NewNodeWriter(basePath, numShards, format, tree.NumNodes())
	if err != nil {
		return err
	}
	if err := writeNode(writer, tree.Root); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
