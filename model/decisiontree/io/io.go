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

// Package io contains utilities to load/save decision tree nodes.
package io

import (
	"fmt"
	"sort"

	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
)

// Reader is a stream of nodes.
type Reader interface {

	// Next returns the next raw Node from the stream. Returns nil at the end of the
	// stream. "Close" should be called once the reading is done (even if file reaches end).
	Next() (*pb.Node, error)
	Close() error
}

// Writer is a sink of nodes.
type Writer interface {
	Write(node *pb.Node) error
	// Close flushes the pending nodes and closes the underlying file.
	Close() error
}

// Format is a registered node format.
type Format struct {
	NewReader func(path string) (Reader, error)
	NewWriter func(path string) (Writer, error)
}

// RegisteredFormats is the list of node formats.
var RegisteredFormats = make(map[string]Format)

// FormatNames lists the registered format names.
func FormatNames() []string {
	names := make([]string, 0, len(RegisteredFormats))
	for name := range RegisteredFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func getFormat(format string) (Format, error) {
	builder, hasBuilder := RegisteredFormats[format]
	if !hasBuilder {
		return Format{}, fmt.Errorf("unknown node format %q. The available node formats are: %v", format, FormatNames())
	}
	return builder, nil
}

// ShardPath is the path of a given shard.
func ShardPath(path string, shardIdx int, numShards int) string {
	return fmt.Sprintf("%s-%05d-of-%05d", path, shardIdx, numShards)
}

// NewNodeReader creates a new node reader from a sharded set of files.
func NewNodeReader(path string, numShards int, format string) (Reader, error) {
	builder, err := getFormat(format)
	if err != nil {
		return nil, err
	}
	if numShards <= 0 {
		return nil, fmt.Errorf("invalid number of shards %d", numShards)
	}
	return &shardedNodeReader{path: path, numShards: numShards,
		createSubReader: builder.NewReader}, nil
}

// NewNodeWriter creates a node writer distributing "numNodes" nodes evenly over "numShards"
// files.
func NewNodeWriter(path string, numShards int, format string, numNodes int) (Writer, error) {
	builder, err := getFormat(format)
	if err != nil {
		return nil, err
	}
	if numShards <= 0 {
		return nil, fmt.Errorf("invalid number of shards %d", numShards)
	}
	nodesPerShard := (numNodes + numShards - 1) / numShards
	if nodesPerShard == 0 {
		nodesPerShard = 1
	}
	return &shardedNodeWriter{path: path, numShards: numShards, nodesPerShard: nodesPerShard,
		createSubWriter: builder.NewWriter}, nil
}

// shardedNodeReader is a wrapper for sharded files.
type shardedNodeReader struct {
	path            string
	numShards       int
	nextShard       int
	createSubReader func(path string) (Reader, error)
	currentReader   Reader
}

func (s *shardedNodeReader) Next() (*pb.Node, error) {

	for {
		// Ensure one shard is being read
		if s.currentReader == nil {
			// The previous shard (if any) is done being read
			if s.nextShard == s.numShards {
				// No more nodes available
				return nil, nil
			}

			// Open the next shard.
			var err error
			s.currentReader, err = s.createSubReader(ShardPath(s.path, s.nextShard, s.numShards))
			if err != nil {
				return nil, err
			}
			s.nextShard++
		}

		node, err := s.currentReader.Next()
		if err != nil {
			return nil, err
		}
		if node != nil {
			return node, nil
		}

		// End of this shard.
		err = s.currentReader.Close()
		if err != nil {
			return nil, err
		}

		s.currentReader = nil
	}
}

func (s *shardedNodeReader) Close() error {
	if s.currentReader != nil {
		return s.currentReader.Close()
	}
	return nil
}

// shardedNodeWriter writes consecutive nodes into consecutive shards. All the shards are
// created, even if some of them are empty.
type shardedNodeWriter struct {
	path            string
	numShards       int
	nodesPerShard   int
	nextShard       int
	numInShard      int
	createSubWriter func(path string) (Writer, error)
	currentWriter   Writer
}

func (s *shardedNodeWriter) openNext() error {
	if s.nextShard == s.numShards {
		return fmt.Errorf("too many nodes for %d shard(s)", s.numShards)
	}
	writer, err := s.createSubWriter(ShardPath(s.path, s.nextShard, s.numShards))
	if err != nil {
		return err
	}
	s.currentWriter = writer
	s.nextShard++
	s.numInShard = 0
	return nil
}

func (s *shardedNodeWriter) Write(node *pb.Node) error {
	if s.currentWriter != nil && s.numInShard == s.nodesPerShard && s.nextShard < s.numShards {
		if err := s.currentWriter.Close(); err != nil {
			return err
		}
		s.currentWriter = nil
	}
	if s.currentWriter == nil {
		if err := s.openNext(); err != nil {
			return err
		}
	}
	s.numInShard++
	return s.currentWriter.Write(node)
}

func (s *shardedNodeWriter) Close() error {
	for {
		if s.currentWriter != nil {
			if err := s.currentWriter.Close(); err != nil {
				return err
			}
			s.currentWriter = nil
		}
		if s.nextShard == s.numShards {
			return nil
		}
		// Materialize the remaining (empty) shards.
		if err := s.openNext(); err != nil {
			return err
		}
	}
}
