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

// Package blobsequence implement node reading and writing from blob sequence files.
//
// A blob sequence file starts with a 8 bytes header: the magic "BS", a little-endian
// uint16 version and 4 reserved bytes. The header is followed by records: a little-endian
// uint32 length and the serialized node.
package blobsequence

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"

	nodeIO "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/io"
	pb "github.com/MargaridaSolas/ensembleMethodsTutorial/model/decisiontree/proto"
	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/file"
)

// ModelKey is the unique identifier of the blob sequence node format.
const ModelKey = "BLOB_SEQUENCE"

// Version is the only supported version of the format.
const Version = 0

func init() {
	nodeIO.RegisteredFormats[ModelKey] = nodeIO.Format{NewReader: newReader, NewWriter: newWriter}
}

// blobSequenceIONodeReader is a single file reader on Blob Sequence format.
type blobSequenceIONodeReader struct {
	fileIO     io.ReadCloser
	bufferedIO *bufio.Reader
	version    uint16
	// "serializedNodeBuffer" is a buffer of bytes used to parse the node.
	// The buffer is reused in between "Next" calls.
	serializedNodeBuffer []byte
}

func (r *blobSequenceIONodeReader) Next() (*pb.Node, error) {

	// Size of the serialized node
	var length uint32
	err := binary.Read(r.bufferedIO, binary.LittleEndian, &length)
	if err == io.EOF {
		// End of sequence
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Resize the read buffer if necessary.
	if len(r.serializedNodeBuffer) < int(length) {
		r.serializedNodeBuffer = make([]byte, length)
	}

	_, err = io.ReadFull(r.bufferedIO, r.serializedNodeBuffer[:length])
	if err != nil {
		return nil, fmt.Errorf("truncated record: %w", err)
	}

	node := &pb.Node{}
	if err := proto.Unmarshal(r.serializedNodeBuffer[:length], node); err != nil {
		return nil, err
	}

	return node, nil
}

func (r *blobSequenceIONodeReader) Close() error {
	if r.fileIO != nil {
		return r.fileIO.Close()
	}
	return nil
}

// ReadHeader reads and validates the header of a blob sequence stream.
func ReadHeader(r io.Reader) (uint16, error) {
	// Magic number.
	// The first two bytes should be "BS" in ascii (for "blob sequence").
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, err
	}
	if magic[0] != 'B' || magic[1] != 'S' {
		return 0, fmt.Errorf("invalid header")
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return 0, err
	}
	if version != Version {
		return 0, fmt.Errorf("non supported file version %d", version)
	}

	var reserved uint32
	if err := binary.Read(r, binary.LittleEndian, &reserved); err != nil {
		return 0, err
	}
	return version, nil
}

// WriteHeader writes the header of a blob sequence stream.
func WriteHeader(w io.Writer) error {
	if _, err := w.Write([]byte{'B', 'S'}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(Version)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint32(0))
}

// newReader creates a node reader for a blob sequence file.
func newReader(path string) (nodeIO.Reader, error) {
	ctx := context.Background()
	fileHandle, err := file.OpenRead(ctx, path)
	if err != nil {
		return nil, err
	}
	fileIO := fileHandle.IO(ctx)
	bufferedIO := bufio.NewReader(fileIO)

	version, err := ReadHeader(bufferedIO)
	if err != nil {
		fileIO.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &blobSequenceIONodeReader{
		fileIO:               fileIO,
		bufferedIO:           bufferedIO,
		version:              version,
		serializedNodeBuffer: make([]byte, 512),
	}, nil
}

// blobSequenceIONodeWriter is a single file writer on Blob Sequence format.
type blobSequenceIONodeWriter struct {
	fileIO     io.WriteCloser
	bufferedIO *bufio.Writer
	// Reused in between "Write" calls.
	serializedNodeBuffer []byte
}

func (w *blobSequenceIONodeWriter) Write(node *pb.Node) error {
	buffer, err := proto.MarshalOptions{}.MarshalAppend(w.serializedNodeBuffer[:0], node)
	if err != nil {
		return err
	}
	w.serializedNodeBuffer = buffer
	if err := binary.Write(w.bufferedIO, binary.LittleEndian, uint32(len(w.serializedNodeBuffer))); err != nil {
		return err
	}
	_, err = w.bufferedIO.Write(w.serializedNodeBuffer)
	return err
}

func (w *blobSequenceIONodeWriter) Close() error {
	if err := w.bufferedIO.Flush(); err != nil {
		w.fileIO.Close()
		return err
	}
	return w.fileIO.Close()
}

// newWriter creates a node writer for a blob sequence file.
func newWriter(path string) (nodeIO.Writer, error) {
	ctx := context.Background()
	fileHandle, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	fileIO := fileHandle.IO(ctx)
	bufferedIO := bufio.NewWriter(fileIO)
	if err := WriteHeader(bufferedIO); err != nil {
		fileIO.Close()
		return nil, err
	}
	return &blobSequenceIONodeWriter{
		fileIO:     fileIO,
		bufferedIO: bufferedIO,
	}, nil
}
