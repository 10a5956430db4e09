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

// Package file is a slim, context-aware portability layer over the "os" package. All the
// file accesses of the repository (datasets, model files, exported graphs) go through it.
package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// File for providing the shim layer.
type File struct {
	file *os.File
}

// Stat holds information about a file.
type Stat struct {
	// Path to the file.
	Path string
}

// StatMask specifies what fields should be returned. Only the path is supported.
type StatMask int

// Known values for StatMask.
const (
	StatNone StatMask = 0
)

// IO is a convenience interface.
type IO io.ReadWriteCloser

// Create creates (or truncates) a file for writing.
func Create(ctx context.Context, name string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	file, err := os.Create(name)
	return File{file: file}, err
}

// OpenRead opens the file for reading.
func OpenRead(ctx context.Context, name string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	file, err := os.Open(name)
	return File{file: file}, err
}

// IO returns the underlying stream.
func (f *File) IO(ctx context.Context) IO {
	return f.file
}

// Close closes the file.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}

// ReadFile returns the entire contents of the named file.
func ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

// WriteFile writes data to a file named by filename.
func WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(name, data, 0644)
}

// MkdirAll creates a directory and all the missing parents.
func MkdirAll(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.MkdirAll(name, 0755)
}

// Match returns information about all files matching pattern. mask is ignored for now.
func Match(ctx context.Context, pattern string, mask StatMask) ([]Stat, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	stats := make([]Stat, 0, len(files))
	for _, f := range files {
		stats = append(stats, Stat{Path: f})
	}
	return stats, nil
}
