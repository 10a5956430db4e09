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

package graphviz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DotBinary is the name of the Graphviz layout program.
var DotBinary = "dot"

// ErrDotNotFound is returned when the Graphviz binary is not installed.
var ErrDotNotFound = errors.New("graphviz \"dot\" binary not found in PATH")

// Render converts a dot file into an image (e.g. format "png", "svg" or "pdf") with the
// Graphviz binary.
func Render(ctx context.Context, dotPath, format, outPath string) error {
	binary, err := exec.LookPath(DotBinary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDotNotFound, err)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "-T"+format, dotPath, "-o", outPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rendering %q to %q: %w: %s", dotPath, outPath, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
