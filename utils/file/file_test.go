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

package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MargaridaSolas/ensembleMethodsTutorial/utils/test"
)

func TestWriteReadMatch(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "model")
	if err := MkdirAll(ctx, dir); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a_data_spec.pb", "a_header.pb"} {
		if err := WriteFile(ctx, filepath.Join(dir, name), []byte(name)); err != nil {
			t.Fatal(err)
		}
	}
	content, err := ReadFile(ctx, filepath.Join(dir, "a_header.pb"))
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, string(content), "a_header.pb", "")

	stats, err := Match(ctx, filepath.Join(dir, "*data_spec.pb"), StatNone)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, stats, []Stat{{Path: filepath.Join(dir, "a_data_spec.pb")}}, "")
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "f")
	if err := WriteFile(ctx, path, nil); err == nil {
		t.Error("expected an error for a cancelled context")
	}
	if _, err := Create(ctx, path); err == nil {
		t.Error("expected an error for a cancelled context")
	}
	if _, err := OpenRead(ctx, path); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
