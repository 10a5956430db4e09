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

// dataset/proto/data_spec.proto proto compilation to Go:
//go:generate protoc -I../.. --go_out=../.. --go_opt=paths=source_relative dataset/proto/data_spec.proto

// The .pb.go files are generated, please don't edit them directly.

// Use `sudo apt install protobuf-compiler protoc-gen-go` to install the protobuf compiler.

// Package proto contains the serialized representation of the data specification.
package proto
