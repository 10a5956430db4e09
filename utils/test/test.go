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

// Package test contains small assertion helpers shared by the tests.
package test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"google.golang.org/protobuf/testing/protocmp"
)

// CheckEq fails the test if "got" and "want" differ. The diff is printed. Protobuf
// messages are compared by content.
func CheckEq(t *testing.T, got, want any, msg string, opts ...cmp.Option) {
	t.Helper()
	opts = append([]cmp.Option{protocmp.Transform()}, opts...)
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("%s (-want +got):\n%s", msg, diff)
	}
}

// CheckNearFloat32 fails the test if "got" and "want" are further than "margin".
func CheckNearFloat32(t *testing.T, got, want, margin float32, msg string) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(margin) {
		t.Errorf("%s: got %v, want %v (margin %v)", msg, got, want, margin)
	}
}

// CheckNearFloat64 fails the test if "got" and "want" are further than "margin".
func CheckNearFloat64(t *testing.T, got, want, margin float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > margin {
		t.Errorf("%s: got %v, want %v (margin %v)", msg, got, want, margin)
	}
}

// ApproxFloats compares floating point values (and slices of them) up to "margin".
func ApproxFloats(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}
