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
	"math"
	"strconv"
	"strings"
)

// round rounds "v" to "precision" decimal digits. Ties are resolved on the exact binary
// value, to the even digit.
func round(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', precision, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// formatFloat prints the shortest representation of "v" that parses back to "v". Values
// with a decimal exponent in [-4, 16) are printed in positional notation with at least one
// fractional digit ("1.0", "0.001"); others in scientific notation ("1e-05", "1.5e+16").
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}
	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}

// formatRounded is formatFloat(round(v, precision)).
func formatRounded(v float64, precision int) string {
	return formatFloat(round(v, precision))
}

// Maximum width of a printed array line. Longer arrays are wrapped.
const arrayLineWidth = 75

// formatArray prints a list of values as "[a, b, c]". Lines longer than arrayLineWidth
// characters are wrapped, and wrapped lines are joined with "newline" instead of ", ".
func formatArray(values []string, newline string) string {
	var out strings.Builder
	// Width of the line in the quoted form "[b'a' b'b'".
	width := 1
	out.WriteString("[")
	for i, v := range values {
		word := len(v) + 3
		if i > 0 {
			last := 0
			if i == len(values)-1 {
				last = 1
			}
			if width+1+word+last > arrayLineWidth {
				out.WriteString(newline)
				width = 1 + word
				out.WriteString(v)
				continue
			}
			out.WriteString(", ")
			width += 1 + word
		} else {
			width += word
		}
		out.WriteString(v)
	}
	out.WriteString("]")
	return out.String()
}
