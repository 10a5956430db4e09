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
	"fmt"
	"math"
)

// colorBrew generates "n" colors with equally spaced hues.
func colorBrew(n int) [][3]int {
	const s, v = 0.75, 0.9
	c := s * v
	m := v - c
	step := 360. / float64(n)
	colors := make([][3]int, 0, n)
	for i := 0; i < n; i++ {
		h := int(25 + float64(i)*step)
		hBar := float64(h) / 60.
		x := c * (1 - math.Abs(math.Mod(hBar, 2)-1))
		rgb := [][3]float64{
			{c, x, 0},
			{x, c, 0},
			{0, c, x},
			{0, x, c},
			{x, 0, c},
			{c, 0, x},
			{c, x, 0},
		}[int(hBar)]
		colors = append(colors, [3]int{
			int(255 * (rgb[0] + m)),
			int(255 * (rgb[1] + m)),
			int(255 * (rgb[2] + m)),
		})
	}
	return colors
}

// nodeColor is the fill color of a node with the class proportions "values" in #RRGGBBAA
// format. The hue is the color of the majority class and the opacity grows with the
// margin between the two most frequent classes.
func nodeColor(palette [][3]int, values []float64) string {
	best := 0
	first, second := math.Inf(-1), math.Inf(-1)
	for i, v := range values {
		if v > values[best] {
			best = i
		}
		if v > first {
			first, second = v, first
		} else if v > second {
			second = v
		}
	}
	alpha := 0
	if len(values) > 1 {
		alpha = int(math.RoundToEven(255 * (first - second) / (1 - second)))
	}
	color := palette[best]
	return fmt.Sprintf("#%02x%02x%02x%02x", color[0], color[1], color[2], alpha)
}
