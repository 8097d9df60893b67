/*
 *     Copyright 2026 The Valvesense Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package math

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Max returns the maximum of values.
func Max[T constraints.Ordered](values ...T) T {
	max := values[0]
	for _, value := range values {
		if value > max {
			max = value
		}
	}

	return max
}

// Min returns the minimum of values.
func Min[T constraints.Ordered](values ...T) T {
	min := values[0]
	for _, value := range values {
		if value < min {
			min = value
		}
	}

	return min
}

// Sum returns the sum of values.
func Sum[T constraints.Integer | constraints.Float](values ...T) T {
	var sum T
	for _, value := range values {
		sum += value
	}

	return sum
}

// Argmax returns the index of the first maximum of values, -1 for empty values.
func Argmax[T constraints.Ordered](values ...T) int {
	if len(values) == 0 {
		return -1
	}

	index := 0
	for i, value := range values {
		if value > values[index] {
			index = i
		}
	}

	return index
}

// Clip limits value to the closed interval [min, max].
func Clip[T constraints.Ordered](value, min, max T) T {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}

	return true
}
