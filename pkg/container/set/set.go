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

package set

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Set is an unordered collection of distinct values.
type Set[T comparable] interface {
	Values() []T
	Add(T) bool
	Len() uint
}

type set[T comparable] map[T]struct{}

func New[T comparable]() Set[T] {
	return &set[T]{}
}

// Values returns the values in map iteration order.
func (s *set[T]) Values() []T {
	result := make([]T, 0, len(*s))
	for v := range *s {
		result = append(result, v)
	}

	return result
}

// Add reports whether v was absent.
func (s *set[T]) Add(v T) bool {
	if _, found := (*s)[v]; found {
		return false
	}

	(*s)[v] = struct{}{}
	return true
}

func (s *set[T]) Len() uint {
	return uint(len(*s))
}

// Sorted returns the values of s in ascending order.
func Sorted[T constraints.Ordered](s Set[T]) []T {
	values := s.Values()
	sort.Slice(values, func(i, j int) bool {
		return values[i] < values[j]
	})

	return values
}
