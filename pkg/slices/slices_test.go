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

package slices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert := assert.New(t)
	assert.True(Contains([]string{"Pressure_1", "Pressure_2"}, "Pressure_2"))
	assert.False(Contains([]string{"Pressure_1", "Pressure_2"}, "labels"))
	assert.False(Contains(nil, "labels"))
	assert.True(Contains([]int{0, 1}, 1))
}

func TestFindDuplicate(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		expect func(t *testing.T, v string, ok bool)
	}{
		{
			name:   "duplicate column",
			values: []string{"Pressure_1", "labels", "Pressure_2", "labels"},
			expect: func(t *testing.T, v string, ok bool) {
				assert := assert.New(t)
				assert.True(ok)
				assert.Equal("labels", v)
			},
		},
		{
			name:   "first duplicate wins",
			values: []string{"a", "b", "b", "a"},
			expect: func(t *testing.T, v string, ok bool) {
				assert := assert.New(t)
				assert.True(ok)
				assert.Equal("b", v)
			},
		},
		{
			name:   "unique columns",
			values: []string{"Pressure_1", "Pressure_2", "labels"},
			expect: func(t *testing.T, v string, ok bool) {
				assert := assert.New(t)
				assert.False(ok)
				assert.Empty(v)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := FindDuplicate(tc.values)
			tc.expect(t, v, ok)
		})
	}
}
