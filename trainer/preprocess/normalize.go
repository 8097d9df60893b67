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

package preprocess

import (
	"math/rand"

	"github.com/montanaflynn/stats"

	"github.com/valvesense/valvesense/trainer/dataset"
)

// StateColumns are cast to float by NormalizeMinMax.
var StateColumns = []string{dataset.InputStateColumn, dataset.FeedbackStateColumn}

// Bounds is the observed range of a normalized column.
type Bounds struct {
	Column string  `json:"column" validate:"required"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max" validate:"gtefield=Min"`
}

// Shuffle returns a random permutation of all rows.
func Shuffle(d *dataset.Dataset, r *rand.Rand) (*dataset.Dataset, error) {
	return d.Permute(r.Perm(d.Len()))
}

// NormalizeMinMax rescales both columns to [0,1] over all rows and casts the state columns to float.
// A constant column maps to 0.
func NormalizeMinMax(d *dataset.Dataset, colA, colB string) (*dataset.Dataset, []Bounds, error) {
	var (
		out    = d
		bounds = make([]Bounds, 0, 2)
	)

	for _, name := range []string{colA, colB} {
		c, err := d.MustColumn(name)
		if err != nil {
			return nil, nil, err
		}

		values, err := c.AsFloats()
		if err != nil {
			return nil, nil, err
		}

		b := Bounds{Column: name}
		if len(values) > 0 {
			b.Min, _ = stats.Min(values)
			b.Max, _ = stats.Max(values)
		}

		scale := b.Max - b.Min
		for i, v := range values {
			if scale == 0 {
				values[i] = 0
				continue
			}

			values[i] = (v - b.Min) / scale
		}

		if out, err = out.Replace(dataset.Column{Name: name, Kind: dataset.Float, Floats: values}); err != nil {
			return nil, nil, err
		}

		bounds = append(bounds, b)
	}

	for _, name := range StateColumns {
		c, err := d.MustColumn(name)
		if err != nil {
			return nil, nil, err
		}

		values, err := c.AsFloats()
		if err != nil {
			return nil, nil, err
		}

		if out, err = out.Replace(dataset.Column{Name: name, Kind: dataset.Float, Floats: values}); err != nil {
			return nil, nil, err
		}
	}

	return out, bounds, nil
}
