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

package stream

import (
	"math/rand"

	"github.com/valvesense/valvesense/internal/vserrors"
	pkgmath "github.com/valvesense/valvesense/pkg/math"
)

// Sample is one synthetic sensor reading.
type Sample struct {
	Pressure1     float64
	Pressure2     float64
	InputState    int
	FeedbackState int
}

// Source draws synthetic sensor readings.
type Source interface {
	// Next returns the next reading.
	Next() Sample
}

// UniformSource draws pressures from U[min, max] and states from U{0,1}.
type UniformSource struct {
	min  float64
	max  float64
	rand *rand.Rand
}

// NewUniformSource returns a source over [min, max], min must be greater than 0.
func NewUniformSource(min, max float64, r *rand.Rand) (*UniformSource, error) {
	if !pkgmath.IsFinite(min, max) || min <= 0 || max <= min {
		return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "pressure range [%v, %v] is invalid", min, max)
	}

	return &UniformSource{min: min, max: max, rand: r}, nil
}

// Next returns the next reading.
func (s *UniformSource) Next() Sample {
	return Sample{
		Pressure1:     s.min + (s.max-s.min)*s.rand.Float64(),
		Pressure2:     s.min + (s.max-s.min)*s.rand.Float64(),
		InputState:    s.rand.Intn(2),
		FeedbackState: s.rand.Intn(2),
	}
}

// Features scales both pressures by the larger of the two and returns
// [p1', p2', input_state, feedback_state]. The scaling is local to the sample
// and differs from the dataset wide min-max scaling used for training.
func Features(s Sample) ([]float64, error) {
	max := pkgmath.Max(s.Pressure1, s.Pressure2)
	if !pkgmath.IsFinite(s.Pressure1, s.Pressure2) || max <= 0 {
		return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "pressures %v and %v can not be scaled", s.Pressure1, s.Pressure2)
	}

	return []float64{s.Pressure1 / max, s.Pressure2 / max, float64(s.InputState), float64(s.FeedbackState)}, nil
}
