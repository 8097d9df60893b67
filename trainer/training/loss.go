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

package training

import (
	"math"

	"gonum.org/v1/gonum/mat"

	pkgmath "github.com/valvesense/valvesense/pkg/math"
)

const (
	// ProbabilityEpsilon clips predictions to [eps, 1-eps] before taking the log.
	ProbabilityEpsilon = 1e-7
)

// CrossEntropy returns the mean categorical cross entropy of predictions p against one-hot labels y.
func CrossEntropy(p, y mat.Matrix) float64 {
	rows, cols := p.Dims()
	if rows == 0 {
		return 0
	}

	var loss float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if t := y.At(i, j); t != 0 {
				loss -= t * math.Log(pkgmath.Clip(p.At(i, j), ProbabilityEpsilon, 1-ProbabilityEpsilon))
			}
		}
	}

	return loss / float64(rows)
}

// Correct returns the number of rows whose most probable class is the labeled class.
func Correct(p, y mat.Matrix) int {
	rows, _ := p.Dims()

	var correct int
	for i := 0; i < rows; i++ {
		if pkgmath.Argmax(mat.Row(nil, i, p)...) == pkgmath.Argmax(mat.Row(nil, i, y)...) {
			correct++
		}
	}

	return correct
}

// Accuracy returns the fraction of correctly classified rows.
func Accuracy(p, y mat.Matrix) float64 {
	rows, _ := p.Dims()
	if rows == 0 {
		return 0
	}

	return float64(Correct(p, y)) / float64(rows)
}

// outputGradient returns the gradient of the mean cross entropy with respect
// to the softmax logits, (p - y) / rows.
func outputGradient(p, y mat.Matrix) *mat.Dense {
	rows, cols := p.Dims()
	grad := mat.NewDense(rows, cols, nil)
	grad.Sub(p, y)
	grad.Scale(1/float64(rows), grad)
	return grad
}
