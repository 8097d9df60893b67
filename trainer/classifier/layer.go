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

package classifier

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	pkgmath "github.com/valvesense/valvesense/pkg/math"
)

// Activation is the nonlinearity applied after a dense layer.
type Activation string

const (
	// ReLU is max(0, x).
	ReLU Activation = "relu"

	// Softmax normalizes a row into a probability distribution.
	Softmax Activation = "softmax"
)

const (
	layerTypeDense   = "dense"
	layerTypeDropout = "dropout"
)

type layer interface {
	// infer applies the layer without caching, dropout is the identity.
	infer(x *mat.Dense) *mat.Dense

	// forward applies the layer and keeps what backward needs.
	forward(x *mat.Dense, training bool) *mat.Dense

	// backward takes the gradient of the loss with respect to the layer output
	// and returns it with respect to the layer input.
	backward(grad *mat.Dense) *mat.Dense
}

// dense is a fully connected layer, output = activation(x·W + b).
type dense struct {
	weights     *mat.Dense
	biases      *mat.VecDense
	activation  Activation
	gradWeights *mat.Dense
	gradBiases  *mat.VecDense

	input *mat.Dense
	z     *mat.Dense
}

// newDense initializes weights with glorot uniform and biases with zero.
func newDense(inputs, outputs int, activation Activation, r *rand.Rand) *dense {
	limit := math.Sqrt(6 / float64(inputs+outputs))
	weights := make([]float64, inputs*outputs)
	for i := range weights {
		weights[i] = (2*r.Float64() - 1) * limit
	}

	return newDenseFrom(inputs, outputs, activation, weights, make([]float64, outputs))
}

func newDenseFrom(inputs, outputs int, activation Activation, weights, biases []float64) *dense {
	return &dense{
		weights:     mat.NewDense(inputs, outputs, weights),
		biases:      mat.NewVecDense(outputs, biases),
		activation:  activation,
		gradWeights: mat.NewDense(inputs, outputs, nil),
		gradBiases:  mat.NewVecDense(outputs, nil),
	}
}

func (l *dense) dims() (int, int) {
	return l.weights.Dims()
}

func (l *dense) affine(x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	_, outputs := l.weights.Dims()

	z := mat.NewDense(rows, outputs, nil)
	z.Mul(x, l.weights)
	z.Apply(func(_, j int, v float64) float64 {
		return v + l.biases.AtVec(j)
	}, z)

	return z
}

func (l *dense) infer(x *mat.Dense) *mat.Dense {
	return activate(l.activation, l.affine(x))
}

func (l *dense) forward(x *mat.Dense, _ bool) *mat.Dense {
	l.input = x
	l.z = l.affine(x)
	return activate(l.activation, l.z)
}

// backward of a softmax layer takes the gradient with respect to its logits,
// the softmax jacobian is folded into the cross entropy gradient.
func (l *dense) backward(grad *mat.Dense) *mat.Dense {
	dz := grad
	if l.activation == ReLU {
		dz = mat.DenseCopyOf(grad)
		dz.Apply(func(i, j int, v float64) float64 {
			if l.z.At(i, j) <= 0 {
				return 0
			}

			return v
		}, dz)
	}

	l.gradWeights.Mul(l.input.T(), dz)
	_, outputs := dz.Dims()
	for j := 0; j < outputs; j++ {
		l.gradBiases.SetVec(j, mat.Sum(dz.ColView(j)))
	}

	rows, _ := dz.Dims()
	inputs, _ := l.weights.Dims()
	dx := mat.NewDense(rows, inputs, nil)
	dx.Mul(dz, l.weights.T())
	return dx
}

// dropout zeroes activations with probability rate while training and scales
// the kept ones by 1/(1-rate).
type dropout struct {
	rate float64
	rand *rand.Rand
	mask *mat.Dense
}

func (l *dropout) infer(x *mat.Dense) *mat.Dense {
	return x
}

func (l *dropout) forward(x *mat.Dense, training bool) *mat.Dense {
	if !training || l.rate == 0 {
		l.mask = nil
		return x
	}

	rows, cols := x.Dims()
	scale := 1 / (1 - l.rate)
	l.mask = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if l.rand.Float64() >= l.rate {
				l.mask.Set(i, j, scale)
			}
		}
	}

	out := mat.NewDense(rows, cols, nil)
	out.MulElem(x, l.mask)
	return out
}

func (l *dropout) backward(grad *mat.Dense) *mat.Dense {
	if l.mask == nil {
		return grad
	}

	rows, cols := grad.Dims()
	dx := mat.NewDense(rows, cols, nil)
	dx.MulElem(grad, l.mask)
	return dx
}

func activate(activation Activation, z *mat.Dense) *mat.Dense {
	rows, cols := z.Dims()
	out := mat.NewDense(rows, cols, nil)

	switch activation {
	case ReLU:
		out.Apply(func(_, _ int, v float64) float64 {
			return math.Max(0, v)
		}, z)
	case Softmax:
		for i := 0; i < rows; i++ {
			out.SetRow(i, softmax(z.RawRowView(i)))
		}
	default:
		out.Copy(z)
	}

	return out
}

// softmax shifts by the maximum so exp never overflows.
func softmax(z []float64) []float64 {
	max := pkgmath.Max(z...)

	var sum float64
	out := make([]float64, len(z))
	for i, v := range z {
		out[i] = math.Exp(v - max)
		sum += out[i]
	}

	for i := range out {
		out[i] /= sum
	}

	return out
}
