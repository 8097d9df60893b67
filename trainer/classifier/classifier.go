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
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/valvesense/valvesense/internal/vserrors"
	pkgmath "github.com/valvesense/valvesense/pkg/math"
)

const (
	// DefaultInputs is the width of a feature vector:
	// two pressures, the input state and the feedback state.
	DefaultInputs = 4

	// DefaultOutputs is the number of valve states.
	DefaultOutputs = 6

	// DefaultDropoutRate is the dropout rate between the hidden layers.
	DefaultDropoutRate = 0.2
)

// hiddenUnits are the widths of the hidden dense layers, dropout follows the second.
var hiddenUnits = []int{4, 16, 16}

// Option is a functional option for configuring the classifier.
type Option func(c *Classifier)

// WithDropoutRate sets the dropout rate.
func WithDropoutRate(rate float64) Option {
	return func(c *Classifier) {
		c.dropoutRate = rate
	}
}

// WithOutputs sets the number of classes.
func WithOutputs(outputs int) Option {
	return func(c *Classifier) {
		c.outputs = outputs
	}
}

// Param is a trainable tensor and its gradient, both row-major views into the layer.
type Param struct {
	Name  string
	Value []float64
	Grad  []float64
}

// Classifier is a feed-forward network mapping a feature vector to a
// probability distribution over the valve states.
type Classifier struct {
	inputs      int
	outputs     int
	dropoutRate float64
	layers      []layer

	// output of the last forward pass, checked by Backward.
	output *mat.Dense
}

// New returns a classifier with freshly initialized parameters drawn from r.
func New(r *rand.Rand, options ...Option) *Classifier {
	c := &Classifier{
		inputs:      DefaultInputs,
		outputs:     DefaultOutputs,
		dropoutRate: DefaultDropoutRate,
	}

	for _, opt := range options {
		opt(c)
	}

	inputs := c.inputs
	for i, units := range hiddenUnits {
		c.layers = append(c.layers, newDense(inputs, units, ReLU, r))
		if i == 1 {
			c.layers = append(c.layers, &dropout{rate: c.dropoutRate, rand: r})
		}

		inputs = units
	}
	c.layers = append(c.layers, newDense(inputs, c.outputs, Softmax, r))

	return c
}

// Inputs returns the width of a feature vector.
func (c *Classifier) Inputs() int {
	return c.inputs
}

// Outputs returns the number of classes.
func (c *Classifier) Outputs() int {
	return c.outputs
}

// DropoutRate returns the dropout rate.
func (c *Classifier) DropoutRate() float64 {
	return c.dropoutRate
}

// Predict returns the class distribution of one feature vector, dropout is disabled.
// It does not modify the classifier and is safe for concurrent use.
func (c *Classifier) Predict(features []float64) ([]float64, error) {
	if len(features) != c.inputs {
		return nil, vserrors.Newf(vserrors.CodeShapeError, "feature vector has %d values, want %d", len(features), c.inputs)
	}

	if !pkgmath.IsFinite(features...) {
		return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "feature vector %v is not finite", features)
	}

	x := mat.NewDense(1, c.inputs, append([]float64(nil), features...))
	for _, l := range c.layers {
		x = l.infer(x)
	}

	return append([]float64(nil), x.RawRowView(0)...), nil
}

// Forward runs a batch through the network and keeps the activations for Backward.
// Dropout is active only when training is set.
func (c *Classifier) Forward(batch mat.Matrix, training bool) (*mat.Dense, error) {
	_, cols := batch.Dims()
	if cols != c.inputs {
		return nil, vserrors.Newf(vserrors.CodeShapeError, "batch has %d columns, want %d", cols, c.inputs)
	}

	x := mat.DenseCopyOf(batch)
	for _, l := range c.layers {
		x = l.forward(x, training)
	}

	c.output = x
	return x, nil
}

// Backward propagates the gradient of the loss with respect to the output logits
// of the last Forward and fills the gradients of all parameters.
func (c *Classifier) Backward(grad mat.Matrix) error {
	if c.output == nil {
		return vserrors.New(vserrors.CodeInvalidArgument, "backward called before forward")
	}

	rows, cols := grad.Dims()
	if r, o := c.output.Dims(); rows != r || cols != o {
		return vserrors.Newf(vserrors.CodeShapeError, "gradient is %dx%d, want %dx%d", rows, cols, r, o)
	}

	g := mat.DenseCopyOf(grad)
	for i := len(c.layers) - 1; i >= 0; i-- {
		g = c.layers[i].backward(g)
	}

	return nil
}

// Params returns the trainable parameters in layer order.
func (c *Classifier) Params() []Param {
	var params []Param
	for i, l := range c.layers {
		d, ok := l.(*dense)
		if !ok {
			continue
		}

		params = append(params,
			Param{Name: fmt.Sprintf("dense_%d/weights", i), Value: d.weights.RawMatrix().Data, Grad: d.gradWeights.RawMatrix().Data},
			Param{Name: fmt.Sprintf("dense_%d/biases", i), Value: d.biases.RawVector().Data, Grad: d.gradBiases.RawVector().Data},
		)
	}

	return params
}
