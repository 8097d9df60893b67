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
	"encoding/json"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/valvesense/valvesense/internal/vserrors"
)

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}

	return s
}

func TestClassifier_New(t *testing.T) {
	assert := assert.New(t)
	c := New(rand.New(rand.NewSource(1)))

	assert.Equal(DefaultInputs, c.Inputs())
	assert.Equal(DefaultOutputs, c.Outputs())
	assert.Equal(DefaultDropoutRate, c.DropoutRate())

	params := c.Params()
	assert.Len(params, 8)
	sizes := []int{4 * 4, 4, 4 * 16, 16, 16 * 16, 16, 16 * 6, 6}
	for i, p := range params {
		assert.Len(p.Value, sizes[i], p.Name)
		assert.Len(p.Grad, sizes[i], p.Name)
	}

	// Biases start at zero, weights within the glorot limit.
	assert.Equal(make([]float64, 4), params[1].Value)
	limit := math.Sqrt(6.0 / 20)
	for _, w := range params[2].Value {
		assert.LessOrEqual(math.Abs(w), limit)
	}

	// Factories own independent parameters.
	other := New(rand.New(rand.NewSource(1)), WithOutputs(3), WithDropoutRate(0.5))
	assert.Equal(3, other.Outputs())
	assert.Equal(0.5, other.DropoutRate())
	other.Params()[0].Value[0] = 42
	assert.NotEqual(float64(42), c.Params()[0].Value[0])
}

func TestClassifier_Predict(t *testing.T) {
	c := New(rand.New(rand.NewSource(2)))

	tests := []struct {
		name     string
		features []float64
		expect   func(t *testing.T, dist []float64, err error)
	}{
		{
			name:     "zero vector",
			features: []float64{0, 0, 0, 0},
			expect: func(t *testing.T, dist []float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(dist, 6)
				assert.InDelta(1.0, sum(dist), 1e-9)
			},
		},
		{
			name:     "one vector",
			features: []float64{1, 1, 1, 1},
			expect: func(t *testing.T, dist []float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(dist, 6)
				assert.InDelta(1.0, sum(dist), 1e-9)
				for _, p := range dist {
					assert.GreaterOrEqual(p, float64(0))
					assert.LessOrEqual(p, float64(1))
				}
			},
		},
		{
			name:     "large values",
			features: []float64{1e6, 1e6, 1, 0},
			expect: func(t *testing.T, dist []float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.InDelta(1.0, sum(dist), 1e-9)
				for _, p := range dist {
					assert.False(math.IsNaN(p))
				}
			},
		},
		{
			name:     "short vector",
			features: []float64{0, 0, 0},
			expect: func(t *testing.T, dist []float64, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsShapeError(err))
			},
		},
		{
			name:     "nan value",
			features: []float64{math.NaN(), 0, 0, 0},
			expect: func(t *testing.T, dist []float64, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsInvalidArgument(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist, err := c.Predict(tc.features)
			tc.expect(t, dist, err)
		})
	}
}

func TestClassifier_PredictRandom(t *testing.T) {
	assert := assert.New(t)
	r := rand.New(rand.NewSource(3))
	c := New(r)

	for i := 0; i < 100; i++ {
		features := []float64{r.Float64(), r.Float64(), float64(r.Intn(2)), float64(r.Intn(2))}
		first, err := c.Predict(features)
		assert.NoError(err)
		second, err := c.Predict(features)
		assert.NoError(err)
		assert.Equal(first, second)
		assert.InDelta(1.0, sum(first), 1e-9)
	}
}

func TestClassifier_Forward(t *testing.T) {
	assert := assert.New(t)
	r := rand.New(rand.NewSource(4))
	batch := mat.NewDense(3, 4, []float64{
		0, 0, 0, 0,
		1, 1, 1, 1,
		0.2, 0.7, 1, 0,
	})

	c := New(r)
	inference, err := c.Forward(batch, false)
	assert.NoError(err)
	for i := 0; i < 3; i++ {
		dist, err := c.Predict(batch.RawRowView(i))
		assert.NoError(err)
		assert.InDeltaSlice(dist, inference.RawRowView(i), 1e-12)
	}

	training, err := c.Forward(batch, true)
	assert.NoError(err)
	for i := 0; i < 3; i++ {
		assert.InDelta(1.0, sum(training.RawRowView(i)), 1e-9)
	}

	// Without dropout the training pass is the inference pass.
	c = New(r, WithDropoutRate(0))
	training, err = c.Forward(batch, true)
	assert.NoError(err)
	inference, err = c.Forward(batch, false)
	assert.NoError(err)
	assert.True(mat.Equal(training, inference))

	_, err = c.Forward(mat.NewDense(1, 3, nil), false)
	assert.True(vserrors.IsShapeError(err))
}

func TestClassifier_Dropout(t *testing.T) {
	assert := assert.New(t)
	l := &dropout{rate: 0.5, rand: rand.New(rand.NewSource(5))}
	x := mat.NewDense(100, 16, nil)
	x.Apply(func(_, _ int, _ float64) float64 { return 1 }, x)

	out := l.forward(x, true)
	var zeros int
	out.Apply(func(_, _ int, v float64) float64 {
		if v == 0 {
			zeros++
		} else {
			assert.Equal(float64(2), v)
		}
		return v
	}, out)
	assert.InDelta(800, zeros, 100)

	assert.Same(x, l.forward(x, false))
	assert.Same(x, l.infer(x))
}

func TestClassifier_Backward(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	r := rand.New(rand.NewSource(6))
	c := New(r, WithDropoutRate(0))

	require.True(vserrors.IsInvalidArgument(c.Backward(mat.NewDense(1, 6, nil))))

	x := mat.NewDense(5, 4, nil)
	y := mat.NewDense(5, 6, nil)
	for i := 0; i < 5; i++ {
		x.SetRow(i, []float64{r.Float64(), r.Float64(), float64(r.Intn(2)), float64(r.Intn(2))})
		y.Set(i, r.Intn(6), 1)
	}

	loss := func() float64 {
		p, err := c.Forward(x, false)
		require.NoError(err)

		var l float64
		for i := 0; i < 5; i++ {
			for j := 0; j < 6; j++ {
				l -= y.At(i, j) * math.Log(p.At(i, j))
			}
		}

		return l / 5
	}

	p, err := c.Forward(x, true)
	require.NoError(err)
	grad := mat.NewDense(5, 6, nil)
	grad.Sub(p, y)
	grad.Scale(1.0/5, grad)
	require.NoError(c.Backward(grad))
	require.True(vserrors.IsShapeError(c.Backward(mat.NewDense(4, 6, nil))))

	const eps = 1e-6
	for _, param := range c.Params() {
		analytic := append([]float64(nil), param.Grad...)
		for k := 0; k < len(param.Value); k += 3 {
			v := param.Value[k]
			param.Value[k] = v + eps
			plus := loss()
			param.Value[k] = v - eps
			minus := loss()
			param.Value[k] = v

			numeric := (plus - minus) / (2 * eps)
			assert.InDelta(numeric, analytic[k], 1e-5, "%s[%d]", param.Name, k)
		}
	}
}

func TestClassifier_JSON(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	c := New(rand.New(rand.NewSource(7)))

	data, err := json.Marshal(c)
	require.NoError(err)

	decoded := &Classifier{}
	require.NoError(json.Unmarshal(data, decoded))
	assert.Equal(c.Inputs(), decoded.Inputs())
	assert.Equal(c.Outputs(), decoded.Outputs())
	assert.Equal(c.DropoutRate(), decoded.DropoutRate())

	params, decodedParams := c.Params(), decoded.Params()
	require.Len(decodedParams, len(params))
	for i := range params {
		assert.Equal(params[i].Value, decodedParams[i].Value)
	}

	for _, features := range [][]float64{{0, 0, 0, 0}, {1, 1, 1, 1}, {0.3, 0.9, 0, 1}} {
		want, err := c.Predict(features)
		assert.NoError(err)
		got, err := decoded.Predict(features)
		assert.NoError(err)
		assert.Equal(want, got)
	}

	again, err := json.Marshal(decoded)
	require.NoError(err)
	assert.JSONEq(string(data), string(again))
}

func TestClassifier_UnmarshalJSON(t *testing.T) {
	data, err := json.Marshal(New(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	sigmoid := strings.Replace(string(data), `"softmax"`, `"sigmoid"`, 1)

	tests := []struct {
		name   string
		data   string
		expect func(t *testing.T, err error)
	}{
		{
			name: "single layer",
			data: `{"inputs":2,"outputs":2,"layers":[{"type":"dense","activation":"softmax","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name: "no layers",
			data: `{"inputs":4,"outputs":6,"layers":[]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsShapeError(err))
			},
		},
		{
			name: "weights do not match dimensions",
			data: `{"inputs":2,"outputs":2,"layers":[{"type":"dense","activation":"softmax","inputs":2,"outputs":2,"weights":[1,0,0],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsShapeError(err))
			},
		},
		{
			name: "outputs do not match last layer",
			data: `{"inputs":2,"outputs":3,"layers":[{"type":"dense","activation":"softmax","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsShapeError(err))
			},
		},
		{
			name: "unknown layer",
			data: `{"inputs":2,"outputs":2,"layers":[{"type":"conv"}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "unknown activation",
			data: sigmoid,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
				assert.Contains(err.Error(), `"sigmoid"`)
			},
		},
		{
			name: "last layer is not softmax",
			data: `{"inputs":2,"outputs":2,"layers":[{"type":"dense","activation":"relu","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "softmax before a relu layer",
			data: `{"inputs":2,"outputs":2,"layers":[{"type":"dense","activation":"softmax","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]},{"type":"dense","activation":"relu","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "dropout rate of layer out of range",
			data: `{"inputs":2,"outputs":2,"layers":[{"type":"dropout","rate":1},{"type":"dense","activation":"softmax","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "dropout rate of classifier out of range",
			data: `{"inputs":2,"outputs":2,"dropout_rate":-0.1,"layers":[{"type":"dense","activation":"softmax","inputs":2,"outputs":2,"weights":[1,0,0,1],"biases":[0,0]}]}`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "invalid json",
			data: `{`,
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, (&Classifier{}).UnmarshalJSON([]byte(tc.data)))
		})
	}
}
