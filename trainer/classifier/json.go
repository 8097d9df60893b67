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
	"math/rand"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/valvesense/valvesense/internal/vserrors"
)

type layerJSON struct {
	Type       string     `json:"type" mapstructure:"type"`
	Activation Activation `json:"activation,omitempty" mapstructure:"activation"`
	Inputs     int        `json:"inputs,omitempty" mapstructure:"inputs"`
	Outputs    int        `json:"outputs,omitempty" mapstructure:"outputs"`
	Weights    []float64  `json:"weights,omitempty" mapstructure:"weights"`
	Biases     []float64  `json:"biases,omitempty" mapstructure:"biases"`
	Rate       float64    `json:"rate,omitempty" mapstructure:"rate"`
}

type classifierJSON struct {
	Inputs      int         `json:"inputs" mapstructure:"inputs"`
	Outputs     int         `json:"outputs" mapstructure:"outputs"`
	DropoutRate float64     `json:"dropout_rate" mapstructure:"dropout_rate"`
	Layers      []layerJSON `json:"layers" mapstructure:"layers"`
}

// MarshalJSON encodes the topology and all parameters, weights are row-major.
func (c *Classifier) MarshalJSON() ([]byte, error) {
	out := classifierJSON{
		Inputs:      c.inputs,
		Outputs:     c.outputs,
		DropoutRate: c.dropoutRate,
	}

	for _, l := range c.layers {
		switch l := l.(type) {
		case *dense:
			inputs, outputs := l.dims()
			out.Layers = append(out.Layers, layerJSON{
				Type:       layerTypeDense,
				Activation: l.activation,
				Inputs:     inputs,
				Outputs:    outputs,
				Weights:    append([]float64(nil), l.weights.RawMatrix().Data...),
				Biases:     append([]float64(nil), l.biases.RawVector().Data...),
			})
		case *dropout:
			out.Layers = append(out.Layers, layerJSON{
				Type: layerTypeDropout,
				Rate: l.rate,
			})
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the classifier from MarshalJSON output.
func (c *Classifier) UnmarshalJSON(data []byte) error {
	var d map[string]any
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}

	var in classifierJSON
	if err := mapstructure.Decode(d, &in); err != nil {
		return err
	}

	if len(in.Layers) == 0 {
		return vserrors.New(vserrors.CodeShapeError, "classifier has no layers")
	}

	if in.DropoutRate < 0 || in.DropoutRate >= 1 {
		return vserrors.Newf(vserrors.CodeSchemaError, "dropout rate %v not in [0,1)", in.DropoutRate)
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	layers := make([]layer, 0, len(in.Layers))
	width := in.Inputs
	var last Activation
	for i, l := range in.Layers {
		switch l.Type {
		case layerTypeDense:
			if l.Inputs != width || l.Outputs <= 0 || len(l.Weights) != l.Inputs*l.Outputs || len(l.Biases) != l.Outputs {
				return vserrors.Newf(vserrors.CodeShapeError, "layer %d has inconsistent dimensions", i)
			}

			if l.Activation != ReLU && l.Activation != Softmax {
				return vserrors.Newf(vserrors.CodeSchemaError, "layer %d has unknown activation %q", i, l.Activation)
			}

			layers = append(layers, newDenseFrom(l.Inputs, l.Outputs, l.Activation, l.Weights, l.Biases))
			width = l.Outputs
			last = l.Activation
		case layerTypeDropout:
			if l.Rate < 0 || l.Rate >= 1 {
				return vserrors.Newf(vserrors.CodeSchemaError, "layer %d has dropout rate %v not in [0,1)", i, l.Rate)
			}

			layers = append(layers, &dropout{rate: l.Rate, rand: r})
		default:
			return vserrors.Newf(vserrors.CodeSchemaError, "layer %d has unknown type %q", i, l.Type)
		}
	}

	if last != Softmax {
		return vserrors.Newf(vserrors.CodeSchemaError, "last dense layer has activation %q, want %q", last, Softmax)
	}

	if width != in.Outputs {
		return vserrors.Newf(vserrors.CodeShapeError, "classifier outputs %d values, want %d", width, in.Outputs)
	}

	*c = Classifier{
		inputs:      in.Inputs,
		outputs:     in.Outputs,
		dropoutRate: in.DropoutRate,
		layers:      layers,
	}

	return nil
}
