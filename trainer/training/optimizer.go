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
	"fmt"
	"math"

	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/config"
)

const (
	// DefaultRMSPropEpsilon keeps the rmsprop denominator away from zero.
	DefaultRMSPropEpsilon = 1e-7
)

// Optimizer updates parameters from their gradients.
type Optimizer interface {
	// Step applies one update to params, called with the same params every step.
	Step(params []classifier.Param)
}

// NewOptimizer returns the optimizer named by the training config.
func NewOptimizer(cfg config.TrainingConfig) (Optimizer, error) {
	switch cfg.Optimizer {
	case config.OptimizerRMSProp:
		return NewRMSProp(cfg.LearningRate, cfg.Rho, cfg.Momentum), nil
	case config.OptimizerMomentum:
		return NewMomentum(cfg.LearningRate, cfg.Momentum), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q", cfg.Optimizer)
	}
}

// RMSProp divides the gradient by a running average of its magnitude.
type RMSProp struct {
	LearningRate float64
	Rho          float64
	Epsilon      float64
	Momentum     float64

	meanSquare [][]float64
	moment     [][]float64
}

// NewRMSProp returns rmsprop, momentum 0 disables the momentum term.
func NewRMSProp(learningRate, rho, momentum float64) *RMSProp {
	return &RMSProp{
		LearningRate: learningRate,
		Rho:          rho,
		Epsilon:      DefaultRMSPropEpsilon,
		Momentum:     momentum,
	}
}

// Step updates params in place.
func (o *RMSProp) Step(params []classifier.Param) {
	if o.meanSquare == nil {
		o.meanSquare = zeros(params)
		o.moment = zeros(params)
	}

	for i, p := range params {
		ms, mom := o.meanSquare[i], o.moment[i]
		for k, g := range p.Grad {
			ms[k] = o.Rho*ms[k] + (1-o.Rho)*g*g
			step := o.LearningRate * g / (math.Sqrt(ms[k]) + o.Epsilon)
			if o.Momentum > 0 {
				mom[k] = o.Momentum*mom[k] + step
				step = mom[k]
			}

			p.Value[k] -= step
		}
	}
}

// Momentum is stochastic gradient descent with classical momentum.
type Momentum struct {
	LearningRate float64
	Momentum     float64

	velocity [][]float64
}

// NewMomentum returns stochastic gradient descent with momentum.
func NewMomentum(learningRate, momentum float64) *Momentum {
	return &Momentum{
		LearningRate: learningRate,
		Momentum:     momentum,
	}
}

// Step updates params in place.
func (o *Momentum) Step(params []classifier.Param) {
	if o.velocity == nil {
		o.velocity = zeros(params)
	}

	for i, p := range params {
		v := o.velocity[i]
		for k, g := range p.Grad {
			v[k] = o.Momentum*v[k] - o.LearningRate*g
			p.Value[k] += v[k]
		}
	}
}

func zeros(params []classifier.Param) [][]float64 {
	state := make([][]float64, len(params))
	for i, p := range params {
		state[i] = make([]float64, len(p.Value))
	}

	return state
}
