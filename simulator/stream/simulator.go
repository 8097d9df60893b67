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
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/looplab/fsm"

	"github.com/valvesense/valvesense/internal/vserrors"
	logger "github.com/valvesense/valvesense/internal/vslog"
	pkgmath "github.com/valvesense/valvesense/pkg/math"
	"github.com/valvesense/valvesense/simulator/config"
	"github.com/valvesense/valvesense/simulator/metrics"
	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/storage"
)

const (
	// Simulator waits for a model and the first tick.
	StateWarmup = "Warmup"

	// Simulator is emitting frames.
	StateStreaming = "Streaming"

	// Simulator emitted the configured number of frames.
	StateDone = "Done"
)

const (
	// Simulator emits the first frame.
	EventStream = "Stream"

	// Simulator emits the last frame.
	EventFinish = "Finish"
)

// Simulator feeds synthetic sensor readings through a loaded classifier.
// It is not safe for concurrent use.
type Simulator struct {
	// Simulator state machine.
	FSM *fsm.FSM

	source     Source
	count      uint64
	interval   time.Duration
	classifier *classifier.Classifier
	labels     []string
	modelID    string
	tick       uint64
}

// Option is a functional option for configuring the simulator.
type Option func(s *Simulator)

// WithSource sets the source of the sensor readings.
func WithSource(source Source) Option {
	return func(s *Simulator) {
		s.source = source
	}
}

// WithCount sets the number of frames before the simulator is done, 0 streams forever.
func WithCount(count uint64) Option {
	return func(s *Simulator) {
		s.count = count
	}
}

// WithInterval sets the cadence of Run, 0 ticks back to back.
func WithInterval(interval time.Duration) Option {
	return func(s *Simulator) {
		s.interval = interval
	}
}

// New returns a simulator in the warmup state. It draws from
// U[20, 75] unless a source is given and streams forever unless a count is given.
func New(options ...Option) *Simulator {
	s := &Simulator{}
	for _, opt := range options {
		opt(s)
	}

	if s.source == nil {
		s.source = &UniformSource{
			min:  config.DefaultSourcePressureMin,
			max:  config.DefaultSourcePressureMax,
			rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		}
	}

	s.FSM = fsm.NewFSM(
		StateWarmup,
		fsm.Events{
			{Name: EventStream, Src: []string{StateWarmup}, Dst: StateStreaming},
			{Name: EventFinish, Src: []string{StateStreaming}, Dst: StateDone},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) {
				logger.SimulatorLogger.Infow("simulator state changed", "modelID", s.modelID, "tick", s.tick, "src", e.Src, "dst", e.Dst)
			},
		},
	)

	return s
}

// Load supplies the model whose classifier scores every tick.
func (s *Simulator) Load(model *storage.Model) error {
	metrics.LoadModelCount.Inc()
	if model == nil || model.Classifier == nil {
		metrics.LoadModelFailureCount.Inc()
		return vserrors.ErrModelNotLoaded
	}

	c := model.Classifier
	if c.Inputs() != classifier.DefaultInputs {
		metrics.LoadModelFailureCount.Inc()
		return vserrors.Newf(vserrors.CodeShapeError, "classifier takes %d features, want %d", c.Inputs(), classifier.DefaultInputs)
	}

	if len(model.Labels) != c.Outputs() {
		metrics.LoadModelFailureCount.Inc()
		return vserrors.Newf(vserrors.CodeShapeError, "%d labels for %d outputs", len(model.Labels), c.Outputs())
	}

	s.classifier = c
	s.labels = model.Labels
	s.modelID = model.ID
	logger.WithModel(model.ID).Infof("model loaded with labels %q", model.Labels)
	return nil
}

// Labels returns the state names of the loaded model.
func (s *Simulator) Labels() []string {
	return s.labels
}

// Done reports whether the simulator emitted its last frame.
func (s *Simulator) Done() bool {
	return s.FSM.Is(StateDone)
}

// Tick draws a reading, scales it and emits the predicted distribution.
func (s *Simulator) Tick() (Frame, error) {
	frame, err := s.next()
	if err != nil {
		metrics.TickFailureCount.Inc()
		return Frame{}, err
	}

	metrics.TickCount.Inc()
	metrics.PredictedStateCount.WithLabelValues(frame.State).Inc()
	metrics.PressureGauge.WithLabelValues(metrics.SensorPressure1).Set(frame.Pressure1)
	metrics.PressureGauge.WithLabelValues(metrics.SensorPressure2).Set(frame.Pressure2)
	for i, label := range s.labels {
		metrics.ProbabilityGauge.WithLabelValues(label).Set(frame.Distribution[i])
	}

	return frame, nil
}

func (s *Simulator) next() (Frame, error) {
	if s.Done() {
		return Frame{}, vserrors.Newf(vserrors.CodeInvalidArgument, "simulator is done after %d frames", s.tick)
	}

	if s.classifier == nil {
		return Frame{}, vserrors.ErrModelNotLoaded
	}

	sample := s.source.Next()
	features, err := Features(sample)
	if err != nil {
		return Frame{}, err
	}

	distribution, err := s.classifier.Predict(features)
	if err != nil {
		return Frame{}, err
	}

	if s.FSM.Is(StateWarmup) {
		if err := s.FSM.Event(EventStream); err != nil {
			return Frame{}, err
		}
	}

	frame := Frame{
		Tick:          s.tick,
		Pressure1:     sample.Pressure1,
		Pressure2:     sample.Pressure2,
		InputState:    sample.InputState,
		FeedbackState: sample.FeedbackState,
		State:         s.labels[pkgmath.Argmax(distribution...)],
		Distribution:  distribution,
	}
	s.tick++

	if s.count > 0 && s.tick >= s.count {
		if err := s.FSM.Event(EventFinish); err != nil {
			return Frame{}, err
		}
	}

	return frame, nil
}

// Run ticks until the simulator is done or ctx is canceled, writing every
// frame to sink. The sink is not closed.
func (s *Simulator) Run(ctx context.Context, sink Sink) error {
	var ticks <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for !s.Done() {
		if ticks != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticks:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		frame, err := s.Tick()
		if err != nil {
			return err
		}

		if err := sink.Write(frame); err != nil {
			metrics.WriteFrameFailureCount.Inc()
			return fmt.Errorf("write frame %d: %w", frame.Tick, err)
		}
	}

	logger.WithModel(s.modelID).Infof("simulator done after %d frames", s.tick)
	return nil
}
