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

//go:generate mockgen -destination mocks/sink_mock.go -source frame.go -package mocks

package stream

import (
	"strconv"
	"strings"
)

// Frame is the output of one tick.
type Frame struct {
	Tick          uint64       `csv:"tick" json:"tick"`
	Pressure1     float64      `csv:"pressure_1" json:"pressure_1"`
	Pressure2     float64      `csv:"pressure_2" json:"pressure_2"`
	InputState    int          `csv:"input_state" json:"input_state"`
	FeedbackState int          `csv:"feedback_state" json:"feedback_state"`
	State         string       `csv:"state" json:"state"`
	Distribution  Distribution `csv:"distribution" json:"distribution"`
}

// Distribution is the probability of every state, ordered as the model labels.
type Distribution []float64

// MarshalCSV joins the probabilities with semicolons.
func (d Distribution) MarshalCSV() (string, error) {
	values := make([]string, len(d))
	for i, p := range d {
		values[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}

	return strings.Join(values, ";"), nil
}

// UnmarshalCSV parses the output of MarshalCSV.
func (d *Distribution) UnmarshalCSV(s string) error {
	*d = nil
	if s == "" {
		return nil
	}

	for _, value := range strings.Split(s, ";") {
		p, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}

		*d = append(*d, p)
	}

	return nil
}

// Sink consumes frames.
type Sink interface {
	// Write consumes one frame.
	Write(Frame) error

	// Close flushes and releases the sink.
	Close() error
}
