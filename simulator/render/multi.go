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

package render

import (
	"github.com/hashicorp/go-multierror"

	"github.com/valvesense/valvesense/simulator/stream"
)

// Multi fans every frame out to all sinks.
type Multi []stream.Sink

func NewMulti(sinks ...stream.Sink) Multi {
	return Multi(sinks)
}

// Write writes frame to every sink and aggregates the errors.
func (m Multi) Write(frame stream.Frame) error {
	var errs *multierror.Error
	for _, sink := range m {
		if err := sink.Write(frame); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}

// Close closes every sink and aggregates the errors.
func (m Multi) Close() error {
	var errs *multierror.Error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs.ErrorOrNil()
}
