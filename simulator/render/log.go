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
	"go.uber.org/zap"

	"github.com/valvesense/valvesense/simulator/stream"
)

// Log writes every frame as one structured entry.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Write(frame stream.Frame) error {
	l.logger.Info("frame",
		zap.Uint64("tick", frame.Tick),
		zap.Float64("pressure1", frame.Pressure1),
		zap.Float64("pressure2", frame.Pressure2),
		zap.Int("inputState", frame.InputState),
		zap.Int("feedbackState", frame.FeedbackState),
		zap.String("state", frame.State),
		zap.Float64s("distribution", frame.Distribution),
	)

	return nil
}

func (l *Log) Close() error {
	return nil
}
