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

package config

import (
	"time"

	logger "github.com/valvesense/valvesense/internal/vslog"
)

const (
	// DefaultSourcePressureMin is default lower bound of the drawn pressures.
	DefaultSourcePressureMin = 20.0

	// DefaultSourcePressureMax is default upper bound of the drawn pressures.
	DefaultSourcePressureMax = 75.0
)

const (
	// DefaultStreamCount is default number of frames before the simulation is done.
	DefaultStreamCount = 250

	// DefaultStreamInterval is default cadence of the ticks.
	DefaultStreamInterval = 100 * time.Millisecond

	// DefaultStreamBufferSize is default capacity of the frame buffer in front of the sinks.
	DefaultStreamBufferSize = 64
)

const (
	// DefaultModelFilename is default file name of the model artifact.
	DefaultModelFilename = "valve.json"
)

const (
	// DefaultRenderChartFilename is default file name of the chart page.
	DefaultRenderChartFilename = "valve.html"

	// DefaultRenderChartWindow is default number of frames drawn in the time series.
	DefaultRenderChartWindow = 250

	// DefaultRenderChartRefresh is default number of frames between chart renders.
	DefaultRenderChartRefresh = 10

	// DefaultRenderCSVFilename is default file name of the frame log.
	DefaultRenderCSVFilename = "frames.csv"
)

const (
	// DefaultMetricsAddr is default address for metrics server.
	DefaultMetricsAddr = ":8001"
)

const (
	// DefaultLogRotateMaxSize is default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = logger.DefaultRotateMaxSize

	// DefaultLogRotateMaxAge is default maximum number of days to retain old log files.
	DefaultLogRotateMaxAge = logger.DefaultRotateMaxAge

	// DefaultLogRotateMaxBackups is default maximum number of old log files to keep.
	DefaultLogRotateMaxBackups = logger.DefaultRotateMaxBackups
)

const (
	// DefaultShutdownTimeout is default timeout of graceful shutdown of the metrics server.
	DefaultShutdownTimeout = 5 * time.Second
)
