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

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valvesense/valvesense/pkg/types"
	"github.com/valvesense/valvesense/simulator/config"
	"github.com/valvesense/valvesense/version"
)

// Variables declared for metrics.
var (
	LoadModelCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "load_model_total",
		Help:      "Counter of the number of the loaded model artifacts.",
	})

	LoadModelFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "load_model_failure_total",
		Help:      "Counter of the number of failed of the loaded model artifacts.",
	})

	TickCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "tick_total",
		Help:      "Counter of the number of the ticks.",
	})

	TickFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "tick_failure_total",
		Help:      "Counter of the number of failed of the ticks.",
	})

	WriteFrameFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "write_frame_failure_total",
		Help:      "Counter of the number of failed of the frames written to the sinks.",
	})

	PredictedStateCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "predicted_state_total",
		Help:      "Counter of the number of the frames by most probable state.",
	}, []string{"state"})

	ProbabilityGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "probability",
		Help:      "Gauge of the probability of every state in the last frame.",
	}, []string{"state"})

	PressureGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "pressure",
		Help:      "Gauge of the pressures of the last frame.",
	}, []string{"sensor"})

	BufferedFrameGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "buffered_frames",
		Help:      "Gauge of the number of the frames queued or being written by the buffered sink.",
	})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.SimulatorMetricsName,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

const (
	// SensorPressure1 labels the first pressure sensor.
	SensorPressure1 = "pressure_1"

	// SensorPressure2 labels the second pressure sensor.
	SensorPressure2 = "pressure_2"
)

func New(cfg *config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion, version.Gotags, version.Gogcflags).Set(1)
	return &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
}
