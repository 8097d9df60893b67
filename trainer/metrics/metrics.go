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
	"github.com/valvesense/valvesense/trainer/config"
	"github.com/valvesense/valvesense/version"
)

// Variables declared for metrics.
var (
	TrainingCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "training_total",
		Help:      "Counter of the number of the training.",
	})

	TrainingFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "training_failure_total",
		Help:      "Counter of the number of failed of the training.",
	})

	EpochCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "epoch_total",
		Help:      "Counter of the number of the finished epochs.",
	})

	EpochLossGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "epoch_loss",
		Help:      "Gauge of the cross entropy loss of the last epoch.",
	}, []string{"partition"})

	EpochAccuracyGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "epoch_accuracy",
		Help:      "Gauge of the accuracy of the last epoch.",
	}, []string{"partition"})

	EvaluateCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "evaluate_total",
		Help:      "Counter of the number of the evaluating.",
	})

	EvaluateFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "evaluate_failure_total",
		Help:      "Counter of the number of failed of the evaluating.",
	})

	CreateModelCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "create_model_total",
		Help:      "Counter of the number of the written model artifacts.",
	})

	CreateModelFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "create_model_failure_total",
		Help:      "Counter of the number of failed of the written model artifacts.",
	})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: types.MetricsNamespace,
		Subsystem: types.TrainerMetricsName,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version", "go_tags", "go_gcflags"})
)

const (
	// PartitionTrain labels metrics of the training partition.
	PartitionTrain = "train"

	// PartitionValidation labels metrics of the validation partition.
	PartitionValidation = "validation"
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
