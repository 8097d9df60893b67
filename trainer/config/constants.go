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
	"github.com/valvesense/valvesense/trainer/dataset"
)

const (
	// DefaultDatasetPath is default path of the labeled dataset.
	DefaultDatasetPath = "./data/mech_state_labels.csv"

	// DefaultDatasetLabelColumn is default label column of the dataset.
	DefaultDatasetLabelColumn = dataset.LabelColumn

	// DefaultDatasetTestFraction is default fraction of rows held out for validation.
	DefaultDatasetTestFraction = 0.3
)

var (
	// DefaultDatasetNormalizeColumns is default columns rescaled by min-max normalization.
	DefaultDatasetNormalizeColumns = []string{dataset.Pressure1Column, dataset.Pressure2Column}
)

const (
	// DefaultTrainingEpochs is default number of passes over the training set.
	DefaultTrainingEpochs = 20

	// DefaultTrainingBatchSize is default mini-batch size.
	DefaultTrainingBatchSize = 10

	// DefaultTrainingOptimizer is default optimizer.
	DefaultTrainingOptimizer = OptimizerRMSProp

	// DefaultTrainingLearningRate is default learning rate of rmsprop.
	DefaultTrainingLearningRate = 0.001

	// DefaultTrainingRho is default discounting factor of rmsprop.
	DefaultTrainingRho = 0.9

	// DefaultTrainingMomentum is default momentum of the momentum optimizer.
	DefaultTrainingMomentum = 0.9

	// DefaultTrainingDropoutRate is default dropout rate of the classifier.
	DefaultTrainingDropoutRate = 0.2
)

const (
	// OptimizerRMSProp selects rmsprop.
	OptimizerRMSProp = "rmsprop"

	// OptimizerMomentum selects stochastic gradient descent with momentum.
	OptimizerMomentum = "momentum"
)

const (
	// DefaultModelFilename is default file name of the model artifact.
	DefaultModelFilename = "valve.json"
)

const (
	// DefaultMetricsAddr is default address for metrics server.
	DefaultMetricsAddr = ":8000"
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
