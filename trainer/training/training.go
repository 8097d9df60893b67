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

//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

package training

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	logger "github.com/valvesense/valvesense/internal/vslog"
	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/config"
	"github.com/valvesense/valvesense/trainer/dataset"
	"github.com/valvesense/valvesense/trainer/metrics"
	"github.com/valvesense/valvesense/trainer/preprocess"
	"github.com/valvesense/valvesense/trainer/storage"
)

// Training defines the interface to train the valve state classifier.
type Training interface {
	// Train preprocesses the dataset, fits a classifier and writes the model artifact.
	Train(context.Context) (*storage.Model, error)
}

// training implements Training interface.
type training struct {
	// Trainer service config.
	config *config.Config

	// Storage interface.
	storage storage.Storage
}

// New returns a new Training.
func New(cfg *config.Config, storage storage.Storage) Training {
	return &training{
		config:  cfg,
		storage: storage,
	}
}

// Train preprocesses the dataset, fits a classifier and writes the model artifact.
func (t *training) Train(ctx context.Context) (*storage.Model, error) {
	metrics.TrainingCount.Inc()
	model, err := t.train(ctx)
	if err != nil {
		metrics.TrainingFailureCount.Inc()
		return nil, err
	}

	return model, nil
}

func (t *training) train(ctx context.Context) (*storage.Model, error) {
	id := uuid.NewString()
	log := logger.WithModel(id).With("dataset", t.config.Dataset.Path)

	samples, err := t.storage.ListSample()
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	log.Infof("load %d samples", len(samples))

	r := newRand(t.config.Dataset.Seed)
	d, err := preprocess.Shuffle(dataset.FromSamples(samples), r)
	if err != nil {
		return nil, err
	}

	columns := t.config.Dataset.NormalizeColumns
	d, bounds, err := preprocess.NormalizeMinMax(d, columns[0], columns[1])
	if err != nil {
		return nil, err
	}

	features, y, labels, err := preprocess.OneHotEncode(d, t.config.Dataset.LabelColumn)
	if err != nil {
		return nil, err
	}
	log.Infof("label vocabulary %q", labels)

	x, err := preprocess.Features(features)
	if err != nil {
		return nil, err
	}

	xTrain, xTest, yTrain, yTest, err := preprocess.Split(x, y, t.config.Dataset.TestFraction, r)
	if err != nil {
		return nil, err
	}

	trainRows, _ := xTrain.Dims()
	testRows, _ := xTest.Dims()
	log.Infof("split %d train rows and %d test rows", trainRows, testRows)

	optimizer, err := NewOptimizer(t.config.Training)
	if err != nil {
		return nil, err
	}

	modelRand := newRand(t.config.Training.Seed)
	c := classifier.New(modelRand, classifier.WithDropoutRate(t.config.Training.DropoutRate))
	options := []TrainerOption{
		WithBatchSize(t.config.Training.BatchSize),
		WithOptimizer(optimizer),
		WithRand(modelRand),
		WithEpochHook(func(e storage.Epoch) {
			metrics.EpochCount.Inc()
			metrics.EpochLossGauge.WithLabelValues(metrics.PartitionTrain).Set(e.Loss)
			metrics.EpochLossGauge.WithLabelValues(metrics.PartitionValidation).Set(e.ValLoss)
			metrics.EpochAccuracyGauge.WithLabelValues(metrics.PartitionTrain).Set(e.Accuracy)
			metrics.EpochAccuracyGauge.WithLabelValues(metrics.PartitionValidation).Set(e.ValAccuracy)

			logger.TrainLogger.Infow("epoch finished", "modelID", id, "epoch", e.Epoch,
				"loss", e.Loss, "accuracy", e.Accuracy, "valLoss", e.ValLoss, "valAccuracy", e.ValAccuracy)
		}),
	}

	if t.config.Console {
		bar := progressbar.Default(int64(t.config.Training.Epochs), "training")
		defer bar.Finish()

		options = append(options, WithEpochHook(func(storage.Epoch) {
			bar.Add(1)
		}))
	}

	history, err := NewTrainer(options...).Fit(ctx, c, xTrain, yTrain, xTest, yTest, t.config.Training.Epochs)
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	last := history[len(history)-1]
	logger.WithEpoch(id, last.Epoch).Infof("training finished, accuracy %.4f, validation accuracy %.4f", last.Accuracy, last.ValAccuracy)

	metrics.EvaluateCount.Inc()
	evaluation, err := Evaluate(c, xTest, yTest, labels)
	if err != nil {
		metrics.EvaluateFailureCount.Inc()
		return nil, fmt.Errorf("evaluate classifier: %w", err)
	}
	log.Debugf("evaluation:\n%s", Summary(evaluation))

	model := &storage.Model{
		ID:            id,
		CreatedAt:     time.Now(),
		Labels:        labels,
		Normalization: bounds,
		History:       history,
		Evaluation:    evaluation,
		Classifier:    c,
	}

	metrics.CreateModelCount.Inc()
	if err := t.storage.CreateModel(model); err != nil {
		metrics.CreateModelFailureCount.Inc()
		return nil, fmt.Errorf("create model: %w", err)
	}
	log.Infof("model written to %s", t.config.Model.Path)

	return model, nil
}

// newRand returns a source seeded by seed, or by the clock when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}
