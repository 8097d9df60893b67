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
	"context"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/config"
	"github.com/valvesense/valvesense/trainer/preprocess"
	"github.com/valvesense/valvesense/trainer/storage"
)

// EpochHook is called after every epoch with its record.
type EpochHook func(storage.Epoch)

// TrainerOption is a functional option for configuring the trainer.
type TrainerOption func(t *Trainer)

// WithBatchSize sets the mini-batch size.
func WithBatchSize(batchSize int) TrainerOption {
	return func(t *Trainer) {
		t.batchSize = batchSize
	}
}

// WithOptimizer sets the optimizer.
func WithOptimizer(optimizer Optimizer) TrainerOption {
	return func(t *Trainer) {
		t.optimizer = optimizer
	}
}

// WithRand sets the source of the per epoch shuffle.
func WithRand(r *rand.Rand) TrainerOption {
	return func(t *Trainer) {
		t.rand = r
	}
}

// WithEpochHook appends a hook called after every epoch.
func WithEpochHook(hook EpochHook) TrainerOption {
	return func(t *Trainer) {
		t.hooks = append(t.hooks, hook)
	}
}

// Trainer fits a classifier with mini-batch gradient descent.
type Trainer struct {
	batchSize int
	optimizer Optimizer
	rand      *rand.Rand
	hooks     []EpochHook
}

// NewTrainer returns a trainer with batch size 10 and default rmsprop.
func NewTrainer(options ...TrainerOption) *Trainer {
	t := &Trainer{
		batchSize: config.DefaultTrainingBatchSize,
		optimizer: NewRMSProp(config.DefaultTrainingLearningRate, config.DefaultTrainingRho, 0),
		rand:      newRand(0),
	}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// Fit runs exactly epochs passes over the training set, reshuffled every epoch,
// and validates on the test set after each one without updating parameters.
// On cancellation it stops between batches and returns the finished epochs.
func (t *Trainer) Fit(ctx context.Context, c *classifier.Classifier, xTrain, yTrain, xTest, yTest mat.Matrix, epochs int) ([]storage.Epoch, error) {
	if epochs <= 0 {
		return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "epochs %d is not positive", epochs)
	}

	if t.batchSize <= 0 {
		return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "batch size %d is not positive", t.batchSize)
	}

	if err := checkShape(c, xTrain, yTrain, "train"); err != nil {
		return nil, err
	}

	if err := checkShape(c, xTest, yTest, "test"); err != nil {
		return nil, err
	}

	n, _ := xTrain.Dims()
	history := make([]storage.Epoch, 0, epochs)
	for epoch := 1; epoch <= epochs; epoch++ {
		var (
			loss    float64
			correct int
			perm    = t.rand.Perm(n)
		)

		for start := 0; start < n; start += t.batchSize {
			if err := ctx.Err(); err != nil {
				return history, err
			}

			end := start + t.batchSize
			if end > n {
				end = n
			}

			xBatch := preprocess.SelectRows(xTrain, perm[start:end])
			yBatch := preprocess.SelectRows(yTrain, perm[start:end])
			p, err := c.Forward(xBatch, true)
			if err != nil {
				return history, err
			}

			loss += CrossEntropy(p, yBatch) * float64(end-start)
			correct += Correct(p, yBatch)

			if err := c.Backward(outputGradient(p, yBatch)); err != nil {
				return history, err
			}

			t.optimizer.Step(c.Params())
		}

		p, err := c.Forward(xTest, false)
		if err != nil {
			return history, err
		}

		record := storage.Epoch{
			Epoch:       epoch,
			Loss:        loss / float64(n),
			Accuracy:    float64(correct) / float64(n),
			ValLoss:     CrossEntropy(p, yTest),
			ValAccuracy: Accuracy(p, yTest),
		}
		history = append(history, record)

		for _, hook := range t.hooks {
			hook(record)
		}
	}

	return history, nil
}

func checkShape(c *classifier.Classifier, x, y mat.Matrix, partition string) error {
	xRows, xCols := x.Dims()
	yRows, yCols := y.Dims()

	if xRows != yRows {
		return vserrors.Newf(vserrors.CodeShapeError, "%s features have %d rows, labels have %d", partition, xRows, yRows)
	}

	if xRows == 0 {
		return vserrors.Newf(vserrors.CodeShapeError, "%s partition is empty", partition)
	}

	if xCols != c.Inputs() {
		return vserrors.Newf(vserrors.CodeShapeError, "%s features have %d columns, want %d", partition, xCols, c.Inputs())
	}

	if yCols != c.Outputs() {
		return vserrors.Newf(vserrors.CodeShapeError, "%s labels have %d columns, classifier has %d outputs", partition, yCols, c.Outputs())
	}

	return nil
}
