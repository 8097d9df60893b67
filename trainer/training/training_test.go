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
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/trainer/config"
	"github.com/valvesense/valvesense/trainer/dataset"
	"github.com/valvesense/valvesense/trainer/storage"
	"github.com/valvesense/valvesense/trainer/storage/mocks"
)

func mockConfig() *config.Config {
	cfg := config.New()
	cfg.Dataset.Seed = 1
	cfg.Training.Seed = 2
	cfg.Training.Epochs = 2
	cfg.Model.Path = "foo.json"
	return cfg
}

func TestTraining_Train(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
		mock   func(ms *mocks.MockStorageMockRecorder)
		expect func(t *testing.T, model *storage.Model, err error)
	}{
		{
			name:   "train model",
			config: mockConfig(),
			mock: func(ms *mocks.MockStorageMockRecorder) {
				gomock.InOrder(
					ms.ListSample().Return(mockSamples(20, rand.New(rand.NewSource(1))), nil).Times(1),
					ms.CreateModel(gomock.Any()).Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, model *storage.Model, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.NotEmpty(model.ID)
				assert.Equal([]string{"Normal, Close", "Normal, Open", "Reverse, Close", "Reverse, Open", "Stuck Close", "Stuck Open"}, model.Labels)
				assert.Len(model.History, 2)
				assert.Len(model.Normalization, 2)
				assert.Equal(dataset.Pressure1Column, model.Normalization[0].Column)
				assert.NotNil(model.Evaluation)
				assert.NotNil(model.Classifier)
				assert.Equal(6, model.Classifier.Outputs())
			},
		},
		{
			name: "train model with momentum",
			config: func() *config.Config {
				cfg := mockConfig()
				cfg.Training.Optimizer = config.OptimizerMomentum
				cfg.Training.Momentum = config.DefaultTrainingMomentum
				return cfg
			}(),
			mock: func(ms *mocks.MockStorageMockRecorder) {
				gomock.InOrder(
					ms.ListSample().Return(mockSamples(10, rand.New(rand.NewSource(1))), nil).Times(1),
					ms.CreateModel(gomock.Any()).Return(nil).Times(1),
				)
			},
			expect: func(t *testing.T, model *storage.Model, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(model.History, 2)
			},
		},
		{
			name:   "list samples failed",
			config: mockConfig(),
			mock: func(ms *mocks.MockStorageMockRecorder) {
				ms.ListSample().Return(nil, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, model *storage.Model, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "list samples: foo")
			},
		},
		{
			name:   "vocabulary does not match outputs",
			config: mockConfig(),
			mock: func(ms *mocks.MockStorageMockRecorder) {
				samples := mockSamples(10, rand.New(rand.NewSource(1)))
				for i := range samples {
					samples[i].Label = mockLabels[i%3]
				}
				ms.ListSample().Return(samples, nil).Times(1)
			},
			expect: func(t *testing.T, model *storage.Model, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsShapeError(err))
			},
		},
		{
			name: "label column is missing",
			config: func() *config.Config {
				cfg := mockConfig()
				cfg.Dataset.LabelColumn = "foo"
				return cfg
			}(),
			mock: func(ms *mocks.MockStorageMockRecorder) {
				ms.ListSample().Return(mockSamples(10, rand.New(rand.NewSource(1))), nil).Times(1)
			},
			expect: func(t *testing.T, model *storage.Model, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name:   "create model failed",
			config: mockConfig(),
			mock: func(ms *mocks.MockStorageMockRecorder) {
				gomock.InOrder(
					ms.ListSample().Return(mockSamples(10, rand.New(rand.NewSource(1))), nil).Times(1),
					ms.CreateModel(gomock.Any()).Return(errors.New("bar")).Times(1),
				)
			},
			expect: func(t *testing.T, model *storage.Model, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "create model: bar")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			s := mocks.NewMockStorage(ctl)
			tc.mock(s.EXPECT())

			model, err := New(tc.config, s).Train(context.Background())
			tc.expect(t, model, err)
		})
	}
}
