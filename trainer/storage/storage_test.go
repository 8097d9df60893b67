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

package storage

import (
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/dataset"
	"github.com/valvesense/valvesense/trainer/preprocess"
)

func TestStorage_ListSample(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		expect func(t *testing.T, samples []dataset.Sample, err error)
	}{
		{
			name: "list samples",
			path: "./testdata/mech_state_labels.csv",
			expect: func(t *testing.T, samples []dataset.Sample, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(samples, 12)
				assert.Equal(dataset.Sample{
					Pressure1:     60.12,
					Pressure2:     24.51,
					InputState:    1,
					FeedbackState: 1,
					Label:         "Normal, Open",
				}, samples[0])
				assert.Equal("Stuck Close", samples[11].Label)
			},
		},
		{
			name: "state is not binary",
			path: "./testdata/bad_state.csv",
			expect: func(t *testing.T, samples []dataset.Sample, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "missing column",
			path: "./testdata/missing_column.csv",
			expect: func(t *testing.T, samples []dataset.Sample, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
				assert.Contains(err.Error(), dataset.FeedbackStateColumn)
			},
		},
		{
			name: "duplicate column",
			path: "./testdata/duplicate_column.csv",
			expect: func(t *testing.T, samples []dataset.Sample, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
				assert.Contains(err.Error(), "duplicate column labels")
			},
		},
		{
			name: "pressure is not a number",
			path: "./testdata/bad_pressure.csv",
			expect: func(t *testing.T, samples []dataset.Sample, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsSchemaError(err))
			},
		},
		{
			name: "file does not exist",
			path: "./testdata/foo.csv",
			expect: func(t *testing.T, samples []dataset.Sample, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, os.ErrNotExist)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			samples, err := New(tc.path, "").ListSample()
			tc.expect(t, samples, err)
		})
	}
}

func TestStorage_ListSampleEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	_, err := New(path, "").ListSample()
	assert.True(t, vserrors.IsSchemaError(err))
}

func TestStorage_Model(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	modelPath := filepath.Join(t.TempDir(), "models", "valve.json")
	s := NewModel(modelPath)

	_, err := s.GetModel()
	assert.True(vserrors.IsModelNotLoaded(err))
	assert.True(vserrors.IsModelNotLoaded(s.CreateModel(&Model{})))

	model := &Model{
		ID:        "foo",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Labels:    []string{"Normal, Close", "Normal, Open", "Reverse, Close", "Reverse, Open", "Stuck Close", "Stuck Open"},
		Normalization: []preprocess.Bounds{
			{Column: dataset.Pressure1Column, Min: 20.1, Max: 74.9},
			{Column: dataset.Pressure2Column, Min: 20.3, Max: 74.2},
		},
		History: []Epoch{
			{Epoch: 1, Loss: 1.7, Accuracy: 0.3, ValLoss: 1.6, ValAccuracy: 0.35},
		},
		Evaluation: &Evaluation{
			Loss:     1.6,
			Accuracy: 0.35,
			Classes:  []ClassReport{{Label: "Normal, Close", Precision: 0.5, Recall: 0.25, F1: 1.0 / 3, Support: 4}},
			Confusion: map[string]map[string]int{
				"Normal, Close": {"Normal, Close": 1, "Stuck Open": 3},
			},
		},
		Classifier: classifier.New(rand.New(rand.NewSource(1))),
	}
	require.NoError(s.CreateModel(model))

	got, err := s.GetModel()
	require.NoError(err)
	assert.Equal(model.ID, got.ID)
	assert.True(model.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(model.Labels, got.Labels)
	assert.Equal(model.Normalization, got.Normalization)
	assert.Equal(model.History, got.History)
	assert.Equal(model.Evaluation, got.Evaluation)

	params, gotParams := model.Classifier.Params(), got.Classifier.Params()
	require.Len(gotParams, len(params))
	for i := range params {
		assert.Equal(params[i].Value, gotParams[i].Value)
	}

	want, err := model.Classifier.Predict([]float64{0.5, 1, 0, 1})
	assert.NoError(err)
	dist, err := got.Classifier.Predict([]float64{0.5, 1, 0, 1})
	assert.NoError(err)
	assert.Equal(want, dist)

	// Only the artifact and its lock remain.
	entries, err := os.ReadDir(filepath.Dir(modelPath))
	assert.NoError(err)
	assert.Len(entries, 2)

	// A second write replaces the artifact.
	model.ID = "bar"
	require.NoError(s.CreateModel(model))
	got, err = s.GetModel()
	require.NoError(err)
	assert.Equal("bar", got.ID)

	assert.NoError(s.ClearModel())
	_, err = s.GetModel()
	assert.True(vserrors.IsModelNotLoaded(err))
	assert.ErrorIs(s.ClearModel(), os.ErrNotExist)
}

func TestStorage_GetModelWithoutClassifier(t *testing.T) {
	assert := assert.New(t)
	modelPath := filepath.Join(t.TempDir(), "valve.json")
	assert.NoError(os.WriteFile(modelPath, []byte(`{"id":"foo","classifier":null}`), 0600))

	_, err := NewModel(modelPath).GetModel()
	assert.True(vserrors.IsModelNotLoaded(err))

	assert.NoError(os.WriteFile(modelPath, []byte(`{`), 0600))
	_, err = NewModel(modelPath).GetModel()
	assert.Error(err)
	assert.False(vserrors.IsModelNotLoaded(err))
}

func TestStorage_InvalidModel(t *testing.T) {
	mockClassifier := classifier.New(rand.New(rand.NewSource(1)))
	tests := []struct {
		name  string
		model *Model
	}{
		{
			name:  "id is empty",
			model: &Model{Labels: []string{"foo"}, Classifier: mockClassifier},
		},
		{
			name:  "labels are empty",
			model: &Model{ID: "foo", Classifier: mockClassifier},
		},
		{
			name:  "labels are not unique",
			model: &Model{ID: "foo", Labels: []string{"foo", "bar", "foo"}, Classifier: mockClassifier},
		},
		{
			name:  "label is empty",
			model: &Model{ID: "foo", Labels: []string{"foo", ""}, Classifier: mockClassifier},
		},
		{
			name: "bounds are inverted",
			model: &Model{
				ID:            "foo",
				Labels:        []string{"foo"},
				Normalization: []preprocess.Bounds{{Column: dataset.Pressure1Column, Min: 75, Max: 20}},
				Classifier:    mockClassifier,
			},
		},
		{
			name: "epoch starts at zero",
			model: &Model{
				ID:         "foo",
				Labels:     []string{"foo"},
				History:    []Epoch{{Epoch: 0}},
				Classifier: mockClassifier,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			modelPath := filepath.Join(t.TempDir(), "valve.json")
			s := NewModel(modelPath)
			assert.True(vserrors.IsSchemaError(s.CreateModel(tc.model)))

			data, err := json.Marshal(tc.model)
			assert.NoError(err)
			assert.NoError(os.WriteFile(modelPath, data, 0600))
			_, err = s.GetModel()
			assert.True(vserrors.IsSchemaError(err))
		})
	}
}
