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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
	"github.com/gofrs/flock"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/pkg/slices"
	"github.com/valvesense/valvesense/trainer/dataset"
)

const (
	// LockFileExt is extension of the model lock file.
	LockFileExt = ".lock"

	// modelFilePattern is pattern of the temporary model file.
	modelFilePattern = ".model-*.json"
)

// ModelStorage is the interface used for the model artifact.
type ModelStorage interface {
	// CreateModel writes the model artifact, replacing any previous one.
	CreateModel(*Model) error

	// GetModel reads the model artifact.
	GetModel() (*Model, error)

	// ClearModel removes the model artifact.
	ClearModel() error
}

// Storage is the interface used for storage.
type Storage interface {
	ModelStorage

	// ListSample returns the samples of the dataset file.
	ListSample() ([]dataset.Sample, error)
}

type storage struct {
	datasetPath string
	modelPath   string
}

// New returns a new Storage instance.
func New(datasetPath, modelPath string) Storage {
	return &storage{
		datasetPath: datasetPath,
		modelPath:   modelPath,
	}
}

// NewModel returns a new ModelStorage instance for the artifact at modelPath.
func NewModel(modelPath string) ModelStorage {
	return &storage{
		modelPath: modelPath,
	}
}

// ListSample returns the samples of the dataset file. The header must name every
// sample column and both state columns must be 0 or 1.
func (s *storage) ListSample() ([]dataset.Sample, error) {
	data, err := os.ReadFile(s.datasetPath)
	if err != nil {
		return nil, err
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, vserrors.Newf(vserrors.CodeSchemaError, "dataset %s has no header", s.datasetPath)
		}

		return nil, vserrors.Newf(vserrors.CodeSchemaError, "read header of %s: %v", s.datasetPath, err)
	}

	if column, ok := slices.FindDuplicate(header); ok {
		return nil, vserrors.Newf(vserrors.CodeSchemaError, "dataset %s has duplicate column %s", s.datasetPath, column)
	}

	for _, column := range dataset.SampleColumns {
		if !slices.Contains(header, column) {
			return nil, vserrors.Newf(vserrors.CodeSchemaError, "dataset %s has no column %s", s.datasetPath, column)
		}
	}

	var samples []dataset.Sample
	if err := gocsv.UnmarshalBytes(data, &samples); err != nil {
		return nil, vserrors.Newf(vserrors.CodeSchemaError, "parse dataset %s: %v", s.datasetPath, err)
	}

	for i, sample := range samples {
		if err := validateSample(sample); err != nil {
			return nil, vserrors.Newf(vserrors.CodeSchemaError, "row %d of %s: %v", i+1, s.datasetPath, err)
		}
	}

	return samples, nil
}

func validateSample(s dataset.Sample) error {
	for _, p := range []float64{s.Pressure1, s.Pressure2} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("pressure %v is not finite", p)
		}
	}

	for _, state := range []int{s.InputState, s.FeedbackState} {
		if state != 0 && state != 1 {
			return fmt.Errorf("state %d is not 0 or 1", state)
		}
	}

	if s.Label == "" {
		return errors.New("label is empty")
	}

	return nil
}

// CreateModel writes the model to a temporary file and renames it over the
// artifact while holding the model lock.
func (s *storage) CreateModel(model *Model) error {
	if model == nil || model.Classifier == nil {
		return vserrors.New(vserrors.CodeModelNotLoaded, "model has no classifier")
	}

	if err := validator.New().Struct(model); err != nil {
		return vserrors.Newf(vserrors.CodeSchemaError, "invalid model: %v", err)
	}

	dir := filepath.Dir(s.modelPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	lock := flock.New(s.modelPath + LockFileExt)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	file, err := os.CreateTemp(dir, modelFilePattern)
	if err != nil {
		return err
	}
	defer os.Remove(file.Name())

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(model); err != nil {
		file.Close()
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(file.Name(), s.modelPath)
}

// GetModel reads the model artifact under the shared model lock.
func (s *storage) GetModel() (*Model, error) {
	if _, err := os.Stat(s.modelPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, vserrors.Newf(vserrors.CodeModelNotLoaded, "model %s does not exist", s.modelPath)
		}

		return nil, err
	}

	lock := flock.New(s.modelPath + LockFileExt)
	if err := lock.RLock(); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(s.modelPath)
	if err != nil {
		return nil, err
	}

	model := &Model{}
	if err := json.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", s.modelPath, err)
	}

	if model.Classifier == nil {
		return nil, vserrors.Newf(vserrors.CodeModelNotLoaded, "model %s has no classifier", s.modelPath)
	}

	if err := validator.New().Struct(model); err != nil {
		return nil, vserrors.Newf(vserrors.CodeSchemaError, "invalid model %s: %v", s.modelPath, err)
	}

	return model, nil
}

// ClearModel removes the model artifact and its lock file.
func (s *storage) ClearModel() error {
	if err := os.Remove(s.modelPath); err != nil {
		return err
	}

	if err := os.Remove(s.modelPath + LockFileExt); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}
