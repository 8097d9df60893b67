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
	"errors"
	"path/filepath"

	"github.com/valvesense/valvesense/cmd/dependency/base"
	"github.com/valvesense/valvesense/pkg/slices"
	"github.com/valvesense/valvesense/trainer/dataset"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Dataset configuration.
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`

	// Training configuration.
	Training TrainingConfig `yaml:"training" mapstructure:"training"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ServerConfig struct {
	// Server work directory.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type DatasetConfig struct {
	// Path is the csv file of labeled samples.
	Path string `yaml:"path" mapstructure:"path"`

	// LabelColumn is the column holding the state names.
	LabelColumn string `yaml:"labelColumn" mapstructure:"labelColumn"`

	// NormalizeColumns are the two pressure columns rescaled to [0,1].
	NormalizeColumns []string `yaml:"normalizeColumns" mapstructure:"normalizeColumns"`

	// TestFraction is the fraction of rows held out for validation, in (0,1).
	TestFraction float64 `yaml:"testFraction" mapstructure:"testFraction"`

	// Seed seeds shuffling and splitting, 0 seeds from the clock.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

type TrainingConfig struct {
	// Epochs is the number of passes over the training set.
	Epochs int `yaml:"epochs" mapstructure:"epochs"`

	// BatchSize is the mini-batch size.
	BatchSize int `yaml:"batchSize" mapstructure:"batchSize"`

	// Optimizer is rmsprop or momentum.
	Optimizer string `yaml:"optimizer" mapstructure:"optimizer"`

	// LearningRate is the step size of the optimizer.
	LearningRate float64 `yaml:"learningRate" mapstructure:"learningRate"`

	// Rho is the discounting factor of rmsprop.
	Rho float64 `yaml:"rho" mapstructure:"rho"`

	// Momentum is the momentum of both optimizers, rmsprop defaults to none.
	Momentum float64 `yaml:"momentum" mapstructure:"momentum"`

	// DropoutRate is the fraction of activations dropped while training.
	DropoutRate float64 `yaml:"dropoutRate" mapstructure:"dropoutRate"`

	// Seed seeds weight initialization and dropout, 0 seeds from the clock.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

type ModelConfig struct {
	// Path is the model artifact written after training.
	Path string `yaml:"path" mapstructure:"path"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Dataset: DatasetConfig{
			Path:             DefaultDatasetPath,
			LabelColumn:      DefaultDatasetLabelColumn,
			NormalizeColumns: append([]string(nil), DefaultDatasetNormalizeColumns...),
			TestFraction:     DefaultDatasetTestFraction,
		},
		Training: TrainingConfig{
			Epochs:       DefaultTrainingEpochs,
			BatchSize:    DefaultTrainingBatchSize,
			Optimizer:    DefaultTrainingOptimizer,
			LearningRate: DefaultTrainingLearningRate,
			Rho:          DefaultTrainingRho,
			DropoutRate:  DefaultTrainingDropoutRate,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Dataset.Path == "" {
		return errors.New("dataset requires parameter path")
	}

	if cfg.Dataset.LabelColumn == "" {
		return errors.New("dataset requires parameter labelColumn")
	}

	if !slices.Contains(dataset.SampleColumns, cfg.Dataset.LabelColumn) {
		return errors.New("dataset requires parameter labelColumn to be a sample column")
	}

	if len(cfg.Dataset.NormalizeColumns) != 2 {
		return errors.New("dataset requires two normalizeColumns")
	}

	if _, ok := slices.FindDuplicate(cfg.Dataset.NormalizeColumns); ok {
		return errors.New("dataset requires distinct normalizeColumns")
	}

	for _, column := range cfg.Dataset.NormalizeColumns {
		if column == cfg.Dataset.LabelColumn || !slices.Contains(dataset.SampleColumns, column) {
			return errors.New("dataset requires normalizeColumns to be numeric sample columns")
		}
	}

	if cfg.Dataset.TestFraction <= 0 || cfg.Dataset.TestFraction >= 1 {
		return errors.New("dataset requires parameter testFraction in (0,1)")
	}

	if cfg.Training.Epochs <= 0 {
		return errors.New("training requires parameter epochs")
	}

	if cfg.Training.BatchSize <= 0 {
		return errors.New("training requires parameter batchSize")
	}

	if !slices.Contains([]string{OptimizerRMSProp, OptimizerMomentum}, cfg.Training.Optimizer) {
		return errors.New("training requires parameter optimizer")
	}

	if cfg.Training.LearningRate <= 0 {
		return errors.New("training requires parameter learningRate")
	}

	if cfg.Training.Rho <= 0 || cfg.Training.Rho >= 1 {
		return errors.New("training requires parameter rho in (0,1)")
	}

	if cfg.Training.Momentum < 0 || cfg.Training.Momentum >= 1 {
		return errors.New("training requires parameter momentum in [0,1)")
	}

	if cfg.Training.DropoutRate < 0 || cfg.Training.DropoutRate >= 1 {
		return errors.New("training requires parameter dropoutRate in [0,1)")
	}

	if cfg.Model.Path == "" {
		return errors.New("model requires parameter path")
	}

	if cfg.Metrics.Enable {
		if cfg.Metrics.Addr == "" {
			return errors.New("metrics requires parameter addr")
		}
	}

	return nil
}

// Convert fills the parameters derived from the data directory.
func (cfg *Config) Convert(dataDir string) error {
	if cfg.Model.Path == "" {
		cfg.Model.Path = filepath.Join(dataDir, "models", DefaultModelFilename)
	}

	if cfg.Training.Optimizer == OptimizerMomentum && cfg.Training.Momentum == 0 {
		cfg.Training.Momentum = DefaultTrainingMomentum
	}

	return nil
}
