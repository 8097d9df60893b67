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
	"time"

	"github.com/valvesense/valvesense/cmd/dependency/base"
	pkgmath "github.com/valvesense/valvesense/pkg/math"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Source configuration.
	Source SourceConfig `yaml:"source" mapstructure:"source"`

	// Stream configuration.
	Stream StreamConfig `yaml:"stream" mapstructure:"stream"`

	// Render configuration.
	Render RenderConfig `yaml:"render" mapstructure:"render"`

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

type ModelConfig struct {
	// Path is the model artifact written by the trainer.
	Path string `yaml:"path" mapstructure:"path"`
}

type SourceConfig struct {
	// PressureMin is the lower bound of the drawn pressures.
	PressureMin float64 `yaml:"pressureMin" mapstructure:"pressureMin"`

	// PressureMax is the upper bound of the drawn pressures.
	PressureMax float64 `yaml:"pressureMax" mapstructure:"pressureMax"`

	// Seed seeds the drawn samples, 0 seeds from the clock.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

type StreamConfig struct {
	// Count is the number of frames before the simulation is done, 0 streams forever.
	Count uint64 `yaml:"count" mapstructure:"count"`

	// Interval is the cadence of the ticks, 0 ticks back to back.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// BufferSize is the capacity of the frame buffer, 0 writes to the sinks synchronously.
	BufferSize int `yaml:"bufferSize" mapstructure:"bufferSize"`
}

type RenderConfig struct {
	// Chart renders an html page of the stream.
	Chart ChartConfig `yaml:"chart" mapstructure:"chart"`

	// CSV appends frames to a csv file.
	CSV CSVConfig `yaml:"csv" mapstructure:"csv"`

	// Log writes frames to the frame logger.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type ChartConfig struct {
	// Enable chart rendering.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Path is the html file of the chart page.
	Path string `yaml:"path" mapstructure:"path"`

	// Window is the number of frames drawn in the time series.
	Window int `yaml:"window" mapstructure:"window"`

	// Refresh is the number of frames between renders.
	Refresh int `yaml:"refresh" mapstructure:"refresh"`
}

type CSVConfig struct {
	// Enable csv frame log.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Path is the csv file of the frames.
	Path string `yaml:"path" mapstructure:"path"`
}

type LogConfig struct {
	// Enable frame logging.
	Enable bool `yaml:"enable" mapstructure:"enable"`
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
		Source: SourceConfig{
			PressureMin: DefaultSourcePressureMin,
			PressureMax: DefaultSourcePressureMax,
		},
		Stream: StreamConfig{
			Count:      DefaultStreamCount,
			Interval:   DefaultStreamInterval,
			BufferSize: DefaultStreamBufferSize,
		},
		Render: RenderConfig{
			Chart: ChartConfig{
				Enable:  true,
				Window:  DefaultRenderChartWindow,
				Refresh: DefaultRenderChartRefresh,
			},
			Log: LogConfig{
				Enable: true,
			},
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Model.Path == "" {
		return errors.New("model requires parameter path")
	}

	if !pkgmath.IsFinite(cfg.Source.PressureMin, cfg.Source.PressureMax) || cfg.Source.PressureMin <= 0 {
		return errors.New("source requires parameter pressureMin greater than 0")
	}

	if cfg.Source.PressureMax <= cfg.Source.PressureMin {
		return errors.New("source requires parameter pressureMax greater than pressureMin")
	}

	if cfg.Stream.Interval < 0 {
		return errors.New("stream requires parameter interval")
	}

	if cfg.Stream.BufferSize < 0 {
		return errors.New("stream requires parameter bufferSize")
	}

	if cfg.Render.Chart.Enable {
		if cfg.Render.Chart.Path == "" {
			return errors.New("chart requires parameter path")
		}

		if cfg.Render.Chart.Window <= 0 {
			return errors.New("chart requires parameter window")
		}

		if cfg.Render.Chart.Refresh <= 0 {
			return errors.New("chart requires parameter refresh")
		}
	}

	if cfg.Render.CSV.Enable && cfg.Render.CSV.Path == "" {
		return errors.New("csv requires parameter path")
	}

	if cfg.Metrics.Enable && cfg.Metrics.Addr == "" {
		return errors.New("metrics requires parameter addr")
	}

	return nil
}

// Convert fills the paths derived from the data and output directories.
func (cfg *Config) Convert(dataDir, outputDir string) error {
	if cfg.Model.Path == "" {
		cfg.Model.Path = filepath.Join(dataDir, "models", DefaultModelFilename)
	}

	if cfg.Render.Chart.Path == "" {
		cfg.Render.Chart.Path = filepath.Join(outputDir, DefaultRenderChartFilename)
	}

	if cfg.Render.CSV.Path == "" {
		cfg.Render.CSV.Path = filepath.Join(outputDir, DefaultRenderCSVFilename)
	}

	return nil
}
