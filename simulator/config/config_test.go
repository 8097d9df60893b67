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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/valvesense/valvesense/cmd/dependency/base"
)

var (
	mockModelConfig = ModelConfig{
		Path: "foo.json",
	}

	mockChartConfig = ChartConfig{
		Enable:  true,
		Path:    "foo.html",
		Window:  DefaultRenderChartWindow,
		Refresh: DefaultRenderChartRefresh,
	}
)

func TestConfig_Load(t *testing.T) {
	config := &Config{
		Options: base.Options{
			Console:   true,
			Verbose:   true,
			PProfPort: 9999,
		},
		Server: ServerConfig{
			WorkHome:      "foo",
			LogDir:        "foo",
			LogMaxSize:    512,
			LogMaxAge:     5,
			LogMaxBackups: 3,
			DataDir:       "foo",
		},
		Model: ModelConfig{
			Path: "bar.json",
		},
		Source: SourceConfig{
			PressureMin: 10,
			PressureMax: 90,
			Seed:        42,
		},
		Stream: StreamConfig{
			Count:      500,
			Interval:   200 * time.Millisecond,
			BufferSize: 16,
		},
		Render: RenderConfig{
			Chart: ChartConfig{
				Enable:  true,
				Path:    "foo.html",
				Window:  100,
				Refresh: 5,
			},
			CSV: CSVConfig{
				Enable: true,
				Path:   "foo.csv",
			},
			Log: LogConfig{
				Enable: false,
			},
		},
		Metrics: MetricsConfig{
			Enable: true,
			Addr:   ":8001",
		},
	}

	simulatorConfigYAML := &Config{}
	contentYAML, _ := os.ReadFile("./testdata/simulator.yaml")
	if err := yaml.Unmarshal(contentYAML, &simulatorConfigYAML); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.EqualValues(config, simulatorConfigYAML)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		mock   func(cfg *Config)
		expect func(t *testing.T, err error)
	}{
		{
			name:   "valid config",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "model requires parameter path",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Render.Chart = mockChartConfig
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter path")
			},
		},
		{
			name:   "source requires parameter pressureMin greater than 0",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Source.PressureMin = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "source requires parameter pressureMin greater than 0")
			},
		},
		{
			name:   "source requires parameter pressureMax greater than pressureMin",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Source.PressureMax = cfg.Source.PressureMin
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "source requires parameter pressureMax greater than pressureMin")
			},
		},
		{
			name:   "stream requires parameter interval",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Stream.Interval = -time.Second
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "stream requires parameter interval")
			},
		},
		{
			name:   "stream requires parameter bufferSize",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Stream.BufferSize = -1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "stream requires parameter bufferSize")
			},
		},
		{
			name:   "chart requires parameter path",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "chart requires parameter path")
			},
		},
		{
			name:   "chart requires parameter window",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Render.Chart.Window = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "chart requires parameter window")
			},
		},
		{
			name:   "chart requires parameter refresh",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Render.Chart.Refresh = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "chart requires parameter refresh")
			},
		},
		{
			name:   "disabled chart skips validation",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart.Enable = false
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "csv requires parameter path",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Render.CSV.Enable = true
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "csv requires parameter path")
			},
		},
		{
			name:   "metrics requires parameter addr",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model = mockModelConfig
				cfg.Render.Chart = mockChartConfig
				cfg.Metrics.Enable = true
				cfg.Metrics.Addr = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "metrics requires parameter addr")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mock(tc.config)
			tc.expect(t, tc.config.Validate())
		})
	}
}

func TestConfig_Convert(t *testing.T) {
	assert := assert.New(t)
	cfg := New()
	assert.NoError(cfg.Convert("data", "output"))
	assert.Equal(filepath.Join("data", "models", DefaultModelFilename), cfg.Model.Path)
	assert.Equal(filepath.Join("output", DefaultRenderChartFilename), cfg.Render.Chart.Path)
	assert.Equal(filepath.Join("output", DefaultRenderCSVFilename), cfg.Render.CSV.Path)
	assert.NoError(cfg.Validate())

	cfg = New()
	cfg.Model.Path = "foo.json"
	assert.NoError(cfg.Convert("data", "output"))
	assert.Equal("foo.json", cfg.Model.Path)
}
