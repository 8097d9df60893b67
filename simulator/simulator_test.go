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

package simulator

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/pkg/vspath"
	"github.com/valvesense/valvesense/simulator/config"
	"github.com/valvesense/valvesense/simulator/stream"
	"github.com/valvesense/valvesense/trainer/classifier"
	"github.com/valvesense/valvesense/trainer/storage"
	"github.com/valvesense/valvesense/trainer/storage/mocks"
)

var mockLabels = []string{"Normal, Close", "Normal, Open", "Reverse, Close", "Reverse, Open", "Stuck Close", "Stuck Open"}

func mockConfig(dir string) *config.Config {
	cfg := config.New()
	cfg.Source.Seed = 1
	cfg.Stream.Count = 25
	cfg.Stream.Interval = 0
	cfg.Render.Log.Enable = false
	cfg.Render.CSV.Enable = true
	_ = cfg.Convert(filepath.Join(dir, "data"), filepath.Join(dir, "output"))
	return cfg
}

func mockServer(t *testing.T, cfg *config.Config, s storage.ModelStorage) *Server {
	dir := t.TempDir()
	d, err := vspath.New(vspath.WithWorkHome(dir), vspath.WithLogDir(filepath.Join(dir, "logs")), vspath.WithDataDir(filepath.Join(dir, "data")))
	assert.NoError(t, err)

	svr, err := New(context.Background(), cfg, d)
	assert.NoError(t, err)
	svr.storage = s
	return svr
}

func TestServer_New(t *testing.T) {
	assert := assert.New(t)
	cfg := mockConfig(t.TempDir())
	cfg.Metrics.Enable = true

	svr := mockServer(t, cfg, nil)
	assert.NotNil(svr.simulator)
	assert.Equal(stream.StateWarmup, svr.simulator.FSM.Current())
	assert.Equal(config.DefaultMetricsAddr, svr.metricsServer.Addr)

	d, err := vspath.New(vspath.WithWorkHome(t.TempDir()))
	assert.NoError(err)
	cfg.Source.PressureMin = 0
	_, err = New(context.Background(), cfg, d)
	assert.True(vserrors.IsInvalidArgument(err))
}

func TestServer_Serve(t *testing.T) {
	tests := []struct {
		name   string
		config func(cfg *config.Config)
		mock   func(ms *mocks.MockModelStorageMockRecorder)
		expect func(t *testing.T, cfg *config.Config, svr *Server, err error)
	}{
		{
			name:   "stream buffered frames",
			config: func(cfg *config.Config) {},
			mock: func(ms *mocks.MockModelStorageMockRecorder) {
				ms.GetModel().Return(&storage.Model{
					ID:         "foo",
					Labels:     mockLabels,
					Classifier: classifier.New(rand.New(rand.NewSource(1))),
				}, nil).Times(1)
			},
			expect: func(t *testing.T, cfg *config.Config, svr *Server, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(stream.StateDone, svr.simulator.FSM.Current())

				file, err := os.Open(cfg.Render.CSV.Path)
				assert.NoError(err)
				defer file.Close()

				var frames []stream.Frame
				assert.NoError(gocsv.UnmarshalFile(file, &frames))
				assert.Len(frames, 25)
				for i, frame := range frames {
					assert.Equal(uint64(i), frame.Tick)
				}

				_, err = os.Stat(cfg.Render.Chart.Path)
				assert.NoError(err)
			},
		},
		{
			name: "stream unbuffered frames",
			config: func(cfg *config.Config) {
				cfg.Stream.BufferSize = 0
				cfg.Render.Chart.Enable = false
				cfg.Render.Log.Enable = true
			},
			mock: func(ms *mocks.MockModelStorageMockRecorder) {
				ms.GetModel().Return(&storage.Model{
					ID:         "foo",
					Labels:     mockLabels,
					Classifier: classifier.New(rand.New(rand.NewSource(1))),
				}, nil).Times(1)
			},
			expect: func(t *testing.T, cfg *config.Config, svr *Server, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(stream.StateDone, svr.simulator.FSM.Current())

				_, err = os.Stat(cfg.Render.Chart.Path)
				assert.True(os.IsNotExist(err))
			},
		},
		{
			name:   "model not loaded",
			config: func(cfg *config.Config) {},
			mock: func(ms *mocks.MockModelStorageMockRecorder) {
				ms.GetModel().Return(nil, vserrors.ErrModelNotLoaded).Times(1)
			},
			expect: func(t *testing.T, cfg *config.Config, svr *Server, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsModelNotLoaded(err))
				assert.Equal(stream.StateWarmup, svr.simulator.FSM.Current())
			},
		},
		{
			name:   "labels do not match outputs",
			config: func(cfg *config.Config) {},
			mock: func(ms *mocks.MockModelStorageMockRecorder) {
				ms.GetModel().Return(&storage.Model{
					ID:         "foo",
					Labels:     mockLabels[:2],
					Classifier: classifier.New(rand.New(rand.NewSource(1))),
				}, nil).Times(1)
			},
			expect: func(t *testing.T, cfg *config.Config, svr *Server, err error) {
				assert := assert.New(t)
				assert.True(vserrors.IsShapeError(err))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			ms := mocks.NewMockModelStorage(ctl)
			tc.mock(ms.EXPECT())

			cfg := mockConfig(t.TempDir())
			tc.config(cfg)
			svr := mockServer(t, cfg, ms)
			err := svr.Serve()
			svr.Stop()
			tc.expect(t, cfg, svr, err)
		})
	}
}

func TestServer_Stop(t *testing.T) {
	assert := assert.New(t)
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	ms := mocks.NewMockModelStorage(ctl)
	ms.EXPECT().GetModel().Return(&storage.Model{
		ID:         "foo",
		Labels:     mockLabels,
		Classifier: classifier.New(rand.New(rand.NewSource(1))),
	}, nil).Times(1)

	cfg := mockConfig(t.TempDir())
	cfg.Stream.Count = 0
	svr := mockServer(t, cfg, ms)

	done := make(chan error)
	go func() {
		done <- svr.Serve()
	}()

	svr.Stop()
	assert.NoError(<-done)
}
