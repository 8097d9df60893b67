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
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"

	logger "github.com/valvesense/valvesense/internal/vslog"
	"github.com/valvesense/valvesense/pkg/vspath"
	"github.com/valvesense/valvesense/simulator/config"
	"github.com/valvesense/valvesense/simulator/metrics"
	"github.com/valvesense/valvesense/simulator/render"
	"github.com/valvesense/valvesense/simulator/stream"
	"github.com/valvesense/valvesense/trainer/storage"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Metrics server.
	metricsServer *http.Server

	// Model storage interface.
	storage storage.ModelStorage

	// Simulator of the sensor feed.
	simulator *stream.Simulator

	// Cancels the running simulation.
	cancel context.CancelFunc

	// Context of the running simulation.
	ctx context.Context
}

func New(ctx context.Context, cfg *config.Config, d vspath.Vspath) (*Server, error) {
	s := &Server{config: cfg}
	s.ctx, s.cancel = context.WithCancel(ctx)

	// Initialize model storage.
	s.storage = storage.NewModel(cfg.Model.Path)
	logger.Infof("model %s, output dir %s", cfg.Model.Path, d.OutputDir())

	// Initialize simulator.
	seed := cfg.Source.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	source, err := stream.NewUniformSource(cfg.Source.PressureMin, cfg.Source.PressureMax, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	s.simulator = stream.New(
		stream.WithSource(source),
		stream.WithCount(cfg.Stream.Count),
		stream.WithInterval(cfg.Stream.Interval),
	)

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// Serve loads the model and streams frames until the simulator is done or stopped.
func (s *Server) Serve() error {
	// Started metrics server.
	if s.metricsServer != nil {
		go func() {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil {
				if err == http.ErrServerClosed {
					return
				}

				logger.Fatalf("metrics server closed unexpect: %s", err.Error())
			}
		}()
	}

	model, err := s.storage.GetModel()
	if err != nil {
		metrics.LoadModelFailureCount.Inc()
		logger.Errorf("get model failed: %s", err.Error())
		return err
	}

	if err := s.simulator.Load(model); err != nil {
		logger.Errorf("load model failed: %s", err.Error())
		return err
	}

	sink, err := s.newSink(model.Labels)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	if err := s.simulator.Run(s.ctx, sink); err != nil && !errors.Is(err, context.Canceled) {
		errs = multierror.Append(errs, err)
	}

	if err := sink.Close(); err != nil && !errors.Is(err, context.Canceled) {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}

// newSink fans frames out to the enabled renderers, behind a buffer when configured.
func (s *Server) newSink(labels []string) (stream.Sink, error) {
	var sinks render.Multi
	if s.config.Render.Chart.Enable {
		chart, err := render.NewChart(s.config.Render.Chart.Path, labels, s.config.Render.Chart.Window, s.config.Render.Chart.Refresh)
		if err != nil {
			return nil, err
		}

		logger.Infof("render chart to %s", s.config.Render.Chart.Path)
		sinks = append(sinks, chart)
	}

	if s.config.Render.CSV.Enable {
		csv, err := render.NewCSV(s.config.Render.CSV.Path)
		if err != nil {
			return nil, multierror.Append(err, sinks.Close())
		}

		logger.Infof("render frames to %s", s.config.Render.CSV.Path)
		sinks = append(sinks, csv)
	}

	if s.config.Render.Log.Enable {
		sinks = append(sinks, render.NewLog(logger.FrameLogger))
	}

	if s.config.Stream.BufferSize > 0 {
		return stream.NewBuffered(s.ctx, sinks, s.config.Stream.BufferSize), nil
	}

	return sinks, nil
}

func (s *Server) Stop() {
	// Stop running simulation.
	s.cancel()

	// Stop metrics server.
	if s.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()

		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		} else {
			logger.Info("metrics server closed under request")
		}
	}
}
