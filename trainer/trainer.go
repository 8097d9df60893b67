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

package trainer

import (
	"context"
	"net/http"

	logger "github.com/valvesense/valvesense/internal/vslog"
	"github.com/valvesense/valvesense/pkg/vspath"
	"github.com/valvesense/valvesense/trainer/config"
	"github.com/valvesense/valvesense/trainer/metrics"
	"github.com/valvesense/valvesense/trainer/storage"
	"github.com/valvesense/valvesense/trainer/training"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Metrics server.
	metricsServer *http.Server

	// Storage interface.
	storage storage.Storage

	// Training interface.
	training training.Training

	// Cancels the running training.
	cancel context.CancelFunc

	// Context of the running training.
	ctx context.Context
}

func New(ctx context.Context, cfg *config.Config, d vspath.Vspath) (*Server, error) {
	s := &Server{config: cfg}
	s.ctx, s.cancel = context.WithCancel(ctx)

	// Initialize storage.
	s.storage = storage.New(cfg.Dataset.Path, cfg.Model.Path)
	logger.Infof("dataset %s, model %s, data dir %s", cfg.Dataset.Path, cfg.Model.Path, d.DataDir())

	// Initialize training.
	s.training = training.New(cfg, s.storage)

	// Initialize metrics.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// Serve trains one model and returns when the artifact is written or training fails.
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

	model, err := s.training.Train(s.ctx)
	if err != nil {
		logger.Errorf("train model failed: %s", err.Error())
		return err
	}

	logger.Infof("model %s trained with %d epochs", model.ID, len(model.History))
	if model.Evaluation != nil {
		logger.Infof("model %s test loss %.4f, test accuracy %.4f", model.ID, model.Evaluation.Loss, model.Evaluation.Accuracy)
	}

	return nil
}

func (s *Server) Stop() {
	// Stop running training.
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
