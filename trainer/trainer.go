/*
 *     Copyright 2026 The Pricer Authors
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
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/mobileprice/pricer/internal/artifact"
	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/workpath"
	"github.com/mobileprice/pricer/trainer/config"
	"github.com/mobileprice/pricer/trainer/dataset"
	"github.com/mobileprice/pricer/trainer/metrics"
	"github.com/mobileprice/pricer/trainer/training"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Work paths.
	workpath workpath.Workpath

	// Lock held while a run writes artifacts.
	lock *flock.Flock

	// Training interface.
	training training.Training

	// Cancels the running training.
	ctx    context.Context
	cancel context.CancelFunc
}

// Option is a functional option for configuring the server.
type Option func(s *Server)

// WithTraining sets the training implementation.
func WithTraining(t training.Training) Option {
	return func(s *Server) {
		s.training = t
	}
}

func New(ctx context.Context, cfg *config.Config, d workpath.Workpath, options ...Option) (*Server, error) {
	s := &Server{
		config:   cfg,
		workpath: d,
		lock:     flock.New(d.TrainerLockPath()),
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	// Initialize training.
	s.training = training.New(cfg, d.DataDir(), dataset.New(&cfg.Dataset), artifact.New(d.DataDir()))

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// Serve runs one training and returns when it has finished.
func (s *Server) Serve() error {
	if ok, err := s.lock.TryLock(); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("lock file %s failed, other trainer is already running", s.workpath.TrainerLockPath())
	}
	defer s.lock.Unlock()

	result, err := s.training.Train(s.ctx)

	// Metrics are written for failed runs as well.
	if s.config.Metrics.Enable {
		path := s.metricsTextfilePath()
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Errorf("write metrics textfile %s failed: %s", path, err.Error())
		} else {
			logger.Infof("wrote metrics textfile %s", path)
		}
	}

	if err != nil {
		return err
	}

	logger.Infof("training finished, kept %d of %d rows, r2 %.4f, price mae %.2f, model %s",
		result.Kept, result.Loaded, result.Evaluation.R2, result.Evaluation.PriceMAE, result.ModelDigest)
	return nil
}

// Stop cancels a running training.
func (s *Server) Stop() {
	s.cancel()
	logger.Info("trainer stopped")
}

func (s *Server) metricsTextfilePath() string {
	if s.config.Metrics.TextfilePath != "" {
		return s.config.Metrics.TextfilePath
	}

	return filepath.Join(s.workpath.DataDir(), config.DefaultMetricsTextfileName)
}
