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

package predictor

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/mobileprice/pricer/internal/artifact"
	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/workpath"
	"github.com/mobileprice/pricer/predictor/config"
	"github.com/mobileprice/pricer/predictor/metrics"
	"github.com/mobileprice/pricer/predictor/router"
	"github.com/mobileprice/pricer/predictor/service"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Workpath interface.
	workpath workpath.Workpath

	// Prediction service.
	service service.Service

	// REST server.
	restServer *http.Server

	// Metrics server.
	metricsServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, d workpath.Workpath) (*Server, error) {
	s := &Server{config: cfg, workpath: d}

	// Initialize prediction service, missing artifacts leave it degraded.
	s.service = service.NewFromStore(artifact.New(d.DataDir()))

	// Initialize REST server.
	s.restServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Listen, strconv.Itoa(cfg.Server.Port)),
		Handler: router.Init(cfg, s.service),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Initialize metrics server.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// Serve blocks until both servers are closed, the first failure stops the other one.
func (s *Server) Serve() error {
	var g errgroup.Group

	// Started metrics server.
	if s.metricsServer != nil {
		g.Go(func() error {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.Stop()
				return fmt.Errorf("metrics server closed unexpect: %w", err)
			}

			return nil
		})
	}

	// Started REST server.
	g.Go(func() error {
		logger.Infof("started rest server at %s", s.restServer.Addr)
		if err := s.restServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Stop()
			return fmt.Errorf("rest server closed unexpect: %w", err)
		}

		return nil
	})

	return g.Wait()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		}
		logger.Info("metrics server closed under request")
	}

	// Stop REST server.
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %s", err.Error())
	}
	logger.Info("rest server closed under request")
}
