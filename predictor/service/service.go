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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mobileprice/pricer/internal/artifact"
	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/digest"
	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/models"
	"github.com/mobileprice/pricer/pkg/slices"
	"github.com/mobileprice/pricer/predictor/metrics"
	"github.com/mobileprice/pricer/predictor/types"
)

var (
	// ErrModelUnavailable is returned when the service started without a usable model.
	ErrModelUnavailable = errors.New("model unavailable")
)

// Service is the interface used for price inference.
type Service interface {
	// Predict returns the estimated price of the phone.
	Predict(context.Context, types.PredictRequest) (float64, error)

	// Ready reports whether a model is loaded.
	Ready() bool
}

type service struct {
	model   *models.GradientBoostingRegressor
	columns feature.ColumnSchema
}

// New returns a Service serving the model, the model features must match columns.
func New(model *models.GradientBoostingRegressor, columns feature.ColumnSchema) (Service, error) {
	s, err := newService(model, columns)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func newService(model *models.GradientBoostingRegressor, columns feature.ColumnSchema) (*service, error) {
	if model == nil {
		return nil, models.ErrNotFitted
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	if !columns.Equal(model.FeatureNames) {
		missing, unexpected := slices.Difference(model.FeatureNames, columns)
		if len(missing) == 0 && len(unexpected) == 0 {
			return nil, fmt.Errorf("model features are out of column order, features %v, columns %v", model.FeatureNames, []string(columns))
		}

		return nil, fmt.Errorf("model features do not match columns, missing %v, unexpected %v", missing, unexpected)
	}

	metrics.ModelLoadedGauge.Set(1)
	return &service{
		model:   model,
		columns: columns,
	}, nil
}

// NewFromStore loads the artifacts from store. When they are missing or
// inconsistent the error is logged and a degraded Service is returned.
func NewFromStore(store artifact.Store) Service {
	s, err := load(store)
	if err != nil {
		logger.Errorf("predictor starts without a model: %s", err.Error())
		metrics.ModelLoadedGauge.Set(0)
		return &service{}
	}

	modelDigest, err := digest.HashFile(store.ModelPath(), digest.AlgorithmSHA256)
	if err != nil {
		logger.Warnf("hash model %s failed: %s", store.ModelPath(), err.Error())
	}

	logger.Infof("loaded model %s with digest %s, %d trees and %d columns", store.ModelPath(), modelDigest, len(s.model.Trees), len(s.columns))
	return s
}

func load(store artifact.Store) (*service, error) {
	model, err := store.LoadModel()
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	columns, err := store.LoadColumns()
	if err != nil {
		return nil, fmt.Errorf("load columns: %w", err)
	}

	return newService(model, columns)
}

// Predict returns the estimated price of the phone rounded to 2 decimals.
func (s *service) Predict(ctx context.Context, req types.PredictRequest) (float64, error) {
	metrics.PredictionCount.Inc()
	if !s.Ready() {
		metrics.PredictionFailureCount.Inc()
		return 0, ErrModelUnavailable
	}

	if err := ctx.Err(); err != nil {
		metrics.PredictionFailureCount.Inc()
		return 0, err
	}

	row := s.columns.Row()
	row.Set(feature.ColumnRating, deref(req.Rating))
	row.Set(feature.ColumnRAM, deref(req.RAM))
	row.Set(feature.ColumnDisplay, deref(req.Display))
	row.Set(feature.ColumnCameraMP, deref(req.CameraMP))
	row.Set(feature.ColumnBatteryCapacity, deref(req.BatteryCapacity))
	if req.Card != nil {
		row.Set(feature.ColumnCard, float64(*req.Card))
	}

	if req.SIM != nil {
		row.Set(feature.ColumnSIM, float64(*req.SIM))
	}

	// Known processor types without a column, the reference level among them,
	// keep every one-hot column at zero.
	if req.ProcessorType != nil && !row.SetProcessor(*req.ProcessorType) {
		processorType := feature.ProcessorType(strings.ToLower(strings.TrimSpace(*req.ProcessorType)))
		if !slices.Contains(feature.ProcessorTypes(), processorType) {
			metrics.UnknownProcessorCount.Inc()
			logger.Debugf("processor type %q is unknown, using the reference category", *req.ProcessorType)
		}
	}

	logPrice, err := s.model.PredictRow(row.Values())
	if err != nil {
		metrics.PredictionFailureCount.Inc()
		return 0, err
	}

	return math.Round(math.Expm1(logPrice)*100) / 100, nil
}

// Ready reports whether a model is loaded.
func (s *service) Ready() bool {
	return s.model != nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}

	return *v
}
