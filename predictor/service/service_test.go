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

package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobileprice/pricer/internal/artifact"
	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/models"
	"github.com/mobileprice/pricer/predictor/metrics"
	"github.com/mobileprice/pricer/predictor/types"
)

var mockColumns = feature.ColumnSchema{"rating", "ram", "display", "camera_mp", "battery_capacity", "card", "sim", "processor_type_mediatek", "processor_type_snapdragon"}

// newMockModel predicts 10000 for every phone and 20001 for snapdragon phones.
func newMockModel() *models.GradientBoostingRegressor {
	return &models.GradientBoostingRegressor{
		Fitted:            true,
		NumEstimators:     1,
		LearningRate:      1,
		MaxDepth:          1,
		MinSamplesSplit:   2,
		MinSamplesLeaf:    1,
		InitialPrediction: math.Log(10001),
		FeatureNames:      []string(mockColumns),
		ClassName:         "log_price",
		Trees: []*models.RegressionTree{
			{
				Nodes: []models.Node{
					{Feature: 8, Threshold: 0.5, Left: 1, Right: 2},
					{Leaf: true, Value: 0},
					{Leaf: true, Value: math.Log(2)},
				},
			},
		},
	}
}

func newMockRequest(processorType string) types.PredictRequest {
	rating, ram, display, camera, battery := 4.5, 8.0, 6.7, 50.0, 5000.0
	card, sim := 1, 1
	return types.PredictRequest{
		Rating:          &rating,
		RAM:             &ram,
		Display:         &display,
		CameraMP:        &camera,
		BatteryCapacity: &battery,
		ProcessorType:   &processorType,
		Card:            &card,
		SIM:             &sim,
	}
}

func TestService_New(t *testing.T) {
	tests := []struct {
		name    string
		model   func() *models.GradientBoostingRegressor
		columns feature.ColumnSchema
		expect  func(t *testing.T, svc Service, err error)
	}{
		{
			name:    "new service",
			model:   newMockModel,
			columns: mockColumns,
			expect: func(t *testing.T, svc Service, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(svc.Ready())
			},
		},
		{
			name:    "model is nil",
			model:   func() *models.GradientBoostingRegressor { return nil },
			columns: mockColumns,
			expect: func(t *testing.T, svc Service, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, models.ErrNotFitted)
				assert.Nil(svc)
			},
		},
		{
			name: "model is not fitted",
			model: func() *models.GradientBoostingRegressor {
				return models.NewGradientBoostingRegressor()
			},
			columns: mockColumns,
			expect: func(t *testing.T, svc Service, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, models.ErrNotFitted)
				assert.Nil(svc)
			},
		},
		{
			name:    "columns do not match model features",
			model:   newMockModel,
			columns: mockColumns[:8],
			expect: func(t *testing.T, svc Service, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model features do not match columns, missing [processor_type_snapdragon], unexpected []")
				assert.Nil(svc)
			},
		},
		{
			name:  "columns are reordered",
			model: newMockModel,
			columns: feature.ColumnSchema{
				"rating", "ram", "display", "camera_mp", "battery_capacity", "card", "sim", "processor_type_snapdragon", "processor_type_mediatek",
			},
			expect: func(t *testing.T, svc Service, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model features are out of column order, "+
					"features [rating ram display camera_mp battery_capacity card sim processor_type_mediatek processor_type_snapdragon], "+
					"columns [rating ram display camera_mp battery_capacity card sim processor_type_snapdragon processor_type_mediatek]")
				assert.Nil(svc)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := New(tc.model(), tc.columns)
			tc.expect(t, svc, err)
		})
	}
}

func TestService_Predict(t *testing.T) {
	tests := []struct {
		name   string
		req    types.PredictRequest
		expect func(t *testing.T, price float64, err error)
	}{
		{
			name: "reference processor",
			req:  newMockRequest("mediatek"),
			expect: func(t *testing.T, price float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.InDelta(10000, price, 0.01)
			},
		},
		{
			name: "processor column is activated",
			req:  newMockRequest("snapdragon"),
			expect: func(t *testing.T, price float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.InDelta(20001, price, 0.01)
			},
		},
		{
			name: "processor is case and whitespace insensitive",
			req:  newMockRequest("  SnapDragon "),
			expect: func(t *testing.T, price float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.InDelta(20001, price, 0.01)
			},
		},
		{
			name: "unknown processor falls back to the reference category",
			req:  newMockRequest("quantum"),
			expect: func(t *testing.T, price float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.InDelta(10000, price, 0.01)
			},
		},
		{
			name: "price is rounded to 2 decimals",
			req:  newMockRequest("snapdragon"),
			expect: func(t *testing.T, price float64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(math.Round(price*100)/100, price)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := New(newMockModel(), mockColumns)
			require.NoError(t, err)

			price, err := svc.Predict(context.Background(), tc.req)
			tc.expect(t, price, err)
		})
	}
}

func TestService_PredictUnknownProcessor(t *testing.T) {
	tests := []struct {
		name          string
		processorType string
		expect        func(t *testing.T, delta float64)
	}{
		{
			name:          "processor with a column",
			processorType: "snapdragon",
			expect: func(t *testing.T, delta float64) {
				assert.Equal(t, float64(0), delta)
			},
		},
		{
			name:          "known processor without a column",
			processorType: "apple",
			expect: func(t *testing.T, delta float64) {
				assert.Equal(t, float64(0), delta)
			},
		},
		{
			name:          "known processor is normalized",
			processorType: " Exynos ",
			expect: func(t *testing.T, delta float64) {
				assert.Equal(t, float64(0), delta)
			},
		},
		{
			name:          "unknown processor",
			processorType: "quantum",
			expect: func(t *testing.T, delta float64) {
				assert.Equal(t, float64(1), delta)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := New(newMockModel(), mockColumns)
			require.NoError(t, err)

			before := testutil.ToFloat64(metrics.UnknownProcessorCount)
			_, err = svc.Predict(context.Background(), newMockRequest(tc.processorType))
			require.NoError(t, err)
			tc.expect(t, testutil.ToFloat64(metrics.UnknownProcessorCount)-before)
		})
	}
}

func TestService_PredictCanceled(t *testing.T) {
	svc, err := New(newMockModel(), mockColumns)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Predict(ctx, newMockRequest("snapdragon"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_NewFromStore(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, s artifact.Store)
		expect func(t *testing.T, svc Service)
	}{
		{
			name: "artifacts are loaded",
			mock: func(t *testing.T, s artifact.Store) {
				require.NoError(t, s.SaveModel(newMockModel()))
				require.NoError(t, s.SaveColumns(mockColumns))
			},
			expect: func(t *testing.T, svc Service) {
				assert := assert.New(t)
				assert.True(svc.Ready())
				price, err := svc.Predict(context.Background(), newMockRequest("snapdragon"))
				assert.NoError(err)
				assert.InDelta(20001, price, 0.01)
			},
		},
		{
			name: "artifacts are missing",
			mock: func(t *testing.T, s artifact.Store) {},
			expect: func(t *testing.T, svc Service) {
				assert := assert.New(t)
				assert.False(svc.Ready())
				_, err := svc.Predict(context.Background(), newMockRequest("snapdragon"))
				assert.True(errors.Is(err, ErrModelUnavailable))
			},
		},
		{
			name: "columns are missing",
			mock: func(t *testing.T, s artifact.Store) {
				require.NoError(t, s.SaveModel(newMockModel()))
			},
			expect: func(t *testing.T, svc Service) {
				assert := assert.New(t)
				assert.False(svc.Ready())
			},
		},
		{
			name: "columns do not match model features",
			mock: func(t *testing.T, s artifact.Store) {
				require.NoError(t, s.SaveModel(newMockModel()))
				require.NoError(t, s.SaveColumns(feature.ColumnSchema{"rating", "ram"}))
			},
			expect: func(t *testing.T, svc Service) {
				assert := assert.New(t)
				assert.False(svc.Ready())
				_, err := svc.Predict(context.Background(), newMockRequest("snapdragon"))
				assert.ErrorIs(err, ErrModelUnavailable)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := artifact.New(t.TempDir())
			tc.mock(t, s)
			tc.expect(t, NewFromStore(s))
		})
	}
}
