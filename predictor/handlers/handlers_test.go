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

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-http-utils/headers"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/mobileprice/pricer/predictor/middlewares"
	"github.com/mobileprice/pricer/predictor/service"
	"github.com/mobileprice/pricer/predictor/service/mocks"
	"github.com/mobileprice/pricer/predictor/types"
)

var (
	mockPredictReqBody = `
		{
		   "rating": 4.5,
		   "ram": 8,
		   "display": 6.7,
		   "camera_mp": 50,
		   "battery_capacity": 5000,
		   "processor_type": "snapdragon",
		   "card": 1,
		   "sim": 1
		}`
	mockPredictZeroReqBody = `
		{
		   "rating": 0,
		   "ram": 0,
		   "display": 0,
		   "camera_mp": 0,
		   "battery_capacity": 0,
		   "processor_type": "",
		   "card": 0,
		   "sim": 0
		}`
	mockPredictMissingReqBody = `
		{
		   "rating": 4.5,
		   "display": 6.7,
		   "camera_mp": 50,
		   "battery_capacity": 5000,
		   "processor_type": "snapdragon",
		   "card": 1,
		   "sim": 1
		}`
	mockPredictIllTypedReqBody = `
		{
		   "rating": 4.5,
		   "ram": "eight",
		   "display": 6.7,
		   "camera_mp": 50,
		   "battery_capacity": 5000,
		   "processor_type": "snapdragon",
		   "card": 1,
		   "sim": 1
		}`
)

func mockRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Error())
	r.GET("/", h.GetRoot)
	r.GET("/healthy", h.GetHealth)
	r.GET("/ready", h.GetReady)
	r.POST("/predict", h.Predict)
	return r
}

func newJSONRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set(headers.ContentType, "application/json")
	return req
}

func TestHandlers_GetRoot(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	svc := mocks.NewMockService(ctl)
	w := httptest.NewRecorder()

	mockRouter(New(svc)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq(`{"status":"Server is running!","api_docs":"/docs/index.html"}`, w.Body.String())
}

func TestHandlers_GetHealth(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "healthy",
			req:  httptest.NewRequest(http.MethodGet, "/healthy", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Equal(`"OK"`, w.Body.String())
			},
		},
		{
			name: "ready",
			req:  httptest.NewRequest(http.MethodGet, "/ready", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Ready().Return(true).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
			},
		},
		{
			name: "not ready",
			req:  httptest.NewRequest(http.MethodGet, "/ready", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Ready().Return(false).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusServiceUnavailable, w.Code)
				assert.JSONEq(`{"message":"Service Unavailable","errors":"model unavailable"}`, w.Body.String())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()

			tc.mock(svc.EXPECT())
			mockRouter(New(svc)).ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_Predict(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			req:  newJSONRequest(mockPredictReqBody),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req types.PredictRequest) (float64, error) {
					assert.Equal(t, 8.0, *req.RAM)
					assert.Equal(t, "snapdragon", *req.ProcessorType)
					return 24999.5, nil
				}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)

				var resp types.PredictResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(24999.5, resp.EstimatedPrice)
			},
		},
		{
			name: "zero values are present",
			req:  newJSONRequest(mockPredictZeroReqBody),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Any()).Return(1000.0, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
			},
		},
		{
			name: "unprocessable entity caused by missing field",
			req:  newJSONRequest(mockPredictMissingReqBody),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)

				var resp middlewares.ErrorResponse
				assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(http.StatusText(http.StatusUnprocessableEntity), resp.Message)
				assert.Contains(resp.Error, "RAM")
			},
		},
		{
			name: "unprocessable entity caused by ill typed field",
			req:  newJSONRequest(mockPredictIllTypedReqBody),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "unprocessable entity caused by empty body",
			req:  newJSONRequest(""),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "model unavailable",
			req:  newJSONRequest(mockPredictReqBody),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Any()).Return(0.0, service.ErrModelUnavailable).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusServiceUnavailable, w.Code)
				assert.JSONEq(`{"message":"Service Unavailable","errors":"model unavailable"}`, w.Body.String())
			},
		},
		{
			name: "internal error",
			req:  newJSONRequest(mockPredictReqBody),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.Predict(gomock.Any(), gomock.Any()).Return(0.0, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusInternalServerError, w.Code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()

			tc.mock(svc.EXPECT())
			mockRouter(New(svc)).ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}
