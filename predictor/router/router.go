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

package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	// predictor swag api
	_ "github.com/mobileprice/pricer/api/predictor"
	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/types"
	"github.com/mobileprice/pricer/predictor/config"
	"github.com/mobileprice/pricer/predictor/handlers"
	"github.com/mobileprice/pricer/predictor/middlewares"
	"github.com/mobileprice/pricer/predictor/service"
)

const (
	PrometheusSubsystemName = "pricer_predictor_http"
	OtelServiceName         = types.PredictorOtelServiceName
)

func Init(cfg *config.Config, service service.Service) *gin.Engine {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	h := handlers.New(service)

	// Prometheus metrics, exposed by the metrics server.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// URL removes query string.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		return c.Request.URL.Path
	}
	r.Use(p.HandlerFunc())

	// Opentelemetry
	if cfg.Telemetry.Jaeger != "" {
		r.Use(otelgin.Middleware(OtelServiceName))
	}

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}

	// Middleware
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Error())
	r.Use(cors.New(corsConfig))

	// Root
	r.GET("/", h.GetRoot)

	// Predict
	r.POST("/predict", h.Predict)

	// Health Check
	r.GET("/healthy", h.GetHealth)
	r.GET("/ready", h.GetReady)

	// Swagger
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
