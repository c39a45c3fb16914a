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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mobileprice/pricer/predictor/service"
	"github.com/mobileprice/pricer/predictor/types"
)

const (
	// RootStatus is reported by the root route while the server runs.
	RootStatus = "Server is running!"

	// APIDocsPath is the swagger ui entry.
	APIDocsPath = "/docs/index.html"
)

// @Summary Get Root
// @Description Report that the server is running
// @Tags Root
// @Produce json
// @Success 200 {object} types.RootResponse
// @Router / [get]
func (h *Handlers) GetRoot(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.RootResponse{
		Status:  RootStatus,
		APIDocs: APIDocsPath,
	})
}

// @Summary Get Health
// @Description Get app health
// @Tags Health
// @Produce json
// @Success 200
// @Router /healthy [get]
func (h *Handlers) GetHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, "OK")
}

// @Summary Get Ready
// @Description Get whether the model is loaded
// @Tags Health
// @Produce json
// @Success 200
// @Failure 503 {object} middlewares.ErrorResponse
// @Router /ready [get]
func (h *Handlers) GetReady(ctx *gin.Context) {
	if !h.service.Ready() {
		ctx.Error(service.ErrModelUnavailable) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, "OK")
}
