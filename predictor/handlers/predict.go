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

	"github.com/mobileprice/pricer/predictor/types"
)

// @Summary Predict Price
// @Description Estimate the price of a phone from its features
// @Tags Predict
// @Accept json
// @Produce json
// @Param Phone body types.PredictRequest true "Phone"
// @Success 200 {object} types.PredictResponse
// @Failure 422 {object} middlewares.ErrorResponse
// @Failure 500 {object} middlewares.ErrorResponse
// @Failure 503 {object} middlewares.ErrorResponse
// @Router /predict [post]
func (h *Handlers) Predict(ctx *gin.Context) {
	var json types.PredictRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.Error(err).SetType(gin.ErrorTypeBind) // nolint: errcheck
		return
	}

	price, err := h.service.Predict(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err) // nolint: errcheck
		return
	}

	ctx.JSON(http.StatusOK, types.PredictResponse{
		EstimatedPrice: price,
	})
}
