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

package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mobileprice/pricer/predictor/service"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"errors,omitempty"`
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil {
			return
		}

		// Request binding error handler
		var validationErrors validator.ValidationErrors
		if err.IsType(gin.ErrorTypeBind) || errors.As(err.Err, &validationErrors) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   err.Error(),
			})
			return
		}

		// Degraded service handler
		if errors.Is(err.Err, service.ErrModelUnavailable) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Message: http.StatusText(http.StatusServiceUnavailable),
				Error:   service.ErrModelUnavailable.Error(),
			})
			return
		}

		// Unknown error
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
