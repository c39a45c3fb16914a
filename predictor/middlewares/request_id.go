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
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mobileprice/pricer/internal/logger"
)

const (
	// RequestIDHeader carries the id of every request and response.
	RequestIDHeader = "X-Request-Id"

	// RequestIDKey is the gin context key of the request id.
	RequestIDKey = "requestID"
)

// RequestID reuses the request id sent by the client or generates a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()

		if len(c.Errors) > 0 {
			logger.WithRequestID(requestID).Errorf("%s %s failed: %s", c.Request.Method, c.Request.URL.Path, c.Errors.String())
		}
	}
}
