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

package retry

import (
	"context"
	"time"

	"github.com/mobileprice/pricer/pkg/math"
)

// Run calls f until it succeeds, asks to cancel or maxAttempts is reached,
// sleeping a jittered exponential backoff between attempts.
func Run[T any](ctx context.Context,
	initBackoff float64,
	maxBackoff float64,
	maxAttempts int,
	f func() (data T, cancel bool, err error)) (T, bool, error) {
	var (
		res    T
		cancel bool
		cause  error
	)
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			timer := time.NewTimer(math.RandBackoffSeconds(initBackoff, maxBackoff, 2.0, i))
			select {
			case <-ctx.Done():
				timer.Stop()
				return res, cancel, ctx.Err()
			case <-timer.C:
			}
		}

		res, cancel, cause = f()
		if cause == nil || cancel {
			break
		}
	}

	return res, cancel, cause
}
