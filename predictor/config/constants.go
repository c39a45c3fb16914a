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

package config

import (
	"time"
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// DefaultServerListen is the default listen address of the rest server.
	DefaultServerListen = "0.0.0.0"

	// DefaultServerPort is the default port of the rest server.
	DefaultServerPort = 8000

	// DefaultServerShutdownTimeout is the default timeout of a graceful shutdown.
	DefaultServerShutdownTimeout = 10 * time.Second
)

const (
	// DefaultMetricsAddr is the default address of the metrics server.
	DefaultMetricsAddr = ":8001"
)
