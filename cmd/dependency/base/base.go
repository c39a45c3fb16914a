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

package base

// Options are the options shared by every binary.
type Options struct {
	// Console prints logs to stdout instead of log files.
	Console bool `yaml:"console" mapstructure:"console"`

	// Verbose enables debug logging and the profiling servers.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// PProfPort is the pprof listen port, -1 picks a free port.
	PProfPort int `yaml:"pprof-port" mapstructure:"pprof-port"`

	// Telemetry options.
	Telemetry TelemetryOption `yaml:"telemetry" mapstructure:"telemetry"`
}

type TelemetryOption struct {
	// Jaeger is the jaeger collector endpoint, tracing is off when it is empty.
	Jaeger string `yaml:"jaeger" mapstructure:"jaeger"`
}
