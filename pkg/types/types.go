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

package types

const (
	// TrainerName is the name of the trainer binary.
	TrainerName = "trainer"

	// PredictorName is the name of the predictor binary.
	PredictorName = "predictor"
)

const (
	// MetricsNamespace is the namespace of all metrics.
	MetricsNamespace = "pricer"

	// TrainerMetricsName is the subsystem name of trainer metrics.
	TrainerMetricsName = "trainer"

	// PredictorMetricsName is the subsystem name of predictor metrics.
	PredictorMetricsName = "predictor"
)

const (
	// TrainerOtelServiceName is the trace service name of the trainer.
	TrainerOtelServiceName = "pricer-trainer"

	// PredictorOtelServiceName is the trace service name of the predictor.
	PredictorOtelServiceName = "pricer-predictor"
)

// FilterMode decides what happens to dataset rows that fail feature extraction.
type FilterMode string

const (
	// FilterModeLenient drops failed rows and keeps training.
	FilterModeLenient FilterMode = "lenient"

	// FilterModeStrict fails the run when any row is dropped.
	FilterModeStrict FilterMode = "strict"
)

// IsValid reports whether the filter mode is known.
func (m FilterMode) IsValid() bool {
	return m == FilterModeLenient || m == FilterModeStrict
}
