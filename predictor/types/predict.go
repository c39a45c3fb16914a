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

// PredictRequest is the raw feature set of one phone. Every field must be
// present, values are not range checked.
type PredictRequest struct {
	Rating          *float64 `json:"rating" binding:"required" example:"4.5"`
	RAM             *float64 `json:"ram" binding:"required" example:"8"`
	Display         *float64 `json:"display" binding:"required" example:"6.7"`
	CameraMP        *float64 `json:"camera_mp" binding:"required" example:"50"`
	BatteryCapacity *float64 `json:"battery_capacity" binding:"required" example:"5000"`
	ProcessorType   *string  `json:"processor_type" binding:"required" example:"snapdragon"`
	Card            *int     `json:"card" binding:"required" example:"1"`
	SIM             *int     `json:"sim" binding:"required" example:"1"`
}

type PredictResponse struct {
	EstimatedPrice float64 `json:"estimated_price" example:"24999.5"`
}

type RootResponse struct {
	Status  string `json:"status" example:"Server is running!"`
	APIDocs string `json:"api_docs" example:"/docs/index.html"`
}
