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

package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var mockVectors = []Vector{
	{Rating: 4.5, RAM: 8, Display: 6.7, CameraMP: 50, BatteryCapacity: 5000, Card: 0, SIM: 1, ProcessorType: ProcessorSnapdragon},
	{Rating: 4.1, RAM: 4, Display: 6.5, CameraMP: 13, BatteryCapacity: 6000, Card: 1, SIM: 1, ProcessorType: ProcessorMediatek},
	{Rating: 4.7, RAM: 6, Display: 6.1, CameraMP: 48, BatteryCapacity: 3300, Card: 0, SIM: 1, ProcessorType: ProcessorApple},
	{Rating: 4.0, RAM: 3, Display: 6.5, CameraMP: 8, BatteryCapacity: 5000, Card: 1, SIM: 1, ProcessorType: ProcessorUnisoc},
	{Rating: 4.2, RAM: 8, Display: 6.4, CameraMP: 50, BatteryCapacity: 5000, Card: 0, SIM: 1, ProcessorType: ProcessorExynos},
}

func TestNewColumnSchema(t *testing.T) {
	tests := []struct {
		name    string
		vectors []Vector
		expect  ColumnSchema
	}{
		{
			name:    "drop alphabetically first processor",
			vectors: mockVectors,
			expect: ColumnSchema{
				"rating", "ram", "display", "camera_mp", "battery_capacity", "card", "sim",
				"processor_type_exynos", "processor_type_mediatek", "processor_type_snapdragon", "processor_type_unisoc",
			},
		},
		{
			name:    "reference is first present level",
			vectors: mockVectors[:2],
			expect: ColumnSchema{
				"rating", "ram", "display", "camera_mp", "battery_capacity", "card", "sim",
				"processor_type_snapdragon",
			},
		},
		{
			name:    "single level has no processor column",
			vectors: mockVectors[:1],
			expect:  ColumnSchema{"rating", "ram", "display", "camera_mp", "battery_capacity", "card", "sim"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, NewColumnSchema(tc.vectors))
		})
	}
}

func TestColumnSchema_Encode(t *testing.T) {
	assert := assert.New(t)
	schema := NewColumnSchema(mockVectors)

	assert.Equal([]float64{4.5, 8, 6.7, 50, 5000, 0, 1, 0, 0, 1, 0}, schema.Encode(mockVectors[0]))

	for _, v := range mockVectors {
		values := schema.Encode(v)
		active := 0
		for _, column := range schema.ProcessorColumns() {
			i, ok := schema.Index(column)
			assert.True(ok)
			active += int(values[i])
		}

		if v.ProcessorType == ProcessorApple {
			assert.Equal(0, active)
			continue
		}
		assert.Equal(1, active)
	}
}

func TestRow_SetProcessor(t *testing.T) {
	schema := NewColumnSchema(mockVectors)
	tests := []struct {
		name          string
		processorType string
		expect        func(t *testing.T, ok bool, values []float64)
	}{
		{
			name:          "exact value",
			processorType: "snapdragon",
			expect: func(t *testing.T, ok bool, values []float64) {
				assert := assert.New(t)
				assert.True(ok)
				assert.Equal(1.0, values[9])
			},
		},
		{
			name:          "case and whitespace are ignored",
			processorType: " SNAPDRAGON ",
			expect: func(t *testing.T, ok bool, values []float64) {
				assert := assert.New(t)
				assert.True(ok)
				assert.Equal(1.0, values[9])
			},
		},
		{
			name:          "unknown value keeps reference category",
			processorType: "tensor",
			expect: func(t *testing.T, ok bool, values []float64) {
				assert := assert.New(t)
				assert.False(ok)
				assert.Equal(make([]float64, len(schema)), values)
			},
		},
		{
			name:          "dropped reference level",
			processorType: "apple",
			expect: func(t *testing.T, ok bool, values []float64) {
				assert := assert.New(t)
				assert.False(ok)
				assert.Equal(make([]float64, len(schema)), values)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := schema.Row()
			ok := row.SetProcessor(tc.processorType)
			tc.expect(t, ok, row.Values())
		})
	}
}

func TestColumnSchema_Equal(t *testing.T) {
	assert := assert.New(t)
	schema := NewColumnSchema(mockVectors)
	assert.True(schema.Equal([]string(schema)))
	assert.False(schema.Equal(schema[:3]))
	assert.False(schema.Equal(append([]string{"price"}, schema[1:]...)))
}
