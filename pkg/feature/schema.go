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
	"sort"
	"strings"
)

// Numeric and binary column names, in schema order.
const (
	ColumnRating          = "rating"
	ColumnRAM             = "ram"
	ColumnDisplay         = "display"
	ColumnCameraMP        = "camera_mp"
	ColumnBatteryCapacity = "battery_capacity"
	ColumnCard            = "card"
	ColumnSIM             = "sim"

	// ProcessorColumnPrefix prefixes every one-hot processor column.
	ProcessorColumnPrefix = "processor_type_"
)

var numericColumns = []string{
	ColumnRating,
	ColumnRAM,
	ColumnDisplay,
	ColumnCameraMP,
	ColumnBatteryCapacity,
	ColumnCard,
	ColumnSIM,
}

// Vector is the cleaned feature set of one phone.
type Vector struct {
	Rating          float64       `csv:"rating"`
	RAM             float64       `csv:"ram"`
	Display         float64       `csv:"display"`
	CameraMP        float64       `csv:"camera_mp"`
	BatteryCapacity float64       `csv:"battery_capacity"`
	Card            int           `csv:"card"`
	SIM             int           `csv:"sim"`
	ProcessorType   ProcessorType `csv:"processor_type"`
}

// ColumnSchema is the ordered list of model input columns shared by training
// and inference.
type ColumnSchema []string

// ProcessorColumn returns the one-hot column name of a processor value.
func ProcessorColumn(processorType string) string {
	return ProcessorColumnPrefix + processorType
}

// NewColumnSchema builds the schema for the given training vectors. Processor
// levels present in vectors are sorted and the first one is dropped as the
// reference category.
func NewColumnSchema(vectors []Vector) ColumnSchema {
	seen := make(map[ProcessorType]struct{})
	for _, v := range vectors {
		seen[v.ProcessorType] = struct{}{}
	}

	levels := make([]string, 0, len(seen))
	for p := range seen {
		levels = append(levels, string(p))
	}
	sort.Strings(levels)

	schema := make(ColumnSchema, 0, len(numericColumns)+len(levels))
	schema = append(schema, numericColumns...)
	if len(levels) > 1 {
		for _, level := range levels[1:] {
			schema = append(schema, ProcessorColumn(level))
		}
	}

	return schema
}

// Index returns the position of the column in the schema.
func (s ColumnSchema) Index(column string) (int, bool) {
	for i, c := range s {
		if c == column {
			return i, true
		}
	}

	return -1, false
}

// ProcessorColumns returns the one-hot processor columns of the schema.
func (s ColumnSchema) ProcessorColumns() []string {
	var columns []string
	for _, c := range s {
		if strings.HasPrefix(c, ProcessorColumnPrefix) {
			columns = append(columns, c)
		}
	}

	return columns
}

// Equal reports whether both schemas hold the same columns in the same order.
func (s ColumnSchema) Equal(other []string) bool {
	if len(s) != len(other) {
		return false
	}

	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

// Row returns a zero row aligned to the schema.
func (s ColumnSchema) Row() Row {
	return Row{schema: s, values: make([]float64, len(s))}
}

// Encode aligns a vector to the schema. A processor type without a column
// leaves every processor column at zero.
func (s ColumnSchema) Encode(v Vector) []float64 {
	row := s.Row()
	row.Set(ColumnRating, v.Rating)
	row.Set(ColumnRAM, v.RAM)
	row.Set(ColumnDisplay, v.Display)
	row.Set(ColumnCameraMP, v.CameraMP)
	row.Set(ColumnBatteryCapacity, v.BatteryCapacity)
	row.Set(ColumnCard, float64(v.Card))
	row.Set(ColumnSIM, float64(v.SIM))
	row.SetProcessor(string(v.ProcessorType))
	return row.Values()
}

// Row is a feature row under construction, every column starts at zero.
type Row struct {
	schema ColumnSchema
	values []float64
}

// Set writes value into column, it returns false when the schema has no such column.
func (r Row) Set(column string, value float64) bool {
	i, ok := r.schema.Index(column)
	if !ok {
		return false
	}

	r.values[i] = value
	return true
}

// SetProcessor turns on the one-hot column of the processor value. The value
// is trimmed and lowercased first.
func (r Row) SetProcessor(processorType string) bool {
	return r.Set(ProcessorColumn(strings.ToLower(strings.TrimSpace(processorType))), 1)
}

// Values returns the row values in schema order.
func (r Row) Values() []float64 {
	return r.values
}
