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

package training

import (
	"errors"
	"math"
	"math/rand"

	"github.com/sjwhitworth/golearn/base"

	"github.com/mobileprice/pricer/pkg/feature"
)

const (
	// ClassAttributeName is the name of the log price target attribute.
	ClassAttributeName = "log_price"
)

// split permutes row indexes with a seeded source and holds out the first
// ceil(n * testPercent) of them for evaluation.
func split(n int, testPercent float64, seed int64) ([]int, []int, error) {
	testSize := int(math.Ceil(float64(n) * testPercent))
	if testSize < 1 || testSize >= n {
		return nil, nil, errors.New("not enough rows to split")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[testSize:], perm[:testSize], nil
}

// newInstances builds a golearn grid of the given rows with one float
// attribute per schema column and the log price as class attribute.
func newInstances(columns feature.ColumnSchema, x [][]float64, y []float64, rows []int) (*base.DenseInstances, error) {
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(columns))
	for i, column := range columns {
		specs[i] = inst.AddAttribute(base.NewFloatAttribute(column))
	}

	cls := base.NewFloatAttribute(ClassAttributeName)
	clsSpec := inst.AddAttribute(cls)
	if err := inst.AddClassAttribute(cls); err != nil {
		return nil, err
	}

	if err := inst.Extend(len(rows)); err != nil {
		return nil, err
	}

	for i, row := range rows {
		for j, value := range x[row] {
			inst.Set(specs[j], i, base.PackFloatToBytes(value))
		}
		inst.Set(clsSpec, i, base.PackFloatToBytes(y[row]))
	}

	return inst, nil
}

// classValues reads the class attribute of every row of a grid.
func classValues(grid base.FixedDataGrid) ([]float64, error) {
	spec, err := grid.GetAttribute(base.NewFloatAttribute(ClassAttributeName))
	if err != nil {
		return nil, err
	}

	_, rows := grid.Size()
	values := make([]float64, rows)
	for i := range values {
		values[i] = base.UnpackBytesToFloat(grid.Get(spec, i))
	}

	return values, nil
}
