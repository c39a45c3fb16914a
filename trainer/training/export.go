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
	"os"

	"github.com/gocarina/gocsv"

	"github.com/mobileprice/pricer/pkg/feature"
)

// FeatureRow is one cleaned row of the feature export.
type FeatureRow struct {
	Line  int     `csv:"line"`
	Price float64 `csv:"price"`
	feature.Vector
}

// exportFeatures writes the cleaned samples to a csv file.
func exportFeatures(path string, samples []Sample) error {
	rows := make([]*FeatureRow, len(samples))
	for i, sample := range samples {
		rows[i] = &FeatureRow{
			Line:   sample.Line,
			Price:  sample.Price,
			Vector: sample.Vector,
		}
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(&rows, file)
}
