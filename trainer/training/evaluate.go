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

	"github.com/montanaflynn/stats"
)

// Evaluation holds the held-out metrics of a trained model.
type Evaluation struct {
	// MAE mean absolute error of the log price.
	MAE float64

	// MSE mean square error of the log price.
	MSE float64

	// RMSE root mean square error of the log price.
	RMSE float64

	// R² coefficient of determination of the log price.
	R2 float64

	// PriceMAE mean absolute error of the price.
	PriceMAE float64
}

// evaluate compares log price predictions with the actual log prices.
func evaluate(actual, predicted []float64) (Evaluation, error) {
	if len(actual) != len(predicted) {
		return Evaluation{}, errors.New("predictions do not match labels")
	}

	absErrors := make([]float64, len(actual))
	squaredErrors := make([]float64, len(actual))
	priceErrors := make([]float64, len(actual))
	for i := range actual {
		absErrors[i] = math.Abs(actual[i] - predicted[i])
		squaredErrors[i] = math.Pow(actual[i]-predicted[i], 2)
		priceErrors[i] = math.Abs(math.Expm1(actual[i]) - math.Expm1(predicted[i]))
	}

	var (
		e   Evaluation
		err error
	)
	if e.MAE, err = stats.Mean(absErrors); err != nil {
		return Evaluation{}, err
	}

	if e.MSE, err = stats.Mean(squaredErrors); err != nil {
		return Evaluation{}, err
	}

	if e.PriceMAE, err = stats.Mean(priceErrors); err != nil {
		return Evaluation{}, err
	}

	variance, err := stats.PopulationVariance(actual)
	if err != nil {
		return Evaluation{}, err
	}

	e.RMSE = math.Sqrt(e.MSE)
	e.R2 = 1 - e.MSE/variance
	if err := e.check(); err != nil {
		return Evaluation{}, err
	}

	return e, nil
}

// check fails when a metric is not a finite number.
func (e Evaluation) check() error {
	for _, v := range []float64{e.MAE, e.MSE, e.RMSE, e.R2, e.PriceMAE} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("model NAN")
		}
	}

	return nil
}
