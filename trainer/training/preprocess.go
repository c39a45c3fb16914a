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
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/mobileprice/pricer/internal/logger"
	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/types"
	"github.com/mobileprice/pricer/trainer/config"
	"github.com/mobileprice/pricer/trainer/dataset"
	"github.com/mobileprice/pricer/trainer/metrics"
)

// Reasons a row is dropped, one per required field.
const (
	DropReasonPrice           = "price"
	DropReasonRAM             = "ram"
	DropReasonDisplay         = "display"
	DropReasonCameraMP        = "camera_mp"
	DropReasonBatteryCapacity = "battery_capacity"
)

var (
	// ErrRowDropped marks a row that failed feature extraction.
	ErrRowDropped = errors.New("row dropped")
)

// Sample is a cleaned dataset row.
type Sample struct {
	// Line of the row in the dataset source.
	Line int

	// Price is the cleaned price.
	Price float64

	// Vector is the derived feature set.
	Vector feature.Vector
}

// extractor derives feature vectors from raw records.
type extractor struct {
	config  *config.DatasetConfig
	ram     *regexp.Regexp
	display *regexp.Regexp
	camera  *regexp.Regexp
	battery *regexp.Regexp
}

func newExtractor(cfg *config.DatasetConfig) (*extractor, error) {
	e := &extractor{config: cfg}
	for _, p := range []struct {
		pattern string
		re      **regexp.Regexp
	}{
		{cfg.Patterns.RAM, &e.ram},
		{cfg.Patterns.Display, &e.display},
		{cfg.Patterns.Camera, &e.camera},
		{cfg.Patterns.Battery, &e.battery},
	} {
		re, err := regexp.Compile(p.pattern)
		if err != nil {
			return nil, err
		}
		*p.re = re
	}

	return e, nil
}

// preprocess derives samples from records. Ratings are imputed over every
// record before any row is dropped. In strict mode any dropped row fails the
// call with an error per row.
func (e *extractor) preprocess(source string, records []dataset.RawRecord, mode types.FilterMode) ([]Sample, error) {
	ratings := make([]*float64, len(records))
	for i, record := range records {
		ratings[i] = parseRating(record.Rating)
	}
	filled := feature.FillMissingRating(ratings)

	var (
		samples []Sample
		errs    *multierror.Error
	)
	for i, record := range records {
		sample, reasons := e.derive(record, filled[i])
		if len(reasons) > 0 {
			for _, reason := range reasons {
				metrics.RowDroppedCount.WithLabelValues(reason).Inc()
			}

			logger.PipelineLogger.Debugw("drop row", "dataset", source, "line", record.Line, "missing", reasons)
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w: missing %s", record.Line, ErrRowDropped, strings.Join(reasons, ", ")))
			continue
		}

		samples = append(samples, sample)
	}

	if errs != nil {
		if mode == types.FilterModeStrict {
			return nil, errs
		}

		logger.WithDataset(source).Infof("dropped %d of %d rows", len(errs.Errors), len(records))
	}

	return samples, nil
}

// derive builds the sample of one record, it returns the names of the
// required fields that could not be derived.
func (e *extractor) derive(record dataset.RawRecord, rating float64) (Sample, []string) {
	var reasons []string
	price, ok := feature.CleanPrice(record.Price)
	if !ok {
		reasons = append(reasons, DropReasonPrice)
	}

	ram, ok := feature.ExtractNumeric(record.RAMAndStorage, e.ram)
	if !ok {
		reasons = append(reasons, DropReasonRAM)
	}

	display, ok := feature.ExtractNumeric(record.Display, e.display)
	if !ok {
		reasons = append(reasons, DropReasonDisplay)
	}

	camera, ok := feature.ExtractNumeric(record.Camera, e.camera)
	if !ok {
		reasons = append(reasons, DropReasonCameraMP)
	}

	battery, ok := feature.ExtractNumeric(record.Battery, e.battery)
	if !ok {
		reasons = append(reasons, DropReasonBatteryCapacity)
	}

	return Sample{
		Line:  record.Line,
		Price: price,
		Vector: feature.Vector{
			Rating:          rating,
			RAM:             ram,
			Display:         display,
			CameraMP:        camera,
			BatteryCapacity: battery,
			Card:            feature.DeriveBinaryFlag(record.Features, e.config.CardKeyword, e.config.CardDefault),
			SIM:             feature.DeriveBinaryFlag(record.SIM, e.config.SIMKeyword, e.config.SIMDefault),
			ProcessorType:   feature.SimplifyProcessor(record.Processor),
		},
	}, reasons
}

// parseRating returns nil for a missing or non-numeric rating.
func parseRating(raw string) *float64 {
	if raw == "" {
		return nil
	}

	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
		return nil
	}

	return &rating
}
