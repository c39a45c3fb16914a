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
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/montanaflynn/stats"
)

var (
	// DefaultRAMPattern matches "8 GB RAM | 128 GB Storage".
	DefaultRAMPattern = `(\d+)\s*GB RAM`

	// DefaultDisplayPattern matches "6.9″ (17.53 cm)".
	DefaultDisplayPattern = `(\d+\.?\d*)`

	// DefaultCameraPattern matches the first lens of "200+50+10 MP".
	DefaultCameraPattern = `(\d+)`

	// DefaultBatteryPattern matches "5000 mAh | 45W".
	DefaultBatteryPattern = `(\d+)`
)

const (
	// DefaultCardKeyword marks memory card support in the features column.
	DefaultCardKeyword = "Memory Card"

	// DefaultSIMKeyword marks dual sim support in the sim column.
	DefaultSIMKeyword = "dual"
)

// CleanPrice strips currency symbols, separators and every other non-digit.
// It returns false for a missing price or when no digit is left.
func CleanPrice(raw string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, raw)
	if cleaned == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	return price, true
}

// ExtractNumeric returns the number matched by pattern in raw. When the pattern
// has a capture group the first group is used, otherwise the whole match.
func ExtractNumeric(raw string, pattern *regexp.Regexp) (float64, bool) {
	if raw == "" || pattern == nil {
		return 0, false
	}

	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, false
	}

	value := match[0]
	if len(match) > 1 {
		value = match[1]
	}

	number, err := strconv.ParseFloat(strings.TrimFunc(value, unicode.IsSpace), 64)
	if err != nil {
		return 0, false
	}

	return number, true
}

// DeriveBinaryFlag returns 1 when keyword occurs in raw, 0 when it does not,
// and the default when raw is missing.
func DeriveBinaryFlag(raw, keyword string, defaultValue bool) int {
	if raw == "" {
		return boolToInt(defaultValue)
	}

	return boolToInt(strings.Contains(raw, keyword))
}

// FillMissingRating replaces missing ratings with the mean of the present
// ones. The mean is taken once over the whole input; it is 0 when nothing is
// present.
func FillMissingRating(ratings []*float64) []float64 {
	present := make([]float64, 0, len(ratings))
	for _, rating := range ratings {
		if rating != nil {
			present = append(present, *rating)
		}
	}

	mean, err := stats.Mean(present)
	if err != nil {
		mean = 0
	}

	filled := make([]float64, len(ratings))
	for i, rating := range ratings {
		if rating == nil {
			filled[i] = mean
			continue
		}

		filled[i] = *rating
	}

	return filled
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
