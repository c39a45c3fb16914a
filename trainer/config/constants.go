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

package config

import (
	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/models"
	"github.com/mobileprice/pricer/pkg/types"
	"github.com/mobileprice/pricer/pkg/unit"
)

const (
	// DefaultLogRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 1024

	// DefaultLogRotateMaxAge is the default number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is the default number of old log files to keep.
	DefaultLogRotateMaxBackups = 20
)

const (
	// DefaultDatasetSource is the default dataset file.
	DefaultDatasetSource = "mysmartprice_mobile_dataset.csv"

	// DefaultDatasetTimeout is the default timeout of a dataset download in seconds.
	DefaultDatasetTimeout = 60

	// DefaultDatasetRetryLimit is the default number of dataset download attempts.
	DefaultDatasetRetryLimit = 3

	// DefaultDatasetMaxSize is the default size limit of the dataset source.
	DefaultDatasetMaxSize = 512 * unit.MB
)

// Default dataset column names.
const (
	DefaultColumnPrice         = "price"
	DefaultColumnRAMAndStorage = "ram_and_storage"
	DefaultColumnDisplay       = "display"
	DefaultColumnCamera        = "rear_camera"
	DefaultColumnBattery       = "battery_and_charging_speed"
	DefaultColumnProcessor     = "cpu"
	DefaultColumnFeatures      = "5G|NFC|Fingerprint"
	DefaultColumnRating        = "avg_rating"
)

const (
	// DefaultPipelineFilterMode is the default filter mode.
	DefaultPipelineFilterMode = types.FilterModeLenient

	// DefaultPipelineTestPercent is the default share of rows held out for evaluation.
	DefaultPipelineTestPercent = 0.2

	// DefaultPipelineSeed is the default seed of the train/test split.
	DefaultPipelineSeed = 42
)

const (
	// DefaultCardDefault is the card flag of a row without a features cell.
	DefaultCardDefault = false

	// DefaultSIMDefault is the sim flag of a row without a sim cell.
	DefaultSIMDefault = true
)

var (
	// DefaultModelNumEstimators is the default number of boosting stages.
	DefaultModelNumEstimators = models.DefaultNumEstimators

	// DefaultModelLearningRate is the default learning rate.
	DefaultModelLearningRate = models.DefaultLearningRate

	// DefaultModelMaxDepth is the default depth of every tree.
	DefaultModelMaxDepth = models.DefaultMaxDepth

	// DefaultCardKeyword is the default keyword of the card flag.
	DefaultCardKeyword = feature.DefaultCardKeyword

	// DefaultSIMKeyword is the default keyword of the sim flag.
	DefaultSIMKeyword = feature.DefaultSIMKeyword
)

const (
	// DefaultMetricsTextfileName is the file name of the metrics textfile in the data directory.
	DefaultMetricsTextfileName = "trainer.prom"
)
