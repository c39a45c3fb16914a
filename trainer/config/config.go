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
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mobileprice/pricer/cmd/dependency/base"
	"github.com/mobileprice/pricer/pkg/digest"
	"github.com/mobileprice/pricer/pkg/feature"
	"github.com/mobileprice/pricer/pkg/models"
	"github.com/mobileprice/pricer/pkg/types"
	"github.com/mobileprice/pricer/pkg/unit"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Dataset configuration.
	Dataset DatasetConfig `yaml:"dataset" mapstructure:"dataset"`

	// Pipeline configuration.
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`

	// Model configuration.
	Model ModelConfig `yaml:"model" mapstructure:"model"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ServerConfig struct {
	// Server work directory.
	WorkHome string `yaml:"workHome" mapstructure:"workHome"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 1024)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 20)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory, artifacts are written here.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`
}

type DatasetConfig struct {
	// Source is a local csv path or an http(s) url.
	Source string `yaml:"source" mapstructure:"source"`

	// Timeout in seconds of a dataset download.
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// RetryLimit is the maximum number of download attempts.
	RetryLimit int `yaml:"retryLimit" mapstructure:"retryLimit"`

	// MaxSize limits the size of the source, such as 512MB.
	MaxSize unit.Bytes `yaml:"maxSize" mapstructure:"maxSize"`

	// Digest is the expected digest of the source in the algorithm:encoded
	// form, the source is not verified when it is empty.
	Digest string `yaml:"digest" mapstructure:"digest"`

	// Columns maps dataset headers to raw fields.
	Columns ColumnsConfig `yaml:"columns" mapstructure:"columns"`

	// Patterns are the numeric extraction regexps.
	Patterns PatternsConfig `yaml:"patterns" mapstructure:"patterns"`

	// CardKeyword marks memory card support in the features column.
	CardKeyword string `yaml:"cardKeyword" mapstructure:"cardKeyword"`

	// CardDefault is used when the features cell is missing.
	CardDefault bool `yaml:"cardDefault" mapstructure:"cardDefault"`

	// SIMKeyword marks dual sim support in the sim column.
	SIMKeyword string `yaml:"simKeyword" mapstructure:"simKeyword"`

	// SIMDefault is used when the sim cell is missing.
	SIMDefault bool `yaml:"simDefault" mapstructure:"simDefault"`

	// ExportFeatures writes the cleaned feature rows to this csv file when set.
	ExportFeatures string `yaml:"exportFeatures" mapstructure:"exportFeatures"`
}

type ColumnsConfig struct {
	Price         string `yaml:"price" mapstructure:"price"`
	RAMAndStorage string `yaml:"ramAndStorage" mapstructure:"ramAndStorage"`
	Display       string `yaml:"display" mapstructure:"display"`
	Camera        string `yaml:"camera" mapstructure:"camera"`
	Battery       string `yaml:"battery" mapstructure:"battery"`
	Processor     string `yaml:"processor" mapstructure:"processor"`

	// Features is optional, without it every row gets the card default.
	Features string `yaml:"features" mapstructure:"features"`

	Rating string `yaml:"rating" mapstructure:"rating"`

	// SIM is optional, without it every row gets the sim default.
	SIM string `yaml:"sim" mapstructure:"sim"`
}

type PatternsConfig struct {
	RAM     string `yaml:"ram" mapstructure:"ram"`
	Display string `yaml:"display" mapstructure:"display"`
	Camera  string `yaml:"camera" mapstructure:"camera"`
	Battery string `yaml:"battery" mapstructure:"battery"`
}

type PipelineConfig struct {
	// FilterMode is lenient or strict.
	FilterMode types.FilterMode `yaml:"filterMode" mapstructure:"filterMode"`

	// TestPercent is the share of rows held out for evaluation.
	TestPercent float64 `yaml:"testPercent" mapstructure:"testPercent"`

	// Seed of the train/test split.
	Seed int64 `yaml:"seed" mapstructure:"seed"`
}

type ModelConfig struct {
	// NumEstimators is the number of boosting stages.
	NumEstimators int `yaml:"numEstimators" mapstructure:"numEstimators"`

	// LearningRate shrinks every stage.
	LearningRate float64 `yaml:"learningRate" mapstructure:"learningRate"`

	// MaxDepth limits every tree.
	MaxDepth int `yaml:"maxDepth" mapstructure:"maxDepth"`

	// MinSamplesSplit is the minimum rows required to split a node.
	MinSamplesSplit int `yaml:"minSamplesSplit" mapstructure:"minSamplesSplit"`

	// MinSamplesLeaf is the minimum rows kept in each leaf.
	MinSamplesLeaf int `yaml:"minSamplesLeaf" mapstructure:"minSamplesLeaf"`
}

type MetricsConfig struct {
	// Enable metrics textfile.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// TextfilePath is the prometheus textfile written after a run,
	// defaults to trainer.prom in the data directory.
	TextfilePath string `yaml:"textfilePath" mapstructure:"textfilePath"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			LogMaxSize:    DefaultLogRotateMaxSize,
			LogMaxAge:     DefaultLogRotateMaxAge,
			LogMaxBackups: DefaultLogRotateMaxBackups,
		},
		Dataset: DatasetConfig{
			Source:     DefaultDatasetSource,
			Timeout:    DefaultDatasetTimeout,
			RetryLimit: DefaultDatasetRetryLimit,
			MaxSize:    DefaultDatasetMaxSize,
			Columns: ColumnsConfig{
				Price:         DefaultColumnPrice,
				RAMAndStorage: DefaultColumnRAMAndStorage,
				Display:       DefaultColumnDisplay,
				Camera:        DefaultColumnCamera,
				Battery:       DefaultColumnBattery,
				Processor:     DefaultColumnProcessor,
				Features:      DefaultColumnFeatures,
				Rating:        DefaultColumnRating,
			},
			Patterns: PatternsConfig{
				RAM:     feature.DefaultRAMPattern,
				Display: feature.DefaultDisplayPattern,
				Camera:  feature.DefaultCameraPattern,
				Battery: feature.DefaultBatteryPattern,
			},
			CardKeyword: DefaultCardKeyword,
			CardDefault: DefaultCardDefault,
			SIMKeyword:  DefaultSIMKeyword,
			SIMDefault:  DefaultSIMDefault,
		},
		Pipeline: PipelineConfig{
			FilterMode:  DefaultPipelineFilterMode,
			TestPercent: DefaultPipelineTestPercent,
			Seed:        DefaultPipelineSeed,
		},
		Model: ModelConfig{
			NumEstimators:   DefaultModelNumEstimators,
			LearningRate:    DefaultModelLearningRate,
			MaxDepth:        DefaultModelMaxDepth,
			MinSamplesSplit: models.DefaultMinSamplesSplit,
			MinSamplesLeaf:  models.DefaultMinSamplesLeaf,
		},
		Metrics: MetricsConfig{
			Enable: false,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Dataset.Source == "" {
		return errors.New("dataset requires parameter source")
	}

	if cfg.Dataset.Timeout <= 0 {
		return errors.New("dataset requires parameter timeout")
	}

	if cfg.Dataset.RetryLimit <= 0 {
		return errors.New("dataset requires parameter retryLimit")
	}

	if cfg.Dataset.MaxSize <= 0 {
		return errors.New("dataset requires parameter maxSize")
	}

	if cfg.Dataset.Digest != "" {
		if _, err := digest.Parse(cfg.Dataset.Digest); err != nil {
			return fmt.Errorf("dataset has invalid digest: %w", err)
		}
	}

	for _, column := range []struct {
		name  string
		value string
	}{
		{"price", cfg.Dataset.Columns.Price},
		{"ramAndStorage", cfg.Dataset.Columns.RAMAndStorage},
		{"display", cfg.Dataset.Columns.Display},
		{"camera", cfg.Dataset.Columns.Camera},
		{"battery", cfg.Dataset.Columns.Battery},
		{"processor", cfg.Dataset.Columns.Processor},
		{"rating", cfg.Dataset.Columns.Rating},
	} {
		if column.value == "" {
			return fmt.Errorf("columns requires parameter %s", column.name)
		}
	}

	for _, pattern := range []struct {
		name  string
		value string
	}{
		{"ram", cfg.Dataset.Patterns.RAM},
		{"display", cfg.Dataset.Patterns.Display},
		{"camera", cfg.Dataset.Patterns.Camera},
		{"battery", cfg.Dataset.Patterns.Battery},
	} {
		if pattern.value == "" {
			return fmt.Errorf("patterns requires parameter %s", pattern.name)
		}

		if _, err := regexp.Compile(pattern.value); err != nil {
			return fmt.Errorf("patterns has invalid %s: %w", pattern.name, err)
		}
	}

	if cfg.Dataset.Columns.Features != "" && cfg.Dataset.CardKeyword == "" {
		return errors.New("dataset requires parameter cardKeyword")
	}

	if cfg.Dataset.Columns.SIM != "" && cfg.Dataset.SIMKeyword == "" {
		return errors.New("dataset requires parameter simKeyword")
	}

	if !cfg.Pipeline.FilterMode.IsValid() {
		return errors.New("pipeline requires parameter filterMode")
	}

	if cfg.Pipeline.TestPercent <= 0 || cfg.Pipeline.TestPercent >= 1 {
		return errors.New("pipeline requires parameter testPercent")
	}

	if cfg.Model.NumEstimators <= 0 {
		return errors.New("model requires parameter numEstimators")
	}

	if cfg.Model.LearningRate <= 0 {
		return errors.New("model requires parameter learningRate")
	}

	if cfg.Model.MaxDepth <= 0 {
		return errors.New("model requires parameter maxDepth")
	}

	if cfg.Model.MinSamplesSplit < 2 {
		return errors.New("model requires parameter minSamplesSplit")
	}

	if cfg.Model.MinSamplesLeaf < 1 {
		return errors.New("model requires parameter minSamplesLeaf")
	}

	return nil
}

// Convert fills the parameters derived from other parameters.
func (cfg *Config) Convert() error {
	cfg.Pipeline.FilterMode = types.FilterMode(strings.ToLower(string(cfg.Pipeline.FilterMode)))
	if cfg.Pipeline.FilterMode == "" {
		cfg.Pipeline.FilterMode = DefaultPipelineFilterMode
	}

	return nil
}
