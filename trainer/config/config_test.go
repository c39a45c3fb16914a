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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/mobileprice/pricer/cmd/dependency/base"
	"github.com/mobileprice/pricer/pkg/types"
	"github.com/mobileprice/pricer/pkg/unit"
)

func TestConfig_Load(t *testing.T) {
	config := &Config{
		Options: base.Options{
			Console:   true,
			Verbose:   true,
			PProfPort: -1,
		},
		Server: ServerConfig{
			WorkHome:      "foo",
			LogDir:        "foo",
			LogMaxSize:    512,
			LogMaxAge:     5,
			LogMaxBackups: 3,
			DataDir:       "bar",
		},
		Dataset: DatasetConfig{
			Source:     "https://example.com/phones.csv",
			Timeout:    30,
			RetryLimit: 5,
			MaxSize:    64 * unit.MB,
			Digest:     "sha256:2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
			Columns: ColumnsConfig{
				Price:         "price",
				RAMAndStorage: "ram_and_storage",
				Display:       "display",
				Camera:        "rear_camera",
				Battery:       "battery_and_charging_speed",
				Processor:     "cpu",
				Features:      "features",
				Rating:        "avg_rating",
				SIM:           "sim",
			},
			Patterns: PatternsConfig{
				RAM:     `(\d+)\s*GB RAM`,
				Display: `(\d+\.?\d*)`,
				Camera:  `(\d+)`,
				Battery: `(\d+)`,
			},
			CardKeyword:    "Memory Card",
			CardDefault:    false,
			SIMKeyword:     "Dual Sim",
			SIMDefault:     true,
			ExportFeatures: "features.csv",
		},
		Pipeline: PipelineConfig{
			FilterMode:  types.FilterModeStrict,
			TestPercent: 0.25,
			Seed:        7,
		},
		Model: ModelConfig{
			NumEstimators:   100,
			LearningRate:    0.1,
			MaxDepth:        3,
			MinSamplesSplit: 4,
			MinSamplesLeaf:  2,
		},
		Metrics: MetricsConfig{
			Enable:       true,
			TextfilePath: "bar/trainer.prom",
		},
	}

	trainerConfigYAML := &Config{}
	contentYAML, _ := os.ReadFile("./testdata/trainer.yaml")
	if err := yaml.Unmarshal(contentYAML, &trainerConfigYAML); err != nil {
		t.Fatal(err)
	}
	assert := assert.New(t)
	assert.EqualValues(config, trainerConfigYAML)
	assert.NoError(trainerConfigYAML.Validate())
}

func TestConfig_Convert(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(cfg *Config)
		expect func(t *testing.T, cfg *Config)
	}{
		{
			name: "empty filter mode falls back to lenient",
			mock: func(cfg *Config) {
				cfg.Pipeline.FilterMode = ""
			},
			expect: func(t *testing.T, cfg *Config) {
				assert := assert.New(t)
				assert.Equal(types.FilterModeLenient, cfg.Pipeline.FilterMode)
			},
		},
		{
			name: "filter mode is case insensitive",
			mock: func(cfg *Config) {
				cfg.Pipeline.FilterMode = "STRICT"
			},
			expect: func(t *testing.T, cfg *Config) {
				assert := assert.New(t)
				assert.Equal(types.FilterModeStrict, cfg.Pipeline.FilterMode)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mock(cfg)
			if err := cfg.Convert(); err != nil {
				t.Fatal(err)
			}

			tc.expect(t, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		mock   func(cfg *Config)
		expect func(t *testing.T, err error)
	}{
		{
			name:   "valid config",
			config: New(),
			mock:   func(cfg *Config) {},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "dataset requires parameter source",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Source = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset requires parameter source")
			},
		},
		{
			name:   "dataset requires parameter timeout",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Timeout = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset requires parameter timeout")
			},
		},
		{
			name:   "dataset requires parameter retryLimit",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.RetryLimit = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset requires parameter retryLimit")
			},
		},
		{
			name:   "dataset requires parameter maxSize",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.MaxSize = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset requires parameter maxSize")
			},
		},
		{
			name:   "dataset has invalid digest",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Digest = "sha256:foo"
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.ErrorContains(err, "dataset has invalid digest")
			},
		},
		{
			name:   "columns requires parameter price",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Columns.Price = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "columns requires parameter price")
			},
		},
		{
			name:   "columns requires parameter rating",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Columns.Rating = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "columns requires parameter rating")
			},
		},
		{
			name:   "features and sim columns are optional",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Columns.Features = ""
				cfg.Dataset.Columns.SIM = ""
				cfg.Dataset.CardKeyword = ""
				cfg.Dataset.SIMKeyword = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "patterns requires parameter ram",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Patterns.RAM = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "patterns requires parameter ram")
			},
		},
		{
			name:   "patterns has invalid display",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Patterns.Display = "(\\d+"
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.ErrorContains(err, "patterns has invalid display")
			},
		},
		{
			name:   "dataset requires parameter cardKeyword",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.CardKeyword = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset requires parameter cardKeyword")
			},
		},
		{
			name:   "dataset requires parameter simKeyword",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Dataset.Columns.SIM = "sim"
				cfg.Dataset.SIMKeyword = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "dataset requires parameter simKeyword")
			},
		},
		{
			name:   "pipeline requires parameter filterMode",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Pipeline.FilterMode = "foo"
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "pipeline requires parameter filterMode")
			},
		},
		{
			name:   "pipeline requires parameter testPercent",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Pipeline.TestPercent = 1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "pipeline requires parameter testPercent")
			},
		},
		{
			name:   "model requires parameter numEstimators",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model.NumEstimators = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter numEstimators")
			},
		},
		{
			name:   "model requires parameter learningRate",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model.LearningRate = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter learningRate")
			},
		},
		{
			name:   "model requires parameter maxDepth",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model.MaxDepth = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter maxDepth")
			},
		},
		{
			name:   "model requires parameter minSamplesSplit",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model.MinSamplesSplit = 1
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter minSamplesSplit")
			},
		},
		{
			name:   "model requires parameter minSamplesLeaf",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Model.MinSamplesLeaf = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "model requires parameter minSamplesLeaf")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.config.Convert(); err != nil {
				t.Fatal(err)
			}

			tc.mock(tc.config)
			tc.expect(t, tc.config.Validate())
		})
	}
}
