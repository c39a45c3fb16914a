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

package dependency

import (
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"

	"github.com/mobileprice/pricer/pkg/unit"
)

func TestInitDecoderConfig(t *testing.T) {
	type config struct {
		Timeout time.Duration `mapstructure:"timeout"`
		MaxSize unit.Bytes    `mapstructure:"maxSize"`
		Hosts   []string      `mapstructure:"hosts"`
	}

	tests := []struct {
		name   string
		input  map[string]any
		expect func(t *testing.T, cfg config, err error)
	}{
		{
			name: "human readable values",
			input: map[string]any{
				"timeout": "5s",
				"maxSize": "64MB",
				"hosts":   "foo,bar",
			},
			expect: func(t *testing.T, cfg config, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(5*time.Second, cfg.Timeout)
				assert.Equal(64*unit.MB, cfg.MaxSize)
				assert.Equal([]string{"foo", "bar"}, cfg.Hosts)
			},
		},
		{
			name: "plain size",
			input: map[string]any{
				"maxSize": 2048,
			},
			expect: func(t *testing.T, cfg config, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(2*unit.KB, cfg.MaxSize)
			},
		},
		{
			name: "invalid size",
			input: map[string]any{
				"maxSize": "64XB",
			},
			expect: func(t *testing.T, cfg config, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg config
			dc := &mapstructure.DecoderConfig{Result: &cfg}
			initDecoderConfig(dc)

			decoder, err := mapstructure.NewDecoder(dc)
			if err != nil {
				t.Fatal(err)
			}

			err = decoder.Decode(tc.input)
			tc.expect(t, cfg, err)
		})
	}
}
