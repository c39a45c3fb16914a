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

package unit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Bytes is a size in bytes, it reads and prints in human readable form such as 64MB.
type Bytes int64

const (
	B  Bytes = 1
	KB       = 1024 * B
	MB       = 1024 * KB
	GB       = 1024 * MB
	TB       = 1024 * GB
)

func (f Bytes) ToNumber() int64 {
	return int64(f)
}

// Set is used for command flag var.
func (f *Bytes) Set(s string) (err error) {
	*f, err = ParseSize(s)
	return
}

func (f Bytes) Type() string {
	return "bytes"
}

// String prints the size in the largest unit dividing it.
func (f Bytes) String() string {
	for _, u := range []struct {
		symbol string
		unit   Bytes
	}{
		{"TB", TB},
		{"GB", GB},
		{"MB", MB},
		{"KB", KB},
	} {
		if f != 0 && f%u.unit == 0 {
			return fmt.Sprintf("%d%s", f/u.unit, u.symbol)
		}
	}

	return fmt.Sprintf("%dB", int64(f))
}

var sizeRegexp = regexp.MustCompile(`^([0-9]+)(\.0*)?(KB?|k|Ki|KiB|MB?|m|Mi|MiB|GB?|g|Gi|GiB|TB?|t|Ti|TiB|B)?$`)

// ParseSize parses a human readable size, a blank string is zero.
func ParseSize(s string) (Bytes, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	matches := sizeRegexp.FindStringSubmatch(s)
	if len(matches) == 0 {
		return 0, errors.Errorf("parse size %s: invalid format", s)
	}

	var unit Bytes
	switch matches[3] {
	case "k", "K", "KB", "Ki", "KiB":
		unit = KB
	case "m", "M", "MB", "Mi", "MiB":
		unit = MB
	case "g", "G", "GB", "Gi", "GiB":
		unit = GB
	case "t", "T", "TB", "Ti", "TiB":
		unit = TB
	default:
		unit = B
	}

	num, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse size %s", s)
	}

	if num > int64(^uint64(0)>>1)/int64(unit) {
		return 0, errors.Errorf("parse size %s: overflow", s)
	}

	return Bytes(num) * unit, nil
}

func (f Bytes) MarshalYAML() (any, error) {
	return f.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface, both plain
// numbers and human readable strings are accepted.
func (f *Bytes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("parse size: line %d is not a scalar", node.Line)
	}

	size, err := ParseSize(node.Value)
	if err != nil {
		return err
	}

	*f = size
	return nil
}
