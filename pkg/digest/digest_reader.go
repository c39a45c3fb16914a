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

package digest

import (
	"errors"
	"fmt"
	"io"

	godigest "github.com/opencontainers/go-digest"

	"github.com/mobileprice/pricer/internal/logger"
)

var (
	// ErrDigestMismatch is returned when the content does not match the expected digest.
	ErrDigestMismatch = errors.New("digest not match")
)

// Reader is the interface used for reading content while hashing it.
type Reader interface {
	io.Reader

	// Digest returns the digest of the content read so far.
	Digest() godigest.Digest
}

type reader struct {
	r        io.Reader
	digester godigest.Digester
	expected godigest.Digest
	logger   *logger.SugaredLoggerOnWith
}

// Option is a functional option for digest reader.
type Option func(reader *reader)

// WithLogger sets the logger for digest reader.
func WithLogger(logger *logger.SugaredLoggerOnWith) Option {
	return func(reader *reader) {
		reader.logger = logger
	}
}

// WithExpected sets the digest verified when the content is fully read.
func WithExpected(expected godigest.Digest) Option {
	return func(reader *reader) {
		reader.expected = expected
	}
}

// NewReader creates digest reader.
func NewReader(algorithm godigest.Algorithm, r io.Reader, options ...Option) (Reader, error) {
	if !algorithm.Available() {
		return nil, fmt.Errorf("invalid algorithm: %s", algorithm)
	}

	reader := &reader{
		r:        r,
		digester: algorithm.Digester(),
		logger:   logger.With(),
	}

	for _, opt := range options {
		opt(reader)
	}

	if reader.expected != "" && reader.expected.Algorithm() != algorithm {
		return nil, fmt.Errorf("expected digest %s does not use algorithm %s", reader.expected, algorithm)
	}

	return reader, nil
}

// Read reads content and verifies the expected digest at the end of the content.
func (r *reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF {
		return n, err
	}

	if n > 0 {
		r.digester.Hash().Write(p[:n])
	}

	if err == io.EOF && r.expected != "" {
		digest := r.Digest()
		if digest != r.expected {
			r.logger.Warnf("digest not match, desired: %s, actual: %s", r.expected, digest)
			return n, ErrDigestMismatch
		}

		r.logger.Debugf("digest match: %s", digest)
	}

	return n, err
}

// Digest returns the digest of the content read so far.
func (r *reader) Digest() godigest.Digest {
	return r.digester.Digest()
}
