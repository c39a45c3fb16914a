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
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	godigest "github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockContent = []byte("price,ram_and_storage\n\"₹9,999\",4 GB RAM\n")

func mockDigest() godigest.Digest {
	sum := sha256.Sum256(mockContent)
	return godigest.NewDigestFromEncoded(AlgorithmSHA256, hex.EncodeToString(sum[:]))
}

func TestParse(t *testing.T) {
	assert := assert.New(t)

	d, err := Parse(mockDigest().String())
	assert.NoError(err)
	assert.Equal(mockDigest(), d)

	_, err = Parse("sha256:foo")
	assert.Error(err)

	_, err = Parse("foo")
	assert.Error(err)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phones.csv")
	require.NoError(t, os.WriteFile(path, mockContent, 0600))

	assert := assert.New(t)
	d, err := HashFile(path, AlgorithmSHA256)
	assert.NoError(err)
	assert.Equal(mockDigest(), d)

	_, err = HashFile(filepath.Join(t.TempDir(), "foo"), AlgorithmSHA256)
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = HashFile(path, godigest.Algorithm("foo"))
	assert.EqualError(err, "invalid algorithm: foo")
}

func TestReader(t *testing.T) {
	tests := []struct {
		name      string
		algorithm godigest.Algorithm
		options   []Option
		expect    func(t *testing.T, r Reader, err error)
	}{
		{
			name:      "hash content",
			algorithm: AlgorithmSHA256,
			expect: func(t *testing.T, r Reader, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				data, err := io.ReadAll(r)
				assert.NoError(err)
				assert.Equal(mockContent, data)
				assert.Equal(mockDigest(), r.Digest())
			},
		},
		{
			name:      "expected digest matches",
			algorithm: AlgorithmSHA256,
			options:   []Option{WithExpected(mockDigest())},
			expect: func(t *testing.T, r Reader, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				_, err = io.ReadAll(r)
				assert.NoError(err)
			},
		},
		{
			name:      "expected digest does not match",
			algorithm: AlgorithmSHA256,
			options:   []Option{WithExpected(godigest.FromString("foo"))},
			expect: func(t *testing.T, r Reader, err error) {
				assert := assert.New(t)
				require.NoError(t, err)
				_, err = io.ReadAll(r)
				assert.ErrorIs(err, ErrDigestMismatch)
			},
		},
		{
			name:      "expected digest uses another algorithm",
			algorithm: AlgorithmSHA512,
			options:   []Option{WithExpected(mockDigest())},
			expect: func(t *testing.T, r Reader, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Nil(r)
			},
		},
		{
			name:      "invalid algorithm",
			algorithm: godigest.Algorithm("foo"),
			expect: func(t *testing.T, r Reader, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "invalid algorithm: foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(tc.algorithm, bytes.NewReader(mockContent), tc.options...)
			tc.expect(t, r, err)
		})
	}
}
