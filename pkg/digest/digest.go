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
	// Register the hash functions used by go-digest.
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"os"

	godigest "github.com/opencontainers/go-digest"
)

const (
	// AlgorithmSHA256 is the default digest algorithm.
	AlgorithmSHA256 = godigest.SHA256

	// AlgorithmSHA512 is the sha512 digest algorithm.
	AlgorithmSHA512 = godigest.SHA512
)

// Parse parses a digest in the algorithm:encoded form.
func Parse(digest string) (godigest.Digest, error) {
	d, err := godigest.Parse(digest)
	if err != nil {
		return "", fmt.Errorf("invalid digest %q: %w", digest, err)
	}

	return d, nil
}

// HashFile computes the digest of the file content.
func HashFile(path string, algorithm godigest.Algorithm) (godigest.Digest, error) {
	if !algorithm.Available() {
		return "", fmt.Errorf("invalid algorithm: %s", algorithm)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return algorithm.FromReader(f)
}
