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

package slices

// Contains returns true if an element is present in a collection.
func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}

	return false
}

// FindDuplicate returns the first repeated element of a collection.
func FindDuplicate[T comparable](s []T) (T, bool) {
	visited := make(map[T]struct{}, len(s))
	for _, v := range s {
		if _, ok := visited[v]; ok {
			return v, true
		}

		visited[v] = struct{}{}
	}

	var zero T
	return zero, false
}

// Difference returns the elements of l1 absent of l2 and the elements of l2
// absent of l1, both in their original order.
func Difference[T comparable](l1 []T, l2 []T) ([]T, []T) {
	left := []T{}
	right := []T{}
	for _, e := range l1 {
		if !Contains(l2, e) {
			left = append(left, e)
		}
	}

	for _, e := range l2 {
		if !Contains(l1, e) {
			right = append(right, e)
		}
	}

	return left, right
}
