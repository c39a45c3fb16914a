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

package models

import (
	"errors"
	"fmt"
	"sort"
)

// Node is one node of a regression tree stored in a flat slice.
type Node struct {
	// Leaf marks a terminal node.
	Leaf bool `json:"leaf"`

	// Value is the prediction of a leaf.
	Value float64 `json:"value"`

	// Feature is the column index tested by a split.
	Feature int `json:"feature"`

	// Threshold sends rows with feature <= threshold to Left.
	Threshold float64 `json:"threshold"`

	// Left and Right are child indexes into the tree nodes.
	Left  int `json:"left"`
	Right int `json:"right"`
}

// RegressionTree is a CART regression tree.
type RegressionTree struct {
	Nodes []Node `json:"nodes"`
}

// Predict returns the leaf value reached by x.
func (t *RegressionTree) Predict(x []float64) float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf {
			return node.Value
		}

		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// validate checks that every split references a known feature and child.
func (t *RegressionTree) validate(numFeatures int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}

	for i, node := range t.Nodes {
		if node.Leaf {
			continue
		}

		if node.Feature < 0 || node.Feature >= numFeatures {
			return fmt.Errorf("node %d references feature %d", i, node.Feature)
		}

		// Children are always appended after their parent, which rules out cycles.
		if node.Left <= i || node.Left >= len(t.Nodes) || node.Right <= i || node.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d and %d", i, node.Left, node.Right)
		}
	}

	return nil
}

// treeBuilder grows one regression tree over a fixed sample matrix.
type treeBuilder struct {
	x               [][]float64
	y               []float64
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	tree            *RegressionTree
}

type split struct {
	feature   int
	threshold float64
	left      []int
	right     []int
}

func buildTree(x [][]float64, y []float64, maxDepth, minSamplesSplit, minSamplesLeaf int) *RegressionTree {
	b := &treeBuilder{
		x:               x,
		y:               y,
		maxDepth:        maxDepth,
		minSamplesSplit: minSamplesSplit,
		minSamplesLeaf:  minSamplesLeaf,
		tree:            &RegressionTree{},
	}

	rows := make([]int, len(y))
	for i := range rows {
		rows[i] = i
	}

	b.grow(rows, 0)
	return b.tree
}

// grow appends the node for rows and returns its index.
func (b *treeBuilder) grow(rows []int, depth int) int {
	index := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{Leaf: true, Value: b.mean(rows)})

	if depth >= b.maxDepth || len(rows) < b.minSamplesSplit {
		return index
	}

	s, ok := b.bestSplit(rows)
	if !ok {
		return index
	}

	left := b.grow(s.left, depth+1)
	right := b.grow(s.right, depth+1)
	b.tree.Nodes[index] = Node{
		Feature:   s.feature,
		Threshold: s.threshold,
		Left:      left,
		Right:     right,
	}

	return index
}

// bestSplit searches every feature for the threshold with the largest
// reduction of squared error.
func (b *treeBuilder) bestSplit(rows []int) (split, bool) {
	n := len(rows)
	total := 0.0
	for _, r := range rows {
		total += b.y[r]
	}

	// Maximizing sumL²/nL + sumR²/nR minimizes the children squared error.
	bestScore := total * total / float64(n)
	bestGain := 0.0
	best := split{feature: -1}

	sorted := make([]int, n)
	for feature := range b.x[rows[0]] {
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][feature] < b.x[sorted[j]][feature]
		})

		leftSum := 0.0
		for i := 1; i < n; i++ {
			leftSum += b.y[sorted[i-1]]
			if i < b.minSamplesLeaf || n-i < b.minSamplesLeaf {
				continue
			}

			lo, hi := b.x[sorted[i-1]][feature], b.x[sorted[i]][feature]
			if lo == hi {
				continue
			}

			rightSum := total - leftSum
			score := leftSum*leftSum/float64(i) + rightSum*rightSum/float64(n-i)
			if gain := score - bestScore; gain > bestGain+1e-12 {
				bestGain = gain
				threshold := lo + (hi-lo)/2
				if threshold >= hi {
					threshold = lo
				}

				best = split{feature: feature, threshold: threshold}
			}
		}
	}

	if best.feature < 0 {
		return split{}, false
	}

	for _, r := range rows {
		if b.x[r][best.feature] <= best.threshold {
			best.left = append(best.left, r)
		} else {
			best.right = append(best.right, r)
		}
	}

	return best, true
}

func (b *treeBuilder) mean(rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}

	sum := 0.0
	for _, r := range rows {
		sum += b.y[r]
	}

	return sum / float64(len(rows))
}
