// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gbdt

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// node is one split (or leaf) of a regression tree fit to per-row
// gradients and hessians. Leaves hold the Newton step -G/(H+lambda).
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
}

func (n *node) leaf() bool {
	return n.left == nil
}

func (n *node) predict(row []float64) float64 {
	for !n.leaf() {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type treeParams struct {
	maxDepth int
	minLeaf  int
	lambda   float64
}

// buildTree grows a depth-limited regression tree over the given rows by
// exact greedy search: every distinct value boundary of every feature is a
// candidate split, scored by the usual second-order gain
// GL^2/(HL+l) + GR^2/(HR+l) - G^2/(H+l).
func buildTree(x *mat.Dense, rows []int, grad, hess []float64, depth int, p treeParams) *node {
	var sumG, sumH float64
	for _, r := range rows {
		sumG += grad[r]
		sumH += hess[r]
	}
	leaf := &node{value: -sumG / (sumH + p.lambda)}
	if depth >= p.maxDepth || len(rows) < 2*p.minLeaf {
		return leaf
	}

	_, cols := x.Dims()
	parentScore := sumG * sumG / (sumH + p.lambda)

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0

	order := make([]int, len(rows))
	for f := 0; f < cols; f++ {
		copy(order, rows)
		sort.Slice(order, func(i, j int) bool {
			return x.At(order[i], f) < x.At(order[j], f)
		})

		var gl, hl float64
		for i := 0; i < len(order)-1; i++ {
			r := order[i]
			gl += grad[r]
			hl += hess[r]

			v, next := x.At(r, f), x.At(order[i+1], f)
			if v == next {
				continue
			}
			if i+1 < p.minLeaf || len(order)-i-1 < p.minLeaf {
				continue
			}

			gr := sumG - gl
			hr := sumH - hl
			gain := gl*gl/(hl+p.lambda) + gr*gr/(hr+p.lambda) - parentScore
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return leaf
	}

	left := make([]int, 0, len(rows))
	right := make([]int, 0, len(rows))
	for _, r := range rows {
		if x.At(r, bestFeature) <= bestThreshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &node{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      buildTree(x, left, grad, hess, depth+1, p),
		right:     buildTree(x, right, grad, hess, depth+1, p),
	}
}
