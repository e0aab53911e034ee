// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package gbdt trains gradient-boosted decision tree ensembles for
// multiclass classification. Each boosting round fits one regression tree
// per class to the softmax gradients, with second-order (Newton) leaf
// values. The feature pipeline treats this model as an opaque classifier:
// Fit then Score.
package gbdt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/openecg/wavefeat"
)

// Config controls the boosted ensemble. Zero values select the defaults.
type Config struct {
	Trees        int     // boosting rounds; default 10000
	LearningRate float64 // shrinkage per round; default 0.1
	MaxDepth     int     // maximum tree depth; default 3
	MinLeaf      int     // minimum rows per leaf; default 1
	Lambda       float64 // L2 regularization of leaf values; default 1
}

func (c Config) withDefaults() Config {
	if c.Trees == 0 {
		c.Trees = 10000
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 3
	}
	if c.MinLeaf == 0 {
		c.MinLeaf = 1
	}
	if c.Lambda == 0 {
		c.Lambda = 1
	}
	return c
}

// Model is a fitted gradient-boosted ensemble.
type Model struct {
	classes int
	prior   []float64 // initial per-class score: log class frequency
	rounds  [][]*node // rounds[r][k] is round r's tree for class k
	rate    float64
}

// gradientTolerance stops boosting once every softmax gradient is this
// close to zero; further rounds would fit noise-free residuals.
const gradientTolerance = 1e-4

// Fit trains an ensemble on the feature matrix x and class vector y.
// Classes must be contiguous integers starting at 0.
func Fit(x *mat.Dense, y []int, cfg Config) (*Model, error) {
	cfg = cfg.withDefaults()

	rows, _ := x.Dims()
	if rows == 0 {
		return nil, fmt.Errorf("empty training matrix: %w", wavefeat.ErrInvalidInput)
	}
	if rows != len(y) {
		return nil, fmt.Errorf("matrix has %d rows but %d labels: %w", rows, len(y), wavefeat.ErrInvalidInput)
	}
	if cfg.Trees < 0 || cfg.LearningRate <= 0 || cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("bad ensemble configuration %+v: %w", cfg, wavefeat.ErrInvalidInput)
	}

	classes := 0
	counts := make(map[int]int)
	for _, c := range y {
		if c < 0 {
			return nil, fmt.Errorf("negative class index %d: %w", c, wavefeat.ErrInvalidInput)
		}
		if c+1 > classes {
			classes = c + 1
		}
		counts[c]++
	}
	if classes < 2 {
		return nil, fmt.Errorf("need at least 2 classes, got %d: %w", classes, wavefeat.ErrInvalidInput)
	}
	for c := 0; c < classes; c++ {
		if counts[c] == 0 {
			return nil, fmt.Errorf("class %d has no training rows: %w", c, wavefeat.ErrInvalidInput)
		}
	}

	m := &Model{
		classes: classes,
		prior:   make([]float64, classes),
		rate:    cfg.LearningRate,
	}
	for c := 0; c < classes; c++ {
		m.prior[c] = math.Log(float64(counts[c]) / float64(rows))
	}

	// Running per-row scores, updated after every round.
	scores := make([][]float64, rows)
	for i := range scores {
		scores[i] = make([]float64, classes)
		copy(scores[i], m.prior)
	}

	allRows := make([]int, rows)
	for i := range allRows {
		allRows[i] = i
	}

	params := treeParams{maxDepth: cfg.MaxDepth, minLeaf: cfg.MinLeaf, lambda: cfg.Lambda}
	probs := make([]float64, classes)
	grad := make([][]float64, classes)
	hess := make([][]float64, classes)
	for k := range grad {
		grad[k] = make([]float64, rows)
		hess[k] = make([]float64, rows)
	}

	for round := 0; round < cfg.Trees; round++ {
		maxGrad := 0.0
		for i := 0; i < rows; i++ {
			softmax(scores[i], probs)
			for k := 0; k < classes; k++ {
				g := probs[k]
				if y[i] == k {
					g -= 1
				}
				grad[k][i] = g
				hess[k][i] = math.Max(probs[k]*(1-probs[k]), 1e-16)
				if math.Abs(g) > maxGrad {
					maxGrad = math.Abs(g)
				}
			}
		}
		if maxGrad < gradientTolerance {
			break
		}

		trees := make([]*node, classes)
		for k := 0; k < classes; k++ {
			trees[k] = buildTree(x, allRows, grad[k], hess[k], 0, params)
		}
		for i := 0; i < rows; i++ {
			row := mat.Row(nil, i, x)
			for k := 0; k < classes; k++ {
				scores[i][k] += m.rate * trees[k].predict(row)
			}
		}
		m.rounds = append(m.rounds, trees)
	}

	return m, nil
}

// NumClasses returns the number of classes the model was fit on.
func (m *Model) NumClasses() int {
	return m.classes
}

// PredictRow returns the predicted class index of a single feature vector.
func (m *Model) PredictRow(row []float64) int {
	best := 0
	bestScore := math.Inf(-1)
	for k := 0; k < m.classes; k++ {
		score := m.prior[k]
		for _, trees := range m.rounds {
			score += m.rate * trees[k].predict(row)
		}
		if score > bestScore {
			best = k
			bestScore = score
		}
	}
	return best
}

// Predict returns the predicted class index for every row of x.
func (m *Model) Predict(x *mat.Dense) []int {
	rows, _ := x.Dims()
	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		out[i] = m.PredictRow(mat.Row(nil, i, x))
	}
	return out
}

// Score returns the classification accuracy, the fraction of rows whose
// predicted class exactly matches y, as a value in [0,1].
func (m *Model) Score(x *mat.Dense, y []int) (float64, error) {
	rows, _ := x.Dims()
	if rows == 0 {
		return 0, fmt.Errorf("empty scoring matrix: %w", wavefeat.ErrInvalidInput)
	}
	if rows != len(y) {
		return 0, fmt.Errorf("matrix has %d rows but %d labels: %w", rows, len(y), wavefeat.ErrInvalidInput)
	}

	correct := 0
	for i, pred := range m.Predict(x) {
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(rows), nil
}

// softmax writes the softmax of scores into out, shifting by the maximum
// for numerical stability.
func softmax(scores, out []float64) {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}
	sum := 0.0
	for i, s := range scores {
		out[i] = math.Exp(s - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
}
