// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dataset

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/openecg/wavefeat"
)

// Split holds the train/test partition of a feature matrix and its class
// vector. Either side may be empty.
type Split struct {
	XTrain *mat.Dense
	YTrain []int
	XTest  *mat.Dense
	YTest  []int
}

// SplitBernoulli partitions rows by an independent uniform draw per row:
// a row joins the train set when the draw is below ratio. Split sizes are
// therefore random; callers must not assume |train|/|total| equals ratio,
// and class balance between the sides is not guaranteed. rng must not be
// nil.
func SplitBernoulli(x *mat.Dense, y []int, ratio float64, rng *rand.Rand) (*Split, error) {
	if err := checkSplitArgs(x, y, ratio); err != nil {
		return nil, err
	}

	train := make([]int, 0, len(y))
	test := make([]int, 0, len(y))
	for i := range y {
		if rng.Float64() < ratio {
			train = append(train, i)
		} else {
			test = append(test, i)
		}
	}
	return take(x, y, train, test), nil
}

// SplitStratified partitions rows so that each class contributes
// round(ratio * count) rows to the train set, drawn in shuffled order.
// This deviates from the Bernoulli split: sizes are exact per class and
// class balance is preserved, at the cost of behavioral parity with the
// per-row draw.
func SplitStratified(x *mat.Dense, y []int, ratio float64, rng *rand.Rand) (*Split, error) {
	if err := checkSplitArgs(x, y, ratio); err != nil {
		return nil, err
	}

	byClass := make(map[int][]int)
	classes := make([]int, 0)
	for i, c := range y {
		if _, ok := byClass[c]; !ok {
			classes = append(classes, c)
		}
		byClass[c] = append(byClass[c], i)
	}

	train := make([]int, 0, len(y))
	test := make([]int, 0, len(y))
	for _, c := range classes {
		rows := byClass[c]
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		cut := int(ratio*float64(len(rows)) + 0.5)
		train = append(train, rows[:cut]...)
		test = append(test, rows[cut:]...)
	}
	return take(x, y, train, test), nil
}

func checkSplitArgs(x *mat.Dense, y []int, ratio float64) error {
	rows, _ := x.Dims()
	if rows != len(y) {
		return fmt.Errorf("matrix has %d rows but %d labels: %w", rows, len(y), wavefeat.ErrInvalidInput)
	}
	if ratio <= 0 || ratio >= 1 {
		return fmt.Errorf("split ratio %v outside (0,1): %w", ratio, wavefeat.ErrInvalidInput)
	}
	return nil
}

// take materializes the two sides of a partition from row index sets.
func take(x *mat.Dense, y []int, train, test []int) *Split {
	_, cols := x.Dims()
	pick := func(rows []int) (*mat.Dense, []int) {
		if len(rows) == 0 {
			return nil, nil
		}
		m := mat.NewDense(len(rows), cols, nil)
		labels := make([]int, len(rows))
		for i, r := range rows {
			m.SetRow(i, mat.Row(nil, r, x))
			labels[i] = y[r]
		}
		return m, labels
	}

	s := &Split{}
	s.XTrain, s.YTrain = pick(train)
	s.XTest, s.YTest = pick(test)
	return s
}
