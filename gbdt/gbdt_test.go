// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gbdt_test

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/openecg/wavefeat"
	"github.com/openecg/wavefeat/gbdt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable builds a trivially separable two-class dataset: class 0 sits
// left of the origin on the first feature, class 1 right of it.
func separable(rows int, rng *rand.Rand) (*mat.Dense, []int) {
	x := mat.NewDense(rows, 3, nil)
	y := make([]int, rows)
	for i := 0; i < rows; i++ {
		class := i % 2
		offset := -2.0
		if class == 1 {
			offset = 2.0
		}
		x.Set(i, 0, offset+rng.NormFloat64()*0.3)
		x.Set(i, 1, rng.NormFloat64())
		x.Set(i, 2, rng.NormFloat64())
		y[i] = class
	}
	return x, y
}

func TestFitSeparable(t *testing.T) {
	x, y := separable(60, rand.New(rand.NewSource(42)))

	model, err := gbdt.Fit(x, y, gbdt.Config{Trees: 50})
	require.NoError(t, err)
	require.Equal(t, 2, model.NumClasses())

	// A boosted ensemble must fit a separable training set exactly.
	acc, err := model.Score(x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)
}

func TestFitThreeClasses(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const rows = 90
	x := mat.NewDense(rows, 2, nil)
	y := make([]int, rows)
	for i := 0; i < rows; i++ {
		class := i % 3
		x.Set(i, 0, float64(class)*4+rng.NormFloat64()*0.4)
		x.Set(i, 1, rng.NormFloat64())
		y[i] = class
	}

	model, err := gbdt.Fit(x, y, gbdt.Config{Trees: 80})
	require.NoError(t, err)
	require.Equal(t, 3, model.NumClasses())

	acc, err := model.Score(x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	preds := model.Predict(x)
	require.Len(t, preds, rows)
	assert.Equal(t, y[0], preds[0])
}

func TestPredictDeterministic(t *testing.T) {
	x, y := separable(40, rand.New(rand.NewSource(3)))
	model, err := gbdt.Fit(x, y, gbdt.Config{Trees: 20})
	require.NoError(t, err)

	first := model.Predict(x)
	second := model.Predict(x)
	assert.Equal(t, first, second)
}

func TestFitValidation(t *testing.T) {
	x, y := separable(10, rand.New(rand.NewSource(1)))

	_, err := gbdt.Fit(x, y[:5], gbdt.Config{})
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)

	_, err = gbdt.Fit(mat.NewDense(1, 1, nil), []int{0}, gbdt.Config{})
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)

	// Class indices must be contiguous from zero.
	_, err = gbdt.Fit(x, []int{0, 2, 0, 2, 0, 2, 0, 2, 0, 2}, gbdt.Config{Trees: 5})
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)

	model, err := gbdt.Fit(x, y, gbdt.Config{Trees: 5})
	require.NoError(t, err)
	_, err = model.Score(x, y[:5])
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
}
