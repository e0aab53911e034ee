// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package feature_test

import (
	"math"
	"testing"

	"github.com/openecg/wavefeat"
	"github.com/openecg/wavefeat/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropy(t *testing.T) {
	// Constant sequence carries no information.
	h, err := feature.Entropy([]float64{2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, h)

	// All-distinct values reach the maximum log(n).
	h, err = feature.Entropy([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(5), h, 1e-12)

	// Two equally likely values: log(2).
	h, err = feature.Entropy([]float64{0, 1, 0, 1})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(2), h, 1e-12)

	_, err = feature.Entropy(nil)
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
}

func TestEntropyNonNegative(t *testing.T) {
	seqs := [][]float64{
		{0},
		{-1, -1, 5},
		{0.1, 0.2, 0.1, 0.3, 0.2},
		{math.NaN(), 1, 1},
	}
	for _, xs := range seqs {
		h, err := feature.Entropy(xs)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, h, 0.0)
	}
}

func TestCrossings(t *testing.T) {
	assert.Equal(t, 2, feature.ZeroCrossings([]float64{1, -1, 1}))
	assert.Equal(t, 0, feature.ZeroCrossings([]float64{1, 2, 3}))
	// Zero itself sits on the non-positive side.
	assert.Equal(t, 1, feature.ZeroCrossings([]float64{0, 1}))
	assert.Equal(t, 0, feature.ZeroCrossings([]float64{5}))
	assert.Equal(t, 0, feature.ZeroCrossings(nil))

	// Mean of {0,10} is 5: both adjacent pairs cross it.
	assert.Equal(t, 1, feature.MeanCrossings([]float64{0, 10}))
	assert.Equal(t, 3, feature.MeanCrossings([]float64{0, 10, 0, 10}))
	assert.Equal(t, 0, feature.MeanCrossings([]float64{7, 7, 7}))
}

func TestCrossingsBounded(t *testing.T) {
	xs := []float64{3, -2, 7, 0, -4, 4, 4, -9, 1}
	for _, count := range []int{feature.ZeroCrossings(xs), feature.MeanCrossings(xs)} {
		assert.GreaterOrEqual(t, count, 0)
		assert.LessOrEqual(t, count, len(xs)-1)
	}
}

func TestSummarize(t *testing.T) {
	s, err := feature.Summarize([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	// Population variance of {1,2,3,4} is 1.25.
	assert.InDelta(t, 1.25, s.Var, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), s.Std, 1e-12)
	assert.InDelta(t, math.Sqrt(7.5), s.RMS, 1e-12)
	// Linear interpolation between order statistics.
	assert.InDelta(t, 1.75, s.P25, 1e-12)
	assert.InDelta(t, 3.25, s.P75, 1e-12)

	require.Len(t, s.Slice(), 9)
}

func TestSummarizePercentilesOrdered(t *testing.T) {
	xs := []float64{0.3, -2.5, 14, 7, 7, -0.01, 3.3, 9, -8, 2}
	s, err := feature.Summarize(xs)
	require.NoError(t, err)

	assert.LessOrEqual(t, s.P5, s.P25)
	assert.LessOrEqual(t, s.P25, s.Median)
	assert.LessOrEqual(t, s.Median, s.P75)
	assert.LessOrEqual(t, s.P75, s.P95)
}

func TestSummarizeIgnoresNaN(t *testing.T) {
	clean, err := feature.Summarize([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	noisy, err := feature.Summarize([]float64{1, math.NaN(), 2, 3, math.NaN(), 4})
	require.NoError(t, err)

	assert.Equal(t, clean, noisy)

	_, err = feature.Summarize([]float64{math.NaN(), math.NaN()})
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
	_, err = feature.Summarize(nil)
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
}

func TestBandSchema(t *testing.T) {
	desc, err := feature.Band([]float64{0.5, -1, 2, 0.5})
	require.NoError(t, err)
	require.Len(t, desc, feature.PerBand)

	// entropy, zero-crossings, mean-crossings lead the descriptor.
	assert.InDelta(t, -(0.5*math.Log(0.5) + 0.25*math.Log(0.25)*2), desc[0], 1e-12)
	assert.Equal(t, 2.0, desc[1])

	_, err = feature.Band(nil)
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
}
