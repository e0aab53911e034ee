// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package wavelet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/openecg/wavefeat"
)

// MaxLevel returns the deepest useful decomposition level for a signal of n
// samples and a filter of the given length: floor(log2(n/(L-1))). It is 0
// when the signal is too short for even one level.
func MaxLevel(n, filterLen int) int {
	if filterLen <= 1 || n < filterLen-1 {
		return 0
	}
	return int(math.Log2(float64(n) / float64(filterLen-1)))
}

// Dwt performs a single decomposition step with symmetric boundary
// extension, returning the approximation and detail coefficients. Both
// outputs have length floor((len(x)+L-1)/2).
func Dwt(x []float64, w Wavelet) (approx, detail []float64) {
	l := w.Len()
	outLen := (len(x) + l - 1) / 2

	approx = make([]float64, outLen)
	detail = make([]float64, outLen)
	window := make([]float64, l)
	for i := 0; i < outLen; i++ {
		for j := 0; j < l; j++ {
			window[j] = x[symmetricIndex(2*i+1-j, len(x))]
		}
		approx[i] = floats.Dot(w.DecLo, window)
		detail[i] = floats.Dot(w.DecHi, window)
	}
	return approx, detail
}

// symmetricIndex folds an out-of-range index back into [0,n) by half-sample
// symmetric reflection ( ... x1 x0 | x0 x1 ... xn-1 | xn-1 ... ), the
// extension mode used throughout.
func symmetricIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i = ((i % period) + period) % period
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// Wavedec performs a multilevel decomposition of x. With level <= 0 the
// maximum level supported by the signal length and filter length is used;
// an explicit level deeper than that is clamped to it. Bands are ordered
// coarsest first: [cA_n, cD_n, ..., cD_1].
//
// The band count and every band's length are deterministic functions of
// len(x), the wavelet, and the level.
func Wavedec(x []float64, w Wavelet, level int) ([][]float64, error) {
	if len(x) < w.Len() {
		return nil, fmt.Errorf("signal of %d samples is shorter than %s filter (%d taps): %w",
			len(x), w.Name, w.Len(), wavefeat.ErrInvalidInput)
	}

	maxLevel := MaxLevel(len(x), w.Len())
	if maxLevel < 1 {
		maxLevel = 1
	}
	if level <= 0 || level > maxLevel {
		level = maxLevel
	}

	bands := make([][]float64, level+1)
	approx := x
	for lv := 0; lv < level; lv++ {
		cA, cD := Dwt(approx, w)
		bands[level-lv] = cD
		approx = cA
	}
	bands[0] = approx
	return bands, nil
}
