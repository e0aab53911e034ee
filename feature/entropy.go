// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package feature

import (
	"fmt"
	"math"

	"github.com/openecg/wavefeat"
)

// Entropy computes the Shannon entropy (natural log) of the empirical
// distribution of distinct values in xs: each distinct value is one
// category with its relative frequency as probability. A constant sequence
// yields 0; a sequence of all-distinct values yields log(len(xs)).
//
// It fails with ErrInvalidInput on an empty sequence.
func Entropy(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("entropy of empty sequence: %w", wavefeat.ErrInvalidInput)
	}

	counts := make(map[float64]int, len(xs))
	for _, v := range xs {
		counts[v]++
	}

	n := float64(len(xs))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log(p)
	}
	// NaN map keys never compare equal, so each NaN sample lands in its
	// own bucket with count 1 and contributes log(n)/n like any other
	// singleton.
	if h < 0 {
		h = 0 // guard against -0 from rounding
	}
	return h, nil
}
