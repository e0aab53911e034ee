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
	"gonum.org/v1/gonum/stat"
)

// ZeroCrossings counts the adjacent-pair transitions of xs across zero,
// where a sample is on the positive side iff it is > 0. The count is in
// [0, len(xs)-1].
func ZeroCrossings(xs []float64) int {
	return crossings(xs, 0)
}

// MeanCrossings counts the adjacent-pair transitions of xs across its own
// mean, using the same transition rule as ZeroCrossings. NaN samples are
// excluded from the mean but still participate in the transition scan.
func MeanCrossings(xs []float64) int {
	clean := dropNaN(xs)
	if len(clean) == 0 {
		return 0
	}
	return crossings(xs, stat.Mean(clean, nil))
}

func crossings(xs []float64, level float64) int {
	count := 0
	for i := 1; i < len(xs); i++ {
		if (xs[i-1] > level) != (xs[i] > level) {
			count++
		}
	}
	return count
}
