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

	"gonum.org/v1/gonum/mat"

	"github.com/openecg/wavefeat"
	"github.com/openecg/wavefeat/feature"
	"github.com/openecg/wavefeat/wavelet"
)

// Matrix extracts the feature vector of every recording and assembles the
// dataset-wide feature matrix plus the class-index vector, row i matching
// recording i. Every recording must produce a vector of the same length
// (same wavelet, level, channel count and signal length); a recording that
// breaks the schema fails the whole assembly.
func Matrix(d *Dataset, w wavelet.Wavelet, level int) (*mat.Dense, []int, error) {
	if d.Len() == 0 {
		return nil, nil, fmt.Errorf("empty dataset: %w", wavefeat.ErrInvalidInput)
	}

	var x *mat.Dense
	y := make([]int, d.Len())
	cols := 0
	for i := 0; i < d.Len(); i++ {
		rec := d.Record(i)
		vec, err := feature.Vector(rec.Channels, w, level)
		if err != nil {
			return nil, nil, fmt.Errorf("recording %d (%s): %w", i, rec.Label, err)
		}

		if x == nil {
			cols = len(vec)
			x = mat.NewDense(d.Len(), cols, nil)
		} else if len(vec) != cols {
			return nil, nil, fmt.Errorf("recording %d (%s) yields %d features, want %d: %w",
				i, rec.Label, len(vec), cols, wavefeat.ErrInvalidInput)
		}
		x.SetRow(i, vec)

		class, ok := d.ClassIndex(rec.Label)
		if !ok {
			return nil, nil, fmt.Errorf("recording %d has unregistered label %q: %w", i, rec.Label, wavefeat.ErrInvalidInput)
		}
		y[i] = class
	}
	return x, y, nil
}
