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

	"github.com/openecg/wavefeat"
	"github.com/openecg/wavefeat/wavelet"
)

// PerBand is the number of scalars contributed by one coefficient band:
// entropy, zero-crossings, mean-crossings, then the nine summary
// statistics.
const PerBand = 12

// Band computes the descriptor of a single coefficient band in schema
// order: entropy, zero-crossings, mean-crossings, p5, p25, p75, p95,
// median, mean, std, variance, rms.
func Band(band []float64) ([]float64, error) {
	h, err := Entropy(band)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(band)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, PerBand)
	out = append(out, h, float64(ZeroCrossings(band)), float64(MeanCrossings(band)))
	return append(out, summary.Slice()...), nil
}

// Vector assembles the full feature vector of a multi-channel signal:
// each channel is decomposed independently with the same wavelet and
// level, and band descriptors are concatenated channel-major, band-minor
// (coarsest band first). The resulting layout is identical for every
// signal sharing wavelet, level and channel count, so feature columns stay
// aligned dataset-wide.
func Vector(channels [][]float64, w wavelet.Wavelet, level int) ([]float64, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("signal with no channels: %w", wavefeat.ErrInvalidInput)
	}

	var vec []float64
	for ci, channel := range channels {
		bands, err := wavelet.Wavedec(channel, w, level)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ci, err)
		}
		if vec == nil {
			vec = make([]float64, 0, len(channels)*len(bands)*PerBand)
		}
		for bi, band := range bands {
			desc, err := Band(band)
			if err != nil {
				return nil, fmt.Errorf("channel %d band %d: %w", ci, bi, err)
			}
			vec = append(vec, desc...)
		}
	}
	return vec, nil
}
