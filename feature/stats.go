// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package feature derives fixed-schema numeric descriptors from wavelet
// coefficient bands: Shannon entropy, crossing counts, and a statistical
// summary, concatenated per band into one feature vector per signal.
package feature

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/openecg/wavefeat"
)

// Summary is the fixed statistical descriptor of a sequence. All entries
// are computed over the non-NaN samples only; NaN values are excluded from
// every reduction rather than propagated.
type Summary struct {
	P5     float64 // 5th percentile
	P25    float64 // 25th percentile
	P75    float64 // 75th percentile
	P95    float64 // 95th percentile
	Median float64
	Mean   float64
	Std    float64 // population standard deviation
	Var    float64 // population variance
	RMS    float64 // root mean square
}

// Slice returns the summary in its schema order:
// p5, p25, p75, p95, median, mean, std, variance, rms.
func (s Summary) Slice() []float64 {
	return []float64{s.P5, s.P25, s.P75, s.P95, s.Median, s.Mean, s.Std, s.Var, s.RMS}
}

// Summarize computes the statistical summary of xs. It fails with
// ErrInvalidInput when xs is empty or contains no finite values.
func Summarize(xs []float64) (Summary, error) {
	clean := dropNaN(xs)
	if len(clean) == 0 {
		return Summary{}, fmt.Errorf("statistical summary of empty sequence: %w", wavefeat.ErrInvalidInput)
	}

	sorted := make([]float64, len(clean))
	copy(sorted, clean)
	sort.Float64s(sorted)

	mean := stat.Mean(clean, nil)
	// Second moments about the mean and about zero give the population
	// variance and the mean square.
	variance := stat.MomentAbout(2, clean, mean, nil)
	meanSquare := stat.MomentAbout(2, clean, 0, nil)

	return Summary{
		P5:     percentile(sorted, 5),
		P25:    percentile(sorted, 25),
		P75:    percentile(sorted, 75),
		P95:    percentile(sorted, 95),
		Median: percentile(sorted, 50),
		Mean:   mean,
		Std:    math.Sqrt(variance),
		Var:    variance,
		RMS:    math.Sqrt(meanSquare),
	}, nil
}

// percentile interpolates linearly between order statistics of an already
// sorted, NaN-free, non-empty sequence.
func percentile(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// dropNaN returns xs without NaN entries. The input is returned as-is when
// it is already clean.
func dropNaN(xs []float64) []float64 {
	clean := xs
	for i, v := range xs {
		if math.IsNaN(v) {
			clean = make([]float64, 0, len(xs)-1)
			clean = append(clean, xs[:i]...)
			for _, u := range xs[i+1:] {
				if !math.IsNaN(u) {
					clean = append(clean, u)
				}
			}
			break
		}
	}
	return clean
}
