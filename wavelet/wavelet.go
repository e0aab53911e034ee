// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package wavelet provides orthogonal wavelet filter banks and the
// multilevel discrete wavelet transform used by the feature extractor.
//
// This package provides the analysis (decomposition) side only; the
// synthesis filters are not needed to derive features and are omitted.
package wavelet

import (
	"fmt"

	"github.com/openecg/wavefeat"
)

// Wavelet is the analysis filter bank of an orthogonal wavelet.
type Wavelet struct {
	Name  string
	DecLo []float64 // low-pass (approximation) decomposition filter
	DecHi []float64 // high-pass (detail) decomposition filter
}

// Len returns the filter length.
func (w Wavelet) Len() int {
	return len(w.DecLo)
}

// Scaling filter coefficients in decomposition order. The high-pass filter
// is derived by the quadrature mirror relation at registration time.
var decLo = map[string][]float64{
	"haar": {
		0.7071067811865476, 0.7071067811865476,
	},
	"db2": {
		-0.12940952255092145, 0.22414386804185735,
		0.8365163037378079, 0.48296291314469025,
	},
	"db3": {
		0.035226291882100656, -0.08544127388224149,
		-0.13501102001039084, 0.4598775021193313,
		0.8068915093133388, 0.3326705529509569,
	},
	"db4": {
		-0.010597401784997278, 0.032883011666982945,
		0.030841381835986965, -0.18703481171888114,
		-0.02798376941698385, 0.6308807679295904,
		0.7148465705525415, 0.2303778133088552,
	},
	"sym4": {
		-0.07576571478927333, -0.02963552764599851,
		0.49761866763201545, 0.8037387518059161,
		0.29785779560527736, -0.09921954357684722,
		-0.012603967262037833, 0.0322231006040427,
	},
	"sym5": {
		0.027333068345077982, 0.029519490925774643,
		-0.039134249302383094, 0.1993975339773936,
		0.7234076904024206, 0.6339789634582119,
		0.01660210576452232, -0.17532808990845047,
		-0.021101834024758855, 0.019538882735286728,
	},
	"coif1": {
		-0.01565572813546454, -0.0727326195128539,
		0.38486484686420286, 0.8525720202122554,
		0.3378976624578092, -0.0727326195128539,
	},
}

// Lookup resolves a wavelet by name. "db1" is an alias for "haar". An
// unrecognized name fails with ErrInvalidInput.
func Lookup(name string) (Wavelet, error) {
	key := name
	if key == "db1" {
		key = "haar"
	}
	lo, ok := decLo[key]
	if !ok {
		return Wavelet{}, fmt.Errorf("unknown wavelet %q: %w", name, wavefeat.ErrInvalidInput)
	}
	return Wavelet{Name: name, DecLo: lo, DecHi: qmf(lo)}, nil
}

// Names lists the supported wavelet names.
func Names() []string {
	return []string{"haar", "db1", "db2", "db3", "db4", "sym4", "sym5", "coif1"}
}

// qmf derives the high-pass decomposition filter from the low-pass one via
// the quadrature mirror relation hi[k] = (-1)^(k+1) lo[L-1-k].
func qmf(lo []float64) []float64 {
	hi := make([]float64, len(lo))
	for k := range lo {
		v := lo[len(lo)-1-k]
		if k%2 == 0 {
			v = -v
		}
		hi[k] = v
	}
	return hi
}
