// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package wavefeat defines the error taxonomy shared by the wavefeat
// packages. Errors are detected at the point of first use and wrap one of
// the sentinels below, so callers can classify failures with errors.Is.
package wavefeat

import "errors"

var (
	// ErrInvalidInput reports an argument that cannot be processed: an
	// empty sequence, a signal shorter than the wavelet filter, an unknown
	// wavelet name, or a split ratio outside (0,1).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataFormat reports a malformed source file, such as an EDF
	// recording with missing or unparseable header fields.
	ErrDataFormat = errors.New("malformed data")
)
