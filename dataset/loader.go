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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/openecg/wavefeat"
	"github.com/openecg/wavefeat/edf"
)

// LoadDir reads every EDF recording under root. The name of a file's
// immediate parent directory is its class label, so a dataset laid out as
//
//	root/normal/a.edf
//	root/normal/b.edf
//	root/afib/c.edf
//
// yields classes "normal" and "afib". The walk is lexical, which makes the
// class-index assignment deterministic for a given tree. Every signal in a
// file becomes one channel of the recording.
func LoadDir(root string) (*Dataset, error) {
	d := New()
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".edf") {
			return nil
		}

		label := filepath.Base(filepath.Dir(path))
		if filepath.Clean(filepath.Dir(path)) == filepath.Clean(root) {
			return fmt.Errorf("recording %s is not inside a class directory: %w", path, wavefeat.ErrDataFormat)
		}

		channels, err := LoadFile(path)
		if err != nil {
			return err
		}
		d.Add(label, channels)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if d.Len() == 0 {
		return nil, fmt.Errorf("no EDF recordings under %s: %w", root, wavefeat.ErrInvalidInput)
	}
	return d, nil
}

// LoadFile reads all signals of one EDF recording as channels.
func LoadFile(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	er, err := edf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	hdr := er.Header()
	if hdr.SignalCount == 0 {
		return nil, fmt.Errorf("recording %s has no signals: %w", path, wavefeat.ErrDataFormat)
	}

	channels := make([][]float64, hdr.SignalCount)
	for i := range channels {
		sr, err := er.Signal(i)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		channels[i], err = sr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("error reading %s signal %d: %w", path, i, err)
		}
	}
	return channels, nil
}
