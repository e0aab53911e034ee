// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package dataset loads labeled multi-channel recordings, assembles their
// feature matrices, and partitions rows into train/test subsets.
package dataset

// Record is one labeled multi-channel signal. Channels share a sample
// index; a single-channel recording has one channel.
type Record struct {
	Label    string
	Channels [][]float64
}

// Dataset is an ordered collection of labeled recordings. Class indices
// are assigned to labels in insertion order and are stable for the
// lifetime of the dataset; this ordering is what keeps label encodings
// consistent within a run.
type Dataset struct {
	records []Record
	labels  []string
	index   map[string]int
}

// New returns an empty dataset.
func New() *Dataset {
	return &Dataset{index: make(map[string]int)}
}

// Add appends a recording. A label seen for the first time is assigned the
// next class index.
func (d *Dataset) Add(label string, channels [][]float64) {
	if _, ok := d.index[label]; !ok {
		d.index[label] = len(d.labels)
		d.labels = append(d.labels, label)
	}
	d.records = append(d.records, Record{Label: label, Channels: channels})
}

// Len returns the number of recordings.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the i-th recording in insertion order.
func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Classes returns the labels in class-index order.
func (d *Dataset) Classes() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// ClassIndex returns the class index of a label.
func (d *Dataset) ClassIndex(label string) (int, bool) {
	i, ok := d.index[label]
	return i, ok
}
