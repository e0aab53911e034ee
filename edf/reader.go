// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package edf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/openecg/wavefeat"
)

// Reader reads EDF/EDF+ files.
type Reader struct {
	r   io.ReadSeeker
	hdr *Header
}

// fields consumes the fixed-width ASCII fields of an EDF header in order.
type fields struct {
	r   *bufio.Reader
	err error
}

func (f *fields) str(width int) string {
	if f.err != nil {
		return ""
	}
	b := make([]byte, width)
	if _, err := io.ReadFull(f.r, b); err != nil {
		f.err = fmt.Errorf("error reading header: %w", err)
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (f *fields) int(width int, name string) int {
	s := f.str(width)
	if f.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.err = fmt.Errorf("error parsing %s %q: %w", name, s, wavefeat.ErrDataFormat)
		return 0
	}
	return v
}

func (f *fields) float(width int, name string) float64 {
	s := f.str(width)
	if f.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.err = fmt.Errorf("error parsing %s %q: %w", name, s, wavefeat.ErrDataFormat)
		return 0
	}
	return v
}

// Open opens an EDF/EDF+ file for reading and parses its header.
func Open(r io.ReadSeeker) (*Reader, error) {
	f := &fields{r: bufio.NewReader(r)}

	hdr := &Header{}
	hdr.Version = Version(f.str(8))
	hdr.PatientID = f.str(80)
	hdr.RecordingID = f.str(80)
	dateStr := f.str(8)
	timeStr := f.str(8)
	hdr.HeaderBytes = f.int(8, "header bytes")
	f.str(44) // reserved
	hdr.DataRecords = f.int(8, "data record count")
	recordSeconds := f.str(8)
	hdr.SignalCount = f.int(4, "signal count")
	if f.err != nil {
		return nil, f.err
	}
	if hdr.SignalCount < 0 {
		return nil, fmt.Errorf("negative signal count %d: %w", hdr.SignalCount, wavefeat.ErrDataFormat)
	}

	startDate, err := time.Parse("02.01.06", dateStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing start date %q: %w", dateStr, wavefeat.ErrDataFormat)
	}
	startTime, err := time.Parse("15.04.05", timeStr)
	if err != nil {
		return nil, fmt.Errorf("error parsing start time %q: %w", timeStr, wavefeat.ErrDataFormat)
	}
	hdr.StartTime = time.Date(startDate.Year(), startDate.Month(), startDate.Day(),
		startTime.Hour(), startTime.Minute(), startTime.Second(), 0, time.UTC)

	hdr.DataRecordDuration, err = time.ParseDuration(recordSeconds + "s")
	if err != nil {
		return nil, fmt.Errorf("error parsing data record duration %q: %w", recordSeconds, wavefeat.ErrDataFormat)
	}

	// The signal headers are stored transposed: all labels, then all
	// transducer types, and so on.
	hdr.Signals = make([]Signal, hdr.SignalCount)
	for _, col := range []struct {
		width int
		name  string
		set   func(*Signal, *fields, int, string)
	}{
		{16, "label", func(s *Signal, f *fields, w int, _ string) { s.Label = f.str(w) }},
		{80, "transducer type", func(s *Signal, f *fields, w int, _ string) { s.TransducerType = f.str(w) }},
		{8, "physical dimension", func(s *Signal, f *fields, w int, _ string) { s.PhysicalDimension = f.str(w) }},
		{8, "physical minimum", func(s *Signal, f *fields, w int, n string) { s.PhysicalMin = f.float(w, n) }},
		{8, "physical maximum", func(s *Signal, f *fields, w int, n string) { s.PhysicalMax = f.float(w, n) }},
		{8, "digital minimum", func(s *Signal, f *fields, w int, n string) { s.DigitalMin = f.int(w, n) }},
		{8, "digital maximum", func(s *Signal, f *fields, w int, n string) { s.DigitalMax = f.int(w, n) }},
		{80, "prefiltering", func(s *Signal, f *fields, w int, _ string) { s.Prefiltering = f.str(w) }},
		{8, "samples per record", func(s *Signal, f *fields, w int, n string) { s.SamplesPerRecord = f.int(w, n) }},
		{32, "reserved", func(s *Signal, f *fields, w int, _ string) { s.Reserved = f.str(w) }},
	} {
		for i := range hdr.Signals {
			col.set(&hdr.Signals[i], f, col.width, col.name)
		}
	}
	if f.err != nil {
		return nil, f.err
	}

	return &Reader{r: r, hdr: hdr}, nil
}

// Header returns the parsed file header.
func (er *Reader) Header() *Header {
	return er.hdr
}

// SignalReader reads continuous signal data from an EDF/EDF+ file.
type SignalReader struct {
	r                io.ReadSeeker
	hdr              *Header
	signalIndex      int // Index of the signal to read
	currentRecord    int // Current record being processed
	currentSample    int // Current sample in the record
	recordSize       int // Total size of one data record
	signalOffset     int // Byte offset of the signal in a record
	samplesPerRecord int // Number of samples per record for the signal
	buf              []byte
}

// Signal creates a new SignalReader for a specified signal index.
func (er *Reader) Signal(signalIndex int) (*SignalReader, error) {
	if signalIndex < 0 || signalIndex >= len(er.hdr.Signals) {
		return nil, fmt.Errorf("signal index %d out of range: %w", signalIndex, wavefeat.ErrInvalidInput)
	}

	recordSize := 0
	signalOffset := 0
	for i, sig := range er.hdr.Signals {
		if i < signalIndex {
			signalOffset += sig.SamplesPerRecord * 2
		}
		recordSize += sig.SamplesPerRecord * 2
	}

	spr := er.hdr.Signals[signalIndex].SamplesPerRecord
	return &SignalReader{
		r:                er.r,
		hdr:              er.hdr,
		signalIndex:      signalIndex,
		recordSize:       recordSize,
		signalOffset:     signalOffset,
		samplesPerRecord: spr,
		buf:              make([]byte, spr*2),
	}, nil
}

// Samples returns the total number of samples stored for the signal, or -1
// if the number of data records is unknown.
func (sr *SignalReader) Samples() int {
	if sr.hdr.DataRecords < 0 {
		return -1
	}
	return sr.hdr.DataRecords * sr.samplesPerRecord
}

// Read fills the provided float64 slice with the physical values from the
// signal. Samples are decoded one data record at a time.
func (sr *SignalReader) Read(data []float64) (int, error) {
	signal := sr.hdr.Signals[sr.signalIndex]

	n := 0
	for n < len(data) {
		if sr.currentRecord >= sr.hdr.DataRecords {
			return n, io.EOF // End of data records
		}

		// Load the signal's chunk of the current data record.
		if sr.currentSample == 0 {
			pos := int64(sr.hdr.HeaderBytes) + int64(sr.currentRecord)*int64(sr.recordSize) + int64(sr.signalOffset)
			if _, err := sr.r.Seek(pos, io.SeekStart); err != nil {
				return n, fmt.Errorf("error seeking to record %d: %w", sr.currentRecord, err)
			}
			if _, err := io.ReadFull(sr.r, sr.buf); err != nil {
				return n, fmt.Errorf("error reading sample data: %w", err)
			}
		}

		for sr.currentSample < sr.samplesPerRecord && n < len(data) {
			digital := int16(binary.LittleEndian.Uint16(sr.buf[sr.currentSample*2:]))
			data[n] = convertDigitalToPhysical(digital, signal.DigitalMin, signal.DigitalMax, signal.PhysicalMin, signal.PhysicalMax)
			n++
			sr.currentSample++
		}

		if sr.currentSample >= sr.samplesPerRecord {
			sr.currentSample = 0
			sr.currentRecord++
		}
	}

	return n, nil
}

// ReadAll reads every remaining sample of the signal. It fails if the data
// record count is unknown.
func (sr *SignalReader) ReadAll() ([]float64, error) {
	total := sr.Samples()
	if total < 0 {
		return nil, fmt.Errorf("unknown data record count: %w", wavefeat.ErrDataFormat)
	}
	remaining := total - sr.currentRecord*sr.samplesPerRecord - sr.currentSample

	data := make([]float64, remaining)
	if _, err := sr.Read(data); err != nil && err != io.EOF {
		return nil, err
	}
	return data, nil
}

// convertDigitalToPhysical converts a digital value from the data record to a physical value using the calibration factors.
func convertDigitalToPhysical(digital int16, dmin, dmax int, pmin, pmax float64) float64 {
	if dmax == dmin {
		return 0 // Avoid division by zero
	}
	return pmin + (float64(digital)-float64(dmin))*(pmax-pmin)/float64(dmax-dmin)
}
