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
	"math"
)

// Writer writes EDF files. The dataset loader's tests and the recording
// tooling use it to synthesize EDF fixtures.
type Writer struct {
	w           io.WriteSeeker
	hdr         *Header
	dataRecords int // Number of data records written so far.
}

// Create creates a new EDF writer that writes to the given writer.
func Create(w io.WriteSeeker, hdr Header) (*Writer, error) {
	hdr.DataRecords = -1 // Unknown number of data records (at this time).

	ew := &Writer{w: w, hdr: &hdr}

	// Write the initial header
	if err := ew.writeHeader(); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	return ew, nil
}

// Close finalizes the EDF file by updating the header with the total number of data records.
func (ew *Writer) Close() error {
	ew.hdr.DataRecords = ew.dataRecords
	if err := ew.writeHeader(); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	return nil
}

// WriteRecord writes a single data record to the EDF file.
func (ew *Writer) WriteRecord(signals [][]float64) error {
	if len(signals) != ew.hdr.SignalCount {
		return fmt.Errorf("expected %d signals, got %d", ew.hdr.SignalCount, len(signals))
	}

	var totalSamples int
	for _, signal := range signals {
		totalSamples += len(signal)
	}

	// As recommended by the EDF standard.
	if totalSamples*2 > 61440 {
		return fmt.Errorf("data record too large: %d bytes, max is 61440 bytes", totalSamples*2)
	}

	writer := bufio.NewWriter(ew.w)

	for i := 0; i < ew.hdr.SignalCount; i++ {
		signal := ew.hdr.Signals[i]
		for _, sample := range signals[i] {
			digitalValue := convertPhysicalToDigital(sample, signal.PhysicalMin, signal.PhysicalMax, signal.DigitalMin, signal.DigitalMax)
			if err := binary.Write(writer, binary.LittleEndian, int16(digitalValue)); err != nil {
				return err
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return err
	}

	ew.dataRecords++
	return nil
}

// writeHeader writes (or rewrites) the fixed-width EDF header.
func (ew *Writer) writeHeader() error {
	// Rewind to the beginning of the file.
	if _, err := ew.w.Seek(0, io.SeekStart); err != nil {
		return err
	}

	ew.hdr.HeaderBytes = 256 + (ew.hdr.SignalCount * 256)

	writer := bufio.NewWriter(ew.w)
	for _, field := range []string{
		fmt.Sprintf("%-8s", ew.hdr.Version),
		fmt.Sprintf("%-80s", ew.hdr.PatientID),
		fmt.Sprintf("%-80s", ew.hdr.RecordingID),
		fmt.Sprintf("%-8s", ew.hdr.StartTime.Format("02.01.06")),
		fmt.Sprintf("%-8s", ew.hdr.StartTime.Format("15.04.05")),
		fmt.Sprintf("%-8d", ew.hdr.HeaderBytes),
		fmt.Sprintf("%-44s", ""), // reserved
		fmt.Sprintf("%-8d", ew.hdr.DataRecords),
		fmt.Sprintf("%-8d", int(math.Ceil(ew.hdr.DataRecordDuration.Seconds()))),
		fmt.Sprintf("%-4d", ew.hdr.SignalCount),
	} {
		if _, err := writer.WriteString(field); err != nil {
			return err
		}
	}

	// Signal headers are stored transposed, one column of fields at a time.
	for _, col := range []func(Signal) string{
		func(s Signal) string { return fmt.Sprintf("%-16s", s.Label) },
		func(s Signal) string { return fmt.Sprintf("%-80s", s.TransducerType) },
		func(s Signal) string { return fmt.Sprintf("%-8s", s.PhysicalDimension) },
		func(s Signal) string { return formatPhysicalValue(s.PhysicalMin) },
		func(s Signal) string { return formatPhysicalValue(s.PhysicalMax) },
		func(s Signal) string { return fmt.Sprintf("%-8d", s.DigitalMin) },
		func(s Signal) string { return fmt.Sprintf("%-8d", s.DigitalMax) },
		func(s Signal) string { return fmt.Sprintf("%-80s", s.Prefiltering) },
		func(s Signal) string { return fmt.Sprintf("%-8d", s.SamplesPerRecord) },
		func(s Signal) string { return fmt.Sprintf("%-32s", "") }, // reserved
	} {
		for _, signal := range ew.hdr.Signals {
			if _, err := writer.WriteString(col(signal)); err != nil {
				return err
			}
		}
	}

	return writer.Flush()
}

// convertPhysicalToDigital converts a physical value to a digital value using the calibration factors.
func convertPhysicalToDigital(physical float64, pmin, pmax float64, dmin, dmax int) int16 {
	if pmax == pmin {
		return 0 // Avoid division by zero
	}
	digital := ((physical - pmin) * (float64(dmax - dmin)) / (pmax - pmin)) + float64(dmin)
	return int16(digital)
}

func formatPhysicalValue(val float64) string {
	// Try with 2 decimal places
	s := fmt.Sprintf("%.2f", val)
	if len(s) > 8 {
		// Fall back to no decimal
		s = fmt.Sprintf("%.0f", val)
	}
	return fmt.Sprintf("%-8s", s)
}
