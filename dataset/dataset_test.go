// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package dataset_test

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/openecg/wavefeat"
	"github.com/openecg/wavefeat/dataset"
	"github.com/openecg/wavefeat/edf"
	"github.com/openecg/wavefeat/feature"
	"github.com/openecg/wavefeat/wavelet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRecording synthesizes a two-channel EDF file: a crude ECG-like pulse
// train plus a scaled copy.
func writeRecording(t *testing.T, path string, heartRate float64) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	const samplesPerRecord = 256
	signal := edf.Signal{
		Label:             "ECG I",
		TransducerType:    "AgAgCl electrode",
		PhysicalDimension: "mV",
		PhysicalMin:       -4,
		PhysicalMax:       4,
		DigitalMin:        -2048,
		DigitalMax:        2047,
		SamplesPerRecord:  samplesPerRecord,
	}
	second := signal
	second.Label = "ECG II"

	ew, err := edf.Create(f, edf.Header{
		Version:            edf.Version0,
		PatientID:          "Patient X",
		RecordingID:        "Recording 1",
		StartTime:          time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
		DataRecordDuration: time.Second,
		SignalCount:        2,
		Signals:            []edf.Signal{signal, second},
	})
	require.NoError(t, err)

	lead1 := make([]float64, samplesPerRecord)
	lead2 := make([]float64, samplesPerRecord)
	for i := range lead1 {
		phase := heartRate / 60 * float64(i) / samplesPerRecord
		z := (phase - math.Floor(phase) - 0.3) / 0.02
		lead1[i] = math.Exp(-0.5*z*z) + 0.05*math.Sin(2*math.Pi*float64(i)/samplesPerRecord)
		lead2[i] = 0.5 * lead1[i]
	}
	require.NoError(t, ew.WriteRecord([][]float64{lead1, lead2}))
	require.NoError(t, ew.Close())
}

func writeDataset(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for label, rates := range map[string][]float64{
		"normal": {60, 72, 80},
		"tachy":  {150, 170},
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, label), 0o755))
		for i, rate := range rates {
			writeRecording(t, filepath.Join(root, label, string(rune('a'+i))+".edf"), rate)
		}
	}
	return root
}

func TestLoadDir(t *testing.T) {
	d, err := dataset.LoadDir(writeDataset(t))
	require.NoError(t, err)

	require.Equal(t, 5, d.Len())
	// Lexical walk: "normal" sorts before "tachy", so it gets class 0.
	require.Equal(t, []string{"normal", "tachy"}, d.Classes())

	normal, ok := d.ClassIndex("normal")
	require.True(t, ok)
	assert.Equal(t, 0, normal)
	_, ok = d.ClassIndex("brady")
	assert.False(t, ok)

	rec := d.Record(0)
	assert.Equal(t, "normal", rec.Label)
	require.Len(t, rec.Channels, 2)
	require.Len(t, rec.Channels[0], 256)

	// Lead II was written at half the amplitude of lead I.
	assert.InDelta(t, rec.Channels[0][76]/2, rec.Channels[1][76], 0.01)
}

func TestLoadDirRejectsUnlabeled(t *testing.T) {
	root := t.TempDir()
	writeRecording(t, filepath.Join(root, "stray.edf"), 60)

	_, err := dataset.LoadDir(root)
	require.ErrorIs(t, err, wavefeat.ErrDataFormat)
}

func TestLoadDirEmpty(t *testing.T) {
	_, err := dataset.LoadDir(t.TempDir())
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
}

func TestMatrixSchema(t *testing.T) {
	d, err := dataset.LoadDir(writeDataset(t))
	require.NoError(t, err)

	w, err := wavelet.Lookup("sym5")
	require.NoError(t, err)

	x, y, err := dataset.Matrix(d, w, 0)
	require.NoError(t, err)

	rows, cols := x.Dims()
	require.Equal(t, d.Len(), rows)
	require.Len(t, y, rows)

	// 2 channels x (MaxLevel+1) bands x 12 scalars per band.
	bands := wavelet.MaxLevel(256, w.Len()) + 1
	require.Equal(t, 2*bands*feature.PerBand, cols)

	for _, class := range y {
		assert.Contains(t, []int{0, 1}, class)
	}
}

func TestSplitBernoulli(t *testing.T) {
	const rows = 100
	x := mat.NewDense(rows, 2, nil)
	y := make([]int, rows)
	for i := 0; i < rows; i++ {
		x.Set(i, 0, float64(i))
		y[i] = i % 2
	}

	rng := rand.New(rand.NewSource(1))
	s, err := dataset.SplitBernoulli(x, y, 0.5, rng)
	require.NoError(t, err)

	nTrain := len(s.YTrain)
	nTest := len(s.YTest)
	require.Equal(t, rows, nTrain+nTest)

	// Row content survives the partition.
	if nTrain > 0 {
		first := int(s.XTrain.At(0, 0))
		assert.Equal(t, first%2, s.YTrain[0])
	}

	// Averaged over many draws the train fraction converges to the ratio.
	total := 0
	const draws = 200
	for i := 0; i < draws; i++ {
		s, err := dataset.SplitBernoulli(x, y, 0.5, rng)
		require.NoError(t, err)
		total += len(s.YTrain)
	}
	assert.InDelta(t, 50, float64(total)/draws, 2.0)
}

func TestSplitStratified(t *testing.T) {
	const rows = 40
	x := mat.NewDense(rows, 1, nil)
	y := make([]int, rows)
	for i := 0; i < rows; i++ {
		x.Set(i, 0, float64(i))
		y[i] = i / 20 // two classes of 20
	}

	s, err := dataset.SplitStratified(x, y, 0.75, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// Exactly 15 of each class train, 5 test.
	require.Len(t, s.YTrain, 30)
	require.Len(t, s.YTest, 10)
	counts := map[int]int{}
	for _, c := range s.YTrain {
		counts[c]++
	}
	assert.Equal(t, map[int]int{0: 15, 1: 15}, counts)
}

func TestSplitBadArgs(t *testing.T) {
	x := mat.NewDense(4, 1, nil)
	y := []int{0, 1, 0, 1}
	rng := rand.New(rand.NewSource(1))

	_, err := dataset.SplitBernoulli(x, y, 0, rng)
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
	_, err = dataset.SplitBernoulli(x, y, 1, rng)
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
	_, err = dataset.SplitStratified(x, y[:2], 0.5, rng)
	require.ErrorIs(t, err, wavefeat.ErrInvalidInput)
}
