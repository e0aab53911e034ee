// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Command wavefeat runs the full ECG classification pipeline: load a
// labeled EDF dataset, extract wavelet-band features, split, train a
// gradient-boosted ensemble, and report train/test accuracy.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/openecg/wavefeat/dataset"
	"github.com/openecg/wavefeat/gbdt"
	"github.com/openecg/wavefeat/wavelet"
)

func main() {
	fs := flag.NewFlagSet("wavefeat", flag.ExitOnError)
	bindFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg.Verbose)
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("pipeline failed", zap.Error(err))
	}
}

func newLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return logger
}

func run(cfg *Config, logger *zap.Logger) error {
	w, err := wavelet.Lookup(cfg.Wavelet)
	if err != nil {
		return err
	}

	start := time.Now()
	d, err := dataset.LoadDir(cfg.DataDir)
	if err != nil {
		return err
	}
	logger.Info("dataset loaded",
		zap.String("dir", cfg.DataDir),
		zap.Int("recordings", d.Len()),
		zap.Strings("classes", d.Classes()),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	x, y, err := dataset.Matrix(d, w, cfg.Level)
	if err != nil {
		return err
	}
	rows, cols := x.Dims()
	logger.Info("features extracted",
		zap.String("wavelet", cfg.Wavelet),
		zap.Int("rows", rows),
		zap.Int("features", cols),
		zap.Duration("elapsed", time.Since(start)))

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	split := dataset.SplitBernoulli
	if cfg.Stratified {
		split = dataset.SplitStratified
	}
	s, err := split(x, y, cfg.TrainRatio, rng)
	if err != nil {
		return err
	}
	if s.XTrain == nil || s.XTest == nil {
		return fmt.Errorf("split left one side empty (train=%d test=%d); re-run with another seed or ratio",
			len(s.YTrain), len(s.YTest))
	}
	logger.Info("dataset split",
		zap.Int("train", len(s.YTrain)),
		zap.Int("test", len(s.YTest)),
		zap.Bool("stratified", cfg.Stratified),
		zap.Int64("seed", seed))

	start = time.Now()
	model, err := gbdt.Fit(s.XTrain, s.YTrain, gbdt.Config{
		Trees:        cfg.Trees,
		LearningRate: cfg.LearningRate,
		MaxDepth:     cfg.MaxDepth,
	})
	if err != nil {
		return err
	}
	logger.Info("model trained",
		zap.Int("classes", model.NumClasses()),
		zap.Duration("elapsed", time.Since(start)))

	trainAcc, err := model.Score(s.XTrain, s.YTrain)
	if err != nil {
		return err
	}
	testAcc, err := model.Score(s.XTest, s.YTest)
	if err != nil {
		return err
	}

	logger.Info("scored",
		zap.Float64("train_accuracy", trainAcc),
		zap.Float64("test_accuracy", testAcc))
	fmt.Printf("train accuracy: %.4f\ntest accuracy:  %.4f\n", trainAcc, testAcc)
	return nil
}
