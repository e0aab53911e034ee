// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2025 The wavefeat authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/openecg/wavefeat"
)

// Config is the full configuration surface of the pipeline.
type Config struct {
	DataDir      string  `mapstructure:"data-dir"`
	Wavelet      string  `mapstructure:"wavelet"`
	Level        int     `mapstructure:"level"`
	TrainRatio   float64 `mapstructure:"train-ratio"`
	Stratified   bool    `mapstructure:"stratified"`
	Seed         int64   `mapstructure:"seed"`
	Trees        int     `mapstructure:"trees"`
	LearningRate float64 `mapstructure:"learning-rate"`
	MaxDepth     int     `mapstructure:"max-depth"`
	ConfigFile   string  `mapstructure:"-"`
	Verbose      bool    `mapstructure:"verbose"`
}

// bindFlags registers every configuration key as a CLI flag.
func bindFlags(fs *flag.FlagSet) {
	fs.String("data-dir", "", "dataset root: one subdirectory of EDF recordings per class")
	fs.String("wavelet", "sym5", "wavelet filter name")
	fs.Int("level", 0, "decomposition level, 0 for the maximum supported")
	fs.Float64("train-ratio", 0.75, "probability that a row joins the train split")
	fs.Bool("stratified", false, "use the exact-proportion stratified split instead of the per-row draw")
	fs.Int64("seed", 0, "random seed, 0 for time-based")
	fs.Int("trees", 10000, "boosting rounds")
	fs.Float64("learning-rate", 0.1, "shrinkage per boosting round")
	fs.Int("max-depth", 3, "maximum tree depth")
	fs.String("config", "", "optional YAML config file")
	fs.Bool("verbose", false, "debug logging")
}

// loadConfig resolves configuration with precedence
// flags > WAVEFEAT_* env > config file > defaults.
func loadConfig(fs *flag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("wavelet", "sym5")
	v.SetDefault("level", 0)
	v.SetDefault("train-ratio", 0.75)
	v.SetDefault("stratified", false)
	v.SetDefault("seed", int64(0))
	v.SetDefault("trees", 10000)
	v.SetDefault("learning-rate", 0.1)
	v.SetDefault("max-depth", 3)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("WAVEFEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.ConfigFile = v.GetString("config")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data-dir is required: %w", wavefeat.ErrInvalidInput)
	}
	if cfg.TrainRatio <= 0 || cfg.TrainRatio >= 1 {
		return fmt.Errorf("train-ratio %v outside (0,1): %w", cfg.TrainRatio, wavefeat.ErrInvalidInput)
	}
	if cfg.Trees < 1 {
		return fmt.Errorf("trees must be positive, got %d: %w", cfg.Trees, wavefeat.ErrInvalidInput)
	}
	return nil
}
