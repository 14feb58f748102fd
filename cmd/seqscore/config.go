// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration. Explicit CLI flags win
// over file values; pointer fields distinguish "not set" from zero.
type fileConfig struct {
	SourceVocab string `yaml:"source_vocab"`
	TargetVocab string `yaml:"target_vocab"`

	BatchSize *int64 `yaml:"batch_size"`
	Device    string `yaml:"device"`
	DType     string `yaml:"dtype"`

	ScoreType            string   `yaml:"score_type"`
	SoftmaxTemperature   *float64 `yaml:"softmax_temperature"`
	LengthPenaltyAlpha   *float64 `yaml:"length_penalty_alpha"`
	LengthPenaltyBeta    *float64 `yaml:"length_penalty_beta"`
	BrevityPenaltyWeight *float64 `yaml:"brevity_penalty_weight"`
	ConstantLengthRatio  *float64 `yaml:"constant_length_ratio"`

	OutputType string `yaml:"output_type"`
	LogLevel   string `yaml:"log_level"`
}

// loadFileConfig reads the YAML file at path. A missing path yields an
// empty config.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
