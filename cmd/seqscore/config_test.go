// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
source_vocab: src.json
target_vocab: tgt.json
batch_size: 32
score_type: logprob
length_penalty_alpha: 0.6
length_penalty_beta: 5
output_type: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadFileConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "src.json", cfg.SourceVocab)
	assert.Equal(t, "tgt.json", cfg.TargetVocab)
	require.NotNil(t, cfg.BatchSize)
	assert.Equal(t, int64(32), *cfg.BatchSize)
	assert.Equal(t, "logprob", cfg.ScoreType)
	require.NotNil(t, cfg.LengthPenaltyAlpha)
	assert.Equal(t, 0.6, *cfg.LengthPenaltyAlpha)
	assert.Equal(t, "json", cfg.OutputType)

	// Unset fields stay nil or empty.
	assert.Nil(t, cfg.SoftmaxTemperature)
	assert.Empty(t, cfg.Device)
}

func TestLoadFileConfigEmptyPath(t *testing.T) {
	cfg, err := loadFileConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.SourceVocab)
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	_, err := loadFileConfig("/nonexistent/config.yaml")
	require.Error(t, err)
}
