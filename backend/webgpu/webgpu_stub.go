// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

//go:build !windows

// Package webgpu exposes the GPU compute backend.
//
// The wgpu_native runtime is not built for this platform; New always
// reports the backend as unavailable.
package webgpu

import (
	internalwebgpu "github.com/born-ml/seqscore/internal/backend/webgpu"
	"github.com/born-ml/seqscore/tensor"
)

// New reports that the GPU backend is unavailable on this platform.
func New() (tensor.Backend, error) {
	_, err := internalwebgpu.New()
	return nil, err
}
