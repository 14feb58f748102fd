// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

//go:build windows

// Package webgpu exposes the GPU compute backend.
//
// Element-wise math, scalar ops and row softmax run as WGSL compute
// shaders; everything else delegates to the CPU backend. The backend is
// only available where the wgpu_native runtime ships; New reports an
// error elsewhere and callers fall back to backend/cpu.
package webgpu

import (
	internalwebgpu "github.com/born-ml/seqscore/internal/backend/webgpu"
	"github.com/born-ml/seqscore/tensor"
)

// Backend is the WebGPU implementation of tensor.Backend.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New initializes the GPU device and returns the backend.
func New() (tensor.Backend, error) {
	return internalwebgpu.New()
}
