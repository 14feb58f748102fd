// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the pure Go compute backend.
package cpu

import (
	internalcpu "github.com/born-ml/seqscore/internal/backend/cpu"
	"github.com/born-ml/seqscore/tensor"
)

// Backend is the CPU implementation of tensor.Backend. Kernels are pure
// Go with chunked data-parallel loops over large tensors.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend with default parallelism.
func New() *Backend {
	return internalcpu.New()
}
