// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/seqscore/internal/tensor"

// Backend is the capability set scoring needs from a compute device.
//
// Implementations:
//   - backend/cpu: pure Go kernels with data-parallel loops
//   - backend/webgpu: WGSL compute shaders with CPU fallback
//
// Operations panic on shape or dtype violations; the scoring layer
// validates inputs before they reach a backend.
type Backend = tensor.Backend
