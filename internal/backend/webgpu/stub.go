//go:build !windows

// Package webgpu implements the GPU backend for the scoring capability set.
// On platforms without the wgpu_native runtime the constructor reports the
// backend as unavailable; callers fall back to the CPU backend.
package webgpu

import "errors"

// Backend is unavailable on this platform.
type Backend struct{}

// New reports that the WebGPU backend is not built for this platform.
func New() (*Backend, error) {
	return nil, errors.New("webgpu: backend not available on this platform")
}

// Release is a no-op on this platform.
func (b *Backend) Release() {}
