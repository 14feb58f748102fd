// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense tensor type scoring computes on.
//
// A RawTensor is a contiguous buffer with a shape, dtype and device.
// All math goes through a Backend implementation; see backend/cpu and
// backend/webgpu.
//
// Example:
//
//	import (
//	    "github.com/born-ml/seqscore/backend/cpu"
//	    "github.com/born-ml/seqscore/tensor"
//	)
//
//	be := cpu.New()
//	x := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, tensor.CPU)
//	y := be.Softmax(x, -1)
package tensor

import "github.com/born-ml/seqscore/internal/tensor"

// RawTensor is a dense n-dimensional array.
type RawTensor = tensor.RawTensor

// Shape describes tensor dimensions.
type Shape = tensor.Shape

// DataType identifies an element type.
type DataType = tensor.DataType

// Element types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Bool    = tensor.Bool
)

// ParseDataType maps a configuration string to a floating DataType.
func ParseDataType(s string) (DataType, bool) {
	return tensor.ParseDataType(s)
}

// Device identifies where a tensor lives.
type Device = tensor.Device

// Devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// Zeros allocates a zero-filled tensor, panicking on invalid shapes.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	return tensor.Zeros(shape, dtype, device)
}

// Full allocates a tensor filled with a constant.
func Full(shape Shape, value float64, dtype DataType, device Device) *RawTensor {
	return tensor.Full(shape, value, dtype, device)
}

// FromFloat32 builds a tensor from a float32 slice.
func FromFloat32(data []float32, shape Shape, device Device) *RawTensor {
	return tensor.FromFloat32(data, shape, device)
}

// FromFloat64 builds a tensor from a float64 slice.
func FromFloat64(data []float64, shape Shape, device Device) *RawTensor {
	return tensor.FromFloat64(data, shape, device)
}

// FromInt32 builds a tensor from an int32 slice.
func FromInt32(data []int32, shape Shape, device Device) *RawTensor {
	return tensor.FromInt32(data, shape, device)
}
