// Package cpu implements the reference CPU backend for the scoring capability set.
package cpu

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/parallel"
	"github.com/born-ml/seqscore/internal/tensor"
)

// CPUBackend implements tensor operations on CPU in pure Go.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y })
}

// binaryOp dispatches an element-wise binary operation by dtype, with a
// fast path for identical shapes and a broadcasting slow path.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		if !needsBroadcast {
			binarySameShape(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), f32, cpu.par)
		} else {
			binaryBroadcast(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(),
				outShape, a.Shape(), b.Shape(), f32)
		}
	case tensor.Float64:
		if !needsBroadcast {
			binarySameShape(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), f64, cpu.par)
		} else {
			binaryBroadcast(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(),
				outShape, a.Shape(), b.Shape(), f64)
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", name, a.DType()))
	}

	return result
}

func binarySameShape[T float32 | float64](dst, a, b []T, f func(x, y T) T, par parallel.Config) {
	parallel.For(len(dst), func(i int) {
		dst[i] = f(a[i], b[i])
	}, par)
}

func binaryBroadcast[T float32 | float64](dst, a, b []T, outShape, aShape, bShape tensor.Shape, f func(x, y T) T) {
	outStrides := outShape.ComputeStrides()
	aStrides := aShape.ComputeStrides()
	bStrides := bShape.ComputeStrides()

	multiIdx := make([]int, len(outShape))
	for i := range dst {
		remaining := i
		for d := 0; d < len(outShape); d++ {
			multiIdx[d] = remaining / outStrides[d]
			remaining %= outStrides[d]
		}

		aIdx := broadcastIndex(multiIdx, aShape, aStrides)
		bIdx := broadcastIndex(multiIdx, bShape, bStrides)
		dst[i] = f(a[aIdx], b[bIdx])
	}
}

// broadcastIndex computes the flat index for a broadcasted tensor.
func broadcastIndex(multiIdx []int, shape tensor.Shape, strides []int) int {
	idx := 0
	offset := len(multiIdx) - len(shape)
	for i, size := range shape {
		dimIdx := multiIdx[offset+i]
		// Broadcast dimension (size 1) always uses index 0
		if size == 1 {
			dimIdx = 0
		}
		idx += dimIdx * strides[i]
	}
	return idx
}
