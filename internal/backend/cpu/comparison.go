package cpu

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/tensor"
)

// NotEqual performs element-wise a != b, returning a bool tensor.
func (cpu *CPUBackend) NotEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compareOp("notequal", a, b, func(x, y float64) bool { return x != y })
}

// Lower performs element-wise a < b, returning a bool tensor.
func (cpu *CPUBackend) Lower(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compareOp("lower", a, b, func(x, y float64) bool { return x < y })
}

func (cpu *CPUBackend) compareOp(name string, a, b *tensor.RawTensor, f func(x, y float64) bool) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, tensor.Bool, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		compareBroadcast(result.AsBool(), a.AsFloat32(), b.AsFloat32(),
			outShape, a.Shape(), b.Shape(), f)
	case tensor.Float64:
		compareBroadcast(result.AsBool(), a.AsFloat64(), b.AsFloat64(),
			outShape, a.Shape(), b.Shape(), f)
	case tensor.Int32:
		compareBroadcast(result.AsBool(), a.AsInt32(), b.AsInt32(),
			outShape, a.Shape(), b.Shape(), f)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

func compareBroadcast[T float32 | float64 | int32](dst []bool, a, b []T,
	outShape, aShape, bShape tensor.Shape, f func(x, y float64) bool) {
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
		dst[i] = f(float64(a[aIdx]), float64(b[bIdx]))
	}
}
