package cpu

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/tensor"
)

// Gather selects elements along dim using an index tensor.
// Similar to torch.gather(input, dim, index).
//
// The index tensor must have dtype int32 and its shape must match the input
// shape except at the gather dimension, where it can differ. The scoring path
// uses this to pick, per time step, the probability mass assigned to the gold
// label id along the vocabulary axis.
func (cpu *CPUBackend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	if index.DType() != tensor.Int32 {
		panic(fmt.Sprintf("gather: index tensor must have dtype int32, got %s", index.DType()))
	}

	ndim := len(x.Shape())
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("gather: invalid dim %d for %dD tensor", dim, ndim))
	}

	indexShape := index.Shape()
	if len(indexShape) != ndim {
		panic(fmt.Sprintf("gather: index rank %d != input rank %d", len(indexShape), ndim))
	}
	for i := 0; i < ndim; i++ {
		if i != dim && indexShape[i] != x.Shape()[i] {
			panic(fmt.Sprintf("gather: index shape mismatch at dim %d: %d != %d",
				i, indexShape[i], x.Shape()[i]))
		}
	}

	result, err := tensor.NewRaw(indexShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("gather: failed to create result tensor: %v", err))
	}

	indices := index.AsInt32()
	switch x.DType() {
	case tensor.Float32:
		gatherDim(result.AsFloat32(), x.AsFloat32(), indices, x.Shape(), indexShape, dim)
	case tensor.Float64:
		gatherDim(result.AsFloat64(), x.AsFloat64(), indices, x.Shape(), indexShape, dim)
	case tensor.Int32:
		gatherDim(result.AsInt32(), x.AsInt32(), indices, x.Shape(), indexShape, dim)
	default:
		panic(fmt.Sprintf("gather: unsupported dtype %s", x.DType()))
	}

	return result
}

func gatherDim[T float32 | float64 | int32](dst, src []T, indices []int32, srcShape, dstShape tensor.Shape, dim int) {
	ndim := len(srcShape)
	dstStrides := dstShape.ComputeStrides()
	srcStrides := srcShape.ComputeStrides()

	multiIdx := make([]int, ndim)
	for i := range dst {
		// Convert flat index to multi-dimensional index
		remaining := i
		for d := 0; d < ndim; d++ {
			multiIdx[d] = remaining / dstStrides[d]
			remaining %= dstStrides[d]
		}

		indexVal := int(indices[i])
		if indexVal < 0 || indexVal >= srcShape[dim] {
			panic(fmt.Sprintf("gather: index %d out of bounds [0, %d) at position %d",
				indexVal, srcShape[dim], i))
		}

		srcIdx := 0
		for d := 0; d < ndim; d++ {
			if d == dim {
				srcIdx += indexVal * srcStrides[d]
			} else {
				srcIdx += multiIdx[d] * srcStrides[d]
			}
		}

		dst[i] = src[srcIdx]
	}
}

// Where performs conditional element selection.
// Returns a tensor where each element is taken from x if condition is true,
// otherwise from y. Shapes broadcast; the scoring path uses this to zero out
// time steps whose label is the padding id.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", condition.DType()))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("where: x and y must have same dtype, got %s and %s",
			x.DType(), y.DType()))
	}

	outShape1, _, err := tensor.BroadcastShapes(condition.Shape(), x.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: failed to broadcast condition and x: %v", err))
	}
	outShape, _, err := tensor.BroadcastShapes(outShape1, y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: failed to broadcast with y: %v", err))
	}

	result, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("where: failed to create result tensor: %v", err))
	}

	cond := condition.AsBool()
	switch x.DType() {
	case tensor.Float32:
		whereSelect(result.AsFloat32(), cond, x.AsFloat32(), y.AsFloat32(),
			outShape, condition.Shape(), x.Shape(), y.Shape())
	case tensor.Float64:
		whereSelect(result.AsFloat64(), cond, x.AsFloat64(), y.AsFloat64(),
			outShape, condition.Shape(), x.Shape(), y.Shape())
	case tensor.Int32:
		whereSelect(result.AsInt32(), cond, x.AsInt32(), y.AsInt32(),
			outShape, condition.Shape(), x.Shape(), y.Shape())
	default:
		panic(fmt.Sprintf("where: unsupported dtype %s", x.DType()))
	}

	return result
}

func whereSelect[T float32 | float64 | int32](dst []T, cond []bool, xData, yData []T,
	outShape, condShape, xShape, yShape tensor.Shape) {
	outStrides := outShape.ComputeStrides()
	condStrides := condShape.ComputeStrides()
	xStrides := xShape.ComputeStrides()
	yStrides := yShape.ComputeStrides()

	multiIdx := make([]int, len(outShape))
	for i := range dst {
		remaining := i
		for d := 0; d < len(outShape); d++ {
			multiIdx[d] = remaining / outStrides[d]
			remaining %= outStrides[d]
		}

		condIdx := broadcastIndex(multiIdx, condShape, condStrides)
		xIdx := broadcastIndex(multiIdx, xShape, xStrides)
		yIdx := broadcastIndex(multiIdx, yShape, yStrides)

		if cond[condIdx] {
			dst[i] = xData[xIdx]
		} else {
			dst[i] = yData[yIdx]
		}
	}
}
