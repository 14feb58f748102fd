package cpu

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/tensor"
)

// Cat concatenates tensors along the specified dimension.
//
// All tensors must have the same dtype and the same shape except along the
// concatenation dimension. Inputs may differ in size along that dimension,
// so shard score vectors of uneven length reassemble cleanly.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: dimension %d out of range for %dD tensor", dim, ndim))
	}

	totalDim := 0
	for i, t := range tensors {
		tShape := t.Shape()
		if len(tShape) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has %d dimensions, expected %d", i, len(tShape), ndim))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		for d := 0; d < ndim; d++ {
			if d == dim {
				totalDim += tShape[d]
			} else if tShape[d] != shape[d] {
				panic(fmt.Sprintf("cat: tensor %d dimension %d is %d, expected %d", i, d, tShape[d], shape[d]))
			}
		}
	}

	outShape := shape.Clone()
	outShape[dim] = totalDim

	result, err := tensor.NewRaw(outShape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Concatenation along dim is a sequence of contiguous block copies:
	// for each "outer" slice (dims before dim), copy every tensor's block
	// of (sizeAlongDim * innerStride) elements in input order.
	elemSize := dtype.Size()
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}

	dst := result.Data()
	dstOffset := 0
	for o := 0; o < outer; o++ {
		for _, t := range tensors {
			blockBytes := t.Shape()[dim] * inner * elemSize
			srcOffset := o * blockBytes
			copy(dst[dstOffset:dstOffset+blockBytes], t.Data()[srcOffset:srcOffset+blockBytes])
			dstOffset += blockBytes
		}
	}

	return result
}

// Unsqueeze adds a dimension of size 1 at the specified position.
// This is a view operation.
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	// For unsqueeze, valid range is [0, ndim]
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("unsqueeze: dimension %d out of range for %dD tensor (valid: [0, %d])", dim, ndim, ndim))
	}

	newShape := make(tensor.Shape, ndim+1)
	copy(newShape[:dim], shape[:dim])
	newShape[dim] = 1
	copy(newShape[dim+1:], shape[dim:])

	return x.WithShape(newShape)
}

// Squeeze removes a dimension of size 1 at the specified position.
// Panics if the dimension size is not 1. This is a view operation.
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("squeeze: dimension %d out of range for %dD tensor", dim, ndim))
	}
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: dimension %d has size %d, must be 1", dim, shape[dim]))
	}

	newShape := make(tensor.Shape, 0, ndim-1)
	for i := 0; i < ndim; i++ {
		if i != dim {
			newShape = append(newShape, shape[i])
		}
	}
	if len(newShape) == 0 {
		newShape = tensor.Shape{1}
	}

	return x.WithShape(newShape)
}
