//go:build windows

package webgpu

import (
	"github.com/born-ml/seqscore/internal/tensor"
)

// Add performs element-wise addition on GPU.
// Broadcasting and non-float32 dtypes fall back to the host backend.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !b.shaderEligible(a, other) {
		return b.host.Add(a, other)
	}
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !b.shaderEligible(a, other) {
		return b.host.Sub(a, other)
	}
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !b.shaderEligible(a, other) {
		return b.host.Mul(a, other)
	}
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division on GPU.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	if !b.shaderEligible(a, other) {
		return b.host.Div(a, other)
	}
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// AddScalar adds a scalar to every element on GPU.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.AddScalar(x, scalar)
	}
	result, err := b.runScalarOp(x, scalar, "scalaradd", scalarAddShader)
	if err != nil {
		panic("webgpu: AddScalar: " + err.Error())
	}
	return result
}

// SubScalar subtracts a scalar from every element on GPU.
func (b *Backend) SubScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.SubScalar(x, scalar)
	}
	result, err := b.runScalarOp(x, scalar, "scalarsub", scalarSubShader)
	if err != nil {
		panic("webgpu: SubScalar: " + err.Error())
	}
	return result
}

// MulScalar multiplies every element by a scalar on GPU.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.MulScalar(x, scalar)
	}
	result, err := b.runScalarOp(x, scalar, "scalarmul", scalarMulShader)
	if err != nil {
		panic("webgpu: MulScalar: " + err.Error())
	}
	return result
}

// DivScalar divides every element by a scalar on GPU.
func (b *Backend) DivScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.DivScalar(x, scalar)
	}
	result, err := b.runScalarOp(x, scalar, "scalardiv", scalarDivShader)
	if err != nil {
		panic("webgpu: DivScalar: " + err.Error())
	}
	return result
}

// Exp computes the element-wise exponential on GPU.
func (b *Backend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Exp(x)
	}
	result, err := b.runUnaryOp(x, "exp", expShader)
	if err != nil {
		panic("webgpu: Exp: " + err.Error())
	}
	return result
}

// Log computes the element-wise natural logarithm on GPU.
func (b *Backend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		return b.host.Log(x)
	}
	result, err := b.runUnaryOp(x, "log", logShader)
	if err != nil {
		panic("webgpu: Log: " + err.Error())
	}
	return result
}

// Softmax computes softmax along the given dimension.
// The last dimension of a float32 tensor runs as a row-softmax shader; any
// other dimension or dtype falls back to the host backend.
func (b *Backend) Softmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	norm := dim
	if norm < 0 {
		norm = ndim + norm
	}
	if x.DType() != tensor.Float32 || norm != ndim-1 {
		return b.host.Softmax(x, dim)
	}

	cols := shape[ndim-1]
	rows := x.NumElements() / cols
	result, err := b.runRowSoftmax(x, rows, cols)
	if err != nil {
		panic("webgpu: Softmax: " + err.Error())
	}
	return result
}

// NotEqual delegates to the host backend.
func (b *Backend) NotEqual(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.NotEqual(a, other)
}

// Lower delegates to the host backend.
func (b *Backend) Lower(a, other *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Lower(a, other)
}

// Gather delegates to the host backend.
func (b *Backend) Gather(x *tensor.RawTensor, dim int, index *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Gather(x, dim, index)
}

// Where delegates to the host backend.
func (b *Backend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.host.Where(condition, x, y)
}

// SumDim delegates to the host backend.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return b.host.SumDim(x, dim, keepDim)
}

// Cat delegates to the host backend.
func (b *Backend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.host.Cat(tensors, dim)
}

// Unsqueeze delegates to the host backend.
func (b *Backend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.host.Unsqueeze(x, dim)
}

// Squeeze delegates to the host backend.
func (b *Backend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	return b.host.Squeeze(x, dim)
}

// Cast delegates to the host backend.
func (b *Backend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	return b.host.Cast(x, dtype)
}

// shaderEligible reports whether a binary op can run through the
// same-shape float32 shader path.
func (b *Backend) shaderEligible(a, other *tensor.RawTensor) bool {
	return a.DType() == tensor.Float32 &&
		other.DType() == tensor.Float32 &&
		a.Shape().Equal(other.Shape())
}
