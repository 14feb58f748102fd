package cpu

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/tensor"
)

// Cast converts a tensor to a different data type.
// Returns the input unchanged when the dtype already matches.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("cast: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		castFrom(result, x.AsFloat32(), dtype)
	case tensor.Float64:
		castFrom(result, x.AsFloat64(), dtype)
	case tensor.Int32:
		castFrom(result, x.AsInt32(), dtype)
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}

	return result
}

func castFrom[T float32 | float64 | int32](result *tensor.RawTensor, src []T, dtype tensor.DataType) {
	switch dtype {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range src {
			dst[i] = float64(v)
		}
	case tensor.Int32:
		dst := result.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", dtype))
	}
}
