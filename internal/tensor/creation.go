package tensor

import "fmt"

// Zeros creates a zero-filled tensor with the given shape and dtype.
func Zeros(shape Shape, dtype DataType, device Device) *RawTensor {
	t, err := NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return t
}

// Full creates a tensor filled with a constant value.
// The value is converted to the requested dtype.
func Full(shape Shape, value float64, dtype DataType, device Device) *RawTensor {
	t := Zeros(shape, dtype, device)
	switch dtype {
	case Float32:
		data := t.AsFloat32()
		v := float32(value)
		for i := range data {
			data[i] = v
		}
	case Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = value
		}
	case Int32:
		data := t.AsInt32()
		v := int32(value)
		for i := range data {
			data[i] = v
		}
	default:
		panic(fmt.Sprintf("full: unsupported dtype %s", dtype))
	}
	return t
}

// ZerosLike creates a zero-filled tensor with the same shape, dtype and
// device as the given tensor.
func ZerosLike(x *RawTensor) *RawTensor {
	return Zeros(x.Shape(), x.DType(), x.Device())
}

// FromFloat32 creates a tensor from a float32 slice with the given shape.
func FromFloat32(data []float32, shape Shape, device Device) *RawTensor {
	if len(data) != shape.NumElements() {
		panic(fmt.Sprintf("fromfloat32: %d values for shape %v (%d elements)",
			len(data), shape, shape.NumElements()))
	}
	t := Zeros(shape, Float32, device)
	copy(t.AsFloat32(), data)
	return t
}

// FromFloat64 creates a tensor from a float64 slice with the given shape.
func FromFloat64(data []float64, shape Shape, device Device) *RawTensor {
	if len(data) != shape.NumElements() {
		panic(fmt.Sprintf("fromfloat64: %d values for shape %v (%d elements)",
			len(data), shape, shape.NumElements()))
	}
	t := Zeros(shape, Float64, device)
	copy(t.AsFloat64(), data)
	return t
}

// FromInt32 creates a tensor from an int32 slice with the given shape.
func FromInt32(data []int32, shape Shape, device Device) *RawTensor {
	if len(data) != shape.NumElements() {
		panic(fmt.Sprintf("fromint32: %d values for shape %v (%d elements)",
			len(data), shape, shape.NumElements()))
	}
	t := Zeros(shape, Int32, device)
	copy(t.AsInt32(), data)
	return t
}
