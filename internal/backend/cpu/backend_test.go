package cpu

import (
	"testing"

	"github.com/born-ml/seqscore/internal/tensor"
)

func TestAdd_SameShape(t *testing.T) {
	backend := New()

	a := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend.Device())
	b := tensor.FromFloat32([]float32{10, 20, 30, 40}, tensor.Shape{2, 2}, backend.Device())

	result := backend.Add(a, b)
	expected := []float32{11, 22, 33, 44}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestAdd_Broadcast(t *testing.T) {
	backend := New()

	// (2, 3) + (3,) broadcasts the row vector.
	a := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend.Device())
	b := tensor.FromFloat32([]float32{10, 20, 30}, tensor.Shape{3}, backend.Device())

	result := backend.Add(a, b)
	if !result.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("Expected shape [2 3], got %v", result.Shape())
	}
	expected := []float32{11, 22, 33, 14, 25, 36}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestSub_Float64(t *testing.T) {
	backend := New()

	a := tensor.FromFloat64([]float64{5, 7}, tensor.Shape{2}, backend.Device())
	b := tensor.FromFloat64([]float64{2, 3}, tensor.Shape{2}, backend.Device())

	result := backend.Sub(a, b)
	expected := []float64{3, 4}
	for i, v := range result.AsFloat64() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestMulDiv(t *testing.T) {
	backend := New()

	a := tensor.FromFloat32([]float32{2, 4, 6}, tensor.Shape{3}, backend.Device())
	b := tensor.FromFloat32([]float32{2, 2, 2}, tensor.Shape{3}, backend.Device())

	mul := backend.Mul(a, b)
	for i, expected := range []float32{4, 8, 12} {
		if mul.AsFloat32()[i] != expected {
			t.Errorf("Mul element %d: expected %v, got %v", i, expected, mul.AsFloat32()[i])
		}
	}

	div := backend.Div(a, b)
	for i, expected := range []float32{1, 2, 3} {
		if div.AsFloat32()[i] != expected {
			t.Errorf("Div element %d: expected %v, got %v", i, expected, div.AsFloat32()[i])
		}
	}
}

func TestBinaryOp_DTypeMismatchPanics(t *testing.T) {
	backend := New()

	a := tensor.FromFloat32([]float32{1}, tensor.Shape{1}, backend.Device())
	b := tensor.FromFloat64([]float64{1}, tensor.Shape{1}, backend.Device())

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for dtype mismatch")
		}
	}()
	_ = backend.Add(a, b)
}

func TestBackendIdentity(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Expected name CPU, got %s", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected CPU device, got %v", backend.Device())
	}
}
