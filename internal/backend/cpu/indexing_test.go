package cpu

import (
	"testing"

	"github.com/born-ml/seqscore/internal/tensor"
)

func TestGather_LastDim(t *testing.T) {
	backend := New()

	// (2, 3) distribution rows, pick one column per row.
	x := tensor.FromFloat32([]float32{
		0.1, 0.2, 0.7,
		0.5, 0.3, 0.2,
	}, tensor.Shape{2, 3}, backend.Device())
	index := tensor.FromInt32([]int32{2, 0}, tensor.Shape{2, 1}, backend.Device())

	result := backend.Gather(x, -1, index)
	if !result.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("Expected shape [2 1], got %v", result.Shape())
	}
	expected := []float32{0.7, 0.5}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestGather_3D(t *testing.T) {
	backend := New()

	// (batch=1, time=2, vocab=3): gather the label probability per step.
	x := tensor.FromFloat32([]float32{
		0.2, 0.3, 0.5,
		0.6, 0.1, 0.3,
	}, tensor.Shape{1, 2, 3}, backend.Device())
	labels := tensor.FromInt32([]int32{2, 0}, tensor.Shape{1, 2, 1}, backend.Device())

	result := backend.Gather(x, -1, labels)
	if !result.Shape().Equal(tensor.Shape{1, 2, 1}) {
		t.Fatalf("Expected shape [1 2 1], got %v", result.Shape())
	}
	expected := []float32{0.5, 0.6}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestGather_OutOfBoundsPanics(t *testing.T) {
	backend := New()

	x := tensor.FromFloat32([]float32{1, 2}, tensor.Shape{1, 2}, backend.Device())
	index := tensor.FromInt32([]int32{5}, tensor.Shape{1, 1}, backend.Device())

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-bounds index")
		}
	}()
	_ = backend.Gather(x, -1, index)
}

func TestWhere(t *testing.T) {
	backend := New()

	x := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{3}, backend.Device())
	y := tensor.FromFloat32([]float32{10, 20, 30}, tensor.Shape{3}, backend.Device())

	cond, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Bool, backend.Device())
	condData := cond.AsBool()
	condData[0] = true
	condData[2] = true

	result := backend.Where(cond, x, y)
	expected := []float32{1, 20, 3}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestNotEqual(t *testing.T) {
	backend := New()

	a := tensor.FromInt32([]int32{0, 1, 0, 2}, tensor.Shape{4}, backend.Device())
	b := tensor.FromInt32([]int32{0, 0, 0, 0}, tensor.Shape{4}, backend.Device())

	result := backend.NotEqual(a, b)
	if result.DType() != tensor.Bool {
		t.Fatalf("Expected Bool result, got %v", result.DType())
	}
	expected := []bool{false, true, false, true}
	for i, v := range result.AsBool() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestLower(t *testing.T) {
	backend := New()

	a := tensor.FromFloat32([]float32{-1, 0, 1}, tensor.Shape{3}, backend.Device())
	b := tensor.FromFloat32([]float32{0, 0, 0}, tensor.Shape{3}, backend.Device())

	result := backend.Lower(a, b)
	expected := []bool{true, false, false}
	for i, v := range result.AsBool() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}
