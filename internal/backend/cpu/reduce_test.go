package cpu

import (
	"testing"

	"github.com/born-ml/seqscore/internal/tensor"
)

func TestSumDim_2D(t *testing.T) {
	backend := New()

	// Row 0: [1, 2, 3], Row 1: [4, 5, 6]
	x := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend.Device())

	// Sum the time axis, the reduction the scoring sum uses.
	result := backend.SumDim(x, 1, false)
	if !result.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("Expected shape [2], got %v", result.Shape())
	}
	expected := []float32{6, 15}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestSumDim_KeepDim(t *testing.T) {
	backend := New()

	x := tensor.FromFloat64([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend.Device())

	result := backend.SumDim(x, -1, true)
	if !result.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("Expected shape [2 1], got %v", result.Shape())
	}
	expected := []float64{3, 7}
	for i, v := range result.AsFloat64() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}

func TestSumDim_Dim0(t *testing.T) {
	backend := New()

	x := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend.Device())

	result := backend.SumDim(x, 0, false)
	if !result.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("Expected shape [3], got %v", result.Shape())
	}
	expected := []float32{5, 7, 9}
	for i, v := range result.AsFloat32() {
		if v != expected[i] {
			t.Errorf("Element %d: expected %v, got %v", i, expected[i], v)
		}
	}
}
