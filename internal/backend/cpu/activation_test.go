package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/seqscore/internal/tensor"
)

func TestSoftmax_LastDim(t *testing.T) {
	backend := New()

	x := tensor.FromFloat32([]float32{1, 2, 3, 1, 1, 1}, tensor.Shape{2, 3}, backend.Device())
	result := backend.Softmax(x, -1)

	data := result.AsFloat32()

	// Each row sums to 1.
	for row := 0; row < 2; row++ {
		var sum float32
		for col := 0; col < 3; col++ {
			sum += data[row*3+col]
		}
		if math.Abs(float64(sum-1)) > 1e-6 {
			t.Errorf("Row %d sums to %v, expected 1", row, sum)
		}
	}

	// Uniform logits give uniform probabilities.
	for col := 0; col < 3; col++ {
		if math.Abs(float64(data[3+col])-1.0/3.0) > 1e-6 {
			t.Errorf("Uniform row element %d: expected 1/3, got %v", col, data[3+col])
		}
	}

	// Larger logits get larger probabilities.
	if !(data[0] < data[1] && data[1] < data[2]) {
		t.Errorf("Expected monotonic probabilities, got %v", data[:3])
	}
}

func TestSoftmax_NumericalStability(t *testing.T) {
	backend := New()

	// Large logits must not overflow to NaN.
	x := tensor.FromFloat32([]float32{1000, 1001, 1002}, tensor.Shape{1, 3}, backend.Device())
	result := backend.Softmax(x, -1)

	var sum float32
	for _, v := range result.AsFloat32() {
		if math.IsNaN(float64(v)) {
			t.Fatal("Softmax produced NaN for large logits")
		}
		sum += v
	}
	if math.Abs(float64(sum-1)) > 1e-6 {
		t.Errorf("Probabilities sum to %v, expected 1", sum)
	}
}

func TestSoftmax_3D(t *testing.T) {
	backend := New()

	// (batch=2, time=2, vocab=2): softmax normalizes the vocab axis.
	x := tensor.FromFloat64([]float64{0, 0, 1, 0, 0, 2, 3, 3}, tensor.Shape{2, 2, 2}, backend.Device())
	result := backend.Softmax(x, -1)

	data := result.AsFloat64()
	for row := 0; row < 4; row++ {
		sum := data[row*2] + data[row*2+1]
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Row %d sums to %v, expected 1", row, sum)
		}
	}
	if math.Abs(data[0]-0.5) > 1e-12 {
		t.Errorf("Expected 0.5 for equal logits, got %v", data[0])
	}
}

func TestExpLog(t *testing.T) {
	backend := New()

	x := tensor.FromFloat64([]float64{0, 1, 2}, tensor.Shape{3}, backend.Device())

	exp := backend.Exp(x)
	expected := []float64{1, math.E, math.E * math.E}
	for i, v := range exp.AsFloat64() {
		if math.Abs(v-expected[i]) > 1e-12 {
			t.Errorf("Exp element %d: expected %v, got %v", i, expected[i], v)
		}
	}

	// log(exp(x)) == x
	back := backend.Log(exp)
	for i, v := range back.AsFloat64() {
		if math.Abs(v-x.AsFloat64()[i]) > 1e-12 {
			t.Errorf("Log(Exp) element %d: expected %v, got %v", i, x.AsFloat64()[i], v)
		}
	}
}

func TestLogZero(t *testing.T) {
	backend := New()

	x := tensor.FromFloat32([]float32{0}, tensor.Shape{1}, backend.Device())
	result := backend.Log(x)
	if !math.IsInf(float64(result.AsFloat32()[0]), -1) {
		t.Errorf("Expected -Inf for log(0), got %v", result.AsFloat32()[0])
	}
}
