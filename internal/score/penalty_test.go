package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/seqscore/internal/backend/cpu"
	"github.com/born-ml/seqscore/internal/tensor"
)

func TestLengthPenaltyDisabled(t *testing.T) {
	be := cpu.New()
	lengths := tensor.FromFloat32([]float32{1, 5, 20}, tensor.Shape{3}, tensor.CPU)

	result := LengthPenalty{Alpha: 0, Beta: 0}.Apply(be, lengths)
	for _, v := range result.AsFloat32() {
		assert.InDelta(t, 1.0, float64(v), 1e-6)
	}
}

func TestLengthPenaltyLinear(t *testing.T) {
	be := cpu.New()
	lengths := tensor.FromFloat32([]float32{1, 2, 10}, tensor.Shape{3}, tensor.CPU)

	// Alpha 1, beta 0 reduces to the raw length.
	result := LengthPenalty{Alpha: 1, Beta: 0}.Apply(be, lengths)
	expected := []float64{1, 2, 10}
	for i, v := range result.AsFloat32() {
		assert.InDelta(t, expected[i], float64(v), 1e-5)
	}
}

func TestLengthPenaltyGNMT(t *testing.T) {
	be := cpu.New()
	lengths := tensor.FromFloat64([]float64{7}, tensor.Shape{1}, tensor.CPU)

	// ((5 + 7) / (5 + 1))^0.6 = 2^0.6
	result := LengthPenalty{Alpha: 0.6, Beta: 5}.Apply(be, lengths)
	assert.InDelta(t, 1.5157165665103982, result.AsFloat64()[0], 1e-9)
}

func TestBrevityPenaltyDisabled(t *testing.T) {
	be := cpu.New()
	hyp := tensor.FromFloat32([]float32{2, 3}, tensor.Shape{2}, tensor.CPU)
	ref := tensor.FromFloat32([]float32{10, 10}, tensor.Shape{2}, tensor.CPU)

	result := BrevityPenalty{Weight: 0}.Apply(be, hyp, ref)
	for _, v := range result.AsFloat32() {
		assert.Zero(t, v)
	}
}

func TestBrevityPenalty(t *testing.T) {
	be := cpu.New()

	// Row 0: hyp 2 vs ref 4 -> 1 - 4/2 = -1, penalty = weight * -1.
	// Row 1: hyp 5 vs ref 4 -> longer than reference, no penalty.
	hyp := tensor.FromFloat64([]float64{2, 5}, tensor.Shape{2}, tensor.CPU)
	ref := tensor.FromFloat64([]float64{4, 4}, tensor.Shape{2}, tensor.CPU)

	result := BrevityPenalty{Weight: 0.5}.Apply(be, hyp, ref)
	assert.InDelta(t, -0.5, result.AsFloat64()[0], 1e-12)
	assert.InDelta(t, 0.0, result.AsFloat64()[1], 1e-12)
}

func TestBrevityPenaltyEqualLengths(t *testing.T) {
	be := cpu.New()
	hyp := tensor.FromFloat64([]float64{3}, tensor.Shape{1}, tensor.CPU)
	ref := tensor.FromFloat64([]float64{3}, tensor.Shape{1}, tensor.CPU)

	result := BrevityPenalty{Weight: 1}.Apply(be, hyp, ref)
	assert.InDelta(t, 0.0, result.AsFloat64()[0], 1e-12)
}
