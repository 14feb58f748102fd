// Package score implements sentence-pair scoring: per-token model
// probabilities reduced to one normalized quality score per pair.
package score

import (
	"github.com/born-ml/seqscore/internal/tensor"
)

// LengthPenalty normalizes sequence scores by hypothesis length,
// computing ((beta + length) / (beta + 1))^alpha per element. Alpha 0
// disables the penalty (every value is 1); alpha 1 with beta 0 is plain
// length averaging.
type LengthPenalty struct {
	Alpha float64
	Beta  float64
}

// Apply evaluates the penalty over a float tensor of lengths.
// Lengths must be positive.
func (p LengthPenalty) Apply(be tensor.Backend, lengths *tensor.RawTensor) *tensor.RawTensor {
	if p.Alpha == 0 {
		return tensor.Full(lengths.Shape(), 1, lengths.DType(), lengths.Device())
	}
	// x^alpha as exp(alpha * log(x)).
	x := be.DivScalar(be.AddScalar(lengths, p.Beta), p.Beta+1)
	return be.Exp(be.MulScalar(be.Log(x), p.Alpha))
}

// BrevityPenalty penalizes hypotheses shorter than a reference length,
// computing weight * min(0, 1 - ref/hyp) per element. The result is
// subtracted from a log-domain score; weight 0 disables the penalty.
type BrevityPenalty struct {
	Weight float64
}

// Apply evaluates the penalty for hypothesis lengths against reference
// lengths. Both tensors share shape and dtype; hypothesis lengths must
// be positive.
func (p BrevityPenalty) Apply(be tensor.Backend, hypLengths, refLengths *tensor.RawTensor) *tensor.RawTensor {
	if p.Weight == 0 {
		return tensor.ZerosLike(hypLengths)
	}
	// min(0, 1 - ref/hyp)
	margin := be.AddScalar(be.MulScalar(be.Div(refLengths, hypLengths), -1), 1)
	zeros := tensor.ZerosLike(margin)
	capped := be.Where(be.Lower(margin, zeros), margin, zeros)
	return be.MulScalar(capped, p.Weight)
}
