// Package model defines the forward interface scoring drives.
//
// Scoring is model-agnostic: anything that maps a source/target id pair
// to next-token logits can be scored. The package ships a uniform
// baseline so the pipeline runs end to end without trained weights;
// real seq2seq models plug in behind the same interface.
package model

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/tensor"
)

// Output is one forward pass over a batch.
//
// Logits has shape (batch, targetLen, vocab) and the model's dtype.
// LengthRatio, when non-nil, is the model's predicted target/source
// length ratio with shape (batch,); scorers substitute zeros when nil,
// which neutralizes the brevity penalty's reference length.
type Output struct {
	Logits      *tensor.RawTensor
	LengthRatio *tensor.RawTensor
}

// Model scores target prefixes against a source sentence.
type Model interface {
	// Forward runs teacher-forced decoding over the whole target and
	// returns next-token logits for every position.
	Forward(source, sourceLength, target, targetLength *tensor.RawTensor) (*Output, error)

	// DType is the floating dtype the model computes in. Callers cast
	// float inputs to this dtype before Forward.
	DType() tensor.DataType
}

// Uniform is a weightless baseline that assigns every vocabulary entry
// the same probability. Useful for exercising the pipeline and as a
// perplexity floor in tests.
type Uniform struct {
	vocabSize int
	dtype     tensor.DataType
	device    tensor.Device
}

// NewUniform builds a uniform model over a vocabulary of the given size.
func NewUniform(vocabSize int, dtype tensor.DataType, device tensor.Device) (*Uniform, error) {
	if vocabSize < 1 {
		return nil, fmt.Errorf("model: vocabulary size must be positive, got %d", vocabSize)
	}
	switch dtype {
	case tensor.Float32, tensor.Float64:
	default:
		return nil, fmt.Errorf("model: unsupported dtype %s", dtype)
	}
	return &Uniform{vocabSize: vocabSize, dtype: dtype, device: device}, nil
}

// Forward returns all-zero logits, which softmax to a uniform
// distribution over the vocabulary. No length ratio is predicted.
func (m *Uniform) Forward(source, sourceLength, target, targetLength *tensor.RawTensor) (*Output, error) {
	tgtShape := target.Shape()
	if len(tgtShape) != 2 {
		return nil, fmt.Errorf("model: target must be (batch, time), got %v", tgtShape)
	}
	logits := tensor.Zeros(tensor.Shape{tgtShape[0], tgtShape[1], m.vocabSize}, m.dtype, m.device)
	return &Output{Logits: logits}, nil
}

// DType returns the model's floating dtype.
func (m *Uniform) DType() tensor.DataType {
	return m.dtype
}
