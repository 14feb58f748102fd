package score

import (
	"github.com/born-ml/seqscore/internal/tensor"
	"github.com/born-ml/seqscore/internal/vocab"
)

// ScoreType selects the sign convention of emitted scores.
type ScoreType string

const (
	// LogProb emits log-probabilities (higher is better).
	LogProb ScoreType = "logprob"
	// NegLogProb emits negated log-probabilities (lower is better).
	NegLogProb ScoreType = "neglogprob"
)

// Config holds the scoring knobs shared by every batch.
type Config struct {
	// ScoreType selects the sign convention. Defaults to neglogprob
	// when empty.
	ScoreType ScoreType

	// Temperature flattens (>1) or sharpens (<1) the model distribution
	// before probabilities are read. 0 means no scaling.
	Temperature float64

	// LengthPenaltyAlpha and LengthPenaltyBeta parameterize the length
	// normalization ((beta + len) / (beta + 1))^alpha.
	LengthPenaltyAlpha float64
	LengthPenaltyBeta  float64

	// BrevityPenaltyWeight scales the brevity penalty; 0 disables it.
	BrevityPenaltyWeight float64

	// ConstantLengthRatio, when positive, replaces the model's predicted
	// target/source length ratio for every sentence. The brevity
	// penalty's reference length becomes ratio * sourceLength.
	ConstantLengthRatio float64
}

// BatchScorer turns model logits over a batch into one score per
// sentence pair: softmax the logits, gather each gold-label probability,
// log, mask padded steps, sum over time, then normalize by the length
// and brevity penalties.
type BatchScorer struct {
	backend        tensor.Backend
	scoreType      ScoreType
	temperature    float64
	lengthPenalty  LengthPenalty
	brevityPenalty BrevityPenalty
	constantRatio  float64
}

// NewBatchScorer validates the configuration and binds it to a backend.
func NewBatchScorer(backend tensor.Backend, cfg Config) (*BatchScorer, error) {
	scoreType := cfg.ScoreType
	if scoreType == "" {
		scoreType = NegLogProb
	}
	switch scoreType {
	case LogProb, NegLogProb:
	default:
		return nil, configErrorf("unknown score type %q", scoreType)
	}
	if cfg.Temperature < 0 {
		return nil, configErrorf("temperature must be positive, got %g", cfg.Temperature)
	}

	return &BatchScorer{
		backend:        backend,
		scoreType:      scoreType,
		temperature:    cfg.Temperature,
		lengthPenalty:  LengthPenalty{Alpha: cfg.LengthPenaltyAlpha, Beta: cfg.LengthPenaltyBeta},
		brevityPenalty: BrevityPenalty{Weight: cfg.BrevityPenaltyWeight},
		constantRatio:  cfg.ConstantLengthRatio,
	}, nil
}

// Score reduces a batch of logits to per-sentence scores.
//
// logits: (batch, time, vocab) float; labels: (batch, time) int32;
// lengthRatio, sourceLength, targetLength: (batch,) float of the logits
// dtype. Returns a (batch,) float tensor of the logits dtype.
func (s *BatchScorer) Score(logits, labels, lengthRatio, sourceLength, targetLength *tensor.RawTensor) *tensor.RawTensor {
	be := s.backend

	if s.temperature != 0 && s.temperature != 1 {
		logits = be.DivScalar(logits, s.temperature)
	}
	dists := be.Softmax(logits, -1)

	// Pick each gold-label probability along the vocabulary axis.
	// probs and tokenScores: (batch, time)
	picked := be.Gather(dists, -1, be.Unsqueeze(labels, -1))
	probs := be.Squeeze(picked, -1)
	tokenScores := be.Log(probs)
	if s.scoreType == NegLogProb {
		tokenScores = be.MulScalar(tokenScores, -1)
	}

	// Padded label steps contribute nothing to the sum.
	padMask := be.NotEqual(labels, tensor.Full(labels.Shape(), float64(vocab.PadID), labels.DType(), labels.Device()))
	masked := be.Where(padMask, tokenScores, tensor.ZerosLike(tokenScores))
	scores := be.SumDim(masked, 1, false)

	// Hypothesis length excludes the BOS step; a degenerate row with no
	// real target clamps to one token so the penalties stay finite. The
	// caller overrides such rows downstream.
	hypLength := be.SubScalar(targetLength, 1)
	ones := tensor.Full(hypLength.Shape(), 1, hypLength.DType(), hypLength.Device())
	hypLength = be.Where(be.Lower(hypLength, ones), ones, hypLength)

	scores = be.Div(scores, s.lengthPenalty.Apply(be, hypLength))

	if s.constantRatio > 0 {
		lengthRatio = tensor.Full(lengthRatio.Shape(), s.constantRatio,
			lengthRatio.DType(), lengthRatio.Device())
	}
	refLength := be.Mul(lengthRatio, sourceLength)
	return be.Sub(scores, s.brevityPenalty.Apply(be, hypLength, refLength))
}
