package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/seqscore/internal/backend/cpu"
	"github.com/born-ml/seqscore/internal/tensor"
)

func TestNewBatchScorerValidation(t *testing.T) {
	be := cpu.New()

	_, err := NewBatchScorer(be, Config{ScoreType: "perplexity"})
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewBatchScorer(be, Config{Temperature: -1})
	require.Error(t, err)

	bs, err := NewBatchScorer(be, Config{})
	require.NoError(t, err)
	assert.Equal(t, NegLogProb, bs.scoreType)
}

// scoreSingle runs the batch scorer over a (1, time, vocab) logits block
// with neutral length handling unless cfg says otherwise.
func scoreSingle(t *testing.T, cfg Config, logits []float64, time, vocabSize int,
	labels []int32, srcLen, tgtLen float64) float64 {
	t.Helper()
	be := cpu.New()

	bs, err := NewBatchScorer(be, cfg)
	require.NoError(t, err)

	logitsT := tensor.FromFloat64(logits, tensor.Shape{1, time, vocabSize}, tensor.CPU)
	labelsT := tensor.FromInt32(labels, tensor.Shape{1, time}, tensor.CPU)
	ratioT := tensor.FromFloat64([]float64{0}, tensor.Shape{1}, tensor.CPU)
	srcLenT := tensor.FromFloat64([]float64{srcLen}, tensor.Shape{1}, tensor.CPU)
	tgtLenT := tensor.FromFloat64([]float64{tgtLen}, tensor.Shape{1}, tensor.CPU)

	result := bs.Score(logitsT, labelsT, ratioT, srcLenT, tgtLenT)
	require.Equal(t, tensor.Shape{1}, result.Shape())
	return result.AsFloat64()[0]
}

func TestScoreWorkedExample(t *testing.T) {
	// One sentence, two steps, vocabulary of two. Step 0 logits [0, ln 3]
	// softmax to [1/4, 3/4]; the gold label is id 1. Step 1 is padding.
	logits := []float64{0, math.Log(3), 0, 0}
	labels := []int32{1, 0}

	got := scoreSingle(t, Config{}, logits, 2, 2, labels, 3, 2)

	// neglogprob of 3/4, length penalty alpha defaults to 0 via Config{}.
	assert.InDelta(t, -math.Log(0.75), got, 1e-12)
}

func TestScoreLogProbIsNegated(t *testing.T) {
	logits := []float64{0, math.Log(3), 0, 0}
	labels := []int32{1, 0}

	neg := scoreSingle(t, Config{ScoreType: NegLogProb}, logits, 2, 2, labels, 3, 2)
	pos := scoreSingle(t, Config{ScoreType: LogProb}, logits, 2, 2, labels, 3, 2)

	assert.InDelta(t, -pos, neg, 1e-12)
}

func TestScorePadMasking(t *testing.T) {
	// Two real steps vs one real step plus padding: the padded step must
	// contribute nothing.
	logitsTwo := []float64{0, math.Log(3), 0, math.Log(3)}
	full := scoreSingle(t, Config{}, logitsTwo, 2, 2, []int32{1, 1}, 3, 3)
	half := scoreSingle(t, Config{}, logitsTwo, 2, 2, []int32{1, 0}, 3, 2)

	assert.InDelta(t, 2*half, full, 1e-12)
}

func TestScoreLengthPenaltyDivides(t *testing.T) {
	logits := []float64{0, math.Log(3), 0, math.Log(3)}
	labels := []int32{1, 1}

	raw := scoreSingle(t, Config{}, logits, 2, 2, labels, 3, 3)
	// targetLength 3 includes BOS, so the hypothesis length is 2.
	normalized := scoreSingle(t, Config{LengthPenaltyAlpha: 1}, logits, 2, 2, labels, 3, 3)

	assert.InDelta(t, raw/2, normalized, 1e-12)
}

func TestScoreTemperatureUniformInvariant(t *testing.T) {
	// Uniform logits stay uniform under any temperature.
	logits := []float64{1, 1, 1, 1}
	labels := []int32{1, 1}

	base := scoreSingle(t, Config{}, logits, 2, 2, labels, 3, 3)
	heated := scoreSingle(t, Config{Temperature: 4}, logits, 2, 2, labels, 3, 3)

	assert.InDelta(t, base, heated, 1e-12)
	assert.InDelta(t, 2*math.Log(2), base, 1e-12)
}

func TestScoreTemperatureFlattens(t *testing.T) {
	// Sharp logits flatten under high temperature, so the gold label's
	// probability drops and the negated log-probability rises.
	logits := []float64{0, 4}
	labels := []int32{1}

	base := scoreSingle(t, Config{}, logits, 1, 2, labels, 2, 2)
	heated := scoreSingle(t, Config{Temperature: 8}, logits, 1, 2, labels, 2, 2)

	assert.Greater(t, heated, base)
}

func TestScoreBrevityPenalty(t *testing.T) {
	logits := []float64{0, 0}
	labels := []int32{1}

	// Hypothesis length 1, reference length ratio 1 * source 4 = 4:
	// penalty = 0.5 * (1 - 4/1) = -1.5, subtracted from the score.
	without := scoreSingle(t, Config{}, logits, 1, 2, labels, 4, 2)
	with := scoreSingle(t, Config{BrevityPenaltyWeight: 0.5, ConstantLengthRatio: 1},
		logits, 1, 2, labels, 4, 2)

	assert.InDelta(t, without+1.5, with, 1e-12)
}

func TestScoreConstantRatioIgnoresModelRatio(t *testing.T) {
	be := cpu.New()
	bs, err := NewBatchScorer(be, Config{BrevityPenaltyWeight: 1, ConstantLengthRatio: 0.5})
	require.NoError(t, err)

	logits := tensor.FromFloat64([]float64{0, 0}, tensor.Shape{1, 1, 2}, tensor.CPU)
	labels := tensor.FromInt32([]int32{1}, tensor.Shape{1, 1}, tensor.CPU)
	srcLen := tensor.FromFloat64([]float64{6}, tensor.Shape{1}, tensor.CPU)
	tgtLen := tensor.FromFloat64([]float64{2}, tensor.Shape{1}, tensor.CPU)

	// Wildly different model-predicted ratios must not matter.
	small := tensor.FromFloat64([]float64{0.01}, tensor.Shape{1}, tensor.CPU)
	large := tensor.FromFloat64([]float64{100}, tensor.Shape{1}, tensor.CPU)

	a := bs.Score(logits, labels, small, srcLen, tgtLen).AsFloat64()[0]
	b := bs.Score(logits, labels, large, srcLen, tgtLen).AsFloat64()[0]
	assert.Equal(t, a, b)

	// And the configured constant is actually in effect:
	// ref = 0.5 * 6 = 3, hyp = 1, penalty = min(0, 1 - 3) = -2.
	assert.InDelta(t, math.Log(2)+2, a, 1e-12)
}

func TestScoreDegenerateTargetStaysFinite(t *testing.T) {
	// targetLength 1 means BOS only; the clamped hypothesis length keeps
	// the penalties finite even with length normalization on.
	logits := []float64{0, 0}
	labels := []int32{0}

	got := scoreSingle(t, Config{LengthPenaltyAlpha: 1, BrevityPenaltyWeight: 0.5, ConstantLengthRatio: 1},
		logits, 1, 2, labels, 4, 1)

	assert.False(t, math.IsNaN(got))
	assert.False(t, math.IsInf(got, 0))
}

func TestScoreBatchedRowsIndependent(t *testing.T) {
	be := cpu.New()
	bs, err := NewBatchScorer(be, Config{})
	require.NoError(t, err)

	// Two rows with different label picks over the same distributions.
	logits := tensor.FromFloat64([]float64{
		0, math.Log(3),
		0, math.Log(3),
	}, tensor.Shape{2, 1, 2}, tensor.CPU)
	labels := tensor.FromInt32([]int32{1, 0}, tensor.Shape{2, 1}, tensor.CPU)
	ratio := tensor.FromFloat64([]float64{0, 0}, tensor.Shape{2}, tensor.CPU)
	srcLen := tensor.FromFloat64([]float64{2, 2}, tensor.Shape{2}, tensor.CPU)
	tgtLen := tensor.FromFloat64([]float64{2, 2}, tensor.Shape{2}, tensor.CPU)

	result := bs.Score(logits, labels, ratio, srcLen, tgtLen)
	values := result.AsFloat64()

	assert.InDelta(t, -math.Log(0.75), values[0], 1e-12)
	// Row 1 label is PAD, so every step masks out.
	assert.Zero(t, values[1])
}
