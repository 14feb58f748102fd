package score

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/born-ml/seqscore/internal/data"
	"github.com/born-ml/seqscore/internal/model"
	"github.com/born-ml/seqscore/internal/output"
	"github.com/born-ml/seqscore/internal/tensor"
	"github.com/born-ml/seqscore/internal/vocab"
)

// RunStats summarizes one scoring run.
type RunStats struct {
	Sentences    int
	Batches      int
	TotalSeconds float64

	SecondsPerSentence float64
	SentencesPerSecond float64
}

// Scorer drives a model over a stream of batches. Each batch splits into
// one shard per backend; shards score concurrently and reassemble in
// row order, so results are independent of the device count.
type Scorer struct {
	model    model.Model
	backends []tensor.Backend
	scorers  []*BatchScorer

	sourceInv vocab.Inverse
	targetInv vocab.Inverse
	exclude   vocab.ExcludeSet

	pool *ants.Pool
	log  *zap.SugaredLogger
}

// NewScorer binds a model and scoring configuration to a set of compute
// backends. The vocabularies render ids back to text for the output
// handler; logger receives the run summary.
func NewScorer(m model.Model, backends []tensor.Backend, sourceVocab, targetVocab vocab.Vocab,
	cfg Config, logger *zap.SugaredLogger) (*Scorer, error) {
	if m == nil {
		return nil, configErrorf("model must not be nil")
	}
	if len(backends) == 0 {
		return nil, configErrorf("at least one backend is required")
	}

	scorers := make([]*BatchScorer, len(backends))
	for i, be := range backends {
		bs, err := NewBatchScorer(be, cfg)
		if err != nil {
			return nil, err
		}
		scorers[i] = bs
	}

	pool, err := ants.NewPool(len(backends))
	if err != nil {
		return nil, fmt.Errorf("score: create worker pool: %w", err)
	}

	return &Scorer{
		model:     m,
		backends:  backends,
		scorers:   scorers,
		sourceInv: sourceVocab.Reverse(),
		targetInv: targetVocab.Reverse(),
		exclude:   vocab.NewExcludeSet(sourceVocab, targetVocab),
		pool:      pool,
		log:       logger,
	}, nil
}

// Close releases the worker pool.
func (s *Scorer) Close() {
	s.pool.Release()
}

// ScoreBatch scores one batch across all backends and returns a (batch,)
// float tensor in the original row order.
func (s *Scorer) ScoreBatch(b *data.Batch) (*tensor.RawTensor, error) {
	shards := b.Split(len(s.backends))
	results := make([]*tensor.RawTensor, len(shards))
	shardErrs := make([]error, len(shards))

	var wg sync.WaitGroup
	for _, shard := range shards {
		shard := shard
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			results[shard.Index], shardErrs[shard.Index] = s.scoreShard(shard)
		})
		if err != nil {
			wg.Done()
			shardErrs[shard.Index] = fmt.Errorf("score: submit shard %d: %w", shard.Index, err)
		}
	}
	wg.Wait()

	for _, err := range shardErrs {
		if err != nil {
			return nil, err
		}
	}
	if len(results) == 1 {
		return results[0], nil
	}
	return s.backends[0].Cat(results, 0), nil
}

// scoreShard runs the model forward over one shard and reduces the
// logits to per-sentence scores on the shard's backend.
func (s *Scorer) scoreShard(shard data.Shard) (*tensor.RawTensor, error) {
	be := s.backends[shard.Index]
	b := shard.Batch

	sourceLength := b.SourceLength
	targetLength := b.TargetLength
	if dt := s.model.DType(); dt != sourceLength.DType() {
		sourceLength = be.Cast(sourceLength, dt)
		targetLength = be.Cast(targetLength, dt)
	}

	out, err := s.model.Forward(b.Source, sourceLength, b.Target, targetLength)
	if err != nil {
		return nil, fmt.Errorf("score: model forward: %w", err)
	}

	lengthRatio := out.LengthRatio
	if lengthRatio == nil {
		lengthRatio = tensor.ZerosLike(sourceLength)
	}
	return s.scorers[shard.Index].Score(out.Logits, b.Labels, lengthRatio, sourceLength, targetLength), nil
}

// Score consumes the batch stream in order, emits every scored pair to
// the handler, and logs a run summary. Rows whose first source or first
// target id is the padding id score negative infinity.
func (s *Scorer) Score(iter data.BatchIter, handler output.Handler) (RunStats, error) {
	var (
		totalTime  float64
		sentenceNo int
		batchNo    int
	)

	for {
		b, err := iter.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return RunStats{}, err
		}
		batchNo++

		tic := time.Now()
		scores, err := s.ScoreBatch(b)
		if err != nil {
			return RunStats{}, err
		}
		batchTime := time.Since(tic).Seconds()
		totalTime += batchTime

		values, err := floatValues(scores)
		if err != nil {
			return RunStats{}, err
		}

		for i := 0; i < b.Size; i++ {
			sentenceNo++

			sourceTokens := s.sourceInv.ToTokens(b.SourceRow(i), s.exclude)
			targetString := strings.Join(s.targetInv.ToTokens(b.TargetRow(i), s.exclude), " ")

			value := values[i]
			if b.PadStartsRow(i) {
				value = math.Inf(-1)
			}

			if handler != nil {
				err := handler.Handle(
					&output.Input{ID: sentenceNo, Tokens: sourceTokens},
					&output.Output{ID: sentenceNo, Translation: targetString, Score: value},
					batchTime)
				if err != nil {
					return RunStats{}, fmt.Errorf("score: handle sentence %d: %w", sentenceNo, err)
				}
			}
		}
	}

	stats := RunStats{
		Sentences:    sentenceNo,
		Batches:      batchNo,
		TotalSeconds: totalTime,
	}
	if sentenceNo != 0 {
		stats.SecondsPerSentence = totalTime / float64(sentenceNo)
		stats.SentencesPerSecond = float64(sentenceNo) / totalTime
		s.log.Infof("Processed %d lines in %d batches. Total time: %.4f sec, sec/sent: %.4f, sent/sec: %.4f",
			sentenceNo, int(math.Ceil(float64(sentenceNo)/float64(batchNo))), totalTime,
			stats.SecondsPerSentence, stats.SentencesPerSecond)
	} else {
		s.log.Info("Processed 0 lines.")
	}
	return stats, nil
}

// floatValues reads a (batch,) float tensor into float64s.
func floatValues(t *tensor.RawTensor) ([]float64, error) {
	switch t.DType() {
	case tensor.Float32:
		src := t.AsFloat32()
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v)
		}
		return out, nil
	case tensor.Float64:
		src := t.AsFloat64()
		out := make([]float64, len(src))
		copy(out, src)
		return out, nil
	default:
		return nil, fmt.Errorf("score: scores must be float, got %s", t.DType())
	}
}
