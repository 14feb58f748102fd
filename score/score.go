// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package score is the public surface for scoring parallel sentence
// pairs with a seq2seq model.
//
// Example:
//
//	import (
//	    "os"
//	    "strings"
//
//	    "github.com/born-ml/seqscore/backend/cpu"
//	    "github.com/born-ml/seqscore/score"
//	    "github.com/born-ml/seqscore/tensor"
//	)
//
//	srcVocab, _ := score.LoadVocab("source.vocab.json")
//	tgtVocab, _ := score.LoadVocab("target.vocab.json")
//	m, _ := score.NewUniformModel(len(tgtVocab), tensor.Float32, tensor.CPU)
//
//	s, _ := score.NewScorer(m, []tensor.Backend{cpu.New()},
//	    srcVocab, tgtVocab, score.Config{}, logger)
//	defer s.Close()
//
//	iter, _ := score.NewPairReader(strings.NewReader(srcText),
//	    strings.NewReader(tgtText), srcVocab, tgtVocab, 64, tensor.CPU)
//	stats, _ := s.Score(iter, score.NewPairWriter(os.Stdout))
package score

import (
	"io"

	"go.uber.org/zap"

	"github.com/born-ml/seqscore/internal/data"
	"github.com/born-ml/seqscore/internal/model"
	"github.com/born-ml/seqscore/internal/output"
	"github.com/born-ml/seqscore/internal/score"
	"github.com/born-ml/seqscore/internal/vocab"
	"github.com/born-ml/seqscore/tensor"
)

// Config holds the scoring knobs; the zero value scores negated
// log-probabilities with no penalties.
type Config = score.Config

// ScoreType selects the sign convention of emitted scores.
type ScoreType = score.ScoreType

// Score type values.
const (
	LogProb    = score.LogProb
	NegLogProb = score.NegLogProb
)

// ConfigError reports an invalid configuration.
type ConfigError = score.ConfigError

// Scorer drives a model over a stream of batches.
type Scorer = score.Scorer

// BatchScorer reduces model logits over one batch to per-pair scores.
type BatchScorer = score.BatchScorer

// RunStats summarizes one scoring run.
type RunStats = score.RunStats

// Model is the forward interface scoring drives.
type Model = model.Model

// ModelOutput is one forward pass over a batch.
type ModelOutput = model.Output

// Vocab maps token strings to ids.
type Vocab = vocab.Vocab

// Batch is one rectangular block of sentence pairs.
type Batch = data.Batch

// BatchIter is a finite ordered stream of batches.
type BatchIter = data.BatchIter

// Handler consumes scored pairs.
type Handler = output.Handler

// NewScorer binds a model and configuration to a set of backends.
func NewScorer(m Model, backends []tensor.Backend, sourceVocab, targetVocab Vocab,
	cfg Config, logger *zap.SugaredLogger) (*Scorer, error) {
	return score.NewScorer(m, backends, sourceVocab, targetVocab, cfg, logger)
}

// NewBatchScorer binds a configuration to a single backend.
func NewBatchScorer(backend tensor.Backend, cfg Config) (*BatchScorer, error) {
	return score.NewBatchScorer(backend, cfg)
}

// LoadVocab reads a JSON vocabulary file.
func LoadVocab(path string) (Vocab, error) {
	return vocab.Load(path)
}

// NewUniformModel builds the weightless uniform baseline model.
func NewUniformModel(vocabSize int, dtype tensor.DataType, device tensor.Device) (Model, error) {
	return model.NewUniform(vocabSize, dtype, device)
}

// NewPairReader streams batches from parallel source and target text.
func NewPairReader(src, tgt io.Reader, sourceVocab, targetVocab Vocab,
	batchSize int, device tensor.Device) (BatchIter, error) {
	return data.NewPairReader(src, tgt, sourceVocab, targetVocab, batchSize, device)
}

// NewScoreWriter emits one score per line.
func NewScoreWriter(w io.Writer) Handler { return output.NewScoreWriter(w) }

// NewPairWriter emits score, source and target per line, tab-separated.
func NewPairWriter(w io.Writer) Handler { return output.NewPairWriter(w) }

// NewJSONWriter emits one JSON object per line.
func NewJSONWriter(w io.Writer) Handler { return output.NewJSONWriter(w) }
