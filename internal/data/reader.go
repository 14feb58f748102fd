package data

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/seqscore/internal/tensor"
	"github.com/born-ml/seqscore/internal/vocab"
)

// BatchIter is a finite ordered stream of scoring batches.
// Next returns io.EOF when the stream is exhausted.
type BatchIter interface {
	Next() (*Batch, error)
}

// PairReader streams batches from parallel source and target text.
// Each line is one sentence of whitespace-separated tokens; line i of the
// source pairs with line i of the target. EOS closes every source row and
// BOS opens every target row before ids are padded into a batch.
type PairReader struct {
	src *bufio.Scanner
	tgt *bufio.Scanner

	srcVocab vocab.Vocab
	tgtVocab vocab.Vocab

	batchSize int
	device    tensor.Device

	line int
	done bool
}

// NewPairReader wraps two parallel text streams into a batch iterator.
func NewPairReader(src, tgt io.Reader, srcVocab, tgtVocab vocab.Vocab, batchSize int, device tensor.Device) (*PairReader, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("data: batch size must be positive, got %d", batchSize)
	}
	srcScan := bufio.NewScanner(src)
	srcScan.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	tgtScan := bufio.NewScanner(tgt)
	tgtScan.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &PairReader{
		src:       srcScan,
		tgt:       tgtScan,
		srcVocab:  srcVocab,
		tgtVocab:  tgtVocab,
		batchSize: batchSize,
		device:    device,
	}, nil
}

// Next reads up to batchSize sentence pairs and assembles them into a
// batch. The final batch may be smaller. Returns io.EOF once both
// streams are exhausted, and an error when they end at different lines.
func (r *PairReader) Next() (*Batch, error) {
	if r.done {
		return nil, io.EOF
	}

	sourceIDs := make([][]int32, 0, r.batchSize)
	targetIDs := make([][]int32, 0, r.batchSize)

	for len(sourceIDs) < r.batchSize {
		srcOK := r.src.Scan()
		tgtOK := r.tgt.Scan()

		if srcOK != tgtOK {
			r.done = true
			return nil, fmt.Errorf("data: source and target streams end at different lengths (line %d)", r.line+1)
		}
		if !srcOK {
			if err := r.scanErr(); err != nil {
				r.done = true
				return nil, err
			}
			r.done = true
			break
		}
		r.line++

		src := r.srcVocab.ToIDs(strings.Fields(r.src.Text()))
		src = append(src, r.srcVocab[vocab.EosSymbol])

		tgt := append([]int32{r.tgtVocab[vocab.BosSymbol]},
			r.tgtVocab.ToIDs(strings.Fields(r.tgt.Text()))...)

		sourceIDs = append(sourceIDs, src)
		targetIDs = append(targetIDs, tgt)
	}

	if len(sourceIDs) == 0 {
		return nil, io.EOF
	}
	return NewBatch(sourceIDs, targetIDs, r.tgtVocab[vocab.EosSymbol], r.device)
}

func (r *PairReader) scanErr() error {
	if err := r.src.Err(); err != nil {
		return fmt.Errorf("data: read source: %w", err)
	}
	if err := r.tgt.Err(); err != nil {
		return fmt.Errorf("data: read target: %w", err)
	}
	return nil
}

// SliceIter serves pre-built batches in order. Used by tests and by
// callers that assemble batches themselves.
type SliceIter struct {
	batches []*Batch
	next    int
}

// NewSliceIter wraps a fixed batch list into an iterator.
func NewSliceIter(batches []*Batch) *SliceIter {
	return &SliceIter{batches: batches}
}

// Next returns the next batch or io.EOF.
func (it *SliceIter) Next() (*Batch, error) {
	if it.next >= len(it.batches) {
		return nil, io.EOF
	}
	b := it.batches[it.next]
	it.next++
	return b, nil
}
