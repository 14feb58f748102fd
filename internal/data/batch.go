// Package data builds scoring batches from parallel sentence pairs.
//
// A batch carries source and target token ids padded to a rectangle,
// per-sentence lengths, and the gold labels the scorer gathers
// probabilities for. Batches split into contiguous row-range shards so
// each compute device scores an independent slice.
package data

import (
	"fmt"

	"github.com/born-ml/seqscore/internal/tensor"
	"github.com/born-ml/seqscore/internal/vocab"
)

// Batch is one rectangular block of sentence pairs ready for scoring.
//
// Source, Target and Labels are int32 tensors of shape (batch, seqLen);
// SourceLength and TargetLength are float32 tensors of shape (batch,).
// Labels are the target ids shifted left one step with EOS closing each
// row, so position t holds the id the model should predict at step t.
type Batch struct {
	Source       *tensor.RawTensor
	SourceLength *tensor.RawTensor
	Target       *tensor.RawTensor
	TargetLength *tensor.RawTensor
	Labels       *tensor.RawTensor

	Size int
}

// NewBatch assembles a batch from ragged id sequences. Source rows must
// already end with EOS and target rows begin with BOS; NewBatch only
// pads, derives lengths and builds the shifted label rows.
func NewBatch(sourceIDs, targetIDs [][]int32, eosID int32, device tensor.Device) (*Batch, error) {
	if len(sourceIDs) != len(targetIDs) {
		return nil, fmt.Errorf("data: source and target row counts differ: %d vs %d",
			len(sourceIDs), len(targetIDs))
	}
	if len(sourceIDs) == 0 {
		return nil, fmt.Errorf("data: empty batch")
	}

	n := len(sourceIDs)
	srcLen := maxRowLen(sourceIDs)
	tgtLen := maxRowLen(targetIDs)

	source := make([]int32, n*srcLen)
	target := make([]int32, n*tgtLen)
	labels := make([]int32, n*tgtLen)
	sourceLength := make([]float32, n)
	targetLength := make([]float32, n)

	for i := range sourceIDs {
		copy(source[i*srcLen:], sourceIDs[i])
		sourceLength[i] = float32(len(sourceIDs[i]))

		row := targetIDs[i]
		copy(target[i*tgtLen:], row)
		targetLength[i] = float32(len(row))

		// Shift left by one step; EOS closes the row.
		for t := 0; t+1 < len(row); t++ {
			labels[i*tgtLen+t] = row[t+1]
		}
		if len(row) > 0 {
			labels[i*tgtLen+len(row)-1] = eosID
		}
	}

	return &Batch{
		Source:       tensor.FromInt32(source, tensor.Shape{n, srcLen}, device),
		SourceLength: tensor.FromFloat32(sourceLength, tensor.Shape{n}, device),
		Target:       tensor.FromInt32(target, tensor.Shape{n, tgtLen}, device),
		TargetLength: tensor.FromFloat32(targetLength, tensor.Shape{n}, device),
		Labels:       tensor.FromInt32(labels, tensor.Shape{n, tgtLen}, device),
		Size:         n,
	}, nil
}

// PadStartsRow reports whether row i begins with the padding id on
// either side, marking a degenerate pair whose score the scoring loop
// overrides with -inf.
func (b *Batch) PadStartsRow(i int) bool {
	srcCols := b.Source.Shape()[1]
	tgtCols := b.Target.Shape()[1]
	return b.Source.AsInt32()[i*srcCols] == vocab.PadID ||
		b.Target.AsInt32()[i*tgtCols] == vocab.PadID
}

// SourceRow returns the ids of source row i, padding included.
func (b *Batch) SourceRow(i int) []int32 {
	cols := b.Source.Shape()[1]
	return b.Source.AsInt32()[i*cols : (i+1)*cols]
}

// TargetRow returns the ids of target row i, padding included.
func (b *Batch) TargetRow(i int) []int32 {
	cols := b.Target.Shape()[1]
	return b.Target.AsInt32()[i*cols : (i+1)*cols]
}

// Shard is one contiguous row slice of a batch, tagged with its position
// so results reassemble in the original order.
type Shard struct {
	Index int
	Batch *Batch
}

// Split divides the batch into up to n contiguous row-range shards.
// Rows distribute as evenly as possible; a batch smaller than n yields
// fewer shards. Shard indices run 0..len(shards)-1 in row order.
func (b *Batch) Split(n int) []Shard {
	if n < 1 {
		n = 1
	}
	if n > b.Size {
		n = b.Size
	}

	shards := make([]Shard, 0, n)
	base := b.Size / n
	extra := b.Size % n

	start := 0
	for i := 0; i < n; i++ {
		rows := base
		if i < extra {
			rows++
		}
		end := start + rows
		shards = append(shards, Shard{
			Index: i,
			Batch: b.sliceRows(start, end),
		})
		start = end
	}
	return shards
}

// sliceRows copies rows [start, end) of every tensor into a new batch.
func (b *Batch) sliceRows(start, end int) *Batch {
	return &Batch{
		Source:       sliceRowRange(b.Source, start, end),
		SourceLength: sliceRowRange(b.SourceLength, start, end),
		Target:       sliceRowRange(b.Target, start, end),
		TargetLength: sliceRowRange(b.TargetLength, start, end),
		Labels:       sliceRowRange(b.Labels, start, end),
		Size:         end - start,
	}
}

// sliceRowRange extracts rows [start, end) along the leading dimension.
// Tensors are contiguous, so a row range is one block copy.
func sliceRowRange(t *tensor.RawTensor, start, end int) *tensor.RawTensor {
	shape := t.Shape()
	outShape := shape.Clone()
	outShape[0] = end - start

	rowBytes := t.ByteSize() / shape[0]
	out, err := tensor.NewRaw(outShape, t.DType(), t.Device())
	if err != nil {
		panic("data: sliceRowRange: " + err.Error())
	}
	copy(out.Data(), t.Data()[start*rowBytes:end*rowBytes])
	return out
}

func maxRowLen(rows [][]int32) int {
	longest := 1
	for _, row := range rows {
		if len(row) > longest {
			longest = len(row)
		}
	}
	return longest
}
