package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/seqscore/internal/tensor"
)

const eosID = int32(3)

func TestNewBatch(t *testing.T) {
	// Two pairs of different lengths. Source rows end with EOS, target
	// rows begin with BOS (id 2).
	sourceIDs := [][]int32{{4, 5, 3}, {6, 3}}
	targetIDs := [][]int32{{2, 7, 8}, {2, 9}}

	b, err := NewBatch(sourceIDs, targetIDs, eosID, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, 2, b.Size)
	assert.Equal(t, tensor.Shape{2, 3}, b.Source.Shape())
	assert.Equal(t, tensor.Shape{2, 3}, b.Target.Shape())
	assert.Equal(t, tensor.Shape{2, 3}, b.Labels.Shape())
	assert.Equal(t, tensor.Shape{2}, b.SourceLength.Shape())

	// Padding fills the short rows.
	assert.Equal(t, []int32{4, 5, 3, 6, 3, 0}, b.Source.AsInt32())
	assert.Equal(t, []int32{2, 7, 8, 2, 9, 0}, b.Target.AsInt32())

	// Labels shift the target left and close each row with EOS.
	assert.Equal(t, []int32{7, 8, eosID, 9, eosID, 0}, b.Labels.AsInt32())

	assert.Equal(t, []float32{3, 2}, b.SourceLength.AsFloat32())
	assert.Equal(t, []float32{3, 2}, b.TargetLength.AsFloat32())
}

func TestNewBatchMismatchedRows(t *testing.T) {
	_, err := NewBatch([][]int32{{1}}, [][]int32{{1}, {2}}, eosID, tensor.CPU)
	require.Error(t, err)
}

func TestNewBatchEmpty(t *testing.T) {
	_, err := NewBatch(nil, nil, eosID, tensor.CPU)
	require.Error(t, err)
}

func TestPadStartsRow(t *testing.T) {
	sourceIDs := [][]int32{{4, 3}, {0}}
	targetIDs := [][]int32{{2, 7}, {2, 8}}

	b, err := NewBatch(sourceIDs, targetIDs, eosID, tensor.CPU)
	require.NoError(t, err)

	assert.False(t, b.PadStartsRow(0))
	assert.True(t, b.PadStartsRow(1))
}

func TestSplit(t *testing.T) {
	sourceIDs := make([][]int32, 5)
	targetIDs := make([][]int32, 5)
	for i := range sourceIDs {
		sourceIDs[i] = []int32{int32(10 + i), 3}
		targetIDs[i] = []int32{2, int32(20 + i)}
	}

	b, err := NewBatch(sourceIDs, targetIDs, eosID, tensor.CPU)
	require.NoError(t, err)

	shards := b.Split(2)
	require.Len(t, shards, 2)

	// Rows distribute 3 + 2 and stay contiguous in order.
	assert.Equal(t, 0, shards[0].Index)
	assert.Equal(t, 3, shards[0].Batch.Size)
	assert.Equal(t, 1, shards[1].Index)
	assert.Equal(t, 2, shards[1].Batch.Size)

	assert.Equal(t, []int32{10, 3, 11, 3, 12, 3}, shards[0].Batch.Source.AsInt32())
	assert.Equal(t, []int32{13, 3, 14, 3}, shards[1].Batch.Source.AsInt32())
	assert.Equal(t, []float32{2, 2}, shards[1].Batch.TargetLength.AsFloat32())
}

func TestSplitMoreShardsThanRows(t *testing.T) {
	b, err := NewBatch([][]int32{{4, 3}, {5, 3}}, [][]int32{{2, 7}, {2, 8}}, eosID, tensor.CPU)
	require.NoError(t, err)

	shards := b.Split(8)
	require.Len(t, shards, 2)
	for i, shard := range shards {
		assert.Equal(t, i, shard.Index)
		assert.Equal(t, 1, shard.Batch.Size)
	}
}

func TestSplitOne(t *testing.T) {
	b, err := NewBatch([][]int32{{4, 3}}, [][]int32{{2, 7}}, eosID, tensor.CPU)
	require.NoError(t, err)

	shards := b.Split(1)
	require.Len(t, shards, 1)
	assert.Equal(t, b.Size, shards[0].Batch.Size)
	assert.Equal(t, b.Source.AsInt32(), shards[0].Batch.Source.AsInt32())
}

func TestRowAccessors(t *testing.T) {
	b, err := NewBatch([][]int32{{4, 5, 3}, {6, 3}}, [][]int32{{2, 7}, {2, 8}}, eosID, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, []int32{4, 5, 3}, b.SourceRow(0))
	assert.Equal(t, []int32{6, 3, 0}, b.SourceRow(1))
	assert.Equal(t, []int32{2, 8}, b.TargetRow(1))
}
