package output

import (
	"math"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair() (*Input, *Output) {
	in := &Input{ID: 1, Tokens: []string{"guten", "tag"}}
	out := &Output{ID: 1, Translation: "good day", Score: -2.3456}
	return in, out
}

func TestScoreWriter(t *testing.T) {
	var sb strings.Builder
	h := NewScoreWriter(&sb)

	in, out := pair()
	require.NoError(t, h.Handle(in, out, 0.1))

	assert.Equal(t, "-2.346\n", sb.String())
}

func TestScoreWriterNegInf(t *testing.T) {
	var sb strings.Builder
	h := NewScoreWriter(&sb)

	in, out := pair()
	out.Score = math.Inf(-1)
	require.NoError(t, h.Handle(in, out, 0.1))

	assert.Equal(t, "-Inf\n", sb.String())
}

func TestPairWriter(t *testing.T) {
	var sb strings.Builder
	h := NewPairWriter(&sb)

	in, out := pair()
	require.NoError(t, h.Handle(in, out, 0.1))

	assert.Equal(t, "-2.346\tguten tag\tgood day\n", sb.String())
}

func TestJSONWriter(t *testing.T) {
	var sb strings.Builder
	h := NewJSONWriter(&sb)

	in, out := pair()
	require.NoError(t, h.Handle(in, out, 0.1))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &rec))
	assert.Equal(t, float64(1), rec["sentence_id"])
	assert.Equal(t, "guten tag", rec["source"])
	assert.Equal(t, "good day", rec["translation"])
	assert.InDelta(t, -2.3456, rec["score"].(float64), 1e-9)
}

func TestJSONWriterNegInf(t *testing.T) {
	var sb strings.Builder
	h := NewJSONWriter(&sb)

	in, out := pair()
	out.Score = math.Inf(-1)
	require.NoError(t, h.Handle(in, out, 0.1))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(sb.String()), &rec))
	assert.Equal(t, "-inf", rec["score"])
}

func TestJSONWriterOnePerLine(t *testing.T) {
	var sb strings.Builder
	h := NewJSONWriter(&sb)

	in, out := pair()
	require.NoError(t, h.Handle(in, out, 0.1))
	require.NoError(t, h.Handle(in, out, 0.1))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}
