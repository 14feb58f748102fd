// Package output emits scored sentence pairs to a sink.
//
// Handlers receive the rendered input and output records plus the wall
// time of the batch that produced them, and decide the wire format.
package output

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	json "github.com/goccy/go-json"
)

// Input is the rendered source side of a scored pair.
type Input struct {
	ID     int
	Tokens []string
}

// String joins the tokens with single spaces.
func (in *Input) String() string {
	return strings.Join(in.Tokens, " ")
}

// Output is the rendered target side of a scored pair.
//
// Tokens and Attention are reserved for richer translator output and
// stay nil in scoring runs.
type Output struct {
	ID          int
	Translation string
	Score       float64

	Tokens    []string
	Attention [][]float32
}

// Handler consumes one scored pair. wallTime is the wall-clock seconds
// of the batch the pair arrived in.
type Handler interface {
	Handle(in *Input, out *Output, wallTime float64) error
}

// ScoreWriter prints one score per line.
type ScoreWriter struct {
	w *bufio.Writer
}

// NewScoreWriter wraps a sink into a score-only handler.
func NewScoreWriter(w io.Writer) *ScoreWriter {
	return &ScoreWriter{w: bufio.NewWriter(w)}
}

// Handle writes the score.
func (h *ScoreWriter) Handle(in *Input, out *Output, wallTime float64) error {
	if _, err := fmt.Fprintf(h.w, "%.3f\n", out.Score); err != nil {
		return err
	}
	return h.w.Flush()
}

// PairWriter prints score, source and target per line, tab-separated.
type PairWriter struct {
	w *bufio.Writer
}

// NewPairWriter wraps a sink into a score-with-pair handler.
func NewPairWriter(w io.Writer) *PairWriter {
	return &PairWriter{w: bufio.NewWriter(w)}
}

// Handle writes score, source tokens and translation.
func (h *PairWriter) Handle(in *Input, out *Output, wallTime float64) error {
	if _, err := fmt.Fprintf(h.w, "%.3f\t%s\t%s\n", out.Score, in.String(), out.Translation); err != nil {
		return err
	}
	return h.w.Flush()
}

// jsonRecord is the wire shape of one JSON-lines entry.
type jsonRecord struct {
	SentenceID  int     `json:"sentence_id"`
	Source      string  `json:"source"`
	Translation string  `json:"translation"`
	Score       float64 `json:"score"`
}

// JSONWriter prints one JSON object per line.
type JSONWriter struct {
	w *bufio.Writer
}

// NewJSONWriter wraps a sink into a JSON-lines handler.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: bufio.NewWriter(w)}
}

// Handle writes one record. Infinite scores are not representable in
// JSON and serialize as the string "-inf".
func (h *JSONWriter) Handle(in *Input, out *Output, wallTime float64) error {
	rec := jsonRecord{
		SentenceID:  out.ID,
		Source:      in.String(),
		Translation: out.Translation,
		Score:       out.Score,
	}
	data, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	if _, err := h.w.Write(append(data, '\n')); err != nil {
		return err
	}
	return h.w.Flush()
}

func marshalRecord(rec jsonRecord) ([]byte, error) {
	if math.IsInf(rec.Score, 0) {
		aux := struct {
			SentenceID  int    `json:"sentence_id"`
			Source      string `json:"source"`
			Translation string `json:"translation"`
			Score       string `json:"score"`
		}{rec.SentenceID, rec.Source, rec.Translation, "-inf"}
		if rec.Score > 0 {
			aux.Score = "inf"
		}
		return json.Marshal(aux)
	}
	return json.Marshal(rec)
}
