// Package vocab provides token-to-id vocabulary tables for scoring.
//
// Vocabularies are loaded, never built: construction belongs to the
// training pipeline. A vocabulary file is a JSON object mapping token
// strings to integer ids, with the special symbols at fixed positions.
package vocab

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Special symbols. PAD must map to id 0: the scoring math relies on the
// padding id doubling as the "no token" sentinel.
const (
	PadSymbol = "<pad>"
	UnkSymbol = "<unk>"
	BosSymbol = "<s>"
	EosSymbol = "</s>"
)

// PadID is the reserved padding id.
const PadID int32 = 0

// Vocab maps token strings to ids.
type Vocab map[string]int32

// Inverse maps ids back to token strings.
type Inverse map[int32]string

// Load reads a vocabulary from a JSON file.
func Load(path string) (Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary %s: %w", path, err)
	}

	var v Vocab
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary %s: %w", path, err)
	}

	if err := v.Verify(); err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", path, err)
	}
	return v, nil
}

// Verify checks that the special symbols are present and PAD is id 0.
func (v Vocab) Verify() error {
	id, ok := v[PadSymbol]
	if !ok {
		return fmt.Errorf("missing special symbol %q", PadSymbol)
	}
	if id != PadID {
		return fmt.Errorf("special symbol %q must have id %d, got %d", PadSymbol, PadID, id)
	}
	for _, sym := range []string{UnkSymbol, BosSymbol, EosSymbol} {
		if _, ok := v[sym]; !ok {
			return fmt.Errorf("missing special symbol %q", sym)
		}
	}
	return nil
}

// Reverse builds the id-to-token inverse mapping.
func (v Vocab) Reverse() Inverse {
	inv := make(Inverse, len(v))
	for token, id := range v {
		inv[id] = token
	}
	return inv
}

// ID returns the id for a token, or the unknown id when absent.
func (v Vocab) ID(token string) int32 {
	if id, ok := v[token]; ok {
		return id
	}
	return v[UnkSymbol]
}

// ToIDs maps a token sequence to ids, substituting the unknown id for
// out-of-vocabulary tokens.
func (v Vocab) ToIDs(tokens []string) []int32 {
	ids := make([]int32, len(tokens))
	for i, token := range tokens {
		ids[i] = v.ID(token)
	}
	return ids
}

// ExcludeSet is the set of ids dropped when rendering ids back to text.
type ExcludeSet map[int32]struct{}

// NewExcludeSet builds the rendering exclude set: the source-side BOS id,
// the target-side EOS id and the padding id.
func NewExcludeSet(source, target Vocab) ExcludeSet {
	return ExcludeSet{
		source[BosSymbol]: {},
		target[EosSymbol]: {},
		PadID:             {},
	}
}

// Contains reports whether the id is excluded from rendering.
func (e ExcludeSet) Contains(id int32) bool {
	_, ok := e[id]
	return ok
}

// ToTokens renders an id sequence through the inverse vocabulary, dropping
// every id in the exclude set and preserving the order of the rest.
func (inv Inverse) ToTokens(ids []int32, exclude ExcludeSet) []string {
	tokens := make([]string, 0, len(ids))
	for _, id := range ids {
		if exclude.Contains(id) {
			continue
		}
		token, ok := inv[id]
		if !ok {
			token = UnkSymbol
		}
		tokens = append(tokens, token)
	}
	return tokens
}
