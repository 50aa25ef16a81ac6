package cnf

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/cfgnorm/grammar"
)

// ErrSymbolSpaceExhausted is returned if no fresh non-terminal may be created.
var ErrSymbolSpaceExhausted = errors.New("symbol space exhausted")

// DefaultAlphabet is the default alphabet for fresh non-terminal labels.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NameSource mints labels for fresh non-terminals. Candidates are the letters
// of an alphabet, followed by the letters with a counter appended:
//
//    A, B, …, Z, A1, B1, …, Z1, A2, …
//
// Candidates already in use by a grammar are skipped. A name source never
// returns a candidate twice. It will fail after minting a limited number of
// labels.
//
// Name sources are meant to be used for a single normalization run.
type NameSource struct {
	alphabet []rune
	limit    int // maximum number of labels to mint; < 0 means no limit
	next     int // index of next candidate
	minted   int
}

// NewNameSource creates a name source. If alphabet is empty, DefaultAlphabet
// is used. A negative limit will allow for an unlimited number of labels.
func NewNameSource(alphabet string, limit int) *NameSource {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	return &NameSource{
		alphabet: []rune(alphabet),
		limit:    limit,
	}
}

// Minted returns the number of labels created so far.
func (ns *NameSource) Minted() int {
	return ns.minted
}

func (ns *NameSource) candidate(i int) string {
	n := len(ns.alphabet)
	letter := string(ns.alphabet[i%n])
	if round := i / n; round > 0 {
		return letter + strconv.Itoa(round)
	}
	return letter
}

// Fresh declares a new non-terminal in g, with a label not yet used in g.
func (ns *NameSource) Fresh(g *grammar.Grammar) (grammar.Symbol, error) {
	if ns.limit >= 0 && ns.minted >= ns.limit {
		return grammar.Symbol{}, fmt.Errorf("%w: limit of %d fresh non-terminals reached",
			ErrSymbolSpaceExhausted, ns.limit)
	}
	for {
		label := ns.candidate(ns.next)
		ns.next++
		if g.IsNonTerminal(label) || g.IsTerminal(label) {
			continue
		}
		ns.minted++
		tracer().Debugf("fresh non-terminal %s", label)
		return g.DeclareNonTerminal(label), nil
	}
}
