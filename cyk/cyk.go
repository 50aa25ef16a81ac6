package cyk

import (
	"errors"
	"fmt"

	"github.com/npillmayer/cfgnorm/grammar"
)

// ErrNotCNF is returned for grammars with productions not in Chomsky Normal
// Form.
var ErrNotCNF = errors.New("CYK needs a grammar in Chomsky normal form")

type binaryRule struct {
	lhs, left, right int
}

// Recognizer checks sentences for membership in the language of a grammar.
// Recognizers are immutable and safe for concurrent use.
type Recognizer struct {
	name     string
	start    int
	epsilon  bool             // start symbol produces ε
	nonterms []grammar.Symbol // index → non-terminal
	unary    map[string][]int // terminal label → non-terminals producing it
	binary   []binaryRule
}

// NewRecognizer creates a recognizer for a grammar in CNF. The grammar may be
// changed after the call, the recognizer will not notice.
func NewRecognizer(g *grammar.Grammar) (*Recognizer, error) {
	r := &Recognizer{
		name:     g.Name,
		nonterms: g.NonTerminals(),
		unary:    make(map[string][]int),
	}
	index := make(map[grammar.Symbol]int, len(r.nonterms))
	for i, A := range r.nonterms {
		index[A] = i
	}
	r.start = index[g.Start()]
	for i, A := range r.nonterms {
		for _, p := range g.Rules(A) {
			switch {
			case p.IsEpsilon() && A == g.Start():
				r.epsilon = true
			case len(p) == 1 && p[0].IsTerminal():
				r.unary[p[0].Name] = append(r.unary[p[0].Name], i)
			case len(p) == 2 && !p[0].IsTerminal() && !p[1].IsTerminal():
				r.binary = append(r.binary, binaryRule{lhs: i, left: index[p[0]], right: index[p[1]]})
			default:
				return nil, fmt.Errorf("%w: %s -> %s", ErrNotCNF, A, p)
			}
		}
	}
	tracer().Debugf("CYK recognizer for %s: %d non-terminals, %d binary rules",
		g.Name, len(r.nonterms), len(r.binary))
	return r, nil
}

// Accepts checks if words is a sentence of the grammar.
func (r *Recognizer) Accepts(words []string) bool {
	n := len(words)
	if n == 0 {
		return r.epsilon
	}
	c := borrowChart(n, len(r.nonterms))
	defer c.release()
	for i, w := range words {
		cell := c.cell(i, 0)
		for _, A := range r.unary[w] {
			set(cell, A)
		}
		if empty(cell) {
			tracer().Debugf("no rule produces %q", w)
			return false
		}
	}
	for l := 1; l < n; l++ { // span of l+1 words
		for i := 0; i+l < n; i++ {
			cell := c.cell(i, l)
			for k := 0; k < l; k++ { // left part has k+1 words
				left, right := c.cell(i, k), c.cell(i+k+1, l-k-1)
				if empty(left) || empty(right) {
					continue
				}
				for _, rule := range r.binary {
					if has(left, rule.left) && has(right, rule.right) {
						set(cell, rule.lhs)
					}
				}
			}
		}
	}
	return has(c.cell(0, n-1), r.start)
}

// Recognize is a shortcut for creating a recognizer for g and checking words.
func Recognize(g *grammar.Grammar, words []string) (bool, error) {
	r, err := NewRecognizer(g)
	if err != nil {
		return false, err
	}
	return r.Accepts(words), nil
}
