package cnf

import (
	"errors"
	"fmt"

	"github.com/npillmayer/cfgnorm/grammar"
)

// ErrNotCNF is returned by Check for grammars not in Chomsky Normal Form.
var ErrNotCNF = errors.New("grammar not in Chomsky normal form")

// IsCNF is true if every production of g is either a single terminal or a
// pair of non-terminals. The start symbol may have an ε-production.
func IsCNF(g *grammar.Grammar) bool {
	return Check(g) == nil
}

// Check is like IsCNF, but reports the first production violating CNF.
func Check(g *grammar.Grammar) error {
	start := g.Start()
	for _, A := range g.NonTerminals() {
		for _, p := range g.Rules(A) {
			switch len(p) {
			case 0:
				if A != start {
					return fmt.Errorf("%w: ε-production for %s", ErrNotCNF, A)
				}
			case 1:
				if !p[0].IsTerminal() {
					return fmt.Errorf("%w: unit production %s -> %s", ErrNotCNF, A, p)
				}
			case 2:
				if p[0].IsTerminal() || p[1].IsTerminal() {
					return fmt.Errorf("%w: terminal in binary production %s -> %s", ErrNotCNF, A, p)
				}
			default:
				return fmt.Errorf("%w: production %s -> %s too long", ErrNotCNF, A, p)
			}
		}
	}
	return nil
}
