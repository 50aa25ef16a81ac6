package grammar

import (
	"errors"
	"fmt"
)

// ErrInvalidGrammar is returned for malformed grammars: a start symbol which is
// not a non-terminal, productions referencing undeclared symbols, or labels
// used for both a terminal and a non-terminal.
var ErrInvalidGrammar = errors.New("invalid grammar")

// Validate checks g for consistency. It returns an error wrapping
// ErrInvalidGrammar for the first problem found.
func (g *Grammar) Validate() error {
	if g.start == "" {
		return fmt.Errorf("%w: grammar %s has no start symbol", ErrInvalidGrammar, g.Name)
	}
	if !g.IsNonTerminal(g.start) {
		return fmt.Errorf("%w: start symbol %q is not a non-terminal", ErrInvalidGrammar, g.start)
	}
	for _, a := range g.Terminals() {
		if a.Name == "" || a.Name == Epsilon {
			return fmt.Errorf("%w: illegal terminal label %q", ErrInvalidGrammar, a.Name)
		}
		if g.IsNonTerminal(a.Name) {
			return fmt.Errorf("%w: label %q used for terminal and non-terminal", ErrInvalidGrammar, a.Name)
		}
	}
	it := g.rules.Iterator()
	for it.Next() {
		lhs := it.Key().(string)
		if lhs == "" || lhs == Epsilon {
			return fmt.Errorf("%w: illegal non-terminal label %q", ErrInvalidGrammar, lhs)
		}
		for _, p := range it.Value().([]Production) {
			for _, A := range p {
				if !g.HasSymbol(A) {
					return fmt.Errorf("%w: rule %s -> %s references undeclared %s %q",
						ErrInvalidGrammar, lhs, p, A.Kind, A.Name)
				}
			}
		}
	}
	return nil
}
