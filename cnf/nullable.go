package cnf

import (
	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/cfgnorm/grammar/iteratable"
)

// Nullable computes the set of non-terminals which derive ε, directly or
// transitively. The set is ordered by label. g is not changed.
func Nullable(g *grammar.Grammar) *iteratable.Set {
	N, _ := nullable(g)
	return N.Sort(grammar.SymbolComparator)
}

// nullable returns the nullable set and the number of passes it took.
// Invariant: N only grows and is a subset of the non-terminals of g.
func nullable(g *grammar.Grammar) (*iteratable.Set, int) {
	nonterms := g.NonTerminals()
	N := iteratable.NewSet(len(nonterms))
	for _, A := range nonterms {
		for _, p := range g.Rules(A) {
			if p.IsEpsilon() {
				N.Add(A)
				break
			}
		}
	}
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for _, A := range nonterms {
			if N.Contains(A) {
				continue
			}
			for _, p := range g.Rules(A) {
				if allNullable(p, N) {
					N.Add(A)
					changed = true
					break
				}
			}
		}
	}
	tracer().Debugf("nullable = %v after %d passes", N.Values(), passes)
	return N, passes
}

func allNullable(p grammar.Production, N *iteratable.Set) bool {
	for _, A := range p {
		if A.IsTerminal() || !N.Contains(A) {
			return false
		}
	}
	return true
}
