package cnf

import (
	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/cfgnorm/grammar/iteratable"
)

// EliminateEpsilon removes all ε-productions from g. Every production is
// replaced by all of its variants with nullable non-terminals dropped.
// If the start symbol is nullable, it keeps the production S → ε, thus the
// language of g is unchanged.
func EliminateEpsilon(g *grammar.Grammar) {
	eliminateEpsilon(g, true)
}

func eliminateEpsilon(g *grammar.Grammar, keepStartEpsilon bool) {
	N := Nullable(g)
	start := g.Start()
	for _, A := range g.NonTerminals() {
		var prods []grammar.Production
		for _, p := range g.Rules(A) {
			if !p.IsEpsilon() {
				prods = append(prods, expandNullable(p, N)...)
			}
		}
		if A == start && keepStartEpsilon && N.Contains(start) {
			prods = append(prods, grammar.EpsilonProduction())
		}
		g.SetRules(A, prods)
	}
	tracer().Debugf("ε-productions eliminated")
	g.Dump()
}

// expandNullable creates every variant of p where any subset of the nullable
// symbols is dropped. The empty variant is left out.
func expandNullable(p grammar.Production, N *iteratable.Set) []grammar.Production {
	variants := []grammar.Production{{}}
	for _, X := range p {
		next := make([]grammar.Production, 0, 2*len(variants))
		for _, v := range variants {
			next = append(next, append(v.Copy(), X))
			if !X.IsTerminal() && N.Contains(X) {
				next = append(next, v)
			}
		}
		variants = next
	}
	r := variants[:0]
	for _, v := range variants {
		if !v.IsEpsilon() {
			r = append(r, v)
		}
	}
	return r
}
