package cnf

import (
	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/cfgnorm/grammar/iteratable"
)

// EliminateUnits replaces every unit production A → B by the productions of B.
// Cyclic chains of unit productions (A → B, B → A) are resolved as well.
func EliminateUnits(g *grammar.Grammar) {
	eliminateUnits(g)
}

// eliminateUnits returns the number of passes over g. For every non-terminal A
// it keeps the set of non-terminals already inlined into A. These sets only
// grow and are bounded by the non-terminals of g, and a unit production to a
// member is just dropped. A pass without any change ends the loop.
func eliminateUnits(g *grammar.Grammar) int {
	start := g.Start()
	inlined := make(map[grammar.Symbol]*iteratable.Set)
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for _, A := range g.NonTerminals() {
			done, ok := inlined[A]
			if !ok {
				done = iteratable.NewSet(1).Add(A)
				inlined[A] = done
			}
			alts := g.Rules(A) // snapshot, g will be changed below
			prods := make([]grammar.Production, 0, len(alts))
			hasUnits := false
			for _, p := range alts {
				if !p.IsUnit() {
					prods = append(prods, p)
					continue
				}
				hasUnits = true
				B := p[0]
				if done.Contains(B) {
					continue
				}
				done.Add(B)
				tracer().Debugf("inlining %s into %s", B, A)
				for _, q := range g.Rules(B) {
					if q.IsEpsilon() && B == start {
						continue // S → ε is reserved for the start symbol
					}
					prods = append(prods, q)
				}
			}
			if hasUnits {
				g.SetRules(A, prods)
				changed = true
			}
		}
	}
	tracer().Debugf("unit productions eliminated after %d passes", passes)
	g.Dump()
	return passes
}
