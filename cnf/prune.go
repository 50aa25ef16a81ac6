package cnf

import (
	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/cfgnorm/grammar/iteratable"
)

// --- Reachability ----------------------------------------------------------

// Reachable computes the set of non-terminals reachable from the start symbol,
// ordered by label. The set is a worklist: every non-terminal found is appended
// and visited once, so the loop ends after at most all non-terminals of g.
func Reachable(g *grammar.Grammar) *iteratable.Set {
	R := iteratable.NewSet(g.NonTerminalCount())
	R.Add(g.Start())
	R.IterateOnce()
	for R.Next() {
		A := R.Item().(grammar.Symbol)
		for _, p := range g.Rules(A) {
			for _, X := range p {
				if !X.IsTerminal() {
					R.Add(X)
				}
			}
		}
	}
	return R.Sort(grammar.SymbolComparator)
}

// nonterminalSet returns the non-terminals of g as a set, ordered by label.
func nonterminalSet(g *grammar.Grammar) *iteratable.Set {
	nonterms := g.NonTerminals()
	S := iteratable.NewSet(len(nonterms))
	for _, A := range nonterms {
		S.Add(A)
	}
	return S
}

func symbolsOf(S *iteratable.Set) []grammar.Symbol {
	var syms []grammar.Symbol
	for _, A := range S.Values() {
		syms = append(syms, A.(grammar.Symbol))
	}
	return syms
}

// PruneUnreachable removes all non-terminals not reachable from the start
// symbol, together with their productions. Terminals are never removed.
// It returns the non-terminals removed.
func PruneUnreachable(g *grammar.Grammar) []grammar.Symbol {
	removed := symbolsOf(nonterminalSet(g).Difference(Reachable(g)))
	for _, A := range removed {
		g.RemoveNonTerminal(A)
	}
	if len(removed) > 0 {
		tracer().Debugf("removed unreachable non-terminals %v", removed)
	}
	return removed
}

// --- Productivity ----------------------------------------------------------

// Productive computes the set of non-terminals which derive a string of
// terminals (possibly ε), ordered by label.
func Productive(g *grammar.Grammar) *iteratable.Set {
	P, _ := productive(g)
	return P.Sort(grammar.SymbolComparator)
}

// productive returns the productive set and the number of passes it took.
// Invariant: P only grows and is a subset of the non-terminals of g.
func productive(g *grammar.Grammar) (*iteratable.Set, int) {
	nonterms := g.NonTerminals()
	P := iteratable.NewSet(len(nonterms))
	for _, A := range nonterms {
		for _, p := range g.Rules(A) {
			if p.IsTerminal() {
				P.Add(A)
				break
			}
		}
	}
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		for _, A := range nonterms {
			if P.Contains(A) {
				continue
			}
			for _, p := range g.Rules(A) {
				if allProductive(p, P) {
					P.Add(A)
					changed = true
					break
				}
			}
		}
	}
	tracer().Debugf("productive = %v after %d passes", P.Values(), passes)
	return P, passes
}

func allProductive(p grammar.Production, P *iteratable.Set) bool {
	for _, X := range p {
		if !X.IsTerminal() && !P.Contains(X) {
			return false
		}
	}
	return true
}

// PruneUnproductive removes all non-terminals which cannot derive a string of
// terminals, and every production referencing one of them. It returns the
// non-terminals removed.
//
// If the start symbol is unproductive, g generates the empty language. The
// start symbol is kept, without any productions.
func PruneUnproductive(g *grammar.Grammar) []grammar.Symbol {
	P := Productive(g)
	removed := symbolsOf(nonterminalSet(g).Difference(P))
	for _, A := range removed {
		g.RemoveNonTerminal(A)
	}
	for _, A := range g.NonTerminals() {
		alts := g.Rules(A)
		prods := alts[:0]
		for _, p := range alts {
			if allProductive(p, P) {
				prods = append(prods, p)
			}
		}
		if len(prods) < len(alts) {
			g.SetRules(A, prods)
		}
	}
	if len(removed) > 0 {
		tracer().Debugf("removed unproductive non-terminals %v", removed)
	}
	if !P.Contains(g.Start()) {
		tracer().Infof("start symbol %s is unproductive, language of %s is empty", g.Start(), g.Name)
	}
	return removed
}

// IsEmptyLanguage is true if g does not generate any string, not even ε.
func IsEmptyLanguage(g *grammar.Grammar) bool {
	return !Productive(g).Contains(g.Start())
}
