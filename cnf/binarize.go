package cnf

import (
	"sort"

	"github.com/npillmayer/cfgnorm/grammar"
	"golang.org/x/exp/maps"
)

// helpers memoizes non-terminals minted during binarization, keyed by the
// right hand side they produce. Identical pairs and terminals share a helper.
type helpers struct {
	names *NameSource
	pairs map[string]grammar.Symbol         // key of pair production → helper
	terms map[grammar.Symbol]grammar.Symbol // terminal → helper
}

func newHelpers(names *NameSource) *helpers {
	return &helpers{
		names: names,
		pairs: make(map[string]grammar.Symbol),
		terms: make(map[grammar.Symbol]grammar.Symbol),
	}
}

// symbols returns all helpers minted so far, ordered by label.
func (h *helpers) symbols() []grammar.Symbol {
	syms := append(maps.Values(h.pairs), maps.Values(h.terms)...)
	sort.Slice(syms, func(i, j int) bool {
		return grammar.SymbolComparator(syms[i], syms[j]) < 0
	})
	return syms
}

func (h *helpers) pair(g *grammar.Grammar, X, Y grammar.Symbol) (grammar.Symbol, error) {
	rhs := grammar.Production{X, Y}
	key := rhs.Key()
	if H, ok := h.pairs[key]; ok {
		return H, nil
	}
	H, err := h.names.Fresh(g)
	if err != nil {
		return H, err
	}
	g.SetRules(H, []grammar.Production{rhs})
	h.pairs[key] = H
	tracer().Debugf("helper %s -> %s", H, rhs)
	return H, nil
}

func (h *helpers) terminal(g *grammar.Grammar, a grammar.Symbol) (grammar.Symbol, error) {
	if H, ok := h.terms[a]; ok {
		return H, nil
	}
	H, err := h.names.Fresh(g)
	if err != nil {
		return H, err
	}
	g.SetRules(H, []grammar.Production{{a}})
	h.terms[a] = H
	tracer().Debugf("helper %s -> %s", H, a)
	return H, nil
}

// Binarize brings the productions of g into CNF shape. g must not contain
// ε-productions (other than S → ε) or unit productions.
//
// First, every production longer than two symbols is shortened: its first two
// symbols are replaced by a helper non-terminal producing them, until two
// symbols are left. Then, within every production of length two, each
// terminal is replaced by a helper non-terminal producing just that terminal.
//
// Fresh non-terminals are created with names. Helpers for equal right hand
// sides are shared.
func Binarize(g *grammar.Grammar, names *NameSource) error {
	return newHelpers(names).binarize(g)
}

func (h *helpers) binarize(g *grammar.Grammar) error {
	for _, A := range g.NonTerminals() {
		alts := g.Rules(A)
		prods := make([]grammar.Production, 0, len(alts))
		changed := false
		for _, p := range alts {
			for len(p) > 2 {
				H, err := h.pair(g, p[0], p[1])
				if err != nil {
					return err
				}
				p = append(grammar.Production{H}, p[2:]...)
				changed = true
			}
			prods = append(prods, p)
		}
		if changed {
			g.SetRules(A, prods)
		}
	}
	// helpers for pairs are included here, they may contain terminals, too
	for _, A := range g.NonTerminals() {
		alts := g.Rules(A)
		changed := false
		for i, p := range alts {
			if len(p) != 2 || (!p[0].IsTerminal() && !p[1].IsTerminal()) {
				continue
			}
			q := p.Copy()
			for j, X := range q {
				if X.IsTerminal() {
					H, err := h.terminal(g, X)
					if err != nil {
						return err
					}
					q[j] = H
				}
			}
			alts[i] = q
			changed = true
		}
		if changed {
			g.SetRules(A, alts)
		}
	}
	tracer().Debugf("binarized with %d helpers", h.names.Minted())
	g.Dump()
	return nil
}
