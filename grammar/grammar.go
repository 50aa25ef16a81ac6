package grammar

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Grammar is a context-free grammar. It owns a set of non-terminals, a set
// of terminals, the productions for each non-terminal and a start symbol.
//
// Grammars are not safe for concurrent use. Transformations change a grammar
// in place.
type Grammar struct {
	Name         string
	start        string
	nonterminals *treeset.Set // labels of non-terminals
	terminals    *treeset.Set // labels of terminals
	rules        *treemap.Map // label -> []Production
}

// New creates an empty grammar with a start symbol. The start symbol is
// declared as a non-terminal.
func New(name string, start string) *Grammar {
	g := &Grammar{
		Name:         name,
		start:        start,
		nonterminals: treeset.NewWith(utils.StringComparator),
		terminals:    treeset.NewWith(utils.StringComparator),
		rules:        treemap.NewWithStringComparator(),
	}
	if start != "" {
		g.nonterminals.Add(start)
	}
	return g
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return N(g.start)
}

// SetStart changes the start symbol and declares it as a non-terminal.
func (g *Grammar) SetStart(label string) {
	g.start = label
	g.nonterminals.Add(label)
}

// DeclareNonTerminal adds a non-terminal label. It returns the symbol.
func (g *Grammar) DeclareNonTerminal(label string) Symbol {
	g.nonterminals.Add(label)
	return N(label)
}

// DeclareTerminal adds a terminal label. It returns the symbol.
func (g *Grammar) DeclareTerminal(label string) Symbol {
	g.terminals.Add(label)
	return T(label)
}

// IsNonTerminal checks if label is declared as a non-terminal.
func (g *Grammar) IsNonTerminal(label string) bool {
	return g.nonterminals.Contains(label)
}

// IsTerminal checks if label is declared as a terminal.
func (g *Grammar) IsTerminal(label string) bool {
	return g.terminals.Contains(label)
}

// HasSymbol checks if a symbol is declared with the symbol's kind.
func (g *Grammar) HasSymbol(A Symbol) bool {
	if A.IsTerminal() {
		return g.IsTerminal(A.Name)
	}
	return g.IsNonTerminal(A.Name)
}

// Symbol resolves a label to a declared symbol. Non-terminals take precedence,
// which matters only for invalid grammars.
func (g *Grammar) Symbol(label string) (Symbol, bool) {
	if g.IsNonTerminal(label) {
		return N(label), true
	}
	if g.IsTerminal(label) {
		return T(label), true
	}
	return Symbol{}, false
}

// NonTerminals returns all non-terminals, ordered by label.
func (g *Grammar) NonTerminals() []Symbol {
	return symbols(g.nonterminals, NonTerminal)
}

// Terminals returns all terminals, ordered by label.
func (g *Grammar) Terminals() []Symbol {
	return symbols(g.terminals, Terminal)
}

// NonTerminalCount returns the number of non-terminals.
func (g *Grammar) NonTerminalCount() int {
	return g.nonterminals.Size()
}

func symbols(set *treeset.Set, kind Kind) []Symbol {
	syms := make([]Symbol, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		syms = append(syms, Symbol{Name: it.Value().(string), Kind: kind})
	}
	return syms
}

// Rules returns the productions of a non-terminal, in lexicographic order.
// The returned slice may be modified by the caller, the productions may not.
func (g *Grammar) Rules(A Symbol) []Production {
	v, ok := g.rules.Get(A.Name)
	if !ok {
		return nil
	}
	prods := v.([]Production)
	r := make([]Production, len(prods))
	copy(r, prods)
	return r
}

// SetRules replaces all productions of a non-terminal. Duplicates are removed.
// A will be declared as a non-terminal, if it is not yet.
func (g *Grammar) SetRules(A Symbol, prods []Production) {
	g.nonterminals.Add(A.Name)
	if len(prods) == 0 {
		g.rules.Remove(A.Name)
		return
	}
	g.rules.Put(A.Name, normalize(prods))
}

// AddProduction adds a production to a non-terminal. It returns false if the
// production has been present before.
func (g *Grammar) AddProduction(A Symbol, p Production) bool {
	if g.HasProduction(A, p) {
		return false
	}
	g.SetRules(A, append(g.Rules(A), p.Copy()))
	return true
}

// HasProduction checks if A -> p is a rule of g.
func (g *Grammar) HasProduction(A Symbol, p Production) bool {
	k := p.Key()
	for _, q := range g.Rules(A) {
		if q.Key() == k {
			return true
		}
	}
	return false
}

// RemoveNonTerminal deletes a non-terminal together with its productions.
// Productions of other non-terminals referencing A are not touched.
// The start symbol cannot be removed, it will just lose its productions.
func (g *Grammar) RemoveNonTerminal(A Symbol) {
	g.rules.Remove(A.Name)
	if A.Name != g.start {
		g.nonterminals.Remove(A.Name)
	}
}

// EachNonTerminal calls a mapper function for every non-terminal, ordered by
// label, and collects the results.
func (g *Grammar) EachNonTerminal(mapper func(A Symbol, prods []Production) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.NonTerminals() {
		r = append(r, mapper(A, g.Rules(A)))
	}
	return r
}

// ProductionCount returns the number of productions over all non-terminals.
func (g *Grammar) ProductionCount() int {
	n := 0
	for _, v := range g.rules.Values() {
		n += len(v.([]Production))
	}
	return n
}

// BodyLength returns the total number of symbols in all productions.
func (g *Grammar) BodyLength() int {
	n := 0
	for _, v := range g.rules.Values() {
		for _, p := range v.([]Production) {
			n += p.Len()
		}
	}
	return n
}

// Clone creates a deep copy of g.
func (g *Grammar) Clone() *Grammar {
	c := New(g.Name, g.start)
	c.nonterminals.Add(g.nonterminals.Values()...)
	c.terminals.Add(g.terminals.Values()...)
	it := g.rules.Iterator()
	for it.Next() {
		prods := it.Value().([]Production)
		cp := make([]Production, len(prods))
		for i, p := range prods {
			cp[i] = p.Copy()
		}
		c.rules.Put(it.Key(), cp)
	}
	return c
}

// --- Output ----------------------------------------------------------------

// RuleLines renders the rules of g, one line per non-terminal with at least
// one production. The start symbol comes first, the others are ordered by
// label:
//
//    S -> A B | a
//    A -> a
//
func (g *Grammar) RuleLines() []string {
	lines := make([]string, 0, g.rules.Size())
	line := func(A Symbol, prods []Production) string {
		alts := make([]string, len(prods))
		for i, p := range prods {
			alts[i] = p.String()
		}
		return fmt.Sprintf("%s -> %s", A.Name, strings.Join(alts, " | "))
	}
	if prods := g.Rules(g.Start()); len(prods) > 0 {
		lines = append(lines, line(g.Start(), prods))
	}
	it := g.rules.Iterator()
	for it.Next() {
		if label := it.Key().(string); label != g.start {
			lines = append(lines, line(N(label), it.Value().([]Production)))
		}
	}
	return lines
}

func (g *Grammar) String() string {
	return strings.Join(g.RuleLines(), "\n")
}

// Dump is a debugging helper, writing the rules of g to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ----------------------------", g.Name)
	for _, line := range g.RuleLines() {
		tracer().Debugf("%s", line)
	}
	tracer().Debugf("-----------------------------------------------")
}

type fingerprint struct {
	Start        string
	NonTerminals []string
	Terminals    []string
	Rules        []string
}

// Fingerprint returns a hash of the symbols and rules of g. Grammars with
// equal fingerprints render identically.
func (g *Grammar) Fingerprint() string {
	fp := fingerprint{
		Start: g.start,
		Rules: g.RuleLines(),
	}
	for _, A := range g.NonTerminals() {
		fp.NonTerminals = append(fp.NonTerminals, A.Name)
	}
	for _, a := range g.Terminals() {
		fp.Terminals = append(fp.Terminals, a.Name)
	}
	hash, err := structhash.Hash(fp, 1)
	if err != nil {
		tracer().Errorf("cannot compute fingerprint of grammar %s: %v", g.Name, err)
		return ""
	}
	return hash
}
