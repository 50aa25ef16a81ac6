package grammar

import (
	"sort"
	"strings"

	"github.com/emirpasic/gods/utils"
)

// Epsilon is the label used to display an empty production.
const Epsilon = "ε"

// Kind tags a symbol as either a terminal or a non-terminal.
type Kind int8

// Kinds of grammar symbols.
const (
	NonTerminal Kind = iota
	Terminal
)

func (k Kind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "non-terminal"
}

// Symbol is an atomic grammar element. Symbols are values and may be used as
// map keys. Two symbols are equal if their labels and kinds are equal.
type Symbol struct {
	Name string
	Kind Kind
}

// N creates a non-terminal symbol.
func N(label string) Symbol {
	return Symbol{Name: label, Kind: NonTerminal}
}

// T creates a terminal symbol.
func T(label string) Symbol {
	return Symbol{Name: label, Kind: Terminal}
}

// IsTerminal is true for terminals.
func (A Symbol) IsTerminal() bool {
	return A.Kind == Terminal
}

func (A Symbol) String() string {
	return A.Name
}

// SymbolComparator orders symbols by label. It is a gods comparator, suitable
// for iteratable.Set.Sort.
func SymbolComparator(a, b interface{}) int {
	A, B := a.(Symbol), b.(Symbol)
	if c := utils.StringComparator(A.Name, B.Name); c != 0 {
		return c
	}
	return utils.Int8Comparator(int8(A.Kind), int8(B.Kind))
}

// --- Productions -----------------------------------------------------------

// Production is the right hand side of a grammar rule. A production of length
// 0 denotes the empty string.
type Production []Symbol

// EpsilonProduction returns an empty production.
func EpsilonProduction() Production {
	return Production{}
}

// Len returns the number of symbols in p.
func (p Production) Len() int {
	return len(p)
}

// IsEpsilon is true for the empty production.
func (p Production) IsEpsilon() bool {
	return len(p) == 0
}

// IsUnit is true if p consists of exactly one non-terminal.
func (p Production) IsUnit() bool {
	return len(p) == 1 && !p[0].IsTerminal()
}

// IsTerminal is true if p contains no non-terminals. ε is terminal.
func (p Production) IsTerminal() bool {
	for _, A := range p {
		if !A.IsTerminal() {
			return false
		}
	}
	return true
}

// Contains checks if symbol A occurs in p.
func (p Production) Contains(A Symbol) bool {
	for _, B := range p {
		if A == B {
			return true
		}
	}
	return false
}

// Copy returns a copy of p, never sharing the backing array.
func (p Production) Copy() Production {
	c := make(Production, len(p))
	copy(c, p)
	return c
}

// Key returns a string identifying p. Productions with equal symbols have
// equal keys.
func (p Production) Key() string {
	var b strings.Builder
	for i, A := range p {
		if i > 0 {
			b.WriteByte(0)
		}
		if A.IsTerminal() {
			b.WriteByte('t')
		} else {
			b.WriteByte('n')
		}
		b.WriteString(A.Name)
	}
	return b.String()
}

func (p Production) String() string {
	if len(p) == 0 {
		return Epsilon
	}
	var b strings.Builder
	for i, A := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.Name)
	}
	return b.String()
}

// compareProductions orders productions lexicographically by their labels,
// a proper prefix sorting first. ε therefore is always first.
func compareProductions(p, q Production) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		if c := SymbolComparator(p[i], q[i]); c != 0 {
			return c
		}
	}
	return utils.IntComparator(len(p), len(q))
}

// normalize removes duplicates from a list of productions and sorts it.
func normalize(prods []Production) []Production {
	seen := make(map[string]struct{}, len(prods))
	r := make([]Production, 0, len(prods))
	for _, p := range prods {
		k := p.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		r = append(r, p)
	}
	sort.SliceStable(r, func(i, j int) bool {
		return compareProductions(r[i], r[j]) < 0
	})
	return r
}
