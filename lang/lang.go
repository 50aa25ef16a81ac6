/*
Package lang enumerates the sentences of a context-free grammar.

Enumeration works for arbitrary context-free grammars, including ε-productions
and cycles of unit productions. It computes, for every non-terminal, the set of
terminal strings up to a given length it derives. This is a least fixed point
over a finite universe and therefore always terminates, but it is exponential
in the maximum length. It is intended as an independent membership oracle for
small grammars, e.g. to check that a transformed grammar still generates the
same language.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lang

import (
	"sort"
	"strings"

	"github.com/npillmayer/cfgnorm/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgnorm.lang'.
func tracer() tracing.Trace {
	return tracing.Select("cfgnorm.lang")
}

// sentences of a non-terminal, keyed by the joined words
type sentences map[string][]string

func key(words []string) string {
	return strings.Join(words, "\x00")
}

// Derivations computes for each non-terminal of g the sentences of at most
// maxLen terminals it derives.
func Derivations(g *grammar.Grammar, maxLen int) map[grammar.Symbol][][]string {
	L := derive(g, maxLen)
	r := make(map[grammar.Symbol][][]string, len(L))
	for A, S := range L {
		r[A] = sorted(S)
	}
	return r
}

// Sentences returns all sentences of g with at most maxLen terminals, shorter
// sentences first, sentences of equal length in lexicographic order.
// The empty sentence is represented by an empty slice.
func Sentences(g *grammar.Grammar, maxLen int) [][]string {
	return sorted(derive(g, maxLen)[g.Start()])
}

// Generates checks if g generates a sentence.
func Generates(g *grammar.Grammar, words []string) bool {
	_, ok := derive(g, len(words))[g.Start()][key(words)]
	return ok
}

func derive(g *grammar.Grammar, maxLen int) map[grammar.Symbol]sentences {
	L := make(map[grammar.Symbol]sentences)
	nonterms := g.NonTerminals()
	for _, A := range nonterms {
		L[A] = sentences{}
	}
	passes := 0
	for changed := true; changed; {
		changed = false
		passes++
		frozen := make(map[grammar.Symbol][][]string, len(L))
		for A, S := range L {
			frozen[A] = sorted(S)
		}
		for _, A := range nonterms {
			for _, p := range g.Rules(A) {
				combine(p, nil, maxLen, frozen, func(words []string) {
					k := key(words)
					if _, ok := L[A][k]; !ok {
						L[A][k] = words
						changed = true
					}
				})
			}
		}
	}
	tracer().Debugf("derived sentences up to length %d in %d passes", maxLen, passes)
	return L
}

// combine concatenates sentences for the symbols of p, calling emit for every
// result of at most maxLen words.
func combine(p grammar.Production, prefix []string, maxLen int,
	L map[grammar.Symbol][][]string, emit func([]string)) {
	//
	if len(prefix) > maxLen {
		return
	}
	if len(p) == 0 {
		words := make([]string, len(prefix))
		copy(words, prefix)
		emit(words)
		return
	}
	X := p[0]
	if X.IsTerminal() {
		combine(p[1:], append(prefix, X.Name), maxLen, L, emit)
		return
	}
	for _, w := range L[X] {
		if len(prefix)+len(w) <= maxLen {
			next := make([]string, len(prefix), len(prefix)+len(w))
			copy(next, prefix)
			combine(p[1:], append(next, w...), maxLen, L, emit)
		}
	}
}

func sorted(S sentences) [][]string {
	r := make([][]string, 0, len(S))
	for _, words := range S {
		r = append(r, words)
	}
	sort.Slice(r, func(i, j int) bool {
		if len(r[i]) != len(r[j]) {
			return len(r[i]) < len(r[j])
		}
		return key(r[i]) < key(r[j])
	})
	return r
}
