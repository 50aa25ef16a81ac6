/*
Package grammar implements the grammar model for context-free grammars.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Labels of symbols
may be of any length. Grammars may contain epsilon-productions.

Example:

    b := grammar.NewBuilder("G")
    b.LHS("S").N("A").T("a").End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()  // A  ->  B D
    b.LHS("B").T("b").End()         // B  ->  b
    b.LHS("B").Epsilon()            // B  ->  ε
    b.LHS("D").T("d").End()         // D  ->  d
    b.LHS("D").Epsilon()            // D  ->  ε
    g, err := b.Grammar()

This results in the following trivial grammar:

   fmt.Println(g)

   S -> A a
   A -> B D
   B -> ε | b
   D -> ε | d

The first left hand side of a builder denotes the start symbol, if not set
otherwise.

Grammars are mutable. Every transformation of package cnf changes a grammar
in place. Productions of a non-terminal are held without duplicates and in
lexicographic order, so that every rendering of a grammar is reproducible.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgnorm.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("cfgnorm.grammar")
}
