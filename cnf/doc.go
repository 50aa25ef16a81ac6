/*
Package cnf converts context-free grammars into Chomsky Normal Form (CNF).

A grammar is in CNF if every production either emits exactly one terminal or
exactly two non-terminals. The start symbol may additionally produce the
empty string.

Normalization Pipeline

Normalization changes a grammar in place, running through a fixed sequence
of phases:

    NotNormalized → EpsilonEliminated → UnitEliminated → ReachablePruned → ProductivePruned → Binarized

1. ε-productions are removed. For every production, all variants with nullable
non-terminals dropped are added instead. If the start symbol is nullable, it
keeps a production S → ε.

2. Unit productions A → B are replaced by the productions of B.

3. Non-terminals which are not reachable from the start symbol are removed.

4. Non-terminals which cannot derive a string of terminals are removed, together
with every production referencing them.

5. Productions longer than two symbols are split up, and terminals within
productions of length two are replaced by helper non-terminals.

Every phase is available as a function of its own. Clients usually call

    transcript, err := cnf.ToCNF(g, true)

which validates g, runs all the phases and records the rules after every phase
in a transcript. If g already is in CNF, it is not touched.

Fixpoints

Analyses for nullable, reachable and productive non-terminals are least fixed
points over the finite set of non-terminals. Every pass over the grammar either
adds a non-terminal to the result set or terminates the loop. A grammar with n
non-terminals will therefore be analysed with at most n+1 passes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package cnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgnorm.cnf'.
func tracer() tracing.Trace {
	return tracing.Select("cfgnorm.cnf")
}
