/*
Package cyk implements the Cocke–Younger–Kasami recognizer for grammars in
Chomsky Normal Form.

A Recognizer is created once for a grammar and may then be used to check
sentences, possibly from several goroutines at a time:

    r, err := cyk.NewRecognizer(g)   // g is in CNF
    ok := r.Accepts([]string{"a", "b", "b"})

The CYK chart for a sentence of n words holds n×n sets of non-terminals. Charts
are pooled and re-used across calls.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package cyk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgnorm.cyk'.
func tracer() tracing.Trace {
	return tracing.Select("cfgnorm.cyk")
}
