/*
Command cnf converts context-free grammars into Chomsky Normal Form.

Usage:

    cnf [-trace level] [-steps] [-check "w1 w2 …"] [-i] [grammar-file]

The grammar is read from a file in the notation of package reader. Without a
file, a built-in sample grammar is used. cnf prints the normalized grammar; with
-steps, the grammar after every phase of the normalization is printed as well.
-check tests a sentence (words separated by blanks) for membership in the
language of the grammar.

With -i, cnf starts an interactive session. Lines in grammar notation add rules
to the current grammar. Commands are

    :show          print the current grammar
    :cnf           normalize the current grammar and print every phase
    :check w1 w2   test a sentence for membership
    :reset         start with an empty grammar
    :quit          end the session (or <ctrl>D)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgnorm.cli'
func tracer() tracing.Trace {
	return tracing.Select("cfgnorm.cli")
}
