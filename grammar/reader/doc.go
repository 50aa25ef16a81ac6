/*
Package reader reads context-free grammars from a small textual notation.

A grammar definition consists of rules, one per line. Alternatives are
separated by '|', lines starting with '|' continue the rule of the
previous line. Labels are separated by whitespace and may have any length.
ε (or "") denotes the empty production:

    # Grammar from the CNF exercise
    %start S
    %terminals a b
    S -> B
    A -> a X | b X
    X -> B X | b | ε
    B -> A X a D
    D -> a
       | a D
    C -> C a

Directives are optional:

■ %start sets the start symbol. It defaults to the first left hand side.

■ %terminals declares the terminals. If present, every label on a right
hand side has to be either a declared terminal or a non-terminal.
If not present, every label which never appears on a left hand side is
a terminal.

■ %nonterminals declares non-terminals which may not have rules.

Quoted labels ("if", "+") are always terminals. Unquoted labels may not
contain '-', so that rules may be written without blanks (S->a).
Labels are normalized to Unicode NFC.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package reader

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cfgnorm.reader'.
func tracer() tracing.Trace {
	return tracing.Select("cfgnorm.reader")
}
