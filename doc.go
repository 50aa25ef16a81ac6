/*
Package cfgnorm is a toolbox for normalizing context-free grammars.

It converts arbitrary context-free grammars into Chomsky Normal Form (CNF),
where every production either emits exactly one terminal or exactly two
non-terminals. The empty string may only be produced by the start symbol.
Package structure is as follows:

■ grammar: Package grammar holds the grammar model (symbols, productions,
grammars), a grammar builder and validation. Sub-package reader reads
grammars from a small textual notation.

■ cnf: Package cnf implements the normalization pipeline: elimination of
epsilon- and unit-productions, pruning of inaccessible and non-productive
symbols and binarization.

■ cyk: Package cyk implements a CYK recognizer for grammars in CNF.

■ lang: Package lang enumerates the sentences of a grammar up to a given length.

■ cmd/cnf: Command cnf normalizes grammar files or works interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package cfgnorm
