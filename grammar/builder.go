package grammar

import "fmt"

// Builder is a helper type to construct grammars. Create one with
// NewBuilder, add rules with LHS and get the grammar with Grammar.
type Builder struct {
	g      *Grammar
	errors []error
}

// NewBuilder creates a builder for a grammar with a given name.
func NewBuilder(name string) *Builder {
	return &Builder{g: New(name, "")}
}

// RuleBuilder collects the symbols of one production. Every RuleBuilder has
// to be closed with End or Epsilon.
type RuleBuilder struct {
	b   *Builder
	lhs Symbol
	rhs Production
}

// LHS starts a new rule for a non-terminal. The first LHS of a builder is the
// start symbol, unless Start is called.
func (b *Builder) LHS(label string) *RuleBuilder {
	if b.g.start == "" {
		b.g.start = label
	}
	return &RuleBuilder{b: b, lhs: b.declare(N(label))}
}

// Start sets the start symbol.
func (b *Builder) Start(label string) *Builder {
	b.g.SetStart(label)
	return b
}

// NonTerminals declares non-terminals, possibly without any productions.
func (b *Builder) NonTerminals(labels ...string) *Builder {
	for _, l := range labels {
		b.declare(N(l))
	}
	return b
}

// Terminals declares terminals, possibly not used in any production.
func (b *Builder) Terminals(labels ...string) *Builder {
	for _, l := range labels {
		b.declare(T(l))
	}
	return b
}

func (b *Builder) declare(A Symbol) Symbol {
	if A.IsTerminal() {
		if b.g.IsNonTerminal(A.Name) {
			b.errors = append(b.errors, fmt.Errorf("%w: %q already is a non-terminal", ErrInvalidGrammar, A.Name))
		}
		b.g.DeclareTerminal(A.Name)
	} else {
		if b.g.IsTerminal(A.Name) {
			b.errors = append(b.errors, fmt.Errorf("%w: %q already is a terminal", ErrInvalidGrammar, A.Name))
		}
		b.g.DeclareNonTerminal(A.Name)
	}
	return A
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(label string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.b.declare(N(label)))
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(label string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.b.declare(T(label)))
	return rb
}

// End closes the rule and adds it to the grammar.
func (rb *RuleBuilder) End() *Builder {
	if !rb.b.g.AddProduction(rb.lhs, rb.rhs) {
		tracer().Debugf("duplicate rule %s -> %s ignored", rb.lhs, rb.rhs)
	}
	return rb.b
}

// Epsilon closes the rule as an ε-production. Symbols appended before are
// discarded.
func (rb *RuleBuilder) Epsilon() *Builder {
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the grammar constructed so far, after validating it.
// Builders may continue to be used after a call to Grammar, changing
// the grammar returned.
func (b *Builder) Grammar() (*Grammar, error) {
	if len(b.errors) > 0 {
		return b.g, b.errors[0]
	}
	if err := b.g.Validate(); err != nil {
		return b.g, err
	}
	return b.g, nil
}
