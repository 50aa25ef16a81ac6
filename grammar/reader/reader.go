package reader

import (
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/cfgnorm"
	"github.com/npillmayer/cfgnorm/grammar"
)

// ErrSyntax is wrapped by all errors concerning the notation of a grammar
// definition. Errors concerning the symbols of a grammar wrap
// grammar.ErrInvalidGrammar instead.
var ErrSyntax = errors.New("syntax error")

// Error is an error at a position of a grammar definition.
type Error struct {
	Span cfgnorm.Span
	Err  error
}

func (e *Error) Error() string {
	if e.Span.IsNull() {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d, column %d: %v", e.Span.Line, e.Span.From, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Read reads a grammar definition from r and returns a validated grammar.
func Read(name string, r io.Reader) (*grammar.Grammar, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadString(name, string(input))
}

// ReadString reads a grammar definition from a string and returns a validated
// grammar.
func ReadString(name string, input string) (*grammar.Grammar, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	if err = p.parse(); err != nil {
		return nil, err
	}
	return p.build(name)
}

// --- Parser ----------------------------------------------------------------

type label struct {
	name   string
	quoted bool
	span   cfgnorm.Span
}

type rule struct {
	lhs  label
	alts [][]label // an empty alternative is ε
}

type parser struct {
	scan         *Scanner
	tok          cfgnorm.Token
	err          error
	start        *label
	explicit     bool // terminals have been declared
	terminals    []label
	nonterminals []label
	rules        []*rule
}

func newParser(input string) (*parser, error) {
	scan, err := NewScanner(input)
	if err != nil {
		return nil, err
	}
	p := &parser{scan: scan}
	scan.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = e
		}
	})
	return p, nil
}

func (p *parser) next() cfgnorm.TokType {
	p.tok = p.scan.NextToken()
	return p.tok.TokType()
}

func (p *parser) fail(format string, args ...interface{}) error {
	return p.failAt(p.tok.Span(), format, args...)
}

func (p *parser) failAt(span cfgnorm.Span, format string, args ...interface{}) error {
	if p.err == nil {
		args = append([]interface{}{ErrSyntax}, args...)
		p.err = &Error{Span: span, Err: fmt.Errorf("%w: "+format, args...)}
	}
	return p.err
}

func (p *parser) parse() error {
	p.next()
	for p.err == nil && p.tok.TokType() != EOF {
		switch p.tok.TokType() {
		case Newline:
			p.next()
		case Directive:
			p.directive()
		case Label:
			p.rule()
		case Bar:
			if len(p.rules) == 0 {
				return p.fail("continuation line without a rule")
			}
			p.next()
			p.alternatives(p.rules[len(p.rules)-1])
		default:
			return p.fail("unexpected %s %q", TokenName(p.tok.TokType()), p.tok.Lexeme())
		}
	}
	return p.err
}

func (p *parser) labels() []label {
	var ll []label
	for p.err == nil {
		switch p.tok.TokType() {
		case Label:
			ll = append(ll, label{name: p.tok.Value().(string), span: p.tok.Span()})
		case Quoted:
			ll = append(ll, label{name: p.tok.Value().(string), quoted: true, span: p.tok.Span()})
		case Newline, EOF:
			return ll
		default:
			p.fail("unexpected %s in directive", TokenName(p.tok.TokType()))
			return ll
		}
		p.next()
	}
	return ll
}

func (p *parser) directive() {
	d := p.tok.Lexeme()
	p.next()
	ll := p.labels()
	if p.err != nil {
		return
	}
	switch d {
	case "%start":
		if len(ll) != 1 || ll[0].quoted {
			p.fail("%%start needs exactly one non-terminal")
			return
		}
		p.start = &ll[0]
	case "%terminals":
		p.explicit = true
		p.terminals = append(p.terminals, ll...)
	case "%nonterminals":
		p.nonterminals = append(p.nonterminals, ll...)
	default:
		p.fail("unknown directive %s", d)
	}
}

func (p *parser) rule() {
	r := &rule{lhs: label{name: p.tok.Value().(string), span: p.tok.Span()}}
	if p.next() != Arrow {
		p.failAt(r.lhs.span, "expected '->' after %s", r.lhs.name)
		return
	}
	p.next()
	p.rules = append(p.rules, r)
	p.alternatives(r)
}

func (p *parser) alternatives(r *rule) {
	var alt []label
	eps := false
	closeAlt := func() bool {
		if eps && len(alt) > 0 {
			p.fail("ε mixed with symbols in a rule for %s", r.lhs.name)
			return false
		}
		if !eps && len(alt) == 0 {
			p.fail("empty alternative for %s, use ε", r.lhs.name)
			return false
		}
		r.alts = append(r.alts, alt)
		alt, eps = nil, false
		return true
	}
	for p.err == nil {
		switch p.tok.TokType() {
		case Label:
			alt = append(alt, label{name: p.tok.Value().(string), span: p.tok.Span()})
		case Quoted:
			alt = append(alt, label{name: p.tok.Value().(string), quoted: true, span: p.tok.Span()})
		case Eps:
			eps = true
		case Bar:
			if !closeAlt() {
				return
			}
		case Newline, EOF:
			closeAlt()
			return
		default:
			p.fail("unexpected %s in rule for %s", TokenName(p.tok.TokType()), r.lhs.name)
			return
		}
		p.next()
	}
}

// --- Building the grammar --------------------------------------------------

func invalid(l label, format string, args ...interface{}) error {
	args = append([]interface{}{grammar.ErrInvalidGrammar}, args...)
	return &Error{Span: l.span, Err: fmt.Errorf("%w: "+format, args...)}
}

func (p *parser) build(name string) (*grammar.Grammar, error) {
	var start label
	if p.start != nil {
		start = *p.start
	} else if len(p.rules) > 0 {
		start = p.rules[0].lhs
	} else {
		return nil, &Error{Err: fmt.Errorf("%w: grammar %s has no rules", grammar.ErrInvalidGrammar, name)}
	}
	g := grammar.New(name, start.name)
	for _, r := range p.rules {
		g.DeclareNonTerminal(r.lhs.name)
	}
	for _, l := range p.nonterminals {
		if l.quoted {
			return nil, invalid(l, "quoted label %q cannot be a non-terminal", l.name)
		}
		g.DeclareNonTerminal(l.name)
	}
	for _, l := range p.terminals {
		if g.IsNonTerminal(l.name) {
			return nil, invalid(l, "label %q used for terminal and non-terminal", l.name)
		}
		g.DeclareTerminal(l.name)
	}
	for _, r := range p.rules {
		lhs := grammar.N(r.lhs.name)
		for _, alt := range r.alts {
			prod := make(grammar.Production, 0, len(alt))
			for _, l := range alt {
				A, err := p.resolve(g, l)
				if err != nil {
					return nil, err
				}
				prod = append(prod, A)
			}
			g.AddProduction(lhs, prod)
		}
	}
	if err := g.Validate(); err != nil {
		return nil, &Error{Span: start.span, Err: err}
	}
	tracer().Infof("read grammar %s with %d productions", name, g.ProductionCount())
	return g, nil
}

func (p *parser) resolve(g *grammar.Grammar, l label) (grammar.Symbol, error) {
	if l.quoted {
		if g.IsNonTerminal(l.name) {
			return grammar.Symbol{}, invalid(l, "label %q used for terminal and non-terminal", l.name)
		}
		return g.DeclareTerminal(l.name), nil
	}
	if A, ok := g.Symbol(l.name); ok {
		return A, nil
	}
	if p.explicit {
		return grammar.Symbol{}, invalid(l, "undeclared symbol %q", l.name)
	}
	return g.DeclareTerminal(l.name), nil
}
