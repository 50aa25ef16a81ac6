package reader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/cfgnorm"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
	"golang.org/x/text/unicode/norm"
)

// Token types of the grammar notation.
const (
	EOF cfgnorm.TokType = -1 - iota
	Label
	Quoted
	Arrow
	Bar
	Eps
	Directive
	Newline
)

var tokenNames = map[cfgnorm.TokType]string{
	EOF:       "end of input",
	Label:     "label",
	Quoted:    "quoted label",
	Arrow:     "'->'",
	Bar:       "'|'",
	Eps:       "ε",
	Directive: "directive",
	Newline:   "end of line",
}

// TokenName returns a display name for a token type.
func TokenName(t cfgnorm.TokType) string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("token(%d)", t)
}

// GrammarToken is the token type produced by the grammar scanner. Its value
// is the NFC-normalized label for labels, the lexeme otherwise.
type GrammarToken struct {
	toktype cfgnorm.TokType
	lexeme  string
	value   interface{}
	span    cfgnorm.Span
}

var _ cfgnorm.Token = GrammarToken{}

func (t GrammarToken) TokType() cfgnorm.TokType {
	return t.toktype
}

func (t GrammarToken) Lexeme() string {
	return t.lexeme
}

func (t GrammarToken) Value() interface{} {
	return t.value
}

func (t GrammarToken) Span() cfgnorm.Span {
	return t.span
}

func (t GrammarToken) String() string {
	return fmt.Sprintf("%s %q @%s", TokenName(t.toktype), t.lexeme, t.span)
}

// --- lexmachine adapter ----------------------------------------------------

var lexer *lexmachine.Lexer
var lexerErr error
var lexerOnce sync.Once // monitors one-time compilation of the DFA

// Lexer returns the lexmachine lexer for grammar definitions. The DFA is
// compiled once.
func Lexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`#[^\n]*`), skip)
		lexer.Add([]byte(`( |\t|\r)+`), skip)
		lexer.Add([]byte(`\n`), makeToken(Newline))
		lexer.Add([]byte(`\-\>`), makeToken(Arrow))
		lexer.Add([]byte(`\|`), makeToken(Bar))
		lexer.Add([]byte(`ε`), makeToken(Eps))
		lexer.Add([]byte(`""`), makeToken(Eps))
		lexer.Add([]byte(`\"[^"\n]+\"`), makeToken(Quoted))
		lexer.Add([]byte(`%[a-z]+`), makeToken(Directive))
		lexer.Add([]byte(`[^ \t\r\n\|#"%\-]([^ \t\r\n\|#"\-])*`), makeToken(Label))
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(toktype cfgnorm.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(toktype), string(m.Bytes), m), nil
	}
}

// Scanner is a tokenizer for grammar definitions, backed by lexmachine.
type Scanner struct {
	scanner *lexmachine.Scanner
	last    cfgnorm.Span // span of last token, for EOF
	Error   func(error)
}

// NewScanner creates a scanner for a grammar definition.
func NewScanner(input string) (*Scanner, error) {
	lex, err := Lexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s, Error: logError}, nil
}

// SetErrorHandler sets an error handler for the scanner.
func (gs *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		gs.Error = logError
		return
	}
	gs.Error = h
}

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken returns the next token of the input. At the end of input a token
// of type EOF is returned.
func (gs *Scanner) NextToken() cfgnorm.Token {
	tok, err, eof := gs.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			gs.Error(&Error{
				Span: cfgnorm.Span{Line: ui.FailLine, From: ui.FailColumn, To: ui.FailColumn + 1},
				Err:  fmt.Errorf("%w: unexpected input %q", ErrSyntax, unconsumed(ui)),
			})
			gs.scanner.TC = ui.FailTC
			if gs.scanner.TC <= ui.StartTC {
				gs.scanner.TC = ui.StartTC + 1
			}
		} else {
			gs.Error(err)
		}
		tok, err, eof = gs.scanner.Next()
	}
	if eof {
		return GrammarToken{toktype: EOF, span: cfgnorm.Span{Line: gs.last.Line, From: gs.last.To, To: gs.last.To}}
	}
	lt := tok.(*lexmachine.Token)
	t := GrammarToken{
		toktype: cfgnorm.TokType(lt.Type),
		lexeme:  string(lt.Lexeme),
		span: cfgnorm.Span{
			Line: lt.StartLine,
			From: lt.StartColumn,
			To:   lt.EndColumn + 1,
		},
	}
	gs.last = t.span
	switch t.toktype {
	case Label:
		t.value = norm.NFC.String(t.lexeme)
	case Quoted:
		t.value = norm.NFC.String(strings.Trim(t.lexeme, `"`))
	default:
		t.value = t.lexeme
	}
	tracer().Debugf("token %v", t)
	return t
}

func unconsumed(ui *machines.UnconsumedInput) string {
	from, to := ui.StartTC, ui.FailTC+1
	if to > len(ui.Text) {
		to = len(ui.Text)
	}
	if from >= to {
		return ""
	}
	if to-from > 12 {
		return string(ui.Text[from:from+12]) + "…"
	}
	return string(ui.Text[from:to])
}
