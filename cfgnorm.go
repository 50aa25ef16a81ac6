package cfgnorm

import "fmt"

// --- Tokens of the grammar notation ---------------------------------------

// TokType is a category type for a Token. Token categories are defined by
// the scanner which produces them (see package grammar/reader).
type TokType int

// Token represents an input token of a textual grammar definition.
//
// An example would be a token for a non-terminal label:
//
//    TokType = Label       // identifier for this kind of tokens
//    Lexeme  = "Expr"      // lexeme how it appeared in the input stream
//    Value   = "Expr"      // NFC-normalized label
//    Span    = 3:0…3:4     // line 3, columns 0 to 4
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing the position of a token in a grammar
// definition. A span denotes a line and a start column and the column just
// behind the end.
type Span struct {
	Line     int
	From, To int // (x…y)
}

// IsNull is true for the zero span, i.e. an unknown position.
func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:(%d…%d)", s.Line, s.From, s.To)
}
