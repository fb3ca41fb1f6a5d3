package parser

import (
	"fmt"
	"strings"
)

// Pos is a 1-based line/column position in the source.
// Columns count runes, not bytes.
type Pos struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String renders the position as line:column.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before other.
func (p Pos) Before(other Pos) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// SourceInfo is the span [Start, End) of a parsed value.
type SourceInfo struct {
	Start Pos `json:"start" yaml:"start"`
	End   Pos `json:"end" yaml:"end"`
}

// NewSourceInfo builds a span from raw line/column numbers.
func NewSourceInfo(startLine, startColumn, endLine, endColumn int) SourceInfo {
	return SourceInfo{
		Start: Pos{Line: startLine, Column: startColumn},
		End:   Pos{Line: endLine, Column: endColumn},
	}
}

// Template is a value mixing literal text and {{ }} interpolations.
// An empty Elements slice is a valid, empty literal.
type Template struct {
	Quoted     bool
	Elements   []TemplateElement
	SourceInfo SourceInfo
}

// Encoded reconstructs the source text the template was parsed from,
// surrounding quotes included.
func (t Template) Encoded() string {
	var sb strings.Builder
	if t.Quoted {
		sb.WriteByte('"')
	}
	for _, e := range t.Elements {
		sb.WriteString(e.Encoded())
	}
	if t.Quoted {
		sb.WriteByte('"')
	}
	return sb.String()
}

// TemplateElement is either a *StringElement or an *ExprElement.
type TemplateElement interface {
	// Encoded returns the raw source text of the element.
	Encoded() string
	templateElement()
}

// StringElement is a run of literal text.
// Value is the decoded text, Raw the exact source it was decoded from.
type StringElement struct {
	Value string
	Raw   string
}

func (s *StringElement) Encoded() string { return s.Raw }
func (*StringElement) templateElement() {}

// ExprElement is an interpolated {{ expression }}.
type ExprElement struct {
	Expr Expr
}

func (e *ExprElement) Encoded() string { return e.Expr.Encoded() }
func (*ExprElement) templateElement() {}

// Whitespace is a run of spaces and tabs kept for round-tripping.
type Whitespace struct {
	Value      string
	SourceInfo SourceInfo
}

// Variable is a reference to a variable by name.
type Variable struct {
	Name       string
	SourceInfo SourceInfo
}

// Expr is the body of a {{ }} interpolation.
type Expr struct {
	Space0   Whitespace
	Variable Variable
	Space1   Whitespace
}

// Encoded returns the expression with its delimiters, as written.
func (e Expr) Encoded() string {
	return "{{" + e.Space0.Value + e.Variable.Name + e.Space1.Value + "}}"
}

// EncodedString is a decoded string that remembers its raw source text.
// It is used for mapping keys, which cannot contain interpolations.
type EncodedString struct {
	Quoted     bool
	Value      string
	Encoded    string
	SourceInfo SourceInfo
}
