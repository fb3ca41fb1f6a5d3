package parser

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// encodedChar is one accepted character: its decoded value and the exact
// source text it was read from ("a", `\n`, `\u{20}`...).
type encodedChar struct {
	value rune
	raw   string
}

// UnquotedTemplate parses a bare value up to a comment marker, a line
// terminator or the end of input. Trailing spaces and tabs are not part of
// the value: they are left unconsumed for the caller.
func UnquotedTemplate(r *Reader) (Template, *ParseError) {
	start := r.Pos()

	c, ok := r.Peek()
	if !ok || c == ' ' || c == '\t' || c == '\n' || c == '#' {
		return Template{Quoted: false, SourceInfo: SourceInfo{Start: start, End: start}}, nil
	}

	elements, err := ZeroOrMore(templateElement('#'), r)
	if err != nil {
		return Template{}, err
	}

	// The scanner has no lookahead for a trailing comment, so the spaces
	// before it are trimmed afterwards.
	if n := len(elements); n > 0 {
		if s, ok := elements[n-1].(*StringElement); ok {
			keep := strings.TrimRight(s.Raw, " \t")
			trailing := len(s.Raw) - len(keep)
			if trailing > 0 {
				value := s.Value[:len(s.Value)-trailing]
				if value == "" {
					elements = elements[:n-1]
				} else {
					elements[n-1] = &StringElement{Value: value, Raw: keep}
				}
				state := r.State()
				state.Cursor -= trailing
				state.Pos.Column -= trailing
				r.SetState(state)
			}
		}
	}

	return Template{
		Quoted:     false,
		Elements:   elements,
		SourceInfo: SourceInfo{Start: start, End: r.Pos()},
	}, nil
}

// QuotedTemplate parses a double-quoted value. Everything between the quotes
// is significant, including leading and trailing whitespace.
func QuotedTemplate(r *Reader) (Template, *ParseError) {
	start := r.Pos()
	if err := TryLiteral(`"`, r); err != nil {
		return Template{}, err
	}
	if r.TryLiteral(`"`) {
		return Template{Quoted: true, SourceInfo: SourceInfo{Start: start, End: r.Pos()}}, nil
	}

	elements, err := ZeroOrMore(templateElement('"'), r)
	if err != nil {
		return Template{}, err
	}
	if !r.TryLiteral(`"`) {
		return Template{}, fatal(r.Pos(), UnterminatedQuotedLiteral)
	}
	return Template{
		Quoted:     true,
		Elements:   elements,
		SourceInfo: SourceInfo{Start: start, End: r.Pos()},
	}, nil
}

// AnyTemplate parses a quoted template if the input starts with a quote,
// an unquoted one otherwise.
func AnyTemplate(r *Reader) (Template, *ParseError) {
	return Choice[Template](r, QuotedTemplate, UnquotedTemplate)
}

// UnquotedStringKey parses a mapping key made of alphanumeric characters, '_', '-',
// '.' and escape sequences.
func UnquotedStringKey(r *Reader) (EncodedString, *ParseError) {
	start := r.Pos()

	var value, encoded strings.Builder
	for {
		save := r.State()
		c, err := escapeChar(r)
		if err == nil {
			value.WriteRune(c)
			encoded.WriteString(r.From(save.Cursor))
			continue
		}
		if !err.Recoverable {
			return EncodedString{}, err
		}
		c, ok := r.Read()
		if !ok || !isKeyChar(c) {
			r.SetState(save)
			break
		}
		value.WriteRune(c)
		encoded.WriteString(r.From(save.Cursor))
	}

	if value.Len() == 0 {
		return EncodedString{}, recoverable(start, ExpectingKeyString)
	}
	return EncodedString{
		Quoted:     false,
		Value:      value.String(),
		Encoded:    encoded.String(),
		SourceInfo: SourceInfo{Start: start, End: r.Pos()},
	}, nil
}

// QuotedStringKey parses a double-quoted mapping key. Keys cannot hold
// interpolations, so braces are plain text here.
func QuotedStringKey(r *Reader) (EncodedString, *ParseError) {
	start := r.Pos()
	if err := TryLiteral(`"`, r); err != nil {
		return EncodedString{}, err
	}
	chars, err := ZeroOrMore(anyChar('"'), r)
	if err != nil {
		return EncodedString{}, err
	}
	if !r.TryLiteral(`"`) {
		return EncodedString{}, fatal(r.Pos(), UnterminatedQuotedLiteral)
	}

	var value, encoded strings.Builder
	for _, c := range chars {
		value.WriteRune(c.value)
		encoded.WriteString(c.raw)
	}
	return EncodedString{
		Quoted:     true,
		Value:      value.String(),
		Encoded:    encoded.String(),
		SourceInfo: SourceInfo{Start: start, End: r.Pos()},
	}, nil
}

// StringKey parses an unquoted or a quoted key.
func StringKey(r *Reader) (EncodedString, *ParseError) {
	start := r.Pos()
	key, err := Choice[EncodedString](r, UnquotedStringKey, QuotedStringKey)
	if err != nil && err.Recoverable {
		return EncodedString{}, recoverable(start, ExpectingKeyString)
	}
	return key, err
}

// QuotedString reads the text between two double quotes as-is.
//
// Unlike QuotedTemplate it does not decode escape sequences: `"a\nb"` yields
// the four characters a, \, n, b. Existing inputs rely on this, so the two
// forms are deliberately kept apart.
func QuotedString(r *Reader) (string, *ParseError) {
	if err := Literal(`"`, r); err != nil {
		return "", err
	}
	s := r.ReadWhile(func(c rune) bool { return c != '"' })
	if err := Literal(`"`, r); err != nil {
		return "", err
	}
	return s, nil
}

// templateElement tries an interpolation first, then literal text
// stopping at any of the except characters.
func templateElement(except ...rune) Parser[TemplateElement] {
	chars := anyChar(except...)
	return func(r *Reader) (TemplateElement, *ParseError) {
		expr, err := ParseExpr(r)
		if err == nil {
			return &ExprElement{Expr: expr}, nil
		}
		if !err.Recoverable {
			return nil, err
		}
		return templateElementString(chars, r)
	}
}

// templateElementString reads the longest run of literal text.
//
// A single '{' is plain text, but two unescaped '{' in a row open an
// interpolation: the scan stops before them so that the next element
// starts with "{{".
func templateElementString(chars Parser[encodedChar], r *Reader) (TemplateElement, *ParseError) {
	start := r.State()
	var value, encoded strings.Builder

	bracket := false
	end := start
	for {
		c, err := chars(r)
		if err != nil {
			if err.Recoverable {
				break
			}
			return nil, err
		}
		if c.raw == "{" {
			if bracket {
				break
			}
			bracket = true
			continue
		}
		if bracket {
			value.WriteByte('{')
			encoded.WriteByte('{')
			bracket = false
		}
		value.WriteRune(c.value)
		encoded.WriteString(c.raw)
		end = r.State()
	}
	r.SetState(end)

	if value.Len() == 0 {
		return nil, recoverable(start.Pos, ExpectingString)
	}
	return &StringElement{Value: value.String(), Raw: encoded.String()}, nil
}

// anyChar accepts an escape sequence, or any raw character except the
// given terminators and the control characters that must be escaped.
func anyChar(except ...rune) Parser[encodedChar] {
	return func(r *Reader) (encodedChar, *ParseError) {
		start := r.State()
		c, err := escapeChar(r)
		if err == nil {
			return encodedChar{value: c, raw: r.From(start.Cursor)}, nil
		}
		if !err.Recoverable {
			return encodedChar{}, err
		}

		c, ok := r.Read()
		if !ok || slices.Contains(except, c) || mustBeEscaped(c) {
			r.SetState(start)
			return encodedChar{}, recoverable(start.Pos, ExpectingChar)
		}
		return encodedChar{value: c, raw: r.From(start.Cursor)}, nil
	}
}

func mustBeEscaped(c rune) bool {
	switch c {
	case '\\', '\b', '\n', '\f', '\r', '\t':
		return true
	}
	return false
}

func isKeyChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsNumber(c) || unicode.Is(unicode.Other_Alphabetic, c) ||
		c == '_' || c == '-' || c == '.'
}

// escapeChar decodes one backslash escape sequence.
func escapeChar(r *Reader) (rune, *ParseError) {
	if err := TryLiteral(`\`, r); err != nil {
		return 0, recoverable(err.Pos, ExpectingBackslash)
	}
	start := r.Pos()
	c, ok := r.Read()
	if !ok {
		return 0, fatal(start, InvalidEscape)
	}
	switch c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'n':
		return '\n', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		return unicodeEscape(r)
	}
	return 0, fatal(start, InvalidEscape)
}

// unicodeEscape parses the {HEX} part of a \u{HEX} escape.
func unicodeEscape(r *Reader) (rune, *ParseError) {
	if err := Literal("{", r); err != nil {
		return 0, err
	}
	v, err := hexNumber(r)
	if err != nil {
		return 0, err
	}
	c := rune(v)
	if !utf8.ValidRune(c) {
		return 0, fatal(r.Pos(), InvalidUnicodeScalar)
	}
	if err := Literal("}", r); err != nil {
		return 0, err
	}
	return c, nil
}

// hexNumber reads one or more hex digits, most significant first. Values
// above the Unicode range saturate so that long digit runs cannot overflow.
func hexNumber(r *Reader) (uint32, *ParseError) {
	digits, err := OneOrMore[uint32](HexDigit, r)
	if err != nil {
		return 0, err
	}
	var v uint32
	for _, d := range digits {
		v = v*16 + d
		if v > unicode.MaxRune {
			v = unicode.MaxRune + 1
		}
	}
	return v, nil
}
