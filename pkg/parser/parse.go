package parser

import "strings"

// ParseUnquoted parses s as a complete unquoted template. The value may be
// followed by spaces and a "# comment", as on a line of a request file.
func ParseUnquoted(s string) (Template, error) {
	return parseAll[Template](s, withComment(UnquotedTemplate))
}

// ParseQuoted parses s as a complete double-quoted template, optionally
// followed by a comment.
func ParseQuoted(s string) (Template, error) {
	return parseAll[Template](s, withComment(QuotedTemplate))
}

// ParseTemplate parses s as a quoted template when it starts with a double
// quote, as an unquoted one otherwise.
func ParseTemplate(s string) (Template, error) {
	return parseAll[Template](s, withComment(AnyTemplate))
}

// withComment lets p be followed by spaces and a comment running to the end
// of the line. Spaces that are not followed by a comment are not consumed.
func withComment[T any](p Parser[T]) Parser[T] {
	return func(r *Reader) (T, *ParseError) {
		v, err := p(r)
		if err != nil {
			return v, err
		}
		save := r.State()
		ZeroOrMoreSpaces(r)
		if c, ok := r.Peek(); ok && c == '#' {
			r.ReadWhile(func(c rune) bool { return c != '\n' })
		} else if !r.IsEOF() {
			r.SetState(save)
		}
		return v, nil
	}
}

// ParseKey parses s as a complete mapping key, quoted or not.
func ParseKey(s string) (EncodedString, error) {
	return parseAll[EncodedString](s, StringKey)
}

// ParseQuotedString parses s with the plain quoted-string rule, which does
// not decode escapes.
func ParseQuotedString(s string) (string, error) {
	return parseAll[string](s, QuotedString)
}

// Decode decodes the escape sequences of raw. raw must only hold characters
// that are valid inside a literal: control characters must be escaped.
func Decode(raw string) (string, error) {
	r := NewReader(raw)
	chars := anyChar()
	var sb strings.Builder
	for !r.IsEOF() {
		c, err := chars(r)
		if err != nil {
			return "", final(err)
		}
		sb.WriteRune(c.value)
	}
	return sb.String(), nil
}

// parseAll runs p on the whole of s. Any error escaping to this level is
// reported as final, and unconsumed input is an error.
func parseAll[T any](s string, p Parser[T]) (T, error) {
	var zero T
	r := NewReader(s)
	v, err := p(r)
	if err != nil {
		return zero, final(err)
	}
	if !r.IsEOF() {
		return zero, fatal(r.Pos(), TrailingInput)
	}
	return v, nil
}

func final(err *ParseError) *ParseError {
	if !err.Recoverable {
		return err
	}
	e := *err
	e.Recoverable = false
	return &e
}
