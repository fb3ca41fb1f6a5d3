package parser

import "fmt"

// ErrorKind identifies the grammar rule that failed.
type ErrorKind int

const (
	ExpectingBackslash ErrorKind = iota
	InvalidEscape
	InvalidUnicodeScalar
	InvalidHexDigit
	ExpectingChar
	ExpectingString
	ExpectingKeyString
	ExpectingVariable
	UnterminatedQuotedLiteral
	Expecting // A literal token; see ParseError.Expected.
	TrailingInput
)

var errorKindNames = [...]string{
	ExpectingBackslash:        "ExpectingBackslash",
	InvalidEscape:             "InvalidEscape",
	InvalidUnicodeScalar:      "InvalidUnicodeScalar",
	InvalidHexDigit:           "InvalidHexDigit",
	ExpectingChar:             "ExpectingChar",
	ExpectingString:           "ExpectingString",
	ExpectingKeyString:        "ExpectingKeyString",
	ExpectingVariable:         "ExpectingVariable",
	UnterminatedQuotedLiteral: "UnterminatedQuotedLiteral",
	Expecting:                 "Expecting",
	TrailingInput:             "TrailingInput",
}

func (k ErrorKind) String() string {
	if int(k) < 0 || int(k) >= len(errorKindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// ParseError is the single error type returned by every parser in this package.
//
// A recoverable error means "this alternative does not apply": the parser that
// returned it has restored the reader, and the caller may try something else.
// A fatal error is a definite grammar violation; it is propagated unchanged to
// the top of the parse and the reader is left where the failure happened.
type ParseError struct {
	Pos         Pos
	Recoverable bool
	Kind        ErrorKind
	Expected    string // Token expected by a Kind == Expecting error.
}

func recoverable(pos Pos, kind ErrorKind) *ParseError {
	return &ParseError{Pos: pos, Recoverable: true, Kind: kind}
}

func fatal(pos Pos, kind ErrorKind) *ParseError {
	return &ParseError{Pos: pos, Recoverable: false, Kind: kind}
}

// Description is a short human readable message for the error kind.
func (e *ParseError) Description() string {
	switch e.Kind {
	case ExpectingBackslash:
		return `expecting '\'`
	case InvalidEscape:
		return "the escaping sequence is not supported"
	case InvalidUnicodeScalar:
		return "invalid unicode literal"
	case InvalidHexDigit:
		return "expecting a valid hexadecimal number"
	case ExpectingChar:
		return "expecting a character"
	case ExpectingString:
		return "expecting a string"
	case ExpectingKeyString:
		return "expecting a key string"
	case ExpectingVariable:
		return "expecting a variable name"
	case UnterminatedQuotedLiteral:
		return "unterminated quoted string, expecting '\"'"
	case Expecting:
		return fmt.Sprintf("expecting '%s'", e.Expected)
	case TrailingInput:
		return "unexpected trailing input"
	default:
		return e.Kind.String()
	}
}

// Position is where the error was detected.
func (e *ParseError) Position() Pos {
	return e.Pos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Description())
}
