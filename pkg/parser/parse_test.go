package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnquoted(t *testing.T) {
	got, err := ParseUnquoted("hello {{name}} # greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello {{name}}", got.Encoded())

	got, err = ParseUnquoted("value   ")
	require.NoError(t, err)
	assert.Equal(t, "value", got.Encoded())

	_, err = ParseUnquoted("a{")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, TrailingInput, perr.Kind)
	assert.Equal(t, Pos{Line: 1, Column: 2}, perr.Pos)

	_, err = ParseUnquoted("line1\nline2")
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, TrailingInput, perr.Kind)
	assert.Equal(t, Pos{Line: 1, Column: 6}, perr.Pos)
}

func TestParseQuoted(t *testing.T) {
	got, err := ParseQuoted(`"a\tb"`)
	require.NoError(t, err)
	assert.Equal(t, []TemplateElement{&StringElement{Value: "a\tb", Raw: `a\tb`}}, got.Elements)

	_, err = ParseQuoted("abc")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.False(t, perr.Recoverable, "errors leaving the top level are final")
	assert.Equal(t, Expecting, perr.Kind)

	_, err = ParseQuoted(`"unterminated`)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnterminatedQuotedLiteral, perr.Kind)
	assert.Equal(t, Pos{Line: 1, Column: 14}, perr.Pos)
	assert.EqualError(t, err, `1:14: unterminated quoted string, expecting '"'`)
}

func TestParseTemplate(t *testing.T) {
	got, err := ParseTemplate(`"quoted"`)
	require.NoError(t, err)
	assert.True(t, got.Quoted)

	got, err = ParseTemplate(`bare`)
	require.NoError(t, err)
	assert.False(t, got.Quoted)
}

func TestParseKey(t *testing.T) {
	got, err := ParseKey(`key\u{20}\u{3a}`)
	require.NoError(t, err)
	assert.Equal(t, "key :", got.Value)

	_, err = ParseKey("")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ExpectingKeyString, perr.Kind)
}

func TestParseQuotedString(t *testing.T) {
	got, err := ParseQuotedString(`"x\u{20}"`)
	require.NoError(t, err)
	assert.Equal(t, `x\u{20}`, got)
}

func TestDecode(t *testing.T) {
	escapes := map[string]string{
		`\"`:         `"`,
		`\\`:         `\`,
		`\/`:         "/",
		`\b`:         "\b",
		`\n`:         "\n",
		`\f`:         "\f",
		`\r`:         "\r",
		`\t`:         "\t",
		`\u{41}`:     "A",
		`\u{00e9}`:   "é",
		`\u{10FFFF}`: "\U0010FFFF",
	}
	for raw, want := range escapes {
		got, err := Decode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	got, err := Decode(`plain {0} #"`)
	require.NoError(t, err)
	assert.Equal(t, `plain {0} #"`, got)

	_, err = Decode("raw\ttab")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ExpectingChar, perr.Kind)
	assert.Equal(t, Pos{Line: 1, Column: 4}, perr.Pos)

	_, err = Decode(`\z`)
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, InvalidEscape, perr.Kind)
}

func TestParseError_Description(t *testing.T) {
	assert.Equal(t, "expecting '}}'", (&ParseError{Kind: Expecting, Expected: "}}"}).Description())
	assert.Equal(t, "the escaping sequence is not supported", (&ParseError{Kind: InvalidEscape}).Description())
	assert.Equal(t, "InvalidUnicodeScalar", InvalidUnicodeScalar.String())
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}
