package parser

import "unicode"

// ParseExpr parses a {{ variable }} interpolation.
//
// A missing "{{" is recoverable so that callers can fall back to literal
// text. Once "{{" has been read the interpolation is committed and every
// further failure is fatal.
func ParseExpr(r *Reader) (Expr, *ParseError) {
	if err := TryLiteral("{{", r); err != nil {
		return Expr{}, err
	}
	space0 := ZeroOrMoreSpaces(r)
	variable, err := variableName(r)
	if err != nil {
		return Expr{}, err
	}
	space1 := ZeroOrMoreSpaces(r)
	if err := Literal("}}", r); err != nil {
		return Expr{}, err
	}
	return Expr{Space0: space0, Variable: variable, Space1: space1}, nil
}

func variableName(r *Reader) (Variable, *ParseError) {
	start := r.Pos()
	name := r.ReadWhile(isVariableChar)
	if name == "" {
		return Variable{}, fatal(start, ExpectingVariable)
	}
	return Variable{Name: name, SourceInfo: SourceInfo{Start: start, End: r.Pos()}}, nil
}

func isVariableChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-'
}

// IsVariableName reports whether name can be referenced from an interpolation.
func IsVariableName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if !isVariableChar(c) {
			return false
		}
	}
	return true
}
