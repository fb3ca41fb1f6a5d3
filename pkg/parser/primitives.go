package parser

// HexDigit reads one hexadecimal digit and returns its value.
func HexDigit(r *Reader) (uint32, *ParseError) {
	start := r.State()
	c, ok := r.Read()
	if ok {
		if v, isHex := hexValue(c); isHex {
			return v, nil
		}
	}
	r.SetState(start)
	return 0, recoverable(start.Pos, InvalidHexDigit)
}

func hexValue(c rune) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// ZeroOrMoreSpaces consumes spaces and tabs. It never fails.
func ZeroOrMoreSpaces(r *Reader) Whitespace {
	start := r.Pos()
	value := r.ReadWhile(isSpaceOrTab)
	return Whitespace{Value: value, SourceInfo: SourceInfo{Start: start, End: r.Pos()}}
}

func isSpaceOrTab(c rune) bool {
	return c == ' ' || c == '\t'
}
