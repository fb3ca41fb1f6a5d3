package parser

// Parser is a grammar rule. On success it returns the value and leaves the
// reader after the consumed input. On failure it returns a *ParseError.
//
// Parsers return the concrete *ParseError type rather than error so that
// combinators can branch on Recoverable without type assertions.
type Parser[T any] func(r *Reader) (T, *ParseError)

// Optional runs p once. A recoverable failure is turned into (zero, false, nil)
// with the reader restored.
func Optional[T any](p Parser[T], r *Reader) (T, bool, *ParseError) {
	save := r.State()
	v, err := p(r)
	if err != nil {
		var zero T
		if err.Recoverable {
			r.SetState(save)
			return zero, false, nil
		}
		return zero, false, err
	}
	return v, true, nil
}

// ZeroOrMore applies p until it fails recoverably. The reader is restored to
// the state before the failed attempt. Fatal errors are returned as-is.
func ZeroOrMore[T any](p Parser[T], r *Reader) ([]T, *ParseError) {
	var values []T
	for {
		save := r.State()
		v, err := p(r)
		if err != nil {
			if err.Recoverable {
				r.SetState(save)
				return values, nil
			}
			return nil, err
		}
		values = append(values, v)
	}
}

// OneOrMore is ZeroOrMore requiring at least one match. If the very first
// attempt fails, the failure is reported as fatal: callers use OneOrMore
// once the surrounding construct has been committed to.
func OneOrMore[T any](p Parser[T], r *Reader) ([]T, *ParseError) {
	save := r.State()
	first, err := p(r)
	if err != nil {
		if err.Recoverable {
			r.SetState(save)
		}
		return nil, &ParseError{Pos: err.Pos, Recoverable: false, Kind: err.Kind, Expected: err.Expected}
	}
	rest, err := ZeroOrMore(p, r)
	if err != nil {
		return nil, err
	}
	return append([]T{first}, rest...), nil
}

// Choice tries each parser in order, restoring the reader between attempts.
// The first success or fatal error wins. When every alternative fails
// recoverably, the last error is returned.
func Choice[T any](r *Reader, parsers ...Parser[T]) (T, *ParseError) {
	var zero T
	var last *ParseError
	for _, p := range parsers {
		save := r.State()
		v, err := p(r)
		if err == nil {
			return v, nil
		}
		if !err.Recoverable {
			return zero, err
		}
		r.SetState(save)
		last = err
	}
	if last == nil {
		last = recoverable(r.Pos(), ExpectingChar)
	}
	return zero, last
}

// Literal consumes s. Failing to find it is fatal, reported at the start.
func Literal(s string, r *Reader) *ParseError {
	start := r.State()
	for _, want := range s {
		c, ok := r.Read()
		if !ok || c != want {
			return &ParseError{Pos: start.Pos, Recoverable: false, Kind: Expecting, Expected: s}
		}
	}
	return nil
}

// TryLiteral is Literal with a recoverable failure and no consumption.
func TryLiteral(s string, r *Reader) *ParseError {
	start := r.State()
	if err := Literal(s, r); err != nil {
		r.SetState(start)
		err.Recoverable = true
		return err
	}
	return nil
}
