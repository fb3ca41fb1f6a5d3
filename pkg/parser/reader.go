package parser

// ReaderState is a snapshot of the reader position.
// It is a plain value: saving and restoring it is a copy.
type ReaderState struct {
	Cursor int // Index of the next rune in the buffer.
	Pos    Pos // Source position of the next rune.
}

// Reader holds the state of the parsing process.
// Every parser in this package receives the same *Reader and advances it;
// backtracking is done by saving State() and calling SetState.
type Reader struct {
	buffer []rune // The full input being parsed, decoded as runes.
	state  ReaderState
}

// NewReader creates a Reader positioned at line 1, column 1 of s.
func NewReader(s string) *Reader {
	return &Reader{
		buffer: []rune(s),
		state:  ReaderState{Cursor: 0, Pos: Pos{Line: 1, Column: 1}},
	}
}

// State returns a snapshot of the current position.
func (r *Reader) State() ReaderState {
	return r.state
}

// SetState restores a snapshot previously returned by State.
func (r *Reader) SetState(s ReaderState) {
	r.state = s
}

// Cursor returns the current rune offset.
func (r *Reader) Cursor() int {
	return r.state.Cursor
}

// Pos returns the source position of the next rune.
func (r *Reader) Pos() Pos {
	return r.state.Pos
}

// IsEOF reports whether the whole buffer has been consumed.
func (r *Reader) IsEOF() bool {
	return r.state.Cursor >= len(r.buffer)
}

// Peek returns the next rune without consuming it.
func (r *Reader) Peek() (rune, bool) {
	if r.IsEOF() {
		return 0, false
	}
	return r.buffer[r.state.Cursor], true
}

// Read consumes and returns the next rune, updating line and column.
func (r *Reader) Read() (rune, bool) {
	if r.IsEOF() {
		return 0, false
	}
	c := r.buffer[r.state.Cursor]
	r.state.Cursor++
	if c == '\n' {
		r.state.Pos.Line++
		r.state.Pos.Column = 1
	} else {
		r.state.Pos.Column++
	}
	return c, true
}

// ReadWhile consumes the longest run of runes matching predicate.
func (r *Reader) ReadWhile(predicate func(rune) bool) string {
	start := r.state.Cursor
	for {
		c, ok := r.Peek()
		if !ok || !predicate(c) {
			break
		}
		r.Read()
	}
	return string(r.buffer[start:r.state.Cursor])
}

// TryLiteral consumes s if the input continues with it.
// Nothing is consumed when it does not.
func (r *Reader) TryLiteral(s string) bool {
	save := r.state
	for _, want := range s {
		c, ok := r.Read()
		if !ok || c != want {
			r.state = save
			return false
		}
	}
	return true
}

// From returns the text consumed since cursor.
func (r *Reader) From(cursor int) string {
	if cursor < 0 {
		cursor = 0
	}
	end := r.state.Cursor
	if cursor > end {
		return ""
	}
	return string(r.buffer[cursor:end])
}

// Remaining returns the unconsumed part of the input.
func (r *Reader) Remaining() string {
	if r.IsEOF() {
		return ""
	}
	return string(r.buffer[r.state.Cursor:])
}
