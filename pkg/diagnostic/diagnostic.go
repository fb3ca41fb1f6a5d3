// Package diagnostic renders parse and render errors against their source,
// pointing at the offending column.
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

// Styles holds the color formatters used for diagnostics.
type Styles struct {
	severity *color.Color
	message  *color.Color
	location *color.Color
	gutter   *color.Color
	caret    *color.Color
}

// NewStyles creates the formatters. enabled forces colors on or off,
// regardless of the terminal and of color.NoColor.
func NewStyles(enabled bool) *Styles {
	s := &Styles{
		severity: color.New(color.Bold, color.FgHiRed),
		message:  color.New(color.Bold),
		location: color.New(color.FgHiBlue),
		gutter:   color.New(color.FgHiBlue),
		caret:    color.New(color.Bold, color.FgHiRed),
	}
	for _, c := range []*color.Color{s.severity, s.message, s.location, s.gutter, s.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Write prints message followed by the source line at pos with a caret under
// pos.Column:
//
//	error: the escaping sequence is not supported
//	 --> 1:5
//	  |
//	1 | bad\escape
//	  |     ^
func Write(w io.Writer, s *Styles, source string, pos parser.Pos, message string) error {
	line := sourceLine(source, pos.Line)
	num := strconv.Itoa(pos.Line)
	pad := strings.Repeat(" ", len(num))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.severity.Sprint("error:"), s.message.Sprint(message))
	fmt.Fprintf(&b, "%s %s\n", s.gutter.Sprint(pad+"-->"), s.location.Sprint(pos))
	fmt.Fprintf(&b, "%s\n", s.gutter.Sprint(pad+" |"))
	fmt.Fprintf(&b, "%s %s\n", s.gutter.Sprint(num+" |"), line)
	fmt.Fprintf(&b, "%s %s%s\n", s.gutter.Sprint(pad+" |"), indent(line, pos.Column), s.caret.Sprint("^"))
	_, err := io.WriteString(w, b.String())
	return err
}

// Located is an error that knows where in the source it happened.
// *parser.ParseError and rendering errors implement it.
type Located interface {
	error
	Position() parser.Pos
	Description() string
}

// Report prints err against source. Located errors are shown with the source
// line; any other error is printed on a single line.
func Report(w io.Writer, s *Styles, source string, err error) error {
	var located Located
	if errors.As(err, &located) {
		return Write(w, s, source, located.Position(), located.Description())
	}
	_, werr := fmt.Fprintf(w, "%s %s\n", s.severity.Sprint("error:"), s.message.Sprint(err.Error()))
	return werr
}

func sourceLine(source string, n int) string {
	lines := strings.Split(source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// indent returns the whitespace that puts a caret under column of line. Tabs
// are kept so the caret lines up with the printed source.
func indent(line string, column int) string {
	var b strings.Builder
	i := 1
	for _, c := range line {
		if i >= column {
			break
		}
		if c == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < column; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}
