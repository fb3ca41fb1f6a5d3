package hurltemplate

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

var (
	// ErrUndefinedVariable is returned when an interpolation names a variable
	// that is not set.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrUnrenderable is returned for values that have no string form,
	// such as lists and objects.
	ErrUnrenderable = errors.New("value cannot be rendered as a string")
)

// RenderError locates a rendering failure in the template source.
type RenderError struct {
	Variable string
	Pos      parser.Pos
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Description())
}

// Description is the error message without its position.
func (e *RenderError) Description() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Variable)
}

// Position is where the failing interpolation starts.
func (e *RenderError) Position() parser.Pos {
	return e.Pos
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Render evaluates a parsed template: literal text is copied as decoded,
// each interpolation is replaced by the string form of its variable.
func Render(t parser.Template, vars Variables) (string, error) {
	var sb strings.Builder
	for _, element := range t.Elements {
		switch e := element.(type) {
		case *parser.StringElement:
			sb.WriteString(e.Value)
		case *parser.ExprElement:
			name := e.Expr.Variable.Name
			value, ok := vars[name]
			if !ok {
				return "", &RenderError{Variable: name, Pos: e.Expr.Variable.SourceInfo.Start, Err: ErrUndefinedVariable}
			}
			s, err := RenderValue(value)
			if err != nil {
				return "", &RenderError{Variable: name, Pos: e.Expr.Variable.SourceInfo.Start, Err: err}
			}
			sb.WriteString(s)
		default:
			return "", fmt.Errorf("unknown template element %T", element)
		}
	}
	return sb.String(), nil
}

// RenderValue returns the string form of a variable value.
// nil renders as "null"; lists and maps cannot be rendered.
func RenderValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return "", fmt.Errorf("%w: %T", ErrUnrenderable, value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return strconv.FormatInt(reflect.ValueOf(value).Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return strconv.FormatUint(reflect.ValueOf(value).Uint(), 10), nil
	}
	return fmt.Sprintf("%v", value), nil
}
