// Package enum provides string flags restricted to a fixed set of values.
package enum

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Value is a pflag.Value accepting only one of its options.
type Value struct {
	options []string
	value   string
}

var _ pflag.Value = (*Value)(nil)

// New creates a Value defaulting to the first option.
func New(options []string) *Value {
	return &Value{options: options, value: options[0]}
}

func (v *Value) String() string { return v.value }

func (v *Value) Set(s string) error {
	if !slices.Contains(v.options, s) {
		return fmt.Errorf("must be one of %s", strings.Join(v.options, ", "))
	}
	v.value = s
	return nil
}

func (v *Value) Type() string { return "enum" }

// Var defines an enum flag. The first option is the default.
func Var(flags *pflag.FlagSet, name string, options []string, usage string) {
	VarP(flags, name, "", options, usage)
}

// VarP is Var with a shorthand letter.
func VarP(flags *pflag.FlagSet, name, shorthand string, options []string, usage string) {
	flags.VarP(New(options), name, shorthand, usage)
}

// Get returns the value of the enum flag name.
func Get(flags *pflag.FlagSet, name string) (string, error) {
	f := flags.Lookup(name)
	if f == nil {
		return "", fmt.Errorf("flag %s is not defined", name)
	}
	v, ok := f.Value.(*Value)
	if !ok {
		return "", fmt.Errorf("flag %s is not an enum", name)
	}
	return v.String(), nil
}
