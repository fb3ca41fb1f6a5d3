package hurltemplate

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

// Variables maps variable names to values. Values are strings, booleans,
// numbers or nil; lists and maps may be stored but cannot be rendered.
type Variables map[string]interface{}

// Set validates name and stores value under it.
func (v Variables) Set(name string, value interface{}) error {
	if !parser.IsVariableName(name) {
		return fmt.Errorf("invalid variable name %q", name)
	}
	v[name] = value
	return nil
}

// Merge copies every entry of other into v, overriding existing names.
func (v Variables) Merge(other Variables) {
	for name, value := range other {
		v[name] = value
	}
}

// LoadVariablesFile reads a YAML (or JSON) document mapping names to values.
func LoadVariablesFile(path string) (Variables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variables file %s: %w", path, err)
	}
	vars, err := ParseVariables(data)
	if err != nil {
		return nil, fmt.Errorf("parsing variables file %s: %w", path, err)
	}
	return vars, nil
}

// ParseVariables decodes a YAML document mapping names to values.
func ParseVariables(data []byte) (Variables, error) {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	vars := Variables{}
	for name, value := range raw {
		if err := vars.Set(name, value); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

// ParseVariableFlag parses a "name=value" assignment. The value is typed the
// way it would be in a variables file: true/false, null, integers and floats
// are recognised, anything else is a string.
func ParseVariableFlag(s string) (string, interface{}, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("invalid variable %q: expecting name=value", s)
	}
	if !parser.IsVariableName(name) {
		return "", nil, fmt.Errorf("invalid variable name %q", name)
	}
	return name, scalar(value), nil
}

func scalar(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
