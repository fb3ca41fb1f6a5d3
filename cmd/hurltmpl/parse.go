package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlexanderGrooff/hurl-template-go/cmd/hurltmpl/enum"
	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

type parseOptions struct {
	file string
}

func newParseCmd(a *app) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [value]",
		Short: "Print the parsed structure of a value",
		Long: `Parse a value and print its elements with their decoded text, raw source
and positions.

Modes:
  template  quoted when the value starts with '"', unquoted otherwise
  unquoted  a bare value, trailing spaces and comments excluded
  quoted    a double-quoted value
  key       a mapping key, quoted or not
  string    a double-quoted string without escape decoding`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, opts, args)
		},
	}
	enum.VarP(cmd.Flags(), "mode", "m", []string{"template", "unquoted", "quoted", "key", "string"}, "Grammar rule: template, unquoted, quoted, key, string")
	enum.VarP(cmd.Flags(), "output", "o", []string{"json", "yaml", "table"}, "Output format: json, yaml, table")
	cmd.Flags().StringVar(&opts.file, "file", "", "Read the value from a file")
	return cmd
}

func runParse(cmd *cobra.Command, a *app, opts *parseOptions, args []string) error {
	mode, err := enum.Get(cmd.Flags(), "mode")
	if err != nil {
		return err
	}
	output, err := enum.Get(cmd.Flags(), "output")
	if err != nil {
		return err
	}
	source, err := readInput(opts.file, args)
	if err != nil {
		return err
	}
	a.logger.Debug("parsing value", "mode", mode, "length", len(source))

	var view interface{}
	switch mode {
	case "template", "unquoted", "quoted":
		var t parser.Template
		switch mode {
		case "template":
			t, err = parser.ParseTemplate(source)
		case "unquoted":
			t, err = parser.ParseUnquoted(source)
		default:
			t, err = parser.ParseQuoted(source)
		}
		if err == nil {
			view = newTemplateView(t)
		}
	case "key":
		var k parser.EncodedString
		k, err = parser.ParseKey(source)
		if err == nil {
			view = keyView{
				Quoted:  k.Quoted,
				Value:   k.Value,
				Encoded: k.Encoded,
				Start:   k.SourceInfo.Start,
				End:     k.SourceInfo.End,
			}
		}
	case "string":
		var s string
		s, err = parser.ParseQuotedString(source)
		if err == nil {
			view = stringView{Value: s}
		}
	default:
		return fmt.Errorf("unknown mode: %s", mode)
	}
	if err != nil {
		a.logger.Debug("parse failed", "error", err)
		return a.report(cmd, source, err)
	}
	return writeView(cmd.OutOrStdout(), output, view)
}

type templateView struct {
	Quoted   bool          `json:"quoted" yaml:"quoted"`
	Elements []elementView `json:"elements" yaml:"elements"`
	Start    parser.Pos    `json:"start" yaml:"start"`
	End      parser.Pos    `json:"end" yaml:"end"`
}

// elementView flattens both element kinds; Type is "string" or "expression".
type elementView struct {
	Type     string      `json:"type" yaml:"type"`
	Value    string      `json:"value,omitempty" yaml:"value,omitempty"`
	Variable string      `json:"variable,omitempty" yaml:"variable,omitempty"`
	Encoded  string      `json:"encoded" yaml:"encoded"`
	Start    *parser.Pos `json:"start,omitempty" yaml:"start,omitempty"`
	End      *parser.Pos `json:"end,omitempty" yaml:"end,omitempty"`
}

type keyView struct {
	Quoted  bool       `json:"quoted" yaml:"quoted"`
	Value   string     `json:"value" yaml:"value"`
	Encoded string     `json:"encoded" yaml:"encoded"`
	Start   parser.Pos `json:"start" yaml:"start"`
	End     parser.Pos `json:"end" yaml:"end"`
}

type stringView struct {
	Value string `json:"value" yaml:"value"`
}

func newTemplateView(t parser.Template) templateView {
	v := templateView{
		Quoted:   t.Quoted,
		Elements: []elementView{},
		Start:    t.SourceInfo.Start,
		End:      t.SourceInfo.End,
	}
	for _, e := range t.Elements {
		switch e := e.(type) {
		case *parser.StringElement:
			v.Elements = append(v.Elements, elementView{Type: "string", Value: e.Value, Encoded: e.Encoded()})
		case *parser.ExprElement:
			info := e.Expr.Variable.SourceInfo
			v.Elements = append(v.Elements, elementView{
				Type:     "expression",
				Variable: e.Expr.Variable.Name,
				Encoded:  e.Encoded(),
				Start:    &info.Start,
				End:      &info.End,
			})
		}
	}
	return v
}

func writeView(w io.Writer, output string, v interface{}) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		writeTable(w, v)
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable prints one row per element, or a single row for keys and
// plain strings.
func writeTable(w io.Writer, v interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	switch v := v.(type) {
	case templateView:
		t.AppendHeader(table.Row{"#", "Type", "Value", "Encoded", "Start", "End"})
		for i, e := range v.Elements {
			value, start, end := e.Value, "", ""
			if e.Type == "expression" {
				value = e.Variable
				start, end = e.Start.String(), e.End.String()
			}
			t.AppendRow(table.Row{i + 1, e.Type, value, e.Encoded, start, end})
		}
	case keyView:
		t.AppendHeader(table.Row{"Quoted", "Value", "Encoded", "Start", "End"})
		t.AppendRow(table.Row{v.Quoted, v.Value, v.Encoded, v.Start.String(), v.End.String()})
	case stringView:
		t.AppendHeader(table.Row{"Value"})
		t.AppendRow(table.Row{v.Value})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}
