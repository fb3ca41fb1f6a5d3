package main

import (
	"fmt"

	"github.com/spf13/cobra"

	hurltemplate "github.com/AlexanderGrooff/hurl-template-go"
)

type renderOptions struct {
	variablesFile string
	variables     []string
	file          string
}

func newRenderCmd(a *app) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [value]",
		Short: "Render a value with variables",
		Long: `Render a value, replacing each {{ name }} with the value of the variable.

Variables come from a YAML or JSON file and from --variable flags, which take
precedence.`,
		Example: `  hurltmpl render --variable host=localhost 'http://{{ host }}:8080'
  hurltmpl render --variables-file vars.yaml --file body.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, a, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.variablesFile, "variables-file", "", "YAML or JSON file of variables")
	cmd.Flags().StringArrayVar(&opts.variables, "variable", nil, "Set a variable as name=value (repeatable)")
	cmd.Flags().StringVar(&opts.file, "file", "", "Read the value from a file")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, opts *renderOptions, args []string) error {
	source, err := readInput(opts.file, args)
	if err != nil {
		return err
	}
	vars, err := loadVariables(opts.variablesFile, opts.variables)
	if err != nil {
		return err
	}
	a.logger.Debug("rendering value", "length", len(source), "variables", len(vars))

	out, err := hurltemplate.TemplateString(source, vars)
	if err != nil {
		a.logger.Debug("render failed", "error", err)
		return a.report(cmd, source, err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func loadVariables(file string, assignments []string) (hurltemplate.Variables, error) {
	vars := hurltemplate.Variables{}
	if file != "" {
		fromFile, err := hurltemplate.LoadVariablesFile(file)
		if err != nil {
			return nil, err
		}
		vars.Merge(fromFile)
	}
	for _, s := range assignments {
		name, value, err := hurltemplate.ParseVariableFlag(s)
		if err != nil {
			return nil, err
		}
		vars[name] = value
	}
	return vars, nil
}
