package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "decode <raw>",
		Short:   "Decode the escape sequences of a raw string",
		Example: `  hurltmpl decode 'caf\u{e9}\t\"ok\"'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := parser.Decode(args[0])
			if err != nil {
				return a.report(cmd, args[0], err)
			}
			a.logger.Debug("decoded", "raw", args[0], "value", decoded)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), decoded)
			return err
		},
	}
}
