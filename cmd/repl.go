package cmd

import (
	"github.com/spf13/cobra"

	"autospeed/repl"
)

func newReplCmd(a *app) *cobra.Command {
	var calls bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Check statements interactively, declarations persist between entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parserOpts := a.cfg.ParserOptions()
			if cmd.Flags().Changed("calls") {
				parserOpts.CallSyntax = calls
			}

			return repl.Start(repl.Config{
				Session:  repl.NewSession(a.cfg.LexerOptions(), parserOpts),
				Renderer: a.renderer(cmd.OutOrStdout()),
				Logger:   a.logger,
				Out:      cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().BoolVar(&calls, "calls", false, "accept function calls in expressions and statements")
	return cmd
}
