package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"autospeed/lexer"
)

func newTokensCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List the tokens of a program file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}

			tokens := lexer.NewLexer(file, string(content), a.cfg.LexerOptions()).Tokenize()
			a.logger.Debug("tokenized", "file", file, "tokens", len(tokens))
			return a.renderer(cmd.OutOrStdout()).Tokens(cmd.OutOrStdout(), tokens)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "program file path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
