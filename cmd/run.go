package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"autospeed/config"
	"autospeed/lexer"
	"autospeed/parser"
	"autospeed/report"
)

type checkOptions struct {
	file   string
	format string
	tokens bool
	calls  bool
	trace  bool
}

func (o *checkOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "program file path")
	cmd.Flags().StringVar(&o.format, "format", "", "output format: text, json or yaml")
	cmd.Flags().BoolVar(&o.tokens, "tokens", false, "list the tokens before the trace")
	cmd.Flags().BoolVar(&o.calls, "calls", false, "accept function calls in expressions and statements")
	cmd.Flags().BoolVar(&o.trace, "trace", true, "print the grammar trace")
	_ = cmd.MarkFlagRequired("file")
}

// resolve fills every flag the user didn't set from the config
func (o *checkOptions) resolve(cmd *cobra.Command, cfg *config.Config) (report.Format, error) {
	if !cmd.Flags().Changed("format") {
		o.format = cfg.Output.Format
	}
	if !cmd.Flags().Changed("tokens") {
		o.tokens = cfg.Trace.ShowTokens
	}
	if !cmd.Flags().Changed("calls") {
		o.calls = cfg.Grammar.CallSyntax
	}
	if !cmd.Flags().Changed("trace") {
		o.trace = cfg.Trace.Enabled
	}
	return report.ParseFormat(o.format)
}

func newRunCmd(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Parse and check a program file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := opts.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}
			return a.check(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

// check runs one fresh lexer, parser and analyzer over the file
func (a *app) check(out, errOut io.Writer, format report.Format, opts *checkOptions) error {
	content, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.file, err)
	}

	runID := uuid.New()
	logger := a.logger.With("run", runID.String(), "file", opts.file)
	start := time.Now()

	tokens := lexer.NewLexer(opts.file, string(content), a.cfg.LexerOptions()).Tokenize()
	logger.Debug("tokenized", "tokens", len(tokens))

	parserOpts := a.cfg.ParserOptions()
	parserOpts.CallSyntax = opts.calls

	var outcome *parser.Outcome
	if format == report.FormatText {
		outcome, err = a.checkText(out, errOut, tokens, parserOpts, opts)
	} else {
		outcome, err = parser.NewParser(tokens, opts.file, parserOpts).Parse()
		if err == nil {
			var listed []lexer.Token
			if opts.tokens {
				listed = tokens
			}
			err = report.Encode(out, format, report.NewDocument(opts.file, listed, outcome, opts.trace))
		}
	}
	if err != nil {
		return err
	}

	logger.Info("check finished",
		"syntax_errors", outcome.SyntaxErrors,
		"semantic_errors", outcome.SemanticErrors,
		"diagnostics", len(outcome.Diagnostics),
		"duration", time.Since(start),
	)

	if !outcome.OK() {
		return ErrCheckFailed
	}
	return nil
}

// checkText streams the trace to out and the diagnostics to errOut while parsing
func (a *app) checkText(out, errOut io.Writer, tokens []lexer.Token, parserOpts parser.Options, opts *checkOptions) (*parser.Outcome, error) {
	r := a.renderer(out)

	if opts.tokens {
		if err := r.Tokens(out, tokens); err != nil {
			return nil, err
		}
	}
	fmt.Fprintln(out, r.Styles.Header.Render(report.ParserHeader))
	fmt.Fprintln(out, report.StartBanner)

	if opts.trace {
		parserOpts.Trace = r.TraceSink(out)
	}
	parserOpts.Sink = r.DiagnosticSink(errOut)

	outcome, err := parser.NewParser(tokens, opts.file, parserOpts).Parse()
	if err != nil {
		return nil, err
	}

	for _, line := range r.Verdict(outcome) {
		fmt.Fprintln(out, line)
	}
	return outcome, nil
}
