package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"autospeed/config"
	"autospeed/report"
)

// ErrCheckFailed is returned when a checked program has syntax or semantic errors
var ErrCheckFailed = errors.New("check failed")

type app struct {
	cfgFile string
	verbose bool

	cfg    *config.Config
	logger *slog.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "autospeed",
		Short: "Auto-Speed lexer, parser and scope checker",
		Long: `autospeed reads Auto-Speed programs, prints their tokens and the
grammar trace, and reports syntax and scope errors.

Commands:
  tokens   - list the tokens of a file
  run      - parse and check a file
  watch    - check a file again on every change
  repl     - check statements interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./autospeed.toml, ./autospeed.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newTokensCmd(a),
		newRunCmd(a),
		newWatchCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrCheckFailed) {
		printError(err)
	}
	return err
}

func (a *app) setup(cmd *cobra.Command) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Discover(a.cfgFile, dir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log, a.verbose)

	// lipgloss keeps one process wide profile, forced here and never per renderer
	if cfg.Output.Color == "always" {
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	if cfg.Source != "" {
		a.logger.Debug("config loaded", "file", cfg.Source)
	}
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// renderer follows output.color, auto colors only terminals
func (a *app) renderer(w io.Writer) *report.Renderer {
	color := false
	switch a.cfg.Output.Color {
	case "always":
		color = true
	case "auto":
		color = termenv.NewOutput(w).ColorProfile() != termenv.Ascii
	}

	r := report.NewRenderer(color)
	r.Indent = a.cfg.Trace.Indent
	r.ShowTrace = a.cfg.Trace.Enabled
	r.ShowTokens = a.cfg.Trace.ShowTokens
	return r
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
