package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"autospeed/report"
)

const (
	PROMPT       = `>>> `
	PROMPT_CONT  = `... `
	historyFile  = ".autospeed_history"
	helpCommands = ":tokens <stmt>  list tokens\n:vars           show accepted statements\n:reset          forget accepted statements\n:quit           leave"
)

type Config struct {
	Session  *Session
	Renderer *report.Renderer
	Logger   *slog.Logger
	Out      io.Writer
}

func Start(cfg Config) error {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(cfg.Out, "Auto-Speed statement checker, :help for commands")

	for {
		entry, ok := readEntry(ln, cfg.Session)
		if !ok {
			fmt.Fprintln(cfg.Out)
			return nil
		}

		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := handleCommand(cfg, trimmed); quit {
				return nil
			}
			continue
		}

		res := cfg.Session.Eval(entry)
		for _, d := range res.Diagnostics {
			fmt.Fprintln(cfg.Out, cfg.Renderer.Diagnostic(d))
		}
		if res.Accepted {
			fmt.Fprintln(cfg.Out, cfg.Renderer.Styles.Success.Render("ok"))
		}
		cfg.Logger.Debug("entry checked", "accepted", res.Accepted, "diagnostics", len(res.Diagnostics))
	}
}

// readEntry keeps prompting while the entry has unclosed blocks
func readEntry(ln *liner.State, s *Session) (string, bool) {
	var b strings.Builder

	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = PROMPT_CONT
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !Pending(b.String(), s.LexerOptions) {
			return b.String(), true
		}
	}
}

func handleCommand(cfg Config, command string) (quit bool) {
	name, arg, _ := strings.Cut(command, " ")

	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(cfg.Out, helpCommands)
	case ":reset":
		cfg.Session.Reset()
		fmt.Fprintln(cfg.Out, "session cleared")
	case ":vars":
		for _, stmt := range cfg.Session.Accepted() {
			fmt.Fprintln(cfg.Out, stmt)
		}
	case ":tokens":
		_ = cfg.Renderer.Tokens(cfg.Out, cfg.Session.tokens(arg))
	default:
		fmt.Fprintln(cfg.Out, "unknown command, type :help")
	}
	return false
}
