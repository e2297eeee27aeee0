package report

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"autospeed/internals"
)

// lineWriter styles every complete line before passing it on
type lineWriter struct {
	out   io.Writer
	style func(line string) string
	buf   bytes.Buffer
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.buf.Write(p)
	for {
		line, err := lw.buf.ReadString('\n')
		if err != nil {
			// keep the partial line for the next write
			lw.buf.Reset()
			lw.buf.WriteString(line)
			break
		}
		if _, err := io.WriteString(lw.out, lw.style(strings.TrimSuffix(line, "\n"))+"\n"); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// DiagnosticSink styles streamed diagnostics by their prefix
func (r *Renderer) DiagnosticSink(w io.Writer) io.Writer {
	if !r.Color {
		return w
	}
	return &lineWriter{out: w, style: func(line string) string {
		var style lipgloss.Style
		switch {
		case strings.HasPrefix(line, "Parse Error"):
			style = r.Styles.Syntax
		case strings.HasPrefix(line, "Semantic Error"):
			style = r.Styles.Semantic
		default:
			style = r.Styles.Note
		}
		return style.Render(line)
	}}
}

// TraceSink re-indents streamed trace lines to the renderer's indent width
func (r *Renderer) TraceSink(w io.Writer) io.Writer {
	return &lineWriter{out: w, style: func(line string) string {
		trimmed := strings.TrimLeft(line, " ")
		depth := (len(line) - len(trimmed)) / internals.TraceIndent
		return r.paint(r.Styles.Rule, internals.Indent(depth, r.Indent)+trimmed)
	}}
}
