package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"autospeed/internals"
	"autospeed/lexer"
	"autospeed/parser"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", s)
	}
}

const (
	TokensHeader = "=== TOKENS ==="
	ParserHeader = "=== PARSER ==="
	StartBanner  = "Starting Auto-Speed parse..."
)

// Document is the structured form of one check, used for json and yaml output
type Document struct {
	File           string                 `json:"file,omitempty" yaml:"file,omitempty"`
	Tokens         []lexer.Token          `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Trace          []string               `json:"trace,omitempty" yaml:"trace,omitempty"`
	Diagnostics    []internals.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	SyntaxErrors   bool                   `json:"syntax_errors" yaml:"syntax_errors"`
	SemanticErrors bool                   `json:"semantic_errors" yaml:"semantic_errors"`
	Verdict        []string               `json:"verdict" yaml:"verdict"`
}

type Renderer struct {
	Styles Styles
	Color  bool
	// spaces per trace level
	Indent     int
	ShowTrace  bool
	ShowTokens bool
}

func NewRenderer(color bool) *Renderer {
	r := &Renderer{
		Styles:    PlainStyles(),
		Color:     color,
		Indent:    internals.TraceIndent,
		ShowTrace: true,
	}
	if color {
		r.Styles = ColorStyles()
	}
	return r
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.Color {
		return s
	}
	return style.Render(s)
}

func (r *Renderer) Tokens(w io.Writer, tokens []lexer.Token) error {
	var b strings.Builder
	b.WriteString(r.paint(r.Styles.Header, TokensHeader) + "\n")
	for _, tok := range tokens {
		b.WriteString(r.paint(r.Styles.Token, tok.String()) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) TraceLine(line parser.TraceLine) string {
	return r.paint(r.Styles.Rule, internals.Indent(line.Depth, r.Indent)+"=> ("+line.Label+")")
}

func (r *Renderer) Diagnostic(d internals.Diagnostic) string {
	switch d.Severity {
	case internals.SeveritySyntax:
		return r.paint(r.Styles.Syntax, d.String())
	case internals.SeveritySemantic:
		return r.paint(r.Styles.Semantic, d.String())
	default:
		return r.paint(r.Styles.Note, d.String())
	}
}

func (r *Renderer) Verdict(o *parser.Outcome) []string {
	lines := []string{}
	for _, line := range o.Verdict() {
		if o.OK() {
			lines = append(lines, r.paint(r.Styles.Success, line))
		} else {
			lines = append(lines, r.paint(r.Styles.Failure, line))
		}
	}
	return lines
}

// Outcome writes the trace, then the diagnostics, then the verdict
func (r *Renderer) Outcome(w io.Writer, o *parser.Outcome) error {
	var b strings.Builder
	b.WriteString(r.paint(r.Styles.Header, ParserHeader) + "\n")
	b.WriteString(StartBanner + "\n")

	if r.ShowTrace {
		for _, line := range o.Trace {
			b.WriteString(r.TraceLine(line) + "\n")
		}
	}
	for _, d := range o.Diagnostics {
		b.WriteString(r.Diagnostic(d) + "\n")
	}
	for _, line := range r.Verdict(o) {
		b.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func NewDocument(file string, tokens []lexer.Token, o *parser.Outcome, withTrace bool) Document {
	doc := Document{
		File:           file,
		Tokens:         tokens,
		Diagnostics:    o.Diagnostics,
		SyntaxErrors:   o.SyntaxErrors,
		SemanticErrors: o.SemanticErrors,
		Verdict:        o.Verdict(),
	}
	if withTrace {
		doc.Trace = o.TraceText()
	}
	return doc
}

func Encode(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("report: %q is not a structured format", format)
	}
}
