package internals

// This file handles the diagnostics collector shared by the parser and the semantic analyzer

import (
	"fmt"
	"io"

	"autospeed/lexer"
)

type Severity int

const (
	SeveritySyntax Severity = iota
	SeveritySemantic
	// an observation that doesn't count as an error
	SeverityNote
)

var severityNames = map[Severity]string{
	SeveritySyntax:   "syntax",
	SeveritySemantic: "semantic",
	SeverityNote:     "note",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	for sev, name := range severityNames {
		if name == string(text) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("internals: unknown severity %q", text)
}

type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Line     int      `json:"line" yaml:"line"`
	Message  string   `json:"message" yaml:"message"`
	Lexeme   string   `json:"lexeme" yaml:"lexeme"`
}

func (d Diagnostic) String() string {
	switch d.Severity {
	case SeveritySyntax:
		return fmt.Sprintf("Parse Error [Line %d]: %s, found '%s'", d.Line, d.Message, d.Lexeme)
	case SeveritySemantic:
		return fmt.Sprintf("Semantic Error [Line %d]: %s (near '%s')", d.Line, d.Message, d.Lexeme)
	default:
		return fmt.Sprintf("Note [Line %d]: %s '%s'", d.Line, d.Message, d.Lexeme)
	}
}

func (d Diagnostic) IsError() bool {
	return d.Severity != SeverityNote
}

type ErrorCollector struct {
	Diagnostics []Diagnostic
	// every diagnostic is written here as soon as it's reported, nil keeps them silent
	Sink io.Writer
}

func NewErrorCollector(sink io.Writer) *ErrorCollector {
	return &ErrorCollector{
		Diagnostics: make([]Diagnostic, 0),
		Sink:        sink,
	}
}

func (ec *ErrorCollector) Add(d Diagnostic) {
	ec.Diagnostics = append(ec.Diagnostics, d)
	if ec.Sink != nil {
		fmt.Fprintln(ec.Sink, d.String())
	}
}

func (ec *ErrorCollector) Syntax(tok lexer.Token, msg string) {
	ec.Add(Diagnostic{Severity: SeveritySyntax, Line: tok.Line, Message: msg, Lexeme: tok.Text})
}

func (ec *ErrorCollector) Semantic(tok lexer.Token, msg string) {
	ec.Add(Diagnostic{Severity: SeveritySemantic, Line: tok.Line, Message: msg, Lexeme: tok.Text})
}

func (ec *ErrorCollector) Note(tok lexer.Token, msg string) {
	ec.Add(Diagnostic{Severity: SeverityNote, Line: tok.Line, Message: msg, Lexeme: tok.Text})
}

// Count returns how many diagnostics of the given severity were reported
func (ec *ErrorCollector) Count(severity Severity) int {
	count := 0
	for _, d := range ec.Diagnostics {
		if d.Severity == severity {
			count++
		}
	}
	return count
}

// Snapshot copies the diagnostics so later reports don't alias the result
func (ec *ErrorCollector) Snapshot() []Diagnostic {
	res := make([]Diagnostic, len(ec.Diagnostics))
	copy(res, ec.Diagnostics)
	return res
}
