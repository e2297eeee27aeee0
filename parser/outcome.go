package parser

import (
	"autospeed/internals"
)

const (
	VerdictSuccess        = "Parsing completed successfully!"
	VerdictSyntaxErrors   = "Parsing completed with syntax errors."
	VerdictSemanticErrors = "Semantic errors were found."
)

// TraceLine is one grammar rule entry, Depth is the nonterminal nesting.
type TraceLine struct {
	Depth int    `json:"depth" yaml:"depth"`
	Label string `json:"label" yaml:"label"`
}

func (t TraceLine) String() string {
	return internals.Indent(t.Depth, internals.TraceIndent) + "=> (" + t.Label + ")"
}

// Outcome is everything a single parse produced.
type Outcome struct {
	Trace          []TraceLine            `json:"trace" yaml:"trace"`
	Diagnostics    []internals.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	SyntaxErrors   bool                   `json:"syntax_errors" yaml:"syntax_errors"`
	SemanticErrors bool                   `json:"semantic_errors" yaml:"semantic_errors"`
}

func (o *Outcome) OK() bool {
	return !o.SyntaxErrors && !o.SemanticErrors
}

// Verdict returns the closing summary, one line per error flag that is set
func (o *Outcome) Verdict() []string {
	if o.OK() {
		return []string{VerdictSuccess}
	}

	lines := []string{}
	if o.SyntaxErrors {
		lines = append(lines, VerdictSyntaxErrors)
	}
	if o.SemanticErrors {
		lines = append(lines, VerdictSemanticErrors)
	}
	return lines
}

func (o *Outcome) filter(keep func(internals.Diagnostic) bool) []internals.Diagnostic {
	res := []internals.Diagnostic{}
	for _, d := range o.Diagnostics {
		if keep(d) {
			res = append(res, d)
		}
	}
	return res
}

func (o *Outcome) Errors() []internals.Diagnostic {
	return o.filter(internals.Diagnostic.IsError)
}

func (o *Outcome) Of(severity internals.Severity) []internals.Diagnostic {
	return o.filter(func(d internals.Diagnostic) bool {
		return d.Severity == severity
	})
}

// TraceText renders the trace the way it's printed, one rule per line
func (o *Outcome) TraceText() []string {
	lines := make([]string, 0, len(o.Trace))
	for _, line := range o.Trace {
		lines = append(lines, line.String())
	}
	return lines
}
