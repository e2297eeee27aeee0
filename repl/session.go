package repl

import (
	"strings"

	"autospeed/internals"
	"autospeed/lexer"
	"autospeed/parser"
)

// statements are checked inside this program, accepted ones stay in its body
const (
	namespaceLine = "key repl"
	functionLine  = "ignite() {"
	closingLine   = "}"
)

// Session checks statements one entry at a time, declarations persist across entries.
type Session struct {
	LexerOptions  lexer.Options
	ParserOptions parser.Options
	accepted      []string
}

type Result struct {
	// lines are relative to the entry, the first entry line is 1
	Diagnostics []internals.Diagnostic
	Accepted    bool
	Outcome     *parser.Outcome
}

func NewSession(lexOpts lexer.Options, parserOpts parser.Options) *Session {
	// the session renders diagnostics itself
	parserOpts.Sink = nil
	parserOpts.Trace = nil
	return &Session{
		LexerOptions:  lexOpts,
		ParserOptions: parserOpts,
	}
}

func (s *Session) Reset() {
	s.accepted = nil
}

func (s *Session) Accepted() []string {
	return append([]string(nil), s.accepted...)
}

// program returns the source to check and the line the entry starts on
func (s *Session) program(entry string) (string, int) {
	lines := []string{namespaceLine, functionLine}
	lines = append(lines, s.accepted...)
	prefix := strings.Join(lines, "\n")
	base := strings.Count(prefix, "\n") + 2
	return prefix + "\n" + entry + "\n" + closingLine, base
}

// Eval checks entry after everything accepted so far, a clean entry is kept
func (s *Session) Eval(entry string) Result {
	// a stray } would close the enclosing function and hide the rest of the entry
	if tok, ok := s.unmatchedClose(entry); ok {
		return Result{Diagnostics: []internals.Diagnostic{{
			Severity: internals.SeveritySyntax,
			Line:     tok.Line,
			Message:  "Unmatched }",
			Lexeme:   tok.Text,
		}}}
	}

	source, base := s.program(entry)
	outcome := parser.Check("<repl>", source, s.LexerOptions, s.ParserOptions)

	res := Result{Outcome: outcome, Diagnostics: []internals.Diagnostic{}}
	entryErrors := 0
	for _, d := range outcome.Diagnostics {
		if d.Line < base {
			continue
		}
		d.Line = d.Line - base + 1
		res.Diagnostics = append(res.Diagnostics, d)
		if d.IsError() || d.Message == parser.NoteTrailingInput {
			entryErrors++
		}
	}

	if entryErrors == 0 && strings.TrimSpace(entry) != "" {
		s.accepted = append(s.accepted, entry)
		res.Accepted = true
	}
	return res
}

func (s *Session) tokens(text string) []lexer.Token {
	return lexer.NewLexer("<repl>", text, s.LexerOptions).Tokenize()
}

// unmatchedClose returns the first } that closes more blocks than text opened
func (s *Session) unmatchedClose(text string) (lexer.Token, bool) {
	depth := 0
	for _, tok := range s.tokens(text) {
		switch {
		case tok.Is(lexer.KindSymbol, "{"):
			depth++
		case tok.Is(lexer.KindSymbol, "}"):
			depth--
			if depth < 0 {
				return tok, true
			}
		}
	}
	return lexer.Token{}, false
}

// Pending reports whether text opens more blocks than it closes
func Pending(text string, opts lexer.Options) bool {
	depth := 0
	for _, tok := range lexer.NewLexer("", text, opts).Tokenize() {
		switch {
		case tok.Is(lexer.KindSymbol, "{"):
			depth++
		case tok.Is(lexer.KindSymbol, "}"):
			depth--
		}
	}
	return depth > 0
}
