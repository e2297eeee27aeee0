package parser

import (
	"errors"
	"fmt"
	"io"

	"autospeed/internals"
	"autospeed/lexer"
	"autospeed/semantics"
)

var ErrAlreadyParsed = errors.New("parser: token sequence was already parsed")

// NoteTrailingInput is noted at the first token left after the function list
const NoteTrailingInput = "unparsed input after the last function"

type Options struct {
	// CallSyntax enables the call grammar extension: name(args) as a factor or a statement
	CallSyntax bool
	// Sink receives every diagnostic as soon as it's reported
	Sink io.Writer
	// Trace receives every trace line as soon as its rule is entered
	Trace io.Writer
}

// Parser walks one token sequence exactly once.
type Parser struct {
	tokens   []lexer.Token
	FilePath string
	Pos      int
	options  Options

	depth    int
	hasError bool
	done     bool

	trace     []TraceLine
	collector *internals.ErrorCollector
	semantics *semantics.Analyzer
}

func NewParser(tokens []lexer.Token, filePath string, opts Options) *Parser {
	collector := internals.NewErrorCollector(opts.Sink)
	return &Parser{
		tokens:    tokens,
		FilePath:  filePath,
		options:   opts,
		trace:     make([]TraceLine, 0),
		collector: collector,
		semantics: semantics.NewAnalyzer(collector),
	}
}

// Check lexes and parses source with a fresh lexer, parser and analyzer
func Check(filePath, source string, lexOpts lexer.Options, opts Options) *Outcome {
	tokens := lexer.NewLexer(filePath, source, lexOpts).Tokenize()
	outcome, _ := NewParser(tokens, filePath, opts).Parse()
	return outcome
}

func (p *Parser) Parse() (*Outcome, error) {
	if p.done {
		return nil, ErrAlreadyParsed
	}
	p.done = true

	p.parseProgram()

	if !p.curTokenKindIs(lexer.KindEOF) {
		p.collector.Note(p.current(), NoteTrailingInput)
	}

	return &Outcome{
		Trace:          p.trace,
		Diagnostics:    p.collector.Snapshot(),
		SyntaxErrors:   p.hasError,
		SemanticErrors: p.semantics.HasErrors(),
	}, nil
}

// current returns an implicit EOF token once the cursor passes the end
func (p *Parser) current() lexer.Token {
	if p.Pos >= len(p.tokens) {
		line := 1
		if len(p.tokens) > 0 {
			line = p.tokens[len(p.tokens)-1].Line
		}
		return lexer.Token{Kind: lexer.KindEOF, Text: "EOF", Line: line}
	}
	return p.tokens[p.Pos]
}

func (p *Parser) peek() lexer.Token {
	if p.Pos+1 >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF, Text: "EOF"}
	}
	return p.tokens[p.Pos+1]
}

func (p *Parser) advance() {
	if p.Pos < len(p.tokens) {
		p.Pos++
	}
}

func (p *Parser) curTokenKindIs(kind lexer.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) curTokenIs(kind lexer.Kind, text string) bool {
	return p.current().Is(kind, text)
}

func (p *Parser) keyword(text string) bool {
	return p.curTokenIs(lexer.KindKeyword, text)
}

func (p *Parser) symbol(text string) bool {
	return p.curTokenIs(lexer.KindSymbol, text)
}

// match consumes the current token when it has the kind, and the text unless text is empty
func (p *Parser) match(kind lexer.Kind, text string) bool {
	tok := p.current()
	if tok.Kind != kind || (text != "" && tok.Text != text) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(kind lexer.Kind, text string, what string) bool {
	if p.match(kind, text) {
		return true
	}
	p.error("Expected " + what)
	return false
}

// error reports at the current token and skips it
func (p *Parser) error(msg string) {
	p.hasError = true
	p.collector.Syntax(p.current(), msg)
	p.advance()
}

func (p *Parser) node(label string) {
	line := TraceLine{Depth: p.depth, Label: label}
	p.trace = append(p.trace, line)
	if p.options.Trace != nil {
		fmt.Fprintln(p.options.Trace, line.String())
	}
}

// rule traces a nonterminal and nests everything until the returned func runs
func (p *Parser) rule(label string) func() {
	p.node(label)
	p.depth++
	return func() {
		p.depth--
	}
}
