package lexer

import (
	"strings"
	"unicode"
)

func NewLexer(filePath string, content string, opts Options) *Lexer {
	lexer := Lexer{
		Content:  []rune(content),
		FilePath: filePath,
		Options:  opts,
		Line:     1,
		Cur:      0,
	}
	return &lexer
}

// Scan tokenizes source with the default options.
func Scan(source string) []Token {
	return NewLexer("", source, DefaultOptions()).Tokenize()
}

func (l *Lexer) readChar() {
	if l.Cur >= len(l.Content) {
		return
	}

	if l.Content[l.Cur] == '\n' {
		l.Line++
	}

	l.Cur++
}

func (l *Lexer) peekChar(offset int) rune {
	if l.Cur+offset >= len(l.Content) {
		return 0
	}
	return l.Content[l.Cur+offset]
}

func (l *Lexer) hasPrefix(prefix string) bool {
	if len(prefix) == 0 {
		return false
	}
	for i, r := range []rune(prefix) {
		if l.peekChar(i) != r {
			return false
		}
	}
	return true
}

func (l *Lexer) NextToken() Token {
	for {
		l.skipWhiteSpace()
		if !l.skipComment() {
			break
		}
	}

	if l.Cur >= len(l.Content) {
		return Token{Kind: KindEOF, Text: "EOF", Line: l.Line}
	}

	tok := l.readToken()
	l.trackImport(tok)
	return tok
}

// Tokenize returns every token of the content, no trailing EOF token is appended.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == KindEOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func (l *Lexer) readToken() Token {
	char := l.Content[l.Cur]
	line := l.Line

	switch {
	case isLetter(char):
		return l.readIdentifier()
	case char == '#' && isLetter(l.peekChar(1)):
		return l.readDirective()
	case isDigit(char):
		return l.readNumber()
	case char == '"':
		return l.readString()
	}

	if l.inImport && (char == '<' || char == '>') {
		l.readChar()
		return Token{Kind: KindSymbol, Text: string(char), Line: line}
	}

	for _, op := range longOperators {
		if l.hasPrefix(op) {
			l.readChar()
			l.readChar()
			return Token{Kind: KindOperator, Text: op, Line: line}
		}
	}

	if _, ok := operators[char]; ok {
		l.readChar()
		return Token{Kind: KindOperator, Text: string(char), Line: line}
	}

	if _, ok := symbols[char]; ok {
		l.readChar()
		return Token{Kind: KindSymbol, Text: string(char), Line: line}
	}

	l.readChar()
	return Token{Kind: KindUnknown, Text: string(char), Line: line}
}

// the <name> of an import directive is bracketed by symbols, not comparisons
func (l *Lexer) trackImport(tok Token) {
	switch {
	case tok.Is(KindKeyword, KeywordImport):
		l.inImport = true
	case !l.inImport:
	case tok.Is(KindSymbol, "<"), tok.Kind == KindIdentifier:
	default:
		l.inImport = false
	}
}

func isLetter(char rune) bool {
	return unicode.IsLetter(char) || char == '_'
}

func isDigit(char rune) bool {
	return '0' <= char && char <= '9'
}

func (l *Lexer) readRun() string {
	startPos := l.Cur
	for l.Cur < len(l.Content) {
		char := l.Content[l.Cur]
		if isLetter(char) || isDigit(char) {
			l.readChar()
		} else {
			break
		}
	}
	return string(l.Content[startPos:l.Cur])
}

func (l *Lexer) readIdentifier() Token {
	line := l.Line
	text := l.readRun()

	if IsKeyword(text) {
		return Token{Kind: KindKeyword, Text: text, Line: line}
	}

	if _, ok := booleans[text]; ok {
		return Token{Kind: KindBoolean, Text: text, Line: line}
	}

	return Token{Kind: KindIdentifier, Text: text, Line: line}
}

// a '#' glued to a run is a directive only when the whole run is a keyword
func (l *Lexer) readDirective() Token {
	line := l.Line
	start := l.Cur

	l.readChar()
	text := "#" + l.readRun()
	if IsKeyword(text) {
		return Token{Kind: KindKeyword, Text: text, Line: line}
	}

	l.Cur = start + 1
	return Token{Kind: KindUnknown, Text: "#", Line: line}
}

func (l *Lexer) readString() Token {
	start := l.Cur
	line := l.Line

	end := start + 1
	for end < len(l.Content) && l.Content[end] != '"' {
		end++
	}

	if end >= len(l.Content) {
		// unterminated, only the quote is unknown and lexing goes on after it
		l.readChar()
		return Token{Kind: KindUnknown, Text: `"`, Line: line}
	}

	for l.Cur <= end {
		l.readChar()
	}

	return Token{Kind: KindString, Text: string(l.Content[start:l.Cur]), Line: line}
}

func (l *Lexer) readNumber() Token {
	startPos := l.Cur
	line := l.Line

	for l.Cur < len(l.Content) && isDigit(l.Content[l.Cur]) {
		l.readChar()
	}

	if l.peekChar(0) == '.' && isDigit(l.peekChar(1)) {
		l.readChar() // consume '.'

		for l.Cur < len(l.Content) && isDigit(l.Content[l.Cur]) {
			l.readChar()
		}
	}

	return Token{Kind: KindNumber, Text: string(l.Content[startPos:l.Cur]), Line: line}
}

// skipComment reports whether a comment was consumed
func (l *Lexer) skipComment() bool {
	prefix := strings.TrimSpace(l.Options.LineComment)
	if !l.hasPrefix(prefix) {
		return false
	}
	for l.Cur < len(l.Content) && l.Content[l.Cur] != '\n' {
		l.readChar()
	}
	return true
}

func (l *Lexer) skipWhiteSpace() {
	for l.Cur < len(l.Content) && unicode.IsSpace(l.Content[l.Cur]) {
		l.readChar()
	}
}
