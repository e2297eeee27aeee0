package lexer

import "fmt"

type Kind int

const (
	KindKeyword Kind = iota
	KindIdentifier
	KindNumber
	KindString
	KindOperator
	KindSymbol
	KindBoolean
	KindEOF
	// any character that doesn't match a rule
	KindUnknown
)

var kindNames = map[Kind]string{
	KindKeyword:    "KEYWORD",
	KindIdentifier: "IDENTIFIER",
	KindNumber:     "NUMBER",
	KindString:     "STRING",
	KindOperator:   "OPERATOR",
	KindSymbol:     "SYMBOL",
	KindBoolean:    "BOOLEAN",
	KindEOF:        "END_OF_FILE",
	KindUnknown:    "UNKNOWN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("lexer: unknown token kind %q", text)
}

// Token is a classified lexeme. Line is the line of its first character.
type Token struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
	Line int    `json:"line" yaml:"line"`
}

func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

func (t Token) String() string {
	return fmt.Sprintf("%v : %v (line %d)", t.Kind, t.Text, t.Line)
}

type Options struct {
	// LineComment starts a comment running to the end of the line, empty disables comments
	LineComment string
}

func DefaultOptions() Options {
	return Options{
		LineComment: "//",
	}
}

type Lexer struct {
	Content []rune
	// help mainly in error detection when having multi file execution
	FilePath string
	Options  Options
	Line     int
	Cur      int

	// set while lexing the <name> part of an #oil directive
	inImport bool
}
