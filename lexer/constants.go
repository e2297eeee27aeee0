package lexer

const (
	KeywordImport    = "#oil"
	KeywordNamespace = "key"
	KeywordMain      = "ignite"
	KeywordFunction  = "engine"
	KeywordGear      = "gear"
	KeywordIf        = "track"
	KeywordElse      = "pitstop"
	KeywordLoop      = "looplap"
	KeywordOutput    = "announce"
	KeywordInput     = "listen"
	KeywordReturn    = "finishline"
)

var (
	keywords = map[string]struct{}{
		KeywordImport:    {},
		KeywordNamespace: {},
		KeywordMain:      {},
		KeywordFunction:  {},
		KeywordGear:      {},
		KeywordIf:        {},
		KeywordElse:      {},
		KeywordLoop:      {},
		KeywordOutput:    {},
		KeywordInput:     {},
		KeywordReturn:    {},
	}

	booleans = map[string]struct{}{
		"true":  {},
		"false": {},
	}

	// two character operators, matched before their one character prefixes
	longOperators = []string{"==", "!="}

	operators = map[rune]struct{}{
		'=': {},
		'!': {},
		'<': {},
		'>': {},
		'+': {},
		'-': {},
		'*': {},
		'/': {},
		'%': {},
	}

	symbols = map[rune]struct{}{
		'(': {},
		')': {},
		'{': {},
		'}': {},
		';': {},
		',': {},
	}

	relationals = map[string]struct{}{
		"<":  {},
		">":  {},
		"==": {},
		"!=": {},
	}
)

// IsKeyword reports whether text is one of the fixed language keywords.
func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

func Keywords() []string {
	res := make([]string, 0, len(keywords))
	for kw := range keywords {
		res = append(res, kw)
	}
	return res
}

func IsRelational(tok Token) bool {
	if tok.Kind != KindOperator {
		return false
	}
	_, ok := relationals[tok.Text]
	return ok
}
