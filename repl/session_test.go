package repl

import (
	"testing"

	"autospeed/internals"
	"autospeed/lexer"
	"autospeed/parser"

	"github.com/go-test/deep"
)

func newSession() *Session {
	return NewSession(lexer.DefaultOptions(), parser.Options{})
}

func TestDeclarationsPersist(t *testing.T) {
	s := newSession()

	tests := []struct {
		entry    string
		accepted bool
		messages []string
	}{
		{"gear speed = 10;", true, nil},
		{"announce speed + 1;", true, nil},
		{"announce boost;", false, []string{"Variable 'boost' used before declaration (or out of scope)"}},
		{"gear speed = 2;", false, []string{"Variable 'speed' already declared in this scope"}},
		{"speed = speed * 2;", true, nil},
	}

	for _, tt := range tests {
		res := s.Eval(tt.entry)
		if res.Accepted != tt.accepted {
			t.Errorf("%q: expected accepted=%v, got=%v", tt.entry, tt.accepted, res.Accepted)
		}

		var messages []string
		for _, d := range res.Diagnostics {
			messages = append(messages, d.Message)
		}
		if diff := deep.Equal(messages, tt.messages); diff != nil {
			t.Errorf("%q: %v", tt.entry, diff)
		}
	}

	expected := []string{"gear speed = 10;", "announce speed + 1;", "speed = speed * 2;"}
	if diff := deep.Equal(s.Accepted(), expected); diff != nil {
		t.Error(diff)
	}
}

func TestLinesAreRelativeToEntry(t *testing.T) {
	s := newSession()
	s.Eval("gear a = 1;")
	s.Eval("gear b = a;")

	res := s.Eval("announce a;\nannounce ghost;")

	expected := []internals.Diagnostic{{
		Severity: internals.SeveritySemantic,
		Line:     2,
		Message:  "Variable 'ghost' used before declaration (or out of scope)",
		Lexeme:   "ghost",
	}}
	if diff := deep.Equal(res.Diagnostics, expected); diff != nil {
		t.Error(diff)
	}
}

func TestRejectedEntryIsForgotten(t *testing.T) {
	s := newSession()

	res := s.Eval("gear c = ;")
	if res.Accepted {
		t.Fatal("expected a syntax error to reject the entry")
	}
	if len(res.Diagnostics) == 0 || res.Diagnostics[0].Message != "Expected valid expression" || res.Diagnostics[0].Line != 1 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}

	res = s.Eval("announce c;")
	if res.Accepted {
		t.Error("expected c to be unknown after the rejected declaration")
	}
	if len(s.Accepted()) != 0 {
		t.Errorf("expected nothing accepted, got %v", s.Accepted())
	}
}

func TestStrayCloseIsRejected(t *testing.T) {
	s := newSession()
	s.Eval("gear a = 1;")

	tests := []struct {
		entry string
		line  int
	}{
		{"}", 1},
		{"announce a;\n}", 2},
		{"{ announce a; }\n} announce a;", 2},
	}

	for _, tt := range tests {
		res := s.Eval(tt.entry)
		if res.Accepted {
			t.Errorf("%q: expected the entry to be rejected", tt.entry)
		}

		expected := []internals.Diagnostic{{
			Severity: internals.SeveritySyntax,
			Line:     tt.line,
			Message:  "Unmatched }",
			Lexeme:   "}",
		}}
		if diff := deep.Equal(res.Diagnostics, expected); diff != nil {
			t.Errorf("%q: %v", tt.entry, diff)
		}
	}

	// later entries are still checked
	res := s.Eval("announce ghost;")
	if res.Accepted {
		t.Error("expected an undeclared use to be rejected after a stray }")
	}
	if diff := deep.Equal(s.Accepted(), []string{"gear a = 1;"}); diff != nil {
		t.Error(diff)
	}
}

func TestBlocksAcrossEntries(t *testing.T) {
	s := newSession()
	s.Eval("gear x = 1;")

	res := s.Eval("track (x == 1) {\n  gear y = x;\n  announce y;\n}")
	if !res.Accepted || len(res.Diagnostics) != 0 {
		t.Fatalf("expected the block to be accepted, got %v", res.Diagnostics)
	}

	// y lived in the block scope
	res = s.Eval("announce y;")
	if res.Accepted {
		t.Error("expected y to be out of scope")
	}
}

func TestReset(t *testing.T) {
	s := newSession()
	s.Eval("gear a = 1;")
	s.Reset()

	if res := s.Eval("announce a;"); res.Accepted {
		t.Error("expected a to be forgotten after reset")
	}
}

func TestEmptyEntry(t *testing.T) {
	s := newSession()
	res := s.Eval("   ")
	if res.Accepted || len(res.Diagnostics) != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestPending(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"gear a = 1;", false},
		{"track (a == 1) {", true},
		{"track (a == 1) {\n announce a;", true},
		{"track (a == 1) {\n announce a;\n}", false},
		{"looplap (a < 3) { track (a == 1) { }", true},
		{"announce \"{\";", false},
		{"// {", false},
		{"}", false},
	}

	for _, tt := range tests {
		if got := Pending(tt.text, lexer.DefaultOptions()); got != tt.expected {
			t.Errorf("%q: expected=%v, got=%v", tt.text, tt.expected, got)
		}
	}
}
