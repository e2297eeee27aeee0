package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"autospeed/internals"
	"autospeed/lexer"

	"github.com/go-test/deep"
)

func check(code string) *Outcome {
	return Check("", code, lexer.DefaultOptions(), Options{})
}

func messages(diags []internals.Diagnostic) []string {
	res := []string{}
	for _, d := range diags {
		res = append(res, d.Message)
	}
	return res
}

func TestScenarioRefuel(t *testing.T) {
	code := `
#oil <speed>
key racetrack

ignite() {
	gear fuel = 20;
	track (fuel < 30) {
		announce "Low fuel!";
	}
	pitstop {
		announce "Refueling...";
	}
	finishline 0;
}
`
	outcome := check(code)

	if len(outcome.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got=%v", outcome.Diagnostics)
	}
	if diff := deep.Equal(outcome.Verdict(), []string{VerdictSuccess}); diff != nil {
		t.Error(diff)
	}
}

func TestScenarioBareBlockScope(t *testing.T) {
	code := `key garage
ignite() {
	{ gear x = 5; announce x; }
	announce x;
}
`
	outcome := check(code)

	expected := []internals.Diagnostic{
		{
			Severity: internals.SeveritySemantic,
			Line:     4,
			Message:  "Variable 'x' used before declaration (or out of scope)",
			Lexeme:   "x",
		},
	}
	if diff := deep.Equal(outcome.Diagnostics, expected); diff != nil {
		t.Error(diff)
	}
	if outcome.SyntaxErrors {
		t.Error("expected no syntax errors")
	}
	if diff := deep.Equal(outcome.Verdict(), []string{VerdictSemanticErrors}); diff != nil {
		t.Error(diff)
	}
}

func TestTraceShape(t *testing.T) {
	outcome := check("key k\nignite() { finishline 0; }")

	expected := []TraceLine{
		{Depth: 0, Label: "Program"},
		{Depth: 1, Label: "ImportSection"},
		{Depth: 1, Label: "NamespaceSection"},
		{Depth: 2, Label: "Namespace: k"},
		{Depth: 1, Label: "FunctionList"},
		{Depth: 2, Label: "Function"},
		{Depth: 3, Label: "Block"},
		{Depth: 4, Label: "StatementList"},
		{Depth: 5, Label: "Statement"},
		{Depth: 6, Label: "ReturnStmt"},
		{Depth: 7, Label: "Expression"},
		{Depth: 8, Label: "Term"},
		{Depth: 9, Label: "Factor"},
	}
	if diff := deep.Equal(outcome.Trace, expected); diff != nil {
		t.Error(diff)
	}

	if got := outcome.TraceText()[3]; got != "    => (Namespace: k)" {
		t.Errorf("expected two spaces per level, got=%q", got)
	}
}

func TestImportsAreTracedAndSkipped(t *testing.T) {
	outcome := check("#oil <speed>\n#oil <nitro>\nkey k\nengine boost() { }")

	labels := []string{}
	for _, line := range outcome.Trace {
		if strings.HasPrefix(line.Label, "Import") {
			labels = append(labels, line.Label)
		}
	}
	if diff := deep.Equal(labels, []string{"ImportSection", "Import: speed", "Import: nitro"}); diff != nil {
		t.Error(diff)
	}
	if !outcome.OK() {
		t.Errorf("expected a clean parse, got=%v", outcome.Diagnostics)
	}
}

func TestChainedComparison(t *testing.T) {
	tests := []struct {
		condition string
		expected  []string
	}{
		{
			condition: "fuel < 30",
			expected:  []string{},
		},
		{
			condition: "fuel == 30",
			expected:  []string{},
		},
		{
			condition: "fuel>5<3",
			expected:  []string{"Invalid chained comparison: multiple relational operators"},
		},
		{
			condition: "fuel != 1 == 2 == 3",
			expected:  []string{"Invalid chained comparison: multiple relational operators"},
		},
	}

	for _, tt := range tests {
		code := "key k\nignite() { gear fuel = 1; track (" + tt.condition + ") { announce fuel; } }"
		outcome := check(code)

		if diff := deep.Equal(messages(outcome.Of(internals.SeveritySyntax)), tt.expected); diff != nil {
			t.Errorf("condition=%q: %v", tt.condition, diff)
		}
		if outcome.SemanticErrors {
			t.Errorf("condition=%q: unexpected semantic errors %v", tt.condition, outcome.Diagnostics)
		}
	}
}

func TestChainedComparisonReportsAtOperator(t *testing.T) {
	outcome := check("key k\nignite() {\n track (X>5<3) { }\n}")

	syntax := outcome.Of(internals.SeveritySyntax)
	if len(syntax) != 1 {
		t.Fatalf("expected one syntax error, got=%v", syntax)
	}
	if got := syntax[0].String(); got != "Parse Error [Line 3]: Invalid chained comparison: multiple relational operators, found '<'" {
		t.Errorf("unexpected diagnostic %q", got)
	}

	// X was never declared
	if diff := deep.Equal(messages(outcome.Of(internals.SeveritySemantic)), []string{"Variable 'X' used before declaration (or out of scope)"}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(outcome.Verdict(), []string{VerdictSyntaxErrors, VerdictSemanticErrors}); diff != nil {
		t.Error(diff)
	}
}

func TestExpressionForms(t *testing.T) {
	tests := []string{
		"a * b / 2 % 3",
		"(a + 1) * (b - 2)",
		"a < b + 1",
		"\"text\"",
		"true",
		"((a))",
		"a - b - c + 1",
	}

	for _, expr := range tests {
		code := "key k\nignite() { gear a = 1; gear b = 2; gear c = 3; gear r = " + expr + "; }"
		outcome := check(code)
		if !outcome.OK() {
			t.Errorf("expr=%q: unexpected diagnostics %v", expr, outcome.Diagnostics)
		}
	}
}

func TestSyntaxErrorRecovery(t *testing.T) {
	tests := []struct {
		code     string
		expected []string
	}{
		{
			code:     "key k\nignite() { gear a = 1 }",
			expected: []string{"Expected ;", "Expected }"},
		},
		{
			code:     "key k\nignite() { gear = 1; }",
			expected: []string{"Expected variable name", "Expected =", "Expected valid expression", "Expected ;", "Expected }"},
		},
		{
			code:     "key k\nignite() { announce ; gear a = 1; }",
			expected: []string{"Expected valid expression", "Expected ;"},
		},
		{
			code:     "ignite() { }",
			expected: []string{"Expected 'key' keyword"},
		},
		{
			code:     "key\nignite() { }",
			expected: []string{"Expected namespace name after 'key'"},
		},
		{
			code:     "key k\nengine () { }",
			expected: []string{"Expected function name after 'engine'", "Expected (", "Expected )", "Expected {", "Expected }"},
		},
		{
			code:     "key k\nignite() { gear a = 1;",
			expected: []string{"Expected }"},
		},
	}

	for _, tt := range tests {
		outcome := check(tt.code)
		if diff := deep.Equal(messages(outcome.Of(internals.SeveritySyntax)), tt.expected); diff != nil {
			t.Errorf("code=%q: %v", tt.code, diff)
		}
		if !outcome.SyntaxErrors {
			t.Errorf("code=%q: expected the syntax flag", tt.code)
		}
	}
}

func TestSkippedTokenIsObservable(t *testing.T) {
	outcome := check("key k\nignite() { @ gear a = 1; }")

	if !outcome.OK() {
		t.Errorf("a skipped token isn't an error, got=%v", outcome.Diagnostics)
	}

	notes := outcome.Of(internals.SeverityNote)
	expected := []internals.Diagnostic{
		{Severity: internals.SeverityNote, Line: 2, Message: "skipped unrecognized token", Lexeme: "@"},
	}
	if diff := deep.Equal(notes, expected); diff != nil {
		t.Error(diff)
	}

	found := false
	for _, line := range outcome.Trace {
		if line.Label == "Skipped: @" {
			found = true
		}
	}
	if !found {
		t.Error("expected a Skipped trace line")
	}
}

func TestScopeRules(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []string
	}{
		{
			name:     "shadowing in a nested block",
			body:     "gear x = 1; track (x < 2) { gear x = 2; announce x; }",
			expected: []string{},
		},
		{
			name:     "duplicate in the same block",
			body:     "gear x = 1; gear x = 2;",
			expected: []string{"Variable 'x' already declared in this scope"},
		},
		{
			name:     "assignment before declaration",
			body:     "y = 3; gear y = 1; y = 2;",
			expected: []string{"Variable 'y' used before declaration (or out of scope)"},
		},
		{
			name:     "listen needs a declared target",
			body:     "listen speed; gear speed = 0; listen speed;",
			expected: []string{"Variable 'speed' used before declaration (or out of scope)"},
		},
		{
			name:     "loop body scope closes",
			body:     "gear i = 0; looplap (i < 3) { gear step = 1; i = i + step; } announce step;",
			expected: []string{"Variable 'step' used before declaration (or out of scope)"},
		},
		{
			name:     "every offending use counts",
			body:     "announce ghost * ghost;",
			expected: []string{"Variable 'ghost' used before declaration (or out of scope)", "Variable 'ghost' used before declaration (or out of scope)"},
		},
	}

	for _, tt := range tests {
		outcome := check("key k\nignite() { " + tt.body + " }")
		if diff := deep.Equal(messages(outcome.Diagnostics), tt.expected); diff != nil {
			t.Errorf("%s: %v", tt.name, diff)
		}
		if outcome.SyntaxErrors {
			t.Errorf("%s: unexpected syntax errors", tt.name)
		}
	}
}

func TestFunctionsShareOneTable(t *testing.T) {
	outcome := check("key k\nengine boost() { }\nengine boost() { }\nignite() { }")

	expected := []internals.Diagnostic{
		{Severity: internals.SeveritySemantic, Line: 3, Message: "Function 'boost' already declared", Lexeme: "boost"},
	}
	if diff := deep.Equal(outcome.Diagnostics, expected); diff != nil {
		t.Error(diff)
	}
}

func TestFunctionScopesAreIndependent(t *testing.T) {
	outcome := check("key k\nengine a() { gear x = 1; }\nengine b() { gear x = 2; announce x; }\nignite() { announce x; }")

	if diff := deep.Equal(messages(outcome.Diagnostics), []string{"Variable 'x' used before declaration (or out of scope)"}); diff != nil {
		t.Error(diff)
	}
}

func TestCallSyntaxExtension(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected []string
	}{
		{
			name:     "zero arg call to a declared function",
			code:     "key k\nengine boost() { }\nignite() { boost(); gear x = boost(); }",
			expected: []string{},
		},
		{
			name:     "recursive call resolves",
			code:     "key k\nengine spin() { spin(); }",
			expected: []string{},
		},
		{
			name:     "call before declaration",
			code:     "key k\nignite() { later(); }\nengine later() { }",
			expected: []string{"Call to undefined function 'later'"},
		},
		{
			name:     "arity mismatch",
			code:     "key k\nengine boost() { }\nignite() { gear n = 1; boost(n, 2 * n); }",
			expected: []string{"Function 'boost' expects 0 args, got 2"},
		},
		{
			name:     "arguments are checked too",
			code:     "key k\nengine boost() { }\nignite() { announce boost(ghost); }",
			expected: []string{"Variable 'ghost' used before declaration (or out of scope)", "Function 'boost' expects 0 args, got 1"},
		},
	}

	for _, tt := range tests {
		outcome := Check("", tt.code, lexer.DefaultOptions(), Options{CallSyntax: true})
		if diff := deep.Equal(messages(outcome.Diagnostics), tt.expected); diff != nil {
			t.Errorf("%s: %v", tt.name, diff)
		}
		if outcome.SyntaxErrors {
			t.Errorf("%s: unexpected syntax errors %v", tt.name, outcome.Diagnostics)
		}
	}
}

func TestCallSyntaxOffByDefault(t *testing.T) {
	outcome := check("key k\nengine boost() { }\nignite() { boost(); }")

	if !outcome.SyntaxErrors {
		t.Errorf("expected call syntax to be rejected, got=%v", outcome.Diagnostics)
	}
	if diff := deep.Equal(messages(outcome.Of(internals.SeveritySemantic)), []string{"Variable 'boost' used before declaration (or out of scope)"}); diff != nil {
		t.Error(diff)
	}
}

func TestParseIsSingleUse(t *testing.T) {
	p := NewParser(lexer.Scan("key k\nignite() { }"), "", Options{})
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(); !errors.Is(err, ErrAlreadyParsed) {
		t.Errorf("expected ErrAlreadyParsed, got=%v", err)
	}
}

func TestFreshParsesAreIdentical(t *testing.T) {
	code := "key k\nignite() { gear a = 1; gear a = 2; announce b; track (a>1<2) { } @ }"
	tokens := lexer.Scan(code)

	first, _ := NewParser(tokens, "", Options{}).Parse()
	second, _ := NewParser(tokens, "", Options{}).Parse()

	if diff := deep.Equal(first, second); diff != nil {
		t.Error(diff)
	}
	if len(first.Diagnostics) == 0 {
		t.Error("expected the sample to produce diagnostics")
	}
}

func TestStreamingSinks(t *testing.T) {
	var diag, trace bytes.Buffer
	outcome := Check("", "key k\nignite() { announce ghost; }", lexer.DefaultOptions(), Options{Sink: &diag, Trace: &trace})

	if diag.String() != "Semantic Error [Line 2]: Variable 'ghost' used before declaration (or out of scope) (near 'ghost')\n" {
		t.Errorf("unexpected diagnostics stream %q", diag.String())
	}

	expected := strings.Join(outcome.TraceText(), "\n") + "\n"
	if trace.String() != expected {
		t.Errorf("expected=%q, got=%q", expected, trace.String())
	}
}

func TestEmptyAndTrailingInput(t *testing.T) {
	empty := check("")
	if diff := deep.Equal(messages(empty.Diagnostics), []string{"Expected 'key' keyword"}); diff != nil {
		t.Error(diff)
	}
	if empty.Diagnostics[0].Line != 1 || empty.Diagnostics[0].Lexeme != "EOF" {
		t.Errorf("expected the implicit EOF token, got=%v", empty.Diagnostics[0])
	}

	trailing := check("key k\nignite() { }\nannounce 1;")
	if !trailing.OK() {
		t.Errorf("trailing input is a note, got=%v", trailing.Diagnostics)
	}
	if diff := deep.Equal(messages(trailing.Of(internals.SeverityNote)), []string{"unparsed input after the last function"}); diff != nil {
		t.Error(diff)
	}
}
