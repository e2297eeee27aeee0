package semantics

import (
	"fmt"

	"autospeed/internals"
	"autospeed/lexer"
)

// Analyzer checks declarations and uses while the parser walks the program.
// Every problem goes to the collector and analysis carries on.
type Analyzer struct {
	symbols   *symbolResolver
	collector *internals.ErrorCollector
	hasErr    bool
}

func NewAnalyzer(collector *internals.ErrorCollector) *Analyzer {
	if collector == nil {
		collector = internals.NewErrorCollector(nil)
	}
	return &Analyzer{
		symbols:   NewSymbolResolver(),
		collector: collector,
	}
}

func (a *Analyzer) HasErrors() bool {
	return a.hasErr
}

func (a *Analyzer) report(tok lexer.Token, msg string) {
	a.hasErr = true
	a.collector.Semantic(tok, msg)
}

func (a *Analyzer) EnterScope() {
	a.symbols.EnterScope()
}

func (a *Analyzer) LeaveScope() error {
	return a.symbols.ExitScope()
}

// Depth is 0 while only the global scope is open
func (a *Analyzer) Depth() int {
	return a.symbols.current.Depth
}

func (a *Analyzer) DeclareVariable(name, typeLabel string, tok lexer.Token) {
	sym := Symbol{Name: name, Type: typeLabel, Line: tok.Line}
	if !a.symbols.Define(sym) {
		a.report(tok, fmt.Sprintf("Variable %s already declared in this scope", internals.Quote(name)))
	}
}

// AssignVariable validates any use of a name, as a value or as a target
func (a *Analyzer) AssignVariable(name string, tok lexer.Token) {
	if _, ok := a.symbols.Resolve(name); !ok {
		a.report(tok, fmt.Sprintf("Variable %s used before declaration (or out of scope)", internals.Quote(name)))
	}
}

func (a *Analyzer) DeclareFunction(name string, params int, tok lexer.Token) {
	fn := Function{Name: name, Params: params, Line: tok.Line}
	if !a.symbols.DefineFunction(fn) {
		a.report(tok, fmt.Sprintf("Function %s already declared", internals.Quote(name)))
	}
}

func (a *Analyzer) CallFunction(name string, args int, tok lexer.Token) {
	fn, ok := a.symbols.ResolveFunction(name)
	if !ok {
		a.report(tok, fmt.Sprintf("Call to undefined function %s", internals.Quote(name)))
		return
	}
	if fn.Params != args {
		a.report(tok, fmt.Sprintf("Function %s expects %d args, got %d", internals.Quote(name), fn.Params, args))
	}
}

func (a *Analyzer) Lookup(name string) (Symbol, bool) {
	return a.symbols.Resolve(name)
}

func (a *Analyzer) LookupFunction(name string) (Function, bool) {
	return a.symbols.ResolveFunction(name)
}
