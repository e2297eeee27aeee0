package semantics

import "errors"

var ErrGlobalScope = errors.New("semantics: the global scope can't be left")

type Symbol struct {
	Name string
	// label of the keyword used at declaration, e.g. gear
	Type  string
	Line  int
	Depth int
}

type Function struct {
	Name   string
	Params int
	Line   int
}

type symbolTable struct {
	Parent *symbolTable      // for nested scopes
	Store  map[string]Symbol // current scope's entries
	Depth  int
}

func NewSymbolTable() *symbolTable {
	return &symbolTable{
		Store: make(map[string]Symbol),
	}
}

type symbolResolver struct {
	current *symbolTable
	funcs   map[string]Function
}

func NewSymbolResolver() *symbolResolver {
	return &symbolResolver{
		current: NewSymbolTable(),
		funcs:   make(map[string]Function),
	}
}

// Define stores the symbol in the innermost scope, false when the name is already taken there
func (s *symbolResolver) Define(sym Symbol) bool {
	if _, ok := s.current.Store[sym.Name]; ok {
		return false
	}
	sym.Depth = s.current.Depth
	s.current.Store[sym.Name] = sym
	return true
}

func (s *symbolResolver) Resolve(name string) (Symbol, bool) {
	scope := s.current
	for scope != nil {
		if sym, ok := scope.Store[name]; ok {
			return sym, true
		}
		scope = scope.Parent
	}
	return Symbol{}, false
}

func (s *symbolResolver) EnterScope() *symbolTable {
	newScope := NewSymbolTable()
	newScope.Parent = s.current
	newScope.Depth = s.current.Depth + 1
	s.current = newScope
	return newScope
}

// ExitScope pops the innermost scope, the global one always stays
func (s *symbolResolver) ExitScope() error {
	if s.current.Parent == nil {
		return ErrGlobalScope
	}
	s.current = s.current.Parent
	return nil
}

func (s *symbolResolver) DefineFunction(fn Function) bool {
	if _, ok := s.funcs[fn.Name]; ok {
		return false
	}
	s.funcs[fn.Name] = fn
	return true
}

func (s *symbolResolver) ResolveFunction(name string) (Function, bool) {
	fn, ok := s.funcs[name]
	return fn, ok
}
