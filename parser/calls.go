package parser

// Call grammar extension, only active with Options.CallSyntax:
//
//	Factor   := Identifier "(" [ Expression { "," Expression } ] ")"
//	CallStmt := Identifier "(" [ Expression { "," Expression } ] ")" ";"
//
// Functions still declare no parameters, so any argument is an arity mismatch.

import (
	"autospeed/lexer"
)

func (p *Parser) callAhead() bool {
	return p.options.CallSyntax && p.peek().Is(lexer.KindSymbol, "(")
}

func (p *Parser) parseCallStmt() {
	defer p.rule("CallStmt")()

	p.parseCall()
	p.expect(lexer.KindSymbol, ";", ";")
}

func (p *Parser) parseCall() {
	name := p.current()
	defer p.rule("Call: " + name.Text)()

	p.advance()
	p.expect(lexer.KindSymbol, "(", "(")

	args := 0
	if !p.symbol(")") && !p.curTokenKindIs(lexer.KindEOF) {
		p.parseExpression()
		args++
		for p.match(lexer.KindSymbol, ",") {
			p.parseExpression()
			args++
		}
	}
	p.expect(lexer.KindSymbol, ")", ")")

	p.semantics.CallFunction(name.Text, args, name)
}
