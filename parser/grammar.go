package parser

import (
	"autospeed/lexer"
)

func (p *Parser) parseProgram() {
	defer p.rule("Program")()

	p.parseImportSection()
	p.parseNamespaceSection()
	p.parseFunctionList()
}

// #oil <name> directives are traced and skipped, there are no modules to load
func (p *Parser) parseImportSection() {
	defer p.rule("ImportSection")()

	for p.keyword(lexer.KeywordImport) {
		directive := p.current()
		p.advance()
		p.match(lexer.KindSymbol, "<")

		label := directive.Text
		if p.curTokenKindIs(lexer.KindIdentifier) {
			label = p.current().Text
			p.advance()
		}
		p.match(lexer.KindSymbol, ">")

		p.node("Import: " + label)
	}
}

func (p *Parser) parseNamespaceSection() {
	defer p.rule("NamespaceSection")()

	if !p.keyword(lexer.KeywordNamespace) {
		p.error("Expected 'key' keyword")
		return
	}
	p.advance()

	if !p.curTokenKindIs(lexer.KindIdentifier) {
		p.error("Expected namespace name after 'key'")
		return
	}
	p.node("Namespace: " + p.current().Text)
	p.advance()
}

func (p *Parser) parseFunctionList() {
	defer p.rule("FunctionList")()

	for p.keyword(lexer.KeywordFunction) || p.keyword(lexer.KeywordMain) {
		p.parseFunction()
	}
}

func (p *Parser) parseFunction() {
	defer p.rule("Function")()

	site := p.current()
	name := site.Text
	p.advance()

	if name == lexer.KeywordFunction {
		site = p.current()
		if p.expect(lexer.KindIdentifier, "", "function name after 'engine'") {
			name = site.Text
		}
	}

	// no parameter list contents in this grammar
	p.expect(lexer.KindSymbol, "(", "(")
	p.expect(lexer.KindSymbol, ")", ")")

	// registered before the body so the body can refer to it
	p.semantics.DeclareFunction(name, 0, site)

	p.parseBlock()
}

func (p *Parser) parseBlock() {
	defer p.rule("Block")()

	p.expect(lexer.KindSymbol, "{", "{")

	p.semantics.EnterScope()
	p.parseStatementList()
	// paired with EnterScope above, never reaches the global scope
	_ = p.semantics.LeaveScope()

	p.expect(lexer.KindSymbol, "}", "}")
}

func (p *Parser) parseStatementList() {
	defer p.rule("StatementList")()

	for !p.symbol("}") && !p.curTokenKindIs(lexer.KindEOF) {
		p.parseStatement()
	}
}

func (p *Parser) parseStatement() {
	defer p.rule("Statement")()

	tok := p.current()

	switch {
	case tok.Is(lexer.KindKeyword, lexer.KeywordOutput):
		p.parseOutputStmt()
	case tok.Is(lexer.KindKeyword, lexer.KeywordInput):
		p.parseInputStmt()
	case tok.Is(lexer.KindKeyword, lexer.KeywordIf):
		p.parseConditionalStmt()
	case tok.Is(lexer.KindKeyword, lexer.KeywordLoop):
		p.parseLoopStmt()
	case tok.Is(lexer.KindKeyword, lexer.KeywordReturn):
		p.parseReturnStmt()
	case tok.Kind == lexer.KindKeyword:
		p.parseDeclarationStmt()
	case tok.Kind == lexer.KindIdentifier && p.callAhead():
		p.parseCallStmt()
	case tok.Kind == lexer.KindIdentifier:
		p.parseAssignmentStmt()
	case tok.Is(lexer.KindSymbol, "{"):
		p.parseBlock()
	default:
		p.node("Skipped: " + tok.Text)
		p.collector.Note(tok, "skipped unrecognized token")
		p.advance()
	}
}

func (p *Parser) parseDeclarationStmt() {
	defer p.rule("DeclarationStmt")()

	typeName := p.current().Text
	p.advance()

	name := p.current()
	if p.expect(lexer.KindIdentifier, "", "variable name") {
		p.semantics.DeclareVariable(name.Text, typeName, name)
	}

	p.expect(lexer.KindOperator, "=", "=")
	p.parseExpression()
	p.expect(lexer.KindSymbol, ";", ";")
}

func (p *Parser) parseAssignmentStmt() {
	defer p.rule("AssignmentStmt")()

	name := p.current()
	p.advance()
	p.semantics.AssignVariable(name.Text, name)

	p.expect(lexer.KindOperator, "=", "=")
	p.parseExpression()
	p.expect(lexer.KindSymbol, ";", ";")
}

func (p *Parser) parseConditionalStmt() {
	defer p.rule("ConditionalStmt")()

	p.advance()
	p.expect(lexer.KindSymbol, "(", "(")
	p.parseExpression()
	p.expect(lexer.KindSymbol, ")", ")")
	p.parseBlock()

	if p.keyword(lexer.KeywordElse) {
		p.advance()
		p.parseBlock()
	}
}

func (p *Parser) parseLoopStmt() {
	defer p.rule("LoopStmt")()

	p.advance()
	p.expect(lexer.KindSymbol, "(", "(")
	p.parseExpression()
	p.expect(lexer.KindSymbol, ")", ")")
	p.parseBlock()
}

func (p *Parser) parseOutputStmt() {
	defer p.rule("OutputStmt")()

	p.advance()
	p.parseExpression()
	p.expect(lexer.KindSymbol, ";", ";")
}

func (p *Parser) parseInputStmt() {
	defer p.rule("InputStmt")()

	p.advance()
	name := p.current()
	if p.expect(lexer.KindIdentifier, "", "variable name") {
		p.semantics.AssignVariable(name.Text, name)
	}
	p.expect(lexer.KindSymbol, ";", ";")
}

func (p *Parser) parseReturnStmt() {
	defer p.rule("ReturnStmt")()

	p.advance()
	p.parseExpression()
	p.expect(lexer.KindSymbol, ";", ";")
}

// Expression holds at most one comparison, + and - may follow it
func (p *Parser) parseExpression() {
	defer p.rule("Expression")()

	p.parseTerm()

	if lexer.IsRelational(p.current()) {
		p.node("Op: " + p.current().Text)
		p.advance()
		p.parseTerm()

		if lexer.IsRelational(p.current()) {
			p.error("Invalid chained comparison: multiple relational operators")
			p.skipToDelimiter()
		}
	}

	for p.curTokenIs(lexer.KindOperator, "+") || p.curTokenIs(lexer.KindOperator, "-") {
		p.node("Op: " + p.current().Text)
		p.advance()
		p.parseTerm()
	}
}

// skipToDelimiter stops on ) or ; without consuming it
func (p *Parser) skipToDelimiter() {
	for !p.symbol(")") && !p.symbol(";") && !p.curTokenKindIs(lexer.KindEOF) {
		p.advance()
	}
}

func (p *Parser) parseTerm() {
	defer p.rule("Term")()

	p.parseFactor()

	for p.curTokenIs(lexer.KindOperator, "*") ||
		p.curTokenIs(lexer.KindOperator, "/") ||
		p.curTokenIs(lexer.KindOperator, "%") {
		p.node("Op: " + p.current().Text)
		p.advance()
		p.parseFactor()
	}
}

func (p *Parser) parseFactor() {
	defer p.rule("Factor")()

	tok := p.current()

	switch {
	case tok.Kind == lexer.KindNumber, tok.Kind == lexer.KindString, tok.Kind == lexer.KindBoolean:
		p.advance()
	case tok.Kind == lexer.KindIdentifier && p.callAhead():
		p.parseCall()
	case tok.Kind == lexer.KindIdentifier:
		p.semantics.AssignVariable(tok.Text, tok)
		p.advance()
	case tok.Is(lexer.KindSymbol, "("):
		p.advance()
		p.parseExpression()
		p.expect(lexer.KindSymbol, ")", ")")
	default:
		p.error("Expected valid expression")
	}
}
