package parser

import "schemer/lexer"

type formParser func(lexer.Token) Expr

type Parser struct {
	filename string
	tokens   []lexer.Token
	Errors   []Error
	curr     int // how many we have consumed.
	forms    map[string]formParser
}

// ====
// init
// ====

func New(fn string, tokens []lexer.Token) *Parser {
	p := &Parser{
		filename: fn,
		tokens:   tokens,
		Errors:   []Error{},
		curr:     0,
	}
	// special forms, recognised by the lexeme of the symbol that
	// follows an opening bracket.
	p.forms = map[string]formParser{
		"define": p.define,
		"lambda": p.lambda,
		"if":     p.ifForm,
		"set!":   p.set,
		"quote":  p.quote,
		"begin":  p.begin,
		"import": p.importForm,
		"return": p.returnForm,
	}
	return p
}

// ParseTokens parses a token stream into a module, returning the
// first syntax error if there is one.
func ParseTokens(fn string, tokens []lexer.Token) (*Module, error) {
	p := New(fn, tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		return nil, &p.Errors[0]
	}
	return module, nil
}

// ParseString lexes and parses source.
func ParseString(fn string, source string) (*Module, error) {
	tokens, err := lexer.Tokenize(fn, source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(fn, tokens)
}

// =====
// utils
// =====

// consume consumes one token
func (p *Parser) consume() lexer.Token {
	if !p.isAtEnd() {
		p.curr++
	}
	return p.previous()
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token { return p.tokens[p.curr-1] }

// peek returns the token to be consumed
func (p *Parser) peek() lexer.Token { return p.tokens[p.curr] }

// isAtEnd returns true if the current token is an EOF token
func (p *Parser) isAtEnd() bool { return p.peek().Type == lexer.EOF }

// check returns if the peek token matches the given type
func (p *Parser) check(t lexer.TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == t
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

// ===========
// entry point
// ===========

// module → expression*

// Parse parses every top-level expression. Parsing stops at the first
// error, which is recorded in .Errors.
func (p *Parser) Parse() (module *Module) {
	module = &Module{Filename: p.filename, Exprs: []Expr{}}
	if len(p.tokens) == 0 {
		p.tokens = []lexer.Token{{Type: lexer.EOF, Line: 1, Column: 1}}
	}
	defer func() {
		if rv := recover(); rv != nil {
			if _, ok := rv.(Error); ok {
				return
			}
			panic(rv)
		}
	}()
	for !p.isAtEnd() {
		module.Exprs = append(module.Exprs, p.expression())
	}
	return module
}

// ==================
// expression parsing
// ==================
//
//   expression → "(" form ")" | "'" datum | atom
//   form       → define | lambda | if | set! | quote | begin
//              | import | return | call
//   call       → SYMBOL expression*
//   datum      → "(" datum* ")" | expression
//   atom       → SYMBOL | NUMBER | BOOLEAN | STRING

func (p *Parser) expression() Expr {
	if p.match(lexer.QUOTE) {
		tok := p.previous()
		return newQuote(tok, p.datum())
	}
	if !p.match(lexer.LEFT_PAREN) {
		return p.atom()
	}
	open := p.previous()
	if p.check(lexer.RIGHT_PAREN) {
		p.error(open, "unexpected syntax in form ()")
	}
	head := p.peek()
	if head.Type == lexer.SYMBOL {
		if form, ok := p.forms[head.Lexeme]; ok {
			return form(p.consume())
		}
	}
	return p.call()
}

func (p *Parser) atom() Expr {
	switch {
	case p.match(lexer.SYMBOL):
		return newSymbol(p.previous())
	case p.match(lexer.NUMBER, lexer.BOOLEAN, lexer.STRING):
		return newLiteral(p.previous())
	case p.isAtEnd():
		p.error(p.peek(), "unexpected EOF")
	}
	p.error(p.peek(), "unexpected EOF: unexpected %q", p.peek().Lexeme)
	return nil
}

// call → callee args* ")" where the callee must be a symbol.
func (p *Parser) call() Expr {
	callee := p.expression()
	if _, ok := callee.(*Symbol); !ok {
		p.error(callee.Tok(), "unexpected token %s", callee.String())
	}
	return newCall(callee.Tok(), callee, p.body())
}

// body parses expressions up to and including the closing bracket.
func (p *Parser) body() []Expr {
	exprs := []Expr{}
	for !p.match(lexer.RIGHT_PAREN) {
		exprs = append(exprs, p.expression())
	}
	return exprs
}

func (p *Parser) closeForm(form string) {
	p.expect(lexer.RIGHT_PAREN, "expected ) to close %s", form)
}

// define → "define" SYMBOL expression? ")"
//        | "define" "(" SYMBOL SYMBOL* ")" expression* ")"
func (p *Parser) define(tok lexer.Token) Expr {
	if p.match(lexer.LEFT_PAREN) {
		name := p.expect(lexer.SYMBOL, "unexpected name %q", p.peek().Lexeme)
		params := p.params()
		return newDefine(tok, name, newFunc(name, params, p.body()))
	}
	name := p.expect(lexer.SYMBOL, "unexpected name %q", p.peek().Lexeme)
	var value Expr
	if !p.check(lexer.RIGHT_PAREN) {
		value = p.expression()
	}
	p.closeForm("define")
	return newDefine(tok, name, value)
}

// params parses symbols up to and including the closing bracket.
func (p *Parser) params() []lexer.Token {
	params := []lexer.Token{}
	seen := map[string]bool{}
	for !p.match(lexer.RIGHT_PAREN) {
		if !p.check(lexer.SYMBOL) {
			p.error(p.peek(), "invalid list of arguments: %q", p.peek().Lexeme)
		}
		param := p.consume()
		if seen[param.Lexeme] {
			p.error(param, "duplicate identifier in argument list: %s", param.Lexeme)
		}
		seen[param.Lexeme] = true
		params = append(params, param)
	}
	return params
}

// lambda → "lambda" SYMBOL expression* ")"
//        | "lambda" "(" SYMBOL* ")" expression* ")"
func (p *Parser) lambda(tok lexer.Token) Expr {
	if p.match(lexer.SYMBOL) {
		rest := p.previous()
		return newLambda(tok, []lexer.Token{rest}, p.body(), true)
	}
	p.expect(lexer.LEFT_PAREN, "expected parameter list after lambda")
	params := p.params()
	return newLambda(tok, params, p.body(), false)
}

// if → "if" expression expression expression? ")"
func (p *Parser) ifForm(tok lexer.Token) Expr {
	cond := p.expression()
	then := p.expression()
	if p.match(lexer.RIGHT_PAREN) {
		return newIf(tok, cond, then, nil)
	}
	els := p.expression()
	p.closeForm("if")
	return newIf(tok, cond, then, els)
}

// set! → "set!" SYMBOL expression ")"
func (p *Parser) set(tok lexer.Token) Expr {
	name := p.expect(lexer.SYMBOL, "unexpected token %q in set!", p.peek().Lexeme)
	value := p.expression()
	p.closeForm("set!")
	return newSet(tok, name, value)
}

// quote → "quote" datum ")"
func (p *Parser) quote(tok lexer.Token) Expr {
	datum := p.datum()
	p.closeForm("quote")
	return newQuote(tok, datum)
}

// datum parses quoted data: bracketed groups become lists of quoted
// items, everything else is an ordinary expression. A nested
// (quote x) keeps its meaning.
func (p *Parser) datum() Expr {
	if !p.check(lexer.LEFT_PAREN) {
		return p.expression()
	}
	next := p.tokens[p.curr+1]
	if next.Type == lexer.SYMBOL && next.Lexeme == "quote" {
		return p.expression()
	}
	open := p.consume()
	items := []Expr{}
	for !p.match(lexer.RIGHT_PAREN) {
		if p.isAtEnd() {
			p.error(p.peek(), "unexpected EOF in quoted list")
		}
		items = append(items, p.datum())
	}
	return newList(open, items)
}

// begin → "begin" expression* ")"
func (p *Parser) begin(tok lexer.Token) Expr {
	return newBegin(tok, p.body())
}

// import → "import" expression ")"
func (p *Parser) importForm(tok lexer.Token) Expr {
	path := p.expression()
	p.closeForm("import")
	return newImport(tok, path)
}

// return → "return" expression ")"
func (p *Parser) returnForm(tok lexer.Token) Expr {
	value := p.expression()
	p.closeForm("return")
	return newReturn(tok, value)
}
