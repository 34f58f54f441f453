package parser

import "schemer/lexer"

type Node interface {
	String() string
	Tok() lexer.Token
	node()
}

type Expr interface {
	Node
	expr()
}

// Module is the result of parsing one source file: a sequence of
// top-level expressions.
type Module struct {
	Filename string
	Exprs    []Expr
}

type (
	Literal struct {
		Token lexer.Token
	}

	Symbol struct {
		Token lexer.Token
	}

	// Define binds Name in the current frame. Value is nil for
	// (define x).
	Define struct {
		Token lexer.Token
		Name  lexer.Token
		Value Expr
	}

	Call struct {
		Token  lexer.Token
		Callee Expr
		Args   []Expr
	}

	// Lambda with Variadic set has exactly one parameter, which
	// collects every argument into a list.
	Lambda struct {
		Token    lexer.Token
		Params   []lexer.Token
		Body     []Expr
		Variadic bool
	}

	// Func is the value of (define (name params...) body...).
	Func struct {
		Token  lexer.Token
		Params []lexer.Token
		Body   []Expr
	}

	If struct {
		Token lexer.Token
		Cond  Expr
		Then  Expr
		Else  Expr // optional
	}

	Begin struct {
		Token lexer.Token
		Body  []Expr
	}

	Quote struct {
		Token lexer.Token
		Datum Expr
	}

	// List only appears inside quoted data.
	List struct {
		Token lexer.Token
		Items []Expr
	}

	Set struct {
		Token lexer.Token
		Name  lexer.Token
		Value Expr
	}

	Import struct {
		Token lexer.Token
		Path  Expr
	}

	Return struct {
		Token lexer.Token
		Value Expr
	}
)

func newLiteral(tok lexer.Token) *Literal { return &Literal{tok} }
func newSymbol(tok lexer.Token) *Symbol   { return &Symbol{tok} }
func newDefine(tok, name lexer.Token, value Expr) *Define {
	return &Define{tok, name, value}
}
func newCall(tok lexer.Token, callee Expr, args []Expr) *Call {
	return &Call{tok, callee, args}
}
func newLambda(tok lexer.Token, params []lexer.Token, body []Expr, variadic bool) *Lambda {
	return &Lambda{tok, params, body, variadic}
}
func newFunc(tok lexer.Token, params []lexer.Token, body []Expr) *Func {
	return &Func{tok, params, body}
}
func newIf(tok lexer.Token, cond, then, els Expr) *If { return &If{tok, cond, then, els} }
func newBegin(tok lexer.Token, body []Expr) *Begin   { return &Begin{tok, body} }
func newQuote(tok lexer.Token, datum Expr) *Quote    { return &Quote{tok, datum} }
func newList(tok lexer.Token, items []Expr) *List    { return &List{tok, items} }
func newSet(tok, name lexer.Token, value Expr) *Set  { return &Set{tok, name, value} }
func newImport(tok lexer.Token, path Expr) *Import   { return &Import{tok, path} }
func newReturn(tok lexer.Token, value Expr) *Return  { return &Return{tok, value} }

func (node *Literal) Tok() lexer.Token { return node.Token }
func (node *Symbol) Tok() lexer.Token  { return node.Token }
func (node *Define) Tok() lexer.Token  { return node.Token }
func (node *Call) Tok() lexer.Token    { return node.Token }
func (node *Lambda) Tok() lexer.Token  { return node.Token }
func (node *Func) Tok() lexer.Token    { return node.Token }
func (node *If) Tok() lexer.Token      { return node.Token }
func (node *Begin) Tok() lexer.Token   { return node.Token }
func (node *Quote) Tok() lexer.Token   { return node.Token }
func (node *List) Tok() lexer.Token    { return node.Token }
func (node *Set) Tok() lexer.Token     { return node.Token }
func (node *Import) Tok() lexer.Token  { return node.Token }
func (node *Return) Tok() lexer.Token  { return node.Token }

func (*Literal) node() {}
func (*Symbol) node()  {}
func (*Define) node()  {}
func (*Call) node()    {}
func (*Lambda) node()  {}
func (*Func) node()    {}
func (*If) node()      {}
func (*Begin) node()   {}
func (*Quote) node()   {}
func (*List) node()    {}
func (*Set) node()     {}
func (*Import) node()  {}
func (*Return) node()  {}

func (*Literal) expr() {}
func (*Symbol) expr()  {}
func (*Define) expr()  {}
func (*Call) expr()    {}
func (*Lambda) expr()  {}
func (*Func) expr()    {}
func (*If) expr()      {}
func (*Begin) expr()   {}
func (*Quote) expr()   {}
func (*List) expr()    {}
func (*Set) expr()     {}
func (*Import) expr()  {}
func (*Return) expr()  {}
