package parser

import (
	"bytes"
	"strings"

	"schemer/lexer"
)

// String methods render nodes back into source form.

func (node *Module) String() string {
	exprs := []string{}
	for _, expr := range node.Exprs {
		exprs = append(exprs, expr.String())
	}
	return strings.Join(exprs, "\n")
}

func (node *Define) String() string {
	var buf bytes.Buffer
	buf.WriteString("(define ")
	if fn, ok := node.Value.(*Func); ok {
		buf.WriteString("(")
		buf.WriteString(node.Name.Lexeme)
		for _, param := range fn.Params {
			buf.WriteString(" ")
			buf.WriteString(param.Lexeme)
		}
		buf.WriteString(")")
		writeBody(&buf, fn.Body)
		buf.WriteString(")")
		return buf.String()
	}
	buf.WriteString(node.Name.Lexeme)
	if node.Value != nil {
		buf.WriteString(" ")
		buf.WriteString(node.Value.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (node *Call) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Callee.String())
	writeBody(&buf, node.Args)
	buf.WriteString(")")
	return buf.String()
}

func (node *Lambda) String() string {
	var buf bytes.Buffer
	buf.WriteString("(lambda ")
	if node.Variadic {
		buf.WriteString(node.Params[0].Lexeme)
	} else {
		writeParams(&buf, node.Params)
	}
	writeBody(&buf, node.Body)
	buf.WriteString(")")
	return buf.String()
}

func (node *Func) String() string {
	var buf bytes.Buffer
	buf.WriteString("(lambda ")
	writeParams(&buf, node.Params)
	writeBody(&buf, node.Body)
	buf.WriteString(")")
	return buf.String()
}

func (node *If) String() string {
	var buf bytes.Buffer
	buf.WriteString("(if ")
	buf.WriteString(node.Cond.String())
	buf.WriteString(" ")
	buf.WriteString(node.Then.String())
	if node.Else != nil {
		buf.WriteString(" ")
		buf.WriteString(node.Else.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (node *Begin) String() string {
	var buf bytes.Buffer
	buf.WriteString("(begin")
	writeBody(&buf, node.Body)
	buf.WriteString(")")
	return buf.String()
}

func (node *Quote) String() string {
	if node.Token.Type == lexer.QUOTE {
		return "'" + node.Datum.String()
	}
	return "(quote " + node.Datum.String() + ")"
}

func (node *List) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, item := range node.Items {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(item.String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (node *Set) String() string {
	return "(set! " + node.Name.Lexeme + " " + node.Value.String() + ")"
}

func (node *Import) String() string { return "(import " + node.Path.String() + ")" }
func (node *Return) String() string { return "(return " + node.Value.String() + ")" }
func (node *Symbol) String() string  { return node.Token.Lexeme }
func (node *Literal) String() string { return node.Token.Lexeme }

func writeParams(buf *bytes.Buffer, params []lexer.Token) {
	buf.WriteString("(")
	for i, param := range params {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(param.Lexeme)
	}
	buf.WriteString(")")
}

func writeBody(buf *bytes.Buffer, body []Expr) {
	for _, expr := range body {
		buf.WriteString(" ")
		buf.WriteString(expr.String())
	}
}
