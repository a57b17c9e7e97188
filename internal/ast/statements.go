package ast

import (
	"bytes"

	"github.com/uclang/go-uc/pkg/token"
)

// Compound is a brace-enclosed block. Items are *Decl or statements.
// Blocks do not open a scope of their own; only Program, function
// declarators and for-with-declaration do.
type Compound struct {
	Token      token.Token
	BlockItems []Node
}

func (c *Compound) statementNode()       {}
func (c *Compound) TokenLiteral() string { return c.Token.Literal }
func (c *Compound) Pos() token.Position  { return c.Token.Pos }

func (c *Compound) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, item := range c.BlockItems {
		out.WriteString(item.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// Return exits the current function, optionally with a value.
type Return struct {
	Token token.Token
	Expr  Expression
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() token.Position  { return r.Token.Pos }

func (r *Return) String() string {
	if r.Expr != nil {
		return "return " + r.Expr.String() + ";"
	}
	return "return;"
}

// Assert checks a boolean expression at runtime and reports its source
// coordinate on failure.
type Assert struct {
	Token token.Token
	Expr  Expression
}

func (a *Assert) statementNode()       {}
func (a *Assert) TokenLiteral() string { return a.Token.Literal }
func (a *Assert) Pos() token.Position  { return a.Token.Pos }

func (a *Assert) String() string {
	return "assert " + a.Expr.String() + ";"
}

// Print writes its expressions to the output. Expr is nil for a bare
// print(); or possibly an *ExprList.
type Print struct {
	Token token.Token
	Expr  Expression
}

func (p *Print) statementNode()       {}
func (p *Print) TokenLiteral() string { return p.Token.Literal }
func (p *Print) Pos() token.Position  { return p.Token.Pos }

func (p *Print) String() string {
	if p.Expr != nil {
		return "print(" + p.Expr.String() + ");"
	}
	return "print();"
}

// Read stores input into each target location. Expr may be an ID, an
// ArrayRef, or an *ExprList of them.
type Read struct {
	Token token.Token
	Expr  Expression
}

func (r *Read) statementNode()       {}
func (r *Read) TokenLiteral() string { return r.Token.Literal }
func (r *Read) Pos() token.Position  { return r.Token.Pos }

func (r *Read) String() string {
	return "read(" + r.Expr.String() + ");"
}

// EmptyStatement is a lone semicolon.
type EmptyStatement struct {
	Token token.Token
}

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) Pos() token.Position  { return e.Token.Pos }
func (e *EmptyStatement) String() string       { return ";" }
