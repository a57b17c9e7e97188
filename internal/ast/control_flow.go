package ast

import (
	"bytes"

	"github.com/uclang/go-uc/pkg/token"
)

// If is a two- or three-armed conditional.
type If struct {
	Token   token.Token
	Cond    Expression
	IfTrue  Statement
	IfFalse Statement
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() token.Position  { return i.Token.Pos }

func (i *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Cond.String())
	out.WriteString(") ")
	out.WriteString(i.IfTrue.String())
	if i.IfFalse != nil {
		out.WriteString(" else ")
		out.WriteString(i.IfFalse.String())
	}
	return out.String()
}

// While is a pre-tested loop. ExitLabel is filled by the IR generator so
// that enclosed break statements can jump out.
type While struct {
	Token     token.Token
	Cond      Expression
	Stmt      Statement
	ExitLabel string
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() token.Position  { return w.Token.Pos }

func (w *While) String() string {
	var out bytes.Buffer
	out.WriteString("while (")
	out.WriteString(w.Cond.String())
	out.WriteString(") ")
	if w.Stmt != nil {
		out.WriteString(w.Stmt.String())
	}
	return out.String()
}

// For is the three-clause loop. Init is an expression, a *DeclList (which
// opens a scope), or nil. ExitLabel is filled by the IR generator.
type For struct {
	Token     token.Token
	Init      Node
	Cond      Expression
	Next      Expression
	Stmt      Statement
	ExitLabel string
}

func (f *For) statementNode()       {}
func (f *For) TokenLiteral() string { return f.Token.Literal }
func (f *For) Pos() token.Position  { return f.Token.Pos }

func (f *For) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if f.Init != nil {
		out.WriteString(f.Init.String())
	}
	out.WriteString("; ")
	if f.Cond != nil {
		out.WriteString(f.Cond.String())
	}
	out.WriteString("; ")
	if f.Next != nil {
		out.WriteString(f.Next.String())
	}
	out.WriteString(") ")
	if f.Stmt != nil {
		out.WriteString(f.Stmt.String())
	}
	return out.String()
}

// Break jumps past the innermost enclosing loop. Bind is set by the
// semantic pass to that loop node (*While or *For).
type Break struct {
	Token token.Token
	Bind  Node
}

func (b *Break) statementNode()       {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) Pos() token.Position  { return b.Token.Pos }
func (b *Break) String() string       { return "break;" }
