package ast

import (
	"bytes"

	"github.com/uclang/go-uc/pkg/token"
)

// Assignment is "lvalue op rvalue" where op is = or a compound form.
// Assignments are expressions; they appear as statements through the
// expression-statement production.
type Assignment struct {
	ExprDecor
	Token  token.Token
	Op     string
	LValue Expression
	RValue Expression
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) Pos() token.Position  { return a.Token.Pos }

func (a *Assignment) String() string {
	return "(" + a.LValue.String() + " " + a.Op + " " + a.RValue.String() + ")"
}

// BinaryOp is a binary arithmetic, relational or logical expression.
type BinaryOp struct {
	ExprDecor
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinaryOp) expressionNode()      {}
func (b *BinaryOp) statementNode()       {}
func (b *BinaryOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryOp) Pos() token.Position  { return b.Token.Pos }

func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// UnaryOp is a prefix or postfix unary expression. Postfix increment and
// decrement carry the ops "p++" and "p--".
type UnaryOp struct {
	ExprDecor
	Token token.Token
	Op    string
	Expr  Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) statementNode()       {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) Pos() token.Position  { return u.Token.Pos }

func (u *UnaryOp) String() string {
	if u.Op == "p++" || u.Op == "p--" {
		return "(" + u.Expr.String() + u.Op[1:] + ")"
	}
	return "(" + u.Op + u.Expr.String() + ")"
}

// Cast converts an expression to an explicitly named type.
type Cast struct {
	ExprDecor
	Token  token.Token
	ToType *Type
	Expr   Expression
}

func (c *Cast) expressionNode()      {}
func (c *Cast) statementNode()       {}
func (c *Cast) TokenLiteral() string { return c.Token.Literal }
func (c *Cast) Pos() token.Position  { return c.Token.Pos }

func (c *Cast) String() string {
	return "(" + c.ToType.String() + ")" + c.Expr.String()
}

// FuncCall applies a function (or function pointer) to its arguments.
// Args is nil for a nullary call, a single expression, or an *ExprList.
type FuncCall struct {
	ExprDecor
	Token token.Token
	Name  *ID
	Args  Expression
}

func (f *FuncCall) expressionNode()      {}
func (f *FuncCall) statementNode()       {}
func (f *FuncCall) TokenLiteral() string { return f.Token.Literal }
func (f *FuncCall) Pos() token.Position  { return f.Token.Pos }

func (f *FuncCall) String() string {
	var out bytes.Buffer
	out.WriteString(f.Name.String())
	out.WriteString("(")
	if f.Args != nil {
		out.WriteString(f.Args.String())
	}
	out.WriteString(")")
	return out.String()
}

// ArrayRef subscripts an array. Name is an *ID or, for multi-dimensional
// access, a nested *ArrayRef. Bind and Kind are copied from the referenced
// identifier by the semantic pass.
type ArrayRef struct {
	ExprDecor
	Token     token.Token
	Name      Expression
	Subscript Expression
	Kind      string
	Bind      Node
}

func (a *ArrayRef) expressionNode()      {}
func (a *ArrayRef) statementNode()       {}
func (a *ArrayRef) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayRef) Pos() token.Position  { return a.Token.Pos }

func (a *ArrayRef) String() string {
	return a.Name.String() + "[" + a.Subscript.String() + "]"
}

// ExprList is a comma-joined sequence of expressions.
type ExprList struct {
	ExprDecor
	Token token.Token
	Exprs []Expression
}

func (e *ExprList) expressionNode()      {}
func (e *ExprList) statementNode()       {}
func (e *ExprList) TokenLiteral() string { return e.Token.Literal }
func (e *ExprList) Pos() token.Position  { return e.Token.Pos }

func (e *ExprList) String() string {
	var out bytes.Buffer
	for i, expr := range e.Exprs {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(expr.String())
	}
	return out.String()
}
