// Package ast defines the Abstract Syntax Tree node types for uC.
//
// Nodes are created by the parser and decorated in place by the later
// passes: the semantic analyzer fills Type, Scope, Kind and Bind; the IR
// generator fills GenLocation and ExitLabel. Decoration fields are nil (or
// zero) until their pass runs. Back-references (Bind, loop bindings) are
// non-owning pointers into the same tree.
package ast

import (
	"bytes"
	"strings"

	"github.com/uclang/go-uc/internal/types"
	"github.com/uclang/go-uc/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal of the token this node hangs off.
	TokenLiteral() string

	// String returns a source-like representation for debugging and tests.
	String() string

	// Pos returns the position of the node for error reporting.
	Pos() token.Position
}

// Expression represents any node that produces a value. Every expression
// carries a resolved type and an IR operand location once the respective
// pass has run.
type Expression interface {
	Node
	expressionNode()

	GetType() *Type
	SetType(*Type)
	GenLocation() string
	SetGenLocation(string)
}

// Statement represents a node that performs an action but doesn't produce a value.
type Statement interface {
	Node
	statementNode()
}

// Declarator is one link of a declarator chain: a VarDecl leaf wrapped by
// any number of PtrDecl, ArrayDecl and FuncDecl modifiers. Inner returns
// the wrapped declarator (nil on the VarDecl leaf).
type Declarator interface {
	Node
	declaratorNode()

	Inner() Declarator
	SetInner(Declarator)
}

// ExprDecor holds the decoration slots shared by all expression nodes.
type ExprDecor struct {
	Type *Type
	Gen  string
}

func (d *ExprDecor) GetType() *Type          { return d.Type }
func (d *ExprDecor) SetType(t *Type)         { d.Type = t }
func (d *ExprDecor) GenLocation() string     { return d.Gen }
func (d *ExprDecor) SetGenLocation(g string) { d.Gen = g }

// LeafVarDecl walks a declarator chain to its VarDecl leaf.
func LeafVarDecl(d Declarator) *VarDecl {
	for d != nil {
		if v, ok := d.(*VarDecl); ok {
			return v
		}
		d = d.Inner()
	}
	return nil
}

// Program is the root node: an ordered list of global declarations,
// each either a *FuncDef or a *GlobalDecl.
type Program struct {
	GDecls []Node
}

func (p *Program) TokenLiteral() string {
	if len(p.GDecls) > 0 {
		return p.GDecls[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.GDecls {
		out.WriteString(d.String())
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.GDecls) > 0 {
		return p.GDecls[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// ID is an identifier reference or declaration name.
// Kind is "var" or "func"; Scope is the 1-based scope depth (1 = global);
// Bind points back at the declarator chain that introduced the name.
// All four are filled by the semantic pass.
type ID struct {
	ExprDecor
	Token token.Token
	Name  string
	Scope int
	Kind  string
	Bind  Node
}

func (i *ID) expressionNode()      {}
func (i *ID) statementNode()       {}
func (i *ID) TokenLiteral() string { return i.Token.Literal }
func (i *ID) String() string       { return i.Name }
func (i *ID) Pos() token.Position  { return i.Token.Pos }

// Constant is a literal of raw type "int", "float", "char" or "string".
// Value holds the decoded literal after semantic analysis: int64, float64,
// or the unquoted string/char text.
type Constant struct {
	ExprDecor
	Token   token.Token
	RawType string
	Value   interface{}
}

func (c *Constant) expressionNode()      {}
func (c *Constant) statementNode()       {}
func (c *Constant) TokenLiteral() string { return c.Token.Literal }
func (c *Constant) String() string       { return c.Token.Literal }
func (c *Constant) Pos() token.Position  { return c.Token.Pos }

// Type holds a type specifier as written ("int", "void", ...) and, once
// resolved, the full type list. Declarator visits prepend ARRAY and PTR tags
// to the leaf's list, building the outside-in type stack.
type Type struct {
	Token token.Token
	Names []string
	List  types.TypeList
}

func (t *Type) TokenLiteral() string { return t.Token.Literal }
func (t *Type) Pos() token.Position  { return t.Token.Pos }

func (t *Type) String() string {
	if len(t.List) > 0 {
		return t.List.String()
	}
	return strings.Join(t.Names, " ")
}

// NewResolvedType builds a Type node carrying an already-resolved list.
// The semantic pass uses it for the types it synthesizes (operator results,
// casts, subscripts).
func NewResolvedType(list types.TypeList, pos token.Position) *Type {
	return &Type{
		Token: token.Token{Pos: pos},
		List:  list,
	}
}
