package ast

import (
	"bytes"

	"github.com/uclang/go-uc/pkg/token"
)

// GlobalDecl wraps a global (non-function-definition) declaration line.
type GlobalDecl struct {
	Decls []*Decl
}

func (g *GlobalDecl) TokenLiteral() string {
	if len(g.Decls) > 0 {
		return g.Decls[0].TokenLiteral()
	}
	return ""
}

func (g *GlobalDecl) String() string {
	var out bytes.Buffer
	for _, d := range g.Decls {
		out.WriteString(d.String())
		out.WriteString(";\n")
	}
	return out.String()
}

func (g *GlobalDecl) Pos() token.Position {
	if len(g.Decls) > 0 {
		return g.Decls[0].Pos()
	}
	return token.Position{}
}

// Decl is one declared name: its declarator chain and optional initializer.
// Name is hoisted from the chain's VarDecl leaf by the parser.
type Decl struct {
	Name *ID
	Type Declarator
	Init Expression
}

func (d *Decl) statementNode()       {}
func (d *Decl) TokenLiteral() string { return d.Name.TokenLiteral() }
func (d *Decl) Pos() token.Position  { return d.Name.Pos() }

func (d *Decl) String() string {
	var out bytes.Buffer
	out.WriteString(d.Type.String())
	if d.Init != nil {
		out.WriteString(" = ")
		out.WriteString(d.Init.String())
	}
	return out.String()
}

// VarDecl is the leaf of every declarator chain: the declared identifier
// and its base type. The semantic pass prepends aggregate tags to
// Type.List as the enclosing ArrayDecl/PtrDecl modifiers are visited.
type VarDecl struct {
	DeclName *ID
	Type     *Type
}

func (v *VarDecl) declaratorNode()      {}
func (v *VarDecl) Inner() Declarator    { return nil }
func (v *VarDecl) SetInner(Declarator)  {}
func (v *VarDecl) TokenLiteral() string { return v.DeclName.TokenLiteral() }
func (v *VarDecl) Pos() token.Position  { return v.DeclName.Pos() }

func (v *VarDecl) String() string {
	var out bytes.Buffer
	if v.Type != nil {
		out.WriteString(v.Type.String())
		out.WriteString(" ")
	}
	out.WriteString(v.DeclName.String())
	return out.String()
}

// ArrayDecl wraps a declarator with one array dimension. Dim may be nil
// for an unsized declarator; the semantic pass fills it from a well-typed
// initializer.
type ArrayDecl struct {
	Token token.Token
	Type  Declarator
	Dim   Expression
}

func (a *ArrayDecl) declaratorNode()       {}
func (a *ArrayDecl) Inner() Declarator     { return a.Type }
func (a *ArrayDecl) SetInner(d Declarator) { a.Type = d }
func (a *ArrayDecl) TokenLiteral() string  { return a.Token.Literal }
func (a *ArrayDecl) Pos() token.Position   { return a.Token.Pos }

func (a *ArrayDecl) String() string {
	var out bytes.Buffer
	if a.Type != nil {
		out.WriteString(a.Type.String())
	}
	out.WriteString("[")
	if a.Dim != nil {
		out.WriteString(a.Dim.String())
	}
	out.WriteString("]")
	return out.String()
}

// PtrDecl wraps a declarator with one level of indirection.
type PtrDecl struct {
	Token token.Token
	Type  Declarator
}

func (p *PtrDecl) declaratorNode()       {}
func (p *PtrDecl) Inner() Declarator     { return p.Type }
func (p *PtrDecl) SetInner(d Declarator) { p.Type = d }
func (p *PtrDecl) TokenLiteral() string  { return p.Token.Literal }
func (p *PtrDecl) Pos() token.Position   { return p.Token.Pos }

func (p *PtrDecl) String() string {
	var out bytes.Buffer
	out.WriteString("*")
	if p.Type != nil {
		out.WriteString(p.Type.String())
	}
	return out.String()
}

// FuncDecl wraps a declarator with a parameter list, making the declared
// name a function (or, under a PtrDecl, a function pointer). GenLocation
// is filled by the IR generator when a call target is captured through a
// function-pointer slot.
type FuncDecl struct {
	Token       token.Token
	Args        *ParamList
	Type        Declarator
	GenLocation string
}

func (f *FuncDecl) declaratorNode()       {}
func (f *FuncDecl) Inner() Declarator     { return f.Type }
func (f *FuncDecl) SetInner(d Declarator) { f.Type = d }
func (f *FuncDecl) TokenLiteral() string  { return f.Token.Literal }
func (f *FuncDecl) Pos() token.Position   { return f.Token.Pos }

func (f *FuncDecl) String() string {
	var out bytes.Buffer
	if f.Type != nil {
		out.WriteString(f.Type.String())
	}
	out.WriteString("(")
	if f.Args != nil {
		out.WriteString(f.Args.String())
	}
	out.WriteString(")")
	return out.String()
}

// FuncDef is a function definition: return specifier, the Decl carrying the
// FuncDecl chain, and the body. Decls accumulates every declaration the
// semantic pass finds in nested blocks and for-initializers, so the IR
// generator can allocate them all in the var_decl phase.
type FuncDef struct {
	Spec       *Type
	Decl       *Decl
	ParamDecls []*Decl
	Body       *Compound
	Decls      []*Decl
}

func (f *FuncDef) statementNode()       {}
func (f *FuncDef) TokenLiteral() string { return f.Decl.TokenLiteral() }
func (f *FuncDef) Pos() token.Position  { return f.Decl.Pos() }

func (f *FuncDef) String() string {
	var out bytes.Buffer
	out.WriteString(f.Spec.String())
	out.WriteString(" ")
	out.WriteString(f.Decl.String())
	out.WriteString(" ")
	out.WriteString(f.Body.String())
	return out.String()
}

// ParamList holds a function declarator's parameter declarations.
type ParamList struct {
	Token  token.Token
	Params []*Decl
}

func (p *ParamList) TokenLiteral() string { return p.Token.Literal }
func (p *ParamList) Pos() token.Position  { return p.Token.Pos }

func (p *ParamList) String() string {
	parts := make([]string, len(p.Params))
	for i, d := range p.Params {
		parts[i] = d.String()
	}
	var out bytes.Buffer
	for i, part := range parts {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(part)
	}
	return out.String()
}

// DeclList wraps the declarations of a for-loop initializer.
type DeclList struct {
	Token token.Token
	Decls []*Decl
}

func (d *DeclList) statementNode()       {}
func (d *DeclList) TokenLiteral() string { return d.Token.Literal }
func (d *DeclList) Pos() token.Position  { return d.Token.Pos }

func (d *DeclList) String() string {
	var out bytes.Buffer
	for i, decl := range d.Decls {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(decl.String())
	}
	return out.String()
}

// InitList is a brace-enclosed aggregate initializer. Value is filled by
// the IR generator with the nested constant values.
type InitList struct {
	ExprDecor
	Token token.Token
	Exprs []Expression
	Value []interface{}
}

func (il *InitList) expressionNode()      {}
func (il *InitList) TokenLiteral() string { return il.Token.Literal }
func (il *InitList) Pos() token.Position  { return il.Token.Pos }

func (il *InitList) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, e := range il.Exprs {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.String())
	}
	out.WriteString("}")
	return out.String()
}
