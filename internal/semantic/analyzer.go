// Package semantic implements the uC semantic analyzer.
//
// The analyzer is a pre-order tree walker with per-node dispatch. It pushes
// and pops scope frames, resolves identifiers against the frame stack,
// attaches type, scope, kind and bind decorations to referring nodes, and
// enforces the type, arity, initializer and control-flow rules. The first
// failure is fatal: analysis stops and the diagnostic is returned.
package semantic

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/errors"
	"github.com/uclang/go-uc/internal/types"
	"github.com/uclang/go-uc/pkg/token"
)

// Analyzer performs semantic analysis on a uC program.
type Analyzer struct {
	env *Environment
	// funcDefDecl marks the Decl owned by the function definition being
	// analyzed, so its FuncDecl scope stays open for the body. Prototype
	// declarations close their scope immediately.
	funcDefDecl *ast.Decl
	// fresh records the VarDecl leaves whose base type this run resolved.
	// Declarator visits prepend aggregate tags only to fresh leaves, so a
	// second pass over a decorated tree cannot degrade the type stacks.
	fresh map[*ast.VarDecl]bool
}

// NewAnalyzer creates a new semantic analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		env:   NewEnvironment(),
		fresh: make(map[*ast.VarDecl]bool),
	}
}

// Analyze decorates and checks the program. It returns the first fatal
// diagnostic, or nil when the program is well-formed.
func (a *Analyzer) Analyze(program *ast.Program) error {
	a.env.Push(program)
	for _, gdecl := range program.GDecls {
		if err := a.visit(gdecl); err != nil {
			return err
		}
	}
	a.env.Pop()
	return nil
}

// errorf builds the fatal diagnostic with its coordinate prefix.
func (a *Analyzer) errorf(pos token.Position, format string, args ...interface{}) error {
	return errors.New(pos, format, args...)
}

// visit dispatches on the node kind.
func (a *Analyzer) visit(node ast.Node) error {
	switch n := node.(type) {
	case *ast.GlobalDecl:
		return a.visitGlobalDecl(n)
	case *ast.FuncDef:
		return a.visitFuncDef(n)
	case *ast.Decl:
		return a.visitDecl(n)
	case *ast.DeclList:
		return a.visitDeclList(n)
	case *ast.Compound:
		return a.visitCompound(n)
	case *ast.If:
		return a.visitIf(n)
	case *ast.While:
		return a.visitWhile(n)
	case *ast.For:
		return a.visitFor(n)
	case *ast.Break:
		return a.visitBreak(n)
	case *ast.Return:
		return a.visitReturn(n)
	case *ast.Assert:
		return a.visitAssert(n)
	case *ast.Print:
		return a.visitPrint(n)
	case *ast.Read:
		return a.visitRead(n)
	case *ast.EmptyStatement:
		return nil
	case ast.Expression:
		return a.visitExpression(n)
	default:
		return a.errorf(node.Pos(), "unknown node type %T.", node)
	}
}

func (a *Analyzer) visitGlobalDecl(node *ast.GlobalDecl) error {
	for _, decl := range node.Decls {
		if err := a.visitDecl(decl); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitFuncDef(node *ast.FuncDef) error {
	node.Decls = nil
	prevFuncdef := a.env.funcdef
	a.env.funcdef = node
	a.funcDefDecl = node.Decl

	// Visiting the Decl registers the function name, resolves the return
	// type (node.Spec is the declarator leaf's type node), and pushes the
	// function scope, which stays open for the body.
	if err := a.visitDecl(node.Decl); err != nil {
		return err
	}
	a.funcDefDecl = nil

	for _, par := range node.ParamDecls {
		if err := a.visitDecl(par); err != nil {
			return err
		}
	}
	if node.Body != nil {
		for _, item := range node.Body.BlockItems {
			if err := a.visit(item); err != nil {
				return err
			}
		}
	}
	a.env.Pop()
	a.env.funcdef = prevFuncdef
	return nil
}

// visitCompound walks a nested block. Declarations inside nested blocks
// are accumulated into the enclosing function's Decls so the IR generator
// can allocate them in its var_decl sweep.
func (a *Analyzer) visitCompound(node *ast.Compound) error {
	for _, item := range node.BlockItems {
		if decl, ok := item.(*ast.Decl); ok && a.env.funcdef != nil {
			a.env.funcdef.Decls = append(a.env.funcdef.Decls, decl)
		}
		if err := a.visit(item); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitDeclList(node *ast.DeclList) error {
	for _, decl := range node.Decls {
		if err := a.visitDecl(decl); err != nil {
			return err
		}
		if a.env.funcdef != nil {
			a.env.funcdef.Decls = append(a.env.funcdef.Decls, decl)
		}
	}
	return nil
}

// visitType resolves a type specifier's names to their singletons. Already
// resolved nodes are left untouched, so re-running the pass cannot degrade
// the aggregate tags prepended by declarator visits.
func (a *Analyzer) visitType(node *ast.Type) error {
	if node == nil || node.List != nil {
		return nil
	}
	list := make(types.TypeList, 0, len(node.Names))
	for _, name := range node.Names {
		t := a.env.LookupType(name)
		if t == nil {
			return a.errorf(node.Pos(), "'%s' is not a type.", name)
		}
		list = append(list, t)
	}
	node.List = list
	return nil
}

func (a *Analyzer) typeOf(expr ast.Expression) types.TypeList {
	if t := expr.GetType(); t != nil {
		return t.List
	}
	return nil
}
