package semantic

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/types"
)

// visitIf checks the condition is boolean and walks both arms.
func (a *Analyzer) visitIf(node *ast.If) error {
	if err := a.visitExpression(node.Cond); err != nil {
		return err
	}
	ctype := a.typeOf(node.Cond)
	if ctype.Outer() != types.BOOL {
		return a.errorf(node.Cond.Pos(), "the condition expression must be of the boolean type.")
	}
	if err := a.visit(node.IfTrue); err != nil {
		return err
	}
	if node.IfFalse != nil {
		return a.visit(node.IfFalse)
	}
	return nil
}

// visitWhile checks the condition and records the loop for break binding.
func (a *Analyzer) visitWhile(node *ast.While) error {
	if err := a.visitExpression(node.Cond); err != nil {
		return err
	}
	ctype := a.typeOf(node.Cond)
	if ctype.Outer() != types.BOOL {
		return a.errorf(node.Pos(), "conditional expression has '%s', not boolean type.", ctype.Outer())
	}
	a.env.PushLoop(node)
	defer a.env.PopLoop()
	if node.Stmt != nil {
		return a.visit(node.Stmt)
	}
	return nil
}

// visitFor opens a scope when the initializer declares, checks the
// condition, and records the loop for break binding.
func (a *Analyzer) visitFor(node *ast.For) error {
	_, declares := node.Init.(*ast.DeclList)
	if declares {
		a.env.Push(node)
		defer a.env.Pop()
	}
	a.env.PushLoop(node)
	defer a.env.PopLoop()

	if node.Init != nil {
		if err := a.visit(node.Init); err != nil {
			return err
		}
	}
	if node.Cond != nil {
		if err := a.visitExpression(node.Cond); err != nil {
			return err
		}
		ctype := a.typeOf(node.Cond)
		if ctype.Outer() != types.BOOL {
			return a.errorf(node.Cond.Pos(), "conditional expression has '%s', not boolean type.", ctype.Outer())
		}
	}
	if node.Next != nil {
		if err := a.visitExpression(node.Next); err != nil {
			return err
		}
	}
	if node.Stmt != nil {
		return a.visit(node.Stmt)
	}
	return nil
}

// visitBreak binds the statement to its innermost enclosing loop.
func (a *Analyzer) visitBreak(node *ast.Break) error {
	loop := a.env.CurrentLoop()
	if loop == nil {
		return a.errorf(node.Pos(), "break statement must be inside a loop block.")
	}
	node.Bind = loop
	return nil
}

// visitReturn compares the returned type (void when absent) against the
// innermost function's declared return type.
func (a *Analyzer) visitReturn(node *ast.Return) error {
	rtype := types.TypeList{types.VOID}
	if node.Expr != nil {
		if err := a.visitExpression(node.Expr); err != nil {
			return err
		}
		rtype = a.typeOf(node.Expr)
	}
	want := a.env.curRType
	if !rtype.Equal(want) {
		return a.errorf(node.Pos(), "return '%s' is incompatible with '%s' function definition.",
			rtype.Outer(), want.Outer())
	}
	return nil
}

// visitAssert requires a boolean expression.
func (a *Analyzer) visitAssert(node *ast.Assert) error {
	if err := a.visitExpression(node.Expr); err != nil {
		return err
	}
	ctype := a.typeOf(node.Expr)
	if ctype.Outer() != types.BOOL {
		return a.errorf(node.Expr.Pos(), "expression must be boolean type.")
	}
	return nil
}

// visitPrint analyzes the printed expressions, if any.
func (a *Analyzer) visitPrint(node *ast.Print) error {
	if node.Expr != nil {
		return a.visitExpression(node.Expr)
	}
	return nil
}

// visitRead requires each target to be a named location: an identifier or
// an array element.
func (a *Analyzer) visitRead(node *ast.Read) error {
	targets := []ast.Expression{node.Expr}
	if list, ok := node.Expr.(*ast.ExprList); ok {
		targets = list.Exprs
	}
	for _, loc := range targets {
		if err := a.visitExpression(loc); err != nil {
			return err
		}
		switch loc.(type) {
		case *ast.ID, *ast.ArrayRef:
		default:
			return a.errorf(loc.Pos(), "'%s' is not a variable.", loc.String())
		}
	}
	return nil
}
