package ir

import (
	"fmt"

	"github.com/uclang/go-uc/internal/ast"
)

// genStatement lowers one statement or block item.
func (g *Generator) genStatement(node ast.Node) {
	switch n := node.(type) {
	case *ast.Decl:
		g.genDecl(n)
	case *ast.DeclList:
		for _, decl := range n.Decls {
			g.genDecl(decl)
		}
	case *ast.Compound:
		for _, item := range n.BlockItems {
			g.genStatement(item)
		}
	case *ast.If:
		g.genIf(n)
	case *ast.While:
		g.genWhile(n)
	case *ast.For:
		g.genFor(n)
	case *ast.Break:
		g.genBreak(n)
	case *ast.Return:
		g.genReturn(n)
	case *ast.Assert:
		g.genAssert(n)
	case *ast.Print:
		g.genPrint(n)
	case *ast.Read:
		g.genRead(n)
	case *ast.EmptyStatement:
	case ast.Expression:
		g.genExpression(n)
	}
}

// genIf branches on the condition; without an else branch the false label
// alone marks the join.
func (g *Generator) genIf(node *ast.If) {
	trueLabel := g.newTemp()
	falseLabel := g.newTemp()
	exitLabel := g.newTemp()

	g.genExpression(node.Cond)
	g.loadValue(node.Cond)
	g.emit("cbranch", node.Cond.GenLocation(), trueLabel, falseLabel)
	g.emitLabel(trueLabel)
	g.genStatement(node.IfTrue)
	if node.IfFalse != nil {
		g.emit("jump", exitLabel)
		g.emitLabel(falseLabel)
		g.genStatement(node.IfFalse)
		g.emitLabel(exitLabel)
	} else {
		g.emitLabel(falseLabel)
	}
}

// genWhile emits entry, conditional branch, body and back edge; the exit
// label is recorded on the node for break statements.
func (g *Generator) genWhile(node *ast.While) {
	entryLabel := g.newTemp()
	trueLabel := g.newTemp()
	exitLabel := g.newTemp()
	node.ExitLabel = exitLabel

	g.emitLabel(entryLabel)
	g.genExpression(node.Cond)
	g.loadValue(node.Cond)
	g.emit("cbranch", node.Cond.GenLocation(), trueLabel, exitLabel)
	g.emitLabel(trueLabel)
	if node.Stmt != nil {
		g.genStatement(node.Stmt)
	}
	g.emit("jump", entryLabel)
	g.emitLabel(exitLabel)
}

// genFor emits init, entry, conditional branch, body, step and back edge.
// An absent condition falls through into the body.
func (g *Generator) genFor(node *ast.For) {
	entryLabel := g.newTemp()
	bodyLabel := g.newTemp()
	exitLabel := g.newTemp()
	node.ExitLabel = exitLabel

	if node.Init != nil {
		g.genStatement(node.Init)
	}
	g.emitLabel(entryLabel)
	if node.Cond != nil {
		g.genExpression(node.Cond)
		g.loadValue(node.Cond)
		g.emit("cbranch", node.Cond.GenLocation(), bodyLabel, exitLabel)
	}
	g.emitLabel(bodyLabel)
	if node.Stmt != nil {
		g.genStatement(node.Stmt)
	}
	if node.Next != nil {
		g.genExpression(node.Next)
	}
	g.emit("jump", entryLabel)
	g.emitLabel(exitLabel)
}

// genBreak jumps to the bound loop's exit label.
func (g *Generator) genBreak(node *ast.Break) {
	switch loop := node.Bind.(type) {
	case *ast.While:
		g.emit("jump", loop.ExitLabel)
	case *ast.For:
		g.emit("jump", loop.ExitLabel)
	}
}

// genReturn stores the value into the return slot and jumps to the
// function's single exit.
func (g *Generator) genReturn(node *ast.Return) {
	if node.Expr != nil {
		g.genExpression(node.Expr)
		g.loadValue(node.Expr)
		g.emit("store_"+leafTypeName(node.Expr), node.Expr.GenLocation(), g.retLocation)
	}
	g.emit("jump", g.retLabel)
}

// genAssert branches on the asserted expression; the failure path prints a
// module-level message naming the source coordinate and leaves through the
// function's exit label.
func (g *Generator) genAssert(node *ast.Assert) {
	g.genExpression(node.Expr)
	g.loadValue(node.Expr)

	trueLabel := g.newTemp()
	falseLabel := g.newTemp()
	exitLabel := g.newTemp()

	g.emit("cbranch", node.Expr.GenLocation(), trueLabel, falseLabel)
	g.emitLabel(trueLabel)
	g.emit("jump", exitLabel)
	g.emitLabel(falseLabel)

	target := g.newText()
	pos := node.Expr.Pos()
	g.emitText("global_string", target, fmt.Sprintf("assertion_fail on %d:%d", pos.Line, pos.Column))
	g.emit("print_string", target)
	g.emit("jump", g.retLabel)
	g.emitLabel(exitLabel)
}

// genPrint emits one print tuple per expression; a bare print() emits
// print_void.
func (g *Generator) genPrint(node *ast.Print) {
	if node.Expr == nil {
		g.emit("print_void")
		return
	}
	exprs := []ast.Expression{node.Expr}
	if list, ok := node.Expr.(*ast.ExprList); ok {
		exprs = list.Exprs
	}
	for _, expr := range exprs {
		g.genExpression(expr)
		g.loadValue(expr)
		g.emit("print_"+leafTypeName(expr), expr.GenLocation())
	}
}

// genRead reads into a fresh temporary per target and stores through the
// target's address.
func (g *Generator) genRead(node *ast.Read) {
	targets := []ast.Expression{node.Expr}
	if list, ok := node.Expr.(*ast.ExprList); ok {
		targets = list.Exprs
	}
	for _, loc := range targets {
		g.genExpression(loc)
		g.readLocation(loc)
	}
}
