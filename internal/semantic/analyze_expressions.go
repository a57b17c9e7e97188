package semantic

import (
	"strconv"

	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/types"
)

// visitExpression analyzes an expression and attaches its resolved type.
func (a *Analyzer) visitExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Constant:
		return a.visitConstant(e)
	case *ast.ID:
		return a.visitID(e)
	case *ast.BinaryOp:
		return a.visitBinaryOp(e)
	case *ast.UnaryOp:
		return a.visitUnaryOp(e)
	case *ast.Assignment:
		return a.visitAssignment(e)
	case *ast.Cast:
		return a.visitCast(e)
	case *ast.FuncCall:
		return a.visitFuncCall(e)
	case *ast.ArrayRef:
		return a.visitArrayRef(e)
	case *ast.ExprList:
		return a.visitExprList(e)
	case *ast.InitList:
		return a.visitInitList(e)
	default:
		return a.errorf(expr.Pos(), "unknown expression type %T.", expr)
	}
}

// visitConstant resolves the literal's type and decodes its value.
// Already-decorated constants are left untouched.
func (a *Analyzer) visitConstant(node *ast.Constant) error {
	if node.Type != nil {
		return nil
	}
	t := a.env.LookupType(node.RawType)
	node.Type = ast.NewResolvedType(types.TypeList{t}, node.Pos())

	if node.Value != nil {
		return nil
	}
	lit := node.Token.Literal
	switch node.RawType {
	case "int":
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return a.errorf(node.Pos(), "invalid integer constant '%s'.", lit)
		}
		node.Value = v
	case "float":
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return a.errorf(node.Pos(), "invalid float constant '%s'.", lit)
		}
		node.Value = v
	case "char", "string":
		// Strip the enclosing quotes kept by the lexer.
		if len(lit) >= 2 {
			node.Value = lit[1 : len(lit)-1]
		} else {
			node.Value = lit
		}
	}
	return nil
}

// visitID resolves an identifier reference and copies the declaration-site
// decorations: type, kind, scope and the bind back-reference.
func (a *Analyzer) visitID(node *ast.ID) error {
	sym := a.env.Lookup(node.Name)
	if sym == nil {
		return a.errorf(node.Pos(), "'%s' is not defined.", node.Name)
	}
	node.Type = sym.Type
	node.Kind = sym.Kind
	node.Scope = sym.Scope
	node.Bind = sym.Bind
	return nil
}

// visitBinaryOp requires matching operand types; an arithmetic operator
// yields the element type, a relational operator yields bool.
func (a *Analyzer) visitBinaryOp(node *ast.BinaryOp) error {
	if err := a.visitExpression(node.Left); err != nil {
		return err
	}
	if err := a.visitExpression(node.Right); err != nil {
		return err
	}
	ltype := a.typeOf(node.Left)
	rtype := a.typeOf(node.Right)
	if !ltype.Equal(rtype) {
		return a.errorf(node.Pos(), "binary operator does not have matching '%s'/'%s'.",
			ltype.Leaf(), rtype.Leaf())
	}

	elem := ltype.Leaf()
	switch {
	case elem.BinaryOps.Contains(node.Op):
		node.Type = ast.NewResolvedType(types.TypeList{elem}, node.Pos())
	case elem.RelOps.Contains(node.Op):
		node.Type = ast.NewResolvedType(types.TypeList{types.BOOL}, node.Pos())
	default:
		return a.errorf(node.Pos(), "binary operator '%s' not supported by '%s'.", node.Op, elem)
	}
	return nil
}

// visitUnaryOp checks the operator against the operand's element type.
// Dereference pops the outer aggregate tag; address-of prepends ptr.
func (a *Analyzer) visitUnaryOp(node *ast.UnaryOp) error {
	if err := a.visitExpression(node.Expr); err != nil {
		return err
	}
	operand := a.typeOf(node.Expr)
	elem := operand.Leaf()
	if !elem.UnaryOps.Contains(node.Op) {
		return a.errorf(node.Pos(), "unary operator %s not supported.", node.Op)
	}

	result := operand.Clone()
	switch node.Op {
	case "*":
		result = result.PopOuter()
	case "&":
		result = result.Prepend(types.PTR)
	}
	node.Type = ast.NewResolvedType(result, node.Pos())
	return nil
}

// visitAssignment requires identical lvalue and rvalue types and an
// assignment operator admitted by the target's element type.
func (a *Analyzer) visitAssignment(node *ast.Assignment) error {
	if err := a.visitExpression(node.RValue); err != nil {
		return err
	}
	if err := a.visitExpression(node.LValue); err != nil {
		return err
	}
	ltype := a.typeOf(node.LValue)
	rtype := a.typeOf(node.RValue)
	if !ltype.Equal(rtype) {
		return a.errorf(node.Pos(), "cannot assign '%s' to '%s'.", rtype.Outer(), ltype.Outer())
	}
	if !ltype.Leaf().AssignOps.Contains(node.Op) {
		return a.errorf(node.Pos(), "operator %s not supported by '%s'.", node.Op, ltype.Leaf())
	}
	node.Type = node.LValue.GetType()
	return nil
}

// visitCast resolves the target type; the cast's type is exactly that.
func (a *Analyzer) visitCast(node *ast.Cast) error {
	if err := a.visitExpression(node.Expr); err != nil {
		return err
	}
	if err := a.visitType(node.ToType); err != nil {
		return err
	}
	node.Type = ast.NewResolvedType(node.ToType.List.Clone(), node.Pos())
	return nil
}

// visitFuncCall resolves the callee, requires it to be callable, and
// checks argument count and per-argument types against the parameters.
func (a *Analyzer) visitFuncCall(node *ast.FuncCall) error {
	sym := a.env.Lookup(node.Name.Name)
	if sym == nil {
		return a.errorf(node.Pos(), "'%s' is not defined.", node.Name.Name)
	}
	if sym.Kind != "func" {
		return a.errorf(node.Pos(), "'%s' is not a function.", sym.Name)
	}
	node.Type = sym.Type
	node.Name.Type = sym.Type
	node.Name.Bind = sym.Bind
	node.Name.Kind = sym.Kind
	node.Name.Scope = sym.Scope

	sig := funcDeclOf(sym.Bind)
	if sig == nil {
		return a.errorf(node.Pos(), "'%s' is not a function.", sym.Name)
	}
	var params []*ast.Decl
	if sig.Args != nil {
		params = sig.Args.Params
	}

	var args []ast.Expression
	switch actual := node.Args.(type) {
	case nil:
	case *ast.ExprList:
		args = actual.Exprs
	default:
		args = []ast.Expression{actual}
	}

	if len(args) != len(params) {
		return a.errorf(node.Pos(), "no. arguments to call '%s' function incompatible.", sym.Name)
	}
	for i, arg := range args {
		if err := a.visitExpression(arg); err != nil {
			return err
		}
		par := ast.LeafVarDecl(params[i].Type)
		if !a.typeOf(arg).Equal(par.Type.List) {
			return a.errorf(arg.Pos(), "type mismatch with param '%s'.", par.DeclName.Name)
		}
	}
	return nil
}

// funcDeclOf unwraps pointer declarators to the FuncDecl of a callable.
func funcDeclOf(bind ast.Node) *ast.FuncDecl {
	for {
		switch b := bind.(type) {
		case *ast.FuncDecl:
			return b
		case *ast.PtrDecl:
			bind = b.Type
		default:
			return nil
		}
	}
}

// visitArrayRef types one subscript: the index must be int and the result
// drops one outer array tag from the referenced type.
func (a *Analyzer) visitArrayRef(node *ast.ArrayRef) error {
	if err := a.visitExpression(node.Subscript); err != nil {
		return err
	}
	stype := a.typeOf(node.Subscript)
	if stype.Leaf() != types.INT {
		return a.errorf(node.Pos(), "'%s' must be of type(int).", stype.Leaf())
	}
	if err := a.visitExpression(node.Name); err != nil {
		return err
	}
	node.Type = ast.NewResolvedType(a.typeOf(node.Name).PopOuter(), node.Pos())

	// Copy the base identifier's binding so the IR generator can reach
	// the declarator chain from any nesting level.
	switch base := node.Name.(type) {
	case *ast.ID:
		node.Bind = base.Bind
		node.Kind = base.Kind
	case *ast.ArrayRef:
		node.Bind = base.Bind
		node.Kind = base.Kind
	}
	return nil
}

// visitExprList analyzes each element; the list's type is its last
// element's type.
func (a *Analyzer) visitExprList(node *ast.ExprList) error {
	for _, e := range node.Exprs {
		if err := a.visitExpression(e); err != nil {
			return err
		}
	}
	if len(node.Exprs) > 0 {
		node.Type = node.Exprs[len(node.Exprs)-1].GetType()
	}
	return nil
}

// visitInitList analyzes the initializer elements; shape checking against
// the declared type happens in checkInit.
func (a *Analyzer) visitInitList(node *ast.InitList) error {
	for _, e := range node.Exprs {
		if err := a.visitExpression(e); err != nil {
			return err
		}
	}
	if len(node.Exprs) > 0 {
		node.Type = node.Exprs[0].GetType()
	}
	return nil
}
