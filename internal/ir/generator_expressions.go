package ir

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/types"
)

// genExpression lowers one expression and leaves its result operand in the
// node's gen location. Address-bearing accesses (ID, ArrayRef) yield their
// address; consumers that need the value load it explicitly.
func (g *Generator) genExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Constant:
		g.genConstant(e)
	case *ast.ID:
		g.genID(e)
	case *ast.BinaryOp:
		g.genBinaryOp(e)
	case *ast.UnaryOp:
		g.genUnaryOp(e)
	case *ast.Assignment:
		g.genAssignment(e)
	case *ast.Cast:
		g.genCast(e)
	case *ast.FuncCall:
		g.genFuncCall(e)
	case *ast.ArrayRef:
		g.genArrayRef(e)
	case *ast.ExprList:
		for _, sub := range e.Exprs {
			g.genExpression(sub)
		}
		if n := len(e.Exprs); n > 0 {
			e.SetGenLocation(e.Exprs[n-1].GenLocation())
		}
	case *ast.InitList:
		g.genInitListValue(e)
	}
}

// genConstant emits a literal. Strings become module-level symbols in the
// text section; scalars load into a fresh temporary.
func (g *Generator) genConstant(node *ast.Constant) {
	if node.RawType == "string" {
		target := g.newText()
		g.emitText("global_string", target, node.Value)
		node.SetGenLocation(target)
		return
	}
	target := g.newTemp()
	g.emit("literal_"+node.RawType, node.Value, target)
	node.SetGenLocation(target)
}

// genID resolves an identifier to the location of its declaration: the
// alloca temporary for locals and parameters, the @-symbol for globals and
// functions. A node that already carries a location keeps it.
func (g *Generator) genID(node *ast.ID) {
	if node.GenLocation() != "" {
		return
	}
	leaf := ast.LeafVarDecl(declaratorOf(node.Bind))
	if leaf == nil || leaf.DeclName.GenLocation() == "" {
		if node.Kind == "func" && node.Scope == 1 {
			node.SetGenLocation("@" + node.Name)
		}
		return
	}
	node.SetGenLocation(leaf.DeclName.GenLocation())
}

func declaratorOf(bind ast.Node) ast.Declarator {
	d, _ := bind.(ast.Declarator)
	return d
}

// genBinaryOp loads both operands and emits the mapped opcode suffixed
// with the operand element type.
func (g *Generator) genBinaryOp(node *ast.BinaryOp) {
	g.genExpression(node.Left)
	g.genExpression(node.Right)
	g.loadValue(node.Left)
	g.loadValue(node.Right)

	target := g.newTemp()
	opcode := binaryOpcodes[node.Op] + "_" + leafTypeName(node.Left)
	g.emit(opcode, node.Left.GenLocation(), node.Right.GenLocation(), target)
	node.SetGenLocation(target)
}

// genUnaryOp lowers the unary operators. Address-of is a no-op on the
// operand's location; dereference loads through the pointer; increment
// and decrement load, add or subtract a literal one, and store back,
// with the postfix forms keeping the pre-modification value.
func (g *Generator) genUnaryOp(node *ast.UnaryOp) {
	g.genExpression(node.Expr)
	source := node.Expr.GenLocation()

	switch node.Op {
	case "&":
		node.SetGenLocation(node.Expr.GenLocation())
	case "*":
		g.loadReference(node)
	case "+":
		g.loadValue(node.Expr)
		node.SetGenLocation(node.Expr.GenLocation())
	case "-":
		g.loadValue(node.Expr)
		target := g.newTemp()
		g.emit("sub_"+leafTypeName(node.Expr), int64(0), node.Expr.GenLocation(), target)
		node.SetGenLocation(target)
	case "!":
		g.loadValue(node.Expr)
		target := g.newTemp()
		g.emit("not_bool", node.Expr.GenLocation(), target)
		node.SetGenLocation(target)
	case "++", "--", "p++", "p--":
		g.loadValue(node.Expr)
		one := g.newTemp()
		g.emit("literal_int", int64(1), one)
		stem := "add"
		if node.Op == "--" || node.Op == "p--" {
			stem = "sub"
		}
		typename := leafTypeName(node.Expr)
		result := g.newTemp()
		g.emit(stem+"_"+typename, node.Expr.GenLocation(), one, result)
		g.emit("store_"+typename, result, source)
		if node.Op == "p++" || node.Op == "p--" {
			// Postfix keeps the value loaded before the update.
			node.SetGenLocation(node.Expr.GenLocation())
		} else {
			node.SetGenLocation(result)
		}
	}
}

// genAssignment lowers plain and compound assignment. Compound forms
// expand to load, operate, store on the lvalue's address. Assigning into a
// function-pointer slot emits get_<T>_* to capture the target address.
func (g *Generator) genAssignment(node *ast.Assignment) {
	g.genExpression(node.RValue)
	g.loadValue(node.RValue)

	g.genExpression(node.LValue)

	if stem, ok := assignOpcodes[node.Op]; ok {
		elem := leafTypeName(node.LValue)
		typename := elem
		if _, ok := node.LValue.(*ast.ArrayRef); ok {
			typename += "_*"
		}
		lval := g.newTemp()
		target := g.newTemp()
		g.emit("load_"+typename, node.LValue.GenLocation(), lval)
		g.emit(stem+"_"+elem, lval, node.RValue.GenLocation(), target)
		g.emit("store_"+typename, target, node.LValue.GenLocation())
		node.SetGenLocation(target)
		return
	}

	switch lvar := node.LValue.(type) {
	case *ast.ArrayRef:
		g.emit("store_"+leafTypeName(lvar)+"_*", node.RValue.GenLocation(), lvar.GenLocation())
	case *ast.ID:
		typename := leafTypeName(lvar)
		switch {
		case isArrayBind(lvar.Bind):
			typename += declSuffix(lvar.Bind.(ast.Declarator))
			g.emit("store_"+typename, node.RValue.GenLocation(), lvar.GenLocation())
		case lvar.GetType().List.Outer() == types.PTR:
			if ptr, ok := lvar.Bind.(*ast.PtrDecl); ok {
				if fd, ok := ptr.Type.(*ast.FuncDecl); ok {
					fd.GenLocation = lvar.GenLocation()
				}
			}
			g.emit("get_"+typename+"_*", node.RValue.GenLocation(), lvar.GenLocation())
		default:
			g.emit("store_"+typename, node.RValue.GenLocation(), lvar.GenLocation())
		}
	case *ast.UnaryOp:
		typename := leafTypeName(lvar)
		if lvar.Op == "*" {
			typename += "_*"
		}
		g.emit("store_"+typename, node.RValue.GenLocation(), lvar.GenLocation())
	}
	node.SetGenLocation(node.RValue.GenLocation())
}

func isArrayBind(bind ast.Node) bool {
	_, ok := bind.(*ast.ArrayDecl)
	return ok
}

// genCast loads the operand and emits the conversion: fptosi toward int,
// sitofp toward float.
func (g *Generator) genCast(node *ast.Cast) {
	g.genExpression(node.Expr)
	g.loadValue(node.Expr)

	temp := g.newTemp()
	if node.ToType.List.Leaf() == types.INT {
		g.emit("fptosi", node.Expr.GenLocation(), temp)
	} else {
		g.emit("sitofp", node.Expr.GenLocation(), temp)
	}
	node.SetGenLocation(temp)
}

// genFuncCall evaluates the arguments, emits their param tuples as one
// contiguous run, and calls the target. Calls through function pointers
// load the captured target first.
func (g *Generator) genFuncCall(node *ast.FuncCall) {
	if node.Args != nil {
		var args []ast.Expression
		if list, ok := node.Args.(*ast.ExprList); ok {
			args = list.Exprs
		} else {
			args = []ast.Expression{node.Args}
		}

		var params []Instr
		for _, arg := range args {
			g.genExpression(arg)
			g.loadValue(arg)
			params = append(params, NewInstr("param_"+leafTypeName(arg), arg.GenLocation()))
		}
		g.code = append(g.code, params...)
	}

	if ptr, ok := node.Name.Bind.(*ast.PtrDecl); ok {
		if fd, ok := ptr.Type.(*ast.FuncDecl); ok {
			target := g.newTemp()
			g.emit("load_"+leafTypeName(node)+"_*", fd.GenLocation, target)
			result := g.newTemp()
			g.emit("call", target, result)
			node.SetGenLocation(result)
			return
		}
	}

	result := g.newTemp()
	g.genID(node.Name)
	g.emit("call", "@"+node.Name.Name, result)
	node.SetGenLocation(result)
}

// genArrayRef computes the element address. A two-dimensional access
// linearizes the index: base dimension times the outer subscript plus the
// inner subscript feeds elem_<T>.
func (g *Generator) genArrayRef(node *ast.ArrayRef) {
	elem := node.GetType().List.Leaf().Name

	if inner, ok := node.Name.(*ast.ArrayRef); ok {
		g.genExpression(node.Subscript)
		g.genExpression(inner.Subscript)

		outerArr, _ := node.Bind.(*ast.ArrayDecl)
		innerArr, _ := outerArr.Type.(*ast.ArrayDecl)
		dim := &ast.Constant{RawType: "int", Value: dimValue(innerArr.Dim)}
		dim.SetType(ast.NewResolvedType(types.TypeList{types.INT}, node.Pos()))
		g.genConstant(dim)

		g.loadValue(inner.Subscript)
		rowBase := g.newTemp()
		g.emit("mul_"+elem, dim.GenLocation(), inner.Subscript.GenLocation(), rowBase)

		g.loadValue(node.Subscript)
		idx := g.newTemp()
		g.emit("add_"+elem, rowBase, node.Subscript.GenLocation(), idx)

		base := ast.LeafVarDecl(outerArr).DeclName.GenLocation()
		target := g.newTemp()
		g.emit("elem_"+elem, base, idx, target)
		node.SetGenLocation(target)
		return
	}

	g.genExpression(node.Subscript)
	g.loadValue(node.Subscript)

	arr, _ := node.Bind.(*ast.ArrayDecl)
	base := ast.LeafVarDecl(arr).DeclName.GenLocation()
	target := g.newTemp()
	g.emit("elem_"+elem, base, node.Subscript.GenLocation(), target)
	node.SetGenLocation(target)
}

func dimValue(dim ast.Expression) int64 {
	if c, ok := dim.(*ast.Constant); ok {
		if v, ok := c.Value.(int64); ok {
			return v
		}
	}
	return 0
}
