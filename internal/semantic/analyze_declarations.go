package semantic

import (
	"strconv"

	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/types"
	"github.com/uclang/go-uc/pkg/token"
)

// visitDecl processes one declared name: the declarator chain registers the
// identifier, the name is bound back to the chain, and any initializer is
// checked against the declared type.
func (a *Analyzer) visitDecl(node *ast.Decl) error {
	declarator := node.Type
	if err := a.visitDeclarator(declarator); err != nil {
		return err
	}
	node.Name.Bind = declarator

	// Skip pointer wrappers to find what the name declares.
	inner := ast.Node(declarator)
	for {
		ptr, ok := inner.(*ast.PtrDecl)
		if !ok {
			break
		}
		inner = ptr.Type
	}

	pos := node.Name.Pos()
	if _, ok := inner.(*ast.FuncDecl); ok {
		if a.env.Lookup(node.Name.Name) == nil {
			return a.errorf(pos, "'%s' is not defined.", node.Name.Name)
		}
		// A prototype (or function-pointer declarator) closes the scope
		// its FuncDecl opened; a definition keeps it open for the body.
		if a.funcDefDecl != node {
			a.env.Pop()
		}
		return nil
	}

	if !a.env.Find(node.Name.Name) {
		return a.errorf(pos, "'%s' is not defined.", node.Name.Name)
	}
	if node.Init != nil {
		d, _ := inner.(ast.Declarator)
		return a.checkInit(d, node.Init, node.Name.Name, pos)
	}
	return nil
}

// visitDeclarator dispatches over the declarator chain.
func (a *Analyzer) visitDeclarator(d ast.Declarator) error {
	switch n := d.(type) {
	case *ast.VarDecl:
		return a.visitVarDecl(n)
	case *ast.ArrayDecl:
		return a.visitArrayDecl(n)
	case *ast.PtrDecl:
		return a.visitPtrDecl(n)
	case *ast.FuncDecl:
		return a.visitFuncDecl(n)
	default:
		return a.errorf(d.Pos(), "unknown declarator type %T.", d)
	}
}

// visitVarDecl resolves the base type and registers the declared name in
// the current frame. Redeclaration in the same frame is fatal.
func (a *Analyzer) visitVarDecl(node *ast.VarDecl) error {
	a.fresh[node] = node.Type != nil && node.Type.List == nil
	if err := a.visitType(node.Type); err != nil {
		return err
	}
	loc := node.DeclName
	if a.env.Find(loc.Name) {
		return a.errorf(loc.Pos(), "name '%s' already defined in this scope.", loc.Name)
	}
	a.env.AddLocal(loc, "var")
	loc.Type = node.Type
	return nil
}

// visitArrayDecl visits the wrapped declarator, then prepends the array
// tag to the leaf's type list. Nested array and pointer declarators
// compose bottom-up into the outside-in type stack.
func (a *Analyzer) visitArrayDecl(node *ast.ArrayDecl) error {
	if err := a.visitDeclarator(node.Type); err != nil {
		return err
	}
	leaf := ast.LeafVarDecl(node)
	if a.fresh[leaf] {
		leaf.Type.List = leaf.Type.List.Prepend(types.ARRAY)
	}

	if node.Dim != nil {
		if err := a.visitExpression(node.Dim); err != nil {
			return err
		}
		if dt := a.typeOf(node.Dim); dt.Outer() != types.INT {
			return a.errorf(node.Dim.Pos(), "'%s' must be of type(int).", dt.Outer())
		}
	}
	return nil
}

// visitPtrDecl visits the wrapped declarator, then prepends the pointer tag.
func (a *Analyzer) visitPtrDecl(node *ast.PtrDecl) error {
	if err := a.visitDeclarator(node.Type); err != nil {
		return err
	}
	leaf := ast.LeafVarDecl(node)
	if a.fresh[leaf] {
		leaf.Type.List = leaf.Type.List.Prepend(types.PTR)
	}
	return nil
}

// visitFuncDecl registers the function name, marks it callable, and opens
// the function scope in which the parameters are declared. The scope is
// closed by visitDecl (prototypes) or visitFuncDef (definitions).
func (a *Analyzer) visitFuncDecl(node *ast.FuncDecl) error {
	if err := a.visitDeclarator(node.Type); err != nil {
		return err
	}
	sym := a.env.Lookup(ast.LeafVarDecl(node).DeclName.Name)
	sym.Kind = "func"
	sym.Bind = node

	a.env.Push(node)
	if node.Args != nil {
		for _, arg := range node.Args.Params {
			if err := a.visitDecl(arg); err != nil {
				return err
			}
		}
	}
	return nil
}

// setDim fills an absent array dimension from an initializer length, or
// checks an explicit dimension against it.
func (a *Analyzer) setDim(arr *ast.ArrayDecl, length int, pos token.Position, varName string) error {
	if arr.Dim == nil {
		dim := &ast.Constant{
			Token:   token.Token{Type: token.INT_CONST, Literal: strconv.Itoa(length), Pos: pos},
			RawType: "int",
		}
		if err := a.visitConstant(dim); err != nil {
			return err
		}
		arr.Dim = dim
		return nil
	}
	if c, ok := arr.Dim.(*ast.Constant); ok {
		if v, ok := c.Value.(int64); ok && v != int64(length) {
			return a.errorf(pos, "incompatible size at '%s' initialization.", varName)
		}
	}
	return nil
}

// checkInit validates an initializer against the declared type. The
// declarator has already had its pointer wrappers skipped.
func (a *Analyzer) checkInit(declarator ast.Declarator, init ast.Expression, varName string, pos token.Position) error {
	if err := a.visitExpression(init); err != nil {
		return err
	}

	switch init := init.(type) {
	case *ast.Constant:
		return a.checkConstantInit(declarator, init, varName, pos)
	case *ast.InitList:
		return a.checkListInit(declarator, init, varName, pos)
	case *ast.ArrayRef:
		leaf := ast.LeafVarDecl(declarator)
		if leaf.Type.List.Outer() != a.typeOf(init).Outer() {
			return a.errorf(pos, "'%s' initialization type incompatible.", varName)
		}
		return nil
	case *ast.ID:
		return a.checkIDInit(declarator, init, varName, pos)
	default:
		leaf := ast.LeafVarDecl(declarator)
		if !leaf.Type.List.Equal(a.typeOf(init)) {
			return a.errorf(pos, "'%s' initialization type incompatible.", varName)
		}
		return nil
	}
}

// checkConstantInit handles scalar and string-literal initializers.
// A string requires a char-array target and fixes its dimension from the
// string length.
func (a *Analyzer) checkConstantInit(declarator ast.Declarator, init *ast.Constant, varName string, pos token.Position) error {
	leaf := ast.LeafVarDecl(declarator)

	if init.RawType == "string" {
		want := types.TypeList{types.ARRAY, types.CHAR}
		if !leaf.Type.List.Equal(want) {
			return a.errorf(pos, "'%s' initialization type incompatible.", varName)
		}
		arr, ok := declarator.(*ast.ArrayDecl)
		if !ok {
			return a.errorf(pos, "'%s' initialization type incompatible.", varName)
		}
		text, _ := init.Value.(string)
		return a.setDim(arr, len(text), pos, varName)
	}

	if leaf.Type.List.Outer() != a.typeOf(init).Outer() {
		return a.errorf(pos, "'%s' initialization type incompatible.", varName)
	}
	return nil
}

// checkListInit handles brace initializers: a single element for scalars,
// and a recursive descent for arrays in which every level's sibling lists
// must agree in length and fill or match that level's dimension.
func (a *Analyzer) checkListInit(declarator ast.Declarator, init *ast.InitList, varName string, pos token.Position) error {
	switch d := declarator.(type) {
	case *ast.VarDecl:
		if len(init.Exprs) != 1 {
			return a.errorf(pos, "'%s' initialization must be a single element.", varName)
		}
		if !d.Type.List.Equal(a.typeOf(init.Exprs[0])) {
			return a.errorf(pos, "'%s' initialization type incompatible.", varName)
		}
		return nil
	case *ast.ArrayDecl:
		return a.checkArrayListInit(d, init, varName, pos)
	default:
		return a.errorf(pos, "'%s' initialization type incompatible.", varName)
	}
}

func (a *Analyzer) checkArrayListInit(arr *ast.ArrayDecl, list *ast.InitList, varName string, pos token.Position) error {
	if err := a.setDim(arr, len(list.Exprs), pos, varName); err != nil {
		return err
	}

	if innerArr, ok := arr.Type.(*ast.ArrayDecl); ok {
		// Sibling sub-lists must have equal lengths before descending.
		want := -1
		for _, e := range list.Exprs {
			sub, ok := e.(*ast.InitList)
			if !ok {
				return a.errorf(pos, "'%s' initialization type incompatible.", varName)
			}
			if want == -1 {
				want = len(sub.Exprs)
			} else if len(sub.Exprs) != want {
				return a.errorf(pos, "list have different sizes.")
			}
		}
		for _, e := range list.Exprs {
			if err := a.checkArrayListInit(innerArr, e.(*ast.InitList), varName, pos); err != nil {
				return err
			}
		}
		return nil
	}

	// Innermost level: every element must carry the array's element type.
	leaf := ast.LeafVarDecl(arr)
	elem := leaf.Type.List
	for elem.Outer() == types.ARRAY {
		elem = elem.PopOuter()
	}
	for _, e := range list.Exprs {
		if !a.typeOf(e).Equal(elem) {
			return a.errorf(pos, "'%s' initialization type incompatible.", varName)
		}
	}
	return nil
}

// checkIDInit handles initialization from another variable: the full type
// lists must match, and an array target copies the source's dimension.
func (a *Analyzer) checkIDInit(declarator ast.Declarator, init *ast.ID, varName string, pos token.Position) error {
	leaf := ast.LeafVarDecl(declarator)

	if arr, ok := declarator.(*ast.ArrayDecl); ok {
		if !leaf.Type.List.Equal(a.typeOf(init)) {
			return a.errorf(pos, "initialization type mismatch.")
		}
		if srcArr, ok := init.Bind.(*ast.ArrayDecl); ok && srcArr.Dim != nil {
			if c, ok := srcArr.Dim.(*ast.Constant); ok {
				if v, ok := c.Value.(int64); ok {
					return a.setDim(arr, int(v), pos, varName)
				}
			}
		}
		return nil
	}

	if !leaf.Type.List.Equal(a.typeOf(init)) {
		return a.errorf(pos, "initialization type mismatch.")
	}
	return nil
}
