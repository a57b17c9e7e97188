package ir

import (
	"strconv"

	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/types"
)

// globalScope keys the module-level counter used for string-literal
// symbols and global allocations.
const globalScope = "_glob_"

// Allocation phases of function lowering. The ordering is load-bearing:
// parameter allocas precede the return slot, all local allocas precede any
// store, and parameters are initialized before any body instruction.
const (
	phaseArgDecl = "arg_decl"
	phaseArgInit = "arg_init"
	phaseVarDecl = "var_decl"
	phaseVarInit = "var_init"
)

// Generator lowers a semantically decorated AST into the flat IR tuple
// sequence. It assumes well-typed input and does not re-check.
type Generator struct {
	fname       string
	versions    map[string]int
	text        []Instr
	code        []Instr
	allocPhase  string
	items       []string
	retLocation string
	retLabel    string
}

// NewGenerator creates a generator with an empty module.
func NewGenerator() *Generator {
	return &Generator{
		fname:    globalScope,
		versions: map[string]int{globalScope: 0},
	}
}

// Generate emits the whole program: globals into the text section,
// function bodies into the code section.
func (g *Generator) Generate(program *ast.Program) *Program {
	for _, gdecl := range program.GDecls {
		switch n := gdecl.(type) {
		case *ast.GlobalDecl:
			g.genGlobalDecl(n)
		case *ast.FuncDef:
			g.genFuncDef(n)
		}
	}
	return &Program{Text: g.text, Code: g.code}
}

// newTemp creates a fresh temporary in the current function's namespace.
func (g *Generator) newTemp() string {
	if _, ok := g.versions[g.fname]; !ok {
		g.versions[g.fname] = 0
	}
	name := "%" + strconv.Itoa(g.versions[g.fname])
	g.versions[g.fname]++
	return name
}

// newText creates a fresh module-level string-literal symbol.
func (g *Generator) newText() string {
	name := "@.str." + strconv.Itoa(g.versions[globalScope])
	g.versions[globalScope]++
	return name
}

func (g *Generator) emit(op string, args ...interface{}) {
	g.code = append(g.code, NewInstr(op, args...))
}

func (g *Generator) emitText(op string, args ...interface{}) {
	g.text = append(g.text, NewInstr(op, args...))
}

// emitLabel places a label definition: the temporary's number with the
// leading % stripped.
func (g *Generator) emitLabel(label string) {
	g.code = append(g.code, NewInstr(label[1:]))
}

// enqueue and dequeue manage the inbound parameter temporaries in FIFO
// order between the define and the arg_init phase.
func (g *Generator) enqueue(item string) {
	g.items = append(g.items, item)
}

func (g *Generator) dequeue() string {
	item := g.items[0]
	g.items = g.items[1:]
	return item
}

// leafTypeName returns the scalar type name of an expression's resolved type.
func leafTypeName(expr ast.Expression) string {
	return expr.GetType().List.Leaf().Name
}

// dimString renders an array dimension, which semantic analysis has
// reduced to an integer constant.
func dimString(dim ast.Expression) string {
	if c, ok := dim.(*ast.Constant); ok {
		if v, ok := c.Value.(int64); ok {
			return strconv.FormatInt(v, 10)
		}
	}
	return "0"
}

// declSuffix builds the opcode suffix for a declarator chain: _N per array
// dimension, _* per pointer level, outside-in.
func declSuffix(d ast.Declarator) string {
	suffix := ""
	for cur := d; cur != nil; {
		switch t := cur.(type) {
		case *ast.ArrayDecl:
			suffix += "_" + dimString(t.Dim)
			cur = t.Type
		case *ast.PtrDecl:
			suffix += "_*"
			cur = t.Type
		default:
			cur = nil
		}
	}
	return suffix
}

// genGlobalDecl emits the module-level declarations of one line; function
// prototypes produce no IR.
func (g *Generator) genGlobalDecl(node *ast.GlobalDecl) {
	for _, decl := range node.Decls {
		if isFuncDeclarator(decl.Type) {
			continue
		}
		g.genDecl(decl)
	}
}

func isFuncDeclarator(d ast.Declarator) bool {
	_, ok := d.(*ast.FuncDecl)
	return ok
}

// genDecl dispatches a declaration by the root of its declarator chain,
// accumulating the dimension suffix on the way to the VarDecl leaf.
func (g *Generator) genDecl(decl *ast.Decl) {
	switch t := decl.Type.(type) {
	case *ast.VarDecl:
		g.genVarDecl(t, decl, "")
	case *ast.ArrayDecl:
		g.genVarDecl(ast.LeafVarDecl(t), decl, declSuffix(t))
	case *ast.PtrDecl:
		g.genVarDecl(ast.LeafVarDecl(t), decl, declSuffix(t))
	case *ast.FuncDecl:
		g.genFuncDecl(t)
	}
}

// genVarDecl emits one variable according to scope and phase: a global
// allocation, a local alloc (arg_decl/var_decl), a parameter store
// (arg_init), or an initializer store (var_init).
func (g *Generator) genVarDecl(node *ast.VarDecl, decl *ast.Decl, dim string) {
	if node.DeclName.Scope == 1 {
		g.globalLocation(node, decl, dim)
		return
	}

	typename := node.Type.List.Leaf().Name + dim
	switch g.allocPhase {
	case phaseArgDecl, phaseVarDecl:
		varname := g.newTemp()
		g.emit("alloc_"+typename, varname)
		node.DeclName.SetGenLocation(varname)
		decl.Name.SetGenLocation(varname)
	case phaseArgInit:
		g.emit("store_"+typename, g.dequeue(), node.DeclName.GenLocation())
	case phaseVarInit:
		if decl.Init != nil {
			g.storeLocation(typename, decl.Init, node.DeclName.GenLocation())
		}
	}
}

// globalLocation emits a global allocation into the text section, with an
// inline literal or aggregated initializer value where present.
func (g *Generator) globalLocation(node *ast.VarDecl, decl *ast.Decl, dim string) {
	typename := node.Type.List.Leaf().Name + dim
	varname := "@" + node.DeclName.Name

	switch init := decl.Init.(type) {
	case nil:
		g.emitText("global_"+typename, varname)
	case *ast.Constant:
		g.emitText("global_"+typename, varname, init.Value)
	case *ast.InitList:
		g.genInitListValue(init)
		g.emitText("global_"+typename, varname, init.Value)
	default:
		g.emitText("global_"+typename, varname)
	}
	node.DeclName.SetGenLocation(varname)
}

// genInitListValue aggregates an initializer list into its nested constant
// value form.
func (g *Generator) genInitListValue(node *ast.InitList) {
	node.Value = nil
	for _, e := range node.Exprs {
		switch expr := e.(type) {
		case *ast.InitList:
			g.genInitListValue(expr)
			node.Value = append(node.Value, expr.Value)
		case *ast.Constant:
			node.Value = append(node.Value, expr.Value)
		}
	}
}

// genFuncDecl runs the define, arg_decl and arg_init phases of a function:
// the define tuple, one reserved inbound temporary per parameter, the
// parameter allocas, the return slot and exit label, and finally the
// stores of the inbound temporaries into the parameter slots.
func (g *Generator) genFuncDecl(node *ast.FuncDecl) {
	leaf := ast.LeafVarDecl(node)
	g.fname = "@" + leaf.DeclName.Name
	g.emit("define", g.fname)
	leaf.DeclName.SetGenLocation(g.fname)

	g.items = nil
	if node.Args != nil {
		for range node.Args.Params {
			g.enqueue(g.newTemp())
		}
	}

	g.allocPhase = phaseArgDecl
	if node.Args != nil {
		for _, arg := range node.Args.Params {
			g.genDecl(arg)
		}
	}

	retType := leaf.Type.List
	g.retLocation = ""
	if retType.Leaf() != types.VOID {
		g.retLocation = g.newTemp()
		g.emit("alloc_"+retType.Leaf().Name, g.retLocation)
	}
	g.retLabel = g.newTemp()

	g.allocPhase = phaseArgInit
	if node.Args != nil {
		for _, arg := range node.Args.Params {
			g.genDecl(arg)
		}
	}
}

// genFuncDef lowers a whole function in phases: define and parameters via
// the FuncDecl, then the var_decl sweep over every local declaration, then
// the var_init sweep emitting the body, and finally the single exit.
func (g *Generator) genFuncDef(node *ast.FuncDef) {
	g.allocPhase = ""
	g.genDecl(node.Decl)
	for _, par := range node.ParamDecls {
		g.genDecl(par)
	}

	if node.Body != nil {
		g.allocPhase = phaseVarDecl
		for _, item := range node.Body.BlockItems {
			if decl, ok := item.(*ast.Decl); ok {
				g.genDecl(decl)
			}
		}
		for _, decl := range node.Decls {
			g.genDecl(decl)
		}

		g.allocPhase = phaseVarInit
		for _, item := range node.Body.BlockItems {
			g.genStatement(item)
		}
	}

	g.emitLabel(g.retLabel)
	retType := ast.LeafVarDecl(node.Decl.Type).Type.List
	if retType.Leaf() == types.VOID {
		g.emit("return_void")
		return
	}
	rvalue := g.newTemp()
	g.emit("load_"+retType.Leaf().Name, g.retLocation, rvalue)
	g.emit("return_"+retType.Leaf().Name, rvalue)
}

// loadLocation loads an address-bearing access (ID or ArrayRef) into a
// fresh temporary before its value is consumed. Array-element accesses
// load through the element pointer; whole-array accesses carry the
// dimension suffix.
func (g *Generator) loadLocation(node ast.Expression) {
	varname := g.newTemp()
	typename := leafTypeName(node)
	switch n := node.(type) {
	case *ast.ArrayRef:
		typename += "_*"
	case *ast.ID:
		if arr, ok := n.Bind.(*ast.ArrayDecl); ok {
			typename += declSuffix(arr)
		}
	}
	g.emit("load_"+typename, node.GenLocation(), varname)
	node.SetGenLocation(varname)
}

// loadReference loads a dereferenced pointer's value.
func (g *Generator) loadReference(node *ast.UnaryOp) {
	varname := g.newTemp()
	g.emit("load_"+leafTypeName(node.Expr)+"_*", node.Expr.GenLocation(), varname)
	node.SetGenLocation(varname)
}

// loadValue makes sure an already generated operand holds a value, not an
// address.
func (g *Generator) loadValue(node ast.Expression) {
	switch n := node.(type) {
	case *ast.ID, *ast.ArrayRef:
		g.loadLocation(node)
	case *ast.UnaryOp:
		if n.Op == "*" {
			g.loadReference(n)
		}
	}
}

// storeLocation evaluates an initializer and stores it into a target slot.
// Aggregate initializers store their aggregated constant value.
func (g *Generator) storeLocation(typename string, init ast.Expression, target string) {
	g.genExpression(init)
	if list, ok := init.(*ast.InitList); ok {
		g.genInitListValue(list)
		g.emit("store_"+typename, list.Value, target)
		return
	}
	g.loadValue(init)
	g.emit("store_"+typename, init.GenLocation(), target)
}

// readLocation reads one input value into a fresh temporary and stores it
// into the target's address.
func (g *Generator) readLocation(source ast.Expression) {
	target := g.newTemp()
	typename := leafTypeName(source)
	g.emit("read_"+typename, target)
	if _, ok := source.(*ast.ArrayRef); ok {
		typename += "_*"
	}
	g.emit("store_"+typename, target, source.GenLocation())
}
