package semantic

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/types"
)

// SymbolTable is one scope frame: a mapping from identifier name to the
// declaration-site ID node that resolves it. The enclosure is the node
// that opened the frame (*ast.Program, *ast.FuncDecl or *ast.For).
type SymbolTable struct {
	symbols   map[string]*ast.ID
	enclosure ast.Node
}

// NewSymbolTable creates a frame for the given enclosure.
func NewSymbolTable(enclosure ast.Node) *SymbolTable {
	return &SymbolTable{
		symbols:   make(map[string]*ast.ID),
		enclosure: enclosure,
	}
}

// Add binds a name to its declaring ID node in this frame.
func (st *SymbolTable) Add(name string, id *ast.ID) {
	st.symbols[name] = id
}

// Lookup returns the ID bound to name in this frame, or nil.
func (st *SymbolTable) Lookup(name string) *ast.ID {
	return st.symbols[name]
}

// Contains reports whether name is bound in this frame.
func (st *SymbolTable) Contains(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// Environment is the scope stack threaded through semantic analysis: the
// frame stack, the per-function return-type stack, and the enclosing-loop
// stack used to bind break statements. Type names resolve through a
// separate name-to-singleton table (LookupType); the root frame itself
// starts empty and holds no type-name bindings.
type Environment struct {
	stack     []*SymbolTable
	typenames map[string]*types.Type
	rtypes    []types.TypeList
	curRType  types.TypeList
	curLoop   []ast.Node
	funcdef   *ast.FuncDef
}

// NewEnvironment creates an environment holding only the root frame.
func NewEnvironment() *Environment {
	return &Environment{
		stack:     []*SymbolTable{NewSymbolTable(nil)},
		typenames: types.All(),
		curRType:  types.TypeList{types.VOID},
	}
}

// Push opens a new frame for the enclosure. Function frames additionally
// push the return-type stack so return statements always check against the
// innermost function.
func (e *Environment) Push(enclosure ast.Node) {
	e.stack = append(e.stack, NewSymbolTable(enclosure))
	if fd, ok := enclosure.(*ast.FuncDecl); ok {
		e.rtypes = append(e.rtypes, e.curRType)
		if leaf := ast.LeafVarDecl(fd); leaf != nil && leaf.Type != nil {
			e.curRType = leaf.Type.List
		}
	}
}

// Pop closes the top frame, restoring the return type if the frame
// belonged to a function.
func (e *Environment) Pop() {
	top := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if _, ok := top.enclosure.(*ast.FuncDecl); ok {
		e.curRType = e.rtypes[len(e.rtypes)-1]
		e.rtypes = e.rtypes[:len(e.rtypes)-1]
	}
}

// Lookup walks the frame stack top-down for name.
func (e *Environment) Lookup(name string) *ast.ID {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if id := e.stack[i].Lookup(name); id != nil {
			return id
		}
	}
	return nil
}

// LookupType resolves a type spelling through the type-name table.
func (e *Environment) LookupType(name string) *types.Type {
	return e.typenames[name]
}

// ScopeLevel returns the current depth; the global scope is level 1.
func (e *Environment) ScopeLevel() int {
	return len(e.stack) - 1
}

// AddLocal registers a declaring ID in the top frame and stamps its kind
// and scope depth.
func (e *Environment) AddLocal(id *ast.ID, kind string) {
	e.Peek().Add(id.Name, id)
	id.Kind = kind
	id.Scope = e.ScopeLevel()
}

// Peek returns the top frame.
func (e *Environment) Peek() *SymbolTable {
	return e.stack[len(e.stack)-1]
}

// Find reports whether name is bound in the top frame only.
func (e *Environment) Find(name string) bool {
	return e.Peek().Contains(name)
}

// PushLoop records an enclosing loop for break binding.
func (e *Environment) PushLoop(loop ast.Node) {
	e.curLoop = append(e.curLoop, loop)
}

// PopLoop discards the innermost loop.
func (e *Environment) PopLoop() {
	e.curLoop = e.curLoop[:len(e.curLoop)-1]
}

// CurrentLoop returns the innermost loop, or nil outside any loop.
func (e *Environment) CurrentLoop() ast.Node {
	if len(e.curLoop) == 0 {
		return nil
	}
	return e.curLoop[len(e.curLoop)-1]
}
