package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/lexer"
	"github.com/uclang/go-uc/internal/parser"
	"github.com/uclang/go-uc/internal/types"
)

// analyze parses and analyzes a program, failing the test on any error.
func analyze(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse should succeed")
	require.NotNil(t, program)
	require.NoError(t, NewAnalyzer().Analyze(program))
	return program
}

// analyzeError parses a program and returns the semantic diagnostic text.
func analyzeError(t *testing.T, input string) string {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse should succeed")
	err := NewAnalyzer().Analyze(program)
	require.Error(t, err, "analysis should fail")
	return err.Error()
}

func globalDecl(program *ast.Program, i int) *ast.Decl {
	return program.GDecls[i].(*ast.GlobalDecl).Decls[0]
}

func TestGlobalVariableDecoration(t *testing.T) {
	program := analyze(t, "int x;")
	decl := globalDecl(program, 0)

	id := decl.Name
	require.NotNil(t, id.Bind, "bind must be set")
	require.NotNil(t, id.Type, "type must be set")
	require.Equal(t, "var", id.Kind)
	require.Equal(t, 1, id.Scope, "globals live at scope 1")
	require.True(t, id.Type.List.Equal(types.TypeList{types.INT}))
}

func TestTypeStacks(t *testing.T) {
	tests := []struct {
		input    string
		expected types.TypeList
	}{
		{"int x;", types.TypeList{types.INT}},
		{"float f;", types.TypeList{types.FLOAT}},
		{"int *p;", types.TypeList{types.PTR, types.INT}},
		{"int **pp;", types.TypeList{types.PTR, types.PTR, types.INT}},
		{"int a[3];", types.TypeList{types.ARRAY, types.INT}},
		{"int m[2][3];", types.TypeList{types.ARRAY, types.ARRAY, types.INT}},
		{"char *s[4];", types.TypeList{types.ARRAY, types.PTR, types.CHAR}},
		{"float *v[2][2];", types.TypeList{types.ARRAY, types.ARRAY, types.PTR, types.FLOAT}},
	}

	for _, tt := range tests {
		program := analyze(t, tt.input)
		id := globalDecl(program, 0).Name
		require.True(t, id.Type.List.Equal(tt.expected),
			"%s: got %s, want %s", tt.input, id.Type.List, tt.expected)
	}
}

// Aggregate tags always precede the scalar tag in a type list.
func TestAggregateTagsPrecedeScalar(t *testing.T) {
	program := analyze(t, "int *a[2][3];")
	list := globalDecl(program, 0).Name.Type.List

	sawScalar := false
	for _, tag := range list {
		if tag == types.ARRAY || tag == types.PTR {
			require.False(t, sawScalar, "aggregate tag after scalar tag in %s", list)
		} else {
			sawScalar = true
		}
	}
}

func TestFunctionDecoration(t *testing.T) {
	program := analyze(t, "int inc(int n) { return n + 1; }")
	fd := program.GDecls[0].(*ast.FuncDef)

	id := fd.Decl.Name
	require.Equal(t, "func", id.Kind)
	require.Equal(t, 1, id.Scope)
	require.True(t, id.Type.List.Equal(types.TypeList{types.INT}))
	require.IsType(t, &ast.FuncDecl{}, id.Bind)

	param := fd.Decl.Type.(*ast.FuncDecl).Args.Params[0]
	require.Equal(t, "var", param.Name.Kind)
	require.Equal(t, 2, param.Name.Scope, "parameters live in the function scope")
}

func TestIdentifierResolution(t *testing.T) {
	program := analyze(t, `
int g;
int main() {
	int l;
	l = g;
	return l;
}
`)
	fd := program.GDecls[1].(*ast.FuncDef)
	assign := fd.Body.BlockItems[1].(*ast.Assignment)

	lhs := assign.LValue.(*ast.ID)
	rhs := assign.RValue.(*ast.ID)
	require.Equal(t, 2, lhs.Scope)
	require.Equal(t, 1, rhs.Scope)
	require.NotNil(t, lhs.Bind)
	require.NotNil(t, rhs.Bind)
	require.Equal(t, "var", rhs.Kind)
}

func TestExpressionTyping(t *testing.T) {
	program := analyze(t, `
void w() {
	int a;
	int b;
	float f;
	a = a + b;
	f = (float)a;
	if (a < b) a = b;
}
`)
	fd := program.GDecls[0].(*ast.FuncDef)
	items := fd.Body.BlockItems

	sum := items[3].(*ast.Assignment).RValue.(*ast.BinaryOp)
	require.True(t, sum.Type.List.Equal(types.TypeList{types.INT}))

	cast := items[4].(*ast.Assignment).RValue.(*ast.Cast)
	require.True(t, cast.Type.List.Equal(types.TypeList{types.FLOAT}))

	cond := items[5].(*ast.If).Cond.(*ast.BinaryOp)
	require.True(t, cond.Type.List.Equal(types.TypeList{types.BOOL}),
		"relational operators yield bool")
}

func TestUnaryTyping(t *testing.T) {
	program := analyze(t, `
void w() {
	int x;
	int *p;
	p = &x;
	x = *p;
}
`)
	fd := program.GDecls[0].(*ast.FuncDef)
	items := fd.Body.BlockItems

	addr := items[2].(*ast.Assignment).RValue.(*ast.UnaryOp)
	require.True(t, addr.Type.List.Equal(types.TypeList{types.PTR, types.INT}),
		"& prepends ptr")

	deref := items[3].(*ast.Assignment).RValue.(*ast.UnaryOp)
	require.True(t, deref.Type.List.Equal(types.TypeList{types.INT}),
		"* pops the outer ptr")
}

func TestBreakBinding(t *testing.T) {
	program := analyze(t, `
void w() {
	int i;
	i = 0;
	while (i < 10) {
		if (i == 5) break;
		i = i + 1;
	}
}
`)
	fd := program.GDecls[0].(*ast.FuncDef)
	loop := fd.Body.BlockItems[2].(*ast.While)
	inner := loop.Stmt.(*ast.Compound)
	br := inner.BlockItems[0].(*ast.If).IfTrue.(*ast.Break)

	require.Same(t, ast.Node(loop), br.Bind, "break binds to the innermost loop")
}

func TestBreakBindsInnermostLoop(t *testing.T) {
	program := analyze(t, `
void w() {
	int i;
	int j;
	for (i = 0; i < 3; i++) {
		j = 0;
		while (j < 3) {
			break;
		}
	}
}
`)
	fd := program.GDecls[0].(*ast.FuncDef)
	outer := fd.Body.BlockItems[2].(*ast.For)
	inner := outer.Stmt.(*ast.Compound).BlockItems[1].(*ast.While)
	br := inner.Stmt.(*ast.Compound).BlockItems[0].(*ast.Break)

	require.Same(t, ast.Node(inner), br.Bind)
}

// Declarations in nested blocks and for-initializers are accumulated on
// the function definition for the code generator's allocation sweep.
func TestFuncDefDeclsAccumulation(t *testing.T) {
	program := analyze(t, `
void w() {
	int a;
	{
		int b;
	}
	for (int i = 0; i < 3; i++) {
		int c;
		a = a + 1;
	}
}
`)
	fd := program.GDecls[0].(*ast.FuncDef)

	var names []string
	for _, d := range fd.Decls {
		names = append(names, d.Name.Name)
	}
	require.Equal(t, []string{"b", "i", "c"}, names)
}

func TestDecorationIdempotence(t *testing.T) {
	program := analyze(t, "int a[3]; int *p;")

	first := globalDecl(program, 0).Name.Type.List.Clone()
	second := globalDecl(program, 1).Name.Type.List.Clone()

	// Re-running the pass on the decorated tree must not degrade the
	// type stacks.
	_ = NewAnalyzer().Analyze(program)
	require.True(t, globalDecl(program, 0).Name.Type.List.Equal(first))
	require.True(t, globalDecl(program, 1).Name.Type.List.Equal(second))
}
