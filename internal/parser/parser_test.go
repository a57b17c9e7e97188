package parser

import (
	"testing"

	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/lexer"
)

// parseProgram is the test helper: parse and fail the test on any error.
func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parser error: %s", p.Errors()[0])
	}
	if program == nil {
		t.Fatal("ParseProgram returned nil")
	}
	return program
}

func TestGlobalVariableDeclaration(t *testing.T) {
	program := parseProgram(t, "int x;")

	if len(program.GDecls) != 1 {
		t.Fatalf("expected 1 global declaration, got %d", len(program.GDecls))
	}
	gd, ok := program.GDecls[0].(*ast.GlobalDecl)
	if !ok {
		t.Fatalf("expected *ast.GlobalDecl, got %T", program.GDecls[0])
	}
	if len(gd.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(gd.Decls))
	}
	decl := gd.Decls[0]
	if decl.Name.Name != "x" {
		t.Errorf("expected name x, got %q", decl.Name.Name)
	}
	leaf, ok := decl.Type.(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected VarDecl root, got %T", decl.Type)
	}
	if len(leaf.Type.Names) != 1 || leaf.Type.Names[0] != "int" {
		t.Errorf("expected base type int, got %v", leaf.Type.Names)
	}
}

func TestMultipleDeclarators(t *testing.T) {
	program := parseProgram(t, "int a, b, c;")

	gd := program.GDecls[0].(*ast.GlobalDecl)
	if len(gd.Decls) != 3 {
		t.Fatalf("expected 3 decls, got %d", len(gd.Decls))
	}
	names := []string{"a", "b", "c"}
	for i, want := range names {
		if gd.Decls[i].Name.Name != want {
			t.Errorf("decl %d: expected %q, got %q", i, want, gd.Decls[i].Name.Name)
		}
	}
}

func TestFunctionDefinition(t *testing.T) {
	program := parseProgram(t, "int add(int a, int b) { return a + b; }")

	fd, ok := program.GDecls[0].(*ast.FuncDef)
	if !ok {
		t.Fatalf("expected *ast.FuncDef, got %T", program.GDecls[0])
	}
	if fd.Decl.Name.Name != "add" {
		t.Errorf("expected function name add, got %q", fd.Decl.Name.Name)
	}
	fn, ok := fd.Decl.Type.(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected FuncDecl root, got %T", fd.Decl.Type)
	}
	if fn.Args == nil || len(fn.Args.Params) != 2 {
		t.Fatalf("expected 2 parameters")
	}
	if fn.Args.Params[0].Name.Name != "a" || fn.Args.Params[1].Name.Name != "b" {
		t.Errorf("unexpected parameter names")
	}
	if fd.Spec.Names[0] != "int" {
		t.Errorf("expected return specifier int, got %v", fd.Spec.Names)
	}
	if len(fd.Body.BlockItems) != 1 {
		t.Fatalf("expected 1 body item, got %d", len(fd.Body.BlockItems))
	}
}

func TestParameterlessFunction(t *testing.T) {
	program := parseProgram(t, "void run() { }")

	fd := program.GDecls[0].(*ast.FuncDef)
	fn := fd.Decl.Type.(*ast.FuncDecl)
	if fn.Args != nil {
		t.Error("expected nil parameter list for ()")
	}
	if fd.Spec.Names[0] != "void" {
		t.Errorf("expected void specifier, got %v", fd.Spec.Names)
	}
}

// A function definition without a specifier defaults its return type to int.
func TestDefaultReturnType(t *testing.T) {
	program := parseProgram(t, "main() { return 0; }")

	fd := program.GDecls[0].(*ast.FuncDef)
	if fd.Spec.Names[0] != "int" {
		t.Errorf("expected defaulted int return, got %v", fd.Spec.Names)
	}
}

func TestFunctionPrototype(t *testing.T) {
	program := parseProgram(t, "int f(int n);")

	gd, ok := program.GDecls[0].(*ast.GlobalDecl)
	if !ok {
		t.Fatalf("a prototype is a global declaration, got %T", program.GDecls[0])
	}
	if _, ok := gd.Decls[0].Type.(*ast.FuncDecl); !ok {
		t.Fatalf("expected FuncDecl root, got %T", gd.Decls[0].Type)
	}
}

func TestMixedGlobals(t *testing.T) {
	input := `
int counter;
float scale = 1.5;

int main() {
	return 0;
}
`
	program := parseProgram(t, input)
	if len(program.GDecls) != 3 {
		t.Fatalf("expected 3 global declarations, got %d", len(program.GDecls))
	}
	if _, ok := program.GDecls[2].(*ast.FuncDef); !ok {
		t.Errorf("expected third gdecl to be a FuncDef, got %T", program.GDecls[2])
	}
}
