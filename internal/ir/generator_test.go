package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uclang/go-uc/internal/lexer"
	"github.com/uclang/go-uc/internal/parser"
	"github.com/uclang/go-uc/internal/semantic"
)

// generate runs the full front-end pipeline over input.
func generate(t *testing.T, input string) *Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse should succeed")
	require.NotNil(t, program)
	require.NoError(t, semantic.NewAnalyzer().Analyze(program))
	return NewGenerator().Generate(program)
}

func ops(instrs []Instr) []string {
	out := make([]string, len(instrs))
	for i, instr := range instrs {
		out[i] = instr.Op
	}
	return out
}

// containsSequence reports whether want appears in got as a subsequence.
func containsSequence(got, want []string) bool {
	j := 0
	for _, op := range got {
		if j < len(want) && op == want[j] {
			j++
		}
	}
	return j == len(want)
}

func TestScalarDeclarationAndPrint(t *testing.T) {
	module := generate(t, "int main() { int x; x = 3; print(x); return 0; }")

	require.Empty(t, module.Text)
	want := []Instr{
		NewInstr("define", "@main"),
		NewInstr("alloc_int", "%0"),
		NewInstr("alloc_int", "%2"),
		NewInstr("literal_int", int64(3), "%3"),
		NewInstr("store_int", "%3", "%2"),
		NewInstr("load_int", "%2", "%4"),
		NewInstr("print_int", "%4"),
		NewInstr("literal_int", int64(0), "%5"),
		NewInstr("store_int", "%5", "%0"),
		NewInstr("jump", "%1"),
		NewInstr("1"),
		NewInstr("load_int", "%0", "%6"),
		NewInstr("return_int", "%6"),
	}
	require.Equal(t, want, module.Code)
}

func TestGlobalArraySizeInference(t *testing.T) {
	module := generate(t, "int a[] = {1, 2, 3, 4};")

	require.Len(t, module.Text, 1)
	instr := module.Text[0]
	require.Equal(t, "global_int_4", instr.Op)
	require.Equal(t, "@a", instr.Args[0])
	require.Equal(t, []interface{}{int64(1), int64(2), int64(3), int64(4)}, instr.Args[1])
}

func TestGlobalScalarWithInitializer(t *testing.T) {
	module := generate(t, "int x = 7; float f;")

	require.Equal(t, NewInstr("global_int", "@x", int64(7)), module.Text[0])
	require.Equal(t, NewInstr("global_float", "@f"), module.Text[1])
}

func TestGlobalStringInitializer(t *testing.T) {
	module := generate(t, `char s[] = "hi";`)

	require.Len(t, module.Text, 1)
	require.Equal(t, "global_char_2", module.Text[0].Op)
	require.Equal(t, "@s", module.Text[0].Args[0])
	require.Equal(t, "hi", module.Text[0].Args[1])
}

func TestTwoDimensionalArrayRead(t *testing.T) {
	module := generate(t, `
int m[2][3];
int i;
int j;
int v;
void w() { v = m[i][j]; }
`)
	// The flat index is dim * i + j, fed to elem; the element loads
	// through the pointer before the final store.
	want := []string{
		"literal_int", "load_int", "mul_int",
		"load_int", "add_int", "elem_int",
		"load_int_*", "store_int",
	}
	require.True(t, containsSequence(ops(module.Code), want),
		"code was:\n%s", FormatProgram(module))

	var elem *Instr
	for i := range module.Code {
		if module.Code[i].Op == "elem_int" {
			elem = &module.Code[i]
		}
	}
	require.NotNil(t, elem)
	require.Equal(t, "@m", elem.Args[0], "elem base is the array symbol")
}

func TestWhileWithBreak(t *testing.T) {
	module := generate(t, `
void w() {
	int i;
	int n;
	int k;
	while (i < n) {
		if (i == k) break;
		i = i + 1;
	}
}
`)
	var cbranches []Instr
	var jumps []Instr
	for _, instr := range module.Code {
		switch instr.Op {
		case "cbranch":
			cbranches = append(cbranches, instr)
		case "jump":
			jumps = append(jumps, instr)
		}
	}
	require.Len(t, cbranches, 2, "one for the while, one for the if")

	// The first cbranch is the loop condition; break jumps to its exit.
	exit := cbranches[0].Args[2].(string)
	var breakJump bool
	for _, j := range jumps {
		if j.Args[0] == exit {
			breakJump = true
		}
	}
	require.True(t, breakJump, "break should jump to the loop exit label")

	// The exit label is defined exactly once.
	var defs int
	for _, instr := range module.Code {
		if instr.IsLabel() && "%"+instr.Op == exit {
			defs++
		}
	}
	require.Equal(t, 1, defs)
}

func TestAssertLowering(t *testing.T) {
	module := generate(t, "void w() { int x; x = 1; assert x < 0; }")

	var msg string
	for _, instr := range module.Text {
		if instr.Op == "global_string" {
			msg = instr.Args[1].(string)
		}
	}
	require.True(t, strings.HasPrefix(msg, "assertion_fail on "),
		"expected assertion_fail payload, got %q", msg)

	want := []string{"cbranch", "jump", "print_string", "jump"}
	require.True(t, containsSequence(ops(module.Code), want),
		"code was:\n%s", FormatProgram(module))
}

func TestFunctionParameters(t *testing.T) {
	module := generate(t, "int add(int a, int b) { return a + b; }")

	want := []Instr{
		NewInstr("define", "@add"),
		NewInstr("alloc_int", "%2"),
		NewInstr("alloc_int", "%3"),
		NewInstr("alloc_int", "%4"),
		NewInstr("store_int", "%0", "%2"),
		NewInstr("store_int", "%1", "%3"),
	}
	require.Equal(t, want, module.Code[:6],
		"parameter temps are reserved first, then allocas, return slot, then stores")
}

func TestFunctionCall(t *testing.T) {
	module := generate(t, `
int twice(int n) { return n + n; }
void w() {
	int r;
	r = twice(5);
}
`)
	var params, calls []Instr
	for _, instr := range module.Code {
		switch {
		case strings.HasPrefix(instr.Op, "param_"):
			params = append(params, instr)
		case instr.Op == "call":
			calls = append(calls, instr)
		}
	}
	require.Len(t, params, 1)
	require.Equal(t, "param_int", params[0].Op)
	require.Len(t, calls, 1)
	require.Equal(t, "@twice", calls[0].Args[0])
}

func TestCompoundAssignment(t *testing.T) {
	module := generate(t, "void w() { int x; x = 1; x += 2; }")

	want := []string{"literal_int", "load_int", "add_int", "store_int"}
	require.True(t, containsSequence(ops(module.Code), want),
		"compound assignment expands to load, op, store; code was:\n%s", FormatProgram(module))
}

func TestCastLowering(t *testing.T) {
	module := generate(t, `
void w() {
	int i;
	float f;
	i = 1;
	f = (float)i;
	i = (int)f;
}
`)
	codeOps := ops(module.Code)
	require.Contains(t, codeOps, "sitofp")
	require.Contains(t, codeOps, "fptosi")
}

func TestUnaryLowering(t *testing.T) {
	module := generate(t, `
void w() {
	int x;
	int y;
	x = 1;
	y = -x;
	x++;
	--y;
}
`)
	codeOps := ops(module.Code)
	require.Contains(t, codeOps, "sub_int")

	// Increment and decrement load a literal one and store back.
	want := []string{"literal_int", "add_int", "store_int", "literal_int", "sub_int", "store_int"}
	require.True(t, containsSequence(codeOps, want),
		"code was:\n%s", FormatProgram(module))
}

func TestPostfixKeepsOldValue(t *testing.T) {
	module := generate(t, "void w() { int i; int j; i = 1; j = i++; }")

	// j receives the value loaded before the increment: the store into j
	// reuses the pre-increment temporary.
	var loads, stores []Instr
	for _, instr := range module.Code {
		switch instr.Op {
		case "load_int":
			loads = append(loads, instr)
		case "store_int":
			stores = append(stores, instr)
		}
	}
	require.NotEmpty(t, loads)
	preValue := loads[0].Args[1]
	final := stores[len(stores)-1]
	require.Equal(t, preValue, final.Args[0], "postfix result is the pre-increment value")
}

func TestPrintForms(t *testing.T) {
	module := generate(t, `
void w() {
	int a;
	float b;
	a = 1;
	b = 2.0;
	print(a, b);
	print();
	print("done");
}
`)
	codeOps := ops(module.Code)
	require.Contains(t, codeOps, "print_int")
	require.Contains(t, codeOps, "print_float")
	require.Contains(t, codeOps, "print_void")
	require.Contains(t, codeOps, "print_string")
}

func TestReadLowering(t *testing.T) {
	module := generate(t, "void w() { int x; int v[3]; read(x, v[1]); }")

	want := []string{"read_int", "store_int", "read_int", "elem_int"}
	codeOps := ops(module.Code)
	for _, op := range want {
		require.Contains(t, codeOps, op)
	}
	// The array-element store goes through the element pointer.
	require.True(t, containsSequence(codeOps, []string{"elem_int", "read_int", "store_int_*"}),
		"code was:\n%s", FormatProgram(module))
}

func TestForLoopLowering(t *testing.T) {
	module := generate(t, `
void w() {
	int s;
	s = 0;
	for (int i = 0; i < 3; i++) {
		s = s + i;
	}
}
`)
	codeOps := ops(module.Code)
	require.Contains(t, codeOps, "cbranch")
	require.Contains(t, codeOps, "jump")
	// The loop variable is allocated in the var_decl sweep, before any
	// body store.
	firstStore := -1
	lastAlloc := -1
	for i, op := range codeOps {
		if strings.HasPrefix(op, "alloc_") {
			lastAlloc = i
		}
		if strings.HasPrefix(op, "store_") && firstStore == -1 {
			firstStore = i
		}
	}
	require.Greater(t, firstStore, lastAlloc, "all allocas precede any store")
}

func TestVoidFunctionReturn(t *testing.T) {
	module := generate(t, "void w() { return; }")

	codeOps := ops(module.Code)
	require.Equal(t, "return_void", codeOps[len(codeOps)-1])
	require.NotContains(t, codeOps, "return_int")
}

// Every temporary is defined at most once.
func TestSingleAssignmentProperty(t *testing.T) {
	module := generate(t, `
int g = 3;
int add(int a, int b) { return a + b; }
int main() {
	int i;
	int s;
	s = 0;
	for (i = 0; i < 10; i++) {
		if (i == 5) s += add(i, g);
	}
	print(s);
	return s;
}
`)
	seen := make(map[string]bool)
	for _, instr := range module.Code {
		// Temporaries are namespaced per function.
		if instr.Op == "define" {
			seen = make(map[string]bool)
			continue
		}
		for _, def := range defsOf(instr) {
			if !strings.HasPrefix(def, "%") {
				continue
			}
			require.False(t, seen[def], "temporary %s defined twice", def)
			seen[def] = true
		}
	}
}

// defsOf returns the operands an instruction defines.
func defsOf(instr Instr) []string {
	op := instr.Op
	argStr := func(i int) []string {
		if i < len(instr.Args) {
			if s, ok := instr.Args[i].(string); ok {
				return []string{s}
			}
		}
		return nil
	}
	switch {
	case strings.HasPrefix(op, "alloc_"), strings.HasPrefix(op, "read_"):
		return argStr(0)
	case strings.HasPrefix(op, "literal_"), strings.HasPrefix(op, "load_"),
		op == "call", op == "fptosi", op == "sitofp", strings.HasPrefix(op, "get_"),
		strings.HasPrefix(op, "not_"):
		return argStr(1)
	case strings.HasPrefix(op, "add_"), strings.HasPrefix(op, "sub_"),
		strings.HasPrefix(op, "mul_"), strings.HasPrefix(op, "div_"),
		strings.HasPrefix(op, "mod_"), strings.HasPrefix(op, "eq_"),
		strings.HasPrefix(op, "ne_"), strings.HasPrefix(op, "lt_"),
		strings.HasPrefix(op, "gt_"), strings.HasPrefix(op, "le_"),
		strings.HasPrefix(op, "ge_"), strings.HasPrefix(op, "and_"),
		strings.HasPrefix(op, "or_"), strings.HasPrefix(op, "elem_"):
		return argStr(2)
	}
	return nil
}

// Exactly one return tuple per function body, preceded by the exit label.
func TestSingleReturnPerFunction(t *testing.T) {
	module := generate(t, `
int f(int n) {
	if (n < 0) return 0;
	return n;
}
`)
	var returns int
	var labelBefore bool
	for i, instr := range module.Code {
		if strings.HasPrefix(instr.Op, "return_") {
			returns++
			labelBefore = i >= 2 && module.Code[i-2].IsLabel()
		}
	}
	require.Equal(t, 1, returns, "early returns lower to jumps, not extra return tuples")
	require.True(t, labelBefore, "the exit label precedes the return sequence")
}

func TestModuleEmissionOrder(t *testing.T) {
	module := generate(t, `
int g = 1;
void w() { print("x"); }
`)
	flat := ops(module.Flat())
	var defineAt, globalAt, strAt int
	for i, op := range flat {
		switch op {
		case "define":
			defineAt = i
		case "global_int":
			globalAt = i
		case "global_string":
			strAt = i
		}
	}
	require.Less(t, globalAt, defineAt, "globals precede function bodies")
	require.Less(t, strAt, defineAt, "string literals precede function bodies")
}
