package parser

import (
	"testing"

	"github.com/uclang/go-uc/internal/lexer"
)

func parseError(t *testing.T, input string) string {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if program != nil {
		t.Fatalf("expected parse failure for %q", input)
	}
	errs := p.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(errs))
	}
	return errs[0].Error()
}

func TestErrorNearSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"int x = ;", "Error near the symbol ;"},
		{"int 5;", "Error near the symbol 5"},
		{"void f() { if x) y = 1; }", "Error near the symbol x"},
		{"void f() { x = 1 }", "Error near the symbol }"},
		{"int a[3;", "Error near the symbol ;"},
	}

	for i, tt := range tests {
		if got := parseError(t, tt.input); got != tt.expected {
			t.Errorf("tests[%d] %q - got %q, want %q", i, tt.input, got, tt.expected)
		}
	}
}

func TestErrorAtEndOfInput(t *testing.T) {
	tests := []string{
		"int x",
		"void f() {",
		"int main() { return 0;",
	}

	for i, input := range tests {
		if got := parseError(t, input); got != "Error at the end of input" {
			t.Errorf("tests[%d] %q - got %q", i, input, got)
		}
	}
}

// The first syntax error is fatal; no error cascade is reported.
func TestSingleFatalError(t *testing.T) {
	p := New(lexer.New("int x = ; int y = ;"))
	p.ParseProgram()
	if len(p.Errors()) != 1 {
		t.Fatalf("expected a single diagnostic, got %d", len(p.Errors()))
	}
}
