package errors

import (
	"strings"
	"testing"

	"github.com/uclang/go-uc/pkg/token"
)

func TestSemanticFormat(t *testing.T) {
	d := New(token.Position{Line: 3, Column: 7}, "cannot assign '%s' to '%s'.", "float", "int")
	want := "3:7 - cannot assign 'float' to 'int'."
	if d.Error() != want {
		t.Errorf("got %q, want %q", d.Error(), want)
	}
}

func TestLexicalFormat(t *testing.T) {
	d := NewLexical(token.Position{Line: 1, Column: 4}, "Illegal character '%c'", '$')
	want := "Lexical error: Illegal character '$' at 1:4"
	if d.Error() != want {
		t.Errorf("got %q, want %q", d.Error(), want)
	}
}

func TestSyntaxFormat(t *testing.T) {
	d := NewSyntax("Error near the symbol %s", ";")
	if d.Error() != "Error near the symbol ;" {
		t.Errorf("got %q", d.Error())
	}
	if d.HasPos {
		t.Error("syntax diagnostics carry no coordinate")
	}

	eof := NewSyntax("Error at the end of input")
	if eof.Error() != "Error at the end of input" {
		t.Errorf("got %q", eof.Error())
	}
}

func TestFormatWithCaret(t *testing.T) {
	source := "int x;\nx = y;\n"
	d := New(token.Position{Line: 2, Column: 5}, "'y' is not defined.")

	out := d.Format(source, false)
	if !strings.Contains(out, "2:5 - 'y' is not defined.") {
		t.Errorf("missing message in %q", out)
	}
	if !strings.Contains(out, "x = y;") {
		t.Errorf("missing source line in %q", out)
	}
	lines := strings.Split(out, "\n")
	var caretLine string
	for _, l := range lines {
		if strings.Contains(l, "^") {
			caretLine = l
		}
	}
	if caretLine == "" {
		t.Fatalf("missing caret in %q", out)
	}
	// The caret sits under column 5 plus the line-number gutter.
	if strings.Index(caretLine, "^") != len("   2 | ")+4 {
		t.Errorf("caret misplaced in %q", caretLine)
	}
}

func TestFormatOutOfRangeLine(t *testing.T) {
	d := New(token.Position{Line: 99, Column: 1}, "oops.")
	out := d.Format("one line only", false)
	if !strings.Contains(out, "99:1 - oops.") {
		t.Errorf("message missing in %q", out)
	}
	if strings.Contains(out, "|") {
		t.Errorf("no source context expected for out-of-range lines, got %q", out)
	}
}

func TestDiagnosticIsError(t *testing.T) {
	var err error = New(token.Position{Line: 1, Column: 1}, "boom.")
	if err.Error() == "" {
		t.Error("Diagnostic must implement error")
	}
}
