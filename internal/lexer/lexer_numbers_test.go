package lexer

import (
	"testing"

	"github.com/uclang/go-uc/pkg/token"
)

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input           string
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{"0", token.INT_CONST, "0"},
		{"123", token.INT_CONST, "123"},
		{"123.45", token.FLOAT_CONST, "123.45"},
		// The float rule is tried before the integer rule.
		{"12.", token.FLOAT_CONST, "12."},
		{".5", token.FLOAT_CONST, ".5"},
		{"0.0", token.FLOAT_CONST, "0.0"},
	}

	for i, tt := range tests {
		tok := New(tt.input).NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("tests[%d] %q - tokentype wrong. expected=%q, got=%q",
				i, tt.input, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Errorf("tests[%d] %q - literal wrong. expected=%q, got=%q",
				i, tt.input, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestFloatThenPunctuation(t *testing.T) {
	l := New("x = 1.5;")
	expected := []struct {
		typ token.TokenType
		lit string
	}{
		{token.IDENT, "x"},
		{token.EQUALS, "="},
		{token.FLOAT_CONST, "1.5"},
		{token.SEMI, ";"},
	}
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want.typ || tok.Literal != want.lit {
			t.Fatalf("tests[%d] - expected (%q, %q), got (%q, %q)",
				i, want.typ, want.lit, tok.Type, tok.Literal)
		}
	}
}

func TestTrailingDotFloatInExpression(t *testing.T) {
	l := New("y = 2. + 1;")
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if toks[2].Type != token.FLOAT_CONST || toks[2].Literal != "2." {
		t.Fatalf("expected FLOAT_CONST \"2.\", got %q %q", toks[2].Type, toks[2].Literal)
	}
	if toks[3].Type != token.PLUS {
		t.Fatalf("expected PLUS after float, got %q", toks[3].Type)
	}
}
