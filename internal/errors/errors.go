// Package errors provides diagnostic formatting for the uC compiler.
// Semantic diagnostics render as "line:col - message", lexical ones as
// "Lexical error: message at line:col", and syntax ones, which carry no
// coordinate, as the bare message; Format adds optional source context and
// a caret indicator for terminal output.
package errors

import (
	"fmt"
	"strings"

	"github.com/uclang/go-uc/pkg/token"
)

// Kind classifies a diagnostic by the pass that raised it.
type Kind int

const (
	// Lexical errors: illegal characters.
	Lexical Kind = iota
	// Syntax errors: unexpected token or premature end of input.
	Syntax
	// Semantic errors: scope, kind, type, arity, size and control-flow misuse.
	Semantic
)

// Diagnostic is a single fatal compiler error with its position.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     token.Position
	// HasPos is false for parser errors, which report the offending
	// symbol instead of a coordinate.
	HasPos bool
}

// New creates a semantic diagnostic at the given position.
func New(pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    Semantic,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		HasPos:  true,
	}
}

// NewLexical creates a lexical diagnostic at the given position.
func NewLexical(pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    Lexical,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
		HasPos:  true,
	}
}

// NewSyntax creates a parser diagnostic without a coordinate prefix.
func NewSyntax(format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Kind:    Syntax,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	switch d.Kind {
	case Lexical:
		return fmt.Sprintf("Lexical error: %s at %d:%d", d.Message, d.Pos.Line, d.Pos.Column)
	case Syntax:
		return d.Message
	default:
		return fmt.Sprintf("%d:%d - %s", d.Pos.Line, d.Pos.Column, d.Message)
	}
}

// Format renders the diagnostic with the offending source line and a caret.
// If color is true, ANSI color codes are used for terminal output.
func (d *Diagnostic) Format(source string, color bool) string {
	var sb strings.Builder

	sb.WriteString(d.Error())
	sb.WriteString("\n")

	if !d.HasPos {
		return sb.String()
	}

	line := sourceLine(source, d.Pos.Line)
	if line == "" {
		return sb.String()
	}

	prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")

	caretCol := d.Pos.Column
	if caretCol < 1 {
		caretCol = 1
	}
	sb.WriteString(strings.Repeat(" ", len(prefix)+caretCol-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")

	return sb.String()
}

// sourceLine extracts a 1-indexed line from the source text.
func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
