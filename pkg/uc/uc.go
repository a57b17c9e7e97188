// Package uc is the embedding interface to the uC front-end: hand in a
// source text, receive the IR program or the first fatal diagnostic. The
// package reads and writes no files.
package uc

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/ir"
	"github.com/uclang/go-uc/internal/lexer"
	"github.com/uclang/go-uc/internal/parser"
	"github.com/uclang/go-uc/internal/semantic"
	"github.com/uclang/go-uc/pkg/token"
)

// Lex tokenizes the source and returns the token stream, or the first
// lexical diagnostic.
func Lex(source string) ([]token.Token, error) {
	l := lexer.New(source)
	toks := l.Tokenize()
	if errs := l.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return toks, nil
}

// Parse builds the AST for the source, or returns the first lexical or
// syntax diagnostic.
func Parse(source string) (*ast.Program, error) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.LexerErrors(); len(errs) > 0 {
		return nil, errs[0]
	}
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	if program == nil {
		return nil, pkgerrors.New("parse produced no program")
	}
	return program, nil
}

// Check parses and semantically analyzes the source, returning the
// decorated AST.
func Check(source string) (*ast.Program, error) {
	program, err := Parse(source)
	if err != nil {
		return nil, err
	}
	analyzer := semantic.NewAnalyzer()
	if err := analyzer.Analyze(program); err != nil {
		return nil, err
	}
	return program, nil
}

// Compile runs the full pipeline and returns the IR program.
func Compile(source string) (*ir.Program, error) {
	program, err := Check(source)
	if err != nil {
		return nil, err
	}
	gen := ir.NewGenerator()
	code := gen.Generate(program)
	if code == nil {
		return nil, pkgerrors.New("code generation produced no module")
	}
	return code, nil
}
