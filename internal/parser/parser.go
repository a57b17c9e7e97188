// Package parser implements the uC parser.
//
// Expressions are parsed with Pratt parsing over the language's precedence
// ladder; declarations are parsed with the classic inside-out declarator
// assembly (modifier stacking plus name/type fixing). The parser produces
// the AST consumed by the semantic analyzer; declarator chains always end
// in a VarDecl leaf carrying the declared identifier.
package parser

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/internal/errors"
	"github.com/uclang/go-uc/internal/lexer"
	"github.com/uclang/go-uc/pkg/token"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	SEQUENCE    // ,
	ASSIGN      // = += -= *= /= %=
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < <= > >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x, !x, *p, &x, ++x, (int)x
	CALL        // f(args), a[i], x++, x--
)

// precedences maps token types to their precedence levels.
var precedences = map[token.TokenType]int{
	token.COMMA:         SEQUENCE,
	token.EQUALS:        ASSIGN,
	token.PLUS_ASSIGN:   ASSIGN,
	token.MINUS_ASSIGN:  ASSIGN,
	token.TIMES_ASSIGN:  ASSIGN,
	token.DIVIDE_ASSIGN: ASSIGN,
	token.MOD_ASSIGN:    ASSIGN,
	token.OR:            OR,
	token.AND:           AND,
	token.EQ:            EQUALS,
	token.NOT_EQ:        EQUALS,
	token.LT:            LESSGREATER,
	token.LE:            LESSGREATER,
	token.GT:            LESSGREATER,
	token.GE:            LESSGREATER,
	token.PLUS:          SUM,
	token.MINUS:         SUM,
	token.TIMES:         PRODUCT,
	token.DIVIDE:        PRODUCT,
	token.MOD:           PRODUCT,
	token.LPAREN:        CALL,
	token.LBRACKET:      CALL,
	token.PLUSPLUS:      CALL,
	token.MINUSMINUS:    CALL,
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, calls, subscripts).
type infixParseFn func(ast.Expression) ast.Expression

// Parser represents the uC parser. The first syntax error is fatal: the
// parser records a single diagnostic and unwinds.
type Parser struct {
	l              *lexer.Lexer
	curToken       token.Token
	peekToken      token.Token
	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
	errs           []*errors.Diagnostic
	aborted        bool
}

// New creates a new Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:       p.parseIdentifier,
		token.INT_CONST:   p.parseIntConstant,
		token.FLOAT_CONST: p.parseFloatConstant,
		token.CHAR_CONST:  p.parseCharConstant,
		token.STRING:      p.parseStringConstant,
		token.LPAREN:      p.parseGroupedOrCast,
		token.PLUS:        p.parseUnary,
		token.MINUS:       p.parseUnary,
		token.NOT:         p.parseUnary,
		token.TIMES:       p.parseUnary,
		token.ADDRESS:     p.parseUnary,
		token.PLUSPLUS:    p.parsePrefixIncDec,
		token.MINUSMINUS:  p.parsePrefixIncDec,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:          p.parseBinaryOp,
		token.MINUS:         p.parseBinaryOp,
		token.TIMES:         p.parseBinaryOp,
		token.DIVIDE:        p.parseBinaryOp,
		token.MOD:           p.parseBinaryOp,
		token.EQ:            p.parseBinaryOp,
		token.NOT_EQ:        p.parseBinaryOp,
		token.LT:            p.parseBinaryOp,
		token.LE:            p.parseBinaryOp,
		token.GT:            p.parseBinaryOp,
		token.GE:            p.parseBinaryOp,
		token.AND:           p.parseBinaryOp,
		token.OR:            p.parseBinaryOp,
		token.EQUALS:        p.parseAssignment,
		token.PLUS_ASSIGN:   p.parseAssignment,
		token.MINUS_ASSIGN:  p.parseAssignment,
		token.TIMES_ASSIGN:  p.parseAssignment,
		token.DIVIDE_ASSIGN: p.parseAssignment,
		token.MOD_ASSIGN:    p.parseAssignment,
		token.LPAREN:        p.parseFuncCall,
		token.LBRACKET:      p.parseArrayRef,
		token.PLUSPLUS:      p.parsePostfixIncDec,
		token.MINUSMINUS:    p.parsePostfixIncDec,
		token.COMMA:         p.parseExprList,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parsing diagnostics (at most one; the first is fatal).
func (p *Parser) Errors() []*errors.Diagnostic {
	return p.errs
}

// LexerErrors returns the lexical diagnostics accumulated during scanning.
func (p *Parser) LexerErrors() []*errors.Diagnostic {
	return p.l.Errors()
}

// ParseProgram parses a whole translation unit. It returns nil if a syntax
// error was found; the diagnostic is available through Errors.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) && !p.aborted {
		gdecl := p.parseGlobalDeclaration()
		if gdecl == nil {
			return nil
		}
		program.GDecls = append(program.GDecls, gdecl)
	}
	if p.aborted {
		return nil
	}
	return program
}

// nextToken advances the token window.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances if the next token has the wanted type, and reports a
// syntax error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorAt(p.peekToken)
	return false
}

// expectCur checks the current token's type and advances past it.
func (p *Parser) expectCur(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorAt(p.curToken)
	return false
}

// errorAt records the single fatal syntax diagnostic for the given token.
func (p *Parser) errorAt(tok token.Token) {
	if p.aborted {
		return
	}
	p.aborted = true
	if tok.Type == token.EOF {
		p.errs = append(p.errs, errors.NewSyntax("Error at the end of input"))
		return
	}
	p.errs = append(p.errs, errors.NewSyntax("Error near the symbol %s", tok.Literal))
}

// curPrecedence returns the precedence of the current token.
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}
