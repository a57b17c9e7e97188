package parser

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/pkg/token"
)

// parseCompound parses "{ block_item* }". Block items are declarations or
// statements; blocks do not open scopes. The current token ends after the
// closing brace.
func (p *Parser) parseCompound() *ast.Compound {
	c := &ast.Compound{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) && !p.aborted {
		if p.curToken.Type.IsTypeSpecifier() {
			decls := p.parseDeclarationLine()
			if decls == nil {
				return nil
			}
			for _, d := range decls {
				c.BlockItems = append(c.BlockItems, d)
			}
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		c.BlockItems = append(c.BlockItems, stmt)
	}

	if !p.expectCur(token.RBRACE) {
		return nil
	}
	return c
}

// parseStatement parses one statement. The current token ends after the
// statement's final token (its semicolon or closing brace).
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LBRACE:
		c := p.parseCompound()
		if c == nil {
			return nil
		}
		return c
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.ASSERT:
		return p.parseAssertStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.READ:
		return p.parseReadStatement()
	case token.SEMI:
		s := &ast.EmptyStatement{Token: p.curToken}
		p.nextToken()
		return s
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	stmt, ok := expr.(ast.Statement)
	if !ok {
		p.errorAt(p.curToken)
		return nil
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.If{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.IfTrue = p.parseStatement()
	if stmt.IfTrue == nil {
		return nil
	}
	// else binds to the nearest if.
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.IfFalse = p.parseStatement()
		if stmt.IfFalse == nil {
			return nil
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.While{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if stmt.Cond == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Stmt = p.parseStatement()
	if stmt.Stmt == nil {
		return nil
	}
	return stmt
}

// parseForStatement parses both for-loop forms: with an expression
// initializer and with a declaration initializer. The declaration form
// opens a scope during semantic analysis; the parser wraps it in DeclList.
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.For{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()

	switch {
	case p.curToken.Type.IsTypeSpecifier():
		tok := p.curToken
		decls := p.parseDeclarationLine()
		if decls == nil {
			return nil
		}
		stmt.Init = &ast.DeclList{Token: tok, Decls: decls}
	case p.curTokenIs(token.SEMI):
		p.nextToken()
	default:
		init := p.parseExpression(LOWEST)
		if init == nil {
			return nil
		}
		stmt.Init = init
		if !p.expectPeek(token.SEMI) {
			return nil
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.SEMI) {
		stmt.Cond = p.parseExpression(LOWEST)
		if stmt.Cond == nil {
			return nil
		}
		if !p.expectPeek(token.SEMI) {
			return nil
		}
	}
	p.nextToken()

	if !p.curTokenIs(token.RPAREN) {
		stmt.Next = p.parseExpression(LOWEST)
		if stmt.Next == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}
	p.nextToken()

	stmt.Stmt = p.parseStatement()
	if stmt.Stmt == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.Break{Token: p.curToken}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.Return{Token: p.curToken}
	if p.peekTokenIs(token.SEMI) {
		p.nextToken()
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if stmt.Expr == nil {
		return nil
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	return stmt
}

func (p *Parser) parseAssertStatement() ast.Statement {
	stmt := &ast.Assert{Token: p.curToken}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if stmt.Expr == nil {
		return nil
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.Print{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		stmt.Expr = p.parseExpression(LOWEST)
		if stmt.Expr == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	return stmt
}

func (p *Parser) parseReadStatement() ast.Statement {
	stmt := &ast.Read{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if stmt.Expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	p.nextToken()
	return stmt
}
