package parser

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/pkg/token"
)

// parseExpression is the Pratt core: parse a prefix expression, then fold
// in infix operators while the next token binds tighter than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorAt(p.curToken)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

// parseAssignmentExpression parses one expression without crossing commas.
func (p *Parser) parseAssignmentExpression() ast.Expression {
	return p.parseExpression(SEQUENCE)
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.ID{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseIntConstant() ast.Expression {
	return &ast.Constant{Token: p.curToken, RawType: "int"}
}

func (p *Parser) parseFloatConstant() ast.Expression {
	return &ast.Constant{Token: p.curToken, RawType: "float"}
}

func (p *Parser) parseCharConstant() ast.Expression {
	return &ast.Constant{Token: p.curToken, RawType: "char"}
}

func (p *Parser) parseStringConstant() ast.Expression {
	return &ast.Constant{Token: p.curToken, RawType: "string"}
}

// parseGroupedOrCast disambiguates "(expr)" from "(type) expr" by looking
// at the token after the opening parenthesis.
func (p *Parser) parseGroupedOrCast() ast.Expression {
	lparen := p.curToken

	if p.peekToken.Type.IsTypeSpecifier() {
		p.nextToken()
		toType := &ast.Type{Token: p.curToken, Names: []string{p.curToken.Literal}}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		p.nextToken()
		expr := p.parseExpression(PREFIX)
		if expr == nil {
			return nil
		}
		return &ast.Cast{Token: lparen, ToType: toType, Expr: expr}
	}

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

// parseUnary parses the unary operators + - ! * &.
func (p *Parser) parseUnary() ast.Expression {
	tok := p.curToken
	p.nextToken()
	expr := p.parseExpression(PREFIX)
	if expr == nil {
		return nil
	}
	return &ast.UnaryOp{Token: tok, Op: tok.Literal, Expr: expr}
}

// parsePrefixIncDec parses prefix ++ and --.
func (p *Parser) parsePrefixIncDec() ast.Expression {
	tok := p.curToken
	p.nextToken()
	expr := p.parseExpression(PREFIX)
	if expr == nil {
		return nil
	}
	return &ast.UnaryOp{Token: tok, Op: tok.Literal, Expr: expr}
}

// parsePostfixIncDec parses postfix ++ and --, recorded as p++ / p--.
func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	return &ast.UnaryOp{Token: p.curToken, Op: "p" + p.curToken.Literal, Expr: left}
}

func (p *Parser) parseBinaryOp(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.BinaryOp{Token: tok, Op: tok.Literal, Left: left, Right: right}
}

// parseAssignment parses the right-associative assignment operators.
func (p *Parser) parseAssignment(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(ASSIGN - 1)
	if right == nil {
		return nil
	}
	return &ast.Assignment{Token: tok, Op: tok.Literal, LValue: left, RValue: right}
}

// parseFuncCall parses "callee(args)"; the callee must be an identifier.
func (p *Parser) parseFuncCall(left ast.Expression) ast.Expression {
	name, ok := left.(*ast.ID)
	if !ok {
		p.errorAt(p.curToken)
		return nil
	}
	tok := p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.FuncCall{Token: tok, Name: name}
	}

	p.nextToken()
	args := p.parseExpression(LOWEST)
	if args == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.FuncCall{Token: tok, Name: name, Args: args}
}

// parseArrayRef parses one subscript: "base[index]".
func (p *Parser) parseArrayRef(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	subscript := p.parseExpression(LOWEST)
	if subscript == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.ArrayRef{Token: tok, Name: left, Subscript: subscript}
}

// parseExprList folds comma-joined expressions into a single ExprList.
func (p *Parser) parseExprList(left ast.Expression) ast.Expression {
	list, ok := left.(*ast.ExprList)
	if !ok {
		list = &ast.ExprList{Token: p.curToken, Exprs: []ast.Expression{left}}
	}
	p.nextToken()
	next := p.parseExpression(SEQUENCE)
	if next == nil {
		return nil
	}
	list.Exprs = append(list.Exprs, next)
	return list
}
