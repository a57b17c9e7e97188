package parser

import (
	"github.com/uclang/go-uc/internal/ast"
	"github.com/uclang/go-uc/pkg/token"
)

// typeModifyDecl tacks a type modifier onto a declarator and returns the
// modified declarator. Declarators are built inside-out: the modifier's
// innermost hole receives the existing declarator (or, when the declarator
// already carries modifiers, the modifier is spliced in just above the
// VarDecl leaf). The leaf is always the VarDecl carrying the identifier.
func typeModifyDecl(decl, modifier ast.Declarator) ast.Declarator {
	modifierTail := modifier
	for modifierTail.Inner() != nil {
		modifierTail = modifierTail.Inner()
	}

	if v, ok := decl.(*ast.VarDecl); ok {
		modifierTail.SetInner(v)
		return modifier
	}

	declTail := decl
	for {
		inner := declTail.Inner()
		if inner == nil {
			break
		}
		if _, ok := inner.(*ast.VarDecl); ok {
			break
		}
		declTail = inner
	}
	modifierTail.SetInner(declTail.Inner())
	declTail.SetInner(modifier)
	return decl
}

// fixDeclNameType plants the type specifier into the declarator chain's
// VarDecl leaf and hoists the declared name into the Decl. A missing
// specifier defaults the return type of a function declarator to int and is
// an error anywhere else.
func (p *Parser) fixDeclNameType(decl *ast.Decl, spec *ast.Type) *ast.Decl {
	leaf := ast.LeafVarDecl(decl.Type)
	if leaf == nil {
		p.errorAt(p.curToken)
		return nil
	}
	decl.Name = leaf.DeclName

	if spec == nil || len(spec.Names) == 0 {
		if _, ok := decl.Type.(*ast.FuncDecl); !ok {
			p.errorAt(leaf.DeclName.Token)
			return nil
		}
		leaf.Type = &ast.Type{Token: leaf.DeclName.Token, Names: []string{"int"}}
		return decl
	}

	leaf.Type = &ast.Type{Token: spec.Token, Names: []string{spec.Names[0]}}
	return decl
}

// buildDeclaration creates one Decl sharing the given specifier.
func (p *Parser) buildDeclaration(spec *ast.Type, declarator ast.Declarator, init ast.Expression) *ast.Decl {
	return p.fixDeclNameType(&ast.Decl{Type: declarator, Init: init}, spec)
}

// parseTypeSpecifier reads the current type keyword and advances past it.
func (p *Parser) parseTypeSpecifier() *ast.Type {
	spec := &ast.Type{Token: p.curToken, Names: []string{p.curToken.Literal}}
	p.nextToken()
	return spec
}

// parseDeclarator parses "pointer* direct_declarator". On return the
// current token is the first token after the declarator.
func (p *Parser) parseDeclarator() ast.Declarator {
	var ptrChain ast.Declarator
	var ptrTail *ast.PtrDecl
	for p.curTokenIs(token.TIMES) {
		ptr := &ast.PtrDecl{Token: p.curToken}
		if ptrChain == nil {
			ptrChain = ptr
		} else {
			ptrTail.SetInner(ptr)
		}
		ptrTail = ptr
		p.nextToken()
	}

	decl := p.parseDirectDeclarator()
	if decl == nil {
		return nil
	}
	if ptrChain != nil {
		decl = typeModifyDecl(decl, ptrChain)
	}
	return decl
}

// parseDirectDeclarator parses an identifier or parenthesized declarator,
// followed by any number of array and parameter-list suffixes.
func (p *Parser) parseDirectDeclarator() ast.Declarator {
	var decl ast.Declarator

	switch p.curToken.Type {
	case token.IDENT:
		id := &ast.ID{Token: p.curToken, Name: p.curToken.Literal}
		decl = &ast.VarDecl{DeclName: id}
		p.nextToken()
	case token.LPAREN:
		p.nextToken()
		decl = p.parseDeclarator()
		if decl == nil {
			return nil
		}
		if !p.expectCur(token.RPAREN) {
			return nil
		}
	default:
		p.errorAt(p.curToken)
		return nil
	}

	for {
		switch p.curToken.Type {
		case token.LBRACKET:
			arr := &ast.ArrayDecl{Token: p.curToken}
			p.nextToken()
			if !p.curTokenIs(token.RBRACKET) {
				dim := p.parseExpression(ASSIGN)
				if dim == nil {
					return nil
				}
				arr.Dim = dim
				if !p.expectPeek(token.RBRACKET) {
					return nil
				}
			}
			p.nextToken()
			decl = typeModifyDecl(decl, arr)
		case token.LPAREN:
			fn := p.parseFuncSuffix()
			if fn == nil {
				return nil
			}
			decl = typeModifyDecl(decl, fn)
		default:
			return decl
		}
	}
}

// parseFuncSuffix parses "( parameter_list_opt )" into a FuncDecl modifier.
func (p *Parser) parseFuncSuffix() *ast.FuncDecl {
	fn := &ast.FuncDecl{Token: p.curToken}
	p.nextToken()

	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
		return fn
	}

	params := &ast.ParamList{Token: p.curToken}
	for {
		if !p.curToken.Type.IsTypeSpecifier() {
			p.errorAt(p.curToken)
			return nil
		}
		spec := p.parseTypeSpecifier()
		declarator := p.parseDeclarator()
		if declarator == nil {
			return nil
		}
		d := p.buildDeclaration(spec, declarator, nil)
		if d == nil {
			return nil
		}
		params.Params = append(params.Params, d)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectCur(token.RPAREN) {
		return nil
	}
	fn.Args = params
	return fn
}

// parseInitializer parses a single initializer: an assignment expression or
// a brace-enclosed, possibly nested, comma list (trailing comma allowed).
// The current token ends on the initializer's last token.
func (p *Parser) parseInitializer() ast.Expression {
	if !p.curTokenIs(token.LBRACE) {
		return p.parseAssignmentExpression()
	}

	list := &ast.InitList{Token: p.curToken}
	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return list
	}
	p.nextToken()

	for {
		item := p.parseInitializer()
		if item == nil {
			return nil
		}
		list.Exprs = append(list.Exprs, item)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				p.nextToken()
				return list
			}
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return list
	}
}

// parseDeclarationLine parses "type_specifier init_declarator_list_opt ;"
// and returns the declarations. The current token ends after the semicolon.
func (p *Parser) parseDeclarationLine() []*ast.Decl {
	spec := p.parseTypeSpecifier()

	if p.curTokenIs(token.SEMI) {
		p.nextToken()
		return []*ast.Decl{}
	}

	var decls []*ast.Decl
	for {
		declarator := p.parseDeclarator()
		if declarator == nil {
			return nil
		}
		var init ast.Expression
		if p.curTokenIs(token.EQUALS) {
			p.nextToken()
			init = p.parseInitializer()
			if init == nil {
				return nil
			}
			p.nextToken()
		}
		d := p.buildDeclaration(spec, declarator, init)
		if d == nil {
			return nil
		}
		decls = append(decls, d)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectCur(token.SEMI) {
		return nil
	}
	return decls
}

// parseGlobalDeclaration parses one function definition or one global
// declaration line.
func (p *Parser) parseGlobalDeclaration() ast.Node {
	var spec *ast.Type
	if p.curToken.Type.IsTypeSpecifier() {
		spec = p.parseTypeSpecifier()
	}

	declarator := p.parseDeclarator()
	if declarator == nil {
		return nil
	}

	// A body (or K&R-style parameter declarations) after the declarator
	// makes this a function definition.
	if p.curTokenIs(token.LBRACE) || p.curToken.Type.IsTypeSpecifier() {
		return p.parseFuncDef(spec, declarator)
	}

	var decls []*ast.Decl
	first := declarator
	for {
		var init ast.Expression
		if p.curTokenIs(token.EQUALS) {
			p.nextToken()
			init = p.parseInitializer()
			if init == nil {
				return nil
			}
			p.nextToken()
		}
		d := p.buildDeclaration(spec, first, init)
		if d == nil {
			return nil
		}
		decls = append(decls, d)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			first = p.parseDeclarator()
			if first == nil {
				return nil
			}
			continue
		}
		break
	}
	if !p.expectCur(token.SEMI) {
		return nil
	}
	return &ast.GlobalDecl{Decls: decls}
}

// parseFuncDef parses the remainder of a function definition after its
// declarator: optional K&R parameter declarations, then the body.
func (p *Parser) parseFuncDef(spec *ast.Type, declarator ast.Declarator) ast.Node {
	if _, ok := declarator.(*ast.FuncDecl); !ok {
		p.errorAt(p.curToken)
		return nil
	}

	var paramDecls []*ast.Decl
	for p.curToken.Type.IsTypeSpecifier() && !p.aborted {
		ds := p.parseDeclarationLine()
		if ds == nil {
			return nil
		}
		paramDecls = append(paramDecls, ds...)
	}

	if !p.curTokenIs(token.LBRACE) {
		p.errorAt(p.curToken)
		return nil
	}
	body := p.parseCompound()
	if body == nil {
		return nil
	}

	d := p.buildDeclaration(spec, declarator, nil)
	if d == nil {
		return nil
	}
	return &ast.FuncDef{
		Spec:       ast.LeafVarDecl(d.Type).Type,
		Decl:       d,
		ParamDecls: paramDecls,
		Body:       body,
	}
}
