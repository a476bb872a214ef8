// Package parser is a minimal recursive-descent COOL parser: just enough
// grammar to hand internal/checker a populated internal/ast tree. A
// Parser struct holds a token cursor and one parseX method per grammar
// production, accumulating an errors slice instead of panicking on
// malformed input. Expression parsing is a straight precedence-climbing
// ladder rather than a combinator-based Pratt parser, since COOL's
// operator grammar is small and fixed enough that the extra generality
// wouldn't earn its keep.
package parser

import (
	"fmt"

	"github.com/cool-lang/coolc/internal/ast"
	"github.com/cool-lang/coolc/internal/lexer"
)

// Error is a syntax error location plus message, cheap enough that the
// parser doesn't need its own closed error-type hierarchy the way
// checker.Error does for semantic diagnostics.
type Error struct {
	Span    ast.Span
	Message string
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.Span.Start, e.Message) }

type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []Error
}

// New tokenizes source eagerly (ScanAll) rather than lazily, since COOL
// programs are small and this keeps the parser itself allocation-free
// aside from the AST it builds.
func New(source *ast.Source) *Parser {
	return &Parser{tokens: lexer.New(source).ScanAll()}
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peek(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(kind lexer.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) expect(kind lexer.Kind, what string) lexer.Token {
	if p.cur().Kind == kind {
		return p.advance()
	}
	p.errorf(p.cur().Span, "expected %s", what)
	return p.cur()
}

func (p *Parser) errorf(span ast.Span, format string, args ...interface{}) {
	p.errors = append(p.errors, Error{Span: span, Message: fmt.Sprintf(format, args...)})
}

// Errors returns every syntax error accumulated during Parse.
func (p *Parser) Errors() []Error { return p.errors }

// Parse consumes the whole token stream as a sequence of `class ... ;`
// declarations.
func (p *Parser) Parse() *ast.Program {
	var classes []*ast.ClassDecl
	for !p.at(lexer.EOF) {
		classes = append(classes, p.parseClass())
		if p.at(lexer.Semi) {
			p.advance()
		} else {
			p.errorf(p.cur().Span, "expected ';' after class definition")
			p.recoverToNextClass()
		}
	}
	return &ast.Program{Classes: classes}
}

// recoverToNextClass skips tokens until the next plausible class boundary,
// so one malformed class doesn't cascade into spurious errors for every
// class that follows it.
func (p *Parser) recoverToNextClass() {
	for !p.at(lexer.EOF) && !p.at(lexer.Class) {
		p.advance()
	}
}

func (p *Parser) ident() *ast.Ident {
	tok := p.cur()
	if tok.Kind != lexer.TypeID && tok.Kind != lexer.ObjectID {
		p.errorf(tok.Span, "expected identifier")
		return ast.NewIdent("", tok.Span)
	}
	p.advance()
	return ast.NewIdent(tok.Text, tok.Span)
}

func (p *Parser) parseClass() *ast.ClassDecl {
	start := p.cur().Span
	p.expect(lexer.Class, "'class'")
	name := p.ident()

	var parent *ast.Ident
	if p.at(lexer.Inherits) {
		p.advance()
		parent = p.ident()
	}

	p.expect(lexer.LBrace, "'{'")
	var features []ast.Feature
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		features = append(features, p.parseFeature())
		p.expect(lexer.Semi, "';' after feature")
	}
	end := p.cur().Span
	p.expect(lexer.RBrace, "'}'")

	return ast.NewClassDecl(name, parent, features, ast.MergeSpans(start, end))
}

func (p *Parser) parseFeature() ast.Feature {
	start := p.cur().Span
	name := p.ident()

	if p.at(lexer.LParen) {
		p.advance()
		var params []*ast.Param
		for !p.at(lexer.RParen) && !p.at(lexer.EOF) {
			pname := p.ident()
			p.expect(lexer.Colon, "':'")
			ptype := p.ident()
			params = append(params, ast.NewParam(pname, ptype, pname.Span()))
			if p.at(lexer.Comma) {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.RParen, "')'")
		p.expect(lexer.Colon, "':'")
		ret := p.ident()
		p.expect(lexer.LBrace, "'{'")
		body := p.parseExpr()
		end := p.cur().Span
		p.expect(lexer.RBrace, "'}'")
		return ast.NewFuncDecl(name, params, ret, body, ast.MergeSpans(start, end))
	}

	p.expect(lexer.Colon, "':'")
	typ := p.ident()
	var init ast.Expr
	arrow := ast.Span{}
	if p.at(lexer.Assign) {
		arrow = p.cur().Span
		p.advance()
		init = p.parseExpr()
	}
	return ast.NewAttrDecl(name, typ, init, arrow, ast.MergeSpans(start, typ.Span()))
}

// parseExpr is the entry point for every expression-position production,
// and also the `<-` assignment production, the lowest-precedence level of
// COOL's operator grammar.
func (p *Parser) parseExpr() ast.Expr {
	if (p.at(lexer.ObjectID)) && p.peek(1).Kind == lexer.Assign {
		name := p.ident()
		arrowSpan := p.cur().Span
		p.advance()
		value := p.parseExpr()
		return ast.NewAssign(name, value, ast.MergeSpans(name.Span(), arrowSpan))
	}
	return p.parseNot()
}

func (p *Parser) parseNot() ast.Expr {
	if p.at(lexer.Not) {
		start := p.cur().Span
		p.advance()
		val := p.parseNot()
		return ast.NewNot(val, ast.MergeSpans(start, val.Span()))
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdd()
	switch p.cur().Kind {
	case lexer.Less:
		sym := p.cur().Span
		p.advance()
		right := p.parseAdd()
		return ast.NewComparison(ast.LessThan, left, right, sym, ast.MergeSpans(left.Span(), right.Span()))
	case lexer.LessEqual:
		sym := p.cur().Span
		p.advance()
		right := p.parseAdd()
		return ast.NewComparison(ast.LessThanEqual, left, right, sym, ast.MergeSpans(left.Span(), right.Span()))
	case lexer.Equal:
		p.advance()
		right := p.parseAdd()
		return ast.NewEqual(left, right, ast.MergeSpans(left.Span(), right.Span()))
	}
	return left
}

func (p *Parser) parseAdd() ast.Expr {
	left := p.parseMul()
	for p.at(lexer.Plus) || p.at(lexer.Minus) {
		op := ast.Add
		if p.at(lexer.Minus) {
			op = ast.Sub
		}
		sym := p.cur().Span
		p.advance()
		right := p.parseMul()
		left = ast.NewArithmetic(op, left, right, sym, ast.MergeSpans(left.Span(), right.Span()))
	}
	return left
}

func (p *Parser) parseMul() ast.Expr {
	left := p.parseIsVoid()
	for p.at(lexer.Star) || p.at(lexer.Slash) {
		op := ast.Mul
		if p.at(lexer.Slash) {
			op = ast.Div
		}
		sym := p.cur().Span
		p.advance()
		right := p.parseIsVoid()
		left = ast.NewArithmetic(op, left, right, sym, ast.MergeSpans(left.Span(), right.Span()))
	}
	return left
}

func (p *Parser) parseIsVoid() ast.Expr {
	if p.at(lexer.IsVoid) {
		start := p.cur().Span
		p.advance()
		val := p.parseIsVoid()
		return ast.NewIsVoid(val, ast.MergeSpans(start, val.Span()))
	}
	return p.parseUnaryMinus()
}

func (p *Parser) parseUnaryMinus() ast.Expr {
	if p.at(lexer.Tilde) {
		start := p.cur().Span
		p.advance()
		val := p.parseUnaryMinus()
		return ast.NewComplement(val, ast.MergeSpans(start, val.Span()))
	}
	return p.parseDispatch()
}

// parseDispatch handles postfix `@Type.method(args)` / `.method(args)`
// chains applied to a primary expression, COOL's two highest-precedence
// operators.
func (p *Parser) parseDispatch() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.at(lexer.At):
			p.advance()
			castType := p.ident()
			p.expect(lexer.Dot, "'.'")
			method := p.ident()
			args := p.parseArgs()
			expr = ast.NewFunctionCall(expr, castType, method, args, ast.MergeSpans(expr.Span(), method.Span()))
		case p.at(lexer.Dot):
			p.advance()
			method := p.ident()
			args := p.parseArgs()
			expr = ast.NewFunctionCall(expr, nil, method, args, ast.MergeSpans(expr.Span(), method.Span()))
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	p.expect(lexer.LParen, "'('")
	var args []ast.Expr
	for !p.at(lexer.RParen) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpr())
		if p.at(lexer.Comma) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RParen, "')'")
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.cur()
	switch tok.Kind {
	case lexer.IntConst:
		p.advance()
		return ast.NewIntLit(tok.Int, tok.Span)
	case lexer.StrConst:
		p.advance()
		return ast.NewStringLit(tok.Text, tok.Span)
	case lexer.BoolConst:
		p.advance()
		return ast.NewBoolLit(tok.Bool, tok.Span)
	case lexer.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(lexer.RParen, "')'")
		return inner
	case lexer.LBrace:
		return p.parseBlock()
	case lexer.If:
		return p.parseIf()
	case lexer.While:
		return p.parseWhile()
	case lexer.Let:
		return p.parseLet()
	case lexer.Case:
		return p.parseCase()
	case lexer.New:
		start := p.cur().Span
		p.advance()
		typ := p.ident()
		return ast.NewNew(typ, ast.MergeSpans(start, typ.Span()))
	case lexer.ObjectID:
		name := p.ident()
		if p.at(lexer.LParen) {
			args := p.parseArgs()
			return ast.NewMemberCall(name, args, name.Span())
		}
		return ast.NewId(name.Name, name.Span())
	}

	p.errorf(tok.Span, "unexpected token in expression")
	p.advance()
	return ast.NewId("", tok.Span)
}

func (p *Parser) parseBlock() ast.Expr {
	start := p.cur().Span
	p.expect(lexer.LBrace, "'{'")
	var exprs []ast.Expr
	for !p.at(lexer.RBrace) && !p.at(lexer.EOF) {
		exprs = append(exprs, p.parseExpr())
		p.expect(lexer.Semi, "';'")
	}
	end := p.cur().Span
	p.expect(lexer.RBrace, "'}'")
	return ast.NewBlock(exprs, ast.MergeSpans(start, end))
}

func (p *Parser) parseIf() ast.Expr {
	start := p.cur().Span
	p.advance()
	cond := p.parseExpr()
	p.expect(lexer.Then, "'then'")
	then := p.parseExpr()
	p.expect(lexer.Else, "'else'")
	els := p.parseExpr()
	end := p.cur().Span
	p.expect(lexer.Fi, "'fi'")
	return ast.NewIf(cond, then, els, start, ast.MergeSpans(start, end))
}

func (p *Parser) parseWhile() ast.Expr {
	start := p.cur().Span
	p.advance()
	cond := p.parseExpr()
	p.expect(lexer.Loop, "'loop'")
	body := p.parseExpr()
	end := p.cur().Span
	p.expect(lexer.Pool, "'pool'")
	return ast.NewWhile(cond, body, start, ast.MergeSpans(start, end))
}

func (p *Parser) parseLet() ast.Expr {
	start := p.cur().Span
	p.advance()
	var bindings []*ast.LetBinding
	for {
		name := p.ident()
		p.expect(lexer.Colon, "':'")
		typ := p.ident()
		var init ast.Expr
		arrow := ast.Span{}
		if p.at(lexer.Assign) {
			arrow = p.cur().Span
			p.advance()
			init = p.parseExpr()
		}
		bindings = append(bindings, ast.NewLetBinding(name, typ, init, arrow, ast.MergeSpans(name.Span(), typ.Span())))
		if p.at(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.In, "'in'")
	body := p.parseExpr()
	return ast.NewLetIn(bindings, body, ast.MergeSpans(start, body.Span()))
}

func (p *Parser) parseCase() ast.Expr {
	start := p.cur().Span
	p.advance()
	subject := p.parseExpr()
	p.expect(lexer.Of, "'of'")

	var branches []*ast.CaseBranch
	for !p.at(lexer.Esac) && !p.at(lexer.EOF) {
		name := p.ident()
		p.expect(lexer.Colon, "':'")
		typ := p.ident()
		p.expect(lexer.DArrow, "'=>'")
		body := p.parseExpr()
		p.expect(lexer.Semi, "';'")
		branches = append(branches, ast.NewCaseBranch(name, typ, body, ast.MergeSpans(name.Span(), body.Span())))
	}
	end := p.cur().Span
	p.expect(lexer.Esac, "'esac'")
	return ast.NewCaseOf(subject, branches, ast.MergeSpans(start, end))
}
