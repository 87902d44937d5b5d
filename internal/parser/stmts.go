package parser

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/token"
)

func (p *parser) parseBlock() *ast.Block {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken)
	if !ok {
		p.sync()
		return nil
	}
	block := &ast.Block{Span: open.Span}
	for {
		tok := p.src.Peek()
		if tok.Kind == token.RBrace || tok.Kind == token.EOF || p.tooManyErrors() {
			break
		}
		st := p.parseStmt()
		if st != nil {
			block.Stmts = append(block.Stmts, st)
		}
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter)
	block.Span = block.Span.Cover(end.Span)
	return block
}

func (p *parser) parseStmt() ast.Stmt {
	tok := p.src.Peek()
	switch tok.Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwFn:
		// nested function definition
		fn := p.parseFn()
		if fn == nil {
			return nil
		}
		return &ast.ItemStmt{It: fn, Span: fn.Span}
	default:
		expr := p.parseExpr()
		if expr == nil {
			p.sync()
			return nil
		}
		end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
		return &ast.ExprStmt{X: expr, Span: end.Span}
	}
}

func (p *parser) parseLet() ast.Stmt {
	kw := p.src.Next() // let
	name, ok := p.expect(token.Ident, diag.SynExpectIdent)
	if !ok {
		p.sync()
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
		p.sync()
		return nil
	}
	value := p.parseExpr()
	if value == nil {
		p.sync()
		return nil
	}
	end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	return &ast.LetStmt{Name: name.Text, Value: value, Span: kw.Span.Cover(end.Span)}
}

func (p *parser) parseReturn() ast.Stmt {
	kw := p.src.Next() // return
	ret := &ast.ReturnStmt{Span: kw.Span}
	if p.src.Peek().Kind != token.Semicolon {
		ret.X = p.parseExpr()
		if ret.X == nil {
			p.sync()
			return ret
		}
	}
	end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	ret.Span = ret.Span.Cover(end.Span)
	return ret
}
