package parser

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/token"
)

func (p *parser) parseItem() ast.Item {
	tok := p.src.Peek()
	switch tok.Kind {
	case token.KwFn:
		return p.parseFn()
	case token.KwStruct:
		return p.parseStruct()
	case token.KwUse:
		return p.parseUse()
	default:
		p.errorAt(tok, diag.SynUnexpectedToken, "expected `fn`, `struct`, or `use` at top level")
		p.src.Next()
		p.sync()
		return nil
	}
}

func (p *parser) parseFn() *ast.FnItem {
	kw := p.src.Next() // fn
	name, ok := p.expect(token.Ident, diag.SynExpectIdent)
	if !ok {
		p.sync()
		return nil
	}
	fn := &ast.FnItem{Name: name.Text, NameSpn: name.Span, Span: kw.Span}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); !ok {
		p.sync()
		return nil
	}
	fn.Params = p.parseParams(token.RParen)
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter); !ok {
		p.sync()
		return nil
	}

	if p.src.Peek().Kind == token.Arrow {
		p.src.Next()
		ret := p.parsePath()
		fn.Ret = &ret
	}

	fn.Body = p.parseBlock()
	if fn.Body != nil {
		fn.Span = fn.Span.Cover(fn.Body.Span)
	}
	return fn
}

// parseParams reads a comma-separated parameter list up to (not including) stop.
func (p *parser) parseParams(stop token.Kind) []ast.Param {
	var params []ast.Param
	for {
		tok := p.src.Peek()
		if tok.Kind == stop || tok.Kind == token.EOF {
			return params
		}
		name, ok := p.expect(token.Ident, diag.SynExpectIdent)
		if !ok {
			p.sync()
			return params
		}
		param := ast.Param{Name: name.Text, Span: name.Span}
		if p.src.Peek().Kind == token.Colon {
			p.src.Next()
			ty := p.parsePath()
			param.Type = &ty
			param.Span = param.Span.Cover(ty.Span)
		}
		params = append(params, param)
		if p.src.Peek().Kind != token.Comma {
			return params
		}
		p.src.Next()
	}
}

func (p *parser) parseStruct() *ast.StructItem {
	kw := p.src.Next() // struct
	name, ok := p.expect(token.Ident, diag.SynExpectIdent)
	if !ok {
		p.sync()
		return nil
	}
	st := &ast.StructItem{Name: name.Text, Span: kw.Span.Cover(name.Span)}

	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken); !ok {
		p.sync()
		return nil
	}
	for {
		tok := p.src.Peek()
		if tok.Kind == token.RBrace || tok.Kind == token.EOF {
			break
		}
		fieldName, ok := p.expect(token.Ident, diag.SynExpectIdent)
		if !ok {
			p.sync()
			return st
		}
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
			p.sync()
			return st
		}
		ty := p.parsePath()
		st.Fields = append(st.Fields, ast.Field{
			Name: fieldName.Text,
			Type: ty,
			Span: fieldName.Span.Cover(ty.Span),
		})
		if p.src.Peek().Kind == token.Comma {
			p.src.Next()
		}
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedDelimiter)
	st.Span = st.Span.Cover(end.Span)
	return st
}

func (p *parser) parseUse() *ast.UseItem {
	kw := p.src.Next() // use
	use := &ast.UseItem{Span: kw.Span}

	name, ok := p.expect(token.Ident, diag.SynExpectIdent)
	if !ok {
		p.sync()
		return nil
	}
	use.Path = ast.Path{Segments: []string{name.Text}, Span: name.Span}
	for p.src.Peek().Kind == token.ColonColon {
		p.src.Next()
		next := p.src.Next()
		switch next.Kind {
		case token.Ident:
			use.Path.Segments = append(use.Path.Segments, next.Text)
			use.Path.Span = use.Path.Span.Cover(next.Span)
		case token.Star:
			use.Glob = true
			use.Span = use.Span.Cover(next.Span)
		default:
			p.errorAt(next, diag.SynExpectIdent, "expected identifier or `*` after `::`")
			p.sync()
			return use
		}
		if use.Glob {
			break
		}
	}
	end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	use.Span = use.Span.Cover(end.Span)
	return use
}

// parsePath reads Ident ("::" Ident)*.
func (p *parser) parsePath() ast.Path {
	name, ok := p.expect(token.Ident, diag.SynExpectIdent)
	if !ok {
		return ast.Path{Span: name.Span}
	}
	path := ast.Path{Segments: []string{name.Text}, Span: name.Span}
	for p.src.Peek().Kind == token.ColonColon {
		p.src.Next()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdent)
		if !ok {
			return path
		}
		path.Segments = append(path.Segments, seg.Text)
		path.Span = path.Span.Cover(seg.Span)
	}
	return path
}
