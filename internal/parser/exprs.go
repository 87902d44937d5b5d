package parser

import (
	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/token"
)

// binding powers for binary operators, higher binds tighter
func binaryPower(kind token.Kind) int {
	switch kind {
	case token.Plus, token.Minus:
		return 1
	case token.Star, token.Slash, token.Percent:
		return 2
	default:
		return 0
	}
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

func (p *parser) parseBinary(minPower int) ast.Expr {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}
	for {
		op := p.src.Peek()
		power := binaryPower(op.Kind)
		if power < minPower {
			return left
		}
		p.src.Next()
		right := p.parseBinary(power + 1)
		if right == nil {
			return left
		}
		left = &ast.BinaryExpr{Op: op.Kind, L: left, R: right, Span: op.Span}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	tok := p.src.Peek()
	switch tok.Kind {
	case token.IntLit, token.StringLit, token.KwTrue, token.KwFalse:
		p.src.Next()
		return &ast.LitExpr{Kind: tok.Kind, Text: tok.Text, Span: tok.Span}
	case token.Pipe:
		return p.parseClosure()
	case token.LParen:
		p.src.Next()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter)
		return inner
	case token.Ident:
		return p.parsePathExpr()
	default:
		p.errorAt(tok, diag.SynUnexpectedToken, "expected expression")
		p.src.Next()
		return nil
	}
}

func (p *parser) parseClosure() ast.Expr {
	open := p.src.Next() // |
	closure := &ast.ClosureExpr{Span: open.Span}
	closure.Params = p.parseParams(token.Pipe)
	if _, ok := p.expect(token.Pipe, diag.SynUnclosedDelimiter); !ok {
		return closure
	}
	closure.Body = p.parseExpr()
	return closure
}

// parsePathExpr parses a path and its continuation: a macro invocation
// `path!(...)`, a call `path(...)`, or a bare reference.
func (p *parser) parsePathExpr() ast.Expr {
	path := p.parsePath()

	switch p.src.Peek().Kind {
	case token.Bang:
		p.src.Next()
		return p.parseMacro(path)
	case token.LParen:
		p.src.Next()
		call := &ast.CallExpr{
			Fn:   &ast.IdentExpr{Name: path.String(), Span: path.Span},
			Span: path.Span,
		}
		for p.src.Peek().Kind != token.RParen && p.src.Peek().Kind != token.EOF {
			arg := p.parseExpr()
			if arg == nil {
				break
			}
			call.Args = append(call.Args, arg)
			if p.src.Peek().Kind != token.Comma {
				break
			}
			p.src.Next()
		}
		end, _ := p.expect(token.RParen, diag.SynUnclosedDelimiter)
		call.Span = call.Span.Cover(end.Span)
		return call
	default:
		return &ast.IdentExpr{Name: path.String(), Span: path.Span}
	}
}

// parseMacro captures the balanced token sequence of `path!( ... )`.
// The contents stay raw: this runs before expansion, so nested invocations
// are plain tokens here.
func (p *parser) parseMacro(path ast.Path) ast.Expr {
	open, ok := p.expect(token.LParen, diag.SynMacroBody)
	if !ok {
		p.sync()
		return nil
	}
	macro := &ast.MacroExpr{Path: path, Span: path.Span.Cover(open.Span)}

	depth := 1
	for {
		tok := p.src.Next()
		switch tok.Kind {
		case token.EOF:
			p.errorAt(tok, diag.SynUnclosedDelimiter, "macro invocation is not closed")
			return macro
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				macro.Span = macro.Span.Cover(tok.Span)
				return macro
			}
		}
		macro.Tokens = append(macro.Tokens, tok)
	}
}
