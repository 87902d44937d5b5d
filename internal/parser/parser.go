// Package parser builds the flint syntax tree from a token stream.
package parser

import (
	"context"
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/source"
	"flint/internal/token"
)

// TokenSource is anything that yields tokens: the lexer, or a token slice
// reader when re-parsing captured macro bodies.
type TokenSource interface {
	Next() token.Token
	Peek() token.Token
}

// Options configures a parse run.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint // 0 means no limit
}

type parser struct {
	src    TokenSource
	opts   Options
	errors uint
}

// ParseFile parses one source file into an ast.File.
// The tree is pre-expansion: macro invocations stay raw.
func ParseFile(ctx context.Context, file *source.File, src TokenSource, opts Options) *ast.File {
	p := &parser{src: src, opts: opts}
	out := &ast.File{Span: source.Span{File: file.ID, Start: 0, End: uint32(len(file.Content))}} //nolint:gosec // file sizes fit uint32

	for {
		if ctx.Err() != nil {
			return out
		}
		tok := p.src.Peek()
		if tok.Kind == token.EOF || p.tooManyErrors() {
			return out
		}
		it := p.parseItem()
		if it != nil {
			out.Items = append(out.Items, it)
		}
	}
}

// ParseExprList parses a comma-separated expression list from a token slice,
// as captured inside a macro invocation.
func ParseExprList(toks []token.Token, opts Options) ([]ast.Expr, bool) {
	p := &parser{src: NewTokenReader(toks), opts: opts}
	var out []ast.Expr
	if p.src.Peek().Kind == token.EOF {
		return out, true
	}
	for {
		e := p.parseExpr()
		if e == nil {
			return out, false
		}
		out = append(out, e)
		switch p.src.Peek().Kind {
		case token.Comma:
			p.src.Next()
		case token.EOF:
			return out, p.errors == 0
		default:
			p.errorAt(p.src.Peek(), diag.SynUnexpectedToken, "expected `,` between macro arguments")
			return out, false
		}
	}
}

func (p *parser) tooManyErrors() bool {
	return p.opts.MaxErrors > 0 && p.errors >= p.opts.MaxErrors
}

func (p *parser) errorAt(tok token.Token, code diag.Code, msg string) {
	p.errors++
	diag.ReportError(p.opts.Reporter, code, tok.Span, msg)
}

// expect consumes the next token and reports when its kind differs.
func (p *parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	tok := p.src.Next()
	if tok.Kind != kind {
		p.errorAt(tok, code, fmt.Sprintf("expected `%s`, found `%s`", kind, tok.Kind))
		return tok, false
	}
	return tok, true
}

// sync skips tokens until a statement or item boundary after an error.
func (p *parser) sync() {
	for {
		tok := p.src.Peek()
		switch tok.Kind {
		case token.EOF, token.RBrace, token.KwFn, token.KwStruct, token.KwUse:
			return
		case token.Semicolon:
			p.src.Next()
			return
		}
		p.src.Next()
	}
}
