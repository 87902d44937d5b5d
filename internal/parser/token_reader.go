package parser

import "flint/internal/token"

// TokenReader replays a captured token slice as a TokenSource.
// It yields EOF forever once the slice is exhausted.
type TokenReader struct {
	toks []token.Token
	pos  int
}

func NewTokenReader(toks []token.Token) *TokenReader {
	return &TokenReader{toks: toks}
}

func (r *TokenReader) Next() token.Token {
	if r.pos >= len(r.toks) {
		return token.Token{Kind: token.EOF}
	}
	t := r.toks[r.pos]
	r.pos++
	return t
}

func (r *TokenReader) Peek() token.Token {
	if r.pos >= len(r.toks) {
		return token.Token{Kind: token.EOF}
	}
	return r.toks[r.pos]
}
