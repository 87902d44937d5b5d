package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"flint/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

// ASCII fast-path for identifiers; Unicode goes through the rune classifiers.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	return r, sz
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	text := lx.textFrom(start)
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: lx.spanFrom(start),
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && (isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_') {
		lx.cursor.Bump()
	}
	// a trailing identifier char makes the literal malformed: 12abc
	if !lx.cursor.EOF() && isIdentStartByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.spanFrom(start)
		lx.report("bad-number", sp, "malformed numeric literal")
		return token.Token{Kind: token.Bad, Span: sp, Text: lx.textFrom(start)}
	}
	return token.Token{Kind: token.IntLit, Span: lx.spanFrom(start), Text: lx.textFrom(start)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case '"':
			return token.Token{Kind: token.StringLit, Span: lx.spanFrom(start), Text: lx.textFrom(start)}
		case '\n':
			sp := lx.spanFrom(start)
			lx.report("unterminated-string", sp, "string literal is not terminated")
			return token.Token{Kind: token.Bad, Span: sp, Text: lx.textFrom(start)}
		}
	}
	sp := lx.spanFrom(start)
	lx.report("unterminated-string", sp, "string literal is not terminated")
	return token.Token{Kind: token.Bad, Span: sp, Text: lx.textFrom(start)}
}

// scanBadRune consumes one non-ASCII rune that cannot start any token.
// Invalid UTF-8 decodes as RuneError with size 1, so even a lone bad
// byte advances the cursor.
func (lx *Lexer) scanBadRune() token.Token {
	start := lx.cursor.Off
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.spanFrom(start)
	lx.report("unknown-char", sp, fmt.Sprintf("unexpected character %q", r))
	return token.Token{Kind: token.Bad, Span: sp, Text: lx.textFrom(start)}
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Off
	b := lx.cursor.Bump()

	var kind token.Kind
	switch b {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '!':
		kind = token.Bang
	case '=':
		kind = token.Assign
	case '+':
		kind = token.Plus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '.':
		kind = token.Dot
	case '|':
		kind = token.Pipe
	case ':':
		if lx.cursor.Peek() == ':' {
			lx.cursor.Bump()
			kind = token.ColonColon
		} else {
			kind = token.Colon
		}
	case '-':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			kind = token.Arrow
		} else {
			kind = token.Minus
		}
	default:
		sp := lx.spanFrom(start)
		lx.report("unknown-char", sp, fmt.Sprintf("unexpected character %q", b))
		return token.Token{Kind: token.Bad, Span: sp, Text: lx.textFrom(start)}
	}
	return token.Token{Kind: kind, Span: lx.spanFrom(start), Text: lx.textFrom(start)}
}
