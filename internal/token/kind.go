package token

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota
	// Bad marks a byte sequence the lexer could not classify.
	Bad

	Ident
	IntLit
	StringLit

	// keywords
	KwFn
	KwStruct
	KwUse
	KwLet
	KwReturn
	KwTrue
	KwFalse

	// punctuation and operators
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Colon
	ColonColon
	Semicolon
	Arrow
	Bang
	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Dot
	Pipe
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Bad:        "Bad",
	Ident:      "Ident",
	IntLit:     "IntLit",
	StringLit:  "StringLit",
	KwFn:       "fn",
	KwStruct:   "struct",
	KwUse:      "use",
	KwLet:      "let",
	KwReturn:   "return",
	KwTrue:     "true",
	KwFalse:    "false",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	Comma:      ",",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Arrow:      "->",
	Bang:       "!",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Dot:        ".",
	Pipe:       "|",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
