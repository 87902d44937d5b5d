package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"struct": KwStruct,
	"use":    KwUse,
	"let":    KwLet,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword resolves an identifier spelling to its keyword kind,
// or returns Ident when the spelling is not reserved.
func LookupKeyword(spelling string) Kind {
	if kind, ok := keywords[spelling]; ok {
		return kind
	}
	return Ident
}
