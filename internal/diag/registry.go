package diag

// Registry maps diagnostic codes to their long-form explanations.
// It is built once per invocation, outside the pipeline, and handed to
// callbacks that want to document or rewrite diagnostics.
type Registry struct {
	descriptions map[Code]string
}

// NewRegistry returns a registry pre-populated with the built-in codes.
func NewRegistry() *Registry {
	r := &Registry{descriptions: make(map[Code]string, 32)}
	for code, text := range builtinDescriptions {
		r.descriptions[code] = text
	}
	return r
}

// Register adds or replaces the explanation for a code.
func (r *Registry) Register(code Code, text string) {
	r.descriptions[code] = text
}

// Describe returns the explanation for a code, if one is registered.
func (r *Registry) Describe(code Code) (string, bool) {
	text, ok := r.descriptions[code]
	return text, ok
}

// Len returns the number of registered codes.
func (r *Registry) Len() int {
	return len(r.descriptions)
}

var builtinDescriptions = map[Code]string{
	LexUnknownChar:        "the lexer met a byte that starts no token",
	LexUnterminatedString: "a string literal ran past the end of its line or file",
	LexBadNumber:          "a numeric literal could not be parsed",
	SynUnexpectedToken:    "the parser expected a different token here",
	SynUnclosedDelimiter:  "an opening bracket has no matching closer",
	SynExpectSemicolon:    "a statement must end with a semicolon",
	SynExpectIdent:        "an identifier was expected",
	SynMacroBody:          "a macro invocation body must be a balanced token sequence",
	ExpUnknownMacro:       "no expansion is known for this macro name",
	ExpBadArgList:         "the macro argument list could not be split into expressions",
	SemDuplicateFn:        "a function with this name is already defined",
	SemUnknownCall:        "the called function is not defined anywhere in the crate",
	SemDuplicateImport:    "this path is imported more than once",
	LowNoMain:             "linking an executable requires a `main` function",
}
