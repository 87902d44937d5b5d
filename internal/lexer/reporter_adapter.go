package lexer

import (
	"flint/internal/diag"
	"flint/internal/source"
)

// ReporterAdapter bridges the lexer's thin Reporter to diag codes and a Bag.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns the lexer-facing reporter.
func (r *ReporterAdapter) Reporter() Reporter {
	return bagReporter{bag: r.Bag}
}

type bagReporter struct {
	bag *diag.Bag
}

func (r bagReporter) Report(kind string, span source.Span, msg string) {
	if r.bag == nil {
		return
	}
	code := diag.LexUnknownChar
	switch kind {
	case "unterminated-string":
		code = diag.LexUnterminatedString
	case "bad-number":
		code = diag.LexBadNumber
	}
	r.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  span,
	})
}
