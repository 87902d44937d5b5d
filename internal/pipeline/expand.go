package pipeline

import (
	"context"
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/parser"
)

// macros the expander knows how to rewrite into runtime calls
var knownMacros = map[string]string{
	"println": "println",
	"print":   "print",
	"format":  "format",
}

// stepExpand rewrites macro invocations into plain calls, consuming the
// parse-phase tree.
func stepExpand(_ context.Context, sess *Session, prev State) (State, error) {
	parsed, ok := prev.(*Parsed)
	if !ok {
		return nil, fmt.Errorf("expand: unexpected state %T", prev)
	}
	ex := &expander{reporter: sess.Reporter()}
	ex.rewriteFile(parsed.Tree)
	return &Expanded{Tree: parsed.Tree}, nil
}

type expander struct {
	reporter diag.Reporter
}

func (ex *expander) rewriteFile(f *ast.File) {
	for _, it := range f.Items {
		ex.rewriteItem(it)
	}
}

func (ex *expander) rewriteItem(it ast.Item) {
	if fn, ok := it.(*ast.FnItem); ok && fn.Body != nil {
		ex.rewriteBlock(fn.Body)
	}
}

func (ex *expander) rewriteBlock(b *ast.Block) {
	for _, st := range b.Stmts {
		switch st := st.(type) {
		case *ast.LetStmt:
			st.Value = ex.rewriteExpr(st.Value)
		case *ast.ExprStmt:
			st.X = ex.rewriteExpr(st.X)
		case *ast.ReturnStmt:
			if st.X != nil {
				st.X = ex.rewriteExpr(st.X)
			}
		case *ast.ItemStmt:
			ex.rewriteItem(st.It)
		}
	}
}

func (ex *expander) rewriteExpr(e ast.Expr) ast.Expr {
	switch e := e.(type) {
	case *ast.MacroExpr:
		return ex.expandMacro(e)
	case *ast.CallExpr:
		e.Fn = ex.rewriteExpr(e.Fn)
		for i, arg := range e.Args {
			e.Args[i] = ex.rewriteExpr(arg)
		}
		return e
	case *ast.BinaryExpr:
		e.L = ex.rewriteExpr(e.L)
		e.R = ex.rewriteExpr(e.R)
		return e
	case *ast.ClosureExpr:
		e.Body = ex.rewriteExpr(e.Body)
		return e
	default:
		return e
	}
}

// expandMacro replaces path!(tokens) with a call to the runtime function of
// the same name. The captured tokens are parsed into the argument list only
// now, at expansion time.
func (ex *expander) expandMacro(m *ast.MacroExpr) ast.Expr {
	target, known := knownMacros[m.Path.Last()]
	if !known {
		diag.ReportError(ex.reporter, diag.ExpUnknownMacro, m.Span,
			fmt.Sprintf("unknown macro `%s!`", m.Path))
		target = m.Path.Last()
	}

	args, ok := parser.ParseExprList(m.Tokens, parser.Options{Reporter: ex.reporter})
	if !ok {
		diag.ReportError(ex.reporter, diag.ExpBadArgList, m.Span,
			fmt.Sprintf("cannot parse arguments of `%s!`", m.Path))
	}
	for i, arg := range args {
		args[i] = ex.rewriteExpr(arg)
	}

	return &ast.CallExpr{
		Fn:   &ast.IdentExpr{Name: target, Span: m.Path.Span},
		Args: args,
		Span: m.Span,
	}
}
