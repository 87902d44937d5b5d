package parser

import (
	"context"
	"testing"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lexer"
	"flint/internal/source"
	"flint/internal/token"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.fl", []byte(src)))
	bag := diag.NewBag(50)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: adapter.Reporter()})
	tree := ParseFile(context.Background(), file, lx, Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	if tree == nil {
		t.Fatal("ParseFile returned nil")
	}
	return tree, bag
}

func mustFn(t *testing.T, item ast.Item) *ast.FnItem {
	t.Helper()
	fn, ok := item.(*ast.FnItem)
	if !ok {
		t.Fatalf("item is %T, want *ast.FnItem", item)
	}
	return fn
}

func TestParseFnItem(t *testing.T) {
	tree, bag := parseSource(t, "fn add(a: int, b: int) -> int { return a + b; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(tree.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(tree.Items))
	}
	fn := mustFn(t, tree.Items[0])
	if fn.Name != "add" {
		t.Fatalf("name = %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].Type == nil || fn.Params[0].Type.String() != "int" {
		t.Fatalf("param type = %v", fn.Params[0].Type)
	}
	if fn.Ret == nil || fn.Ret.String() != "int" {
		t.Fatalf("return type = %v", fn.Ret)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("body stmts = %d, want 1", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("stmt is %T, want return", fn.Body.Stmts[0])
	}
	bin, ok := ret.X.(*ast.BinaryExpr)
	if !ok || bin.Op != token.Plus {
		t.Fatalf("return value = %#v, want a + b", ret.X)
	}
}

func TestParseStructItem(t *testing.T) {
	tree, bag := parseSource(t, `
struct Point {
    x: int,
    y: int,
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	st, ok := tree.Items[0].(*ast.StructItem)
	if !ok {
		t.Fatalf("item is %T, want struct", tree.Items[0])
	}
	if st.Name != "Point" || len(st.Fields) != 2 {
		t.Fatalf("struct = %+v", st)
	}
	if st.Fields[1].Name != "y" {
		t.Fatalf("field 1 = %+v", st.Fields[1])
	}
}

func TestParseUseItems(t *testing.T) {
	tree, bag := parseSource(t, "use std::io;\nuse std::fmt::*;\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	plain := tree.Items[0].(*ast.UseItem)
	if plain.Path.String() != "std::io" || plain.Glob {
		t.Fatalf("first use = %+v", plain)
	}
	glob := tree.Items[1].(*ast.UseItem)
	if glob.Path.String() != "std::fmt" || !glob.Glob {
		t.Fatalf("second use = %+v", glob)
	}
}

func TestParsePrecedence(t *testing.T) {
	tree, bag := parseSource(t, "fn main() { let x = 1 + 2 * 3; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	let := mustFn(t, tree.Items[0]).Body.Stmts[0].(*ast.LetStmt)
	add, ok := let.Value.(*ast.BinaryExpr)
	if !ok || add.Op != token.Plus {
		t.Fatalf("top op = %#v, want +", let.Value)
	}
	mul, ok := add.R.(*ast.BinaryExpr)
	if !ok || mul.Op != token.Star {
		t.Fatalf("right op = %#v, want *", add.R)
	}
}

func TestParseMacroCapturesRawTokens(t *testing.T) {
	tree, bag := parseSource(t, `fn main() { println!("sum", 1 + 2, f(3)); }`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	stmt := mustFn(t, tree.Items[0]).Body.Stmts[0].(*ast.ExprStmt)
	macro, ok := stmt.X.(*ast.MacroExpr)
	if !ok {
		t.Fatalf("expr is %T, want macro", stmt.X)
	}
	if macro.Path.String() != "println" {
		t.Fatalf("macro path = %q", macro.Path)
	}
	// "sum" , 1 + 2 , f ( 3 ) with the inner parens kept balanced and raw
	if len(macro.Tokens) != 10 {
		t.Fatalf("captured %d tokens, want 10: %v", len(macro.Tokens), macro.Tokens)
	}
	if macro.Tokens[0].Kind != token.StringLit {
		t.Fatalf("first captured token = %v", macro.Tokens[0])
	}
}

func TestParseNestedFn(t *testing.T) {
	tree, bag := parseSource(t, "fn outer() { fn inner(x) {} }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	outer := mustFn(t, tree.Items[0])
	item, ok := outer.Body.Stmts[0].(*ast.ItemStmt)
	if !ok {
		t.Fatalf("stmt is %T, want item stmt", outer.Body.Stmts[0])
	}
	inner := mustFn(t, item.It)
	if inner.Name != "inner" || len(inner.Params) != 1 {
		t.Fatalf("inner = %+v", inner)
	}
}

func TestParseClosure(t *testing.T) {
	tree, bag := parseSource(t, "fn main() { let f = |a, b| a + b; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	let := mustFn(t, tree.Items[0]).Body.Stmts[0].(*ast.LetStmt)
	closure, ok := let.Value.(*ast.ClosureExpr)
	if !ok {
		t.Fatalf("value is %T, want closure", let.Value)
	}
	if len(closure.Params) != 2 {
		t.Fatalf("closure params = %d, want 2", len(closure.Params))
	}
	if _, ok := closure.Body.(*ast.BinaryExpr); !ok {
		t.Fatalf("closure body = %#v", closure.Body)
	}
}

func TestParseErrorRecovery(t *testing.T) {
	tree, bag := parseSource(t, `
use ;
fn fine() {}
`)
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	// the parser must reach the second item despite the first being broken
	found := false
	for _, item := range tree.Items {
		if fn, ok := item.(*ast.FnItem); ok && fn.Name == "fine" {
			found = true
		}
	}
	if !found {
		t.Fatalf("recovery lost the following item, items: %v", tree.Items)
	}
}

func TestParseNonIdentRuneTerminates(t *testing.T) {
	// a non-identifier rune at top level must not stall recovery
	tree, bag := parseSource(t, "€\nfn fine() {}")
	if !bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	found := false
	for _, item := range tree.Items {
		if fn, ok := item.(*ast.FnItem); ok && fn.Name == "fine" {
			found = true
		}
	}
	if !found {
		t.Fatalf("recovery lost the following item, items: %v", tree.Items)
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	_, bag := parseSource(t, "fn main() { let x = 1 }")
	if !bag.HasErrors() {
		t.Fatal("expected a missing-semicolon diagnostic")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectSemicolon {
			found = true
		}
	}
	if !found {
		t.Fatalf("no SynExpectSemicolon in %v", bag.Items())
	}
}

func TestParseExprList(t *testing.T) {
	toks := lexTokens(t, `"sum", 1 + 2, f(3)`)
	exprs, ok := ParseExprList(toks, Options{})
	if !ok {
		t.Fatal("ParseExprList failed")
	}
	if len(exprs) != 3 {
		t.Fatalf("exprs = %d, want 3", len(exprs))
	}
	if _, isLit := exprs[0].(*ast.LitExpr); !isLit {
		t.Fatalf("expr 0 = %T, want literal", exprs[0])
	}
	if _, isBin := exprs[1].(*ast.BinaryExpr); !isBin {
		t.Fatalf("expr 1 = %T, want binary", exprs[1])
	}
	if _, isCall := exprs[2].(*ast.CallExpr); !isCall {
		t.Fatalf("expr 2 = %T, want call", exprs[2])
	}
}

func TestParseExprListEmpty(t *testing.T) {
	exprs, ok := ParseExprList(nil, Options{})
	if !ok || len(exprs) != 0 {
		t.Fatalf("empty list: exprs=%v ok=%v", exprs, ok)
	}
}

func lexTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("frag.fl", []byte(src)))
	lx := lexer.New(file, lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}
