// Package ast defines the flint syntax tree and its traversal.
//
// The tree is produced by the parser before macro expansion: macro
// invocations appear as MacroExpr nodes holding their raw token sequence,
// not as structured call sites.
package ast

import (
	"strings"

	"flint/internal/source"
	"flint/internal/token"
)

// Node is any syntax tree node.
type Node interface {
	node()
}

// Item is a top-level (or nested) declaration.
type Item interface {
	Node
	item()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

// Path is a `::`-separated name such as std::println.
type Path struct {
	Segments []string
	Span     source.Span
}

func (p Path) String() string {
	return strings.Join(p.Segments, "::")
}

// Last returns the final segment, or "" for an empty path.
func (p Path) Last() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// File is the root of one parsed source file.
type File struct {
	Items []Item
	Span  source.Span
}

// FnItem is a function declaration.
type FnItem struct {
	Name    string
	NameSpn source.Span
	Params  []Param
	Ret     *Path // nil when the fn returns nothing
	Body    *Block
	Span    source.Span
}

// Param is one formal parameter of a fn or closure.
type Param struct {
	Name string
	Type *Path // nil in closures
	Span source.Span
}

// StructItem is a struct declaration.
type StructItem struct {
	Name   string
	Fields []Field
	Span   source.Span
}

// Field is one struct field.
type Field struct {
	Name string
	Type Path
	Span source.Span
}

// UseItem is an import declaration; Glob marks `use path::*`.
type UseItem struct {
	Path Path
	Glob bool
	Span source.Span
}

// Block is a braced statement list.
type Block struct {
	Stmts []Stmt
	Span  source.Span
}

// LetStmt binds a value to a name.
type LetStmt struct {
	Name  string
	Value Expr
	Span  source.Span
}

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	X    Expr
	Span source.Span
}

// ReturnStmt returns from the enclosing fn; X may be nil.
type ReturnStmt struct {
	X    Expr
	Span source.Span
}

// ItemStmt nests an item (typically a fn) inside a block.
type ItemStmt struct {
	It   Item
	Span source.Span
}

// IdentExpr is a bare name reference.
type IdentExpr struct {
	Name string
	Span source.Span
}

// LitExpr is an integer, string, or boolean literal.
type LitExpr struct {
	Kind token.Kind
	Text string
	Span source.Span
}

// CallExpr is a function call.
type CallExpr struct {
	Fn   Expr
	Args []Expr
	Span source.Span
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Op   token.Kind
	L, R Expr
	Span source.Span
}

// ClosureExpr is a |params| body closure.
type ClosureExpr struct {
	Params []Param
	Body   Expr
	Span   source.Span
}

// MacroExpr is an unexpanded macro invocation: path!(tokens...).
// Tokens holds the raw balanced token sequence between the delimiters.
type MacroExpr struct {
	Path   Path
	Tokens []token.Token
	Span   source.Span
}

func (*File) node()        {}
func (*FnItem) node()      {}
func (*StructItem) node()  {}
func (*UseItem) node()     {}
func (*Block) node()       {}
func (*LetStmt) node()     {}
func (*ExprStmt) node()    {}
func (*ReturnStmt) node()  {}
func (*ItemStmt) node()    {}
func (*IdentExpr) node()   {}
func (*LitExpr) node()     {}
func (*CallExpr) node()    {}
func (*BinaryExpr) node()  {}
func (*ClosureExpr) node() {}
func (*MacroExpr) node()   {}

func (*FnItem) item()     {}
func (*StructItem) item() {}
func (*UseItem) item()    {}

func (*LetStmt) stmt()    {}
func (*ExprStmt) stmt()   {}
func (*ReturnStmt) stmt() {}
func (*ItemStmt) stmt()   {}

func (*IdentExpr) expr()   {}
func (*LitExpr) expr()     {}
func (*CallExpr) expr()    {}
func (*BinaryExpr) expr()  {}
func (*ClosureExpr) expr() {}
func (*MacroExpr) expr()   {}
