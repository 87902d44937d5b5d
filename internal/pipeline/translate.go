package pipeline

import (
	"context"
	"fmt"

	"flint/internal/ast"
	"flint/internal/ir"
)

// stepTranslate lowers the analyzed tree into IR. The tree is consumed: no
// later phase or callback ever sees it again.
func stepTranslate(_ context.Context, sess *Session, prev State) (State, error) {
	analyzed, ok := prev.(*Analyzed)
	if !ok {
		return nil, fmt.Errorf("translate: unexpected state %T", prev)
	}

	lw := &lowerer{module: &ir.Module{CrateName: sess.Opts.CrateName}}
	for _, it := range analyzed.Tree.Items {
		if fn, ok := it.(*ast.FnItem); ok {
			lw.lowerFn("", fn)
		}
	}
	return &Translated{IR: lw.module}, nil
}

type lowerer struct {
	module *ir.Module
	instrs []ir.Instr
}

func (lw *lowerer) emit(in ir.Instr) {
	lw.instrs = append(lw.instrs, in)
}

// lowerFn flattens a function (and its nested functions, under qualified
// names) into the module.
func (lw *lowerer) lowerFn(prefix string, fn *ast.FnItem) {
	name := fn.Name
	if prefix != "" {
		name = prefix + "::" + fn.Name
	}

	saved := lw.instrs
	lw.instrs = nil

	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Name)
	}
	if fn.Body != nil {
		lw.lowerBlock(name, fn.Body)
	}
	lw.emit(ir.Instr{Op: ir.OpRet})

	lw.module.Funcs = append(lw.module.Funcs, ir.Func{
		Name:   name,
		Params: params,
		Instrs: lw.instrs,
	})
	lw.instrs = saved
}

func (lw *lowerer) lowerBlock(fnName string, b *ast.Block) {
	for _, st := range b.Stmts {
		switch st := st.(type) {
		case *ast.LetStmt:
			lw.lowerExpr(st.Value)
			lw.emit(ir.Instr{Op: ir.OpStore, Text: st.Name})
		case *ast.ExprStmt:
			lw.lowerExpr(st.X)
		case *ast.ReturnStmt:
			if st.X != nil {
				lw.lowerExpr(st.X)
				lw.emit(ir.Instr{Op: ir.OpRet, N: 1})
			} else {
				lw.emit(ir.Instr{Op: ir.OpRet})
			}
		case *ast.ItemStmt:
			if nested, ok := st.It.(*ast.FnItem); ok {
				lw.lowerFn(fnName, nested)
			}
		}
	}
}

func (lw *lowerer) lowerExpr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.LitExpr:
		lw.emit(ir.Instr{Op: ir.OpConst, Text: e.Text})
	case *ast.IdentExpr:
		lw.emit(ir.Instr{Op: ir.OpLoad, Text: e.Name})
	case *ast.CallExpr:
		for _, arg := range e.Args {
			lw.lowerExpr(arg)
		}
		if callee, ok := e.Fn.(*ast.IdentExpr); ok {
			lw.emit(ir.Instr{Op: ir.OpCall, Text: callee.Name, N: uint32(len(e.Args))}) //nolint:gosec // arg counts are tiny
		} else {
			lw.lowerExpr(e.Fn)
			lw.emit(ir.Instr{Op: ir.OpCall, N: uint32(len(e.Args))}) //nolint:gosec // arg counts are tiny
		}
	case *ast.BinaryExpr:
		lw.lowerExpr(e.L)
		lw.lowerExpr(e.R)
		lw.emit(ir.Instr{Op: ir.OpBinary, Text: e.Op.String()})
	case *ast.ClosureExpr:
		// closures are not first-class in the IR yet; lowered as an
		// opaque constant so surrounding code keeps its shape
		lw.emit(ir.Instr{Op: ir.OpConst, Text: "<closure>"})
	}
}
