package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"flint/internal/diag"
	"flint/internal/ir"
	"flint/internal/source"
)

// executable image header; the rest of the file is the msgpack object
var imageMagic = []byte("FLX1")

// stepCodeGen serializes the IR into an object file under the output dir.
func stepCodeGen(_ context.Context, sess *Session, prev State) (State, error) {
	translated, ok := prev.(*Translated)
	if !ok {
		return nil, fmt.Errorf("codegen: unexpected state %T", prev)
	}

	entry := ""
	if _, hasMain := translated.IR.Lookup("main"); hasMain {
		entry = "main"
	}
	obj := ir.NewObjectFile(translated.IR, entry)
	path, err := obj.WriteFile(sess.Opts.OutDir)
	if err != nil {
		return nil, fmt.Errorf("write object: %w", err)
	}
	return &Generated{Object: obj, ObjectPath: path}, nil
}

// stepLink produces the final executable image from the object.
func stepLink(_ context.Context, sess *Session, prev State) (State, error) {
	generated, ok := prev.(*Generated)
	if !ok {
		return nil, fmt.Errorf("link: unexpected state %T", prev)
	}
	obj := generated.Object

	if obj.Entry == "" {
		diag.ReportError(sess.Reporter(), diag.LowNoMain, source.Span{},
			fmt.Sprintf("crate `%s` has no `main` function", obj.CrateName))
		return nil, fmt.Errorf("no entry point")
	}

	outName := sess.Opts.OutFile
	if outName == "" {
		outName = obj.CrateName
	}
	outPath := filepath.Join(sess.Opts.OutDir, outName)

	data, err := obj.Encode()
	if err != nil {
		return nil, err
	}
	image := append(append([]byte{}, imageMagic...), data...)
	if err := os.WriteFile(outPath, image, 0o755); err != nil { //nolint:gosec // the image is the executable output
		return nil, fmt.Errorf("write output: %w", err)
	}
	return &Linked{OutputPath: outPath}, nil
}
