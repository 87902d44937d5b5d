package pipeline

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/source"
)

func stepMissing(_ context.Context, _ *Session, _ State) (State, error) {
	return nil, fmt.Errorf("no production step installed")
}

// stepParse loads the input and produces the unexpanded syntax tree.
func stepParse(ctx context.Context, sess *Session, _ State) (State, error) {
	var fileID source.FileID
	switch in := sess.Input.(type) {
	case FileInput:
		id, err := sess.Files.Load(in.Path)
		if err != nil {
			return nil, err
		}
		fileID = id
	case SourceInput:
		name := in.Name
		if name == "" {
			name = "<input>"
		}
		fileID = sess.Files.AddVirtual(name, in.Source)
	default:
		return nil, fmt.Errorf("no input resolved")
	}
	file := sess.Files.Get(fileID)

	adapter := &lexer.ReporterAdapter{Bag: sess.Bag}
	lx := lexer.New(file, lexer.Options{Reporter: adapter.Reporter()})

	maxErrors, err := safecast.Conv[uint](sess.Opts.MaxDiagnostics)
	if err != nil {
		return nil, err
	}
	tree := parser.ParseFile(ctx, file, lx, parser.Options{
		Reporter:  sess.Reporter(),
		MaxErrors: maxErrors,
	})

	return &Parsed{Tree: tree, Files: sess.Files}, nil
}
