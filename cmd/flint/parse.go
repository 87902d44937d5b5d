package main

import (
	"fmt"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/diagfmt"
	"flint/internal/lexer"
	"flint/internal/parser"
	"flint/internal/pipeline"
	"flint/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.fl",
	Short: "Parse a flint source file",
	Long:  `Parse builds the syntax tree for a flint source file and prints an item summary`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return &pipeline.CommandLineError{Msg: "--max-diagnostics must not be negative"}
	}

	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: adapter.Reporter()})

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return err
	}
	tree := parser.ParseFile(cmd.Context(), file, lx, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d items\n", file.Path, len(tree.Items))
	for _, item := range tree.Items {
		switch it := item.(type) {
		case *ast.FnItem:
			fmt.Fprintf(out, "  fn %s (%d params)\n", it.Name, len(it.Params))
		case *ast.StructItem:
			fmt.Fprintf(out, "  struct %s (%d fields)\n", it.Name, len(it.Fields))
		case *ast.UseItem:
			path := it.Path.String()
			if it.Glob {
				path += "::*"
			}
			fmt.Fprintf(out, "  use %s\n", path)
		}
	}

	if bag.HasErrors() {
		return fmt.Errorf("parsing failed with %d diagnostics", bag.Len())
	}
	return nil
}
