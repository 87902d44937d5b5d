package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flint/internal/diagfmt"
	"flint/internal/pipeline"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.fl]",
	Short: "Compile a flint source file",
	Long:  `Compile runs the full phase pipeline: parse, expand, assign-ids, analyze, translate, codegen, link`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("out-dir", "", "output directory (defaults to the manifest output or ./target)")
	compileCmd.Flags().String("out", "", "output file name (defaults to the crate name)")
	compileCmd.Flags().Bool("print-file-names", false, "print the output file names and stop after parse")
	compileCmd.Flags().Bool("glob-map", false, "record glob imports during analysis")
	compileCmd.Flags().Bool("ui", false, "show interactive phase progress")
}

// compileCallbacks is the stock toolchain behavior plus the glob-map switch.
type compileCallbacks struct {
	pipeline.Defaults
	globMap bool
}

func (c *compileCallbacks) BuildController(sess *pipeline.Session) *pipeline.ControllerSet {
	cs := c.Defaults.BuildController(sess)
	cs.ProduceGlobMap = c.globMap
	return cs
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := compileConfig(cmd, args)
	if err != nil {
		return err
	}
	cb := &compileCallbacks{}
	cb.globMap, _ = cmd.Flags().GetBool("glob-map")

	withUI, _ := cmd.Flags().GetBool("ui")

	var res *pipeline.Result
	if withUI && isTerminal(os.Stdout) {
		res, err = runWithUI(cmd, cfg, cb)
	} else {
		res, err = pipeline.Run(cmd.Context(), cfg, cb)
	}
	reportRun(cmd, res, err)
	if err != nil {
		return err
	}

	if res.Completed {
		if linked, ok := res.LastState.(*pipeline.Linked); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", linked.OutputPath)
		}
	}
	return nil
}

func compileConfig(cmd *cobra.Command, args []string) (pipeline.Config, error) {
	outDir, _ := cmd.Flags().GetString("out-dir")
	outFile, _ := cmd.Flags().GetString("out")
	printFileNames, _ := cmd.Flags().GetBool("print-file-names")
	timings, _ := cmd.Root().PersistentFlags().GetBool("timings")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return pipeline.Config{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return pipeline.Config{}, &pipeline.CommandLineError{Msg: "--max-diagnostics must not be negative"}
	}
	if printFileNames && outDir != "" {
		return pipeline.Config{}, &pipeline.CommandLineError{Msg: "--print-file-names does not take --out-dir"}
	}

	cfg := pipeline.Config{
		Args:           os.Args[1:],
		OutputDir:      outDir,
		OutputFile:     outFile,
		PrintFileNames: printFileNames,
		MaxDiagnostics: maxDiagnostics,
		Timings:        timings,
	}
	if len(args) == 1 {
		cfg.Input = pipeline.FileInput{Path: args[0]}
		cfg.InputPath = args[0]
	}
	return cfg, nil
}

// reportRun prints diagnostics and timings for a finished (or failed) run.
func reportRun(cmd *cobra.Command, res *pipeline.Result, _ error) {
	if res == nil || res.Session == nil {
		return
	}
	sess := res.Session
	if sess.Bag.Len() > 0 {
		sess.Bag.Sort()
		diagfmt.Pretty(os.Stderr, sess.Bag, sess.Files, diagfmt.PrettyOpts{
			Color: useColor(cmd, os.Stderr),
		})
	}
	if sess.Opts.Timings {
		fmt.Fprint(os.Stderr, sess.Timer.Summary())
	}
}
