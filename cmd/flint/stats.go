package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"flint/internal/pipeline"
	"flint/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats [flags] <file.fl|dir>...",
	Short: "Report crate statistics",
	Long:  `Stats parses each input and reports function and println counts without compiling anything`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("jobs", 0, "number of files to process in parallel (0 = GOMAXPROCS)")
}

func runStats(cmd *cobra.Command, args []string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics < 0 {
		return &pipeline.CommandLineError{Msg: "--max-diagnostics must not be negative"}
	}

	files, err := collectFlintFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return &pipeline.NoInputError{}
	}

	type fileResult struct {
		out bytes.Buffer
		res *pipeline.Result
		err error
	}
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			r := &results[i]
			cb := &stats.Callbacks{Out: &r.out}
			cfg := pipeline.Config{
				Args:           os.Args[1:],
				Input:          pipeline.FileInput{Path: path},
				InputPath:      path,
				MaxDiagnostics: maxDiagnostics,
			}
			r.res, r.err = pipeline.Run(gctx, cfg, cb)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// print in input order so parallel runs stay deterministic
	var failed int
	for i, path := range files {
		r := &results[i]
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, r.err)
			reportRun(cmd, r.res, r.err)
			continue
		}
		if _, err := r.out.WriteTo(cmd.OutOrStdout()); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("stats failed for %d of %d files", failed, len(files))
	}
	return nil
}

// collectFlintFiles expands each argument: directories are walked for .fl
// files, plain paths pass through. The result is deduplicated and sorted
// per argument, preserving argument order.
func collectFlintFiles(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		var found []string
		walkErr := filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if len(name) > 1 && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				if name == "target" || name == "build" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".fl" {
				found = append(found, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
		sort.Strings(found)
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
