package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"flint/internal/pipeline"
	"flint/internal/ui"
)

type runOutcome struct {
	result *pipeline.Result
	err    error
}

// runWithUI drives the pipeline on a background goroutine while bubbletea
// renders phase progress on stdout. The pipeline outcome wins over UI
// errors only when the UI itself succeeded.
func runWithUI(cmd *cobra.Command, cfg pipeline.Config, cb pipeline.Callbacks) (*pipeline.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		cfg.Progress = pipeline.ChannelSink{Ch: events}
		res, err := pipeline.Run(cmd.Context(), cfg, cb)
		outcomeCh <- runOutcome{result: res, err: err}
		close(events)
	}()

	title := "compiling"
	if path := pipeline.InputPath(cfg.Input); path != "" {
		title = "compiling " + path
	}
	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
