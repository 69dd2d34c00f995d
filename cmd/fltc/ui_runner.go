package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fltc/internal/driver"
	"fltc/internal/ui"
)

type convertOutcome struct {
	results []driver.FileResult
	err     error
}

// runConvertWithUI converts paths while a progress view follows each file
// through its passes.
func runConvertWithUI(ctx context.Context, paths []string, jobs int, opts driver.FileOptions) ([]driver.FileResult, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan convertOutcome, 1)

	onPass := opts.OnPass
	opts.OnPass = func(path string, ev driver.PassEvent) {
		if onPass != nil {
			onPass(path, ev)
		}
		if ev.Status == driver.PassStart {
			events <- ui.PassEvent(path, ev)
		}
	}

	go func() {
		results, err := driver.ConvertFiles(ctx, paths, jobs, opts, func(res driver.FileResult) {
			events <- ui.ResultEvent(&res)
		})
		outcomeCh <- convertOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("converting", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// Keep the workers moving if the view stopped early
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
