package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"lamb/internal/driver"
	"lamb/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckDirResult
	err     error
}

// runCheckWithUI checks files while a progress view follows along.
func runCheckWithUI(ctx context.Context, title string, files []string, maxDiag, jobs int, out io.Writer) ([]driver.CheckDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		res, err := driver.CheckFiles(ctx, files, maxDiag, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{results: res, err: err}
		close(events)
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
