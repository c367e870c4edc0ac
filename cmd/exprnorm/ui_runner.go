package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"exprnorm/internal/driver"
	"exprnorm/internal/ui"
)

// progressUI is the --ui setting of the batch command.
type progressUI uint8

const (
	progressAuto progressUI = iota // TUI only when out is a terminal
	progressAlways
	progressNever
)

func parseProgressUI(value string) (progressUI, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressAlways, nil
	case "off":
		return progressNever, nil
	}
	return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// wanted reports whether the progress TUI should be drawn on out.
func (u progressUI) wanted(out *os.File) bool {
	switch u {
	case progressAlways:
		return true
	case progressNever:
		return false
	default:
		return isTerminal(out)
	}
}

type batchOutcome struct {
	results []*driver.FileResult
	err     error
}

// runBatchWithUI runs the batch in the background and renders its progress events.
func runBatchWithUI(ctx context.Context, title string, sess *driver.Session, baseDir string, files []string, jobs int) ([]*driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		res, err := sess.NormalizeFiles(ctx, baseDir, files, jobs, driver.ChannelSink{Ch: events})
		outcomeCh <- batchOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
