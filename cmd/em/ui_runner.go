package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"emblem/internal/driver"
	"emblem/internal/pipeline"
	"emblem/internal/source"
	"emblem/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.DirResult
	err     error
}

// displaySink renames files to their display paths before forwarding.
func displaySink(next pipeline.ProgressSink, names map[string]string) pipeline.ProgressSink {
	return pipeline.SinkFunc(func(ev pipeline.Event) {
		if name, ok := names[ev.File]; ok {
			ev.File = name
		}
		next.OnEvent(ev)
	})
}

// runCheckWithUI parses files while a bubbletea progress view follows the
// driver's events.
func runCheckWithUI(ctx context.Context, title, baseDir string, files []string, opts driver.Options) (*source.FileSet, []driver.DirResult, error) {
	names := make(map[string]string, len(files))
	display := make([]string, 0, len(files))
	for _, f := range files {
		shown := pipeline.NormalizeFiles([]string{f}, baseDir)
		if len(shown) == 0 {
			continue
		}
		names[f] = shown[0]
		display = append(display, shown[0])
	}

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		sink := displaySink(pipeline.ChannelSink{Ch: events}, names)
		pipeline.EmitStage(sink, nil, pipeline.StageParse, pipeline.StatusWorking, nil, 0)
		opts.Progress = sink
		fs, results, err := driver.ParseFiles(ctx, baseDir, files, opts)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI ушёл раньше времени: не даём драйверу заблокироваться
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
