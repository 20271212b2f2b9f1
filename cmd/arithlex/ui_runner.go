package main

import (
	"context"
	"io"

	"arithlex/internal/driver"
	"arithlex/internal/source"
	"arithlex/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

func runTokenizeDirWithUI(ctx context.Context, dir string, opts driver.Options, out io.Writer) (*source.FileSet, []driver.TokenizeDirResult, error) {
	files, err := driver.ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return driver.TokenizeDir(ctx, dir, opts)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress("tokenize "+dir, files, events, out, cancel)
	// ctrl+c отменил ctx; дочитываем, чтобы воркеры не заблокировались
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
