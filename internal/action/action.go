// Package action runs a per-item job over resolved mappings with bounded
// concurrency.
package action

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/kerlilow/mrf/internal/resolve"
)

// ErrSkipped is returned by a job that had nothing to do for a pair.
var ErrSkipped = errors.New("skipped")

// Job performs the action for one pair.
type Job func(ctx context.Context, p resolve.Pair) error

// Summary counts the outcome of a run.
type Summary struct {
	Done    int
	Skipped int
	Failed  int
}

// Options controls how Run schedules jobs.
type Options struct {
	// Concurrency bounds running jobs; 0 means runtime.NumCPU().
	Concurrency int
	// Progress draws a progress bar on ProgressWriter (os.Stderr if nil).
	Progress       bool
	ProgressWriter io.Writer
	Description    string
}

// Run executes job for every pair. A failing job is logged and counted, it
// never stops the others. When ctx is done no new jobs are started, jobs
// already running are waited for, and ctx.Err() is returned with the
// partial summary.
func Run(ctx context.Context, logger *zap.Logger, pairs []resolve.Pair, opts Options, job Job) (Summary, error) {
	var summary Summary
	if len(pairs) == 0 {
		return summary, ctx.Err()
	}

	maxWorkers := opts.Concurrency
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	sem := make(chan struct{}, maxWorkers)
	errorChan := make(chan error, len(pairs))

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = newBar(len(pairs), opts)
	}

	started := 0
	for _, pair := range pairs {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case sem <- struct{}{}:
			started++
			go func(p resolve.Pair) {
				defer func() { <-sem }()

				err := job(ctx, p)
				if err != nil && !errors.Is(err, ErrSkipped) && logger != nil {
					logger.Error("Error processing item",
						zap.String("left", p.Left),
						zap.String("right", p.Right),
						zap.Error(err))
				}
				if bar != nil {
					_ = bar.Add(1)
				}
				errorChan <- err
			}(pair)
		}
	}

	for n := 0; n < started; n++ {
		switch err := <-errorChan; {
		case err == nil:
			summary.Done++
		case errors.Is(err, ErrSkipped):
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

func newBar(total int, opts Options) *progressbar.ProgressBar {
	w := opts.ProgressWriter
	if w == nil {
		w = os.Stderr
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(w, "\n") }),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
