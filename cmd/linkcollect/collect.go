package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/linkcollect"
	"github.com/fwojciec/linkcollect/collect"
	"github.com/fwojciec/linkcollect/fs"
	"golang.org/x/sync/errgroup"
)

// ReportedError wraps a failure that has already been shown to the user.
// It only sets the exit status.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// Run executes a single collection. An interrupt stops the run.
// A failed run returns a ReportedError wrapping the failure.
func (c *CollectCmd) Run(deps *Dependencies) error {
	results, err := deps.Controller.Start(deps.Ctx, c.URL)
	if err != nil {
		return err
	}
	printStatus(deps.Stderr, deps.Controller.Status())

	done := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		for {
			select {
			case <-done:
				return nil
			case <-deps.Interrupts:
				if deps.Controller.Stop() {
					printStatus(deps.Stderr, linkcollect.StatusStopping)
				}
			}
		}
	})

	res := <-results
	close(done)
	_ = g.Wait()

	renderResult(deps, res)
	if res.Outcome.Kind == linkcollect.OutcomeFailure {
		return &ReportedError{Err: res.Outcome.Err}
	}
	return nil
}

// Run reads URLs line by line until stdin is exhausted. Input is not read
// while a run is in flight; an interrupt stops the run, or exits when idle.
func (c *PromptCmd) Run(deps *Dependencies) error {
	lines := scanLines(deps.Ctx, deps.Stdin)
	input := lines
	var results <-chan collect.Result

	printStatus(deps.Stderr, deps.Controller.Status())
	prompt(deps.Stdout)

	for {
		select {
		case <-deps.Ctx.Done():
			if deps.Controller.Stop() {
				<-results
			}
			return nil

		case <-deps.Interrupts:
			if results == nil {
				return nil
			}
			if deps.Controller.Stop() {
				printStatus(deps.Stderr, linkcollect.StatusStopping)
			}

		case line, ok := <-input:
			if !ok {
				return nil
			}
			r, err := deps.Controller.Start(deps.Ctx, line)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", linkcollect.ErrorMessage(err))
				continue
			}
			results, input = r, nil
			printStatus(deps.Stderr, deps.Controller.Status())

		case res := <-results:
			results, input = nil, lines
			renderResult(deps, res)
			prompt(deps.Stdout)
		}
	}
}

// renderResult prints links to stdout and warnings, errors and the final
// status to stderr.
func renderResult(deps *Dependencies, res collect.Result) {
	o := res.Outcome
	switch o.Kind {
	case linkcollect.OutcomeSuccess:
		fmt.Fprintln(deps.Stdout, o.Text())
		if res.SaveErr != nil {
			fmt.Fprintf(deps.Stderr, "Save Error: Could not save %s: %s\n",
				fs.DefaultFilename, linkcollect.ErrorMessage(res.SaveErr))
		}
	case linkcollect.OutcomeEmpty:
		fmt.Fprintln(deps.Stdout, o.Text())
	default:
		if linkcollect.ErrorCode(o.Err) == linkcollect.EINVALID {
			fmt.Fprintf(deps.Stderr, "Input Error: %s\n", o.Message())
		} else {
			fmt.Fprintf(deps.Stderr, "Error: %s\n", o.Message())
		}
	}
	printStatus(deps.Stderr, res.Status)
}

func printStatus(w io.Writer, status linkcollect.Status) {
	fmt.Fprintf(w, "[%s]\n", status)
}

func prompt(w io.Writer) {
	fmt.Fprint(w, "Enter Website URL: ")
}

// scanLines streams lines from r until EOF or ctx is done.
func scanLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
