// Package collect orchestrates a single link collection run: validation,
// politeness delay, fetch, parse and the link stages, plus the controller a
// presentation surface drives it through.
package collect

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/fwojciec/linkcollect"
)

// Politeness delay bounds used when Pipeline leaves them unset.
const (
	DefaultMinDelay = 500 * time.Millisecond
	DefaultMaxDelay = 1500 * time.Millisecond
)

// Compile-time interface verification.
var _ linkcollect.Collector = (*Pipeline)(nil)

// Pipeline runs fetch, parse, filter, canonicalize and deduplicate for one
// URL. It holds no state between runs and performs no locking; a single
// Pipeline may serve sequential runs.
type Pipeline struct {
	Fetcher   linkcollect.Fetcher
	Extractor linkcollect.LinkExtractor

	// NewSeenSet returns the set that deduplicates n candidate hrefs.
	// Defaults to an exact linkcollect.StringSet.
	NewSeenSet func(n int) linkcollect.SeenSet

	// MinDelay and MaxDelay bound the random pause before the fetch.
	// Both zero means DefaultMinDelay and DefaultMaxDelay.
	MinDelay time.Duration
	MaxDelay time.Duration

	// Sleep waits for d unless ctx is done first. Defaults to a timer wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Collect runs the pipeline for rawURL. Every error, including a panic in a
// stage, is reported as an OutcomeFailure; no partial list is returned.
// Cancellation of ctx is checked between stages and reported as ECANCELED.
func (p *Pipeline) Collect(ctx context.Context, rawURL string) (outcome linkcollect.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = linkcollect.FailedOutcome(linkcollect.Errorf(linkcollect.EINTERNAL, "unexpected failure: %v", r))
		}
	}()

	url := strings.TrimSpace(rawURL)
	if url == "" {
		return linkcollect.FailedOutcome(linkcollect.Errorf(linkcollect.EINVALID, "Please enter a website URL."))
	}
	if err := ctx.Err(); err != nil {
		return linkcollect.FailedOutcome(canceled(err))
	}

	if err := p.sleep(ctx, p.delay()); err != nil {
		return linkcollect.FailedOutcome(canceled(err))
	}

	result, err := p.Fetcher.Fetch(ctx, url)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return linkcollect.FailedOutcome(canceled(ctxErr))
	} else if err != nil {
		return linkcollect.FailedOutcome(stageError(linkcollect.EFETCH, err))
	}

	hrefs, err := p.Extractor.ExtractHrefs(result.Body)
	if err != nil {
		return linkcollect.FailedOutcome(stageError(linkcollect.EPARSE, err))
	}
	if err := ctx.Err(); err != nil {
		return linkcollect.FailedOutcome(canceled(err))
	}

	links, err := linkcollect.CollectLinks(hrefs, result.FinalURL, p.newSeenSet(len(hrefs)))
	if err != nil {
		return linkcollect.FailedOutcome(stageError(linkcollect.EPARSE, err))
	}

	return linkcollect.NewOutcome(links)
}

// delay draws a duration uniformly from [MinDelay, MaxDelay].
func (p *Pipeline) delay() time.Duration {
	lo, hi := p.MinDelay, p.MaxDelay
	if lo == 0 && hi == 0 {
		lo, hi = DefaultMinDelay, DefaultMaxDelay
	}
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(rand.Int63n(int64(hi-lo+1)))
}

func (p *Pipeline) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return Sleep(ctx, d)
}

func (p *Pipeline) newSeenSet(n int) linkcollect.SeenSet {
	if p.NewSeenSet != nil {
		return p.NewSeenSet(n)
	}
	return make(linkcollect.StringSet, n)
}

// Sleep pauses for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// stageError keeps application errors as-is and files any other error
// under code with its original text.
func stageError(code string, err error) error {
	var e *linkcollect.Error
	if errors.As(err, &e) {
		return err
	}
	return linkcollect.Errorf(code, "%v", err)
}

func canceled(err error) error {
	return linkcollect.Errorf(linkcollect.ECANCELED, "collection stopped: %v", err)
}
