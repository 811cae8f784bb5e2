package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/fwojciec/linkcollect"
	main "github.com/fwojciec/linkcollect/cmd/linkcollect"
	"github.com/fwojciec/linkcollect/collect"
	"github.com/fwojciec/linkcollect/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollector answers with links derived from the URL, mirroring the
// empty-input rule of the real pipeline.
func fakeCollector() *mock.Collector {
	return &mock.Collector{
		CollectFn: func(_ context.Context, rawURL string) linkcollect.Outcome {
			rawURL = strings.TrimSpace(rawURL)
			switch {
			case rawURL == "":
				return linkcollect.FailedOutcome(linkcollect.Errorf(linkcollect.EINVALID, "Please enter a website URL."))
			case strings.Contains(rawURL, "empty"):
				return linkcollect.NewOutcome(nil)
			case strings.Contains(rawURL, "broken"):
				return linkcollect.FailedOutcome(linkcollect.Errorf(linkcollect.EFETCH, "HTTP 500 Internal Server Error for %s", rawURL))
			default:
				return linkcollect.NewOutcome([]string{rawURL + "one", rawURL + "two"})
			}
		},
	}
}

// blockingCollector blocks until the run is stopped.
func blockingCollector() *mock.Collector {
	return &mock.Collector{
		CollectFn: func(ctx context.Context, _ string) linkcollect.Outcome {
			<-ctx.Done()
			return linkcollect.FailedOutcome(linkcollect.Errorf(linkcollect.ECANCELED, "collection stopped: %v", ctx.Err()))
		},
	}
}

type savedLinks struct {
	mu    sync.Mutex
	calls [][]string
}

func (s *savedLinks) sink(err error) *mock.LinkSink {
	return &mock.LinkSink{
		SaveFn: func(_ context.Context, links []string) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.calls = append(s.calls, links)
			return err
		},
	}
}

func (s *savedLinks) all() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newDeps(collector linkcollect.Collector, sink linkcollect.LinkSink, stdin io.Reader) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdin:      stdin,
		Stdout:     &stdout,
		Stderr:     &stderr,
		Controller: collect.NewController(collector, sink, nil),
	}, &stdout, &stderr
}

func TestCollectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints links and saves them", func(t *testing.T) {
		t.Parallel()

		saved := &savedLinks{}
		deps, stdout, stderr := newDeps(fakeCollector(), saved.sink(nil), nil)

		err := (&main.CollectCmd{URL: "http://a.example/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "http://a.example/one\nhttp://a.example/two\n", stdout.String())
		assert.Contains(t, stderr.String(), "[Collecting...]")
		assert.Contains(t, stderr.String(), "[Done — 2 links]")
		assert.Equal(t, [][]string{{"http://a.example/one", "http://a.example/two"}}, saved.all())
	})

	t.Run("empty page is not saved", func(t *testing.T) {
		t.Parallel()

		saved := &savedLinks{}
		deps, stdout, stderr := newDeps(fakeCollector(), saved.sink(nil), nil)

		err := (&main.CollectCmd{URL: "http://empty.example/"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "No links found.\n", stdout.String())
		assert.Contains(t, stderr.String(), "[No links found]")
		assert.Empty(t, saved.all())
	})

	t.Run("failure is returned", func(t *testing.T) {
		t.Parallel()

		saved := &savedLinks{}
		deps, stdout, stderr := newDeps(fakeCollector(), saved.sink(nil), nil)

		err := (&main.CollectCmd{URL: "http://broken.example/"}).Run(deps)

		var reported *main.ReportedError
		require.ErrorAs(t, err, &reported)
		assert.Equal(t, linkcollect.EFETCH, linkcollect.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Error: Failed to fetch links: HTTP 500")
		assert.Equal(t, 1, strings.Count(stderr.String(), "HTTP 500"))
		assert.Contains(t, stderr.String(), "[Error]")
		assert.Empty(t, saved.all())
	})

	t.Run("blank URL is an input error", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(fakeCollector(), (&savedLinks{}).sink(nil), nil)

		err := (&main.CollectCmd{URL: "   "}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, linkcollect.EINVALID, linkcollect.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Input Error: Please enter a website URL.")
		assert.Contains(t, stderr.String(), "[Ready]")
	})

	t.Run("save failure keeps the links on screen", func(t *testing.T) {
		t.Parallel()

		saved := &savedLinks{}
		sinkErr := linkcollect.Errorf(linkcollect.EPERSIST, "permission denied")
		deps, stdout, stderr := newDeps(fakeCollector(), saved.sink(sinkErr), nil)

		err := (&main.CollectCmd{URL: "http://a.example/"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "http://a.example/one")
		assert.Contains(t, stderr.String(), "Save Error: Could not save links.json: permission denied")
		assert.Contains(t, stderr.String(), "[Done (not saved)]")
	})

	t.Run("interrupt stops the run", func(t *testing.T) {
		t.Parallel()

		interrupts := make(chan os.Signal, 1)
		interrupts <- os.Interrupt
		saved := &savedLinks{}
		deps, stdout, stderr := newDeps(blockingCollector(), saved.sink(nil), nil)
		deps.Interrupts = interrupts

		err := (&main.CollectCmd{URL: "http://slow.example/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, linkcollect.ECANCELED, linkcollect.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "[Stopping...]")
		assert.Contains(t, stderr.String(), "[Error]")
		assert.Empty(t, saved.all())
	})
}

func TestPromptCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("collects each line in turn", func(t *testing.T) {
		t.Parallel()

		saved := &savedLinks{}
		stdin := strings.NewReader("http://a.example/\n   \nhttp://empty.example/\nhttp://b.example/\n")
		deps, stdout, stderr := newDeps(fakeCollector(), saved.sink(nil), stdin)

		err := (&main.PromptCmd{}).Run(deps)

		require.NoError(t, err)
		out := stdout.String()
		assert.Equal(t, 5, strings.Count(out, "Enter Website URL: "))
		assert.Contains(t, out, "http://a.example/one\nhttp://a.example/two\n")
		assert.Contains(t, out, "No links found.\n")
		assert.Contains(t, out, "http://b.example/one\nhttp://b.example/two\n")
		assert.Contains(t, stderr.String(), "Input Error: Please enter a website URL.")
		assert.NotContains(t, stderr.String(), "already running")
		assert.Equal(t, [][]string{
			{"http://a.example/one", "http://a.example/two"},
			{"http://b.example/one", "http://b.example/two"},
		}, saved.all())
	})

	t.Run("interrupt while idle exits", func(t *testing.T) {
		t.Parallel()

		r, w := io.Pipe()
		t.Cleanup(func() { _ = w.Close() })
		interrupts := make(chan os.Signal, 1)
		interrupts <- os.Interrupt
		deps, _, stderr := newDeps(fakeCollector(), (&savedLinks{}).sink(nil), r)
		deps.Interrupts = interrupts

		err := (&main.PromptCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "[Ready]\n", stderr.String())
	})

	t.Run("interrupt stops the in-flight run", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		collector := &mock.Collector{
			CollectFn: func(ctx context.Context, _ string) linkcollect.Outcome {
				close(started)
				<-ctx.Done()
				return linkcollect.FailedOutcome(linkcollect.Errorf(linkcollect.ECANCELED, "collection stopped: %v", ctx.Err()))
			},
		}
		interrupts := make(chan os.Signal)
		deps, _, stderr := newDeps(collector, (&savedLinks{}).sink(nil), strings.NewReader("http://slow.example/\n"))
		deps.Interrupts = interrupts

		go func() {
			<-started
			interrupts <- os.Interrupt
		}()

		err := (&main.PromptCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "[Stopping...]")
		assert.Contains(t, stderr.String(), "Error: Failed to fetch links: collection stopped")
		assert.Contains(t, stderr.String(), "[Error]")
	})

	t.Run("context cancel waits for the run", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		started := make(chan struct{})
		finished := make(chan struct{})
		collector := &mock.Collector{
			CollectFn: func(ctx context.Context, _ string) linkcollect.Outcome {
				close(started)
				<-ctx.Done()
				close(finished)
				return linkcollect.FailedOutcome(errors.New("stopped"))
			},
		}
		deps, _, _ := newDeps(collector, (&savedLinks{}).sink(nil), strings.NewReader("http://slow.example/\n"))
		deps.Ctx = ctx

		go func() {
			<-started
			cancel()
		}()

		err := (&main.PromptCmd{}).Run(deps)

		require.NoError(t, err)
		select {
		case <-finished:
		default:
			t.Fatal("run still in flight after PromptCmd returned")
		}
	})
}
