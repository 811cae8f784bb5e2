package collect

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/linkcollect"
	"github.com/fwojciec/linkcollect/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Result is delivered once per run started through a Controller.
type Result struct {
	RunID   string
	Outcome linkcollect.Outcome

	// SaveErr is set when a successful list could not be persisted.
	// It never changes Outcome.
	SaveErr error

	// Repeated counts links of a successful run that an earlier run of the
	// same Controller probably collected already.
	Repeated int

	Status linkcollect.Status
}

// Controller runs collections off the caller's goroutine for a single
// presentation surface. At most one run is in flight at a time; results are
// handed back over a channel the caller's interaction loop receives from.
type Controller struct {
	collector linkcollect.Collector
	sink      linkcollect.LinkSink
	logger    *slog.Logger
	gate      *semaphore.Weighted
	history   *bloom.History

	mu     sync.Mutex
	status linkcollect.Status
	cancel context.CancelFunc
}

// NewController creates a Controller. A nil sink disables persistence and a
// nil logger discards log output.
func NewController(collector linkcollect.Collector, sink linkcollect.LinkSink, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		collector: collector,
		sink:      sink,
		logger:    logger,
		gate:      semaphore.NewWeighted(1),
		history:   bloom.NewHistory(bloom.DefaultCapacity, bloom.DefaultFalsePositiveRate),
		status:    linkcollect.StatusReady,
	}
}

// Status returns the current status text.
func (c *Controller) Status() linkcollect.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Busy reports whether a run is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Start begins a run for rawURL and returns the channel its Result arrives
// on. The channel is buffered and closed after the single Result.
// Returns ECONFLICT while a previous run is still in flight.
func (c *Controller) Start(ctx context.Context, rawURL string) (<-chan Result, error) {
	if !c.gate.TryAcquire(1) {
		return nil, linkcollect.Errorf(linkcollect.ECONFLICT, "a collection is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.cancel = cancel
	c.status = linkcollect.StatusCollecting
	c.mu.Unlock()

	results := make(chan Result, 1)
	go func() {
		res := c.run(runCtx, uuid.NewString(), rawURL)

		c.mu.Lock()
		c.cancel = nil
		c.status = res.Status
		c.mu.Unlock()
		cancel()
		c.gate.Release(1)

		results <- res
		close(results)
	}()

	return results, nil
}

// Stop asks the in-flight run to abandon its work. It reports false when
// nothing is running.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel == nil {
		return false
	}
	c.cancel()
	c.status = linkcollect.StatusStopping
	return true
}

func (c *Controller) run(ctx context.Context, id string, rawURL string) Result {
	begin := time.Now()
	outcome := c.collector.Collect(ctx, rawURL)

	// A finished list is saved even if Stop arrives afterwards.
	var saveErr error
	var repeated int
	if outcome.Kind == linkcollect.OutcomeSuccess {
		repeated = c.history.Observe(outcome.Links)
		if c.sink != nil {
			saveErr = c.sink.Save(context.WithoutCancel(ctx), outcome.Links)
		}
	}

	status := linkcollect.StatusFor(outcome, saveErr)
	c.logger.Info("collect",
		"run", id,
		"url", rawURL,
		"outcome", outcome.Kind.String(),
		"links", len(outcome.Links),
		"repeated", repeated,
		"status", string(status),
		"duration", time.Since(begin),
		"err", outcome.Err,
		"saveErr", saveErr,
	)

	return Result{
		RunID:    id,
		Outcome:  outcome,
		SaveErr:  saveErr,
		Repeated: repeated,
		Status:   status,
	}
}
