package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/logging"
)

const defaultInterval = 180 * time.Second

// Task is one unit of repeated work.
type Task func(ctx context.Context) error

// Poller runs a task on an interval until Stop is called or its context ends.
// The first run happens one interval after Start. Reset changes the period
// without restarting the poller.
type Poller struct {
	task   Task
	name   string
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	interval time.Duration
	started  bool
	resetCh  chan time.Duration
	done     chan struct{}
	stopOnce sync.Once
	exited   chan struct{}

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	Runs                int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsHealthy reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsHealthy() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. A non-positive interval falls back to the default.
func New(name string, task Task, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		task:     task,
		name:     name,
		logger:   logger,
		now:      time.Now,
		interval: interval,
		resetCh:  make(chan time.Duration, 1),
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
// Calling Start more than once has no effect.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	interval := p.interval
	p.mu.Unlock()

	go p.loop(ctx, interval)
}

func (p *Poller) loop(ctx context.Context, interval time.Duration) {
	defer close(p.exited)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logging.Debug(p.logger, "poller started",
		"poller", p.name,
		logging.FieldDurationMS, interval.Milliseconds(),
	)
	for {
		select {
		case <-ctx.Done():
			logging.Debug(p.logger, "poller stopped", "poller", p.name)
			return
		case <-p.done:
			logging.Debug(p.logger, "poller stopped", "poller", p.name)
			return
		case next := <-p.resetCh:
			ticker.Reset(next)
			logging.Debug(p.logger, "poller interval reset",
				"poller", p.name,
				logging.FieldDurationMS, next.Milliseconds(),
			)
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

// Reset changes the polling period. The next run happens one full new
// interval from now. Non-positive values and unchanged intervals are ignored.
func (p *Poller) Reset(interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	p.mu.Lock()
	if interval == p.interval {
		p.mu.Unlock()
		return false
	}
	p.interval = interval
	started := p.started
	p.mu.Unlock()

	if !started {
		return true
	}
	// Keep only the latest pending value.
	for {
		select {
		case p.resetCh <- interval:
			return true
		default:
		}
		select {
		case <-p.resetCh:
		default:
		}
	}
}

// Interval returns the current polling period.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Stop halts the polling loop and waits for an in-progress run to return or
// for ctx to end.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	if p.task == nil {
		return
	}
	start := p.now()
	p.recordAttempt(start)

	err := p.task(ctx)
	switch {
	case err == nil:
		p.recordSuccess(start)
	case errors.Is(err, context.Canceled):
		// Teardown, not a failure.
	default:
		p.recordFailure(err)
		logging.Warn(p.logger, "poller run failed",
			"poller", p.name,
			"error", err,
			logging.FieldDurationMS, p.now().Sub(start).Milliseconds(),
		)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Runs++
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	p.status.LastError = err.Error()
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
