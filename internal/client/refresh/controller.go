package refresh

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/scoreboard-service/internal/client/storage"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/poller"
)

// ErrClosed is returned once Close has been called.
var ErrClosed = errors.New("refresh controller closed")

// Fetcher loads a fresh payload for key.
type Fetcher[T any] func(ctx context.Context, key string) (T, error)

// State is the view-facing snapshot of a controller. Data is shared with
// other snapshots and must not be mutated.
type State[T any] struct {
	Key             string
	Data            *T
	Loading         bool
	Error           string
	UsingCache      bool
	CacheNotice     string
	RefreshInterval time.Duration
	Refreshing      bool
}

// Options configures a Controller.
type Options[T any] struct {
	Name  string
	Fetch Fetcher[T]
	Store storage.Store

	// StorageKey maps a controller key to its persisted entry.
	StorageKey func(key string) string

	// Interval extracts the server-declared polling period from a payload.
	// Non-positive results fall back to DefaultInterval.
	Interval func(T) time.Duration

	// DefaultInterval applies before any payload is known. Zero disables
	// polling until a payload declares an interval.
	DefaultInterval time.Duration

	OfflineNotice string
	ErrorMessage  string
	Logger        *slog.Logger
}

// Controller owns one key's cached payload, foreground fetch and background
// poller. Switching keys tears down the previous key's work first.
type Controller[T any] struct {
	opts Options[T]

	mu         sync.Mutex
	state      State[T]
	gen        uint64
	life       context.Context
	cancel     context.CancelFunc
	poller     *poller.Poller
	pollCancel context.CancelFunc
	closed     bool

	subMu   sync.Mutex
	subs    map[int]func(State[T])
	nextSub int
}

// New constructs an idle controller. Call Switch to select a key.
func New[T any](opts Options[T]) *Controller[T] {
	if opts.Name == "" {
		opts.Name = "refresh"
	}
	if opts.StorageKey == nil {
		opts.StorageKey = func(key string) string { return key }
	}
	return &Controller[T]{
		opts: opts,
		subs: make(map[int]func(State[T])),
	}
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every state change. The returned func
// removes the subscription.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

// Switch selects key: any previous fetch and poller are torn down, the
// persisted payload (if any) is shown immediately, then a foreground fetch
// runs. ctx bounds the key's lifetime, background polling included. The
// returned error is the fetch error; State already reflects any cache
// fallback.
func (c *Controller[T]) Switch(ctx context.Context, key string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	stopOld := c.teardownLocked()

	c.gen++
	gen := c.gen
	c.life = ctx

	cached := c.readCache(ctx, key)
	next := State[T]{Key: key, RefreshInterval: c.opts.DefaultInterval}
	if cached != nil {
		next.Data = cached
		next.RefreshInterval = c.intervalOf(*cached, c.opts.DefaultInterval)
	} else {
		next.Loading = true
	}
	c.state = next

	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.applyIntervalLocked(gen, key, next.RefreshInterval)
	c.mu.Unlock()

	stopOld()
	c.notify()

	return c.load(fetchCtx, gen, key, false)
}

// Refresh runs a manual foreground fetch for the current key, superseding
// any foreground fetch already in flight.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.gen == 0 {
		c.mu.Unlock()
		return errors.New("refresh before switch")
	}
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	gen, key := c.gen, c.state.Key
	c.mu.Unlock()

	return c.load(fetchCtx, gen, key, false)
}

// Close tears down the current key's fetch and poller. Subsequent calls to
// Switch and Refresh return ErrClosed.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++
	stop := c.teardownLocked()
	c.mu.Unlock()

	stop()

	c.subMu.Lock()
	c.subs = make(map[int]func(State[T]))
	c.subMu.Unlock()
}

// load performs one fetch and applies the outcome unless the controller has
// moved on to another generation in the meantime.
func (c *Controller[T]) load(ctx context.Context, gen uint64, key string, background bool) error {
	cached := c.readCache(ctx, key)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return context.Canceled
	}
	if background {
		c.state.Refreshing = true
	} else {
		c.state.Error = ""
		c.state.CacheNotice = ""
		c.state.Loading = cached == nil && c.state.Data == nil
	}
	c.mu.Unlock()
	c.notify()

	data, err := c.fetch(ctx, key)

	c.mu.Lock()
	if gen != c.gen || isAbort(err) {
		// Superseded or torn down: leave state to whoever owns it now.
		c.mu.Unlock()
		return err
	}

	logger := c.opts.Logger
	switch {
	case err == nil:
		if setErr := storage.SetJSON(ctx, c.opts.Store, c.opts.StorageKey(key), data); setErr != nil {
			logging.Debug(logger, "persist payload failed", "controller", c.opts.Name, logging.FieldKey, key, "error", setErr)
		}
		c.state.Data = &data
		c.state.RefreshInterval = c.intervalOf(data, c.opts.DefaultInterval)
		c.state.Error = ""
		c.state.CacheNotice = ""
		c.state.UsingCache = false
	default:
		fallback := cached
		if fallback == nil {
			fallback = c.readCache(ctx, key)
		}
		switch {
		case fallback != nil:
			c.state.Data = fallback
			c.state.RefreshInterval = c.intervalOf(*fallback, c.state.RefreshInterval)
			c.state.Error = ""
			c.state.CacheNotice = c.opts.OfflineNotice
			c.state.UsingCache = true
		case !background:
			c.state.Error = c.opts.ErrorMessage
			c.state.CacheNotice = ""
		}
		logging.Warn(logger, "refresh failed",
			"controller", c.opts.Name,
			logging.FieldKey, key,
			"background", background,
			"using_cache", fallback != nil,
			"error", err,
		)
	}
	if !background {
		c.state.Loading = false
	}
	c.state.Refreshing = false
	c.applyIntervalLocked(gen, key, c.state.RefreshInterval)
	c.mu.Unlock()

	c.notify()
	return err
}

func (c *Controller[T]) fetch(ctx context.Context, key string) (T, error) {
	if c.opts.Fetch == nil {
		var zero T
		return zero, errors.New("refresh: no fetcher configured")
	}
	return c.opts.Fetch(ctx, key)
}

// applyIntervalLocked keeps the poller in line with interval: created on
// the first positive value, reset on change, stopped on zero.
func (c *Controller[T]) applyIntervalLocked(gen uint64, key string, interval time.Duration) {
	if interval <= 0 {
		if c.poller != nil {
			p, cancel := c.poller, c.pollCancel
			c.poller, c.pollCancel = nil, nil
			cancel()
			go p.Stop(context.Background())
		}
		return
	}
	if c.poller != nil {
		c.poller.Reset(interval)
		return
	}

	pollCtx, cancel := context.WithCancel(c.life)
	c.pollCancel = cancel
	c.poller = poller.New(c.opts.Name, func(runCtx context.Context) error {
		return c.load(runCtx, gen, key, true)
	}, interval, c.opts.Logger)
	c.poller.Start(pollCtx)
}

// teardownLocked cancels the in-flight fetch and detaches the poller. The
// returned func waits for the poller and must run without c.mu held.
func (c *Controller[T]) teardownLocked() func() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	p, cancel := c.poller, c.pollCancel
	c.poller, c.pollCancel = nil, nil
	if p == nil {
		return func() {}
	}
	cancel()
	return func() {
		_ = p.Stop(context.Background())
	}
}

func (c *Controller[T]) readCache(ctx context.Context, key string) *T {
	return storage.GetJSON[*T](ctx, c.opts.Store, c.opts.StorageKey(key), nil)
}

func (c *Controller[T]) intervalOf(v T, fallback time.Duration) time.Duration {
	if c.opts.Interval != nil {
		if d := c.opts.Interval(v); d > 0 {
			return d
		}
	}
	return fallback
}

func (c *Controller[T]) notify() {
	state := c.State()

	c.subMu.Lock()
	subs := make([]func(State[T]), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// isAbort reports whether err came from tearing down the request rather than
// from the network or the service.
func isAbort(err error) bool {
	return errors.Is(err, context.Canceled)
}
