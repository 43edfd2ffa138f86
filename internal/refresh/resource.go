// Package refresh implements data hooks: a fetched value with a loading/error
// state machine, explicit refetch, and fixed-interval polling.
//
// Overlapping fetches are not de-duplicated, but each carries a generation
// number and only the most recently started fetch may commit. A slow,
// superseded response can therefore never overwrite fresher state.
package refresh

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"parts-matching-client/internal/platform/metrics"
)

type State int

const (
	Idle State = iota
	Loading
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of a resource's state.
type Snapshot[T any] struct {
	State      State
	Data       T
	Err        string
	Generation uint64
	UpdatedAt  time.Time
}

type Fetcher[T any] func(ctx context.Context) (T, error)

type options struct {
	name          string
	swallowErrors bool
	now           func() time.Time
}

type Option func(*options)

// WithName labels logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithSwallowErrors drops fetch errors instead of storing them; the previous
// settled state and data are kept.
func WithSwallowErrors(swallow bool) Option {
	return func(o *options) { o.swallowErrors = swallow }
}

type Resource[T any] struct {
	fetch Fetcher[T]
	opts  options

	mu      sync.Mutex
	snap    Snapshot[T]
	started uint64
	settled State
	subs    map[int]func(Snapshot[T])
	nextSub int
}

func New[T any](fetch Fetcher[T], opts ...Option) *Resource[T] {
	o := options{name: "resource", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Resource[T]{
		fetch: fetch,
		opts:  o,
		subs:  make(map[int]func(Snapshot[T])),
	}
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Subscribe registers fn for every state change. The returned func removes it.
func (r *Resource[T]) Subscribe(fn func(Snapshot[T])) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

// Refetch moves to Loading, runs the fetcher, and commits the outcome if no
// newer fetch started meanwhile. It returns the state after the call.
func (r *Resource[T]) Refetch(ctx context.Context) Snapshot[T] {
	r.mu.Lock()
	r.started++
	gen := r.started
	r.snap.State = Loading
	r.publishLocked()
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	log := zap.L().With(zap.String("resource", r.opts.name), zap.Uint64("generation", gen))

	if gen != r.started {
		log.Debug("discarding superseded response", zap.Uint64("latest", r.started))
		metrics.ObserveRefresh(r.opts.name, "stale")
		return r.snap
	}

	// The owner went away mid-flight; do not write into its state.
	if ctx.Err() != nil {
		r.snap.State = r.settled
		r.publishLocked()
		return r.snap
	}

	r.snap.Generation = gen

	switch {
	case err != nil && r.opts.swallowErrors:
		log.Debug("fetch failed (ignored)", zap.Error(err))
		metrics.ObserveRefresh(r.opts.name, "swallowed")
		r.snap.State = r.settled
	case err != nil:
		log.Warn("fetch failed", zap.Error(err))
		metrics.ObserveRefresh(r.opts.name, "failed")
		r.snap.State = Failed
		r.snap.Err = err.Error()
	default:
		metrics.ObserveRefresh(r.opts.name, "committed")
		r.snap.State = Success
		r.snap.Data = data
		r.snap.Err = ""
		r.snap.UpdatedAt = r.opts.now()
	}

	r.settled = r.snap.State
	r.publishLocked()
	return r.snap
}

// Mutate applies a local update to the current data (e.g. an event pushed
// over the realtime channel) without a round trip.
func (r *Resource[T]) Mutate(fn func(T) T) Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Data = fn(r.snap.Data)
	// Local data counts as loaded, even when it lands mid-fetch.
	if r.settled == Idle {
		r.settled = Success
	}
	if r.snap.State == Idle {
		r.snap.State = Success
	}
	r.snap.UpdatedAt = r.opts.now()
	r.publishLocked()
	return r.snap
}

// Poll fetches immediately and then every interval until ctx is done, without
// waiting for the previous fetch to finish. It returns after in-flight
// fetches have returned.
func (r *Resource[T]) Poll(ctx context.Context, interval time.Duration) {
	r.poll(ctx, interval, true)
}

// PollAfter is Poll without the immediate fetch, for callers that have just
// fetched themselves.
func (r *Resource[T]) PollAfter(ctx context.Context, interval time.Duration) {
	r.poll(ctx, interval, false)
}

func (r *Resource[T]) poll(ctx context.Context, interval time.Duration, immediate bool) {
	var wg sync.WaitGroup
	defer wg.Wait()

	launch := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Refetch(ctx)
		}()
	}

	if immediate {
		launch()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			launch()
		}
	}
}

// publishLocked notifies subscribers; r.mu must be held. Subscribers must not
// call back into the resource.
func (r *Resource[T]) publishLocked() {
	snap := r.snap
	for _, fn := range r.subs {
		fn(snap)
	}
}
