// Package store holds the result of one earthquake feed fetch and shares it
// with every observer.
//
// A Store moves through Idle → Loading → Ready | Failed exactly once. The first
// Activate call starts the fetch; later calls are no-ops, so a fresh fetch
// needs a new Store. Observers subscribed before resolution are notified once
// when the fetch completes, and observers subscribed afterwards are called
// immediately with the same *Result.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/quake-feed-service/internal/domain"
	"github.com/couchcryptid/quake-feed-service/internal/observability"
	"github.com/google/uuid"
)

// Fetcher retrieves the raw feed body for a query URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// State is the lifecycle position of a Store.
type State int32

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Terminal reports whether no further transitions can occur.
func (s State) Terminal() bool {
	return s == Ready || s == Failed
}

// Result is the published outcome of a fetch. Err is nil on success; an
// empty feed is a success with no events.
type Result struct {
	Events    []domain.EarthquakeEvent
	Skipped   int
	Err       error
	FetchedAt time.Time
}

// OK reports whether the fetch succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Observer receives the terminal result of a Store.
type Observer func(*Result)

// Store is a single-entry, single-flight cache for the earthquake feed.
type Store struct {
	baseURL   string
	fetcher   Fetcher
	logger    *slog.Logger
	metrics   *observability.Metrics
	sessionID string

	mu        sync.Mutex
	state     State
	result    *Result
	observers []Observer
	done      chan struct{}
}

// New creates an idle Store that will query baseURL through fetcher. The
// state gauge in metrics changes only on transitions, so a new Store does not
// overwrite the state reported by an earlier one sharing the same metrics.
func New(baseURL string, fetcher Fetcher, logger *slog.Logger, metrics *observability.Metrics) *Store {
	sessionID := uuid.NewString()
	return &Store{
		baseURL:   baseURL,
		fetcher:   fetcher,
		logger:    logger.With("session_id", sessionID),
		metrics:   metrics,
		sessionID: sessionID,
		done:      make(chan struct{}),
	}
}

// SessionID identifies this Store in logs.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Activate starts the fetch if the Store is idle and returns without waiting
// for it. An invalid config is returned as domain.ErrInvalidConfig and leaves
// the Store idle. The fetch runs to completion even if ctx is canceled.
func (s *Store) Activate(ctx context.Context, cfg domain.QueryConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Idle {
		return nil
	}

	feedURL, err := domain.BuildQueryURL(s.baseURL, cfg)
	if err != nil {
		return err
	}

	s.setState(Loading)
	go s.load(context.WithoutCancel(ctx), feedURL)
	return nil
}

// Subscribe registers fn for the terminal result. fn runs immediately if the
// Store has already resolved, otherwise exactly once on resolution.
func (s *Store) Subscribe(fn Observer) {
	s.metrics.StoreObservers.Inc()

	s.mu.Lock()
	if s.state.Terminal() {
		res := s.result
		s.mu.Unlock()
		fn(res)
		return
	}
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Wait blocks until the Store resolves or ctx is done.
func (s *Store) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Snapshot returns the current state and, once terminal, the result.
func (s *Store) Snapshot() (State, *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.result
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	state, _ := s.Snapshot()
	return state
}

// CheckReadiness returns nil once the fetch has resolved, whatever its outcome.
func (s *Store) CheckReadiness(_ context.Context) error {
	switch s.State() {
	case Idle:
		return errors.New("earthquake feed has not been requested")
	case Loading:
		return errors.New("earthquake feed is loading")
	default:
		return nil
	}
}

func (s *Store) load(ctx context.Context, feedURL string) {
	s.logger.Info("fetching earthquake feed", "url", feedURL)

	res := &Result{}
	body, err := s.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		res.Err = fmt.Errorf("load earthquake feed: %w", err)
	} else {
		parsed := domain.ParseFeed(body)
		res.Events = parsed.Events
		res.Skipped = parsed.Skipped
		s.metrics.EventsParsed.Add(float64(len(parsed.Events)))
		s.metrics.EventsSkipped.Add(float64(parsed.Skipped))
		if parsed.Skipped > 0 {
			s.logger.Warn("skipped malformed feed features", "skipped", parsed.Skipped)
		}
	}
	res.FetchedAt = domain.Clock().Now()

	s.resolve(res)
}

// resolve publishes res and notifies pending observers outside the lock.
func (s *Store) resolve(res *Result) {
	s.mu.Lock()
	s.result = res
	if res.OK() {
		s.setState(Ready)
		s.logger.Info("earthquake feed ready", "events", len(res.Events), "skipped", res.Skipped)
	} else {
		s.setState(Failed)
		s.logger.Error("earthquake feed failed", "error", res.Err)
	}
	observers := s.observers
	s.observers = nil
	close(s.done)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(res)
	}
}

// setState must be called with mu held.
func (s *Store) setState(state State) {
	s.state = state
	s.metrics.StoreState.Set(float64(state))
}
