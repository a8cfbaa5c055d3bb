// Package state holds the reactive list state that drives the UI:
// current items, a loading flag, and an optional error message.
package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/avdejs/pokefetch/pkg/client"
)

// subscriberBuffer sizes each subscription channel. A refresh cycle
// publishes exactly two snapshots, so a small buffer is ample for any
// subscriber that drains between refreshes.
const subscriberBuffer = 16

// Fetcher fetches one page of the Pokémon index.
// *client.Client satisfies it; tests supply stubs.
type Fetcher interface {
	FetchList(ctx context.Context, offset, limit int) (*client.Page, error)
}

// Snapshot is one immutable observation of the list state.
type Snapshot struct {
	// Items are the entries of the most recent successful fetch.
	Items []client.Pokemon

	// Loading is true while a refresh is in flight.
	Loading bool

	// ErrMsg is a display message for the last failure, empty on success.
	ErrMsg string
}

// ListState orchestrates one fetch at a time and publishes state
// transitions to subscribers.
type ListState struct {
	fetcher Fetcher
	offset  int
	limit   int
	logger  zerolog.Logger

	mu      sync.RWMutex
	items   []client.Pokemon
	loading bool
	errMsg  string
	subs    map[int]chan Snapshot
	nextSub int
}

// New creates an empty, idle list state backed by fetcher.
// A non-positive limit falls back to client.DefaultLimit.
func New(fetcher Fetcher, limit int) *ListState {
	if limit <= 0 {
		limit = client.DefaultLimit
	}
	return &ListState{
		fetcher: fetcher,
		limit:   limit,
		logger:  log.With().Str("component", "list-state").Logger(),
		subs:    make(map[int]chan Snapshot),
	}
}

// Items returns the current items.
func (s *ListState) Items() []client.Pokemon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// IsLoading reports whether a refresh is in flight.
func (s *ListState) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ErrorMessage returns the display message for the last failure,
// or "" when the last refresh succeeded.
func (s *ListState) ErrorMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Offset returns the current pagination offset.
func (s *ListState) Offset() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

// SetOffset moves the pagination window for the next refresh.
// Negative offsets clamp to zero.
func (s *ListState) SetOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	s.mu.Lock()
	s.offset = offset
	s.mu.Unlock()
}

// Snapshot returns the current state as one consistent observation.
func (s *ListState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Items: s.items, Loading: s.loading, ErrMsg: s.errMsg}
}

// Subscribe registers a subscriber and returns its snapshot channel
// plus an unsubscribe function. Snapshots are sent non-blocking; a
// subscriber that stops draining loses updates, not the whole program.
func (s *ListState) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, subscriberBuffer)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Refresh starts one fetch cycle in the background. A call made while
// a previous refresh is still in flight is dropped.
func (s *ListState) Refresh(ctx context.Context) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		s.logger.Debug().Msg("Refresh dropped, fetch already in flight")
		return
	}
	s.loading = true
	s.errMsg = ""
	offset, limit := s.offset, s.limit
	s.mu.Unlock()

	s.publish()

	go s.fetch(ctx, offset, limit)
}

// fetch runs the fetch and applies the terminal transition.
func (s *ListState) fetch(ctx context.Context, offset, limit int) {
	page, err := s.fetcher.FetchList(ctx, offset, limit)

	s.mu.Lock()
	if err != nil {
		s.items = nil
		s.errMsg = MessageFor(err)
		s.logger.Warn().
			Err(err).
			Int("offset", offset).
			Int("limit", limit).
			Msg("Refresh failed")
	} else {
		s.items = page.Pokemon
		s.errMsg = ""
		s.logger.Debug().
			Int("offset", offset).
			Int("limit", limit).
			Int("count", len(page.Pokemon)).
			Msg("Refresh succeeded")
	}
	s.loading = false
	s.mu.Unlock()

	s.publish()
}

// publish sends the current snapshot to every subscriber.
func (s *ListState) publish() {
	s.mu.RLock()
	snap := Snapshot{Items: s.items, Loading: s.loading, ErrMsg: s.errMsg}
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default: // Non-blocking if channel full
		}
	}
	s.mu.RUnlock()
}
