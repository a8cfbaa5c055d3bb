package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entry represents a cached list page.
type Entry struct {
	// Data is the marshaled page.
	Data []byte `json:"data"`

	// CachedAt is when the page was stored.
	CachedAt time.Time `json:"cached_at"`

	// Expires is when the entry becomes stale. Set by the manager on store.
	Expires time.Time `json:"expires"`
}

// NewEntry marshals v into a fresh cache entry.
func NewEntry(v any) (*Entry, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal page: %w", err)
	}

	return &Entry{
		Data:     data,
		CachedAt: time.Now(),
	}, nil
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
