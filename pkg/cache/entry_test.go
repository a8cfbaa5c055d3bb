package cache

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	page := map[string]any{"count": 2, "pokemon": []string{"bulbasaur", "pikachu"}}

	entry, err := NewEntry(page)
	if err != nil {
		t.Fatalf("NewEntry() failed: %v", err)
	}

	if len(entry.Data) == 0 {
		t.Error("Entry data should not be empty")
	}
	if entry.CachedAt.IsZero() {
		t.Error("CachedAt should be set")
	}

	var decoded map[string]any
	if err := json.Unmarshal(entry.Data, &decoded); err != nil {
		t.Fatalf("Entry data is not valid JSON: %v", err)
	}
}

func TestNewEntry_Unmarshalable(t *testing.T) {
	if _, err := NewEntry(make(chan int)); err == nil {
		t.Error("Expected error for unmarshalable value")
	}
}

func TestEntry_IsExpired(t *testing.T) {
	fresh := &Entry{Expires: time.Now().Add(time.Minute)}
	if fresh.IsExpired() {
		t.Error("Entry expiring in a minute should not be expired")
	}

	stale := &Entry{Expires: time.Now().Add(-time.Minute)}
	if !stale.IsExpired() {
		t.Error("Entry expired a minute ago should be expired")
	}
}

func TestEntry_TTL(t *testing.T) {
	fresh := &Entry{Expires: time.Now().Add(time.Minute)}
	if ttl := fresh.TTL(); ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL() = %v, want in (0, 1m]", ttl)
	}

	stale := &Entry{Expires: time.Now().Add(-time.Minute)}
	if ttl := stale.TTL(); ttl != 0 {
		t.Errorf("TTL() of expired entry = %v, want 0", ttl)
	}
}
