// Package cache provides an optional Redis-backed cache for fetched
// Pokémon list pages.
//
// The PokéAPI index is near-static, so pages are cached under a
// deterministic (offset, limit) key with a fixed freshness window
// instead of honoring upstream cache headers. Caching is best effort:
// every cache failure falls back to a direct fetch.
//
// Example usage:
//
//	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(rdb, 10*time.Minute)
//
//	entry, err := cache.NewEntry(page)
//	if err == nil {
//		_ = manager.Set(ctx, cache.PageKey{Offset: 0, Limit: 100}, entry)
//	}
package cache
