package cache

import "fmt"

// PageKey identifies a cached list page by its pagination window.
type PageKey struct {
	Offset int
	Limit  int
}

// String generates a deterministic cache key string.
//
// Example:
//
//	pokeapi:pokemon:offset=0:limit=100
func (k PageKey) String() string {
	return fmt.Sprintf("pokeapi:pokemon:offset=%d:limit=%d", k.Offset, k.Limit)
}
