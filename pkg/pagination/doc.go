// Package pagination provides parallel batch fetching of the full
// Pokémon index.
//
// The PokéAPI list endpoint reports the total entry count on every
// page, so the batch fetcher pulls the first window to learn the
// count, then fans the remaining offset windows across a worker pool
// and merges the results in index order.
//
// Example usage:
//
//	fetcher := pagination.NewBatchFetcher(apiClient, pagination.DefaultConfig())
//	all, err := fetcher.FetchAll(ctx)
//
// The batch fetcher:
//   - Fetches the first window to determine the total count
//   - Spawns a worker pool (default 5 workers)
//   - Distributes remaining offsets across workers
//   - Collects results with progress logging
//   - Handles errors gracefully (returns partial data)
package pagination
