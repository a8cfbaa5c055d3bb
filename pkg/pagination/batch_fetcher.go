package pagination

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avdejs/pokefetch/pkg/client"
)

// Config holds batch fetcher configuration
type Config struct {
	// MaxConcurrency is the maximum number of parallel requests.
	// Keep this low out of courtesy to the public API.
	MaxConcurrency int
	// PageSize is the window size per request
	PageSize int
	// Timeout per window fetch
	Timeout time.Duration
}

// DefaultConfig returns safe default configuration
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 5,
		PageSize:       client.DefaultLimit,
		Timeout:        15 * time.Second,
	}
}

// ListFetcher is the interface the batch fetcher needs for single-window
// fetching. *client.Client satisfies it.
type ListFetcher interface {
	FetchList(ctx context.Context, offset, limit int) (*client.Page, error)
}

// windowResult represents the result of fetching a single offset window
type windowResult struct {
	Offset  int
	Pokemon []client.Pokemon
	Error   error
}

// BatchFetcher handles parallel fetching of the whole index
type BatchFetcher struct {
	fetcher ListFetcher
	config  Config
}

// NewBatchFetcher creates a new batch fetcher
func NewBatchFetcher(fetcher ListFetcher, config Config) *BatchFetcher {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 5
	}
	if config.PageSize <= 0 {
		config.PageSize = client.DefaultLimit
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}

	return &BatchFetcher{
		fetcher: fetcher,
		config:  config,
	}
}

// FetchAll fetches every entry of the index in parallel using a worker pool.
// Entries come back in index order. On worker failure the entries fetched so
// far are returned along with the error.
func (bf *BatchFetcher) FetchAll(ctx context.Context) ([]client.Pokemon, error) {
	start := time.Now()

	// Fetch first window to learn the total count
	first, err := bf.fetcher.FetchList(ctx, 0, bf.config.PageSize)
	if err != nil {
		return nil, fmt.Errorf("fetch first window: %w", err)
	}

	log.Info().
		Int("count", first.Count).
		Int("page_size", bf.config.PageSize).
		Msg("Starting parallel index fetch")

	// Single window optimization
	if first.Count <= bf.config.PageSize {
		log.Info().
			Int("entries", len(first.Pokemon)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (single window)")
		return first.Pokemon, nil
	}

	totalWindows := (first.Count + bf.config.PageSize - 1) / bf.config.PageSize

	results := make(map[int][]client.Pokemon, totalWindows)
	results[0] = first.Pokemon
	resultsMutex := sync.Mutex{}

	offsetQueue := make(chan int, totalWindows)
	windowResults := make(chan windowResult, totalWindows)
	errs := make(chan error, bf.config.MaxConcurrency)

	// Fill offset queue (skip the first window, already fetched)
	go func() {
		for w := 1; w < totalWindows; w++ {
			offsetQueue <- w * bf.config.PageSize
		}
		close(offsetQueue)
	}()

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < bf.config.MaxConcurrency; i++ {
		wg.Add(1)
		go bf.worker(ctx, offsetQueue, windowResults, errs, &wg, i)
	}

	// Close results channel when all workers done
	go func() {
		wg.Wait()
		close(windowResults)
		close(errs)
	}()

	// Collect results
	fetchedWindows := 1 // First window already fetched
	for result := range windowResults {
		if result.Error != nil {
			log.Warn().
				Err(result.Error).
				Int("offset", result.Offset).
				Msg("Window fetch failed")
			continue
		}

		resultsMutex.Lock()
		results[result.Offset] = result.Pokemon
		fetchedWindows++
		resultsMutex.Unlock()
	}

	merged := mergeWindows(results)

	// Check for errors
	select {
	case err := <-errs:
		if err != nil {
			log.Warn().
				Err(err).
				Int("fetched_windows", fetchedWindows).
				Int("total_windows", totalWindows).
				Msg("Worker error - returning partial results")
			return merged, fmt.Errorf("worker error (partial data: %d/%d windows): %w",
				fetchedWindows, totalWindows, err)
		}
	default:
	}

	log.Info().
		Int("entries", len(merged)).
		Int("windows", fetchedWindows).
		Int("total", totalWindows).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return merged, nil
}

// worker processes offsets from the queue
func (bf *BatchFetcher) worker(ctx context.Context, offsetQueue <-chan int, results chan<- windowResult, errs chan<- error, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	windowsProcessed := 0

	for offset := range offsetQueue {
		select {
		case <-ctx.Done():
			log.Debug().
				Int("worker_id", workerID).
				Int("windows_processed", windowsProcessed).
				Msg("Worker stopping (context cancelled)")
			return
		default:
		}

		windowCtx, cancel := context.WithTimeout(ctx, bf.config.Timeout)
		page, err := bf.fetcher.FetchList(windowCtx, offset, bf.config.PageSize)
		cancel()

		if err != nil {
			log.Warn().
				Err(err).
				Int("worker_id", workerID).
				Int("offset", offset).
				Msg("Window fetch failed")

			// Non-blocking error send
			select {
			case errs <- err:
			default:
			}
			return
		}

		select {
		case results <- windowResult{Offset: offset, Pokemon: page.Pokemon}:
		case <-ctx.Done():
			log.Debug().
				Int("worker_id", workerID).
				Int("windows_processed", windowsProcessed).
				Msg("Worker stopping (context cancelled after fetch)")
			return
		}

		windowsProcessed++
	}

	if windowsProcessed > 0 {
		log.Debug().
			Int("worker_id", workerID).
			Int("windows_processed", windowsProcessed).
			Msg("Worker completed")
	}
}

// mergeWindows flattens fetched windows into one slice ordered by offset.
func mergeWindows(results map[int][]client.Pokemon) []client.Pokemon {
	offsets := make([]int, 0, len(results))
	for offset := range results {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	var merged []client.Pokemon
	for _, offset := range offsets {
		merged = append(merged, results[offset]...)
	}
	return merged
}
