// Package parallel schedules independent per-sample work across goroutines.
//
// Used to build the forward graphs of a batch concurrently. Callers must only
// share read-only state between iterations; gradient accumulation is never
// run through this package.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use (<= 0: NumCPU).
	MinChunkSize int  // Minimum samples per goroutine to avoid overhead.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 16, // Small batches are cheaper to build sequentially.
	}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
// Each index is visited exactly once and For returns after all calls finish.
func For(n int, f func(i int), cfg Config) {
	minChunk := max(cfg.MinChunkSize, 1)
	if !cfg.Enabled || n < minChunk || n < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := cfg.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	chunkSize := max((n+workers-1)/workers, minChunk)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
