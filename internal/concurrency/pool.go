// Package concurrency provides a bounded worker pool for running
// independent per-item work in parallel while still reducing results
// in canonical (input) order, so that parallelism inside a turn phase
// never perturbs the deterministic ordering spec §5 requires.
//
// Grounded on the teacher's internal/locker.ConcurrentLocker, which
// hands out a fixed number of slots from a buffered channel so that a
// bounded number of callers can work concurrently while the rest wait.
// This package keeps that "channel of N slots" shape but repurposes it
// from per-resource mutual exclusion into a worker pool that fans a
// slice of jobs out across min(N, len(jobs)) goroutines and gathers
// their results back into a slice addressed by the job's original
// index, never by completion order.
package concurrency

import (
	"sync"

	"github.com/spf13/viper"
)

// configuration mirrors the teacher's Concurrent.LockCount setting,
// repurposed as the worker pool's concurrency cap.
type configuration struct {
	Workers int
}

func parseConfiguration() configuration {
	config := configuration{Workers: 10}
	if viper.IsSet("Concurrent.Workers") {
		config.Workers = viper.GetInt("Concurrent.Workers")
	}
	return config
}

// Pool runs a fixed number of worker goroutines processing jobs off a
// shared channel of slots, same acquire/release idiom as the teacher's
// ConcurrentLocker but driving worker dispatch instead of resource
// exclusion.
type Pool struct {
	workers int
}

// New creates a Pool sized from configuration (default 10 workers,
// overridable via Concurrent.Workers), clamped to at least 1.
func New() *Pool {
	cfg := parseConfiguration()
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Pool{workers: cfg.Workers}
}

// Map runs fn over every item in items using up to p.workers goroutines
// concurrently, then returns the results in the same order as items —
// result[i] is always fn(items[i]), regardless of which worker finished
// first. A panic inside fn propagates to the caller of Map after every
// in-flight job finishes, same as a plain synchronous loop would.
func Map[T any, R any](p *Pool, items []T, fn func(T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	workers := p.workers
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	var panicOnce sync.Once
	var panicVal any
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() { panicVal = r })
				}
			}()
			for i := range jobs {
				results[i] = fn(items[i])
			}
		}()
	}
	wg.Wait()
	if panicVal != nil {
		panic(panicVal)
	}

	return results
}
