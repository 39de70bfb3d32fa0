package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Parallelize splits items across the available CPU cores and runs fn
// on each contiguous index range [start, end) in its own goroutine.
func Parallelize(items int, fn func(start, end int)) {
	if items == 0 {
		return
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	// Ceiling division so every item is covered.
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at or
// below threshold, and in parallel otherwise. Small workloads are not
// worth the goroutine fan-out.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ParallelizeWithError runs fn on every item index in parallel. fn is
// called once per item, not per range, so callers with per-item units
// of work (e.g. dataset partitions) do not need to re-chunk. The first
// error reported stops the remaining items: workers check a shared
// failure flag before starting each item and skip the rest once it is
// set. All workers are joined before the recorded error is returned.
func ParallelizeWithError(items int, fn func(i int) error) error {
	if items == 0 {
		return nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > items {
		numWorkers = items
	}

	var (
		wg       sync.WaitGroup
		next     int64 = -1
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
	)

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= items || failed.Load() {
					return
				}
				if err := fn(i); err != nil {
					errOnce.Do(func() { firstErr = err })
					failed.Store(true)
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}
