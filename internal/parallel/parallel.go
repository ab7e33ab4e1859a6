// Package parallel provides the worker helpers used to evaluate independent
// sliding-search offsets concurrently.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// For executes fn for indices [start, end) using n workers. With a single
// worker the loop runs inline on the calling goroutine, preserving iteration
// order; with more, indices are split into contiguous chunks and fn must be
// safe to call concurrently.
func For(start, end, n int, fn func(i int)) {
	if n <= 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	total := end - start
	if total <= 0 {
		return
	}

	var wg sync.WaitGroup
	chunkSize := (total + n - 1) / n

	for w := 0; w < n; w++ {
		chunkStart := start + w*chunkSize
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > end {
			chunkEnd = end
		}
		if chunkStart >= chunkEnd {
			break
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				fn(i)
			}
		}(chunkStart, chunkEnd)
	}

	wg.Wait()
}
