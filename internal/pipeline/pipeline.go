package pipeline

import (
	"context"
	"runtime"
	"sync"
)

// Task handles the item at index i.
type Task func(ctx context.Context, i int) error

// Run calls fn for every index in [0, n) on a bounded worker pool and returns
// the errors it produced. Dispatch stops once ctx is done and ctx.Err() is
// reported alongside any task errors.
func Run(ctx context.Context, n, workers int, fn Task) []error {
	if n <= 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	workers = min(workers, n)

	jobs := make(chan int)
	errs := make(chan error, n+1)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := fn(ctx, i); err != nil {
					errs <- err
				}
			}
		}()
	}

dispatch:
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errs <- err
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			errs <- ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}
