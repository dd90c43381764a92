package influence

import (
	"context"
	"sync"
)

// parallelFor calls fn(i) for every i in [0, n) using up to workers
// goroutines. fn must only write to state owned by index i. When ctx is
// cancelled no further indices are handed out and ctx.Err() is returned
// after in-flight calls finish.
func parallelFor(ctx context.Context, n, workers int, fn func(i int)) error {
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	// Start workers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	// Send indices to workers
	var err error
feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return err
}
