package pool

import (
	"context"
	"sync"
)

// WorkerFunc defines the function signature for a worker that processes an item and may return an error.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run executes a worker pool. It processes a slice of items concurrently with
// numWorkers goroutines and returns the errors that occurred, in no
// particular order. Cancelling the context stops feeding new items; items
// already picked up still finish.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T]) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	taskChan := make(chan T, numWorkers)

	var (
		wg        sync.WaitGroup
		errMu     sync.Mutex
		allErrors []error
	)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range taskChan {
				if ctx.Err() != nil {
					return
				}
				if err := workerFunc(ctx, item); err != nil {
					errMu.Lock()
					allErrors = append(allErrors, err)
					errMu.Unlock()
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case taskChan <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(taskChan)

	wg.Wait()
	return allErrors
}
