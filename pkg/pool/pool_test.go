package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ProcessesAllItems(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	var sum int64
	errs := Run(context.Background(), items, 5, func(ctx context.Context, item int) error {
		atomic.AddInt64(&sum, int64(item))
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(4950), atomic.LoadInt64(&sum))
}

func TestRun_CollectsErrors(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	errs := Run(context.Background(), items, 3, func(ctx context.Context, item int) error {
		if item%2 == 0 {
			return fmt.Errorf("item %d failed", item)
		}
		return nil
	})

	assert.Len(t, errs, 2)
}

func TestRun_CoercesInvalidWorkerCount(t *testing.T) {
	var calls int64
	errs := Run(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, item int) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})

	assert.Empty(t, errs)
	assert.Equal(t, int64(3), atomic.LoadInt64(&calls))
}

func TestRun_CancelledContextStopsFeeding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	items := make([]int, 1000)
	var processed int64
	var once sync.Once

	Run(ctx, items, 2, func(ctx context.Context, item int) error {
		atomic.AddInt64(&processed, 1)
		once.Do(cancel)
		return nil
	})

	assert.Less(t, atomic.LoadInt64(&processed), int64(1000), "cancellation must stop the feed early")
}

func TestRun_EmptyInput(t *testing.T) {
	errs := Run(context.Background(), nil, 4, func(ctx context.Context, item string) error {
		t.Fatal("worker must not run for empty input")
		return nil
	})
	assert.Empty(t, errs)
}
