package concurrent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
)

func testEntry(id int) *domain.JournalEntry {
	return &domain.JournalEntry{ID: fmt.Sprintf("j-%d", id)}
}

func TestWorkerPoolProcessesAllEntries(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]bool)

	pool := NewWorkerPool(3, 16, func(entry *domain.JournalEntry) error {
		mu.Lock()
		seen[entry.ID] = true
		mu.Unlock()
		return nil
	}, logger.NewNop())

	pool.Start()
	defer pool.Stop()

	for i := 0; i < 10; i++ {
		require.True(t, pool.Submit(testEntry(i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.Drain(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, seen, 10)

	stats := pool.GetStats()
	assert.Equal(t, int64(10), stats.Submitted)
	assert.Equal(t, int64(10), stats.Completed)
	assert.Equal(t, int64(0), stats.Failed)
}

func TestWorkerPoolCountsFailures(t *testing.T) {
	pool := NewWorkerPool(2, 16, func(entry *domain.JournalEntry) error {
		if entry.ID == "j-1" || entry.ID == "j-3" {
			return errors.New("validation failed")
		}
		return nil
	}, logger.NewNop())

	pool.Start()
	defer pool.Stop()

	for i := 0; i < 5; i++ {
		require.True(t, pool.Submit(testEntry(i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pool.Drain(ctx))

	stats := pool.GetStats()
	assert.Equal(t, int64(3), stats.Completed)
	assert.Equal(t, int64(2), stats.Failed)
}

func TestWorkerPoolRejectsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})

	pool := NewWorkerPool(1, 1, func(entry *domain.JournalEntry) error {
		<-block
		return nil
	}, logger.NewNop())

	pool.Start()
	defer func() {
		close(block)
		pool.Stop()
	}()

	// Fill the single worker and the single queue slot, then overflow.
	require.True(t, pool.Submit(testEntry(0)))

	accepted := 0
	rejected := 0
	deadline := time.After(2 * time.Second)
	for accepted < 1 || rejected < 1 {
		select {
		case <-deadline:
			t.Fatalf("queue never filled: accepted=%d rejected=%d", accepted, rejected)
		default:
		}
		if pool.Submit(testEntry(accepted + rejected + 1)) {
			accepted++
		} else {
			rejected++
		}
	}

	stats := pool.GetStats()
	assert.GreaterOrEqual(t, stats.Rejected, int64(1))
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(1, 4, func(entry *domain.JournalEntry) error {
		return nil
	}, logger.NewNop())

	pool.Start()
	pool.Stop()

	assert.False(t, pool.Submit(testEntry(1)))
}

func TestWorkerPoolQueueCapacity(t *testing.T) {
	pool := NewWorkerPool(2, 32, func(entry *domain.JournalEntry) error {
		return nil
	}, logger.NewNop())

	assert.Equal(t, 32, pool.QueueCapacity())
	assert.Equal(t, 0, pool.QueueLength())
}

func TestStatsCollectorAverage(t *testing.T) {
	sc := NewStatsCollector()

	sc.IncrementSubmitted()
	sc.IncrementSubmitted()
	sc.IncrementCompleted()
	sc.IncrementCompleted()
	sc.RecordProcessingTime(10 * time.Millisecond)
	sc.RecordProcessingTime(30 * time.Millisecond)

	stats := sc.GetStats()
	assert.Equal(t, int64(2), stats.Submitted)
	assert.Equal(t, int64(2), stats.Completed)
	assert.Equal(t, 20*time.Millisecond, stats.AvgProcessTime)
}
