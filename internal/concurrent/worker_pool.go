package concurrent

import (
	"context"
	"sync"
	"time"

	"finaudit/internal/domain"
	"finaudit/pkg/logger"
	"finaudit/pkg/metrics"
)

// EntryProcessor validates one journal entry; a non-nil error counts the
// entry as failed.
type EntryProcessor = func(entry *domain.JournalEntry) error

type WorkerPool struct {
	numWorkers     int
	jobQueue       chan *domain.JournalEntry
	processor      EntryProcessor
	wg             sync.WaitGroup
	ctx            context.Context
	cancel         context.CancelFunc
	logger         logger.Logger
	started        bool
	mutex          sync.Mutex
	statsCollector *StatsCollector
}

func NewWorkerPool(numWorkers int, queueSize int, processor EntryProcessor, logger logger.Logger) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		numWorkers:     numWorkers,
		jobQueue:       make(chan *domain.JournalEntry, queueSize),
		processor:      processor,
		ctx:            ctx,
		cancel:         cancel,
		logger:         logger,
		statsCollector: NewStatsCollector(),
	}
}

func (wp *WorkerPool) Start() {
	wp.mutex.Lock()
	defer wp.mutex.Unlock()

	if wp.started {
		return
	}

	wp.logger.Info("Starting validation worker pool", map[string]interface{}{
		"num_workers": wp.numWorkers,
		"queue_size":  cap(wp.jobQueue),
	})

	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		workerID := i
		go func() {
			defer wp.wg.Done()
			wp.worker(workerID)
		}()
	}

	wp.started = true
}

func (wp *WorkerPool) Stop() {
	wp.mutex.Lock()
	if !wp.started {
		wp.mutex.Unlock()
		return
	}
	wp.started = false
	wp.mutex.Unlock()

	wp.logger.Info("Stopping validation worker pool", map[string]interface{}{})
	wp.cancel()
	close(wp.jobQueue)
	wp.wg.Wait()
}

// Submit enqueues an entry without blocking; a full queue rejects it.
func (wp *WorkerPool) Submit(entry *domain.JournalEntry) bool {
	wp.mutex.Lock()
	if !wp.started {
		wp.mutex.Unlock()
		return false
	}
	wp.mutex.Unlock()

	select {
	case wp.jobQueue <- entry:
		wp.statsCollector.IncrementSubmitted()
		metrics.BatchQueueSize.Set(float64(len(wp.jobQueue)))
		return true
	default:
		wp.statsCollector.IncrementRejected()
		wp.logger.Warn("Validation queue full, entry rejected", map[string]interface{}{
			"entry_id": entry.ID,
		})
		return false
	}
}

func (wp *WorkerPool) worker(id int) {
	for {
		select {
		case <-wp.ctx.Done():
			return
		case entry, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			startTime := time.Now()
			err := wp.processor(entry)
			processingTime := time.Since(startTime)
			metrics.BatchQueueSize.Set(float64(len(wp.jobQueue)))

			if err != nil {
				wp.statsCollector.IncrementFailed()
				wp.logger.Warn("Journal entry failed validation", map[string]interface{}{
					"worker_id":       id,
					"entry_id":        entry.ID,
					"error":           err.Error(),
					"processing_time": processingTime.String(),
				})
			} else {
				wp.statsCollector.IncrementCompleted()
				wp.statsCollector.RecordProcessingTime(processingTime)
			}
		}
	}
}

// Drain blocks until every queued entry has been picked up and
// processed or the context expires.
func (wp *WorkerPool) Drain(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		stats := wp.statsCollector.GetStats()
		if stats.Completed+stats.Failed >= stats.Submitted {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (wp *WorkerPool) GetStats() Stats {
	return wp.statsCollector.GetStats()
}

func (wp *WorkerPool) QueueLength() int {
	return len(wp.jobQueue)
}

func (wp *WorkerPool) QueueCapacity() int {
	return cap(wp.jobQueue)
}
