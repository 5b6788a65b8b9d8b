package practice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kheyfetsdan/wordsaveriii/internal/task"
)

const statTaskType = "word_stat"

// ReportError describes a statistics update that did not reach the server.
type ReportError struct {
	WordID  int64
	Success bool
	Err     error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report stat for word %d: %v", e.WordID, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

// ReporterConfig sizes the background reporter.
type ReporterConfig struct {
	QueueSize   int
	Workers     int
	TaskTimeout time.Duration
}

// DefaultReporterConfig returns a small single-worker setup.
func DefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		QueueSize:   32,
		Workers:     1,
		TaskTimeout: 10 * time.Second,
	}
}

// AsyncReporter sends statistics updates on a worker pool. Failures are
// logged and offered on Errors; nobody is required to read them.
type AsyncReporter struct {
	updater StatUpdater
	queue   *task.TaskQueue
	pool    *task.WorkerPool
	logger  *slog.Logger

	mu        sync.Mutex
	closed    bool
	errs      chan error
	closeOnce sync.Once
}

var _ StatReporter = (*AsyncReporter)(nil)

// NewAsyncReporter starts the workers. Call Close to drain and stop them.
func NewAsyncReporter(updater StatUpdater, cfg ReporterConfig, logger *slog.Logger) *AsyncReporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "stat_reporter")

	queue := task.NewTaskQueue(cfg.QueueSize, logger)
	pool := task.NewWorkerPool(queue, task.WorkerPoolConfig{
		WorkerCount: cfg.Workers,
		TaskTimeout: cfg.TaskTimeout,
	}, logger)

	r := &AsyncReporter{
		updater: updater,
		queue:   queue,
		pool:    pool,
		logger:  logger,
		errs:    make(chan error, cfg.QueueSize+1),
	}
	pool.SetErrorHandler(func(_ task.Task, err error) {
		r.fail(err)
	})
	pool.Start()
	return r
}

// Report implements StatReporter.
func (r *AsyncReporter) Report(wordID int64, success bool) {
	t := task.NewFuncTask(statTaskType, func(ctx context.Context) error {
		if err := r.updater.UpdateStat(ctx, wordID, success); err != nil {
			return &ReportError{WordID: wordID, Success: success, Err: err}
		}
		return nil
	})

	if err := r.queue.Enqueue(t); err != nil {
		r.logger.Warn("stat report dropped", "word_id", wordID, "error", err)
		r.fail(&ReportError{WordID: wordID, Success: success, Err: err})
	}
}

// Errors returns failed reports. The channel is closed by Close.
func (r *AsyncReporter) Errors() <-chan error {
	return r.errs
}

// Close waits for queued reports to finish and closes Errors.
func (r *AsyncReporter) Close() {
	r.closeOnce.Do(func() {
		r.queue.Close()
		r.pool.Wait()

		r.mu.Lock()
		r.closed = true
		close(r.errs)
		r.mu.Unlock()
	})
}

func (r *AsyncReporter) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	select {
	case r.errs <- err:
	default:
	}
}
