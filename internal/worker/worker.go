package worker

import (
	"log/slog"

	"github.com/gammazero/workerpool"

	"github.com/bdougie/videoanalyzer/internal/models"
)

const defaultWorkers = 4

// Job is a blocking unit of work that produces response text
type Job func() (string, error)

// Dispatcher runs blocking jobs on a pool of goroutines so the caller is free
// to do other work until the result arrives.
type Dispatcher struct {
	pool   *workerpool.WorkerPool
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with the specified number of workers
func NewDispatcher(numWorkers int, logger *slog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		pool:   workerpool.New(numWorkers),
		logger: logger,
	}
}

// Dispatch queues the job and returns immediately. The returned channel
// receives exactly one result and is then closed.
func (d *Dispatcher) Dispatch(job Job) <-chan models.Result {
	resultChan := make(chan models.Result, 1)

	d.pool.Submit(func() {
		defer close(resultChan)

		text, err := job()
		resultChan <- models.Result{Text: text, Err: err}
	})

	d.logger.Debug("job dispatched", "waiting", d.pool.WaitingQueueSize())
	return resultChan
}

// Close waits for all queued jobs to finish and stops the workers
func (d *Dispatcher) Close() {
	d.pool.StopWait()
}
