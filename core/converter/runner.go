package converter

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// RunState is the runner's lifecycle: Idle → Running → Completed. A
// completed runner must be Reset before it accepts another batch.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
)

// ErrRunInProgress is returned when Start is called while a run is active.
// Runs are never queued or interleaved.
var ErrRunInProgress = errors.New("a run is already in progress on this runner")

// ItemProcessor converts one item and reports its outcome. Implementations
// fold every failure into the result; they do not return errors.
type ItemProcessor interface {
	Process(item *FileItem) ItemResult
}

// Runner owns one batch at a time and processes its items strictly in
// order on a single background worker. The caller stays unblocked and
// reads progress, error and completion events from the channel returned
// by Start. Items are owned by the worker until the completion event
// fires; callers must not touch their status fields mid-run.
type Runner struct {
	mu     sync.Mutex
	state  RunState
	pool   *ants.Pool
	logger *zap.Logger
}

// NewRunner creates an idle runner with its dedicated worker. The pool is
// sized to one on purpose: item processing within a run is sequential to
// bound CPU and I/O contention from the external encoder and to keep
// progress accounting exact.
func NewRunner(logger *zap.Logger) (*Runner, error) {
	pool, err := ants.NewPool(1, ants.WithNonblocking(false))
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	return &Runner{
		state:  StateIdle,
		pool:   pool,
		logger: logger,
	}, nil
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Start begins processing batch on the background worker and returns the
// run's event channel. The channel is buffered so the worker never blocks
// on a slow consumer, and is closed after the completion event. Starting
// while another run is active fails with ErrRunInProgress without
// disturbing the in-flight run.
func (r *Runner) Start(batch *Batch, processor ItemProcessor) (<-chan Event, error) {
	r.mu.Lock()
	if r.state == StateRunning {
		r.mu.Unlock()
		return nil, ErrRunInProgress
	}
	r.state = StateRunning
	r.mu.Unlock()

	// Worst case one progress plus one error event per item, plus the
	// completion event.
	events := make(chan Event, 2*batch.Len()+1)

	err := r.pool.Submit(func() {
		results := r.process(batch, processor, events)

		r.mu.Lock()
		r.state = StateCompleted
		r.mu.Unlock()

		events <- CompleteEvent{Results: results}
		close(events)
	})
	if err != nil {
		r.mu.Lock()
		r.state = StateIdle
		r.mu.Unlock()
		close(events)
		return nil, fmt.Errorf("submitting run to worker: %w", err)
	}

	return events, nil
}

// Reset returns a completed runner to Idle so it can accept a new batch.
func (r *Runner) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		return ErrRunInProgress
	}
	r.state = StateIdle
	return nil
}

// Close releases the worker pool. The runner is unusable afterwards.
func (r *Runner) Close() {
	r.pool.Release()
}

// process is the item loop, run entirely on the worker. It always
// completes: one bad item becomes one failed entry, never an aborted
// batch.
func (r *Runner) process(batch *Batch, processor ItemProcessor, events chan<- Event) BatchResult {
	total := batch.Len()
	results := make(BatchResult, total)

	r.logger.Info("run started",
		zap.String("kind", string(batch.Kind)),
		zap.Int("items", total),
		zap.String("output_dir", batch.OutputDir))

	for index, item := range batch.Items {
		item.Status = StatusProcessing

		result := r.processItem(item, processor)

		if result.Success {
			item.Status = StatusSucceeded
		} else {
			item.Status = StatusFailed
			events <- ErrorEvent{
				Message: fmt.Sprintf("%s failed: %s", item.DisplayName, result.ErrorMessage),
			}
			r.logger.Warn("item failed",
				zap.String("file", item.SourcePath),
				zap.String("error", result.ErrorMessage))
		}

		results[item.SourcePath] = result

		events <- ProgressEvent{
			Percent: progressPercent(index+1, total),
			Message: progressMessage(item),
		}
	}

	r.logger.Info("run completed",
		zap.Int("succeeded", results.Succeeded()),
		zap.Int("failed", results.Failed()))

	return results
}

// processItem invokes the processor with panic containment. An unexpected
// internal fault downgrades to a failed result for that item only.
func (r *Runner) processItem(item *FileItem, processor ItemProcessor) (result ItemResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("item processing panicked",
				zap.String("file", item.SourcePath),
				zap.Any("panic", rec))
			result = ItemResult{
				Success:      false,
				ErrorMessage: fmt.Sprintf("internal error while processing %s: %v", item.DisplayName, rec),
			}
		}
	}()
	return processor.Process(item)
}

func progressPercent(done, total int) int {
	return int(math.Round(100 * float64(done) / float64(total)))
}

func progressMessage(item *FileItem) string {
	verb := "converting"
	if item.Kind == KindVideo {
		verb = "compressing"
	}
	return verb + ": " + item.DisplayName
}
