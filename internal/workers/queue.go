// Package workers runs background tasks on a pool of goroutines fed by a
// buffered channel.
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrQueueFull is returned by Submit when the buffer has no free slot.
	ErrQueueFull = errors.New("task queue is full")
	// ErrQueueClosed is returned by Submit once Shutdown has been called.
	ErrQueueClosed = errors.New("task queue is closed")
)

// Handler processes the arguments of one task.
type Handler func(ctx context.Context, args []any) error

// Task is a unit of work waiting in the queue.
type Task struct {
	ID   string
	Name string
	Args []any
}

// Options configures a Queue.
type Options struct {
	BufferSize int
	MaxRetries int // attempts after the first failure
	RetryDelay time.Duration
}

// Queue dispatches submitted tasks to registered handlers.
// Delivery is at-least-once within the process lifetime; tasks are not
// ordered relative to each other.
type Queue struct {
	opts     Options
	logger   *slog.Logger
	tasks    chan Task
	handlers map[string]Handler

	mu     sync.RWMutex
	closed bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewQueue creates a queue. Handlers must be registered before Start.
func NewQueue(opts Options, logger *slog.Logger) *Queue {
	if opts.BufferSize < 1 {
		opts.BufferSize = 1
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		opts:     opts,
		logger:   logger.With("component", "workers"),
		tasks:    make(chan Task, opts.BufferSize),
		handlers: make(map[string]Handler),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Register binds a handler to a task name, replacing any previous one.
func (q *Queue) Register(name string, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[name] = h
}

// Start launches workerCount goroutines consuming the queue.
func (q *Queue) Start(workerCount int) {
	q.logger.Info("starting task workers", "count", workerCount, "buffer", cap(q.tasks))
	for i := 0; i < workerCount; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Submit enqueues a task without blocking.
func (q *Queue) Submit(name string, args ...any) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	task := Task{ID: uuid.NewString(), Name: name, Args: args}
	select {
	case q.tasks <- task:
		q.logger.Debug("task submitted", "task", name, "task_id", task.ID)
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for the workers to drain the
// buffer. If ctx expires first, running handlers see their context cancelled
// and the tasks still buffered are dropped without running.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.cancel()
		q.logger.Info("task workers stopped")
		return nil
	case <-ctx.Done():
		q.cancel()
		return fmt.Errorf("task queue shutdown: %w", ctx.Err())
	}
}

// worker consumes tasks until the channel is closed. Once the shutdown
// deadline has passed, the tasks still buffered are discarded without
// calling their handlers.
func (q *Queue) worker(id int) {
	defer q.wg.Done()
	abandoned := 0
	for task := range q.tasks {
		if q.ctx.Err() != nil {
			abandoned++
			continue
		}
		q.process(id, task)
	}
	if abandoned > 0 {
		q.logger.Warn("tasks abandoned at shutdown", "worker", id, "count", abandoned)
	}
}

func (q *Queue) process(workerID int, task Task) {
	log := q.logger.With("task", task.Name, "task_id", task.ID, "worker", workerID)

	q.mu.RLock()
	handler, ok := q.handlers[task.Name]
	q.mu.RUnlock()
	if !ok {
		log.Error("no handler registered for task, dropping it")
		return
	}

	for attempt := 0; ; attempt++ {
		err := q.run(handler, task)
		if err == nil {
			if attempt > 0 {
				log.Info("task succeeded after retry", "attempt", attempt+1)
			}
			return
		}
		if IsPermanent(err) {
			log.Error("task failed permanently", "error", err)
			return
		}
		if attempt >= q.opts.MaxRetries {
			log.Error("task failed, giving up", "attempts", attempt+1, "error", err)
			return
		}

		log.Warn("task failed, retrying", "attempt", attempt+1, "delay", q.opts.RetryDelay, "error", err)
		select {
		case <-time.After(q.opts.RetryDelay):
		case <-q.ctx.Done():
			log.Error("task abandoned during shutdown", "error", err)
			return
		}
	}
}

// run calls the handler, turning a panic into a permanent failure.
func (q *Queue) run(handler Handler, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Permanent(fmt.Errorf("panic in task handler: %v", r))
		}
	}()
	return handler(q.ctx, task.Args)
}
