package importer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripdesk/internal/domain"
	"tripdesk/internal/port"
)

// QueueConfig holds settings for the submission queue.
type QueueConfig struct {
	// MinInterval is the minimum spacing between consecutive dispatches.
	MinInterval time.Duration
	// BackoffStart is the first capacity-retry delay; it doubles per retry
	// up to BackoffCap.
	BackoffStart time.Duration
	BackoffCap   time.Duration
	// MaxAttempts bounds total tries per job, the first included.
	MaxAttempts int
}

func (c QueueConfig) withDefaults() QueueConfig {
	if c.MinInterval == 0 {
		c.MinInterval = 4 * time.Second
	}
	if c.BackoffStart == 0 {
		c.BackoffStart = 800 * time.Millisecond
	}
	if c.BackoffCap == 0 {
		c.BackoffCap = 8 * time.Second
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	return c
}

// uploadJob is a queued submission. It exists only for the lifetime of one
// Enqueue call and is never persisted.
type uploadJob struct {
	id       uuid.UUID
	sub      domain.Submission
	attempts int
	result   chan submissionResult
}

type submissionResult struct {
	ref *domain.TaskRef
	err error
}

// SubmissionQueue serializes submission calls to the extraction backend:
// at most one in-flight call, strict FIFO order, minimum spacing between
// dispatches, and transparent backoff on capacity rejections. The last
// dispatch time lives inside the worker goroutine, never in package state.
type SubmissionQueue struct {
	backend port.ExtractionBackend
	cfg     QueueConfig

	jobs chan *uploadJob

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

// NewSubmissionQueue creates a new SubmissionQueue.
func NewSubmissionQueue(backend port.ExtractionBackend, cfg QueueConfig) *SubmissionQueue {
	return &SubmissionQueue{
		backend: backend,
		cfg:     cfg.withDefaults(),
		jobs:    make(chan *uploadJob, 64),
		done:    make(chan struct{}),
	}
}

// Start runs the serial worker until ctx is canceled or Close is called.
// Jobs already accepted when shutdown begins still settle: drained jobs run
// to completion, undrained ones fail with ErrQueueClosed.
func (q *SubmissionQueue) Start(ctx context.Context) {
	defer close(q.done)

	log.Printf("submissionQueue: started (minInterval=%s, backoff=%s..%s, maxAttempts=%d)",
		q.cfg.MinInterval, q.cfg.BackoffStart, q.cfg.BackoffCap, q.cfg.MaxAttempts)

	var lastDispatch time.Time

	for {
		select {
		case <-ctx.Done():
			q.drainPending()
			log.Printf("submissionQueue: shutdown complete")
			return
		case job, ok := <-q.jobs:
			if !ok {
				log.Printf("submissionQueue: closed, shutdown complete")
				return
			}
			ref, err := q.runJob(ctx, job, &lastDispatch)
			job.result <- submissionResult{ref: ref, err: err}
		}
	}
}

// Close stops accepting new jobs and lets the worker drain the backlog.
func (q *SubmissionQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.jobs)
}

// Closed reports whether the queue has stopped accepting jobs.
func (q *SubmissionQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Done is closed once the worker has exited.
func (q *SubmissionQueue) Done() <-chan struct{} {
	return q.done
}

// Enqueue places a submission at the tail of the queue and waits for it to
// settle. The job itself has no cancellation primitive: once accepted it
// always runs to success or failure. A canceled ctx only abandons the wait.
func (q *SubmissionQueue) Enqueue(ctx context.Context, sub domain.Submission) (*domain.TaskRef, error) {
	job := &uploadJob{
		id:     uuid.New(),
		sub:    sub,
		result: make(chan submissionResult, 1),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, domain.ErrQueueClosed
	}
	q.jobs <- job
	q.mu.Unlock()

	select {
	case res := <-job.result:
		return res.ref, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// runJob executes one job at the head of the queue: wait out the remaining
// spacing window, then attempt the call with capacity backoff. The last
// dispatch time advances after every attempt, success or failure, so spacing
// stays accurate across retries.
func (q *SubmissionQueue) runJob(ctx context.Context, job *uploadJob, lastDispatch *time.Time) (*domain.TaskRef, error) {
	if wait := q.cfg.MinInterval - time.Since(*lastDispatch); wait > 0 && !lastDispatch.IsZero() {
		sleep(ctx, wait)
	}

	backoff := q.cfg.BackoffStart
	for job.attempts = 1; job.attempts <= q.cfg.MaxAttempts; job.attempts++ {
		ref, err := q.backend.Submit(ctx, job.sub)
		*lastDispatch = time.Now()

		if err == nil {
			return ref, nil
		}
		if !errors.Is(err, domain.ErrCapacityExceeded) {
			// Anything but a capacity rejection propagates immediately.
			return nil, err
		}

		log.Printf("submissionQueue: capacity hit for job %s, attempt %d, backoff %s", job.id, job.attempts, backoff)
		sleep(ctx, backoff)
		backoff *= 2
		if backoff > q.cfg.BackoffCap {
			backoff = q.cfg.BackoffCap
		}
	}

	return nil, domain.ErrChannelBusy
}

// drainPending settles jobs that were accepted but never dispatched.
func (q *SubmissionQueue) drainPending() {
	for {
		select {
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			job.result <- submissionResult{err: domain.ErrQueueClosed}
		default:
			return
		}
	}
}

// sleep waits for d but returns early on ctx cancellation.
func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
