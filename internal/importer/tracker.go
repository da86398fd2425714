package importer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"tripdesk/internal/domain"
	"tripdesk/internal/port"
)

// Tracker observes server-side task completion by polling snapshots.
type Tracker struct {
	backend  port.ExtractionBackend
	interval time.Duration
}

// NewTracker creates a Tracker polling at the given interval.
func NewTracker(backend port.ExtractionBackend, interval time.Duration) *Tracker {
	if interval == 0 {
		interval = 3 * time.Second
	}
	return &Tracker{backend: backend, interval: interval}
}

// Handle is a cancellable subscription to one task's snapshot stream. The
// stream closes after the terminal snapshot, or when Stop is called.
type Handle struct {
	snapshots chan *domain.ImportTask

	stopOnce sync.Once
	stop     chan struct{}
}

// Snapshots returns the stream of observed snapshots. The last value before
// close is the terminal snapshot, unless the handle was stopped externally.
func (h *Handle) Snapshots() <-chan *domain.ImportTask {
	return h.snapshots
}

// Stop cancels polling. Safe to call multiple times and after completion.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// StartPolling begins observing taskID. Each tick fetches the current
// snapshot; the next tick is scheduled only after the current one settles,
// so ticks never overlap. Reaching parsed or failed self-cancels the handle.
func (t *Tracker) StartPolling(ctx context.Context, taskID string) *Handle {
	h := &Handle{
		snapshots: make(chan *domain.ImportTask, 1),
		stop:      make(chan struct{}),
	}

	go t.poll(ctx, taskID, h)

	return h
}

func (t *Tracker) poll(ctx context.Context, taskID string, h *Handle) {
	defer close(h.snapshots)

	for {
		task, err := t.backend.GetTask(ctx, taskID)
		switch {
		case err == nil:
			if !t.emit(ctx, h, task) {
				return
			}
			if task.Status.IsTerminal() || task.Status == domain.TaskStatusParsed {
				// parsed is terminal for polling purposes: the confirm
				// transition is client-driven and never observed by a tick.
				return
			}
		case errors.Is(err, domain.ErrNetworkFailure) || errors.Is(err, domain.ErrTimeout):
			// Transient. The authoritative state is server-side and will be
			// re-observed on the next tick.
			log.Printf("tracker: transient poll error for task %s: %v", taskID, err)
		case errors.Is(err, domain.ErrNotFound):
			// The task id is bad; no later tick can fix that.
			log.Printf("tracker: task %s not found, stopping", taskID)
			return
		case ctx.Err() != nil:
			return
		default:
			log.Printf("tracker: poll error for task %s: %v", taskID, err)
		}

		select {
		case <-time.After(t.interval):
		case <-h.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// emit delivers a snapshot unless the consumer is gone.
func (t *Tracker) emit(ctx context.Context, h *Handle, task *domain.ImportTask) bool {
	select {
	case h.snapshots <- task:
		return true
	case <-h.stop:
		return false
	case <-ctx.Done():
		return false
	}
}
