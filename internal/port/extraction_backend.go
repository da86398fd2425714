package port

import (
	"context"

	"tripdesk/internal/domain"
)

// ExtractionBackend abstracts the asynchronous AI extraction service. The
// backend owns every import task; this client only submits documents, reads
// snapshots, and posts the confirm transition.
type ExtractionBackend interface {
	// Submit sends raw text or a binary file and returns the initial task
	// descriptor. A capacity rejection surfaces as domain.ErrCapacityExceeded.
	Submit(ctx context.Context, sub domain.Submission) (*domain.TaskRef, error)
	// GetTask fetches the current snapshot for a task.
	GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error)
	// Confirm materializes a catalog record from normalized fields.
	Confirm(ctx context.Context, taskID string, category domain.SkuCategory, fields map[string]interface{}) (*domain.ConfirmResult, error)
}
