package importer_test

import (
	"context"

	"tripdesk/internal/domain"
)

// stubBackend is a function-backed extraction backend for tests that need
// per-call sequencing or timing, which a recorded-expectation mock cannot
// express cleanly.
type stubBackend struct {
	submit  func(ctx context.Context, sub domain.Submission) (*domain.TaskRef, error)
	getTask func(ctx context.Context, taskID string) (*domain.ImportTask, error)
	confirm func(ctx context.Context, taskID string, category domain.SkuCategory, fields map[string]interface{}) (*domain.ConfirmResult, error)
}

func (s *stubBackend) Submit(ctx context.Context, sub domain.Submission) (*domain.TaskRef, error) {
	return s.submit(ctx, sub)
}

func (s *stubBackend) GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	return s.getTask(ctx, taskID)
}

func (s *stubBackend) Confirm(ctx context.Context, taskID string, category domain.SkuCategory, fields map[string]interface{}) (*domain.ConfirmResult, error) {
	return s.confirm(ctx, taskID, category, fields)
}
