package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripdesk/internal/domain"
)

// MockExtractionBackend is a mock implementation of port.ExtractionBackend.
type MockExtractionBackend struct {
	mock.Mock
}

func (m *MockExtractionBackend) Submit(ctx context.Context, sub domain.Submission) (*domain.TaskRef, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskRef), args.Error(1)
}

func (m *MockExtractionBackend) GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportTask), args.Error(1)
}

func (m *MockExtractionBackend) Confirm(ctx context.Context, taskID string, category domain.SkuCategory, fields map[string]interface{}) (*domain.ConfirmResult, error) {
	args := m.Called(ctx, taskID, category, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmResult), args.Error(1)
}
