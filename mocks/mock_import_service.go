package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tripdesk/internal/domain"
	"tripdesk/internal/importer"
	"tripdesk/internal/normalize"
)

// MockImportService is a mock implementation of importer.Service.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) EnqueueSubmission(ctx context.Context, input importer.SubmissionInput) (*domain.TaskRef, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskRef), args.Error(1)
}

func (m *MockImportService) GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportTask), args.Error(1)
}

func (m *MockImportService) ObserveTask(ctx context.Context, taskID string) *importer.Handle {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*importer.Handle)
}

func (m *MockImportService) AwaitTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportTask), args.Error(1)
}

func (m *MockImportService) Normalize(category domain.SkuCategory, fields map[string]interface{}, evidence map[string]string) *normalize.NormalizedSku {
	args := m.Called(category, fields, evidence)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*normalize.NormalizedSku)
}

func (m *MockImportService) ConfirmImport(ctx context.Context, input importer.ConfirmInput) (*domain.ConfirmResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConfirmResult), args.Error(1)
}
