package importer

import (
	"context"
	"fmt"
	"log"

	"tripdesk/internal/domain"
	"tripdesk/internal/normalize"
	"tripdesk/internal/port"
)

// SubmissionInput is the DTO for enqueueing a document submission.
type SubmissionInput struct {
	Text     string
	FileName string
	FileData []byte
}

// ConfirmInput is the DTO for confirming a parsed task into a catalog record.
type ConfirmInput struct {
	TaskID string
	// Category may be empty; the normalization engine then auto-detects it
	// from the extracted fields.
	Category domain.SkuCategory
	// Fields overrides the task's extracted fields when set (user edits on
	// the review screen); otherwise the parsed snapshot's fields are used.
	Fields map[string]interface{}
}

// Service is the import pipeline facade exposed to UI consumers.
type Service interface {
	// EnqueueSubmission places a text or file submission on the serial queue
	// and returns the initial task descriptor once dispatched.
	EnqueueSubmission(ctx context.Context, input SubmissionInput) (*domain.TaskRef, error)
	// GetTask fetches a single snapshot.
	GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error)
	// ObserveTask returns a cancellable snapshot stream ending in one
	// terminal (or parsed) snapshot.
	ObserveTask(ctx context.Context, taskID string) *Handle
	// AwaitTask follows the stream until the task settles and returns the
	// final snapshot. A failed task surfaces as ExtractionFailedError.
	AwaitTask(ctx context.Context, taskID string) (*domain.ImportTask, error)
	// Normalize derives canonical pricing and the category attribute
	// projection. It never fails; malformed fields degrade to absent.
	Normalize(category domain.SkuCategory, fields map[string]interface{}, evidence map[string]string) *normalize.NormalizedSku
	// ConfirmImport posts normalized fields to materialize a catalog record.
	ConfirmImport(ctx context.Context, input ConfirmInput) (*domain.ConfirmResult, error)
}

type importService struct {
	backend port.ExtractionBackend
	queue   *SubmissionQueue
	tracker *Tracker
}

// NewService creates the import pipeline service.
func NewService(backend port.ExtractionBackend, queue *SubmissionQueue, tracker *Tracker) Service {
	return &importService{
		backend: backend,
		queue:   queue,
		tracker: tracker,
	}
}

func (s *importService) EnqueueSubmission(ctx context.Context, input SubmissionInput) (*domain.TaskRef, error) {
	sub := domain.Submission{Kind: domain.SubmissionText, Text: input.Text}
	if len(input.FileData) > 0 {
		sub = domain.Submission{
			Kind:     domain.SubmissionFile,
			FileName: input.FileName,
			FileData: input.FileData,
		}
	}

	ref, err := s.queue.Enqueue(ctx, sub)
	if err != nil {
		return nil, err
	}

	log.Printf("importService.EnqueueSubmission: task %s created (status=%s)", ref.ID, ref.Status)
	return ref, nil
}

func (s *importService) GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	return s.backend.GetTask(ctx, taskID)
}

func (s *importService) ObserveTask(ctx context.Context, taskID string) *Handle {
	return s.tracker.StartPolling(ctx, taskID)
}

func (s *importService) AwaitTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	handle := s.tracker.StartPolling(ctx, taskID)
	defer handle.Stop()

	var last *domain.ImportTask
	for task := range handle.Snapshots() {
		last = task
	}
	if last == nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, domain.ErrNotFound
	}
	if ctx.Err() != nil && !last.Status.IsTerminal() && last.Status != domain.TaskStatusParsed {
		// The stream ended because the caller went away, not because the
		// task settled.
		return last, ctx.Err()
	}
	if last.Status == domain.TaskStatusFailed {
		return last, &domain.ExtractionFailedError{TaskID: last.ID, Message: last.ErrorMessage}
	}
	return last, nil
}

func (s *importService) Normalize(category domain.SkuCategory, fields map[string]interface{}, evidence map[string]string) *normalize.NormalizedSku {
	return normalize.Normalize(category, fields, evidence)
}

func (s *importService) ConfirmImport(ctx context.Context, input ConfirmInput) (*domain.ConfirmResult, error) {
	task, err := s.backend.GetTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.TaskStatusParsed {
		if task.Status == domain.TaskStatusFailed {
			return nil, &domain.ExtractionFailedError{TaskID: task.ID, Message: task.ErrorMessage}
		}
		return nil, fmt.Errorf("%w: status is %s", domain.ErrTaskNotParsed, task.Status)
	}

	fields := input.Fields
	if fields == nil {
		fields = task.ExtractedFields
	}

	category := input.Category
	if !category.Known() {
		category = normalize.DetectCategory(category, fields)
	}

	result, err := s.backend.Confirm(ctx, input.TaskID, category, fields)
	if err != nil {
		return nil, err
	}

	log.Printf("importService.ConfirmImport: task %s confirmed as %s (sku %s)", input.TaskID, category, result.SkuID)
	return result, nil
}
