package domain

import (
	"encoding/json"
	"time"
)

// ImportTask is a snapshot of a server-side extraction job. The backend owns
// and mutates the task; this client only reads snapshots and drives the
// single parsed -> confirmed transition via confirm.
type ImportTask struct {
	ID              string                 `json:"id"`
	Status          TaskStatus             `json:"status"`
	InputText       string                 `json:"input_text,omitempty"`
	InputFiles      []string               `json:"input_files,omitempty"`
	UploadedFileURL string                 `json:"uploaded_file_url,omitempty"`
	SkuType         SkuCategory            `json:"sku_type,omitempty"`
	ExtractedFields map[string]interface{} `json:"extracted_fields,omitempty"`
	Evidence        map[string]string      `json:"evidence,omitempty"`
	// Confidence is passed through raw: the backend sends either a single
	// scalar or a per-field map depending on extractor version.
	Confidence   json.RawMessage `json:"confidence,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedSkuID string          `json:"created_sku_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// HasExtractedFields reports whether the snapshot may legally carry
// extracted fields (populated only once parsed or confirmed).
func (t *ImportTask) HasExtractedFields() bool {
	return t.Status == TaskStatusParsed || t.Status == TaskStatusConfirmed
}

// TaskRef identifies a freshly submitted task.
type TaskRef struct {
	ID     string     `json:"id"`
	Status TaskStatus `json:"status"`
}

// Submission is the payload handed to the submission queue: raw text or a
// named binary document.
type Submission struct {
	Kind     SubmissionKind
	Text     string
	FileName string
	FileData []byte
}

// ConfirmResult is the backend's answer to a confirm call.
type ConfirmResult struct {
	SkuID string `json:"sku_id"`
}
