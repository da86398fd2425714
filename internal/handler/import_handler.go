package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/domain"
	"tripdesk/internal/export"
	"tripdesk/internal/importer"
	"tripdesk/internal/normalize"
)

// maxUploadBytes caps a single uploaded document at 20 MiB.
const maxUploadBytes = 20 << 20

// ImportHandler serves the import pipeline endpoints.
type ImportHandler struct {
	service importer.Service
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(service importer.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

type createImportRequest struct {
	InputText string `json:"input_text" binding:"required"`
}

type confirmImportRequest struct {
	SkuType         string                 `json:"sku_type"`
	ExtractedFields map[string]interface{} `json:"extracted_fields"`
}

type normalizeRequest struct {
	SkuType  string                 `json:"sku_type"`
	Fields   map[string]interface{} `json:"fields" binding:"required"`
	Evidence map[string]string      `json:"evidence"`
}

// CreateImport handles POST /api/v1/imports. The submission goes through the
// serial queue, so the response only returns once the upload has actually
// been dispatched (or definitively failed).
func (h *ImportHandler) CreateImport(c *gin.Context) {
	var req createImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "input_text is required")
		return
	}

	ref, err := h.service.EnqueueSubmission(c.Request.Context(), importer.SubmissionInput{Text: req.InputText})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, ref)
}

// UploadImport handles POST /api/v1/imports/upload with a multipart "file"
// part.
func (h *ImportHandler) UploadImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the 20MB limit")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not open uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	if len(data) > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file exceeds the 20MB limit")
		return
	}

	ref, err := h.service.EnqueueSubmission(c.Request.Context(), importer.SubmissionInput{
		FileName: fileHeader.Filename,
		FileData: data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, ref)
}

// GetImport handles GET /api/v1/imports/:id and returns one snapshot.
func (h *ImportHandler) GetImport(c *gin.Context) {
	task, err := h.service.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, taskView(h.service, task))
}

// GetImportResult handles GET /api/v1/imports/:id/result. It blocks until
// the task settles (parsed, confirmed, or failed) and returns the final
// snapshot with its normalized projection. Client disconnect cancels the
// underlying polling loop.
func (h *ImportHandler) GetImportResult(c *gin.Context) {
	task, err := h.service.AwaitTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		var failed *domain.ExtractionFailedError
		if task != nil && errors.As(err, &failed) {
			// A failed task is still a result; return the snapshot so the
			// client can show the server's failure message.
			RespondOK(c, taskView(h.service, task))
			return
		}
		HandleError(c, err)
		return
	}
	RespondOK(c, taskView(h.service, task))
}

// ConfirmImport handles POST /api/v1/imports/:id/confirm.
func (h *ImportHandler) ConfirmImport(c *gin.Context) {
	var req confirmImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid confirm payload")
		return
	}

	result, err := h.service.ConfirmImport(c.Request.Context(), importer.ConfirmInput{
		TaskID:   c.Param("id"),
		Category: domain.SkuCategory(req.SkuType),
		Fields:   req.ExtractedFields,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// NormalizeFields handles POST /api/v1/normalize: a stateless preview of the
// pricing/attribute projection for edited fields, without touching the task.
func (h *ImportHandler) NormalizeFields(c *gin.Context) {
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "fields is required")
		return
	}
	sku := h.service.Normalize(domain.SkuCategory(req.SkuType), req.Fields, req.Evidence)
	RespondOK(c, sku)
}

// ExportImport handles GET /api/v1/imports/:id/export and streams the parsed
// task's normalized projection as an xlsx workbook.
func (h *ImportHandler) ExportImport(c *gin.Context) {
	taskID := c.Param("id")
	task, err := h.service.GetTask(c.Request.Context(), taskID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if task.Status != domain.TaskStatusParsed && task.Status != domain.TaskStatusConfirmed {
		RespondError(c, http.StatusBadRequest, "TASK_NOT_PARSED", "import task has no extracted fields to export")
		return
	}

	sku := h.service.Normalize(task.SkuType, task.ExtractedFields, task.Evidence)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename(taskID)+`"`)
	if err := export.WriteWorkbook(c.Writer, task, sku); err != nil {
		log.Printf("ImportHandler.ExportImport: writing workbook for task %s: %v", taskID, err)
	}
}

// taskView is the API shape of a task snapshot: the raw task plus, for
// parsed tasks, its recomputed normalized projection.
type importTaskView struct {
	*domain.ImportTask
	Normalized *normalize.NormalizedSku `json:"normalized,omitempty"`
}

func taskView(service importer.Service, task *domain.ImportTask) *importTaskView {
	view := &importTaskView{ImportTask: task}
	if task.HasExtractedFields() {
		view.Normalized = service.Normalize(task.SkuType, task.ExtractedFields, task.Evidence)
	}
	return view
}
