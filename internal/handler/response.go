package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdesk/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates pipeline errors to HTTP status codes and error
// codes. The three user-facing submission outcomes stay distinguishable:
// "still busy, retry later", "network error", and "server error: <detail>".
func MapDomainError(err error) (status int, code, msg string) {
	var rejected *domain.ServerRejectedError
	var failed *domain.ExtractionFailedError

	switch {
	case errors.Is(err, domain.ErrChannelBusy):
		return http.StatusServiceUnavailable, "CHANNEL_BUSY", "submission channel busy; retry later"
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusServiceUnavailable, "CAPACITY_EXCEEDED", "upload capacity exceeded; retry later"
	case errors.Is(err, domain.ErrQueueClosed):
		return http.StatusServiceUnavailable, "QUEUE_CLOSED", "submission queue is shutting down"
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout, "UPSTREAM_TIMEOUT", "extraction backend timed out; the job may still be processing"
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway, "NETWORK_ERROR", "could not reach the extraction backend"
	case errors.Is(err, domain.ErrParseFailure):
		return http.StatusBadGateway, "BAD_UPSTREAM_RESPONSE", "extraction backend returned a malformed response"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", "import task not found"
	case errors.Is(err, domain.ErrTaskNotParsed):
		return http.StatusBadRequest, "TASK_NOT_PARSED", "import task has not been parsed yet"
	case errors.As(err, &rejected):
		return http.StatusBadGateway, "SERVER_REJECTED", rejected.Error()
	case errors.As(err, &failed):
		msg := failed.Message
		if msg == "" {
			msg = "extraction failed"
		}
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED", msg
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a pipeline error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 && code == "INTERNAL_ERROR" {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
