package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded marks the transient connection/capacity rejection
	// that the submission queue absorbs with backoff.
	ErrCapacityExceeded = errors.New("upload connection capacity exceeded")
	// ErrChannelBusy surfaces when capacity retries are exhausted. Distinct
	// from a genuine network failure: the user should simply retry later.
	ErrChannelBusy = errors.New("submission channel busy, retry later")
	// ErrNetworkFailure means no response or a broken connection.
	ErrNetworkFailure = errors.New("network error")
	// ErrTimeout is kept apart from ErrNetworkFailure: the server-side job
	// may still be progressing after the client gave up waiting.
	ErrTimeout = errors.New("request timed out")
	// ErrParseFailure means the backend answered with a body this client
	// could not decode.
	ErrParseFailure = errors.New("malformed backend response")

	ErrNotFound      = errors.New("import task not found")
	ErrTaskNotParsed = errors.New("import task has not been parsed yet")
	ErrQueueClosed   = errors.New("submission queue is closed")
)

// ServerRejectedError carries the backend's error status and message payload.
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("server error: %s", e.Message)
}

// ExtractionFailedError is the terminal failure of an import task, carrying
// the server-supplied message when present.
type ExtractionFailedError struct {
	TaskID  string
	Message string
}

func (e *ExtractionFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("extraction failed for task %s", e.TaskID)
	}
	return fmt.Sprintf("extraction failed for task %s: %s", e.TaskID, e.Message)
}
