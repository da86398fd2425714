package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"
	"tripdesk/internal/port"
)

// connLimitSignature is the transport-level message the runtime emits when
// the upload connection pool is saturated. It is retried by the submission
// queue, not here.
const connLimitSignature = "exceed max upload connection count"

// Client implements port.ExtractionBackend over the backend's HTTP API.
type Client struct {
	baseURL string
	token   string
	// uploadClient carries a longer timeout: extraction of large documents
	// can run well past the ordinary request budget.
	client       *http.Client
	uploadClient *http.Client
}

// NewClient creates an extraction backend client from config.
func NewClient(cfg *config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout == 0 {
		uploadTimeout = 120 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.Token,
		client:       &http.Client{Timeout: timeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
	}
}

// NewClientWithBaseURL creates a client pointing at a custom base URL (for testing).
func NewClientWithBaseURL(baseURL string) *Client {
	return NewClient(&config.BackendConfig{BaseURL: baseURL})
}

func (c *Client) Submit(ctx context.Context, sub domain.Submission) (*domain.TaskRef, error) {
	var (
		body        io.Reader
		contentType string
		httpClient  = c.client
	)

	switch sub.Kind {
	case domain.SubmissionFile:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", sub.FileName)
		if err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
		if _, err := part.Write(sub.FileData); err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
		if err := mw.Close(); err != nil {
			return nil, fmt.Errorf("building multipart body: %w", err)
		}
		body = &buf
		contentType = mw.FormDataContentType()
		httpClient = c.uploadClient
	default:
		payload, err := json.Marshal(map[string]string{"input_text": sub.Text})
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/imports", body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req)

	respBody, err := c.do(httpClient, req)
	if err != nil {
		return nil, err
	}

	var ref domain.TaskRef
	if err := json.Unmarshal(respBody, &ref); err != nil {
		return nil, fmt.Errorf("%w: decoding submit response: %v", domain.ErrParseFailure, err)
	}
	if ref.Status == "" {
		ref.Status = domain.TaskStatusCreated
	}
	return &ref, nil
}

func (c *Client) GetTask(ctx context.Context, taskID string) (*domain.ImportTask, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/imports/"+taskID, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.authorize(req)

	respBody, err := c.do(c.client, req)
	if err != nil {
		return nil, err
	}

	var task domain.ImportTask
	if err := json.Unmarshal(respBody, &task); err != nil {
		return nil, fmt.Errorf("%w: decoding task snapshot: %v", domain.ErrParseFailure, err)
	}
	return &task, nil
}

func (c *Client) Confirm(ctx context.Context, taskID string, category domain.SkuCategory, fields map[string]interface{}) (*domain.ConfirmResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"sku_type":         category,
		"extracted_fields": fields,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/imports/"+taskID+"/confirm", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	respBody, err := c.do(c.client, req)
	if err != nil {
		return nil, err
	}

	var result domain.ConfirmResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding confirm response: %v", domain.ErrParseFailure, err)
	}
	return &result, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// do executes the request and maps failures onto the error taxonomy:
// transport timeouts, connection failures, capacity rejections, and server
// rejections are all distinguishable by the caller.
func (c *Client) do(httpClient *http.Client, req *http.Request) ([]byte, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrNetworkFailure, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return respBody, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", domain.ErrCapacityExceeded, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		return nil, &domain.ServerRejectedError{
			StatusCode: resp.StatusCode,
			Message:    extractDetail(respBody),
		}
	}
}

// mapTransportError classifies a round-trip failure. Timeout stays distinct
// from plain connectivity loss: the server-side job may still complete.
func mapTransportError(err error) error {
	if strings.Contains(err.Error(), connLimitSignature) {
		return fmt.Errorf("%w: %v", domain.ErrCapacityExceeded, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
}

// extractDetail pulls a human-readable message from an error payload. The
// backend answers either {"detail": "..."} or {"detail": [{"msg": "..."}]}.
func extractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		return msg
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				parts = append(parts, item.Msg)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

var _ port.ExtractionBackend = (*Client)(nil)
