package extraction_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdesk/internal/config"
	"tripdesk/internal/domain"
	"tripdesk/internal/extraction"
)

func TestClient_SubmitText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/imports", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "three nights in Kyoto", body["input_text"])

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "task-1", "status": "created"})
	}))
	defer server.Close()

	c := extraction.NewClient(&config.BackendConfig{BaseURL: server.URL, Token: "test-token"})

	ref, err := c.Submit(context.Background(), domain.Submission{
		Kind: domain.SubmissionText,
		Text: "three nights in Kyoto",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", ref.ID)
	assert.Equal(t, domain.TaskStatusCreated, ref.Status)
}

func TestClient_SubmitFileMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "quote.pdf", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{"id": "task-2"})
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	ref, err := c.Submit(context.Background(), domain.Submission{
		Kind:     domain.SubmissionFile,
		FileName: "quote.pdf",
		FileData: []byte("%PDF-1.4 test"),
	})
	require.NoError(t, err)
	assert.Equal(t, "task-2", ref.ID)
	// A missing status on the submit response defaults to created.
	assert.Equal(t, domain.TaskStatusCreated, ref.Status)
}

func TestClient_Submit429IsCapacityExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	_, err := c.Submit(context.Background(), domain.Submission{Kind: domain.SubmissionText, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestClient_SubmitServerErrorCarriesDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "extractor unavailable"})
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	_, err := c.Submit(context.Background(), domain.Submission{Kind: domain.SubmissionText, Text: "x"})
	var rejected *domain.ServerRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusInternalServerError, rejected.StatusCode)
	assert.Equal(t, "extractor unavailable", rejected.Message)
}

func TestClient_GetTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/imports/task-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "task-1",
			"status":   "parsed",
			"sku_type": "hotel",
			"extracted_fields": map[string]interface{}{
				"hotel_name": "Grand Mercure",
			},
			"evidence":   map[string]string{"hotel_name": "line 2"},
			"confidence": 0.92,
		})
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	task, err := c.GetTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusParsed, task.Status)
	assert.Equal(t, domain.CategoryHotel, task.SkuType)
	assert.Equal(t, "Grand Mercure", task.ExtractedFields["hotel_name"])
	assert.Equal(t, "line 2", task.Evidence["hotel_name"])
	// Confidence passes through raw, whatever shape the extractor emitted.
	assert.JSONEq(t, "0.92", string(task.Confidence))
}

func TestClient_GetTask404IsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	_, err := c.GetTask(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Confirm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/imports/task-1/confirm", r.URL.Path)

		var body struct {
			SkuType         string                 `json:"sku_type"`
			ExtractedFields map[string]interface{} `json:"extracted_fields"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hotel", body.SkuType)
		assert.Equal(t, "Grand Mercure", body.ExtractedFields["hotel_name"])

		_ = json.NewEncoder(w).Encode(map[string]string{"sku_id": "sku-9"})
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	result, err := c.Confirm(context.Background(), "task-1", domain.CategoryHotel,
		map[string]interface{}{"hotel_name": "Grand Mercure"})
	require.NoError(t, err)
	assert.Equal(t, "sku-9", result.SkuID)
}

func TestClient_MalformedBodyIsParseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := extraction.NewClientWithBaseURL(server.URL)

	_, err := c.GetTask(context.Background(), "task-1")
	assert.ErrorIs(t, err, domain.ErrParseFailure)
}

func TestClient_ConnectionRefusedIsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	c := extraction.NewClientWithBaseURL(server.URL)

	_, err := c.GetTask(context.Background(), "task-1")
	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.NotErrorIs(t, err, domain.ErrTimeout)
}

func TestClient_SlowServerIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Stall until the client gives up.
		<-r.Context().Done()
	}))
	defer server.Close()

	c := extraction.NewClient(&config.BackendConfig{
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})

	_, err := c.GetTask(context.Background(), "task-1")
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.NotErrorIs(t, err, domain.ErrNetworkFailure)
}
