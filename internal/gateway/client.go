package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Operation names used in errors and logs.
const (
	opQuestions = "questions_by_topic"
	opTopics    = "topics"
	opSubmit    = "attempt"
	opAttempts  = "attempts"
	opReport    = "generate-report"
)

// Client is the typed consumer of the backend HTTP contract. The
// backend owns all persistent state; this program only reads questions
// and history, records mistakes, and asks for report text.
type Client interface {
	// QuestionsByTopic returns the ordered question list for a topic.
	// An empty slice is a valid result, distinct from an error.
	QuestionsByTopic(ctx context.Context, topic string) ([]Question, error)

	// Topics returns the distinct topics that currently have questions.
	Topics(ctx context.Context) ([]string, error)

	// SubmitAttempt records one incorrect answer and returns the
	// created attempt's ID. Correct answers are never submitted.
	SubmitAttempt(ctx context.Context, sub Submission) (int, error)

	// Attempts returns the full attempt history.
	Attempts(ctx context.Context) ([]Attempt, error)

	// GenerateReport asks the backend for a free-text analysis of the
	// given attempts. The text is opaque to the caller.
	GenerateReport(ctx context.Context, attempts []Attempt) (string, error)
}

// HTTPClient talks to the real backend over plain HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the backend at baseURL. One
// underlying http.Client is reused for all requests; timeout bounds
// every call including report generation.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) QuestionsByTopic(ctx context.Context, topic string) ([]Question, error) {
	var questions []Question
	path := "/questions_by_topic/" + url.PathEscape(topic)
	if err := c.do(ctx, http.MethodGet, path, nil, &questions, opQuestions); err != nil {
		// The backend answers 404 when a topic has no questions;
		// callers see that as a valid empty result, not an error.
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return []Question{}, nil
		}
		return nil, err
	}
	return questions, nil
}

func (c *HTTPClient) Topics(ctx context.Context) ([]string, error) {
	var topics []string
	if err := c.do(ctx, http.MethodGet, "/topics", nil, &topics, opTopics); err != nil {
		return nil, err
	}
	return topics, nil
}

func (c *HTTPClient) SubmitAttempt(ctx context.Context, sub Submission) (int, error) {
	// The backend acknowledges with {"message": ..., "id": ...}.
	var created struct {
		Message string `json:"message"`
		ID      int    `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/attempt", sub, &created, opSubmit); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (c *HTTPClient) Attempts(ctx context.Context) ([]Attempt, error) {
	var attempts []Attempt
	if err := c.do(ctx, http.MethodGet, "/attempts", nil, &attempts, opAttempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (c *HTTPClient) GenerateReport(ctx context.Context, attempts []Attempt) (string, error) {
	req := struct {
		Attempts []Attempt `json:"attempts"`
	}{Attempts: attempts}

	var resp struct {
		Report string `json:"report"`
	}
	if err := c.do(ctx, http.MethodPost, "/generate-report", req, &resp, opReport); err != nil {
		return "", err
	}
	return resp.Report, nil
}

// do performs one request against the backend. A nil body sends no
// payload; a nil out discards the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, op string) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readDetail extracts the backend's {"detail": ...} error message.
func readDetail(r io.Reader) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
