// Package client holds the consumer side of the task API: a typed HTTP
// client plus the list and form controllers that manage fetch/state
// lifecycles for a rendering layer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tasktrack/internal/models"
)

// APIClient talks to the task REST surface.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// apiError is a non-2xx response decoded from the uniform error payload.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// List fetches one page of tasks. status is the symbolic label, empty for
// no filter.
func (c *APIClient) List(ctx context.Context, status string, pageIndex, pageSize int) (*models.TaskPage, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	q.Set("pageIndex", strconv.Itoa(pageIndex))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var page models.TaskPage
	if err := c.do(ctx, http.MethodGet, "/tasks?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *APIClient) Get(ctx context.Context, id int64) (*models.TaskSummary, error) {
	var task models.TaskSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *APIClient) Create(ctx context.Context, req models.CreateTaskRequest) (*models.TaskSummary, error) {
	var task models.TaskSummary
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *APIClient) Update(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.TaskSummary, error) {
	var task models.TaskSummary
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *APIClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload models.ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		message := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
			message = payload.Message
		}
		return &apiError{StatusCode: resp.StatusCode, Message: message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FormatDueDate renders a due date the way the form field expects it.
func FormatDueDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
