package models

import "time"

// TaskSummary is the externally visible projection of a Task. Status is a
// symbolic label here, never the raw wire code.
type TaskSummary struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Summarize projects a task into its summary DTO. Pure field copy.
func Summarize(t *Task) TaskSummary {
	return TaskSummary{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TaskPage is a counted window over the filtered task collection.
type TaskPage struct {
	Items           []TaskSummary `json:"items"`
	PageIndex       int           `json:"pageIndex"`
	PageSize        int           `json:"pageSize"`
	TotalCount      int           `json:"totalCount"`
	TotalPages      int           `json:"totalPages"`
	HasPreviousPage bool          `json:"hasPreviousPage"`
	HasNextPage     bool          `json:"hasNextPage"`
}

// NewTaskPage computes the page metadata for a slice already windowed by
// the store. pageSize must be positive (enforced upstream by validation).
func NewTaskPage(items []TaskSummary, pageIndex, pageSize, totalCount int) *TaskPage {
	if items == nil {
		items = []TaskSummary{}
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	return &TaskPage{
		Items:           items,
		PageIndex:       pageIndex,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: pageIndex > 1,
		HasNextPage:     pageIndex < totalPages,
	}
}

// CreateTaskRequest is the POST /tasks body. DueDate is a date string,
// either RFC3339 or YYYY-MM-DD.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest is the PUT /tasks/:id body: a full replacement
// document. Status is the integer wire code; absent means Todo.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      int    `json:"status"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	TraceID    string `json:"traceId,omitempty"`
	StatusCode int    `json:"statusCode"`
}
