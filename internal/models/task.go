package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a task. It travels as an integer
// code on the wire (0=Todo, 1=InProgress, 2=Done) and as a symbolic label
// in response payloads.
type TaskStatus int

const (
	StatusTodo TaskStatus = iota
	StatusInProgress
	StatusDone
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

func (s TaskStatus) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

func (s TaskStatus) String() string {
	switch s {
	case StatusTodo:
		return "Todo"
	case StatusInProgress:
		return "InProgress"
	case StatusDone:
		return "Done"
	}
	return fmt.Sprintf("TaskStatus(%d)", int(s))
}

// ParseTaskStatus accepts either the symbolic label or the wire code,
// case-insensitively.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "todo":
		return StatusTodo, nil
	case "inprogress", "in progress", "in_progress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		s := TaskStatus(n)
		if s.Valid() {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown task status %q", raw)
}

// Task represents the tracked work item.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	Status *TaskStatus
}

// NewTask builds a valid task with status forced to Todo and CreatedAt
// stamped. Returns *ValidationError when any field rule is violated.
func NewTask(title, description string, dueDate *time.Time) (*Task, error) {
	verr := newValidationError()
	collectFieldErrors(verr, title, description, dueDate)
	if verr.HasErrors() {
		return nil, verr
	}
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		DueDate:     dueDate,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Update replaces all mutable fields at once. The task is left untouched
// when validation fails.
func (t *Task) Update(title, description string, dueDate *time.Time, status TaskStatus) error {
	verr := newValidationError()
	collectFieldErrors(verr, title, description, dueDate)
	if !status.Valid() {
		verr.Add("status", "Invalid status value.")
	}
	if verr.HasErrors() {
		return verr
	}

	t.Title = title
	t.Description = description
	t.DueDate = dueDate
	t.Status = status
	t.touch()
	return nil
}

// UpdateStatus changes only the status.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.Valid() {
		verr := newValidationError()
		verr.Add("status", "Invalid status value.")
		return verr
	}
	t.Status = status
	t.touch()
	return nil
}

// UpdateDueDate changes only the due date, applying the same write-time
// date rule as creation.
func (t *Task) UpdateDueDate(dueDate *time.Time) error {
	if dueDate != nil && pastDueDate(*dueDate) {
		verr := newValidationError()
		verr.Add("dueDate", "Due date cannot be in the past.")
		return verr
	}
	t.DueDate = dueDate
	t.touch()
	return nil
}

func (t *Task) touch() {
	now := time.Now().UTC()
	t.UpdatedAt = &now
}

func collectFieldErrors(verr *ValidationError, title, description string, dueDate *time.Time) {
	if strings.TrimSpace(title) == "" {
		verr.Add("title", "Title is required.")
	} else if len([]rune(title)) > maxTitleLen {
		verr.Add("title", "Title must be between 1 and 200 characters.")
	}
	if len([]rune(description)) > maxDescriptionLen {
		verr.Add("description", "Description cannot exceed 2000 characters.")
	}
	if dueDate != nil && pastDueDate(*dueDate) {
		verr.Add("dueDate", "Due date cannot be in the past.")
	}
}

// pastDueDate compares calendar dates in UTC: due today is fine, anything
// strictly before today is rejected.
func pastDueDate(due time.Time) bool {
	today := truncateToDate(time.Now().UTC())
	return truncateToDate(due.UTC()).Before(today)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
