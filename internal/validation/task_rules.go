// Package validation holds the pure request-shape checks applied before
// any entity is constructed. The entity re-validates its own invariants;
// the two layers are intentionally redundant.
package validation

import (
	"strings"
	"time"

	"tasktrack/internal/models"
)

// Fields maps a field name to its violation message.
type Fields map[string]string

func (f Fields) add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	MaxPageSize       = 100
)

// ParseDueDate accepts RFC3339 or a bare YYYY-MM-DD date. Empty input
// means "no due date".
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// PastDate reports whether the given moment falls on a calendar date
// strictly before today, UTC. Today itself is not past.
func PastDate(t time.Time) bool {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}

// CheckCreate validates a create request and returns the parsed due date
// alongside any field violations.
func CheckCreate(req models.CreateTaskRequest) (*time.Time, Fields) {
	errs := Fields{}
	checkTitle(errs, req.Title)
	checkDescription(errs, req.Description)
	due := checkDueDate(errs, req.DueDate)
	return due, errs
}

// CheckUpdate validates a full-replace update request.
func CheckUpdate(req models.UpdateTaskRequest) (*time.Time, models.TaskStatus, Fields) {
	errs := Fields{}
	checkTitle(errs, req.Title)
	checkDescription(errs, req.Description)
	due := checkDueDate(errs, req.DueDate)
	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		errs.add("status", "Invalid status value.")
	}
	return due, status, errs
}

// CheckListQuery validates pagination bounds for GET /tasks.
func CheckListQuery(pageIndex, pageSize int) Fields {
	errs := Fields{}
	if pageIndex < 1 {
		errs.add("pageIndex", "Page index must be at least 1.")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		errs.add("pageSize", "Page size must be between 1 and 100.")
	}
	return errs
}

func checkTitle(errs Fields, title string) {
	if strings.TrimSpace(title) == "" {
		errs.add("title", "Title is required.")
	} else if len([]rune(title)) > maxTitleLen {
		errs.add("title", "Title must be between 1 and 200 characters.")
	}
}

func checkDescription(errs Fields, description string) {
	if len([]rune(description)) > maxDescriptionLen {
		errs.add("description", "Description cannot exceed 2000 characters.")
	}
}

func checkDueDate(errs Fields, raw string) *time.Time {
	due, err := ParseDueDate(raw)
	if err != nil {
		errs.add("dueDate", "Due date must be RFC3339 or YYYY-MM-DD.")
		return nil
	}
	if due != nil && PastDate(*due) {
		errs.add("dueDate", "Due date cannot be in the past.")
	}
	return due
}
