package client

import (
	"context"
	"strings"

	"tasktrack/internal/models"
	"tasktrack/internal/validation"
)

// FormAPI is the slice of the API the form controller needs.
type FormAPI interface {
	Get(ctx context.Context, id int64) (*models.TaskSummary, error)
	Create(ctx context.Context, req models.CreateTaskRequest) (*models.TaskSummary, error)
	Update(ctx context.Context, id int64, req models.UpdateTaskRequest) (*models.TaskSummary, error)
}

const titleMinLen = 3

// FormController manages the create/edit task form lifecycle. The mode is
// decided once at construction by the presence of a task id and never
// re-evaluated. The controller is meant for single-goroutine (event-loop)
// use; it holds no locks.
type FormController struct {
	api    FormAPI
	taskID int64
	edit   bool

	Title       string
	Description string
	Status      string
	DueDate     string // YYYY-MM-DD, the field-level representation

	IsLoading       bool
	ErrorMessage    string
	SubmitAttempted bool
}

// NewFormController builds a create-mode controller when taskID is nil,
// edit-mode otherwise.
func NewFormController(api FormAPI, taskID *int64) *FormController {
	c := &FormController{
		api:    api,
		Status: models.StatusTodo.String(),
	}
	if taskID != nil {
		c.edit = true
		c.taskID = *taskID
	}
	return c
}

func (c *FormController) EditMode() bool {
	return c.edit
}

// Load pre-populates the fields from the stored task. Create mode is a
// no-op.
func (c *FormController) Load(ctx context.Context) {
	if !c.edit {
		return
	}
	c.IsLoading = true
	task, err := c.api.Get(ctx, c.taskID)
	c.IsLoading = false
	if err != nil {
		c.ErrorMessage = "Failed to load task"
		return
	}
	c.Title = task.Title
	c.Description = task.Description
	c.Status = task.Status
	if task.DueDate != nil {
		c.DueDate = FormatDueDate(*task.DueDate)
	}
}

// Validate runs the field-level validators: title required with a minimum
// length, due date required and not in the past (calendar-date
// comparison, mirroring the server's write-time rule).
func (c *FormController) Validate() validation.Fields {
	errs := validation.Fields{}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		errs["title"] = "Title is required."
	} else if len([]rune(title)) < titleMinLen {
		errs["title"] = "Title must be at least 3 characters."
	}

	if strings.TrimSpace(c.DueDate) == "" {
		errs["dueDate"] = "Due date is required."
	} else if due, err := validation.ParseDueDate(c.DueDate); err != nil {
		errs["dueDate"] = "Due date must be a valid date."
	} else if validation.PastDate(*due) {
		errs["dueDate"] = "Due date cannot be in the past."
	}

	if _, err := models.ParseTaskStatus(c.Status); err != nil {
		errs["status"] = "Invalid status value."
	}
	return errs
}

// Submit issues the create or update request. No request is made while a
// validator fails; the return value tells the caller to navigate back to
// the list. On failure the entered values stay intact.
func (c *FormController) Submit(ctx context.Context) bool {
	c.SubmitAttempted = true
	if len(c.Validate()) > 0 {
		return false
	}

	c.IsLoading = true
	c.ErrorMessage = ""

	var err error
	if c.edit {
		status, _ := models.ParseTaskStatus(c.Status)
		_, err = c.api.Update(ctx, c.taskID, models.UpdateTaskRequest{
			Title:       c.Title,
			Description: c.Description,
			DueDate:     c.DueDate,
			Status:      int(status),
		})
	} else {
		_, err = c.api.Create(ctx, models.CreateTaskRequest{
			Title:       c.Title,
			Description: c.Description,
			DueDate:     c.DueDate,
		})
	}
	c.IsLoading = false

	if err != nil {
		c.ErrorMessage = "Failed to save task. Please try again."
		return false
	}
	return true
}
