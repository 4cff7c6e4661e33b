package services

import (
	"context"
	"time"

	"tasktrack/internal/models"
	"tasktrack/internal/repositories"
)

// TaskInput carries the already-parsed fields of a create or update
// request. Status is ignored on create.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Status      models.TaskStatus
}

// TaskService is the query/pagination engine over the task store.
// Missing ids come back as nil (or false for Delete), never as errors;
// *models.ValidationError propagates unchanged from the entity.
type TaskService interface {
	List(ctx context.Context, filter models.TaskFilter, pageIndex, pageSize int) (*models.TaskPage, error)
	GetByID(ctx context.Context, id int64) (*models.TaskSummary, error)
	Create(ctx context.Context, input TaskInput) (*models.TaskSummary, error)
	Update(ctx context.Context, id int64, input TaskInput) (*models.TaskSummary, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// List counts the filtered set before slicing, so a page index beyond the
// last page still reports the real totals with an empty window.
func (s *taskService) List(ctx context.Context, filter models.TaskFilter, pageIndex, pageSize int) (*models.TaskPage, error) {
	offset := (pageIndex - 1) * pageSize
	tasks, total, err := s.repo.FindPage(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, err
	}
	items := make([]models.TaskSummary, 0, len(tasks))
	for i := range tasks {
		items = append(items, models.Summarize(&tasks[i]))
	}
	return models.NewTaskPage(items, pageIndex, pageSize, total), nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.TaskSummary, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil || task == nil {
		return nil, err
	}
	summary := models.Summarize(task)
	return &summary, nil
}

func (s *taskService) Create(ctx context.Context, input TaskInput) (*models.TaskSummary, error) {
	task, err := models.NewTask(input.Title, input.Description, input.DueDate)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}
	summary := models.Summarize(task)
	return &summary, nil
}

// Update is load-mutate-persist within the request: unknown id yields
// nil, validation failures leave the row untouched.
func (s *taskService) Update(ctx context.Context, id int64, input TaskInput) (*models.TaskSummary, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil || task == nil {
		return nil, err
	}
	if err := task.Update(input.Title, input.Description, input.DueDate, input.Status); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Row vanished between load and persist.
		return nil, nil
	}
	summary := models.Summarize(task)
	return &summary, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
