package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktrack/internal/models"
)

// fakeTaskRepository is an in-memory stand-in honoring the repository
// contract: absence is nil/false, pages are id-ascending windows.
type fakeTaskRepository struct {
	nextID int64
	tasks  map[int64]models.Task
}

func newFakeTaskRepository() *fakeTaskRepository {
	return &fakeTaskRepository{nextID: 1, tasks: make(map[int64]models.Task)}
}

func (r *fakeTaskRepository) FindByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTaskRepository) FindPage(_ context.Context, filter models.TaskFilter, offset, limit int) ([]models.Task, int, error) {
	var filtered []models.Task
	for _, t := range r.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID < filtered[j].ID })

	total := len(filtered)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (r *fakeTaskRepository) Insert(_ context.Context, task *models.Task) error {
	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepository) Update(_ context.Context, task *models.Task) (bool, error) {
	if _, ok := r.tasks[task.ID]; !ok {
		return false, nil
	}
	r.tasks[task.ID] = *task
	return true, nil
}

func (r *fakeTaskRepository) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.tasks[id]; !ok {
		return false, nil
	}
	delete(r.tasks, id)
	return true, nil
}

func (r *fakeTaskRepository) ListDueSoon(_ context.Context, until time.Time, limit int) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.DueDate != nil && !t.DueDate.After(until) && t.Status != models.StatusDone {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func seedTasks(t *testing.T, svc TaskService, n int, status models.TaskStatus) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		created, err := svc.Create(ctx, TaskInput{Title: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		if status != models.StatusTodo {
			_, err = svc.Update(ctx, created.ID, TaskInput{Title: created.Title, Status: status})
			require.NoError(t, err)
		}
	}
}

func TestList_FilterAndPaginate(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	seedTasks(t, svc, 15, models.StatusDone)
	seedTasks(t, svc, 4, models.StatusTodo)

	done := models.StatusDone
	page, err := svc.List(context.Background(), models.TaskFilter{Status: &done}, 2, 10)
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 15, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)
	for _, item := range page.Items {
		assert.Equal(t, "Done", item.Status)
	}
}

func TestList_BeyondLastPage(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	seedTasks(t, svc, 7, models.StatusTodo)

	page, err := svc.List(context.Background(), models.TaskFilter{}, 5, 10)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)
}

func TestList_StableOrderByID(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	seedTasks(t, svc, 12, models.StatusTodo)

	page1, err := svc.List(context.Background(), models.TaskFilter{}, 1, 5)
	require.NoError(t, err)
	page2, err := svc.List(context.Background(), models.TaskFilter{}, 2, 5)
	require.NoError(t, err)

	var ids []int64
	for _, it := range append(page1.Items, page2.Items...) {
		ids = append(ids, it.ID)
	}
	require.Len(t, ids, 10)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1])
	}
}

func TestGetByID_Absent(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())

	got, err := svc.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreate_ProjectsSummary(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	created, err := svc.Create(context.Background(), TaskInput{
		Title:   "T",
		DueDate: &tomorrow,
	})
	require.NoError(t, err)
	assert.Equal(t, "Todo", created.Status)
	assert.NotZero(t, created.ID)
	assert.Nil(t, created.UpdatedAt)
}

func TestCreate_ValidationPropagates(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	yesterday := time.Now().UTC().Add(-24 * time.Hour)

	_, err := svc.Create(context.Background(), TaskInput{Title: "T", DueDate: &yesterday})
	require.Error(t, err)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "dueDate")
}

func TestUpdate_UnknownIDIsAbsence(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())

	got, err := svc.Update(context.Background(), 123, TaskInput{Title: "x", Status: models.StatusTodo})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete_UnknownIDIsFalse(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())

	deleted, err := svc.Delete(context.Background(), 123)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRoundTrip_CreateUpdateGet(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	ctx := context.Background()
	tomorrow := time.Now().UTC().Add(24 * time.Hour)

	created, err := svc.Create(ctx, TaskInput{Title: "T", DueDate: &tomorrow})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, TaskInput{
		Title:   "T",
		DueDate: &tomorrow,
		Status:  models.StatusDone,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Done", got.Status)
	require.NotNil(t, got.UpdatedAt)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestUpdate_ValidationLeavesRowUntouched(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, TaskInput{Title: "before"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, TaskInput{Title: "", Status: models.StatusDone})
	require.Error(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "before", got.Title)
	assert.Equal(t, "Todo", got.Status)
}
