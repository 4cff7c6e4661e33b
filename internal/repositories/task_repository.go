package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tasktrack/internal/models"
)

// TaskRepository is the persistence contract for tasks. Absence is a
// value here: FindByID returns nil, Update and Delete report whether a
// row was touched. Errors mean the store itself failed.
type TaskRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindPage(ctx context.Context, filter models.TaskFilter, offset, limit int) ([]models.Task, int, error)
	Insert(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListDueSoon(ctx context.Context, until time.Time, limit int) ([]models.Task, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, status, due_date, created_at, updated_at`

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

// FindPage runs two collaborating queries: a count over the filtered set,
// then the requested window. The full set never crosses the wire.
func (r *taskRepository) FindPage(ctx context.Context, filter models.TaskFilter, offset, limit int) ([]models.Task, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != nil {
		where = " WHERE status = $1"
		args = append(args, int(*filter.Status))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks%s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (r *taskRepository) Insert(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, due_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, int(task.Status), task.DueDate,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) (bool, error) {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, status=$3, due_date=$4, updated_at=$5
		WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, int(task.Status), task.DueDate,
		task.UpdatedAt, task.ID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListDueSoon returns open tasks whose due date falls on or before the
// cutoff, soonest first.
func (r *taskRepository) ListDueSoon(ctx context.Context, until time.Time, limit int) ([]models.Task, error) {
	query := `
SELECT ` + taskColumns + `
FROM tasks
WHERE due_date IS NOT NULL
  AND due_date <= $1
  AND status <> $2
ORDER BY due_date ASC
LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, until, int(models.StatusDone), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Status,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
