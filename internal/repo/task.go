package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/todo-api/internal/models"
)

// TaskRepo persists tasks. Every read, update and delete is scoped by (id, owner_id)
// in a single statement, so a task owned by someone else behaves exactly like a missing one.
type TaskRepo struct {
	DB *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db}
}

const taskColumns = `id, title, description, status, owner_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a task owned by ownerID with the default pending status.
func (r *TaskRepo) Create(ctx context.Context, ownerID int, title, description string) (*models.Task, error) {
	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO tasks (title, description, status, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+taskColumns,
		title, description, models.StatusPending, ownerID,
	)
	return scanTask(row)
}

// GetOwned returns the task only when it exists and belongs to ownerID.
func (r *TaskRepo) GetOwned(ctx context.Context, id, ownerID int) (*models.Task, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks
		 WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListOwned returns ownerID's tasks ordered by id. An empty status means no filter.
func (r *TaskRepo) ListOwned(ctx context.Context, ownerID int, status string) ([]models.Task, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status != "" {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 AND status = $2 ORDER BY id`,
			ownerID, status,
		)
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY id`,
			ownerID,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateOwned applies the non-nil fields to the task matching (id, ownerID).
func (r *TaskRepo) UpdateOwned(ctx context.Context, id, ownerID int, title, description, status *string) (*models.Task, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE tasks
		 SET title = COALESCE($1, title),
		     description = COALESCE($2, description),
		     status = COALESCE($3, status),
		     updated_at = now()
		 WHERE id = $4 AND owner_id = $5
		 RETURNING `+taskColumns,
		title, description, status, id, ownerID,
	)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// DeleteOwned removes the task matching (id, ownerID). A second call returns ErrNotFound.
func (r *TaskRepo) DeleteOwned(ctx context.Context, id, ownerID int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
