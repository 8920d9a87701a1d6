package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedSQLite "github.com/davicafu/consentlab/internal/shared/infra/db/sqlite"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
)

const tasksSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	application_ref TEXT NOT NULL,
	assignee TEXT NOT NULL,
	board_column TEXT NOT NULL,
	priority TEXT NOT NULL,
	due_date TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

const taskColumns = `id, title, application_ref, assignee, board_column, priority, due_date, created_at, updated_at`

// TaskRepoSQLite implementa la interfaz TaskRepository. Las tareas y el
// outbox viven en la misma base de datos.
type TaskRepoSQLite struct {
	db *sql.DB
}

func NewTaskRepoSQLite(db *sql.DB) *TaskRepoSQLite {
	return &TaskRepoSQLite{db: db}
}

// Migrate crea las tablas de tareas y de outbox.
func (r *TaskRepoSQLite) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, tasksSchema); err != nil {
		return fmt.Errorf("create tasks schema: %w", err)
	}
	return sharedSQLite.EnsureOutboxSchema(ctx, r.db)
}

// Seed inserta las tareas que no existan. Las ya presentes no se tocan para
// no deshacer los movimientos hechos desde el tablero.
func (r *TaskRepoSQLite) Seed(ctx context.Context, tasks []taskDomain.Task) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tasks {
		if err = t.Validate(); err != nil {
			return err
		}
		if _, err = stmt.ExecContext(ctx, t.ID.String(), t.Title, t.ApplicationRef, t.Assignee,
			string(t.Column), string(t.Priority), dueValue(t),
			sharedSQLite.FormatTime(t.CreatedAt), sharedSQLite.FormatTime(t.UpdatedAt)); err != nil {
			return fmt.Errorf("seed task %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// Update guarda la tarea y el evento en una transacción.
func (r *TaskRepoSQLite) Update(ctx context.Context, t taskDomain.Task, evt sharedDomain.OutboxEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() // Se ignora si el Commit() es exitoso

	res, err := tx.ExecContext(ctx,
		`UPDATE tasks SET title=?, application_ref=?, assignee=?, board_column=?, priority=?, due_date=?, updated_at=?
		 WHERE id=?`,
		t.Title, t.ApplicationRef, t.Assignee, string(t.Column), string(t.Priority), dueValue(t),
		sharedSQLite.FormatTime(t.UpdatedAt), t.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return taskDomain.ErrTaskNotFound
	}

	if err := sharedSQLite.InsertOutbox(ctx, tx, evt); err != nil {
		return fmt.Errorf("failed to insert outbox: %w", err)
	}

	return tx.Commit()
}

// ------------------ Lectura ------------------

func (r *TaskRepoSQLite) GetByID(ctx context.Context, id uuid.UUID) (taskDomain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=?`, id.String())
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return taskDomain.Task{}, taskDomain.ErrTaskNotFound
	}
	return t, err
}

// FetchAll devuelve el tablero completo por orden de creación.
func (r *TaskRepoSQLite) FetchAll(ctx context.Context) ([]taskDomain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tasks := []taskDomain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (taskDomain.Task, error) {
	var (
		t                taskDomain.Task
		id, column, prio string
		due              sql.NullString
		created, updated string
	)
	if err := s.Scan(&id, &t.Title, &t.ApplicationRef, &t.Assignee, &column, &prio, &due, &created, &updated); err != nil {
		return taskDomain.Task{}, err
	}

	var err error
	if t.ID, err = uuid.Parse(id); err != nil {
		return taskDomain.Task{}, fmt.Errorf("invalid UUID in tasks row: %w", err)
	}
	t.Column = taskDomain.Column(column)
	t.Priority = taskDomain.Priority(prio)
	if due.Valid {
		if t.DueDate, err = sharedSQLite.ParseTime(due.String); err != nil {
			return taskDomain.Task{}, fmt.Errorf("task %s: due_date: %w", id, err)
		}
	}
	if t.CreatedAt, err = sharedSQLite.ParseTime(created); err != nil {
		return taskDomain.Task{}, fmt.Errorf("task %s: created_at: %w", id, err)
	}
	if t.UpdatedAt, err = sharedSQLite.ParseTime(updated); err != nil {
		return taskDomain.Task{}, fmt.Errorf("task %s: updated_at: %w", id, err)
	}
	return t, nil
}

// dueValue guarda NULL cuando la tarea no tiene fecha límite.
func dueValue(t taskDomain.Task) interface{} {
	if t.DueDate.IsZero() {
		return nil
	}
	return sharedSQLite.FormatTime(t.DueDate)
}

var _ taskDomain.TaskRepository = (*TaskRepoSQLite)(nil)
