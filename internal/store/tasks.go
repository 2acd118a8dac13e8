package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/household/internal/database"
	"github.com/dukerupert/household/internal/model"
)

// TaskStore persists household to-dos.
type TaskStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db, now: utcNow}
}

func scanTask(s scanner) (*model.Task, error) {
	var t model.Task
	var completed int
	var dueDate sql.NullTime
	var assignedTo sql.NullInt64
	err := s.Scan(&t.ID, &t.Title, &t.Category, &completed, &dueDate, &assignedTo, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Completed = completed != 0
	t.DueDate = timePtr(dueDate)
	t.AssignedTo = int64Ptr(assignedTo)
	return &t, nil
}

const taskCols = `id, title, category, completed, due_date, assigned_to, created_at, updated_at`

func getTask(ctx context.Context, q querier, id int64) (*model.Task, error) {
	row := q.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("Task with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) Create(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	var t *model.Task
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if in.AssignedTo != nil {
			if err := ensureExists(ctx, tx, userEntity, *in.AssignedTo); err != nil {
				return err
			}
		}

		now := s.now()
		result, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (title, category, completed, due_date, assigned_to, created_at, updated_at)
			 VALUES (?, ?, 0, ?, ?, ?, ?)`,
			in.Title, in.Category, nullTime(in.DueDate), nullInt64(in.AssignedTo), now, now,
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		t, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	return getTask(ctx, s.db, id)
}

// List returns tasks matching every supplied filter. Open tasks come before
// completed ones; within each group tasks are ordered by due date with
// undated tasks last, then newest first.
func (s *TaskStore) List(ctx context.Context, f model.TaskFilter) ([]model.Task, error) {
	var where []string
	var args []any
	if f.AssignedTo != nil {
		where = append(where, "assigned_to = ?")
		args = append(args, *f.AssignedTo)
	}
	if f.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *f.Category)
	}

	query := `SELECT ` + taskCols + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY completed, due_date IS NULL, due_date, created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(ctx context.Context, id int64, u model.TaskUpdate) (*model.Task, error) {
	var t *model.Task
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, taskEntity, id); err != nil {
			return err
		}
		if u.AssignedTo != nil {
			if err := ensureExists(ctx, tx, userEntity, *u.AssignedTo); err != nil {
				return err
			}
		}

		var set updateSet
		if u.Title != nil {
			set.add("title", *u.Title)
		}
		if u.Category != nil {
			set.add("category", *u.Category)
		}
		if u.Completed != nil {
			set.add("completed", boolInt(*u.Completed))
		}
		if u.DueDate != nil {
			set.add("due_date", u.DueDate.UTC())
		}
		if u.AssignedTo != nil {
			set.add("assigned_to", *u.AssignedTo)
		}
		if err := set.exec(ctx, tx, "tasks", id, s.now()); err != nil {
			return err
		}

		var err error
		t, err = getTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := ensureExists(ctx, tx, taskEntity, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}
