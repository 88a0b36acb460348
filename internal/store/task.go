package store

import (
	"database/sql"
	"fmt"

	"github.com/dstanek/focusflow/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var done int

	err := scanner.Scan(&t.ID, &t.UserID, &t.Description, &done, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	t.Done = done != 0
	return &t, nil
}

const taskCols = `id, user_id, description, done, created_at`

func (s *TaskStore) Create(userID int64, description string) (*model.Task, error) {
	result, err := s.db.Exec(
		`INSERT INTO tasks (user_id, description) VALUES (?, ?)`,
		userID, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListForUser returns the user's tasks in insertion order, regardless of
// done state.
func (s *TaskStore) ListForUser(userID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE user_id = ? ORDER BY id`,
		userID,
	)
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

// Toggle flips the task's done flag and returns the updated row, or (nil, nil)
// if no task with that id exists. Ownership is the route layer's concern.
func (s *TaskStore) Toggle(id int64) (*model.Task, error) {
	task, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	newDone := 0
	if !task.Done {
		newDone = 1
	}

	_, err = s.db.Exec(`UPDATE tasks SET done = ? WHERE id = ?`, newDone, id)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return s.GetByID(id)
}
