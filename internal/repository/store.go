package repository

import (
	"context"
	"errors"

	"task_manager_api/internal/domain"
)

// ErrStore matches every error produced by a TaskStore backend.
var ErrStore = errors.New("task store failure")

// StoreError wraps a backend failure with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "task store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// TaskStore is the persistence boundary for tasks. Every lookup, update and
// delete is scoped by the (task id, owner id) pair: a task owned by someone
// else behaves exactly like a missing one.
type TaskStore interface {
	// Create inserts a task with completed=false and returns the stored row.
	Create(ctx context.Context, userID int64, t domain.NewTask) (*domain.Task, error)

	// List returns the owner's tasks in ascending id order.
	List(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Get returns nil, nil when no task matches the pair.
	Get(ctx context.Context, userID, taskID int64) (*domain.Task, error)

	// Update replaces title and description. It reports false when no
	// task matches the pair.
	Update(ctx context.Context, userID, taskID int64, t domain.NewTask) (bool, error)

	// Delete reports false when no task matches the pair.
	Delete(ctx context.Context, userID, taskID int64) (bool, error)

	Ping(ctx context.Context) error
	Close()
}

const (
	opCreate = "create"
	opList   = "list"
	opGet    = "get"
	opUpdate = "update"
	opDelete = "delete"
)
