package repository

import (
	"context"
	"sort"
	"sync"

	"task_manager_api/internal/domain"
)

// MemoryTaskRepository keeps tasks in process memory. It backs tests and the
// "memory" driver for local runs; data does not survive a restart.
type MemoryTaskRepository struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]domain.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[int64]domain.Task)}
}

func (r *MemoryTaskRepository) Create(ctx context.Context, userID int64, nt domain.NewTask) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(opCreate, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t := domain.Task{
		ID:          r.nextID,
		Title:       nt.Title,
		Description: nt.Description,
		UserID:      userID,
	}
	r.tasks[t.ID] = t
	return &t, nil
}

func (r *MemoryTaskRepository) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(opList, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			res = append(res, &t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *MemoryTaskRepository) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr(opGet, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return &t, nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, userID, taskID int64, nt domain.NewTask) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storeErr(opUpdate, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	t.Title = nt.Title
	t.Description = nt.Description
	r.tasks[taskID] = t
	return true, nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storeErr(opDelete, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[taskID]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(r.tasks, taskID)
	return true, nil
}

func (r *MemoryTaskRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryTaskRepository) Close() {}
