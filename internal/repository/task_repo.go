package repository

import (
	"context"
	"errors"

	"task_manager_api/internal/domain"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	insertTaskQuery = `
INSERT INTO tasks (title, description, completed, user_id)
VALUES ($1, $2, false, $3)
RETURNING id, title, description, completed, user_id
`
	selectTasksByUserQuery = `
SELECT id, title, description, completed, user_id
FROM tasks
WHERE user_id = $1
ORDER BY id ASC
`
	selectTaskQuery = `
SELECT id, title, description, completed, user_id
FROM tasks
WHERE id = $1 AND user_id = $2
`
	updateTaskQuery = `
UPDATE tasks
SET title = $1, description = $2
WHERE id = $3 AND user_id = $4
`
	deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
)

// TaskRepository is the Postgres TaskStore.
type TaskRepository struct {
	db     *pgxpool.Pool
	logger zerolog.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger zerolog.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger.With().Str("store", "postgres").Logger(),
	}
}

func (r *TaskRepository) Create(ctx context.Context, userID int64, nt domain.NewTask) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, insertTaskQuery, nt.Title, nt.Description, userID).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID)
	if err != nil {
		return nil, r.fail(opCreate, err)
	}
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, selectTasksByUserQuery, userID)
	if err != nil {
		return nil, r.fail(opList, err)
	}
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID); err != nil {
			return nil, r.fail(opList, err)
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(opList, err)
	}
	return res, nil
}

func (r *TaskRepository) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.QueryRow(ctx, selectTaskQuery, taskID, userID).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, r.fail(opGet, err)
	}
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, userID, taskID int64, nt domain.NewTask) (bool, error) {
	tag, err := r.db.Exec(ctx, updateTaskQuery, nt.Title, nt.Description, taskID, userID)
	if err != nil {
		return false, r.fail(opUpdate, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteTaskQuery, taskID, userID)
	if err != nil {
		return false, r.fail(opDelete, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *TaskRepository) Close() {
	r.db.Close()
}

func (r *TaskRepository) fail(op string, err error) error {
	ev := r.logger.Error().Err(err).Str("op", op)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		ev = ev.Str("sqlstate", pgErr.Code).Str("class", sqlStateClass(pgErr.Code))
	}
	ev.Msg("postgres query failed")

	return storeErr(op, err)
}

func sqlStateClass(code string) string {
	switch {
	case pgerrcode.IsConnectionException(code):
		return "connection_exception"
	case pgerrcode.IsIntegrityConstraintViolation(code):
		return "integrity_constraint_violation"
	case pgerrcode.IsInsufficientResources(code):
		return "insufficient_resources"
	case pgerrcode.IsOperatorIntervention(code):
		return "operator_intervention"
	case pgerrcode.IsSyntaxErrororAccessRuleViolation(code):
		return "syntax_error_or_access_rule_violation"
	case pgerrcode.IsTransactionRollback(code):
		return "transaction_rollback"
	default:
		return "other"
	}
}
