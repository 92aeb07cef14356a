package repository

import (
	"context"
	"errors"

	"task_manager_api/internal/domain"

	"gorm.io/gorm"
)

// taskRow maps the tasks table for GORM.
type taskRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Completed   bool   `gorm:"not null;default:false"`
	UserID      int64  `gorm:"not null;index:idx_tasks_user_id"`
}

func (taskRow) TableName() string {
	return "tasks"
}

func (row taskRow) toDomain() *domain.Task {
	return &domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Completed:   row.Completed,
		UserID:      row.UserID,
	}
}

// SQLiteTaskRepository is the GORM-backed TaskStore used with the sqlite driver.
type SQLiteTaskRepository struct {
	db *gorm.DB
}

func NewSQLiteTaskRepository(db *gorm.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// AutoMigrate creates the tasks table and its owner index.
func (r *SQLiteTaskRepository) AutoMigrate() error {
	if err := r.db.AutoMigrate(&taskRow{}); err != nil {
		return storeErr("migrate", err)
	}
	return nil
}

func (r *SQLiteTaskRepository) Create(ctx context.Context, userID int64, nt domain.NewTask) (*domain.Task, error) {
	row := taskRow{
		Title:       nt.Title,
		Description: nt.Description,
		Completed:   false,
		UserID:      userID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, storeErr(opCreate, err)
	}
	return row.toDomain(), nil
}

func (r *SQLiteTaskRepository) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	var rows []taskRow
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, storeErr(opList, err)
	}

	res := make([]*domain.Task, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

func (r *SQLiteTaskRepository) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	var row taskRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(opGet, err)
	}
	return row.toDomain(), nil
}

func (r *SQLiteTaskRepository) Update(ctx context.Context, userID, taskID int64, nt domain.NewTask) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&taskRow{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(map[string]any{
			"title":       nt.Title,
			"description": nt.Description,
		})
	if res.Error != nil {
		return false, storeErr(opUpdate, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *SQLiteTaskRepository) Delete(ctx context.Context, userID, taskID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&taskRow{})
	if res.Error != nil {
		return false, storeErr(opDelete, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *SQLiteTaskRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *SQLiteTaskRepository) Close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
