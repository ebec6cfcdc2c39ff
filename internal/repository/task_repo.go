package repository

import (
	"context"
	"time"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *models.Task) error {
	return storeErr(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &t, nil
}

func (r *TaskRepository) UpdateAssignee(ctx context.Context, id, assigneeID uint) error {
	err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{"assignee_id": assigneeID, "updated_at": time.Now()}).Error
	return storeErr(err)
}

// MarkDone reports false when the task was already done.
func (r *TaskRepository) MarkDone(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND status <> ?", id, domain.TaskStatusDone).
		Updates(map[string]interface{}{"status": domain.TaskStatusDone, "updated_at": time.Now()})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
