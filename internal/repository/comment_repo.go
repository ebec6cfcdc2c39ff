package repository

import (
	"context"

	"synergysphere/internal/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.TaskComment) error {
	return storeErr(r.db.WithContext(ctx).Create(c).Error)
}

// ListByTask returns a task's comments oldest first, with their authors.
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint) ([]models.TaskComment, error) {
	list := []models.TaskComment{}
	err := r.db.WithContext(ctx).Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}
