package repository

import (
	"context"

	"synergysphere/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *models.ProjectMessage) error {
	return storeErr(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*models.ProjectMessage, error) {
	var m models.ProjectMessage
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &m, nil
}

// ListByProject returns the conversation oldest first; limit <= 0 returns
// everything after offset.
func (r *MessageRepository) ListByProject(ctx context.Context, projectID uint, limit, offset int) ([]models.ProjectMessage, error) {
	list := []models.ProjectMessage{}
	q := r.db.WithContext(ctx).Preload("Author").
		Where("project_id = ?", projectID).
		Order("created_at ASC").Order("id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}
