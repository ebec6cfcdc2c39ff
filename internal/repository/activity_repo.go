package repository

import (
	"context"

	"synergysphere/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *models.Activity) error {
	return storeErr(r.db.WithContext(ctx).Create(a).Error)
}

// ListByProject returns the newest limit entries with the actor profile loaded.
func (r *ActivityRepository) ListByProject(ctx context.Context, projectID uint, limit int) ([]models.Activity, error) {
	list := []models.Activity{}
	err := r.db.WithContext(ctx).Preload("Actor").
		Where("project_id = ?", projectID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}
