package repository

import (
	"context"

	"synergysphere/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}

// Upsert inserts the profile or refreshes email, display name and avatar.
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "avatar_url", "updated_at"}),
	}).Create(p).Error
	return storeErr(err)
}
