package repository

import (
	"context"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create stores the project and its owner membership together.
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(&models.ProjectMember{ProjectID: p.ID, UserID: p.OwnerID, Role: domain.RoleOwner}).Error
	})
	return storeErr(err)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var p models.Project
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}

// Update applies the given column changes to the project.
func (r *ProjectRepository) Update(ctx context.Context, id uint, changes map[string]interface{}) error {
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(changes).Error
	return storeErr(err)
}

func (r *ProjectRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&n).Error
	return n > 0, storeErr(err)
}

func (r *ProjectRepository) GetMember(ctx context.Context, projectID, userID uint) (*models.ProjectMember, error) {
	var m models.ProjectMember
	err := r.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).First(&m).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &m, nil
}

func (r *ProjectRepository) AddMember(ctx context.Context, m *models.ProjectMember) error {
	return storeErr(r.db.WithContext(ctx).Create(m).Error)
}

func (r *ProjectRepository) UpdateMemberRole(ctx context.Context, projectID, userID uint, role string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectMember{})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ProjectRepository) ListMembers(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	list := []models.ProjectMember{}
	err := r.db.WithContext(ctx).Preload("Profile").Where("project_id = ?", projectID).Order("id").Find(&list).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}
