package models

import (
	"time"

	"synergysphere/internal/domain"
)

type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:idx_project_member" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_project_member;index" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"` // owner | admin | member
	CreatedAt time.Time `json:"created_at"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}

func (m *ProjectMember) CanManage() bool {
	return m.Role == domain.RoleOwner || m.Role == domain.RoleAdmin
}
