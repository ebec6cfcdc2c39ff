package models

import (
	"time"

	"synergysphere/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Notification struct {
	ID        uint                    `gorm:"primaryKey" json:"id"`
	UserID    uint                    `gorm:"not null;index:idx_notifications_user_read" json:"user_id"`
	Title     string                  `gorm:"size:255;not null" json:"title"`
	Message   string                  `gorm:"type:text" json:"message"`
	Type      domain.NotificationType `gorm:"size:50;not null" json:"type"`
	Data      datatypes.JSON          `json:"data,omitempty"`
	Read      bool                    `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read" json:"read"`
	ReadAt    *time.Time              `json:"read_at"`
	CreatedAt time.Time               `gorm:"not null;index" json:"created_at"`

	Icon string `gorm:"-" json:"icon"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) AfterFind(tx *gorm.DB) error {
	n.Icon = domain.NotificationIcon(n.Type)
	return nil
}

func (n *Notification) AfterCreate(tx *gorm.DB) error {
	n.Icon = domain.NotificationIcon(n.Type)
	return nil
}
