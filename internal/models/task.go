package models

import (
	"time"

	"gorm.io/datatypes"
)

type Task struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	ProjectID   uint                        `gorm:"not null;index" json:"project_id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	AssigneeID  *uint                       `gorm:"index" json:"assignee_id"`
	CreatedBy   uint                        `gorm:"not null" json:"created_by"`
	Priority    string                      `gorm:"size:10;not null" json:"priority"`
	Status      string                      `gorm:"size:20;not null;index" json:"status"`
	Deadline    *time.Time                  `json:"deadline"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

type TaskComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;index" json:"task_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Author *Profile `gorm:"foreignKey:UserID" json:"profiles,omitempty"`
}

func (TaskComment) TableName() string {
	return "task_comments"
}

type ProjectMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	ReplyTo   *uint     `json:"reply_to"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Author *Profile `gorm:"foreignKey:UserID" json:"author,omitempty"`
}

func (ProjectMessage) TableName() string {
	return "project_messages"
}
