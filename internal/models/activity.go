package models

import (
	"time"

	"synergysphere/internal/domain"

	"gorm.io/datatypes"
)

// Activity is one entry of a project's append-only history.
type Activity struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	ProjectID    uint                `gorm:"not null;index" json:"project_id"`
	ActorID      uint                `gorm:"not null;index" json:"actor_id"`
	ActivityType domain.ActivityType `gorm:"size:50;not null" json:"activity_type"`
	ActivityData datatypes.JSON      `json:"activity_data,omitempty"`
	CreatedAt    time.Time           `gorm:"not null;index" json:"created_at"`

	Actor *Profile `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (Activity) TableName() string {
	return "project_activities"
}
