package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is gorm model for a rating one party leaves about the other within
// a job connection. It stays hidden until the completion worker makes it
// visible at the interaction window end. One feedback per (connection, author),
// enforced by a unique index created during migration.
type Feedback struct {
	gorm.Model `gorm:"embedded"`

	Rating    int     `gorm:"not null" json:"rating"`
	Message   *string `gorm:"type:varchar(500)" json:"message,omitempty"`
	IsVisible bool    `gorm:"not null;default:false" json:"is_visible"`

	JobConnectionID uint          `gorm:"not null;index" json:"job_connection_id"`
	JobConnection   JobConnection `gorm:"foreignKey:JobConnectionID;references:ID" json:"-"`

	FromUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"from_user_id"`
	FromUser   User      `gorm:"foreignKey:FromUserID;references:ID" json:"-"`

	ToUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"to_user_id"`
	ToUser   User      `gorm:"foreignKey:ToUserID;references:ID" json:"-"`
}
