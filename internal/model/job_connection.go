package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InteractionWindow is how long a job connection stays open for chat,
// feedback and cancellation after an application is accepted.
const InteractionWindow = 10 * 24 * time.Hour

var (
	// JobConnectionStatusActive indicates the engagement is ongoing
	JobConnectionStatusActive = "active"
	// JobConnectionStatusCompleted is set by the completion worker at the window end
	JobConnectionStatusCompleted = "completed"
	// JobConnectionStatusCancelledByWorker indicates the worker cancelled the engagement
	JobConnectionStatusCancelledByWorker = "cancelled_by_worker"
	// JobConnectionStatusCancelledByEmployer indicates the employer cancelled the engagement
	JobConnectionStatusCancelledByEmployer = "cancelled_by_employer"
)

// JobConnection is gorm model for the engagement created when an application
// is accepted. InteractionEndAt is immutable once set. A worker can hold at
// most one active connection, enforced by a partial unique index created
// during migration.
type JobConnection struct {
	gorm.Model `gorm:"embedded"`

	InteractionEndAt time.Time  `gorm:"not null;<-:create" json:"interaction_end_at"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	Status           string     `gorm:"type:text;not null;index" json:"status"`

	JobID uint `gorm:"not null;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	WorkerID uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id"`
	Worker   User      `gorm:"foreignKey:WorkerID;references:ID" json:"-"`

	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`
	Employer   User      `gorm:"foreignKey:EmployerID;references:ID" json:"-"`
}
