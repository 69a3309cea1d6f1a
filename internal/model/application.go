package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ApplicationStatusApplied indicates the application is pending employer action
	ApplicationStatusApplied = "applied"
	// ApplicationStatusAccepted indicates the employer accepted the application
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates the employer rejected the application
	ApplicationStatusRejected = "rejected"
	// ApplicationStatusWithdrawn indicates the worker withdrew the application
	ApplicationStatusWithdrawn = "withdrawn"
	// ApplicationStatusWorkerAcceptedAtAnotherJob is set by the acceptance cascade
	// on the worker's other pending applications
	ApplicationStatusWorkerAcceptedAtAnotherJob = "worker_accepted_at_another_job"
	// ApplicationStatusEmployerChooseAnotherWorker is set by the acceptance cascade
	// on competing applications for the same job
	ApplicationStatusEmployerChooseAnotherWorker = "employer_choose_another_worker"
	// ApplicationStatusJobClosed is set by the closure cascade when the job closes
	ApplicationStatusJobClosed = "job_closed"
)

// Application is gorm model for a worker's bid on a job.
// At most one non-deleted application may exist per (job, worker) pair,
// enforced by a partial unique index created during migration.
type Application struct {
	gorm.Model `gorm:"embedded"`

	Message         *string    `json:"message,omitempty"`
	Status          string     `gorm:"type:text;not null;index" json:"status"`
	StatusChangedAt *time.Time `json:"status_changed_at,omitempty"`

	JobID uint `gorm:"not null;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	WorkerID uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id"`
	Worker   User      `gorm:"foreignKey:WorkerID;references:ID" json:"-"`
}

// TerminalApplicationStatus reports whether status permits no further transition.
// Applied is the only status an application can move out of.
func TerminalApplicationStatus(status string) bool {
	return status != ApplicationStatusApplied
}
