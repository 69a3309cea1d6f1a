package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// JobStatusPublished indicates the job is open and accepting applications
	JobStatusPublished = "published"
	// JobStatusInProgress indicates an application was accepted and work is ongoing
	JobStatusInProgress = "in_progress"
	// JobStatusCompleted indicates the job connection finished its interaction window
	JobStatusCompleted = "completed"
	// JobStatusClosed indicates the employer closed the job explicitly
	JobStatusClosed = "closed"
	// JobStatusCancelled indicates the job connection was cancelled by either party
	JobStatusCancelled = "cancelled"
)

// EditableJobInfo contain job fields that come from the employer on creation
type EditableJobInfo struct {
	Title       string  `gorm:"type:text;not null" json:"title"`
	Salary      float64 `json:"salary"`
	WorkDays    int     `json:"work_days"`
	ShiftStart  string  `gorm:"type:text" json:"shift_start"`
	ShiftEnd    string  `gorm:"type:text" json:"shift_end"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`
	Experience  *string `json:"experience,omitempty"`
}

// Job is gorm model for an employer's posting seeking a worker
type Job struct {
	gorm.Model      `gorm:"embedded"`
	EditableJobInfo `gorm:"embedded"`

	// Derived from WorkDays and the shift times on creation
	WorkingDaysPerWeek int `json:"working_days_per_week"`
	WorkingHoursPerDay int `json:"working_hours_per_day"`

	Status string `gorm:"type:text;not null;index" json:"status"`

	EmployerID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"employer_id"`
	Employer   User      `gorm:"foreignKey:EmployerID;references:ID" json:"-"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
	Questions    []Question    `gorm:"foreignKey:JobID" json:"-"`
}
