package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

var (
	// TaskStatusPending indicates the task is waiting for its run time
	TaskStatusPending = "pending"
	// TaskStatusRunning indicates a dispatcher has claimed the task
	TaskStatusRunning = "running"
	// TaskStatusDone indicates the handler finished without error
	TaskStatusDone = "done"
	// TaskStatusFailed indicates the task exhausted its attempts
	TaskStatusFailed = "failed"
)

// Task is gorm model for a durable unit of deferred work. Rows survive
// restarts; the dispatcher claims due rows and delivers them at least once
// to the named handler.
type Task struct {
	gorm.Model `gorm:"embedded"`

	Handler string          `gorm:"type:text;not null;index" json:"handler"`
	Payload json.RawMessage `gorm:"type:jsonb" json:"payload"`

	Status      string     `gorm:"type:text;not null;index:idx_tasks_due" json:"status"`
	RunAt       time.Time  `gorm:"not null;index:idx_tasks_due" json:"run_at"`
	Attempts    int        `gorm:"default:0" json:"attempts"`
	MaxAttempts int        `gorm:"default:5" json:"max_attempts"`
	LastError   *string    `json:"last_error,omitempty"`
	LockedAt    *time.Time `json:"locked_at,omitempty"`
}
