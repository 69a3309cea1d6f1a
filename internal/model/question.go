package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question is gorm model for a worker's public question on a published job
type Question struct {
	gorm.Model `gorm:"embedded"`

	Content string `gorm:"type:varchar(500);not null" json:"content"`

	JobID uint `gorm:"not null;index" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"-"`

	WorkerID uuid.UUID `gorm:"type:uuid;not null;index" json:"worker_id"`
	Worker   User      `gorm:"foreignKey:WorkerID;references:ID" json:"-"`

	Answer *Answer `gorm:"foreignKey:QuestionID" json:"answer,omitempty"`
}

// Answer is gorm model for the employer's reply to a question
type Answer struct {
	gorm.Model `gorm:"embedded"`

	Content string `gorm:"type:varchar(500);not null" json:"content"`

	QuestionID uint `gorm:"not null;uniqueIndex" json:"question_id"`

	EmployerID uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`
	Employer   User      `gorm:"foreignKey:EmployerID;references:ID" json:"-"`
}
