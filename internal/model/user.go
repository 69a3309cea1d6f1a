package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// RoleWorker is a user looking to be hired for jobs
	RoleWorker = "worker"
	// RoleEmployer is a user posting jobs and hiring workers
	RoleEmployer = "employer"
	// RoleAdmin is a user with administrative access
	RoleAdmin = "admin"
)

// User is gorm model for every account in the system, worker and employer alike
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username  string  `gorm:"uniqueIndex;not null" json:"username"`
	Email     *string `gorm:"uniqueIndex" json:"email"`
	Password  string  `json:"-"`
	Role      string  `gorm:"type:text;not null" json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`

	// Rating aggregate, written only by the connection completion worker
	TotalRatingSum    int     `gorm:"default:0" json:"total_rating_sum"`
	TotalRatingsCount int     `gorm:"default:0" json:"total_ratings_count"`
	AverageRating     float64 `gorm:"default:0" json:"average_rating"`
}
