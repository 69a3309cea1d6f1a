package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// DashboardService aggregates per-user summaries across jobs, applications
// and connections.
type DashboardService struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(db *database.DBinstanceStruct, log *zap.Logger) *DashboardService {
	return &DashboardService{DB: db, Log: log}
}

// WorkerSummary is the worker home screen payload.
type WorkerSummary struct {
	ApplicationCounts map[string]int64      `json:"application_counts"`
	ActiveConnection  *model.JobConnection  `json:"active_connection,omitempty"`
	CompletedJobs     int64                 `json:"completed_jobs"`
	AverageRating     float64               `json:"average_rating"`
	TotalRatings      int                   `json:"total_ratings"`
	RecentFeedback    []model.Feedback      `json:"recent_feedback"`
}

// EmployerSummary is the employer home screen payload.
type EmployerSummary struct {
	JobCounts           map[string]int64 `json:"job_counts"`
	PendingApplications int64            `json:"pending_applications"`
	UnansweredQuestions int64            `json:"unanswered_questions"`
	AverageRating       float64          `json:"average_rating"`
	TotalRatings        int              `json:"total_ratings"`
	RecentFeedback      []model.Feedback `json:"recent_feedback"`
}

type statusCount struct {
	Status string
	Count  int64
}

// WorkerSummary builds the dashboard for a worker account.
func (s *DashboardService) WorkerSummary(ctx context.Context, workerID uuid.UUID) (*WorkerSummary, error) {
	var user model.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", workerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load worker")
	}

	summary := WorkerSummary{
		ApplicationCounts: map[string]int64{},
		AverageRating:     user.AverageRating,
		TotalRatings:      user.TotalRatingsCount,
	}

	var counts []statusCount
	if err := s.DB.WithContext(ctx).Model(&model.Application{}).
		Select("status, count(*) as count").
		Where("worker_id = ?", workerID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "count applications")
	}
	for _, c := range counts {
		summary.ApplicationCounts[c.Status] = c.Count
	}

	var active model.JobConnection
	err = s.DB.WithContext(ctx).
		Where("worker_id = ? AND status = ?", workerID, model.JobConnectionStatusActive).
		Preload("Job").
		First(&active).Error
	if err == nil {
		summary.ActiveConnection = &active
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "load active connection")
	}

	if err := s.DB.WithContext(ctx).Model(&model.JobConnection{}).
		Where("worker_id = ? AND status = ?", workerID, model.JobConnectionStatusCompleted).
		Count(&summary.CompletedJobs).Error; err != nil {
		return nil, errors.Wrap(err, "count completed connections")
	}

	if err := s.recentFeedback(ctx, workerID, &summary.RecentFeedback); err != nil {
		return nil, err
	}
	return &summary, nil
}

// EmployerSummary builds the dashboard for an employer account.
func (s *DashboardService) EmployerSummary(ctx context.Context, employerID uuid.UUID) (*EmployerSummary, error) {
	var user model.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", employerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load employer")
	}

	summary := EmployerSummary{
		JobCounts:     map[string]int64{},
		AverageRating: user.AverageRating,
		TotalRatings:  user.TotalRatingsCount,
	}

	var counts []statusCount
	if err := s.DB.WithContext(ctx).Model(&model.Job{}).
		Select("status, count(*) as count").
		Where("employer_id = ?", employerID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "count jobs")
	}
	for _, c := range counts {
		summary.JobCounts[c.Status] = c.Count
	}

	if err := s.DB.WithContext(ctx).Model(&model.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ? AND applications.status = ?", employerID, model.ApplicationStatusApplied).
		Count(&summary.PendingApplications).Error; err != nil {
		return nil, errors.Wrap(err, "count pending applications")
	}

	if err := s.DB.WithContext(ctx).Model(&model.Question{}).
		Joins("JOIN jobs ON jobs.id = questions.job_id").
		Joins("LEFT JOIN answers ON answers.question_id = questions.id AND answers.deleted_at IS NULL").
		Where("jobs.employer_id = ? AND answers.id IS NULL", employerID).
		Count(&summary.UnansweredQuestions).Error; err != nil {
		return nil, errors.Wrap(err, "count unanswered questions")
	}

	if err := s.recentFeedback(ctx, employerID, &summary.RecentFeedback); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *DashboardService) recentFeedback(ctx context.Context, userID uuid.UUID, dst *[]model.Feedback) error {
	if err := s.DB.WithContext(ctx).
		Where("to_user_id = ? AND is_visible = ?", userID, true).
		Order("created_at DESC").
		Limit(5).
		Find(dst).Error; err != nil {
		return errors.Wrap(err, "load recent feedback")
	}
	return nil
}
