package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/lifecycle"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/worker"
)

// JobService handles job postings and their closure.
type JobService struct {
	DB    *database.DBinstanceStruct
	Log   *zap.Logger
	Queue *scheduler.Client
}

// NewJobService creates a new instance of JobService.
func NewJobService(db *database.DBinstanceStruct, log *zap.Logger, queue *scheduler.Client) *JobService {
	return &JobService{DB: db, Log: log, Queue: queue}
}

// Create publishes a new job for the employer. The work-days bitmask and
// shift times are validated and the per-week/per-day figures derived here.
func (s *JobService) Create(ctx context.Context, employerID uuid.UUID, info model.EditableJobInfo) (*model.Job, error) {
	log := s.Log.With(zap.String("employer_id", employerID.String()))
	log.Info("starting job creation")

	if !model.ValidWorkDays(info.WorkDays) {
		log.Warn("job creation rejected: invalid work days", zap.Int("work_days", info.WorkDays))
		return nil, apperr.ErrInvalidWorkDays
	}
	hours, err := model.ShiftDurationHours(info.ShiftStart, info.ShiftEnd)
	if err != nil {
		log.Warn("job creation rejected: invalid shift times",
			zap.String("shift_start", info.ShiftStart), zap.String("shift_end", info.ShiftEnd))
		return nil, apperr.ErrInvalidShiftTime
	}

	job := model.Job{
		EditableJobInfo:    info,
		EmployerID:         employerID,
		Status:             model.JobStatusPublished,
		WorkingDaysPerWeek: model.WorkingDaysPerWeek(info.WorkDays),
		WorkingHoursPerDay: hours,
	}
	if err := s.DB.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, errors.Wrap(err, "create job")
	}

	log.Info("job created", zap.Uint("job_id", job.ID))
	return &job, nil
}

// GetByID returns one job.
func (s *JobService) GetByID(ctx context.Context, jobID uint) (*model.Job, error) {
	var job model.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load job")
	}
	return &job, nil
}

// List returns every published job, newest first.
func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := s.DB.WithContext(ctx).
		Where("status = ?", model.JobStatusPublished).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "list published jobs")
	}
	return jobs, nil
}

// Close moves the job to closed status and enqueues the closure cascade
// that moves its pending applications to job_closed.
func (s *JobService) Close(ctx context.Context, employerID uuid.UUID, jobID uint) error {
	log := s.Log.With(zap.Uint("job_id", jobID), zap.String("employer_id", employerID.String()))
	log.Info("attempting to close job")

	var job model.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("job closure failed: not found")
		return apperr.ErrJobNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load job")
	}

	if job.EmployerID != employerID {
		log.Warn("job closure rejected: not the owner")
		return apperr.ErrJobNotOwnedByEmployer
	}

	if err := lifecycle.CanClose(&job); err != nil {
		log.Warn("job closure rejected", zap.String("reason", err.Error()))
		return err
	}

	if err := s.DB.WithContext(ctx).Model(&job).Update("status", model.JobStatusClosed).Error; err != nil {
		return errors.Wrap(err, "close job")
	}

	if err := s.Queue.Enqueue(worker.HandlerJobClosureCascade, worker.JobClosurePayload{JobID: jobID}); err != nil {
		log.Error("failed to enqueue job closure cascade", zap.Error(err))
		return err
	}

	log.Info("job closed and closure cascade enqueued")
	return nil
}
