package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/lifecycle"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/worker"
)

// ApplicationService handles a worker's bids on jobs and the employer's
// accept/reject decisions over them.
type ApplicationService struct {
	DB    *database.DBinstanceStruct
	Log   *zap.Logger
	Queue *scheduler.Client
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService(db *database.DBinstanceStruct, log *zap.Logger, queue *scheduler.Client) *ApplicationService {
	return &ApplicationService{DB: db, Log: log, Queue: queue}
}

// Submit creates a new application in applied status for the worker on a
// published job.
func (s *ApplicationService) Submit(ctx context.Context, workerID uuid.UUID, jobID uint, message *string) (*model.Application, error) {
	log := s.Log.With(zap.String("worker_id", workerID.String()), zap.Uint("job_id", jobID))
	log.Info("starting application creation")

	var job model.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("application creation failed: job not found")
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load job")
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&model.Application{}).
		Where("job_id = ? AND worker_id = ?", jobID, workerID).
		Count(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "check existing application")
	}

	if err := lifecycle.CanApply(&job, existing > 0); err != nil {
		log.Warn("application creation rejected", zap.String("reason", err.Error()))
		return nil, err
	}

	application := model.Application{
		JobID:    jobID,
		WorkerID: workerID,
		Message:  message,
		Status:   model.ApplicationStatusApplied,
	}
	if err := s.DB.WithContext(ctx).Create(&application).Error; err != nil {
		if uniqueViolation(err, "uniq_applications_job_worker") {
			// Concurrent duplicate submit lost the race against the index
			return nil, apperr.ErrAlreadyApplied
		}
		return nil, errors.Wrap(err, "create application")
	}

	log.Info("application created", zap.Uint("application_id", application.ID))
	return &application, nil
}

// Edit updates the message of the worker's own application while it is
// still in applied status.
func (s *ApplicationService) Edit(ctx context.Context, workerID uuid.UUID, applicationID uint, message *string) error {
	log := s.Log.With(zap.String("worker_id", workerID.String()), zap.Uint("application_id", applicationID))
	log.Info("starting application update")

	var application model.Application
	err := s.DB.WithContext(ctx).First(&application, applicationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("application update failed: not found")
		return apperr.ErrApplicationNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load application")
	}

	if err := lifecycle.CanModifyApplication(&application, workerID); err != nil {
		log.Warn("application update rejected", zap.String("reason", err.Error()))
		return err
	}

	if err := s.DB.WithContext(ctx).Model(&application).Update("message", message).Error; err != nil {
		return errors.Wrap(err, "update application message")
	}
	log.Info("application updated")
	return nil
}

// Accept runs the whole acceptance inside one transaction: the application
// becomes accepted, the job in_progress, and an active job connection with a
// ten-day interaction window is created. Readers never observe a partial
// accept. After commit two deferred tasks are enqueued: the immediate
// acceptance cascade and the completion timer at the window end.
func (s *ApplicationService) Accept(ctx context.Context, employerID uuid.UUID, applicationID uint) error {
	log := s.Log.With(zap.String("employer_id", employerID.String()), zap.Uint("application_id", applicationID))
	log.Info("starting application acceptance")

	var conn model.JobConnection
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var application model.Application
		// Row lock serializes concurrent accepts of the same application;
		// the loser re-reads a terminal status below.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Job").
			First(&application, applicationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrApplicationNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load application")
		}

		var activeConns int64
		if err := tx.Model(&model.JobConnection{}).
			Where("worker_id = ? AND status = ?", application.WorkerID, model.JobConnectionStatusActive).
			Count(&activeConns).Error; err != nil {
			return errors.Wrap(err, "check worker active connections")
		}

		if err := lifecycle.CanAccept(&application, employerID, activeConns > 0); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&application).Updates(map[string]interface{}{
			"status":            model.ApplicationStatusAccepted,
			"status_changed_at": now,
		}).Error; err != nil {
			return errors.Wrap(err, "accept application")
		}

		if err := tx.Model(&model.Job{}).
			Where("id = ?", application.JobID).
			Update("status", model.JobStatusInProgress).Error; err != nil {
			return errors.Wrap(err, "move job to in_progress")
		}

		conn = model.JobConnection{
			JobID:            application.JobID,
			WorkerID:         application.WorkerID,
			EmployerID:       employerID,
			Status:           model.JobConnectionStatusActive,
			InteractionEndAt: now.Add(model.InteractionWindow),
		}
		if err := tx.Create(&conn).Error; err != nil {
			if uniqueViolation(err, "uniq_job_connections_active_worker") {
				// Concurrent accept for the same worker on another job won first
				return apperr.ErrWorkerHasActiveConnection
			}
			return errors.Wrap(err, "create job connection")
		}
		return nil
	})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			log.Warn("application acceptance rejected", zap.String("reason", err.Error()))
		} else {
			log.Error("application acceptance failed", zap.Error(err))
		}
		return err
	}

	// Deferred work goes out only after the transaction committed
	if err := s.Queue.Enqueue(worker.HandlerAcceptanceCascade, worker.AcceptancePayload{
		JobID:                 conn.JobID,
		AcceptedApplicationID: applicationID,
		WorkerID:              conn.WorkerID,
	}); err != nil {
		log.Error("failed to enqueue acceptance cascade", zap.Error(err))
		return err
	}
	if err := s.Queue.Schedule(worker.HandlerConnectionCompletion, worker.CompletionPayload{
		JobConnectionID: conn.ID,
	}, conn.InteractionEndAt); err != nil {
		log.Error("failed to schedule connection completion", zap.Error(err))
		return err
	}

	log.Info("application accepted",
		zap.Uint("job_connection_id", conn.ID),
		zap.Time("interaction_end_at", conn.InteractionEndAt))
	return nil
}

// Reject moves the application to rejected status by the owning employer.
func (s *ApplicationService) Reject(ctx context.Context, employerID uuid.UUID, applicationID uint) error {
	log := s.Log.With(zap.String("employer_id", employerID.String()), zap.Uint("application_id", applicationID))
	log.Info("starting application rejection")

	var application model.Application
	err := s.DB.WithContext(ctx).Preload("Job").First(&application, applicationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("application rejection failed: not found")
		return apperr.ErrApplicationNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load application")
	}

	if err := lifecycle.CanReject(&application, employerID); err != nil {
		log.Warn("application rejection rejected", zap.String("reason", err.Error()))
		return err
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&application).Updates(map[string]interface{}{
		"status":            model.ApplicationStatusRejected,
		"status_changed_at": now,
	}).Error; err != nil {
		return errors.Wrap(err, "reject application")
	}
	log.Info("application rejected")
	return nil
}

// Withdraw moves the worker's own application to withdrawn status.
func (s *ApplicationService) Withdraw(ctx context.Context, workerID uuid.UUID, applicationID uint) error {
	log := s.Log.With(zap.String("worker_id", workerID.String()), zap.Uint("application_id", applicationID))
	log.Info("starting application withdrawal")

	var application model.Application
	err := s.DB.WithContext(ctx).First(&application, applicationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("application withdrawal failed: not found")
		return apperr.ErrApplicationNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load application")
	}

	if err := lifecycle.CanModifyApplication(&application, workerID); err != nil {
		log.Warn("application withdrawal rejected", zap.String("reason", err.Error()))
		return err
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&application).Updates(map[string]interface{}{
		"status":            model.ApplicationStatusWithdrawn,
		"status_changed_at": now,
	}).Error; err != nil {
		return errors.Wrap(err, "withdraw application")
	}
	log.Info("application withdrawn")
	return nil
}

// ListForJob returns the applied applications on a job for its owner.
func (s *ApplicationService) ListForJob(ctx context.Context, employerID uuid.UUID, jobID uint) ([]model.Application, error) {
	var job model.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load job")
	}
	if job.EmployerID != employerID {
		return nil, apperr.ErrJobNotOwnedByEmployer
	}

	var applications []model.Application
	if err := s.DB.WithContext(ctx).
		Where("job_id = ? AND status = ?", jobID, model.ApplicationStatusApplied).
		Preload("Worker").
		Find(&applications).Error; err != nil {
		return nil, errors.Wrap(err, "list applications for job")
	}
	return applications, nil
}

// ListPending returns the worker's applications still in applied status,
// newest first.
func (s *ApplicationService) ListPending(ctx context.Context, workerID uuid.UUID) ([]model.Application, error) {
	var applications []model.Application
	if err := s.DB.WithContext(ctx).
		Where("worker_id = ? AND status = ?", workerID, model.ApplicationStatusApplied).
		Order("created_at DESC").
		Preload("Job").
		Find(&applications).Error; err != nil {
		return nil, errors.Wrap(err, "list pending applications")
	}
	return applications, nil
}
