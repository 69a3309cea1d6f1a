package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/lifecycle"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// JobConnectionService handles cancellation of active engagements.
// Completion is not triggered here; the deferred worker owns it.
type JobConnectionService struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewJobConnectionService creates a new instance of JobConnectionService.
func NewJobConnectionService(db *database.DBinstanceStruct, log *zap.Logger) *JobConnectionService {
	return &JobConnectionService{DB: db, Log: log}
}

// Cancel ends an active connection on behalf of either party. The status
// records who cancelled, the cancellation time is stamped, and the job
// cascades to cancelled. The completion task already scheduled for this
// connection will later find it non-active and only process feedback.
func (s *JobConnectionService) Cancel(ctx context.Context, userID uuid.UUID, role string, jobConnectionID uint) error {
	log := s.Log.With(
		zap.String("user_id", userID.String()),
		zap.String("role", role),
		zap.Uint("job_connection_id", jobConnectionID))
	log.Info("attempting to cancel job connection")

	var conn model.JobConnection
	err := s.DB.WithContext(ctx).First(&conn, jobConnectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("cancellation failed: job connection not found")
		return apperr.ErrJobConnectionNotFound
	}
	if err != nil {
		return errors.Wrap(err, "load job connection")
	}

	newStatus, ruleErr := lifecycle.CancellationStatus(&conn, userID, role)
	if ruleErr != nil {
		log.Warn("cancellation rejected", zap.String("reason", ruleErr.Error()))
		return ruleErr
	}

	now := time.Now().UTC()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&conn).Updates(map[string]interface{}{
			"status":       newStatus,
			"cancelled_at": now,
		}).Error; err != nil {
			return errors.Wrap(err, "cancel job connection")
		}
		if err := tx.Model(&model.Job{}).
			Where("id = ?", conn.JobID).
			Update("status", model.JobStatusCancelled).Error; err != nil {
			return errors.Wrap(err, "cascade job cancellation")
		}
		return nil
	})
	if err != nil {
		log.Error("cancellation failed", zap.Error(err))
		return err
	}

	log.Info("job connection cancelled",
		zap.String("new_status", newStatus),
		zap.Uint("job_id", conn.JobID))
	return nil
}
