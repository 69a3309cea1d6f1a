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

// FeedbackService handles ratings the parties of a connection leave about
// each other during the interaction window.
type FeedbackService struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewFeedbackService creates a new instance of FeedbackService.
func NewFeedbackService(db *database.DBinstanceStruct, log *zap.Logger) *FeedbackService {
	return &FeedbackService{DB: db, Log: log}
}

// Add creates a hidden feedback from one party of the connection to the
// other. It becomes visible only when the completion worker runs at the
// interaction window end.
func (s *FeedbackService) Add(ctx context.Context, fromUserID uuid.UUID, jobConnectionID uint, rating int, message *string) (*model.Feedback, error) {
	log := s.Log.With(
		zap.String("from_user_id", fromUserID.String()),
		zap.Uint("job_connection_id", jobConnectionID))
	log.Info("starting feedback creation")

	if err := lifecycle.ValidateFeedback(rating, message); err != nil {
		log.Warn("feedback rejected", zap.String("reason", err.Error()))
		return nil, err
	}

	var conn model.JobConnection
	err := s.DB.WithContext(ctx).First(&conn, jobConnectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("feedback creation failed: job connection not found")
		return nil, apperr.ErrJobConnectionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load job connection")
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&model.Feedback{}).
		Where("job_connection_id = ? AND from_user_id = ?", jobConnectionID, fromUserID).
		Count(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "check existing feedback")
	}

	toUserID, ruleErr := lifecycle.FeedbackRecipient(&conn, fromUserID, time.Now().UTC(), existing > 0)
	if ruleErr != nil {
		log.Warn("feedback rejected", zap.String("reason", ruleErr.Error()))
		return nil, ruleErr
	}

	feedback := model.Feedback{
		JobConnectionID: jobConnectionID,
		FromUserID:      fromUserID,
		ToUserID:        toUserID,
		Rating:          rating,
		Message:         message,
		IsVisible:       false,
	}
	if err := s.DB.WithContext(ctx).Create(&feedback).Error; err != nil {
		if uniqueViolation(err, "uniq_feedbacks_connection_author") {
			return nil, apperr.ErrFeedbackAlreadyExists
		}
		return nil, errors.Wrap(err, "create feedback")
	}

	log.Info("feedback created",
		zap.Uint("feedback_id", feedback.ID),
		zap.String("to_user_id", toUserID.String()))
	return &feedback, nil
}
