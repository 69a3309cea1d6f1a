package worker

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// ProcessJobConnectionCompletion fires at the interaction window end. If the
// connection is still active it becomes completed along with its job; a
// connection cancelled in the meantime keeps its cancelled status but its
// feedback is still processed. Every hidden feedback is made visible and
// folded into the recipient's rating aggregate.
//
// The queue delivers at least once. A rating counts only when this run flips
// the feedback from hidden to visible, so re-delivery cannot double-count.
func (w *Workers) ProcessJobConnectionCompletion(ctx context.Context, jobConnectionID uint) error {
	log := w.Log.With(zap.Uint("job_connection_id", jobConnectionID))

	var conn model.JobConnection
	if err := w.DB.WithContext(ctx).Preload("Job").First(&conn, jobConnectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Connection deleted before the timer fired, nothing to do
			log.Warn("job connection not found, skipping completion")
			return nil
		}
		return errors.Wrap(err, "load job connection")
	}

	err := w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if conn.Status == model.JobConnectionStatusActive {
			if err := tx.Model(&model.JobConnection{}).
				Where("id = ? AND status = ?", conn.ID, model.JobConnectionStatusActive).
				Update("status", model.JobConnectionStatusCompleted).Error; err != nil {
				return errors.Wrap(err, "complete job connection")
			}
			if err := tx.Model(&model.Job{}).
				Where("id = ?", conn.JobID).
				Update("status", model.JobStatusCompleted).Error; err != nil {
				return errors.Wrap(err, "complete job")
			}
			log.Info("job connection and job marked as completed", zap.Uint("job_id", conn.JobID))
		} else {
			log.Info("job connection no longer active, only processing feedback",
				zap.String("status", conn.Status))
		}

		var feedbacks []model.Feedback
		if err := tx.Where("job_connection_id = ?", conn.ID).Find(&feedbacks).Error; err != nil {
			return errors.Wrap(err, "load feedback for connection")
		}
		if len(feedbacks) == 0 {
			log.Info("no feedback found for job connection")
			return nil
		}

		for i := range feedbacks {
			fb := &feedbacks[i]
			if fb.IsVisible {
				// Already processed by a previous delivery
				continue
			}
			if err := tx.Model(fb).Update("is_visible", true).Error; err != nil {
				return errors.Wrap(err, "make feedback visible")
			}
			if err := applyRating(tx, fb); err != nil {
				return err
			}
			log.Info("feedback made visible and rating applied",
				zap.Uint("feedback_id", fb.ID),
				zap.String("to_user_id", fb.ToUserID.String()),
				zap.Int("rating", fb.Rating))
		}
		return nil
	})
	if err != nil {
		log.Error("job connection completion failed", zap.Error(err))
		return err
	}
	log.Info("job connection completion processed")
	return nil
}

// applyRating folds one feedback into the recipient's running aggregate.
// At most one feedback per (connection, author) exists, so a connection
// contributes at most one rating per direction.
func applyRating(tx *gorm.DB, fb *model.Feedback) error {
	var user model.User
	if err := tx.First(&user, "id = ?", fb.ToUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Recipient deleted, keep the feedback visible but skip the aggregate
			return nil
		}
		return errors.Wrap(err, "load feedback recipient")
	}

	user.TotalRatingSum += fb.Rating
	user.TotalRatingsCount++
	if user.TotalRatingsCount > 0 {
		user.AverageRating = float64(user.TotalRatingSum) / float64(user.TotalRatingsCount)
	} else {
		user.AverageRating = 0.0
	}

	return errors.Wrap(tx.Model(&user).Updates(map[string]interface{}{
		"total_rating_sum":    user.TotalRatingSum,
		"total_ratings_count": user.TotalRatingsCount,
		"average_rating":      user.AverageRating,
	}).Error, "update recipient rating aggregate")
}
