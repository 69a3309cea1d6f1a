package worker

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// HandleApplicationAcceptance runs after an acceptance commits. It moves
// every competing application out of the applied state with two bulk
// updates: other applications on the same job become
// employer_choose_another_worker, and the worker's pending applications on
// other jobs become worker_accepted_at_another_job. Both updates are
// predicate-scoped so re-delivery finds nothing left to change.
func (w *Workers) HandleApplicationAcceptance(ctx context.Context, p AcceptancePayload) error {
	log := w.Log.With(
		zap.Uint("job_id", p.JobID),
		zap.Uint("application_id", p.AcceptedApplicationID),
		zap.String("worker_id", p.WorkerID.String()))

	now := time.Now().UTC()
	err := w.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Application{}).
			Where("job_id = ? AND id <> ? AND status = ?",
				p.JobID, p.AcceptedApplicationID, model.ApplicationStatusApplied).
			Updates(map[string]interface{}{
				"status":            model.ApplicationStatusEmployerChooseAnotherWorker,
				"status_changed_at": now,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "reject competing applications")
		}
		log.Info("rejected competing applications on job", zap.Int64("count", res.RowsAffected))

		res = tx.Model(&model.Application{}).
			Where("worker_id = ? AND id <> ? AND status = ?",
				p.WorkerID, p.AcceptedApplicationID, model.ApplicationStatusApplied).
			Updates(map[string]interface{}{
				"status":            model.ApplicationStatusWorkerAcceptedAtAnotherJob,
				"status_changed_at": now,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "close worker applications on other jobs")
		}
		log.Info("closed worker applications on other jobs", zap.Int64("count", res.RowsAffected))
		return nil
	})
	if err != nil {
		log.Error("acceptance cascade failed", zap.Error(err))
		return err
	}
	return nil
}

// HandleJobClosure runs after a job is closed. Every application still in
// applied status on that job becomes job_closed in a single bulk update.
func (w *Workers) HandleJobClosure(ctx context.Context, p JobClosurePayload) error {
	log := w.Log.With(zap.Uint("job_id", p.JobID))

	now := time.Now().UTC()
	res := w.DB.WithContext(ctx).Model(&model.Application{}).
		Where("job_id = ? AND status = ?", p.JobID, model.ApplicationStatusApplied).
		Updates(map[string]interface{}{
			"status":            model.ApplicationStatusJobClosed,
			"status_changed_at": now,
		})
	if res.Error != nil {
		log.Error("job closure cascade failed", zap.Error(res.Error))
		return errors.Wrap(res.Error, "close applications for job")
	}
	log.Info("updated applications to job_closed", zap.Int64("count", res.RowsAffected))
	return nil
}
