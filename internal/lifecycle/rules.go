// Package lifecycle encodes every legal state transition for jobs,
// applications, job connections and feedback as pure precondition checks.
// Nothing here touches the database; services load the entities, ask the
// rules, then apply the resulting state change.
package lifecycle

import (
	"time"

	"github.com/google/uuid"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// CanApply checks a worker may bid on the job. alreadyApplied is the caller's
// answer to "does a non-deleted application for this (job, worker) exist".
func CanApply(job *model.Job, alreadyApplied bool) error {
	if job == nil {
		return apperr.ErrJobNotFound
	}
	if job.Status != model.JobStatusPublished {
		return apperr.ErrJobNotAcceptingApplications
	}
	if alreadyApplied {
		return apperr.ErrAlreadyApplied
	}
	return nil
}

// CanModifyApplication checks a worker may edit or withdraw their application.
func CanModifyApplication(app *model.Application, workerID uuid.UUID) error {
	if app == nil {
		return apperr.ErrApplicationNotFound
	}
	if app.WorkerID != workerID {
		return apperr.ErrUnauthorizedApplication
	}
	if model.TerminalApplicationStatus(app.Status) {
		return apperr.ErrCannotUpdateApplication
	}
	return nil
}

// CanAccept checks the employer may accept the application.
// workerHasActiveConnection is the caller's answer to "does this worker hold
// any active job connection system-wide". The check order matches the
// rejection reasons callers expect: existence, ownership, job state,
// application state, worker availability.
func CanAccept(app *model.Application, employerID uuid.UUID, workerHasActiveConnection bool) error {
	if app == nil {
		return apperr.ErrApplicationNotFound
	}
	if app.Job.EmployerID != employerID {
		return apperr.ErrJobNotOwnedByEmployer
	}
	if app.Job.Status != model.JobStatusPublished {
		return apperr.ErrJobNotAcceptingApplications
	}
	if model.TerminalApplicationStatus(app.Status) {
		return apperr.ErrInvalidApplicationStatus
	}
	if workerHasActiveConnection {
		return apperr.ErrWorkerHasActiveConnection
	}
	return nil
}

// CanReject checks the employer may reject the application.
func CanReject(app *model.Application, employerID uuid.UUID) error {
	if app == nil {
		return apperr.ErrApplicationNotFound
	}
	if model.TerminalApplicationStatus(app.Status) {
		return apperr.ErrInvalidApplicationStatus
	}
	if app.Job.EmployerID != employerID {
		return apperr.ErrJobNotOwnedByEmployer
	}
	return nil
}

// CanClose checks the job can be closed by explicit employer action.
func CanClose(job *model.Job) error {
	if job == nil {
		return apperr.ErrJobNotFound
	}
	if job.Status == model.JobStatusClosed {
		return apperr.ErrJobAlreadyClosed
	}
	return nil
}

// CancellationStatus resolves the terminal status a cancellation by userID
// with the given role would produce. It rejects callers who are not a party
// of the connection and connections that are no longer active.
func CancellationStatus(conn *model.JobConnection, userID uuid.UUID, role string) (string, error) {
	if conn == nil {
		return "", apperr.ErrJobConnectionNotFound
	}
	if conn.Status != model.JobConnectionStatusActive {
		return "", apperr.ErrJobConnectionNotActive
	}
	switch role {
	case model.RoleWorker:
		if conn.WorkerID != userID {
			return "", apperr.ErrUnauthorizedCancellation
		}
		return model.JobConnectionStatusCancelledByWorker, nil
	case model.RoleEmployer:
		if conn.EmployerID != userID {
			return "", apperr.ErrUnauthorizedCancellation
		}
		return model.JobConnectionStatusCancelledByEmployer, nil
	}
	return "", apperr.ErrUnauthorizedCancellation
}

// FeedbackRecipient checks fromUserID may leave feedback on the connection
// right now and returns the counterparty receiving it. The window check is
// strict: feedback at exactly the interaction end is rejected.
func FeedbackRecipient(conn *model.JobConnection, fromUserID uuid.UUID, now time.Time, hasExisting bool) (uuid.UUID, error) {
	if conn == nil {
		return uuid.Nil, apperr.ErrJobConnectionNotFound
	}
	if !now.Before(conn.InteractionEndAt) {
		return uuid.Nil, apperr.ErrInteractionPeriodEnded
	}
	if conn.WorkerID != fromUserID && conn.EmployerID != fromUserID {
		return uuid.Nil, apperr.ErrNotPartOfConnection
	}
	if hasExisting {
		return uuid.Nil, apperr.ErrFeedbackAlreadyExists
	}
	if conn.WorkerID == fromUserID {
		return conn.EmployerID, nil
	}
	return conn.WorkerID, nil
}

// ValidateFeedback checks the rating range and message length.
func ValidateFeedback(rating int, message *string) error {
	if rating < 1 || rating > 5 {
		return apperr.ErrInvalidRating
	}
	if message != nil && len([]rune(*message)) > 500 {
		return apperr.ErrFeedbackMessageTooLong
	}
	return nil
}

// CanAsk checks a question may be added to the job.
func CanAsk(job *model.Job) error {
	if job == nil {
		return apperr.ErrJobNotFound
	}
	if job.Status != model.JobStatusPublished {
		return apperr.ErrJobNotAcceptingQuestions
	}
	return nil
}

// CanAnswer checks the employer may answer the question.
func CanAnswer(q *model.Question, employerID uuid.UUID, alreadyAnswered bool) error {
	if q == nil {
		return apperr.ErrQuestionNotFound
	}
	if q.Job.EmployerID != employerID {
		return apperr.ErrUnauthorizedAnswer
	}
	if alreadyAnswered {
		return apperr.ErrQuestionAlreadyAnswered
	}
	return nil
}
