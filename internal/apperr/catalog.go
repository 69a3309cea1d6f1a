package apperr

// Job errors
var (
	ErrJobNotFound      = &Error{Code: "JobNotFound", Description: "The specified job does not exist.", Kind: KindNotFound}
	ErrJobAlreadyClosed = &Error{Code: "JobAlreadyClosed", Description: "The job is already closed.", Kind: KindConflict}
	ErrInvalidWorkDays  = &Error{Code: "InvalidWorkDays", Description: "The work days bitmask does not select any valid day.", Kind: KindConflict}
	ErrInvalidShiftTime = &Error{Code: "InvalidShiftTime", Description: "Shift times must be in HH:MM form.", Kind: KindConflict}
)

// Application errors
var (
	ErrJobNotAcceptingApplications = &Error{Code: "JobNotAcceptingApplications", Description: "Cannot apply to a job that may be closed or completed.", Kind: KindConflict}
	ErrAlreadyApplied              = &Error{Code: "AlreadyApplied", Description: "You have already applied to this job.", Kind: KindConflict}
	ErrApplicationNotFound         = &Error{Code: "ApplicationNotFound", Description: "The specified application does not exist.", Kind: KindNotFound}
	ErrCannotUpdateApplication     = &Error{Code: "CannotUpdateApplication", Description: "You cannot update this application because it has already been processed by the employer.", Kind: KindConflict}
	ErrUnauthorizedApplication     = &Error{Code: "UnauthorizedApplicationUpdate", Description: "You are not authorized to update this application.", Kind: KindUnauthorized}
	ErrInvalidApplicationStatus    = &Error{Code: "InvalidApplicationStatus", Description: "Cannot accept this application. The application status has already been changed.", Kind: KindConflict}
	ErrJobNotOwnedByEmployer       = &Error{Code: "JobNotOwnedByEmployer", Description: "You do not have permission to accept applications for this job.", Kind: KindUnauthorized}
	ErrWorkerHasActiveConnection   = &Error{Code: "WorkerHasActiveConnection", Description: "This worker already has an active job connection and cannot be accepted for another job.", Kind: KindConflict}
)

// Job connection errors
var (
	ErrJobConnectionNotFound    = &Error{Code: "JobConnectionNotFound", Description: "The specified job connection does not exist.", Kind: KindNotFound}
	ErrJobConnectionNotActive   = &Error{Code: "JobConnectionNotActive", Description: "The job connection is not active and cannot be cancelled.", Kind: KindConflict}
	ErrUnauthorizedCancellation = &Error{Code: "UnauthorizedCancellation", Description: "You are not authorized to cancel this job connection.", Kind: KindUnauthorized}
)

// Feedback errors
var (
	ErrInteractionPeriodEnded = &Error{Code: "InteractionPeriodEnded", Description: "Cannot submit feedback after the interaction end date.", Kind: KindDeadline}
	ErrNotPartOfConnection    = &Error{Code: "NotPartOfConnection", Description: "You are not part of this job connection.", Kind: KindUnauthorized}
	ErrFeedbackAlreadyExists  = &Error{Code: "FeedbackAlreadyExists", Description: "You have already submitted feedback for this job connection.", Kind: KindConflict}
	ErrInvalidRating          = &Error{Code: "InvalidRating", Description: "Rating must be between 1 and 5.", Kind: KindConflict}
	ErrFeedbackMessageTooLong = &Error{Code: "FeedbackMessageTooLong", Description: "Feedback message cannot exceed 500 characters.", Kind: KindConflict}
)

// Account errors
var (
	ErrUserNotFound       = &Error{Code: "UserNotFound", Description: "The specified user does not exist.", Kind: KindNotFound}
	ErrEmailAlreadyUsed   = &Error{Code: "EmailAlreadyUsed", Description: "An account with this email already exists.", Kind: KindConflict}
	ErrInvalidCredentials = &Error{Code: "InvalidCredentials", Description: "Incorrect email or password.", Kind: KindUnauthorized}
)

// Question errors
var (
	ErrQuestionNotFound         = &Error{Code: "QuestionNotFound", Description: "The specified question does not exist.", Kind: KindNotFound}
	ErrJobNotAcceptingQuestions = &Error{Code: "JobNotAcceptingQuestions", Description: "Cannot ask a question on a job that may be closed or completed.", Kind: KindConflict}
	ErrQuestionAlreadyAnswered  = &Error{Code: "QuestionAlreadyAnswered", Description: "This question has already been answered.", Kind: KindConflict}
	ErrUnauthorizedAnswer       = &Error{Code: "UnauthorizedAnswer", Description: "Only the job owner can answer questions on it.", Kind: KindUnauthorized}
)
