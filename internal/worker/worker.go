// Package worker implements the deferred state transitions that complete
// the application and job-connection lifecycles: the acceptance cascade,
// the job-closure cascade and the connection completion at the interaction
// window end.
package worker

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
)

// Handler names under which the workers are registered on the dispatcher.
const (
	HandlerAcceptanceCascade    = "application.acceptance_cascade"
	HandlerJobClosureCascade    = "application.job_closure"
	HandlerConnectionCompletion = "jobconnection.completion"
)

// AcceptancePayload is the parameter set of the acceptance cascade.
type AcceptancePayload struct {
	JobID                 uint      `json:"job_id"`
	AcceptedApplicationID uint      `json:"accepted_application_id"`
	WorkerID              uuid.UUID `json:"worker_id"`
}

// JobClosurePayload is the parameter set of the job-closure cascade.
type JobClosurePayload struct {
	JobID uint `json:"job_id"`
}

// CompletionPayload is the parameter set of the connection completion.
type CompletionPayload struct {
	JobConnectionID uint `json:"job_connection_id"`
}

// Workers holds the shared dependencies of all background handlers.
type Workers struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// Register binds every background handler to the dispatcher.
func Register(c *scheduler.Client, db *database.DBinstanceStruct, log *zap.Logger) *Workers {
	w := &Workers{DB: db, Log: log}
	c.Register(HandlerAcceptanceCascade, w.handleAcceptanceCascade)
	c.Register(HandlerJobClosureCascade, w.handleJobClosureCascade)
	c.Register(HandlerConnectionCompletion, w.handleConnectionCompletion)
	return w
}

func (w *Workers) handleAcceptanceCascade(ctx context.Context, raw json.RawMessage) error {
	var p AcceptancePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrap(err, "decode acceptance cascade payload")
	}
	return w.HandleApplicationAcceptance(ctx, p)
}

func (w *Workers) handleJobClosureCascade(ctx context.Context, raw json.RawMessage) error {
	var p JobClosurePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrap(err, "decode job closure payload")
	}
	return w.HandleJobClosure(ctx, p)
}

func (w *Workers) handleConnectionCompletion(ctx context.Context, raw json.RawMessage) error {
	var p CompletionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrap(err, "decode connection completion payload")
	}
	return w.ProcessJobConnectionCompletion(ctx, p.JobConnectionID)
}
