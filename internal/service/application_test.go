package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/worker"
)

func newApplicationService() *ApplicationService {
	return NewApplicationService(testDB, zap.NewNop(), newQueue())
}

func TestSubmit(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)

	msg := "I can start immediately"
	app, err := svc.Submit(ctx, w.ID, job.ID, &msg)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusApplied, app.Status)
	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, w.ID, app.WorkerID)

	// Second submit on the same job is a duplicate
	_, err = svc.Submit(ctx, w.ID, job.ID, nil)
	assert.ErrorIs(t, err, apperr.ErrAlreadyApplied)

	// Unknown job
	_, err = svc.Submit(ctx, w.ID, 9999999, nil)
	assert.ErrorIs(t, err, apperr.ErrJobNotFound)

	// Closed job is not accepting applications
	closed := createJob(t, employer.ID, model.JobStatusClosed)
	_, err = svc.Submit(ctx, w.ID, closed.ID, nil)
	assert.ErrorIs(t, err, apperr.ErrJobNotAcceptingApplications)
}

func TestEditAndWithdraw(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	stranger := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)
	app := createApplication(t, job.ID, w.ID, model.ApplicationStatusApplied)

	updated := "updated message"
	require.NoError(t, svc.Edit(ctx, w.ID, app.ID, &updated))

	var got model.Application
	require.NoError(t, testDB.First(&got, app.ID).Error)
	require.NotNil(t, got.Message)
	assert.Equal(t, updated, *got.Message)

	// Only the applicant may touch it
	assert.ErrorIs(t, svc.Edit(ctx, stranger.ID, app.ID, &updated), apperr.ErrUnauthorizedApplication)
	assert.ErrorIs(t, svc.Withdraw(ctx, stranger.ID, app.ID), apperr.ErrUnauthorizedApplication)

	require.NoError(t, svc.Withdraw(ctx, w.ID, app.ID))
	require.NoError(t, testDB.First(&got, app.ID).Error)
	assert.Equal(t, model.ApplicationStatusWithdrawn, got.Status)
	assert.NotNil(t, got.StatusChangedAt)

	// Withdrawn is terminal
	assert.ErrorIs(t, svc.Edit(ctx, w.ID, app.ID, &updated), apperr.ErrCannotUpdateApplication)
	assert.ErrorIs(t, svc.Withdraw(ctx, w.ID, app.ID), apperr.ErrCannotUpdateApplication)
}

func TestAccept(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)
	app := createApplication(t, job.ID, w.ID, model.ApplicationStatusApplied)

	before := time.Now().UTC()
	require.NoError(t, svc.Accept(ctx, employer.ID, app.ID))

	var gotApp model.Application
	require.NoError(t, testDB.First(&gotApp, app.ID).Error)
	assert.Equal(t, model.ApplicationStatusAccepted, gotApp.Status)
	assert.NotNil(t, gotApp.StatusChangedAt)

	var gotJob model.Job
	require.NoError(t, testDB.First(&gotJob, job.ID).Error)
	assert.Equal(t, model.JobStatusInProgress, gotJob.Status)

	var conn model.JobConnection
	require.NoError(t, testDB.Where("job_id = ?", job.ID).First(&conn).Error)
	assert.Equal(t, model.JobConnectionStatusActive, conn.Status)
	assert.Equal(t, w.ID, conn.WorkerID)
	assert.Equal(t, employer.ID, conn.EmployerID)
	// Interaction window is ten days from acceptance
	assert.WithinDuration(t, before.Add(model.InteractionWindow), conn.InteractionEndAt, time.Minute)

	// Both deferred tasks went out after commit
	var cascade model.Task
	require.NoError(t, testDB.Where("handler = ?", worker.HandlerAcceptanceCascade).
		Order("id DESC").First(&cascade).Error)
	assert.Equal(t, model.TaskStatusPending, cascade.Status)

	var completion model.Task
	require.NoError(t, testDB.Where("handler = ?", worker.HandlerConnectionCompletion).
		Order("id DESC").First(&completion).Error)
	assert.WithinDuration(t, conn.InteractionEndAt, completion.RunAt, time.Second)
}

func TestAcceptRejections(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	other := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)
	app := createApplication(t, job.ID, w.ID, model.ApplicationStatusApplied)

	assert.ErrorIs(t, svc.Accept(ctx, employer.ID, 9999999), apperr.ErrApplicationNotFound)
	assert.ErrorIs(t, svc.Accept(ctx, other.ID, app.ID), apperr.ErrJobNotOwnedByEmployer)

	// A worker already engaged elsewhere cannot be accepted
	otherJob := createJob(t, other.ID, model.JobStatusInProgress)
	createConnection(t, otherJob, w.ID, model.JobConnectionStatusActive, time.Now().Add(model.InteractionWindow))
	assert.ErrorIs(t, svc.Accept(ctx, employer.ID, app.ID), apperr.ErrWorkerHasActiveConnection)

	// Nothing changed on the rejected path
	var gotApp model.Application
	require.NoError(t, testDB.First(&gotApp, app.ID).Error)
	assert.Equal(t, model.ApplicationStatusApplied, gotApp.Status)
	var gotJob model.Job
	require.NoError(t, testDB.First(&gotJob, job.ID).Error)
	assert.Equal(t, model.JobStatusPublished, gotJob.Status)
}

func TestAcceptAlreadyProcessed(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)
	app := createApplication(t, job.ID, w.ID, model.ApplicationStatusWithdrawn)

	assert.ErrorIs(t, svc.Accept(ctx, employer.ID, app.ID), apperr.ErrInvalidApplicationStatus)
}

func TestReject(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	other := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)
	app := createApplication(t, job.ID, w.ID, model.ApplicationStatusApplied)

	assert.ErrorIs(t, svc.Reject(ctx, other.ID, app.ID), apperr.ErrJobNotOwnedByEmployer)

	require.NoError(t, svc.Reject(ctx, employer.ID, app.ID))
	var got model.Application
	require.NoError(t, testDB.First(&got, app.ID).Error)
	assert.Equal(t, model.ApplicationStatusRejected, got.Status)

	// Rejecting twice fails on the terminal status
	assert.ErrorIs(t, svc.Reject(ctx, employer.ID, app.ID), apperr.ErrInvalidApplicationStatus)
}

func TestListForJobAndListPending(t *testing.T) {
	svc := newApplicationService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	other := createUser(t, model.RoleEmployer)
	w1 := createUser(t, model.RoleWorker)
	w2 := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)

	createApplication(t, job.ID, w1.ID, model.ApplicationStatusApplied)
	createApplication(t, job.ID, w2.ID, model.ApplicationStatusRejected)

	apps, err := svc.ListForJob(ctx, employer.ID, job.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, w1.ID, apps[0].WorkerID)

	_, err = svc.ListForJob(ctx, other.ID, job.ID)
	assert.ErrorIs(t, err, apperr.ErrJobNotOwnedByEmployer)

	pending, err := svc.ListPending(ctx, w1.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, job.ID, pending[0].JobID)

	pending, err = svc.ListPending(ctx, w2.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
