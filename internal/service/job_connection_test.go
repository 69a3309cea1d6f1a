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
)

func newConnectionService() *JobConnectionService {
	return NewJobConnectionService(testDB, zap.NewNop())
}

func TestCancelByWorker(t *testing.T) {
	svc := newConnectionService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusInProgress)
	conn := createConnection(t, job, w.ID, model.JobConnectionStatusActive,
		time.Now().UTC().Add(model.InteractionWindow))

	require.NoError(t, svc.Cancel(ctx, w.ID, model.RoleWorker, conn.ID))

	var got model.JobConnection
	require.NoError(t, testDB.First(&got, conn.ID).Error)
	assert.Equal(t, model.JobConnectionStatusCancelledByWorker, got.Status)
	assert.NotNil(t, got.CancelledAt)
	// InteractionEndAt is immutable
	assert.WithinDuration(t, conn.InteractionEndAt, got.InteractionEndAt, time.Second)

	// Job cascades to cancelled
	var gotJob model.Job
	require.NoError(t, testDB.First(&gotJob, job.ID).Error)
	assert.Equal(t, model.JobStatusCancelled, gotJob.Status)

	// Cancelling twice fails on the non-active status
	assert.ErrorIs(t, svc.Cancel(ctx, w.ID, model.RoleWorker, conn.ID), apperr.ErrJobConnectionNotActive)
}

func TestCancelByEmployer(t *testing.T) {
	svc := newConnectionService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusInProgress)
	conn := createConnection(t, job, w.ID, model.JobConnectionStatusActive,
		time.Now().UTC().Add(model.InteractionWindow))

	require.NoError(t, svc.Cancel(ctx, employer.ID, model.RoleEmployer, conn.ID))

	var got model.JobConnection
	require.NoError(t, testDB.First(&got, conn.ID).Error)
	assert.Equal(t, model.JobConnectionStatusCancelledByEmployer, got.Status)
}

func TestCancelUnauthorized(t *testing.T) {
	svc := newConnectionService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	outsider := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusInProgress)
	conn := createConnection(t, job, w.ID, model.JobConnectionStatusActive,
		time.Now().UTC().Add(model.InteractionWindow))

	assert.ErrorIs(t, svc.Cancel(ctx, outsider.ID, model.RoleWorker, conn.ID), apperr.ErrUnauthorizedCancellation)
	assert.ErrorIs(t, svc.Cancel(ctx, w.ID, model.RoleWorker, 9999999), apperr.ErrJobConnectionNotFound)

	// Connection untouched
	var got model.JobConnection
	require.NoError(t, testDB.First(&got, conn.ID).Error)
	assert.Equal(t, model.JobConnectionStatusActive, got.Status)
}
