package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

func newDashboardService() *DashboardService {
	return NewDashboardService(testDB, zap.NewNop())
}

func TestWorkerSummary(t *testing.T) {
	svc := newDashboardService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)

	jobA := createJob(t, employer.ID, model.JobStatusPublished)
	jobB := createJob(t, employer.ID, model.JobStatusInProgress)
	createApplication(t, jobA.ID, w.ID, model.ApplicationStatusApplied)
	createApplication(t, jobB.ID, w.ID, model.ApplicationStatusAccepted)
	conn := createConnection(t, jobB, w.ID, model.JobConnectionStatusActive,
		time.Now().UTC().Add(model.InteractionWindow))

	summary, err := svc.WorkerSummary(ctx, w.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.ApplicationCounts[model.ApplicationStatusApplied])
	assert.EqualValues(t, 1, summary.ApplicationCounts[model.ApplicationStatusAccepted])
	require.NotNil(t, summary.ActiveConnection)
	assert.Equal(t, conn.ID, summary.ActiveConnection.ID)
	assert.EqualValues(t, 0, summary.CompletedJobs)
}

func TestEmployerSummary(t *testing.T) {
	svc := newDashboardService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)

	job := createJob(t, employer.ID, model.JobStatusPublished)
	createJob(t, employer.ID, model.JobStatusClosed)
	createApplication(t, job.ID, w.ID, model.ApplicationStatusApplied)
	require.NoError(t, testDB.Create(&model.Question{
		JobID:    job.ID,
		WorkerID: w.ID,
		Content:  "Any weekend shifts?",
	}).Error)

	summary, err := svc.EmployerSummary(ctx, employer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.JobCounts[model.JobStatusPublished])
	assert.EqualValues(t, 1, summary.JobCounts[model.JobStatusClosed])
	assert.EqualValues(t, 1, summary.PendingApplications)
	assert.EqualValues(t, 1, summary.UnansweredQuestions)
}

func TestSummaryUnknownUser(t *testing.T) {
	svc := newDashboardService()
	ctx := context.Background()

	_, err := svc.WorkerSummary(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}
