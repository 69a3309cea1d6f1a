package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/testutil"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/worker"
)

func newJobService() *JobService {
	return NewJobService(testDB, zap.NewNop(), newQueue())
}

func TestCreateJob(t *testing.T) {
	svc := newJobService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)

	info := model.EditableJobInfo{
		Title:      "Night Guard",
		Salary:     9000,
		WorkDays:   model.WorkDaySaturday | model.WorkDayMonday | model.WorkDayWednesday,
		ShiftStart: "22:00",
		ShiftEnd:   "06:00",
		Address:    testutil.StringPtr("Giza"),
	}

	job, err := svc.Create(ctx, employer.ID, info)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPublished, job.Status)
	assert.Equal(t, 3, job.WorkingDaysPerWeek)
	// Overnight shift spans midnight
	assert.Equal(t, 8, job.WorkingHoursPerDay)
	assert.Equal(t, employer.ID, job.EmployerID)
}

func TestCreateJobValidation(t *testing.T) {
	svc := newJobService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)

	info := model.EditableJobInfo{
		Title:      "Broken",
		Salary:     1000,
		WorkDays:   0,
		ShiftStart: "09:00",
		ShiftEnd:   "17:00",
	}
	_, err := svc.Create(ctx, employer.ID, info)
	assert.ErrorIs(t, err, apperr.ErrInvalidWorkDays)

	info.WorkDays = model.WorkDaySaturday
	info.ShiftStart = "morning"
	_, err = svc.Create(ctx, employer.ID, info)
	assert.ErrorIs(t, err, apperr.ErrInvalidShiftTime)
}

func TestCloseJob(t *testing.T) {
	svc := newJobService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	other := createUser(t, model.RoleEmployer)
	job := createJob(t, employer.ID, model.JobStatusPublished)

	assert.ErrorIs(t, svc.Close(ctx, other.ID, job.ID), apperr.ErrJobNotOwnedByEmployer)
	assert.ErrorIs(t, svc.Close(ctx, employer.ID, 9999999), apperr.ErrJobNotFound)

	before := taskCount(t, worker.HandlerJobClosureCascade)
	require.NoError(t, svc.Close(ctx, employer.ID, job.ID))

	var got model.Job
	require.NoError(t, testDB.First(&got, job.ID).Error)
	assert.Equal(t, model.JobStatusClosed, got.Status)

	// Closure cascade was enqueued
	assert.Equal(t, before+1, taskCount(t, worker.HandlerJobClosureCascade))

	// Closing twice is a conflict
	assert.ErrorIs(t, svc.Close(ctx, employer.ID, job.ID), apperr.ErrJobAlreadyClosed)
}
