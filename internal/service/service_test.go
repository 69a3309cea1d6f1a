package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/scheduler"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newQueue() *scheduler.Client {
	return scheduler.NewClient(testDB, zap.NewNop())
}

// createUser inserts a fresh user so tests don't collide on the seeded ones.
func createUser(t *testing.T, role string) model.User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	u := model.User{
		ID:       uuid.New(),
		Username: role + "_" + suffix,
		Role:     role,
		Password: "irrelevant",
	}
	require.NoError(t, testDB.Create(&u).Error)
	return u
}

func createJob(t *testing.T, employerID uuid.UUID, status string) model.Job {
	t.Helper()
	j := model.Job{
		EmployerID: employerID,
		Status:     status,
		EditableJobInfo: model.EditableJobInfo{
			Title:      "Test Job",
			Salary:     5000,
			WorkDays:   model.WorkDaySaturday | model.WorkDaySunday,
			ShiftStart: "09:00",
			ShiftEnd:   "17:00",
		},
		WorkingDaysPerWeek: 2,
		WorkingHoursPerDay: 8,
	}
	require.NoError(t, testDB.Create(&j).Error)
	return j
}

func createApplication(t *testing.T, jobID uint, workerID uuid.UUID, status string) model.Application {
	t.Helper()
	a := model.Application{
		JobID:    jobID,
		WorkerID: workerID,
		Status:   status,
	}
	require.NoError(t, testDB.Create(&a).Error)
	return a
}

func createConnection(t *testing.T, job model.Job, workerID uuid.UUID, status string, endAt time.Time) model.JobConnection {
	t.Helper()
	c := model.JobConnection{
		JobID:            job.ID,
		WorkerID:         workerID,
		EmployerID:       job.EmployerID,
		Status:           status,
		InteractionEndAt: endAt,
	}
	require.NoError(t, testDB.Create(&c).Error)
	return c
}

func taskCount(t *testing.T, handler string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, testDB.Model(&model.Task{}).
		Where("handler = ?", handler).Count(&n).Error)
	return n
}
