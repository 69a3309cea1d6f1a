package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

func newQuestionService() *QuestionService {
	return NewQuestionService(testDB, zap.NewNop())
}

func TestAskAndAnswer(t *testing.T) {
	svc := newQuestionService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	other := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)
	job := createJob(t, employer.ID, model.JobStatusPublished)

	q, err := svc.Ask(ctx, w.ID, job.ID, "Is transport provided?")
	require.NoError(t, err)
	assert.Equal(t, job.ID, q.JobID)

	// Only the job owner can answer
	_, err = svc.Answer(ctx, other.ID, q.ID, "Yes")
	assert.ErrorIs(t, err, apperr.ErrUnauthorizedAnswer)

	a, err := svc.Answer(ctx, employer.ID, q.ID, "Yes, from the metro station")
	require.NoError(t, err)
	assert.Equal(t, q.ID, a.QuestionID)

	// One answer per question
	_, err = svc.Answer(ctx, employer.ID, q.ID, "Again")
	assert.ErrorIs(t, err, apperr.ErrQuestionAlreadyAnswered)

	list, err := svc.ListForJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Answer)
	assert.Equal(t, a.ID, list[0].Answer.ID)
}

func TestAskRejections(t *testing.T) {
	svc := newQuestionService()
	ctx := context.Background()
	employer := createUser(t, model.RoleEmployer)
	w := createUser(t, model.RoleWorker)

	_, err := svc.Ask(ctx, w.ID, 9999999, "Hello?")
	assert.ErrorIs(t, err, apperr.ErrJobNotFound)

	closed := createJob(t, employer.ID, model.JobStatusClosed)
	_, err = svc.Ask(ctx, w.ID, closed.ID, "Still open?")
	assert.ErrorIs(t, err, apperr.ErrJobNotAcceptingQuestions)

	_, err = svc.Answer(ctx, employer.ID, 9999999, "?")
	assert.ErrorIs(t, err, apperr.ErrQuestionNotFound)
}
