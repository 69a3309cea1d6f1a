package service

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/apperr"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/database"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/lifecycle"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
)

// QuestionService handles the public Q&A thread on published jobs.
type QuestionService struct {
	DB  *database.DBinstanceStruct
	Log *zap.Logger
}

// NewQuestionService creates a new instance of QuestionService.
func NewQuestionService(db *database.DBinstanceStruct, log *zap.Logger) *QuestionService {
	return &QuestionService{DB: db, Log: log}
}

// Ask creates a question by a worker on a published job.
func (s *QuestionService) Ask(ctx context.Context, workerID uuid.UUID, jobID uint, content string) (*model.Question, error) {
	log := s.Log.With(zap.String("worker_id", workerID.String()), zap.Uint("job_id", jobID))

	var job model.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("question creation failed: job not found")
		return nil, apperr.ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load job")
	}

	if err := lifecycle.CanAsk(&job); err != nil {
		log.Warn("question rejected", zap.String("reason", err.Error()))
		return nil, err
	}

	question := model.Question{
		JobID:    jobID,
		WorkerID: workerID,
		Content:  content,
	}
	if err := s.DB.WithContext(ctx).Create(&question).Error; err != nil {
		return nil, errors.Wrap(err, "create question")
	}

	log.Info("question created", zap.Uint("question_id", question.ID))
	return &question, nil
}

// Answer creates the job owner's reply to a question.
func (s *QuestionService) Answer(ctx context.Context, employerID uuid.UUID, questionID uint, content string) (*model.Answer, error) {
	log := s.Log.With(zap.String("employer_id", employerID.String()), zap.Uint("question_id", questionID))

	var question model.Question
	err := s.DB.WithContext(ctx).Preload("Job").Preload("Answer").First(&question, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("answer creation failed: question not found")
		return nil, apperr.ErrQuestionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load question")
	}

	if err := lifecycle.CanAnswer(&question, employerID, question.Answer != nil); err != nil {
		log.Warn("answer rejected", zap.String("reason", err.Error()))
		return nil, err
	}

	answer := model.Answer{
		QuestionID: questionID,
		EmployerID: employerID,
		Content:    content,
	}
	if err := s.DB.WithContext(ctx).Create(&answer).Error; err != nil {
		return nil, errors.Wrap(err, "create answer")
	}

	log.Info("answer created", zap.Uint("answer_id", answer.ID))
	return &answer, nil
}

// ListForJob returns the questions on a job with their answers.
func (s *QuestionService) ListForJob(ctx context.Context, jobID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := s.DB.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Preload("Answer").
		Find(&questions).Error; err != nil {
		return nil, errors.Wrap(err, "list questions for job")
	}
	return questions, nil
}
