// Package question provides HTTP handlers for the public Q&A thread on jobs.
package question

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// QuestionController handles question and answer related endpoints
type QuestionController struct {
	Service *service.QuestionService
}

// NewQuestionController creates a new instance of QuestionController with the provided service.
func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{
		Service: svc,
	}
}

type contentBody struct {
	Content string `json:"content" binding:"required,max=500"`
}

// AskHandler posts a worker's question on a published job.
// @Summary Ask question
// @Description Only worker user can access this endpoint
// @Tags Question
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Param question body contentBody true "Question content"
// @Success 201 {object} model.Question
// @Failure 400 {object} utilities.ErrorResponse "Job not accepting questions"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /job/{id}/question [post]
func (q *QuestionController) AskHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var body contentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	question, err := q.Service.Ask(c.Request.Context(), user.ID, uint(id), body.Content)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// AnswerHandler posts the job owner's reply to a question.
// @Summary Answer question
// @Description Only the job owner can access this endpoint, once per question
// @Tags Question
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Question ID"
// @Param answer body contentBody true "Answer content"
// @Success 201 {object} model.Answer
// @Failure 400 {object} utilities.ErrorResponse "Question already answered"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Question not found"
// @Router /question/{id}/answer [post]
func (q *QuestionController) AnswerHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid question id"})
		return
	}

	var body contentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	answer, err := q.Service.Answer(c.Request.Context(), user.ID, uint(id), body.Content)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// ListHandler lists the questions on a job with their answers.
// @Summary List questions
// @Tags Question
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {array} model.Question
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job/{id}/question [get]
func (q *QuestionController) ListHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	questions, err := q.Service.ListForJob(c.Request.Context(), uint(id))
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}
