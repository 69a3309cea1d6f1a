// Package job provides HTTP handlers for job posting operations.
package job

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// JobController handles job related endpoints
type JobController struct {
	Service *service.JobService
}

// NewJobController creates a new instance of JobController with the provided job service.
func NewJobController(svc *service.JobService) *JobController {
	return &JobController{
		Service: svc,
	}
}

// CreateHandler handles the creation of a new job by an employer user.
// @Summary Create job
// @Description Only employer user can access this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body model.EditableJobInfo true "Job information"
// @Success 201 {object} model.Job "Successfully created job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header, request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job [post]
func (j *JobController) CreateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job, err := j.Service.Create(c.Request.Context(), user.ID, info)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetAllHandler fetches all published jobs.
// @Summary List jobs
// @Description List every job currently accepting applications
// @Tags Job
// @Produce json
// @Success 200 {array} model.Job
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /job [get]
func (j *JobController) GetAllHandler(c *gin.Context) {
	jobs, err := j.Service.List(c.Request.Context())
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetByIDHandler fetches a single job by its id.
// @Summary Get job
// @Tags Job
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /job/{id} [get]
func (j *JobController) GetByIDHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	job, err := j.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CloseHandler closes a job owned by the requesting employer. Pending
// applications are moved to their terminal status in the background.
// @Summary Close job
// @Description Only the job owner can access this endpoint
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Job already closed"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /job/{id}/close [post]
func (j *JobController) CloseHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	if err := j.Service.Close(c.Request.Context(), user.ID, id); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job closed"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
