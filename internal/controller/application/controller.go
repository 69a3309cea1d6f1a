// Package application provides HTTP handlers for job application operations.
package application

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Service *service.ApplicationService
}

// NewApplicationController creates a new instance of ApplicationController with the provided service.
func NewApplicationController(svc *service.ApplicationService) *ApplicationController {
	return &ApplicationController{
		Service: svc,
	}
}

type applicationBody struct {
	JobID   uint    `json:"job_id" binding:"required"`
	Message *string `json:"message"`
}

// SubmitHandler handles the creation of a new job application by a worker user.
// @Summary Create job application
// @Description Only worker user can access this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body applicationBody true "Application information"
// @Success 201 {object} model.Application "Successfully applied to job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header, request body, duplicate application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as worker"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [post]
func (a *ApplicationController) SubmitHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var body applicationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	app, err := a.Service.Submit(c.Request.Context(), user.ID, body.JobID, body.Message)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// EditHandler updates the message of a pending application owned by the worker.
// @Summary Edit job application
// @Description Only the applicant can access this endpoint, and only while the application is pending
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Application already processed"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /application/{id} [patch]
func (a *ApplicationController) EditHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	var body struct {
		Message *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := a.Service.Edit(c.Request.Context(), user.ID, id, body.Message); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application updated"})
}

// WithdrawHandler withdraws a pending application owned by the worker.
// @Summary Withdraw job application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Application already processed"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /application/{id}/withdraw [post]
func (a *ApplicationController) WithdrawHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	if err := a.Service.Withdraw(c.Request.Context(), user.ID, id); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application withdrawn"})
}

// AcceptHandler accepts an application on behalf of the job owner. On success
// the worker is connected to the job and competing applications are resolved
// in the background.
// @Summary Accept job application
// @Description Only the job owner can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Application already processed, worker unavailable"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /application/{id}/accept [post]
func (a *ApplicationController) AcceptHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	if err := a.Service.Accept(c.Request.Context(), user.ID, id); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application accepted"})
}

// RejectHandler rejects an application on behalf of the job owner.
// @Summary Reject job application
// @Description Only the job owner can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Application already processed"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Router /application/{id}/reject [post]
func (a *ApplicationController) RejectHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	if err := a.Service.Reject(c.Request.Context(), user.ID, id); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application rejected"})
}

// ListForJobHandler lists every application on a job owned by the employer.
// @Summary List applications for a job
// @Description Only the job owner can access this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job ID"
// @Success 200 {array} model.Application
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Router /job/{id}/application [get]
func (a *ApplicationController) ListForJobHandler(c *gin.Context) {
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

	apps, err := a.Service.ListForJob(c.Request.Context(), user.ID, id)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

// ListMineHandler lists the requesting worker's pending applications.
// @Summary List my pending applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /application [get]
func (a *ApplicationController) ListMineHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	apps, err := a.Service.ListPending(c.Request.Context(), user.ID)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, apps)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
