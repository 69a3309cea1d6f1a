// Package feedback provides HTTP handlers for post-hire feedback.
package feedback

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// FeedbackController handles feedback related endpoints
type FeedbackController struct {
	Service *service.FeedbackService
}

// NewFeedbackController creates a new instance of FeedbackController with the provided service.
func NewFeedbackController(svc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{
		Service: svc,
	}
}

// SubmitHandler records feedback from one party of a job connection about
// the other. Feedback stays hidden until the interaction period ends.
// @Summary Submit feedback
// @Description Only the worker or employer on the connection can access this endpoint, once each, before the interaction period ends
// @Tags Feedback
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job connection ID"
// @Success 201 {object} model.Feedback
// @Failure 400 {object} utilities.ErrorResponse "Invalid rating, duplicate feedback, period ended"
// @Failure 403 {object} utilities.ErrorResponse "Not part of this connection"
// @Failure 404 {object} utilities.ErrorResponse "Connection not found"
// @Router /connection/{id}/feedback [post]
func (f *FeedbackController) SubmitHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid connection id"})
		return
	}

	var body struct {
		Rating  int     `json:"rating" binding:"required"`
		Message *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	fb, err := f.Service.Add(c.Request.Context(), user.ID, uint(id), body.Rating, body.Message)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fb)
}
