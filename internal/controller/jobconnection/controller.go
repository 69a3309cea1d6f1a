// Package jobconnection provides HTTP handlers for active hire management.
package jobconnection

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// JobConnectionController handles job connection related endpoints
type JobConnectionController struct {
	Service *service.JobConnectionService
}

// NewJobConnectionController creates a new instance of JobConnectionController with the provided service.
func NewJobConnectionController(svc *service.JobConnectionService) *JobConnectionController {
	return &JobConnectionController{
		Service: svc,
	}
}

// CancelHandler cancels an active job connection on behalf of either party.
// The resulting status records which side walked away.
// @Summary Cancel job connection
// @Description Only the worker or employer on the connection can access this endpoint
// @Tags JobConnection
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Job connection ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Connection no longer active"
// @Failure 403 {object} utilities.ErrorResponse "Not part of this connection"
// @Failure 404 {object} utilities.ErrorResponse "Connection not found"
// @Router /connection/{id}/cancel [post]
func (j *JobConnectionController) CancelHandler(c *gin.Context) {
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

	if err := j.Service.Cancel(c.Request.Context(), user.ID, user.Role, uint(id)); err != nil {
		utilities.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job connection cancelled"})
}
