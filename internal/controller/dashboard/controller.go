// Package dashboard provides the per-user summary endpoint.
package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/model"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/service"
	"github.com/AHMED-ATEF-ABDELAZEEM/HireMe/internal/utilities"
)

// DashboardController handles the summary endpoint for both roles
type DashboardController struct {
	Service *service.DashboardService
}

// NewDashboardController creates a new instance of DashboardController with the provided service.
func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{
		Service: svc,
	}
}

// SummaryHandler returns the home screen summary for the requesting user.
// Workers get application counts and their active connection, employers get
// job counts and pending work.
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} service.WorkerSummary
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /dashboard [get]
func (d *DashboardController) SummaryHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	switch user.Role {
	case model.RoleWorker:
		summary, err := d.Service.WorkerSummary(c.Request.Context(), user.ID)
		if err != nil {
			utilities.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)

	case model.RoleEmployer:
		summary, err := d.Service.EmployerSummary(c.Request.Context(), user.ID)
		if err != nil {
			utilities.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)

	default:
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "No dashboard for this role",
		})
	}
}
