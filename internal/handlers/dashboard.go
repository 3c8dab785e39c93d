package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukihira/project-management-api/internal/dto"
	apierrors "github.com/yukihira/project-management-api/internal/errors"
	"github.com/yukihira/project-management-api/internal/middleware"
	"github.com/yukihira/project-management-api/internal/services"
)

// DashboardHandler serves the aggregated read path.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard returns counts, the recent-task list and the overdue list.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	snapshot, err := h.dashboardService.Snapshot(actor, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			apierrors.Forbidden(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*snapshot))
}
