package handlers

import (
	"daotrack/internal/adapters/http/middleware"
	"daotrack/internal/core/services"
	"daotrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the dashboard endpoint
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary returns dossier counts per status and the caller's open
// assigned tasks
// @Summary Dashboard summary
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	userID, _ := middleware.Actor(c)
	if userID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.dashboardService.GetSummary(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return response.Success(c, "Dashboard retrieved", summary)
}
