package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/dashboard
// @Summary Dashboard
// @Description Current user, events, jobs, own postings and applied job IDs in one response
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dashboard, err := s.dashboardService.Load(ctx, currentUserID(c))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(dashboard)
}
