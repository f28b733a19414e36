package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentpilot/internal/service"
)

type AnalyticsHandler struct {
	s service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{s: service}
}

func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	userID := GetUserID(c)

	summary, err := h.s.Dashboard(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get analytics",
		})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
