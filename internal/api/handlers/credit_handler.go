package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentpilot/internal/service"
)

type CreditHandler struct {
	s service.CreditService
}

func NewCreditHandler(service service.CreditService) *CreditHandler {
	return &CreditHandler{s: service}
}

func (h *CreditHandler) History(c *fiber.Ctx) error {
	userID := GetUserID(c)

	transactions, err := h.s.History(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to get credit history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(transactions)
}
