package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentpilot/internal/service"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type PaymentHandler struct {
	s service.SubscriptionService
}

func NewPaymentHandler(service service.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{s: service}
}

func (h *PaymentHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.s.Plans(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list plans",
		})
	}

	return c.Status(fiber.StatusOK).JSON(plans)
}

func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var payload transfer.SubscriptionEvent
	if err := c.BodyParser(&payload); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse webhook payload",
		})
	}

	if err := h.s.HandleSubscription(c.Context(), &payload); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to process webhook",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PaymentHandler) CancelSubscription(c *fiber.Ctx) error {
	userID := GetUserID(c)

	if err := h.s.Cancel(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "subscription cancelled",
	})
}
