package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentpilot/internal/service"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type AdminHandler struct {
	s service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{s: service}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.s.ListUsers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

func (h *AdminHandler) GrantCredits(c *fiber.Ctx) error {
	var body transfer.AdminCreditGrant
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	balance, err := h.s.GrantCredits(c.Context(), body.UserID, body.Credits, body.Description)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Credits granted",
		"balance": balance,
	})
}

func (h *AdminHandler) RemoveUser(c *fiber.Ctx) error {
	adminID := GetUserID(c)

	var body struct {
		UserID int64 `json:"user_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.s.RemoveUser(c.Context(), adminID, body.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "User removed",
	})
}
