package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentpilot/internal/service"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type CampaignHandler struct {
	s service.CampaignService
}

func NewCampaignHandler(service service.CampaignService) *CampaignHandler {
	return &CampaignHandler{s: service}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var cc transfer.CampaignCreation
	if err := c.BodyParser(&cc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	campaignID, err := h.s.Create(c.Context(), userID, &cc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Campaign created successfully",
		"id":      campaignID,
	})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	userID := GetUserID(c)
	campaignID := c.QueryInt("id", 0)

	if campaignID != 0 {
		campaign, err := h.s.CampaignInfo(c.Context(), int64(campaignID), userID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get campaign",
			})
		}
		return c.Status(fiber.StatusOK).JSON(campaign)
	}

	campaigns, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list campaigns",
		})
	}

	return c.Status(fiber.StatusOK).JSON(campaigns)
}

func (h *CampaignHandler) CampaignPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	campaignID := c.QueryInt("id", 0)

	posts, err := h.s.Posts(c.Context(), int64(campaignID), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list campaign posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

// GenerateCampaign kicks off the background pipeline and acks right away,
// generation progress is polled through the campaign status.
func (h *CampaignHandler) GenerateCampaign(c *fiber.Ctx) error {
	userID := GetUserID(c)
	campaignID := c.QueryInt("id", 0)

	if err := h.s.Generate(c.Context(), int64(campaignID), userID); err != nil {
		return creditAwareError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Campaign generation started",
	})
}

func (h *CampaignHandler) RemoveCampaign(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var body struct {
		CampaignID int64 `json:"campaign_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if err := h.s.Remove(c.Context(), userID, body.CampaignID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Campaign removed",
	})
}
