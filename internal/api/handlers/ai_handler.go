package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/service"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type AIHandler struct {
	s       service.AIService
	credits service.CreditService
}

func NewAIHandler(ai service.AIService, credits service.CreditService) *AIHandler {
	return &AIHandler{s: ai, credits: credits}
}

// Generate produces a single AI post draft: caption text, optionally with
// an image. Credits are debited up front, before any provider call.
func (h *AIHandler) Generate(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.AIGeneration
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.BusinessName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "business name is required",
		})
	}

	cost := service.CostAIText
	if req.GenerateImage {
		cost += service.CostAIImage
	}

	if _, err := h.credits.Debit(c.Context(), userID, cost, models.CreditTypeUsage, "AI content generation"); err != nil {
		return creditAwareError(c, err)
	}

	content, err := h.s.GenerateText(c.Context(), &req.GenerationRequest)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	response := fiber.Map{
		"content": content,
	}

	if req.GenerateImage {
		theme := req.ProductName
		if theme == "" {
			theme = req.BusinessName
		}

		imagePrompt, err := h.s.GenerateImagePrompt(c.Context(), theme, &req.GenerationRequest)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		imageURL, err := h.s.GenerateImage(c.Context(), &transfer.ImageRequest{
			Prompt:          imagePrompt,
			VisualStyle:     req.VisualStyle,
			ColorScheme:     req.ColorScheme,
			AspectRatio:     "1:1",
			BusinessContext: req.BusinessName,
		})
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		response["image_prompt"] = imagePrompt
		response["image_url"] = imageURL
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// Suggestions returns a handful of caption ideas for a free-form prompt.
func (h *AIHandler) Suggestions(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "prompt is required",
		})
	}

	if _, err := h.credits.Debit(c.Context(), userID, service.CostAIText, models.CreditTypeUsage, "AI content suggestions"); err != nil {
		return creditAwareError(c, err)
	}

	suggestions, err := h.s.GenerateSuggestions(c.Context(), req.Prompt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"prompt":      req.Prompt,
		"suggestions": suggestions,
	})
}
