package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/internal/api/presenters"
	"github.com/wastewise/wastewise-backend/pkg/prediction"
)

type (
	PredictionHandler interface {
		GetPredictions(c *fiber.Ctx) error
		SendExpiryDigest(c *fiber.Ctx) error
	}

	predictionHandler struct {
		predictionService prediction.PredictionService
	}
)

func NewPredictionHandler(predictionService prediction.PredictionService) PredictionHandler {
	return &predictionHandler{
		predictionService: predictionService,
	}
}

func (h *predictionHandler) GetPredictions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	predictions, err := h.predictionService.GetPredictions(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPredictions, err)
	}

	return presenters.SuccessResponse(c, predictions, fiber.StatusOK, domain.MessageSuccessGetPredictions)
}

func (h *predictionHandler) SendExpiryDigest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.predictionService.SendExpiryDigest(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendExpiryAlert, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendExpiryAlert)
}
