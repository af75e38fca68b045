package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/internal/api/presenters"
	"github.com/wastewise/wastewise-backend/pkg/gamification"
)

type (
	GamificationHandler interface {
		AwardPoints(c *fiber.Ctx) error
		GetStats(c *fiber.Ctx) error
		GetAchievements(c *fiber.Ctx) error
		GetChallenges(c *fiber.Ctx) error
		ProgressChallenge(c *fiber.Ctx) error
		GetLeaderboard(c *fiber.Ctx) error
		GetPointHistory(c *fiber.Ctx) error
		DailyCheckIn(c *fiber.Ctx) error
	}

	gamificationHandler struct {
		gamificationService gamification.GamificationService
		validator           *validator.Validate
	}
)

func NewGamificationHandler(gamificationService gamification.GamificationService, validator *validator.Validate) GamificationHandler {
	return &gamificationHandler{
		gamificationService: gamificationService,
		validator:           validator,
	}
}

func (h *gamificationHandler) AwardPoints(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.AwardPointsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAwardPoints, err)
	}

	res, err := h.gamificationService.AwardPoints(c.Context(), userID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAwardPoints, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAwardPoints)
}

func (h *gamificationHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.gamificationService.GetStats(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *gamificationHandler) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	achievements, err := h.gamificationService.GetAchievements(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAchievements, err)
	}

	return presenters.SuccessResponse(c, achievements, fiber.StatusOK, domain.MessageSuccessGetAchievements)
}

func (h *gamificationHandler) GetChallenges(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	challenges, err := h.gamificationService.GetChallenges(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetChallenges, err)
	}

	return presenters.SuccessResponse(c, challenges, fiber.StatusOK, domain.MessageSuccessGetChallenges)
}

func (h *gamificationHandler) ProgressChallenge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	challengeID := c.Params("id")

	increment, err := strconv.Atoi(c.Query("increment", "1"))
	if err != nil || increment < 1 {
		increment = 1
	}

	challenge, err := h.gamificationService.ProgressChallenge(c.Context(), userID, challengeID, increment)
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetChallenges, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetChallenges, err)
	}

	return presenters.SuccessResponse(c, challenge, fiber.StatusOK, domain.MessageSuccessGetChallenges)
}

func (h *gamificationHandler) GetLeaderboard(c *fiber.Ctx) error {
	scope := c.Query("scope", domain.LeaderboardScopeGlobal)

	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	leaderboard, err := h.gamificationService.GetLeaderboard(c.Context(), scope, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, leaderboard, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}

func (h *gamificationHandler) GetPointHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	history, count, err := h.gamificationService.GetPointHistory(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPointHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": history,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetPointHistory)
}

func (h *gamificationHandler) DailyCheckIn(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.gamificationService.DailyCheckIn(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedDailyCheckIn, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDailyCheckIn, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDailyCheckIn)
}
