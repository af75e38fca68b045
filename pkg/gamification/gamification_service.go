package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
)

type (
	GamificationService interface {
		AwardPoints(ctx context.Context, userID string, req domain.AwardPointsRequest) (domain.AwardPointsResponse, error)
		GetStats(ctx context.Context, userID string) (domain.UserStatsResponse, error)
		GetAchievements(ctx context.Context, userID string) ([]domain.Achievement, error)
		GetChallenges(ctx context.Context, userID string) ([]domain.ChallengeResponse, error)
		GetLeaderboard(ctx context.Context, scope string, limit int) ([]domain.LeaderboardEntry, error)
		GetPointHistory(ctx context.Context, userID string, page, limit int) ([]domain.PointTransactionResponse, int64, error)
		DailyCheckIn(ctx context.Context, userID string) (domain.AwardPointsResponse, error)
		ProgressChallenge(ctx context.Context, userID string, challengeID string, increment int) (domain.ChallengeResponse, error)

		// Hooks called by the inventory layer when tracked events happen.
		TrackItemAdded(ctx context.Context, userID string) error
		TrackItemConsumed(ctx context.Context, userID string, weightKg, co2Saved, waterSaved, moneySaved float64, expiryPrevented bool) error
		TrackItemShared(ctx context.Context, userID string) error
		TrackScanCompleted(ctx context.Context, userID string) error
	}

	gamificationService struct {
		gamificationRepository GamificationRepository
		engine                 Engine
		now                    func() time.Time
	}
)

func NewGamificationService(gamificationRepository GamificationRepository, engine Engine, now func() time.Time) GamificationService {
	if now == nil {
		now = time.Now
	}
	return &gamificationService{
		gamificationRepository: gamificationRepository,
		engine:                 engine,
		now:                    now,
	}
}

// applyAward credits an action to the user's stats and writes a ledger
// entry. The caller passes stats it has already loaded and mutated so a
// single save covers both the award and any stat changes.
func (s *gamificationService) applyAward(ctx context.Context, stats *entities.UserStats, action string, quantity int) (int, error) {
	if quantity < 1 {
		quantity = 1
	}
	earned := s.engine.AwardPoints(action, quantity)
	stats.TotalPoints += earned
	stats.Level = s.engine.CalculateLevel(stats.TotalPoints)

	transaction := &entities.PointTransaction{
		ID:          uuid.New(),
		UserID:      stats.UserID,
		Action:      action,
		Quantity:    quantity,
		Points:      earned,
		Description: fmt.Sprintf("Earned %d points for %s", earned, action),
		Balance:     stats.TotalPoints,
	}
	if err := s.gamificationRepository.CreatePointTransaction(ctx, transaction); err != nil {
		return 0, err
	}

	if err := s.gamificationRepository.UpdateUserStats(ctx, stats); err != nil {
		return 0, err
	}
	return earned, nil
}

func (s *gamificationService) AwardPoints(ctx context.Context, userID string, req domain.AwardPointsRequest) (domain.AwardPointsResponse, error) {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return domain.AwardPointsResponse{}, err
	}

	earned, err := s.applyAward(ctx, stats, req.Action, req.Quantity)
	if err != nil {
		return domain.AwardPointsResponse{}, err
	}

	return domain.AwardPointsResponse{
		Action:       req.Action,
		PointsEarned: earned,
		TotalPoints:  stats.TotalPoints,
		Level:        stats.Level,
	}, nil
}

func (s *gamificationService) GetStats(ctx context.Context, userID string) (domain.UserStatsResponse, error) {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return domain.UserStatsResponse{}, err
	}

	level := s.engine.CalculateLevel(stats.TotalPoints)
	return domain.UserStatsResponse{
		TotalPoints:        stats.TotalPoints,
		Level:              level,
		PointsForNextLevel: s.engine.PointsForNextLevel(level),
		WasteReduction: domain.WasteReductionStats{
			TotalKgSaved: stats.TotalKgSaved,
			CO2Saved:     stats.CO2Saved,
			WaterSaved:   stats.WaterSaved,
			MoneySaved:   stats.MoneySaved,
		},
		Streaks: domain.StreakStats{
			CurrentStreak: stats.CurrentStreak,
			LongestStreak: stats.LongestStreak,
			LastCheckIn:   stats.LastCheckIn,
		},
		Inventory: domain.InventoryStats{
			TotalItemsTracked:    stats.TotalItemsTracked,
			ExpiryPreventionRate: stats.ExpiryPreventionRate,
		},
		Community: domain.CommunityStats{
			ItemsShared:   stats.ItemsShared,
			ItemsReceived: stats.ItemsReceived,
			PeopleHelped:  stats.PeopleHelped,
		},
	}, nil
}

func (s *gamificationService) GetAchievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.CheckAchievements(stats), nil
}

func (s *gamificationService) GetChallenges(ctx context.Context, userID string) ([]domain.ChallengeResponse, error) {
	challenges, err := s.gamificationRepository.GetActiveChallenges(ctx, s.now())
	if err != nil {
		return nil, err
	}

	userChallenges, err := s.gamificationRepository.GetUserChallenges(ctx, userID)
	if err != nil {
		return nil, err
	}

	progressByID := make(map[uuid.UUID]*entities.UserChallenge, len(userChallenges))
	for _, uc := range userChallenges {
		progressByID[uc.ChallengeID] = uc
	}

	result := make([]domain.ChallengeResponse, 0, len(challenges))
	for _, challenge := range challenges {
		response := domain.ChallengeResponse{
			ID:          challenge.ID.String(),
			Name:        challenge.Name,
			Description: challenge.Description,
			Icon:        challenge.Icon,
			StartDate:   challenge.StartDate,
			EndDate:     challenge.EndDate,
			Goal:        challenge.Goal,
			Reward: domain.ChallengeReward{
				Points: challenge.RewardPoints,
				Badge:  challenge.RewardBadge,
			},
		}
		if progress, ok := progressByID[challenge.ID]; ok {
			response.Progress = progress.Progress
			response.IsCompleted = progress.IsCompleted
		}
		result = append(result, response)
	}

	return result, nil
}

func (s *gamificationService) GetLeaderboard(ctx context.Context, scope string, limit int) ([]domain.LeaderboardEntry, error) {
	switch scope {
	case domain.LeaderboardScopeGlobal, domain.LeaderboardScopeFriends, domain.LeaderboardScopeLocal:
	default:
		return nil, domain.ErrInvalidLeaderboard
	}

	if limit < 1 {
		limit = 10
	}

	entries, err := s.gamificationRepository.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.LeaderboardEntry, 0, len(entries))
	for i, stats := range entries {
		entry := domain.LeaderboardEntry{
			UserID:           stats.UserID.String(),
			Points:           stats.TotalPoints,
			Level:            s.engine.CalculateLevel(stats.TotalPoints),
			WasteReductionKg: stats.TotalKgSaved,
			Position:         i + 1,
		}
		if stats.User != nil {
			entry.Username = stats.User.Name
			entry.Avatar = stats.User.AvatarURL
		}
		result = append(result, entry)
	}

	return result, nil
}

func (s *gamificationService) GetPointHistory(ctx context.Context, userID string, page, limit int) ([]domain.PointTransactionResponse, int64, error) {
	transactions, count, err := s.gamificationRepository.GetPointTransactions(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.PointTransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, domain.PointTransactionResponse{
			ID:          tx.ID.String(),
			Action:      tx.Action,
			Quantity:    tx.Quantity,
			Points:      tx.Points,
			Description: tx.Description,
			Balance:     tx.Balance,
			CreatedAt:   tx.CreatedAt,
		})
	}

	return result, count, nil
}

func (s *gamificationService) DailyCheckIn(ctx context.Context, userID string) (domain.AwardPointsResponse, error) {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return domain.AwardPointsResponse{}, err
	}

	now := s.now()
	if stats.LastCheckIn != nil {
		last := *stats.LastCheckIn
		if sameDay(last, now) {
			return domain.AwardPointsResponse{}, domain.ErrAlreadyCheckedIn
		}
		if sameDay(last.AddDate(0, 0, 1), now) {
			stats.CurrentStreak++
		} else {
			stats.CurrentStreak = 1
		}
	} else {
		stats.CurrentStreak = 1
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastCheckIn = &now

	earned, err := s.applyAward(ctx, stats, domain.ActionDailyCheckIn, 1)
	if err != nil {
		return domain.AwardPointsResponse{}, err
	}

	return domain.AwardPointsResponse{
		Action:       domain.ActionDailyCheckIn,
		PointsEarned: earned,
		TotalPoints:  stats.TotalPoints,
		Level:        stats.Level,
	}, nil
}

func (s *gamificationService) ProgressChallenge(ctx context.Context, userID string, challengeID string, increment int) (domain.ChallengeResponse, error) {
	challenges, err := s.gamificationRepository.GetActiveChallenges(ctx, s.now())
	if err != nil {
		return domain.ChallengeResponse{}, err
	}

	var challenge *entities.Challenge
	for _, c := range challenges {
		if c.ID.String() == challengeID {
			challenge = c
			break
		}
	}
	if challenge == nil {
		return domain.ChallengeResponse{}, domain.ErrChallengeNotFound
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ChallengeResponse{}, domain.ErrParseUUID
	}

	userChallenges, err := s.gamificationRepository.GetUserChallenges(ctx, userID)
	if err != nil {
		return domain.ChallengeResponse{}, err
	}

	userChallenge := &entities.UserChallenge{
		ID:          uuid.New(),
		UserID:      userUUID,
		ChallengeID: challenge.ID,
	}
	for _, uc := range userChallenges {
		if uc.ChallengeID == challenge.ID {
			userChallenge = uc
			break
		}
	}

	if increment < 1 {
		increment = 1
	}

	alreadyCompleted := userChallenge.IsCompleted
	userChallenge.Progress += increment
	if userChallenge.Progress >= challenge.Goal {
		userChallenge.Progress = challenge.Goal
		userChallenge.IsCompleted = true
		if userChallenge.CompletedAt == nil {
			completedAt := s.now()
			userChallenge.CompletedAt = &completedAt
		}
	}

	if err := s.gamificationRepository.UpsertUserChallenge(ctx, userChallenge); err != nil {
		return domain.ChallengeResponse{}, err
	}

	// Completion awards the fixed challenge action plus the challenge's
	// own reward points, once.
	if userChallenge.IsCompleted && !alreadyCompleted {
		stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
		if err != nil {
			return domain.ChallengeResponse{}, err
		}
		if _, err := s.applyAward(ctx, stats, domain.ActionChallengeCompleted, 1); err != nil {
			return domain.ChallengeResponse{}, err
		}
		if challenge.RewardPoints > 0 {
			stats.TotalPoints += challenge.RewardPoints
			stats.Level = s.engine.CalculateLevel(stats.TotalPoints)
			reward := &entities.PointTransaction{
				ID:          uuid.New(),
				UserID:      stats.UserID,
				Action:      domain.ActionChallengeCompleted,
				Quantity:    1,
				Points:      challenge.RewardPoints,
				Description: fmt.Sprintf("Reward for completing challenge %s", challenge.Name),
				Balance:     stats.TotalPoints,
			}
			if err := s.gamificationRepository.CreatePointTransaction(ctx, reward); err != nil {
				return domain.ChallengeResponse{}, err
			}
			if err := s.gamificationRepository.UpdateUserStats(ctx, stats); err != nil {
				return domain.ChallengeResponse{}, err
			}
		}
	}

	return domain.ChallengeResponse{
		ID:          challenge.ID.String(),
		Name:        challenge.Name,
		Description: challenge.Description,
		Icon:        challenge.Icon,
		StartDate:   challenge.StartDate,
		EndDate:     challenge.EndDate,
		IsCompleted: userChallenge.IsCompleted,
		Progress:    userChallenge.Progress,
		Goal:        challenge.Goal,
		Reward: domain.ChallengeReward{
			Points: challenge.RewardPoints,
			Badge:  challenge.RewardBadge,
		},
	}, nil
}

func (s *gamificationService) TrackItemAdded(ctx context.Context, userID string) error {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}
	stats.TotalItemsTracked++
	_, err = s.applyAward(ctx, stats, domain.ActionItemAdded, 1)
	return err
}

func (s *gamificationService) TrackItemConsumed(ctx context.Context, userID string, weightKg, co2Saved, waterSaved, moneySaved float64, expiryPrevented bool) error {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}

	stats.ItemsConsumed++
	if expiryPrevented {
		stats.ItemsConsumedInTime++
		stats.TotalKgSaved += weightKg
		stats.CO2Saved += co2Saved
		stats.WaterSaved += waterSaved
		stats.MoneySaved += moneySaved
	}
	stats.ExpiryPreventionRate = float64(stats.ItemsConsumedInTime) / float64(stats.ItemsConsumed)

	if _, err := s.applyAward(ctx, stats, domain.ActionItemConsumed, 1); err != nil {
		return err
	}
	if expiryPrevented {
		if _, err := s.applyAward(ctx, stats, domain.ActionExpiryPrevented, 1); err != nil {
			return err
		}
	}
	return nil
}

func (s *gamificationService) TrackItemShared(ctx context.Context, userID string) error {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}
	stats.ItemsShared++
	stats.PeopleHelped++
	_, err = s.applyAward(ctx, stats, domain.ActionItemShared, 1)
	return err
}

func (s *gamificationService) TrackScanCompleted(ctx context.Context, userID string) error {
	stats, err := s.gamificationRepository.GetUserStats(ctx, userID)
	if err != nil {
		return err
	}

	action := domain.ActionItemAdded
	if stats.ScansCompleted == 0 {
		action = domain.ActionFirstScan
	}
	stats.ScansCompleted++
	_, err = s.applyAward(ctx, stats, action, 1)
	return err
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
