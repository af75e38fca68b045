package gamification

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
)

// fakeGamificationRepository keeps everything in memory so service logic
// can be exercised without a database.
type fakeGamificationRepository struct {
	stats          map[string]*entities.UserStats
	transactions   []*entities.PointTransaction
	challenges     []*entities.Challenge
	userChallenges []*entities.UserChallenge
}

func newFakeGamificationRepository() *fakeGamificationRepository {
	return &fakeGamificationRepository{stats: make(map[string]*entities.UserStats)}
}

func (f *fakeGamificationRepository) GetUserStats(_ context.Context, userID string) (*entities.UserStats, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	if existing, ok := f.stats[userID]; ok {
		clone := *existing
		return &clone, nil
	}
	stats := &entities.UserStats{ID: uuid.New(), UserID: userUUID}
	f.stats[userID] = stats
	clone := *stats
	return &clone, nil
}

func (f *fakeGamificationRepository) UpdateUserStats(_ context.Context, stats *entities.UserStats) error {
	clone := *stats
	f.stats[stats.UserID.String()] = &clone
	return nil
}

func (f *fakeGamificationRepository) CreatePointTransaction(_ context.Context, tx *entities.PointTransaction) error {
	f.transactions = append(f.transactions, tx)
	return nil
}

func (f *fakeGamificationRepository) GetPointTransactions(_ context.Context, userID string, page, limit int) ([]*entities.PointTransaction, int64, error) {
	var owned []*entities.PointTransaction
	for _, tx := range f.transactions {
		if tx.UserID.String() == userID {
			owned = append(owned, tx)
		}
	}
	count := int64(len(owned))
	start := (page - 1) * limit
	if start > len(owned) {
		start = len(owned)
	}
	end := start + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[start:end], count, nil
}

func (f *fakeGamificationRepository) GetActiveChallenges(_ context.Context, now time.Time) ([]*entities.Challenge, error) {
	var active []*entities.Challenge
	for _, c := range f.challenges {
		if c.IsActive && !c.StartDate.After(now) && !c.EndDate.Before(now) {
			active = append(active, c)
		}
	}
	return active, nil
}

func (f *fakeGamificationRepository) GetUserChallenges(_ context.Context, userID string) ([]*entities.UserChallenge, error) {
	var owned []*entities.UserChallenge
	for _, uc := range f.userChallenges {
		if uc.UserID.String() == userID {
			owned = append(owned, uc)
		}
	}
	return owned, nil
}

func (f *fakeGamificationRepository) UpsertUserChallenge(_ context.Context, userChallenge *entities.UserChallenge) error {
	for i, uc := range f.userChallenges {
		if uc.UserID == userChallenge.UserID && uc.ChallengeID == userChallenge.ChallengeID {
			f.userChallenges[i] = userChallenge
			return nil
		}
	}
	f.userChallenges = append(f.userChallenges, userChallenge)
	return nil
}

func (f *fakeGamificationRepository) GetLeaderboard(_ context.Context, limit int) ([]*entities.UserStats, error) {
	entries := make([]*entities.UserStats, 0, len(f.stats))
	for _, stats := range f.stats {
		entries = append(entries, stats)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func newTestService(repo GamificationRepository, now time.Time) GamificationService {
	return NewGamificationService(repo, NewDefaultEngine(), func() time.Time { return now })
}

func TestAwardPointsUpdatesBalanceAndLedger(t *testing.T) {
	repo := newFakeGamificationRepository()
	service := newTestService(repo, testCheckInDay)
	userID := uuid.New().String()

	first, err := service.AwardPoints(context.Background(), userID, domain.AwardPointsRequest{
		Action:   domain.ActionItemShared,
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, first.PointsEarned)
	assert.Equal(t, 50, first.TotalPoints)

	second, err := service.AwardPoints(context.Background(), userID, domain.AwardPointsRequest{
		Action:   domain.ActionItemConsumed,
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, second.PointsEarned)
	assert.Equal(t, 60, second.TotalPoints)

	history, count, err := service.GetPointHistory(context.Background(), userID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, history, 2)
	assert.Equal(t, 60, history[1].Balance)
}

var testCheckInDay = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestDailyCheckInStreaks(t *testing.T) {
	repo := newFakeGamificationRepository()
	userID := uuid.New().String()

	day1 := newTestService(repo, testCheckInDay)
	resp, err := day1.DailyCheckIn(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDailyCheckIn, resp.Action)
	assert.Equal(t, 5, resp.PointsEarned)

	// Second check-in on the same day is rejected, even hours later.
	sameDayLater := newTestService(repo, testCheckInDay.Add(10*time.Hour))
	_, err = sameDayLater.DailyCheckIn(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)

	// Next calendar day extends the streak.
	day2 := newTestService(repo, testCheckInDay.AddDate(0, 0, 1))
	_, err = day2.DailyCheckIn(context.Background(), userID)
	require.NoError(t, err)

	stats, err := repo.GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)

	// A missed day resets the current streak but keeps the longest.
	day5 := newTestService(repo, testCheckInDay.AddDate(0, 0, 4))
	_, err = day5.DailyCheckIn(context.Background(), userID)
	require.NoError(t, err)

	stats, err = repo.GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 2, stats.LongestStreak)
}

func TestTrackItemConsumedPreventionRate(t *testing.T) {
	repo := newFakeGamificationRepository()
	service := newTestService(repo, testCheckInDay)
	userID := uuid.New().String()

	require.NoError(t, service.TrackItemConsumed(context.Background(), userID, 0.5, 1.25, 500, 2, true))
	require.NoError(t, service.TrackItemConsumed(context.Background(), userID, 1.0, 2.5, 1000, 3, false))

	stats, err := repo.GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ItemsConsumed)
	assert.Equal(t, 1, stats.ItemsConsumedInTime)
	assert.InDelta(t, 0.5, stats.ExpiryPreventionRate, 1e-9)

	// Only the in-time consumption contributes to savings.
	assert.InDelta(t, 0.5, stats.TotalKgSaved, 1e-9)
	assert.InDelta(t, 1.25, stats.CO2Saved, 1e-9)
	assert.InDelta(t, 500.0, stats.WaterSaved, 1e-9)
	assert.InDelta(t, 2.0, stats.MoneySaved, 1e-9)

	// item_consumed 10 twice plus expiry_prevented 20 once.
	assert.Equal(t, 40, stats.TotalPoints)
}

func TestTrackScanCompletedFirstScanBonus(t *testing.T) {
	repo := newFakeGamificationRepository()
	service := newTestService(repo, testCheckInDay)
	userID := uuid.New().String()

	require.NoError(t, service.TrackScanCompleted(context.Background(), userID))
	require.NoError(t, service.TrackScanCompleted(context.Background(), userID))

	stats, err := repo.GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ScansCompleted)
	// first_scan 20, then item_added 5.
	assert.Equal(t, 25, stats.TotalPoints)
}

func TestGetLeaderboardRanksByPoints(t *testing.T) {
	repo := newFakeGamificationRepository()
	service := newTestService(repo, testCheckInDay)

	low := uuid.New().String()
	high := uuid.New().String()

	_, err := service.AwardPoints(context.Background(), low, domain.AwardPointsRequest{Action: domain.ActionItemAdded, Quantity: 1})
	require.NoError(t, err)
	_, err = service.AwardPoints(context.Background(), high, domain.AwardPointsRequest{Action: domain.ActionChallengeCompleted, Quantity: 1})
	require.NoError(t, err)

	entries, err := service.GetLeaderboard(context.Background(), domain.LeaderboardScopeGlobal, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, high, entries[0].UserID)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, low, entries[1].UserID)
	assert.Equal(t, 2, entries[1].Position)

	_, err = service.GetLeaderboard(context.Background(), "galactic", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidLeaderboard)
}

func TestProgressChallengeCompletion(t *testing.T) {
	repo := newFakeGamificationRepository()
	service := newTestService(repo, testCheckInDay)
	userID := uuid.New().String()

	challenge := &entities.Challenge{
		ID:           uuid.New(),
		Name:         "Zero Waste Week",
		Goal:         3,
		RewardPoints: 200,
		IsActive:     true,
		StartDate:    testCheckInDay.AddDate(0, 0, -1),
		EndDate:      testCheckInDay.AddDate(0, 0, 6),
	}
	repo.challenges = append(repo.challenges, challenge)

	resp, err := service.ProgressChallenge(context.Background(), userID, challenge.ID.String(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Progress)
	assert.False(t, resp.IsCompleted)

	// Progress is capped at the goal and completion is awarded once.
	resp, err = service.ProgressChallenge(context.Background(), userID, challenge.ID.String(), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Progress)
	assert.True(t, resp.IsCompleted)

	// Fixed completion action (100) plus the challenge reward (200).
	stats, err := repo.GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 300, stats.TotalPoints)

	// Further progress on a completed challenge earns nothing more.
	resp, err = service.ProgressChallenge(context.Background(), userID, challenge.ID.String(), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsCompleted)

	stats, err = repo.GetUserStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 300, stats.TotalPoints)

	_, err = service.ProgressChallenge(context.Background(), userID, uuid.New().String(), 1)
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestGetStatsResponseShape(t *testing.T) {
	repo := newFakeGamificationRepository()
	service := newTestService(repo, testCheckInDay)
	userID := uuid.New().String()

	_, err := service.AwardPoints(context.Background(), userID, domain.AwardPointsRequest{Action: domain.ActionChallengeCompleted, Quantity: 2})
	require.NoError(t, err)

	resp, err := service.GetStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.TotalPoints)
	assert.Equal(t, NewDefaultEngine().CalculateLevel(200), resp.Level)
	assert.Greater(t, resp.PointsForNextLevel, resp.TotalPoints)
}
