package food

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
	"gorm.io/gorm"
)

var foodTestNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeFoodRepository struct {
	items    map[string]*entities.FoodItem
	patterns map[string]*entities.ConsumptionPattern
}

func newFakeFoodRepository() *fakeFoodRepository {
	return &fakeFoodRepository{
		items:    make(map[string]*entities.FoodItem),
		patterns: make(map[string]*entities.ConsumptionPattern),
	}
}

func (f *fakeFoodRepository) AddFoodItem(_ context.Context, item *entities.FoodItem) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakeFoodRepository) UpdateFoodItem(_ context.Context, item *entities.FoodItem) error {
	clone := *item
	f.items[item.ID.String()] = &clone
	return nil
}

func (f *fakeFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeFoodRepository) GetFoodItems(_ context.Context, userID string, status string, page, limit int) ([]*entities.FoodItem, int64, error) {
	var owned []*entities.FoodItem
	for _, item := range f.items {
		if item.UserID.String() != userID {
			continue
		}
		if status != "all" && status != "" && item.Status != status {
			continue
		}
		owned = append(owned, item)
	}
	return owned, int64(len(owned)), nil
}

func (f *fakeFoodRepository) GetOpenFoodItems(_ context.Context, userID string) ([]*entities.FoodItem, error) {
	var open []*entities.FoodItem
	for _, item := range f.items {
		if item.UserID.String() != userID {
			continue
		}
		switch item.Status {
		case domain.FoodStatusSafe, domain.FoodStatusWarning, domain.FoodStatusExpired:
			open = append(open, item)
		}
	}
	return open, nil
}

func (f *fakeFoodRepository) GetFoodItemsByExpiryRange(_ context.Context, userID string, startDate, endDate time.Time) ([]*entities.FoodItem, error) {
	var matched []*entities.FoodItem
	for _, item := range f.items {
		if item.UserID.String() != userID || item.ExpiryDate == nil {
			continue
		}
		if !item.ExpiryDate.Before(startDate) && !item.ExpiryDate.After(endDate) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (f *fakeFoodRepository) SetFoodItemStatus(_ context.Context, id string, status string) error {
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Status = status
	return nil
}

func (f *fakeFoodRepository) GetDashboardStats(_ context.Context, userID string) (map[string]int64, error) {
	stats := map[string]int64{}
	for _, item := range f.items {
		if item.UserID.String() != userID {
			continue
		}
		stats["total_items"]++
		switch item.Status {
		case domain.FoodStatusSafe:
			stats["safe_items"]++
		case domain.FoodStatusWarning:
			stats["warning_items"]++
		case domain.FoodStatusExpired:
			stats["expired_items"]++
		case domain.FoodStatusDamaged:
			stats["damaged_items"]++
		case domain.FoodStatusConsumed:
			stats["consumed_items"]++
		}
	}
	return stats, nil
}

func (f *fakeFoodRepository) UpsertConsumptionPattern(_ context.Context, pattern *entities.ConsumptionPattern) error {
	key := pattern.UserID.String() + "/" + pattern.Category
	f.patterns[key] = pattern
	return nil
}

func (f *fakeFoodRepository) GetConsumptionPatterns(_ context.Context, userID string) ([]*entities.ConsumptionPattern, error) {
	var owned []*entities.ConsumptionPattern
	for _, pattern := range f.patterns {
		if pattern.UserID.String() == userID {
			owned = append(owned, pattern)
		}
	}
	return owned, nil
}

// fakeGamificationHooks records which tracking hooks fired.
type fakeGamificationHooks struct {
	added, shared, scans int
	consumed             []consumedEvent
}

type consumedEvent struct {
	weightKg, co2, water, money float64
	expiryPrevented             bool
}

func (f *fakeGamificationHooks) AwardPoints(context.Context, string, domain.AwardPointsRequest) (domain.AwardPointsResponse, error) {
	return domain.AwardPointsResponse{}, nil
}
func (f *fakeGamificationHooks) GetStats(context.Context, string) (domain.UserStatsResponse, error) {
	return domain.UserStatsResponse{}, nil
}
func (f *fakeGamificationHooks) GetAchievements(context.Context, string) ([]domain.Achievement, error) {
	return nil, nil
}
func (f *fakeGamificationHooks) GetChallenges(context.Context, string) ([]domain.ChallengeResponse, error) {
	return nil, nil
}
func (f *fakeGamificationHooks) GetLeaderboard(context.Context, string, int) ([]domain.LeaderboardEntry, error) {
	return nil, nil
}
func (f *fakeGamificationHooks) GetPointHistory(context.Context, string, int, int) ([]domain.PointTransactionResponse, int64, error) {
	return nil, 0, nil
}
func (f *fakeGamificationHooks) DailyCheckIn(context.Context, string) (domain.AwardPointsResponse, error) {
	return domain.AwardPointsResponse{}, nil
}
func (f *fakeGamificationHooks) ProgressChallenge(context.Context, string, string, int) (domain.ChallengeResponse, error) {
	return domain.ChallengeResponse{}, nil
}

func (f *fakeGamificationHooks) TrackItemAdded(context.Context, string) error {
	f.added++
	return nil
}

func (f *fakeGamificationHooks) TrackItemConsumed(_ context.Context, _ string, weightKg, co2, water, money float64, expiryPrevented bool) error {
	f.consumed = append(f.consumed, consumedEvent{weightKg, co2, water, money, expiryPrevented})
	return nil
}

func (f *fakeGamificationHooks) TrackItemShared(context.Context, string) error {
	f.shared++
	return nil
}

func (f *fakeGamificationHooks) TrackScanCompleted(context.Context, string) error {
	f.scans++
	return nil
}

func newTestFoodService(repo FoodRepository, hooks *fakeGamificationHooks) FoodService {
	return NewFoodService(repo, hooks, nil, func() time.Time { return foodTestNow })
}

func TestAddFoodItemStatusClassification(t *testing.T) {
	repo := newFakeFoodRepository()
	hooks := &fakeGamificationHooks{}
	service := newTestFoodService(repo, hooks)
	userID := uuid.New().String()

	cases := []struct {
		name       string
		expiryDate string
		status     string
	}{
		{"far expiry is safe", foodTestNow.AddDate(0, 0, 10).Format("2006-01-02"), domain.FoodStatusSafe},
		{"near expiry warns", foodTestNow.AddDate(0, 0, 2).Format("2006-01-02"), domain.FoodStatusWarning},
		{"past expiry is expired", foodTestNow.AddDate(0, 0, -2).Format("2006-01-02"), domain.FoodStatusExpired},
		{"no expiry is safe", "", domain.FoodStatusSafe},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
				Name:        "Milk",
				Category:    "dairy",
				Quantity:    1,
				UnitMeasure: "l",
				ExpiryDate:  tc.expiryDate,
			}, userID)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.Status)
		})
	}

	assert.Equal(t, len(cases), hooks.added)
}

func TestAddFoodItemValidation(t *testing.T) {
	service := newTestFoodService(newFakeFoodRepository(), &fakeGamificationHooks{})
	userID := uuid.New().String()

	_, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name: "Milk", Quantity: 0, UnitMeasure: "l",
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name: "Milk", Quantity: 1, UnitMeasure: "l", ExpiryDate: "soon",
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)
}

func TestConsumeFoodItemBeforeExpiry(t *testing.T) {
	repo := newFakeFoodRepository()
	hooks := &fakeGamificationHooks{}
	service := newTestFoodService(repo, hooks)

	userID := uuid.New()
	expiry := foodTestNow.AddDate(0, 0, 2)
	price := 3.0
	item := &entities.FoodItem{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Tomatoes",
		Quantity:    500,
		UnitMeasure: "g",
		ExpiryDate:  &expiry,
		Price:       &price,
		Status:      domain.FoodStatusWarning,
	}
	repo.items[item.ID.String()] = item

	require.NoError(t, service.ConsumeFoodItem(context.Background(), item.ID.String(), userID.String()))

	assert.Equal(t, domain.FoodStatusConsumed, repo.items[item.ID.String()].Status)
	require.Len(t, hooks.consumed, 1)
	event := hooks.consumed[0]
	assert.True(t, event.expiryPrevented)
	assert.InDelta(t, 0.5, event.weightKg, 1e-9)
	assert.InDelta(t, 1.25, event.co2, 1e-9)
	assert.InDelta(t, 500.0, event.water, 1e-9)
	assert.InDelta(t, 3.0, event.money, 1e-9)

	// Consuming a closed item is rejected.
	err := service.ConsumeFoodItem(context.Background(), item.ID.String(), userID.String())
	assert.ErrorIs(t, err, domain.ErrItemAlreadyClosed)
}

func TestConsumeFoodItemAfterExpiry(t *testing.T) {
	repo := newFakeFoodRepository()
	hooks := &fakeGamificationHooks{}
	service := newTestFoodService(repo, hooks)

	userID := uuid.New()
	expiry := foodTestNow.AddDate(0, 0, -1)
	item := &entities.FoodItem{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        "Yoghurt",
		Quantity:    1,
		UnitMeasure: "kg",
		ExpiryDate:  &expiry,
		Status:      domain.FoodStatusExpired,
	}
	repo.items[item.ID.String()] = item

	require.NoError(t, service.ConsumeFoodItem(context.Background(), item.ID.String(), userID.String()))

	require.Len(t, hooks.consumed, 1)
	assert.False(t, hooks.consumed[0].expiryPrevented)
}

func TestShareFoodItem(t *testing.T) {
	repo := newFakeFoodRepository()
	hooks := &fakeGamificationHooks{}
	service := newTestFoodService(repo, hooks)

	userID := uuid.New()
	item := &entities.FoodItem{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Bread",
		Status: domain.FoodStatusSafe,
	}
	repo.items[item.ID.String()] = item

	require.NoError(t, service.ShareFoodItem(context.Background(), item.ID.String(), userID.String()))
	assert.Equal(t, domain.FoodStatusShared, repo.items[item.ID.String()].Status)
	assert.Equal(t, 1, hooks.shared)

	err := service.ShareFoodItem(context.Background(), item.ID.String(), userID.String())
	assert.ErrorIs(t, err, domain.ErrItemAlreadyClosed)
}

func TestFoodItemOwnership(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo, &fakeGamificationHooks{})

	owner := uuid.New()
	stranger := uuid.New().String()
	item := &entities.FoodItem{
		ID:     uuid.New(),
		UserID: owner,
		Status: domain.FoodStatusSafe,
	}
	repo.items[item.ID.String()] = item

	_, err := service.GetFoodItemByID(context.Background(), item.ID.String(), stranger)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = service.GetFoodItemByID(context.Background(), uuid.New().String(), stranger)
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo, &fakeGamificationHooks{})
	userID := uuid.New()

	for _, status := range []string{
		domain.FoodStatusSafe,
		domain.FoodStatusSafe,
		domain.FoodStatusWarning,
		domain.FoodStatusExpired,
		domain.FoodStatusConsumed,
		domain.FoodStatusDamaged,
	} {
		item := &entities.FoodItem{ID: uuid.New(), UserID: userID, Status: status}
		repo.items[item.ID.String()] = item
	}

	stats, err := service.GetDashboardStats(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalItems)
	assert.Equal(t, 4, stats.SavedItems)
	assert.Equal(t, 2, stats.WastedItems)
	assert.InDelta(t, 10.0, stats.EstimatedSavings, 1e-9)
}

func TestUpsertConsumptionPatternValidation(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo, &fakeGamificationHooks{})
	userID := uuid.New().String()

	err := service.UpsertConsumptionPattern(context.Background(), domain.UpsertPatternRequest{
		Category: "dairy", FrequencyDays: 0, AverageConsumptionAmount: 1,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)

	err = service.UpsertConsumptionPattern(context.Background(), domain.UpsertPatternRequest{
		Category: "dairy", FrequencyDays: 3, AverageConsumptionAmount: 0,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	err = service.UpsertConsumptionPattern(context.Background(), domain.UpsertPatternRequest{
		Category: "dairy", FrequencyDays: 3, AverageConsumptionAmount: 2,
	}, userID)
	require.NoError(t, err)

	patterns, err := service.GetConsumptionPatterns(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "dairy", patterns[0].Category)
}
