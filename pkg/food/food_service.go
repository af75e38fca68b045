package food

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
	"github.com/wastewise/wastewise-backend/internal/utils/storage"
	"github.com/wastewise/wastewise-backend/pkg/gamification"
	"github.com/wastewise/wastewise-backend/pkg/prediction"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.AddFoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) error
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		GetFoodItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.FoodItemResponse, int64, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		ConsumeFoodItem(ctx context.Context, id string, userID string) error
		ShareFoodItem(ctx context.Context, id string, userID string) error
		MarkAsDamaged(ctx context.Context, req domain.MarkAsDamagedRequest, userID string) error
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) error
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)

		UpsertConsumptionPattern(ctx context.Context, req domain.UpsertPatternRequest, userID string) error
		GetConsumptionPatterns(ctx context.Context, userID string) ([]domain.ConsumptionPatternResponse, error)
	}

	foodService struct {
		foodRepository      FoodRepository
		gamificationService gamification.GamificationService
		s3                  storage.AwsS3
		now                 func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, gamificationService gamification.GamificationService, s3 storage.AwsS3, now func() time.Time) FoodService {
	if now == nil {
		now = time.Now
	}
	return &foodService{
		foodRepository:      foodRepository,
		gamificationService: gamificationService,
		s3:                  s3,
		now:                 now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.AddFoodItemResponse, error) {
	if req.Quantity <= 0 {
		return domain.AddFoodItemResponse{}, domain.ErrInvalidQuantity
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.AddFoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = &parsed
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.AddFoodItemResponse{}, domain.ErrParseUUID
	}

	foodItem := &entities.FoodItem{
		ID:             uuid.New(),
		UserID:         userUUID,
		Name:           req.Name,
		Category:       req.Category,
		Quantity:       req.Quantity,
		UnitMeasure:    req.UnitMeasure,
		ExpiryDate:     expiryDate,
		Price:          req.Price,
		CanBePreserved: req.CanBePreserved,
		CO2PerKg:       req.CO2PerKg,
		WaterPerKg:     req.WaterPerKg,
		Status:         s.determineStatus(expiryDate),
		AddedManually:  true,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.AddFoodItemResponse{}, err
	}

	// Losing the point award must not lose the item.
	if err := s.gamificationService.TrackItemAdded(ctx, userID); err != nil {
		log.Printf("failed to award points for item_added: %v", err)
	}

	return domain.AddFoodItemResponse{
		ID:          foodItem.ID.String(),
		Name:        foodItem.Name,
		Category:    foodItem.Category,
		Quantity:    foodItem.Quantity,
		UnitMeasure: foodItem.UnitMeasure,
		ExpiryDate:  foodItem.ExpiryDate,
		Status:      foodItem.Status,
	}, nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		foodItem.Name = req.Name
	}
	if req.Category != "" {
		foodItem.Category = req.Category
	}
	if req.Quantity > 0 {
		foodItem.Quantity = req.Quantity
	}
	if req.UnitMeasure != "" {
		foodItem.UnitMeasure = req.UnitMeasure
	}
	if req.Price != nil {
		foodItem.Price = req.Price
	}
	if req.CanBePreserved != nil {
		foodItem.CanBePreserved = *req.CanBePreserved
	}
	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.ErrInvalidExpiryDate
		}
		foodItem.ExpiryDate = &expiryDate
		foodItem.Status = s.determineStatus(&expiryDate)
	}

	return s.foodRepository.UpdateFoodItem(ctx, foodItem)
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if foodItem.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.foodRepository.DeleteFoodItem(ctx, id)
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string, status string, page, limit int) ([]domain.FoodItemResponse, int64, error) {
	foodItems, count, err := s.foodRepository.GetFoodItems(ctx, userID, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		response = append(response, toFoodItemResponse(item))
	}

	return response, count, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(foodItem), nil
}

// ConsumeFoodItem closes out an item as eaten and credits the user's
// waste-reduction stats when it was consumed before expiry.
func (s *foodService) ConsumeFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}
	if foodItem.Status == domain.FoodStatusConsumed || foodItem.Status == domain.FoodStatusShared {
		return domain.ErrItemAlreadyClosed
	}

	if err := s.foodRepository.SetFoodItemStatus(ctx, id, domain.FoodStatusConsumed); err != nil {
		return err
	}

	weightKg := prediction.WeightInKg(foodItem.Quantity, foodItem.UnitMeasure)
	co2PerKg := prediction.DefaultCO2PerKg
	if foodItem.CO2PerKg != nil {
		co2PerKg = *foodItem.CO2PerKg
	}
	waterPerKg := prediction.DefaultWaterPerKg
	if foodItem.WaterPerKg != nil {
		waterPerKg = *foodItem.WaterPerKg
	}
	moneySaved := 0.0
	if foodItem.Price != nil {
		moneySaved = *foodItem.Price
	}

	expiryPrevented := foodItem.ExpiryDate == nil || s.now().Before(*foodItem.ExpiryDate)

	if err := s.gamificationService.TrackItemConsumed(ctx, userID, weightKg, co2PerKg*weightKg, waterPerKg*weightKg, moneySaved, expiryPrevented); err != nil {
		log.Printf("failed to award points for item_consumed: %v", err)
	}
	return nil
}

func (s *foodService) ShareFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, id, userID)
	if err != nil {
		return err
	}
	if foodItem.Status == domain.FoodStatusConsumed || foodItem.Status == domain.FoodStatusShared {
		return domain.ErrItemAlreadyClosed
	}

	if err := s.foodRepository.SetFoodItemStatus(ctx, id, domain.FoodStatusShared); err != nil {
		return err
	}

	if err := s.gamificationService.TrackItemShared(ctx, userID); err != nil {
		log.Printf("failed to award points for item_shared: %v", err)
	}
	return nil
}

func (s *foodService) MarkAsDamaged(ctx context.Context, req domain.MarkAsDamagedRequest, userID string) error {
	if _, err := s.getOwnedItem(ctx, req.FoodItemID, userID); err != nil {
		return err
	}
	return s.foodRepository.SetFoodItemStatus(ctx, req.FoodItemID, domain.FoodStatusDamaged)
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) error {
	foodItem, err := s.getOwnedItem(ctx, req.FoodItemID, userID)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("food-item-%s", foodItem.ID.String())
	var objectKey string
	var uploadErr error

	if foodItem.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
	}

	if uploadErr != nil {
		return uploadErr
	}

	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return err
	}

	if err := s.gamificationService.TrackScanCompleted(ctx, userID); err != nil {
		log.Printf("failed to record completed scan: %v", err)
	}
	return nil
}

func (s *foodService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	stats, err := s.foodRepository.GetDashboardStats(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	savedItems := stats["safe_items"] + stats["warning_items"] + stats["consumed_items"]
	wastedItems := stats["expired_items"] + stats["damaged_items"]

	return domain.DashboardStatsResponse{
		TotalItems:       int(stats["total_items"]),
		SafeItems:        int(stats["safe_items"]),
		WarningItems:     int(stats["warning_items"]),
		ExpiredItems:     int(stats["expired_items"]),
		DamagedItems:     int(stats["damaged_items"]),
		ConsumedItems:    int(stats["consumed_items"]),
		SavedItems:       int(savedItems),
		WastedItems:      int(wastedItems),
		EstimatedSavings: float64(savedItems) * 2.5, // rough per-item estimate
	}, nil
}

func (s *foodService) UpsertConsumptionPattern(ctx context.Context, req domain.UpsertPatternRequest, userID string) error {
	if req.FrequencyDays <= 0 {
		return domain.ErrInvalidFrequency
	}
	if req.AverageConsumptionAmount <= 0 {
		return domain.ErrInvalidQuantity
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	pattern := &entities.ConsumptionPattern{
		ID:                       uuid.New(),
		UserID:                   userUUID,
		Category:                 req.Category,
		FrequencyDays:            req.FrequencyDays,
		AverageConsumptionAmount: req.AverageConsumptionAmount,
	}
	return s.foodRepository.UpsertConsumptionPattern(ctx, pattern)
}

func (s *foodService) GetConsumptionPatterns(ctx context.Context, userID string) ([]domain.ConsumptionPatternResponse, error) {
	patterns, err := s.foodRepository.GetConsumptionPatterns(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ConsumptionPatternResponse, 0, len(patterns))
	for _, pattern := range patterns {
		response = append(response, domain.ConsumptionPatternResponse{
			Category:                 pattern.Category,
			FrequencyDays:            pattern.FrequencyDays,
			AverageConsumptionAmount: pattern.AverageConsumptionAmount,
		})
	}
	return response, nil
}

func (s *foodService) getOwnedItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return foodItem, nil
}

// determineStatus classifies an item by proximity to its expiry date.
// Items without one never expire.
func (s *foodService) determineStatus(expiryDate *time.Time) string {
	if expiryDate == nil {
		return domain.FoodStatusSafe
	}

	now := s.now()
	if expiryDate.Before(now) {
		return domain.FoodStatusExpired
	}

	warningThreshold := now.AddDate(0, 0, 3)
	if expiryDate.Before(warningThreshold) {
		return domain.FoodStatusWarning
	}

	return domain.FoodStatusSafe
}

func toFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:             item.ID.String(),
		Name:           item.Name,
		Category:       item.Category,
		Quantity:       item.Quantity,
		UnitMeasure:    item.UnitMeasure,
		ExpiryDate:     item.ExpiryDate,
		Price:          item.Price,
		CanBePreserved: item.CanBePreserved,
		Status:         item.Status,
		ImageURL:       item.ImageURL,
		CreatedAt:      item.CreatedAt,
	}
}
