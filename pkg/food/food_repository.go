package food

import (
	"context"
	"errors"
	"time"

	"github.com/wastewise/wastewise-backend/entities"
	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		GetFoodItems(ctx context.Context, userID string, status string, page, limit int) ([]*entities.FoodItem, int64, error)
		GetOpenFoodItems(ctx context.Context, userID string) ([]*entities.FoodItem, error)
		GetFoodItemsByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.FoodItem, error)
		SetFoodItemStatus(ctx context.Context, id string, status string) error
		GetDashboardStats(ctx context.Context, userID string) (map[string]int64, error)

		// Consumption patterns
		UpsertConsumptionPattern(ctx context.Context, pattern *entities.ConsumptionPattern) error
		GetConsumptionPatterns(ctx context.Context, userID string) ([]*entities.ConsumptionPattern, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItems(ctx context.Context, userID string, status string, page, limit int) ([]*entities.FoodItem, int64, error) {
	var foodItems []*entities.FoodItem
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.FoodItem{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expiry_date asc").Find(&foodItems).Error; err != nil {
		return nil, 0, err
	}

	return foodItems, count, nil
}

// GetOpenFoodItems returns items still sitting in the inventory, the
// population waste predictions run over.
func (r *foodRepository) GetOpenFoodItems(ctx context.Context, userID string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, []string{"Safe", "Warning", "Expired"}).
		Order("expiry_date asc NULLS LAST").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) GetFoodItemsByExpiryRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date BETWEEN ? AND ? AND status = ?",
			userID, startDate, endDate, "Safe").
		Order("expiry_date asc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) SetFoodItemStatus(ctx context.Context, id string, status string) error {
	return r.db.WithContext(ctx).Model(&entities.FoodItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status}).Error
}

func (r *foodRepository) GetDashboardStats(ctx context.Context, userID string) (map[string]int64, error) {
	stats := make(map[string]int64)

	countByStatus := func(status string) (int64, error) {
		var count int64
		err := r.db.WithContext(ctx).Model(&entities.FoodItem{}).
			Where("user_id = ? AND status = ?", userID, status).
			Count(&count).Error
		return count, err
	}

	var totalItems int64
	if err := r.db.WithContext(ctx).Model(&entities.FoodItem{}).
		Where("user_id = ?", userID).
		Count(&totalItems).Error; err != nil {
		return nil, err
	}
	stats["total_items"] = totalItems

	for key, status := range map[string]string{
		"safe_items":     "Safe",
		"warning_items":  "Warning",
		"expired_items":  "Expired",
		"damaged_items":  "Damaged",
		"consumed_items": "Consumed",
	} {
		count, err := countByStatus(status)
		if err != nil {
			return nil, err
		}
		stats[key] = count
	}

	return stats, nil
}

func (r *foodRepository) UpsertConsumptionPattern(ctx context.Context, pattern *entities.ConsumptionPattern) error {
	var existing entities.ConsumptionPattern
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", pattern.UserID, pattern.Category).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(pattern).Error
	}
	if err != nil {
		return err
	}

	existing.FrequencyDays = pattern.FrequencyDays
	existing.AverageConsumptionAmount = pattern.AverageConsumptionAmount
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *foodRepository) GetConsumptionPatterns(ctx context.Context, userID string) ([]*entities.ConsumptionPattern, error) {
	var patterns []*entities.ConsumptionPattern
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category asc").
		Find(&patterns).Error; err != nil {
		return nil, err
	}
	return patterns, nil
}
