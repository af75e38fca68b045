package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessConsumeFoodItem   = "food item marked as consumed"
	MessageSuccessShareFoodItem     = "food item shared successfully"
	MessageSuccessMarkAsDamaged     = "food item marked as damaged"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"
	MessageSuccessUpsertPattern     = "consumption pattern saved successfully"
	MessageSuccessGetPatterns       = "consumption patterns retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedConsumeFoodItem   = "failed to mark food item as consumed"
	MessageFailedShareFoodItem     = "failed to share food item"
	MessageFailedMarkAsDamaged     = "failed to mark food item as damaged"
	MessageFailedUploadFoodImage   = "failed to upload food image"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"
	MessageFailedUpsertPattern     = "failed to save consumption pattern"
	MessageFailedGetPatterns       = "failed to retrieve consumption patterns"

	ErrFoodItemNotFound  = errors.New("food item not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidFrequency  = errors.New("frequency days must be positive")
	ErrItemAlreadyClosed = errors.New("food item is already consumed or discarded")
)

const (
	FoodStatusSafe     = "Safe"
	FoodStatusWarning  = "Warning"
	FoodStatusExpired  = "Expired"
	FoodStatusDamaged  = "Damaged"
	FoodStatusConsumed = "Consumed"
	FoodStatusShared   = "Shared"
)

type (
	AddFoodItemRequest struct {
		Name           string   `json:"name" validate:"required"`
		Category       string   `json:"category" validate:"required"`
		Quantity       float64  `json:"quantity" validate:"required,gt=0"`
		UnitMeasure    string   `json:"unit_measure" validate:"required"`
		ExpiryDate     string   `json:"expiry_date,omitempty"`
		Price          *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
		CanBePreserved bool     `json:"can_be_preserved"`
		CO2PerKg       *float64 `json:"co2_per_kg,omitempty" validate:"omitempty,gte=0"`
		WaterPerKg     *float64 `json:"water_per_kg,omitempty" validate:"omitempty,gte=0"`
	}

	AddFoodItemResponse struct {
		ID          string     `json:"id"`
		Name        string     `json:"name"`
		Category    string     `json:"category"`
		Quantity    float64    `json:"quantity"`
		UnitMeasure string     `json:"unit_measure"`
		ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
		Status      string     `json:"status"`
	}

	UpdateFoodItemRequest struct {
		Name           string   `json:"name,omitempty"`
		Category       string   `json:"category,omitempty"`
		Quantity       float64  `json:"quantity,omitempty" validate:"omitempty,gt=0"`
		UnitMeasure    string   `json:"unit_measure,omitempty"`
		ExpiryDate     string   `json:"expiry_date,omitempty"`
		Price          *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
		CanBePreserved *bool    `json:"can_be_preserved,omitempty"`
	}

	FoodItemResponse struct {
		ID             string     `json:"id"`
		Name           string     `json:"name"`
		Category       string     `json:"category"`
		Quantity       float64    `json:"quantity"`
		UnitMeasure    string     `json:"unit_measure"`
		ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
		Price          *float64   `json:"price,omitempty"`
		CanBePreserved bool       `json:"can_be_preserved"`
		Status         string     `json:"status"`
		ImageURL       string     `json:"image_url,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_item_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" validate:"required"`
	}

	MarkAsDamagedRequest struct {
		FoodItemID string `json:"food_item_id" validate:"required,uuid"`
	}

	UpsertPatternRequest struct {
		Category                 string  `json:"category" validate:"required"`
		FrequencyDays            float64 `json:"frequency_days" validate:"required,gt=0"`
		AverageConsumptionAmount float64 `json:"average_consumption_amount" validate:"required,gt=0"`
	}

	ConsumptionPatternResponse struct {
		Category                 string  `json:"category"`
		FrequencyDays            float64 `json:"frequency_days"`
		AverageConsumptionAmount float64 `json:"average_consumption_amount"`
	}

	DashboardStatsResponse struct {
		TotalItems       int     `json:"total_items"`
		SafeItems        int     `json:"safe_items"`
		WarningItems     int     `json:"warning_items"`
		ExpiredItems     int     `json:"expired_items"`
		DamagedItems     int     `json:"damaged_items"`
		ConsumedItems    int     `json:"consumed_items"`
		SavedItems       int     `json:"saved_items"`
		WastedItems      int     `json:"wasted_items"`
		EstimatedSavings float64 `json:"estimated_savings"`
	}
)
