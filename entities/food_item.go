package entities

import (
	"github.com/google/uuid"
	"time"
)

type FoodItem struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	Quantity       float64    `json:"quantity"`
	UnitMeasure    string     `json:"unit_measure"` // "kg", "g", "l", "pcs", ...
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	Price          *float64   `json:"price,omitempty"`
	CanBePreserved bool       `json:"can_be_preserved"`
	CO2PerKg       *float64   `json:"co2_per_kg,omitempty"`
	WaterPerKg     *float64   `json:"water_per_kg,omitempty"`
	Status         string     `json:"status"` // "Safe", "Warning", "Expired", "Damaged", "Consumed"
	ImageURL       string     `json:"image_url,omitempty"`
	AddedManually  bool       `json:"added_manually"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

// ConsumptionPattern holds per-category usage statistics for one user,
// maintained from consumption history. One row per user per category.
type ConsumptionPattern struct {
	ID                       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID                   uuid.UUID `gorm:"index:idx_pattern_user_category,unique" json:"user_id"`
	Category                 string    `gorm:"index:idx_pattern_user_category,unique" json:"category"`
	FrequencyDays            float64   `json:"frequency_days"`
	AverageConsumptionAmount float64   `json:"average_consumption_amount"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
