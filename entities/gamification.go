package entities

import (
	"github.com/google/uuid"
	"time"
)

type UserStats struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	TotalPoints int       `json:"total_points"`
	Level       int       `json:"level"`

	// Waste reduction totals, monotonically non-decreasing.
	TotalKgSaved float64 `json:"total_kg_saved"`
	CO2Saved     float64 `json:"co2_saved"`
	WaterSaved   float64 `json:"water_saved"`
	MoneySaved   float64 `json:"money_saved"`

	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastCheckIn   *time.Time `json:"last_check_in,omitempty"`

	TotalItemsTracked    int     `json:"total_items_tracked"`
	ItemsConsumed        int     `json:"items_consumed"`
	ItemsConsumedInTime  int     `json:"items_consumed_in_time"`
	ExpiryPreventionRate float64 `json:"expiry_prevention_rate"` // 0-1
	ScansCompleted       int     `json:"scans_completed"`

	ItemsShared   int `json:"items_shared"`
	ItemsReceived int `json:"items_received"`
	PeopleHelped  int `json:"people_helped"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type PointTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Action      string    `json:"action"`
	Quantity    int       `json:"quantity"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
	Balance     int       `json:"balance"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

type Challenge struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Goal         int       `json:"goal"`
	RewardPoints int       `json:"reward_points"`
	RewardBadge  string    `json:"reward_badge,omitempty"`
	IsActive     bool      `json:"is_active"`

	Participants []*UserChallenge `gorm:"foreignKey:ChallengeID"`
	Timestamp
}

type UserChallenge struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID  `gorm:"index:idx_user_challenge,unique" json:"user_id"`
	ChallengeID uuid.UUID  `gorm:"index:idx_user_challenge,unique" json:"challenge_id"`
	Progress    int        `json:"progress"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	User      *User      `gorm:"foreignKey:UserID"`
	Challenge *Challenge `gorm:"foreignKey:ChallengeID"`
	Timestamp
}
