package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAwardPoints     = "points awarded successfully"
	MessageSuccessGetStats        = "user stats retrieved successfully"
	MessageSuccessGetAchievements = "achievements retrieved successfully"
	MessageSuccessGetChallenges   = "challenges retrieved successfully"
	MessageSuccessGetLeaderboard  = "leaderboard retrieved successfully"
	MessageSuccessGetPointHistory = "point history retrieved successfully"
	MessageSuccessDailyCheckIn    = "daily check-in recorded successfully"

	MessageFailedAwardPoints     = "failed to award points"
	MessageFailedGetStats        = "failed to retrieve user stats"
	MessageFailedGetAchievements = "failed to retrieve achievements"
	MessageFailedGetChallenges   = "failed to retrieve challenges"
	MessageFailedGetLeaderboard  = "failed to retrieve leaderboard"
	MessageFailedGetPointHistory = "failed to retrieve point history"
	MessageFailedDailyCheckIn    = "failed to record daily check-in"

	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrInvalidLeaderboard = errors.New("invalid leaderboard scope")
)

const (
	// Action tokens recognised by the points table.
	ActionItemAdded             = "item_added"
	ActionItemConsumed          = "item_consumed"
	ActionItemShared            = "item_shared"
	ActionRecipeUsed            = "recipe_used"
	ActionExpiryPrevented       = "expiry_prevented"
	ActionDailyCheckIn          = "daily_check_in"
	ActionWeeklyGoalCompleted   = "weekly_goal_completed"
	ActionChallengeCompleted    = "challenge_completed"
	ActionCommunityContribution = "community_contribution"
	ActionFeedbackProvided      = "feedback_provided"
	ActionFirstScan             = "first_scan"
	ActionProfileCompleted      = "profile_completed"
)

const (
	AchievementLevelBronze   = "bronze"
	AchievementLevelSilver   = "silver"
	AchievementLevelGold     = "gold"
	AchievementLevelPlatinum = "platinum"

	AchievementCategoryInventory      = "inventory"
	AchievementCategoryRecipes        = "recipes"
	AchievementCategoryCommunity      = "community"
	AchievementCategoryScanning       = "scanning"
	AchievementCategoryWasteReduction = "waste-reduction"

	LeaderboardScopeGlobal  = "global"
	LeaderboardScopeFriends = "friends"
	LeaderboardScopeLocal   = "local"
)

type (
	AwardPointsRequest struct {
		Action   string `json:"action" validate:"required"`
		Quantity int    `json:"quantity,omitempty" validate:"omitempty,min=1"`
	}

	AwardPointsResponse struct {
		Action       string `json:"action"`
		PointsEarned int    `json:"points_earned"`
		TotalPoints  int    `json:"total_points"`
		Level        int    `json:"level"`
	}

	WasteReductionStats struct {
		TotalKgSaved float64 `json:"total_kg_saved"`
		CO2Saved     float64 `json:"co2_saved"`
		WaterSaved   float64 `json:"water_saved"`
		MoneySaved   float64 `json:"money_saved"`
	}

	StreakStats struct {
		CurrentStreak int        `json:"current_streak"`
		LongestStreak int        `json:"longest_streak"`
		LastCheckIn   *time.Time `json:"last_check_in,omitempty"`
	}

	InventoryStats struct {
		TotalItemsTracked    int     `json:"total_items_tracked"`
		ExpiryPreventionRate float64 `json:"expiry_prevention_rate"`
	}

	CommunityStats struct {
		ItemsShared   int `json:"items_shared"`
		ItemsReceived int `json:"items_received"`
		PeopleHelped  int `json:"people_helped"`
	}

	UserStatsResponse struct {
		TotalPoints        int                 `json:"total_points"`
		Level              int                 `json:"level"`
		PointsForNextLevel int                 `json:"points_for_next_level"`
		WasteReduction     WasteReductionStats `json:"waste_reduction"`
		Streaks            StreakStats         `json:"streaks"`
		Inventory          InventoryStats      `json:"inventory"`
		Community          CommunityStats      `json:"community"`
	}

	Achievement struct {
		ID             string  `json:"id"`
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		Icon           string  `json:"icon"`
		RequiredPoints int     `json:"required_points"`
		IsUnlocked     bool    `json:"is_unlocked"`
		Progress       float64 `json:"progress"` // 0-100
		Category       string  `json:"category"`
		Level          string  `json:"level"`
	}

	ChallengeReward struct {
		Points int    `json:"points"`
		Badge  string `json:"badge,omitempty"`
	}

	ChallengeResponse struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Icon        string          `json:"icon"`
		StartDate   time.Time       `json:"start_date"`
		EndDate     time.Time       `json:"end_date"`
		IsCompleted bool            `json:"is_completed"`
		Progress    int             `json:"progress"`
		Goal        int             `json:"goal"`
		Reward      ChallengeReward `json:"reward"`
	}

	LeaderboardEntry struct {
		UserID           string  `json:"user_id"`
		Username         string  `json:"username"`
		Avatar           string  `json:"avatar"`
		Points           int     `json:"points"`
		Level            int     `json:"level"`
		WasteReductionKg float64 `json:"waste_reduction_kg"`
		Position         int     `json:"position"`
	}

	PointTransactionResponse struct {
		ID          string    `json:"id"`
		Action      string    `json:"action"`
		Quantity    int       `json:"quantity"`
		Points      int       `json:"points"`
		Description string    `json:"description"`
		Balance     int       `json:"balance"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
