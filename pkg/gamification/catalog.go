package gamification

import (
	"github.com/wastewise/wastewise-backend/domain"
)

// Metrics an achievement threshold can be evaluated against.
const (
	MetricKgSaved        = "total_kg_saved"
	MetricItemsShared    = "items_shared"
	MetricItemsTracked   = "total_items_tracked"
	MetricScansCompleted = "scans_completed"
	MetricPeopleHelped   = "people_helped"
)

// AchievementSpec is one catalog entry: a fixed milestone with a numeric
// unlock threshold on a single stats metric.
type AchievementSpec struct {
	ID             string
	Name           string
	Description    string
	Icon           string
	RequiredPoints int
	Metric         string
	Threshold      float64
	Category       string
	Level          string
}

// DefaultActionPoints is the fixed action-to-points table.
func DefaultActionPoints() map[string]int {
	return map[string]int{
		domain.ActionItemAdded:             5,
		domain.ActionItemConsumed:          10,
		domain.ActionItemShared:            25,
		domain.ActionRecipeUsed:            15,
		domain.ActionExpiryPrevented:       20,
		domain.ActionDailyCheckIn:          5,
		domain.ActionWeeklyGoalCompleted:   50,
		domain.ActionChallengeCompleted:    100,
		domain.ActionCommunityContribution: 30,
		domain.ActionFeedbackProvided:      10,
		domain.ActionFirstScan:             20,
		domain.ActionProfileCompleted:      15,
	}
}

// DefaultAchievements is the built-in achievement catalog.
func DefaultAchievements() []AchievementSpec {
	return []AchievementSpec{
		{
			ID:             "waste_warrior_bronze",
			Name:           "Waste Warrior Bronze",
			Description:    "Save 5kg of food from going to waste",
			Icon:           "award",
			RequiredPoints: 100,
			Metric:         MetricKgSaved,
			Threshold:      5,
			Category:       domain.AchievementCategoryWasteReduction,
			Level:          domain.AchievementLevelBronze,
		},
		{
			ID:             "waste_warrior_silver",
			Name:           "Waste Warrior Silver",
			Description:    "Save 25kg of food from going to waste",
			Icon:           "award",
			RequiredPoints: 250,
			Metric:         MetricKgSaved,
			Threshold:      25,
			Category:       domain.AchievementCategoryWasteReduction,
			Level:          domain.AchievementLevelSilver,
		},
		{
			ID:             "community_hero_bronze",
			Name:           "Community Hero Bronze",
			Description:    "Share 5 items with your community",
			Icon:           "users",
			RequiredPoints: 150,
			Metric:         MetricItemsShared,
			Threshold:      5,
			Category:       domain.AchievementCategoryCommunity,
			Level:          domain.AchievementLevelBronze,
		},
		{
			ID:             "inventory_master_bronze",
			Name:           "Inventory Master Bronze",
			Description:    "Track 20 items in your inventory",
			Icon:           "list",
			RequiredPoints: 120,
			Metric:         MetricItemsTracked,
			Threshold:      20,
			Category:       domain.AchievementCategoryInventory,
			Level:          domain.AchievementLevelBronze,
		},
		{
			ID:             "scanner_pro_bronze",
			Name:           "Scanner Pro Bronze",
			Description:    "Scan 10 items with image recognition",
			Icon:           "camera",
			RequiredPoints: 100,
			Metric:         MetricScansCompleted,
			Threshold:      10,
			Category:       domain.AchievementCategoryScanning,
			Level:          domain.AchievementLevelBronze,
		},
	}
}
