package gamification

import (
	"math"

	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
)

// PointsForUnknownAction is credited when an action token is not present
// in the points table.
const PointsForUnknownAction = 1

type (
	// Engine holds the scoring rules for levels, point awards and
	// achievements. It operates on snapshots of user stats, keeps no
	// mutable state and is safe for concurrent use; persistence of the
	// results is the caller's responsibility.
	Engine interface {
		CalculateLevel(points int) int
		PointsForNextLevel(currentLevel int) int
		AwardPoints(action string, quantity int) int
		CheckAchievements(stats *entities.UserStats) []domain.Achievement
	}

	engine struct {
		actionPoints map[string]int
		achievements []AchievementSpec
	}
)

// NewEngine builds an engine over immutable catalogs. The maps and slices
// are copied so later mutation by the caller cannot change scoring.
func NewEngine(actionPoints map[string]int, achievements []AchievementSpec) Engine {
	points := make(map[string]int, len(actionPoints))
	for action, value := range actionPoints {
		points[action] = value
	}
	specs := make([]AchievementSpec, len(achievements))
	copy(specs, achievements)

	return &engine{
		actionPoints: points,
		achievements: specs,
	}
}

// NewDefaultEngine wires the built-in catalogs.
func NewDefaultEngine() Engine {
	return NewEngine(DefaultActionPoints(), DefaultAchievements())
}

// CalculateLevel maps lifetime points to a level on a logarithmic curve:
// early levels come cheap, later ones require increasingly more points.
func (e *engine) CalculateLevel(points int) int {
	return int(math.Floor(math.Log(float64(points)+100)/math.Log(1.5))) - 9
}

// PointsForNextLevel returns the point total at which the next level is
// reached. Approximate inverse of CalculateLevel; flooring on both sides
// means the round trip is not exact.
func (e *engine) PointsForNextLevel(currentLevel int) int {
	return int(math.Floor(math.Pow(1.5, float64(currentLevel)+10))) - 100
}

// AwardPoints returns the point delta for a discrete action. It does not
// persist anything.
func (e *engine) AwardPoints(action string, quantity int) int {
	if quantity < 1 {
		quantity = 1
	}
	value, ok := e.actionPoints[action]
	if !ok {
		value = PointsForUnknownAction
	}
	return value * quantity
}

// CheckAchievements evaluates the full catalog against a stats snapshot.
// Unlock state and progress are recomputed on every call, never cached.
func (e *engine) CheckAchievements(stats *entities.UserStats) []domain.Achievement {
	achievements := make([]domain.Achievement, 0, len(e.achievements))
	for _, spec := range e.achievements {
		value := metricValue(stats, spec.Metric)
		achievements = append(achievements, domain.Achievement{
			ID:             spec.ID,
			Name:           spec.Name,
			Description:    spec.Description,
			Icon:           spec.Icon,
			RequiredPoints: spec.RequiredPoints,
			IsUnlocked:     value >= spec.Threshold,
			Progress:       math.Min(value/spec.Threshold, 1) * 100,
			Category:       spec.Category,
			Level:          spec.Level,
		})
	}
	return achievements
}

func metricValue(stats *entities.UserStats, metric string) float64 {
	if stats == nil {
		return 0
	}
	switch metric {
	case MetricKgSaved:
		return stats.TotalKgSaved
	case MetricItemsShared:
		return float64(stats.ItemsShared)
	case MetricItemsTracked:
		return float64(stats.TotalItemsTracked)
	case MetricScansCompleted:
		return float64(stats.ScansCompleted)
	case MetricPeopleHelped:
		return float64(stats.PeopleHelped)
	default:
		return 0
	}
}
