package prediction

import (
	"math"
	"time"

	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
)

// Default factors applied when an item carries no environmental data and
// when its unit cannot be converted to a weight.
const (
	DefaultConsumptionFrequencyDays = 7.0
	DefaultCO2PerKg                 = 2.5
	DefaultWaterPerKg               = 1000.0
	DefaultWeightKg                 = 0.5
)

type (
	// Predictor scores the waste risk of inventory items against the
	// user's consumption patterns. It holds no state beyond the clock and
	// is safe for concurrent use.
	Predictor interface {
		Predict(item *entities.FoodItem, pattern *entities.ConsumptionPattern) domain.WastePrediction
		PredictAll(items []*entities.FoodItem, patterns []*entities.ConsumptionPattern) []domain.WastePrediction
	}

	predictor struct {
		now func() time.Time
	}
)

func NewPredictor(now func() time.Time) Predictor {
	if now == nil {
		now = time.Now
	}
	return &predictor{now: now}
}

// PredictAll scores each item independently, preserving input order.
// Patterns are matched to items by category.
func (p *predictor) PredictAll(items []*entities.FoodItem, patterns []*entities.ConsumptionPattern) []domain.WastePrediction {
	byCategory := make(map[string]*entities.ConsumptionPattern, len(patterns))
	for _, pattern := range patterns {
		byCategory[pattern.Category] = pattern
	}

	predictions := make([]domain.WastePrediction, 0, len(items))
	for _, item := range items {
		predictions = append(predictions, p.Predict(item, byCategory[item.Category]))
	}
	return predictions
}

func (p *predictor) Predict(item *entities.FoodItem, pattern *entities.ConsumptionPattern) domain.WastePrediction {
	now := p.now()

	frequency := DefaultConsumptionFrequencyDays
	if pattern != nil && pattern.FrequencyDays > 0 {
		frequency = pattern.FrequencyDays
	}

	// Items without an expiry date are exempt from expiry-driven risk:
	// they take the zero-probability path below with daysUntilExpiry
	// pinned so the optimal consumption date resolves to today.
	daysUntilExpiry := 1
	hasExpiry := item.ExpiryDate != nil
	if hasExpiry {
		daysUntilExpiry = int(math.Floor(item.ExpiryDate.Sub(now).Hours() / 24))
	}

	var probability float64
	switch {
	case !hasExpiry:
		probability = 0
	case daysUntilExpiry < 0:
		// Already expired.
		probability = 1
	case float64(daysUntilExpiry) < frequency/2:
		// Less than half the usual consumption cycle remaining.
		probability = 0.7 - float64(daysUntilExpiry)/frequency
	default:
		probability = 0.3 * (1 - float64(daysUntilExpiry)/(frequency*2))
	}

	// Surplus adjustment: more on hand than the household typically
	// consumes in one cycle.
	if pattern != nil && item.Quantity > pattern.AverageConsumptionAmount {
		probability += 0.2
	}

	probability = math.Max(0, math.Min(1, probability))

	var risk string
	switch {
	case probability < 0.3:
		risk = domain.WasteRiskLow
	case probability < 0.7:
		risk = domain.WasteRiskMedium
	default:
		risk = domain.WasteRiskHigh
	}

	action, reasoning := suggestAction(probability, daysUntilExpiry, item.CanBePreserved)

	co2PerKg := DefaultCO2PerKg
	if item.CO2PerKg != nil {
		co2PerKg = *item.CO2PerKg
	}
	waterPerKg := DefaultWaterPerKg
	if item.WaterPerKg != nil {
		waterPerKg = *item.WaterPerKg
	}

	weightKg := WeightInKg(item.Quantity, item.UnitMeasure)

	cost := 0.0
	if item.Price != nil {
		cost = *item.Price
	}

	return domain.WastePrediction{
		ItemID:                 item.ID.String(),
		ItemName:               item.Name,
		WasteRisk:              risk,
		WasteProbability:       probability,
		SuggestedAction:        action,
		Reasoning:              reasoning,
		OptimalConsumptionDate: now.Add(time.Duration(daysUntilExpiry-1) * 24 * time.Hour),
		PotentialWasteCost:     cost,
		EnvironmentalImpact: domain.EnvironmentalImpact{
			CO2Saved:   co2PerKg * weightKg,
			WaterSaved: waterPerKg * weightKg,
		},
	}
}

// suggestAction picks the disposition for an item, first match wins.
func suggestAction(probability float64, daysUntilExpiry int, canBePreserved bool) (string, string) {
	switch {
	case probability > 0.7 && daysUntilExpiry < 1:
		return domain.ActionConsume, domain.ReasonExpiresToday
	case probability > 0.7:
		return domain.ActionShare, domain.ReasonShareWithOther
	case probability > 0.4 && canBePreserved:
		return domain.ActionPreserve, domain.ReasonCanBePreserved
	case probability > 0.4:
		return domain.ActionConsume, domain.ReasonPlanMealSoon
	default:
		return domain.ActionConsume, domain.ReasonConsumedInTime
	}
}

// WeightInKg converts a quantity to kilograms. Units without a defined
// weight fall back to a rough 0.5 kg estimate rather than failing.
func WeightInKg(amount float64, unit string) float64 {
	switch unit {
	case "kg":
		return amount
	case "g":
		return amount / 1000
	default:
		return DefaultWeightKg
	}
}
