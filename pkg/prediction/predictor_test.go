package prediction

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newItem(name string, expiryIn time.Duration, quantity float64, unit string) *entities.FoodItem {
	expiry := testNow.Add(expiryIn)
	return &entities.FoodItem{
		ID:          uuid.New(),
		Name:        name,
		Category:    "vegetables",
		Quantity:    quantity,
		UnitMeasure: unit,
		ExpiryDate:  &expiry,
	}
}

func newPattern(frequencyDays, averageAmount float64) *entities.ConsumptionPattern {
	return &entities.ConsumptionPattern{
		Category:                 "vegetables",
		FrequencyDays:            frequencyDays,
		AverageConsumptionAmount: averageAmount,
	}
}

func TestPredictExpiredItem(t *testing.T) {
	p := NewPredictor(fixedClock)

	result := p.Predict(newItem("Old milk", -36*time.Hour, 1, "l"), nil)

	assert.Equal(t, 1.0, result.WasteProbability)
	assert.Equal(t, domain.WasteRiskHigh, result.WasteRisk)
	// Past expiry with less than a day left: eat it now, not share.
	assert.Equal(t, domain.ActionConsume, result.SuggestedAction)
	assert.Equal(t, domain.ReasonExpiresToday, result.Reasoning)
}

func TestPredictProbabilityAlwaysClamped(t *testing.T) {
	p := NewPredictor(fixedClock)

	items := []*entities.FoodItem{
		newItem("Expired long ago", -1000*24*time.Hour, 9999, "kg"),
		newItem("Expires far out", 1000*24*time.Hour, 9999, "kg"),
		newItem("Expires today", 0, 0.001, "g"),
	}
	pattern := newPattern(0.5, 0.0001)

	for _, item := range items {
		result := p.Predict(item, pattern)
		assert.GreaterOrEqual(t, result.WasteProbability, 0.0, item.Name)
		assert.LessOrEqual(t, result.WasteProbability, 1.0, item.Name)
	}
}

func TestPredictRiskBandBoundaries(t *testing.T) {
	p := NewPredictor(fixedClock)

	// frequency 8, 8 days left: base 0.3*(1-8/16) = 0.15, surplus +0.2
	// pushes it over the 0.3 threshold into medium.
	justAbove := p.Predict(newItem("Carrots", 8*24*time.Hour, 500, "g"), newPattern(8, 300))
	assert.InDelta(t, 0.35, justAbove.WasteProbability, 1e-9)
	assert.Equal(t, domain.WasteRiskMedium, justAbove.WasteRisk)

	// Same shape without the surplus bump stays low.
	justBelow := p.Predict(newItem("Carrots", 8*24*time.Hour, 200, "g"), newPattern(8, 300))
	assert.InDelta(t, 0.15, justBelow.WasteProbability, 1e-9)
	assert.Equal(t, domain.WasteRiskLow, justBelow.WasteRisk)

	// Expires today with frequency 7: 0.7 - 0/7 = 0.7 exactly, which
	// belongs to high.
	atUpperBoundary := p.Predict(newItem("Yoghurt", 12*time.Hour, 200, "g"), newPattern(7, 300))
	assert.InDelta(t, 0.7, atUpperBoundary.WasteProbability, 1e-9)
	assert.Equal(t, domain.WasteRiskHigh, atUpperBoundary.WasteRisk)

	// frequency 10, 2 days left: 0.7 - 2/10 = 0.5, medium.
	middle := p.Predict(newItem("Cheese", 2*24*time.Hour+time.Hour, 200, "g"), newPattern(10, 300))
	assert.InDelta(t, 0.5, middle.WasteProbability, 1e-9)
	assert.Equal(t, domain.WasteRiskMedium, middle.WasteRisk)
}

func TestPredictTomatoScenario(t *testing.T) {
	p := NewPredictor(fixedClock)

	item := newItem("Tomates", 48*time.Hour, 500, "g")
	item.CanBePreserved = false
	pattern := newPattern(4, 300)

	result := p.Predict(item, pattern)

	// 2 days left >= 4/2, so 0.3*(1-2/8) = 0.225, +0.2 surplus = 0.425.
	assert.InDelta(t, 0.425, result.WasteProbability, 1e-9)
	assert.Equal(t, domain.WasteRiskMedium, result.WasteRisk)
	assert.Equal(t, domain.ActionConsume, result.SuggestedAction)
	assert.Equal(t, domain.ReasonPlanMealSoon, result.Reasoning)
	assert.InDelta(t, 1.25, result.EnvironmentalImpact.CO2Saved, 1e-9)
	assert.InDelta(t, 500.0, result.EnvironmentalImpact.WaterSaved, 1e-9)
	assert.Equal(t, testNow.Add(24*time.Hour), result.OptimalConsumptionDate)
}

func TestPredictPreservableItemSuggestsPreserve(t *testing.T) {
	p := NewPredictor(fixedClock)

	item := newItem("Bread", 48*time.Hour, 500, "g")
	item.CanBePreserved = true

	result := p.Predict(item, newPattern(4, 300))

	assert.Equal(t, domain.ActionPreserve, result.SuggestedAction)
	assert.Equal(t, domain.ReasonCanBePreserved, result.Reasoning)
}

func TestPredictHighRiskSuggestsShare(t *testing.T) {
	p := NewPredictor(fixedClock)

	// 1 day left, frequency 10: 0.7 - 1/10 = 0.6, +0.2 surplus = 0.8.
	item := newItem("Leftovers", 30*time.Hour, 500, "g")
	result := p.Predict(item, newPattern(10, 300))

	assert.InDelta(t, 0.8, result.WasteProbability, 1e-9)
	assert.Equal(t, domain.ActionShare, result.SuggestedAction)
	assert.Equal(t, domain.ReasonShareWithOther, result.Reasoning)
}

func TestPredictWithoutPatternUsesDefaults(t *testing.T) {
	p := NewPredictor(fixedClock)

	// No pattern: frequency defaults to 7 and the surplus bump never
	// applies. 10 days left: 0.3*(1-10/14).
	result := p.Predict(newItem("Rice", 10*24*time.Hour+time.Hour, 5000, "g"), nil)

	assert.InDelta(t, 0.3*(1-10.0/14.0), result.WasteProbability, 1e-9)
	assert.Equal(t, domain.WasteRiskLow, result.WasteRisk)
	assert.Equal(t, domain.ReasonConsumedInTime, result.Reasoning)
}

func TestPredictWithoutExpiryDate(t *testing.T) {
	p := NewPredictor(fixedClock)

	item := &entities.FoodItem{
		ID:          uuid.New(),
		Name:        "Honey",
		Category:    "pantry",
		Quantity:    1,
		UnitMeasure: "kg",
	}

	result := p.Predict(item, nil)

	assert.Equal(t, 0.0, result.WasteProbability)
	assert.Equal(t, domain.WasteRiskLow, result.WasteRisk)
	assert.Equal(t, domain.ActionConsume, result.SuggestedAction)
	assert.Equal(t, domain.ReasonConsumedInTime, result.Reasoning)
	assert.Equal(t, testNow, result.OptimalConsumptionDate)
	assert.InDelta(t, DefaultCO2PerKg, result.EnvironmentalImpact.CO2Saved, 1e-9)
}

func TestPredictEnvironmentalImpactScalesLinearly(t *testing.T) {
	p := NewPredictor(fixedClock)

	single := p.Predict(newItem("Potatoes", 5*24*time.Hour, 1, "kg"), nil)
	double := p.Predict(newItem("Potatoes", 5*24*time.Hour, 2, "kg"), nil)

	assert.InDelta(t, 2*single.EnvironmentalImpact.CO2Saved, double.EnvironmentalImpact.CO2Saved, 1e-9)
	assert.InDelta(t, 2*single.EnvironmentalImpact.WaterSaved, double.EnvironmentalImpact.WaterSaved, 1e-9)
}

func TestPredictCustomEnvironmentalData(t *testing.T) {
	p := NewPredictor(fixedClock)

	co2 := 14.0
	water := 3000.0
	price := 7.5
	item := newItem("Beef", 5*24*time.Hour, 2, "kg")
	item.CO2PerKg = &co2
	item.WaterPerKg = &water
	item.Price = &price

	result := p.Predict(item, nil)

	assert.InDelta(t, 28.0, result.EnvironmentalImpact.CO2Saved, 1e-9)
	assert.InDelta(t, 6000.0, result.EnvironmentalImpact.WaterSaved, 1e-9)
	assert.Equal(t, 7.5, result.PotentialWasteCost)
}

func TestPredictUnknownUnitFallsBackToDefaultWeight(t *testing.T) {
	p := NewPredictor(fixedClock)

	result := p.Predict(newItem("Eggs", 5*24*time.Hour, 12, "pcs"), nil)

	assert.InDelta(t, DefaultCO2PerKg*DefaultWeightKg, result.EnvironmentalImpact.CO2Saved, 1e-9)
	assert.InDelta(t, DefaultWaterPerKg*DefaultWeightKg, result.EnvironmentalImpact.WaterSaved, 1e-9)
}

func TestPredictAllPreservesOrderAndMatchesPatterns(t *testing.T) {
	p := NewPredictor(fixedClock)

	vegetables := newItem("Spinach", 24*time.Hour, 400, "g")
	dairy := newItem("Milk", 3*24*time.Hour, 1, "l")
	dairy.Category = "dairy"
	pantry := newItem("Pasta", 100*24*time.Hour, 500, "g")
	pantry.Category = "pantry"

	patterns := []*entities.ConsumptionPattern{
		newPattern(4, 300),
		{Category: "dairy", FrequencyDays: 3, AverageConsumptionAmount: 2},
	}

	results := p.PredictAll([]*entities.FoodItem{vegetables, dairy, pantry}, patterns)

	require.Len(t, results, 3)
	assert.Equal(t, vegetables.ID.String(), results[0].ItemID)
	assert.Equal(t, dairy.ID.String(), results[1].ItemID)
	assert.Equal(t, pantry.ID.String(), results[2].ItemID)

	// Spinach matched the vegetables pattern: 1 day < 4/2, surplus bump
	// applies (400 > 300).
	assert.InDelta(t, 0.7-1.0/4.0+0.2, results[0].WasteProbability, 1e-9)
}

func TestWeightInKg(t *testing.T) {
	assert.Equal(t, 2.0, WeightInKg(2, "kg"))
	assert.Equal(t, 0.25, WeightInKg(250, "g"))
	assert.Equal(t, DefaultWeightKg, WeightInKg(3, "pcs"))
	assert.Equal(t, DefaultWeightKg, WeightInKg(1, ""))
}
