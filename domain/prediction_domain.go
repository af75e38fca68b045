package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetPredictions  = "waste predictions retrieved successfully"
	MessageSuccessSendExpiryAlert = "expiry alert sent successfully"

	MessageFailedGetPredictions  = "failed to retrieve waste predictions"
	MessageFailedSendExpiryAlert = "failed to send expiry alert"

	ErrNoItemsToPredict = errors.New("no food items available for prediction")
)

const (
	WasteRiskLow    = "low"
	WasteRiskMedium = "medium"
	WasteRiskHigh   = "high"

	ActionConsume  = "consume"
	ActionPreserve = "preserve"
	ActionShare    = "share"
	ActionDonate   = "donate"
)

// Reasoning templates attached to predictions. One of these, never free text.
var (
	ReasonExpiresToday   = "This item expires very soon and should be eaten today."
	ReasonShareWithOther = "This item has a high risk of being wasted. Consider sharing it with neighbours."
	ReasonCanBePreserved = "This item can be frozen or preserved to avoid waste."
	ReasonPlanMealSoon   = "Plan a meal with this ingredient in the next few days."
	ReasonConsumedInTime = "This item will likely be consumed in time based on your habits."
)

type (
	EnvironmentalImpact struct {
		CO2Saved   float64 `json:"co2_saved"`   // kg
		WaterSaved float64 `json:"water_saved"` // liters
	}

	WastePrediction struct {
		ItemID                 string              `json:"item_id"`
		ItemName               string              `json:"item_name"`
		WasteRisk              string              `json:"waste_risk"`
		WasteProbability       float64             `json:"waste_probability"` // 0-1
		SuggestedAction        string              `json:"suggested_action"`
		Reasoning              string              `json:"reasoning"`
		OptimalConsumptionDate time.Time           `json:"optimal_consumption_date"`
		PotentialWasteCost     float64             `json:"potential_waste_cost"`
		EnvironmentalImpact    EnvironmentalImpact `json:"environmental_impact"`
	}
)
