package prediction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wastewise/wastewise-backend/domain"
	"github.com/wastewise/wastewise-backend/entities"
	"github.com/wastewise/wastewise-backend/internal/utils/mailing"
	"gorm.io/gorm"
)

type (
	// InventorySource supplies the materialised inventory and patterns a
	// prediction run needs. Satisfied by food.FoodRepository.
	InventorySource interface {
		GetOpenFoodItems(ctx context.Context, userID string) ([]*entities.FoodItem, error)
		GetConsumptionPatterns(ctx context.Context, userID string) ([]*entities.ConsumptionPattern, error)
	}

	// UserSource resolves the owner of an inventory for notifications.
	// Satisfied by user.UserRepository.
	UserSource interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	// PredictionService materialises a user's inventory and consumption
	// patterns, runs the predictor over them and feeds the results to the
	// notification surface.
	PredictionService interface {
		GetPredictions(ctx context.Context, userID string) ([]domain.WastePrediction, error)
		SendExpiryDigest(ctx context.Context, userID string) error
	}

	predictionService struct {
		predictor Predictor
		inventory InventorySource
		users     UserSource
	}
)

func NewPredictionService(predictor Predictor, inventory InventorySource, users UserSource) PredictionService {
	return &predictionService{
		predictor: predictor,
		inventory: inventory,
		users:     users,
	}
}

func (s *predictionService) GetPredictions(ctx context.Context, userID string) ([]domain.WastePrediction, error) {
	items, err := s.inventory.GetOpenFoodItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	patterns, err := s.inventory.GetConsumptionPatterns(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.predictor.PredictAll(items, patterns), nil
}

// SendExpiryDigest mails the user a summary of their high-risk items.
// Nothing is sent when no item is at high risk.
func (s *predictionService) SendExpiryDigest(ctx context.Context, userID string) error {
	predictions, err := s.GetPredictions(ctx, userID)
	if err != nil {
		return err
	}

	var highRisk []domain.WastePrediction
	for _, prediction := range predictions {
		if prediction.WasteRisk == domain.WasteRiskHigh {
			highRisk = append(highRisk, prediction)
		}
	}
	if len(highRisk) == 0 {
		return nil
	}

	owner, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	subject := fmt.Sprintf("%d item(s) in your inventory need attention", len(highRisk))
	return mailing.SendMail(owner.Email, subject, buildDigestBody(owner.Name, highRisk))
}

func buildDigestBody(name string, predictions []domain.WastePrediction) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", name))
	b.WriteString("<p>These items are at high risk of going to waste:</p><ul>")
	for _, prediction := range predictions {
		b.WriteString(fmt.Sprintf(
			"<li><strong>%s</strong> - suggested action: %s. %s</li>",
			prediction.ItemName,
			prediction.SuggestedAction,
			prediction.Reasoning,
		))
	}
	b.WriteString("</ul><p>Open the app to act on them before it is too late.</p>")
	return b.String()
}
