package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/stazcp/macroTrackerTelegramBot/internal/food"
	"github.com/stazcp/macroTrackerTelegramBot/internal/foodlog"
	"github.com/stazcp/macroTrackerTelegramBot/internal/llm"
)

// Conservative standalone item used when the modification call fails.
const (
	fallbackCalories = 200
	fallbackProtein  = 10
	fallbackCarbs    = 20
	fallbackFat      = 8
)

const fallbackModificationNote = "Couldn't combine this with your previous entry, so it was logged separately with rough estimates."

// resolveModification asks the language service whether a follow-up message
// updates the most recent log entry or adds a separate item. Upstream
// failure degrades to a standalone low-confidence item rather than touching
// the existing record.
func (s *Service) resolveModification(ctx context.Context, message string, recent *foodlog.FoodLog, recentContext string) (string, food.Estimate) {
	prior, err := json.Marshal(map[string]any{
		"item":     recent.Food,
		"quantity": fmt.Sprintf("%g %s", recent.Quantity, recent.Unit),
		"calories": recent.Calories,
		"protein":  recent.Protein,
		"carbs":    recent.Carbs,
		"fat":      recent.Fat,
	})
	if err != nil {
		return llm.ActionAddSeparate, fallbackModificationEstimate(message)
	}

	raw, err := s.client.Complete(ctx, llm.BuildModificationPrompt(message, string(prior), recentContext))
	var result *llm.ModificationResult
	if err == nil {
		result, err = llm.DecodeModification(raw)
	}
	if err != nil {
		log.Printf("MODIFICATION_FALLBACK err=%v", err)
		return llm.ActionAddSeparate, fallbackModificationEstimate(message)
	}

	return result.Action, estimateFromCombined(result.CombinedFood)
}

func estimateFromCombined(combined llm.CombinedFood) food.Estimate {
	qty, unit := food.ParseQuantity(combined.Quantity)
	if unit == "" {
		unit = "serving"
	}
	return food.Estimate{
		Name:     combined.Item,
		Quantity: qty,
		Unit:     unit,
		Calories: combined.EstimatedCalories,
		Protein:  combined.Protein,
		Carbs:    combined.Carbs,
		Fat:      combined.Fat,
		Source:   food.SourceDatabase,
		Accuracy: food.AccuracyMedium,
		Note:     combined.Explanation,
	}
}

func fallbackModificationEstimate(message string) food.Estimate {
	return food.Estimate{
		Name:     message,
		Quantity: 1,
		Unit:     "serving",
		Calories: fallbackCalories,
		Protein:  fallbackProtein,
		Carbs:    fallbackCarbs,
		Fat:      fallbackFat,
		Source:   food.SourceEnhancedFallback,
		Accuracy: food.AccuracyLow,
		Note:     fallbackModificationNote,
	}
}
