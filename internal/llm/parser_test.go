package llm

import (
	"errors"
	"testing"
)

func TestExtractJSONCodeFence(t *testing.T) {
	raw := "```json\n{\"intent\":\"log_food\",\"confidence\":0.9}\n```\nHope that helps!"

	span, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if span != `{"intent":"log_food","confidence":0.9}` {
		t.Errorf("got %q", span)
	}
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	raw := `Here you go: {"note":"a } inside","nested":{"x":1}} trailing prose`

	span, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if span != `{"note":"a } inside","nested":{"x":1}}` {
		t.Errorf("got %q", span)
	}
}

func TestExtractJSONEscapedQuotes(t *testing.T) {
	raw := `{"note":"say \" } ok"}`

	span, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if span != raw {
		t.Errorf("got %q", span)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("Sorry, I can't answer that.")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestExtractJSONUnbalanced(t *testing.T) {
	_, err := ExtractJSON(`{"foods": [{"item": "egg"`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDecodeIntentValid(t *testing.T) {
	res, err := DecodeIntent(`{"intent":"modify_food","confidence":0.8,"modification_type":"addition"}`)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != IntentModifyFood || res.Confidence != 0.8 || res.ModificationType != ModificationAddition {
		t.Errorf("got %+v", res)
	}
}

func TestDecodeIntentRejectsUnknownIntent(t *testing.T) {
	_, err := DecodeIntent(`{"intent":"order_pizza","confidence":0.9}`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDecodeIntentRejectsBadConfidence(t *testing.T) {
	_, err := DecodeIntent(`{"intent":"log_food","confidence":1.5}`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDecodeFoodParseValid(t *testing.T) {
	raw := `{
		"foods": [
			{"item": "grilled chicken", "quantity": "1 breast", "estimatedCalories": 165, "protein": 31, "carbs": 0, "fat": 3.6, "source": "database", "accuracy": "high"},
			{"item": "rice", "quantity": "1 cup", "estimatedCalories": 206, "protein": 4.3, "carbs": 45, "fat": 0.4}
		],
		"total_calories": 371
	}`

	res, err := DecodeFoodParse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Foods) != 2 {
		t.Fatalf("expected 2 foods, got %d", len(res.Foods))
	}
	if res.Foods[0].Item != "grilled chicken" || res.Foods[0].EstimatedCalories != 165 {
		t.Errorf("got %+v", res.Foods[0])
	}
	if res.TotalCalories != 371 {
		t.Errorf("expected total 371, got %d", res.TotalCalories)
	}
}

func TestDecodeFoodParseRejectsEmptyFoods(t *testing.T) {
	_, err := DecodeFoodParse(`{"foods": []}`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDecodeFoodParseRejectsNegativeValues(t *testing.T) {
	_, err := DecodeFoodParse(`{"foods":[{"item":"egg","estimatedCalories":-5}]}`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDecodeModificationValid(t *testing.T) {
	raw := `{"action":"update","combined_food":{"item":"coffee with milk","quantity":"1 cup","estimatedCalories":50,"protein":2,"carbs":4,"fat":2,"explanation":"added milk to the coffee"}}`

	res, err := DecodeModification(raw)
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != ActionUpdate {
		t.Errorf("expected update, got %q", res.Action)
	}
	if res.CombinedFood.Item != "coffee with milk" || res.CombinedFood.EstimatedCalories != 50 {
		t.Errorf("got %+v", res.CombinedFood)
	}
}

func TestDecodeModificationRejectsUnknownAction(t *testing.T) {
	_, err := DecodeModification(`{"action":"merge","combined_food":{"item":"coffee"}}`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestDecodeModificationRequiresCombinedFood(t *testing.T) {
	_, err := DecodeModification(`{"action":"update","combined_food":{"item":""}}`)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}
