package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON isolates the first balanced {...} span in raw model output.
// Models wrap replies in code fences or append trailing prose often enough
// that naive whole-string unmarshalling is not an option. String literals
// and escapes inside the object are respected while counting braces.
func ExtractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON object in output", ErrUpstream)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("%w: unbalanced JSON object in output", ErrUpstream)
}

// DecodeIntent parses an intent-schema reply. Anything not strictly
// conforming is an upstream error so the caller falls back.
func DecodeIntent(raw string) (*IntentResult, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var res IntentResult
	if err := json.Unmarshal([]byte(span), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch res.Intent {
	case IntentLogFood, IntentModifyFood, IntentFoodQuestion, IntentOther:
	default:
		return nil, fmt.Errorf("%w: unknown intent %q", ErrUpstream, res.Intent)
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", ErrUpstream, res.Confidence)
	}
	switch res.ModificationType {
	case "", ModificationAddition, ModificationCorrection, ModificationClarification:
	default:
		return nil, fmt.Errorf("%w: unknown modification type %q", ErrUpstream, res.ModificationType)
	}

	return &res, nil
}

// DecodeFoodParse parses a food-parse-schema reply.
func DecodeFoodParse(raw string) (*FoodParseResult, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var res FoodParseResult
	if err := json.Unmarshal([]byte(span), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(res.Foods) == 0 {
		return nil, fmt.Errorf("%w: food parse reply without foods", ErrUpstream)
	}
	for _, f := range res.Foods {
		if f.Item == "" {
			return nil, fmt.Errorf("%w: food entry without item", ErrUpstream)
		}
		if f.EstimatedCalories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			return nil, fmt.Errorf("%w: negative nutrition for %q", ErrUpstream, f.Item)
		}
	}

	return &res, nil
}

// DecodeModification parses a modification-schema reply.
func DecodeModification(raw string) (*ModificationResult, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var res ModificationResult
	if err := json.Unmarshal([]byte(span), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if res.Action != ActionUpdate && res.Action != ActionAddSeparate {
		return nil, fmt.Errorf("%w: unknown modification action %q", ErrUpstream, res.Action)
	}
	if res.CombinedFood.Item == "" {
		return nil, fmt.Errorf("%w: modification reply without combined food", ErrUpstream)
	}

	return &res, nil
}
