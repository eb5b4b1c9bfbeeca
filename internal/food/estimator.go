package food

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Generic per-unit defaults for foods outside both tables.
const (
	defaultCalories = 100
	defaultProtein  = 5
	defaultCarbs    = 15
	defaultFat      = 2
)

const estimateNote = "Estimated values. For more accurate tracking, try being more specific with food names."

var leadingQuantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.+)$`)

// ParseQuantity splits a leading numeric quantity off a food phrase.
// Phrases without one default to quantity 1.
func ParseQuantity(text string) (float64, string) {
	trimmed := strings.TrimSpace(text)
	m := leadingQuantityPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 1, trimmed
	}
	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil || qty <= 0 {
		return 1, trimmed
	}
	return qty, strings.TrimSpace(m[2])
}

// EstimateItem resolves one cleaned food phrase to calories and macros.
//
// Tiers, first applicable wins:
//  1. weight-calculated: an explicit measurement plus a per-100g table hit,
//     scaled by grams/100. Lean info overrides fat and recomputes calories
//     from macros, since leaner meat means less fat than the table assumes.
//  2. database: per-serving table hit scaled by quantity and size modifier.
//  3. generic defaults with an advisory note.
func EstimateItem(phrase string, quantity float64, mod SizeModifier, meas *Measurement, lean *LeanInfo) Estimate {
	if quantity <= 0 {
		quantity = 1
	}
	multiplier := mod.Multiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	name := strings.TrimSpace(phrase)
	if name == "" {
		name = "unknown food"
	}

	if meas != nil {
		if n, ok := lookupPer100g(name); ok {
			scale := meas.Grams / 100
			protein := round1(n.Protein * scale)
			carbs := round1(n.Carbs * scale)
			fat := round1(n.Fat * scale)
			calories := roundInt(n.Calories * scale)
			if lean != nil {
				fat = round1(lean.FatPer100g / 100 * meas.Grams)
				calories = caloriesFromMacros(protein, carbs, fat)
			}
			return Estimate{
				Name:     name,
				Quantity: meas.Amount,
				Unit:     meas.Unit,
				Calories: calories,
				Protein:  protein,
				Carbs:    carbs,
				Fat:      fat,
				Source:   SourceWeightCalculated,
				Accuracy: AccuracyHigh,
			}
		}
	}

	if n, ok := lookupPerServing(name); ok {
		scale := quantity * multiplier
		return Estimate{
			Name:     name,
			Quantity: quantity,
			Unit:     "serving",
			Calories: roundInt(n.Calories * scale),
			Protein:  round1(n.Protein * scale),
			Carbs:    round1(n.Carbs * scale),
			Fat:      round1(n.Fat * scale),
			Source:   SourceDatabase,
			Accuracy: AccuracyMedium,
		}
	}

	scale := quantity * multiplier
	return Estimate{
		Name:     name,
		Quantity: quantity,
		Unit:     "serving",
		Calories: roundInt(defaultCalories * scale),
		Protein:  round1(defaultProtein * scale),
		Carbs:    round1(defaultCarbs * scale),
		Fat:      round1(defaultFat * scale),
		Source:   SourceEstimated,
		Accuracy: AccuracyLow,
		Note:     estimateNote,
	}
}

// EstimateMessage treats a whole message as a single food item, running the
// measurement, lean and size-modifier extractors over it first.
func EstimateMessage(text string) Estimate {
	var meas *Measurement
	var lean *LeanInfo

	remainder := text
	if m, ok := ExtractMeasurement(remainder); ok {
		meas = &m
		remainder = removeSpan(remainder, m.Span)
	}
	if l, ok := ResolveLean(remainder); ok {
		lean = &l
		remainder = removeSpan(remainder, l.Span)
	}
	mod, remainder := ResolveSizeModifier(remainder)
	qty, phrase := ParseQuantity(remainder)

	return EstimateItem(phrase, qty, mod, meas, lean)
}

func removeSpan(text, span string) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(span))
	if idx < 0 {
		return text
	}
	cleaned := text[:idx] + " " + text[idx+len(span):]
	return strings.Join(strings.Fields(cleaned), " ")
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func roundInt(x float64) int {
	return int(math.Round(x))
}

func caloriesFromMacros(protein, carbs, fat float64) int {
	return roundInt(protein*4 + carbs*4 + fat*9)
}
