package food

import (
	"regexp"
	"strconv"
)

// Measurement is an explicit weight/volume mention, already normalized to
// grams. Derived per parse call, never persisted.
type Measurement struct {
	Amount float64
	Unit   string
	Grams  float64
	Span   string
}

// measurementUnits is scanned in declaration order. The first unit whose
// pattern matches wins, even when another measurement appears earlier in
// the text ("5oz patty with 100g rice" resolves to the 5oz). That keeps
// the historical behavior; per-span attribution is a known gap.
var measurementUnits = []string{
	"oz", "ounce", "gram", "g", "kg", "lb", "pound",
	"ml", "liter", "l", "cup", "tablespoon", "tbsp", "teaspoon", "tsp",
	"slice", "piece", "serving",
}

var measurementPatterns = func() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(measurementUnits))
	for i, u := range measurementUnits {
		patterns[i] = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(` + u + `)s?\b`)
	}
	return patterns
}()

// ExtractMeasurement finds a <number><unit> token in text and converts it
// via ToGrams. Returns false when nothing matches or the unit cannot be
// converted.
func ExtractMeasurement(text string) (Measurement, bool) {
	for i, re := range measurementPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil || amount <= 0 {
			continue
		}
		grams, ok := ToGrams(amount, m[2])
		if !ok {
			return Measurement{}, false
		}
		return Measurement{
			Amount: amount,
			Unit:   measurementUnits[i],
			Grams:  grams,
			Span:   m[0],
		}, true
	}
	return Measurement{}, false
}
