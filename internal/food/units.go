package food

import "strings"

// gramsPerUnit covers weight units, volume units (1ml treated as 1g) and
// rough portion units. Portion weights are typical averages, not exact.
var gramsPerUnit = map[string]float64{
	// weight
	"g":     1,
	"gram":  1,
	"kg":    1000,
	"oz":    28.35,
	"ounce": 28.35,
	"lb":    453.59,
	"pound": 453.59,

	// volume
	"ml":         1,
	"l":          1000,
	"liter":      1000,
	"cup":        240,
	"tbsp":       15,
	"tablespoon": 15,
	"tsp":        5,
	"teaspoon":   5,

	// portions
	"slice":   30,
	"piece":   50,
	"serving": 100,
}

// ToGrams converts an amount in the given unit to grams. Unit strings are
// case-insensitive and accept a single trailing "s" for plurals. Unknown
// units return false and the caller must fall back.
func ToGrams(amount float64, unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	factor, ok := gramsPerUnit[u]
	if !ok && strings.HasSuffix(u, "s") {
		factor, ok = gramsPerUnit[strings.TrimSuffix(u, "s")]
	}
	if !ok {
		return 0, false
	}
	return amount * factor, true
}
