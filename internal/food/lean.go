package food

import (
	"regexp"
	"strconv"
)

// LeanInfo carries a recognized meat lean-percentage mention.
type LeanInfo struct {
	Percentage int
	FatPer100g float64
	Span       string
}

// fatPer100gByLean maps advertised lean percentages to fat grams per 100g.
// Only these percentages are honored; anything else is treated as noise.
var fatPer100gByLean = map[int]float64{
	70: 30,
	73: 27,
	80: 20,
	85: 15,
	88: 12,
	90: 10,
	92: 8,
	93: 7,
	95: 5,
	96: 4,
	97: 3,
}

// Accepts "92% lean", "92 percent lean" and "92%lean".
var leanPattern = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:%|percent)\s*lean\b`)

// ResolveLean extracts a lean-percentage mention from text. A regex match
// alone is not enough: the percentage must exist in the lean table, so
// callers must check the returned bool rather than assume resolution.
func ResolveLean(text string) (LeanInfo, bool) {
	m := leanPattern.FindStringSubmatch(text)
	if m == nil {
		return LeanInfo{}, false
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return LeanInfo{}, false
	}
	fat, ok := fatPer100gByLean[pct]
	if !ok {
		return LeanInfo{}, false
	}
	return LeanInfo{Percentage: pct, FatPer100g: fat, Span: m[0]}, true
}
