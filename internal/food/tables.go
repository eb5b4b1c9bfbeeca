package food

import (
	"sort"
	"strings"
)

type nutrition struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
}

// per100g holds foods with reliable per-100g figures, used by the
// weight-calculated tier.
var per100g = map[string]nutrition{
	"chicken breast": {165, 31, 0, 3.6},
	"ground beef":    {250, 26, 0, 17},
	"beef":           {250, 26, 0, 17},
	"salmon":         {206, 22, 0, 13},
	"turkey":         {189, 29, 0, 7},
	"pork":           {242, 27, 0, 14},
	"egg":            {143, 12.6, 0.7, 9.5},
	"milk":           {42, 3.4, 5, 1},
	"yogurt":         {61, 3.5, 4.7, 3.3},
	"cheese":         {402, 25, 1.3, 33},
	"bread":          {265, 9, 49, 3.2},
	"rice":           {130, 2.7, 28, 0.3},
	"pasta":          {131, 5, 25, 1.1},
	"oats":           {389, 16.9, 66, 6.9},
	"carrot":         {41, 0.9, 10, 0.2},
	"broccoli":       {34, 2.8, 7, 0.4},
	"potato":         {77, 2, 17, 0.1},
	"chocolate":      {546, 7.6, 57, 31},
	"chips":          {536, 7, 53, 34},
}

// perServing holds per-item/per-serving figures, used by the database tier.
// Values are the long-standing common-foods defaults.
var perServing = map[string]nutrition{
	// fruits
	"apple":  {95, 0.5, 25, 0.3},
	"banana": {105, 1.3, 27, 0.4},
	"orange": {62, 1.2, 15, 0.2},
	"grape":  {3, 0.1, 0.8, 0},

	// proteins
	"egg":            {72, 6.3, 0.4, 5},
	"beef patty":     {240, 21, 0, 17},
	"chicken breast": {165, 31, 0, 3.6},
	"salmon":         {206, 22, 0, 13},
	"beef":           {250, 26, 0, 17},

	// dairy
	"milk":   {42, 3.4, 5, 1},
	"yogurt": {61, 3.5, 4.7, 3.3},
	"cheese": {402, 25, 1.3, 33},

	// grains
	"bread": {265, 9, 49, 3.2},
	"rice":  {130, 2.7, 28, 0.3},
	"pasta": {131, 5, 25, 1.1},

	// vegetables
	"carrot":   {41, 0.9, 10, 0.2},
	"broccoli": {34, 2.8, 7, 0.4},
	"potato":   {77, 2, 17, 0.1},

	// snacks
	"chocolate": {546, 7.6, 57, 31},
	"chips":     {536, 7, 53, 34},
	"cookie":    {80, 1, 10, 4},
}

// Key slices are sorted once at load time by descending length so substring
// lookups prefer specific compounds ("beef patty" before "beef"). Map
// iteration order is never relied on.
var (
	per100gKeys    = sortedKeys(per100g)
	perServingKeys = sortedKeys(perServing)
	vocabulary     = buildVocabulary()
)

func sortedKeys(table map[string]nutrition) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// buildVocabulary merges both tables into one longest-first phrase list for
// the segmenter.
func buildVocabulary() []string {
	merged := make(map[string]nutrition, len(per100g)+len(perServing))
	for k, v := range per100g {
		merged[k] = v
	}
	for k, v := range perServing {
		merged[k] = v
	}
	return sortedKeys(merged)
}

func lookupPer100g(phrase string) (nutrition, bool) {
	lower := strings.ToLower(phrase)
	for _, key := range per100gKeys {
		if strings.Contains(lower, key) {
			return per100g[key], true
		}
	}
	return nutrition{}, false
}

func lookupPerServing(phrase string) (nutrition, bool) {
	lower := strings.ToLower(phrase)
	for _, key := range perServingKeys {
		if strings.Contains(lower, key) {
			return perServing[key], true
		}
	}
	return nutrition{}, false
}
