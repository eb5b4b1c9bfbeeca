package food

// Source tiers, ordered from most to least reliable.
const (
	SourceWeightCalculated = "weight_calculated"
	SourceDatabase         = "database"
	SourceEnhancedFallback = "enhanced_fallback"
	SourceEstimated        = "estimated"
)

const (
	AccuracyHigh   = "high"
	AccuracyMedium = "medium"
	AccuracyLow    = "low"
)

// Estimate is the result of running one food phrase through the estimator.
type Estimate struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Source   string  `json:"source"`
	Accuracy string  `json:"accuracy"`
	Note     string  `json:"note,omitempty"`
}
