package llm

// Intent categories for a user message.
const (
	IntentLogFood      = "log_food"
	IntentModifyFood   = "modify_food"
	IntentFoodQuestion = "food_question"
	IntentOther        = "other"
)

// Modification subtypes reported by the upstream service.
const (
	ModificationAddition      = "addition"
	ModificationCorrection    = "correction"
	ModificationClarification = "clarification"
)

type IntentResult struct {
	Intent           string  `json:"intent"`
	Confidence       float64 `json:"confidence"`
	ModificationType string  `json:"modification_type,omitempty"`
}

type ParsedFood struct {
	Item               string  `json:"item"`
	Quantity           string  `json:"quantity"`
	EstimatedCalories  int     `json:"estimatedCalories"`
	Protein            float64 `json:"protein"`
	Carbs              float64 `json:"carbs"`
	Fat                float64 `json:"fat"`
	Source             string  `json:"source,omitempty"`
	Accuracy           string  `json:"accuracy,omitempty"`
	NeedsClarification bool    `json:"needsClarification,omitempty"`
}

type FoodParseResult struct {
	Foods            []ParsedFood `json:"foods"`
	TotalCalories    int          `json:"total_calories,omitempty"`
	ParsingNotes     string       `json:"parsing_notes,omitempty"`
	NeedsFollowUp    bool         `json:"needsFollowUp,omitempty"`
	FollowUpQuestion string       `json:"followUpQuestion,omitempty"`
}

type CombinedFood struct {
	Item              string  `json:"item"`
	Quantity          string  `json:"quantity"`
	EstimatedCalories int     `json:"estimatedCalories"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fat               float64 `json:"fat"`
	Explanation       string  `json:"explanation"`
}

// Modification actions.
const (
	ActionUpdate      = "update"
	ActionAddSeparate = "add_separate"
)

type ModificationResult struct {
	Action       string       `json:"action"`
	CombinedFood CombinedFood `json:"combined_food"`
}
