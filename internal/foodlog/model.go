package foodlog

import "time"

type FoodLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TelegramID int64     `json:"telegram_id"`
	Food       string    `json:"food"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	Calories   int       `json:"calories"`
	Protein    float64   `json:"protein"`
	Carbs      float64   `json:"carbs"`
	Fat        float64   `json:"fat"`
	Source     string    `json:"source"`
	Accuracy   string    `json:"accuracy"`
	Notes      string    `json:"notes,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}

type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
