package users

import "time"

// Default nutritional goals for new users.
const (
	DefaultCalorieGoal = 2000
	DefaultProteinGoal = 150
	DefaultCarbsGoal   = 200
	DefaultFatGoal     = 65
)

type User struct {
	ID          string    `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	CalorieGoal int       `json:"calorie_goal"`
	ProteinGoal int       `json:"protein_goal"`
	CarbsGoal   int       `json:"carbs_goal"`
	FatGoal     int       `json:"fat_goal"`
	CreatedAt   time.Time `json:"created_at"`
	LastActive  time.Time `json:"last_active"`
}

// Goals is a partial goal update; nil fields keep their current value.
type Goals struct {
	Calories *int
	Protein  *int
	Carbs    *int
	Fat      *int
}
