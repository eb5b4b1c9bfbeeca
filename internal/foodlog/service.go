package foodlog

import (
	"context"
	"time"

	"github.com/stazcp/macroTrackerTelegramBot/internal/food"
	"github.com/stazcp/macroTrackerTelegramBot/internal/users"
)

// Follow-up messages can only modify a log this recent.
const modificationWindow = 5 * time.Minute

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// LogEstimate persists one estimate for a user.
func (s *Service) LogEstimate(ctx context.Context, user *users.User, est food.Estimate) (*FoodLog, error) {
	entry := &FoodLog{
		UserID:     user.ID,
		TelegramID: user.TelegramID,
		Food:       est.Name,
		Quantity:   est.Quantity,
		Unit:       est.Unit,
		Calories:   est.Calories,
		Protein:    est.Protein,
		Carbs:      est.Carbs,
		Fat:        est.Fat,
		Source:     est.Source,
		Accuracy:   est.Accuracy,
		Notes:      est.Note,
		LoggedAt:   s.now(),
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) TodayLogs(ctx context.Context, telegramID int64) ([]*FoodLog, error) {
	from, to := dayBounds(s.now())
	return s.repo.ListBetween(ctx, telegramID, from, to)
}

func (s *Service) History(ctx context.Context, telegramID int64, days int) ([]*FoodLog, error) {
	if days < 1 {
		days = 7
	}
	start, _ := dayBounds(s.now().AddDate(0, 0, -days+1))
	return s.repo.ListSince(ctx, telegramID, start)
}

// MostRecentLog returns the newest entry inside the modification window.
func (s *Service) MostRecentLog(ctx context.Context, telegramID int64) (*FoodLog, error) {
	return s.repo.MostRecentSince(ctx, telegramID, s.now().Add(-modificationWindow))
}

// ApplyEstimate overwrites an existing entry with new nutrition data.
func (s *Service) ApplyEstimate(ctx context.Context, entry *FoodLog, est food.Estimate) error {
	entry.Food = est.Name
	entry.Quantity = est.Quantity
	entry.Unit = est.Unit
	entry.Calories = est.Calories
	entry.Protein = est.Protein
	entry.Carbs = est.Carbs
	entry.Fat = est.Fat
	entry.Source = est.Source
	entry.Accuracy = est.Accuracy
	entry.Notes = est.Note
	return s.repo.Update(ctx, entry)
}

// ClearToday deletes today's entries and reports how many were removed.
func (s *Service) ClearToday(ctx context.Context, telegramID int64) (int64, error) {
	from, to := dayBounds(s.now())
	return s.repo.DeleteBetween(ctx, telegramID, from, to)
}

func CalculateTotals(logs []*FoodLog) Totals {
	var t Totals
	for _, l := range logs {
		t.Calories += l.Calories
		t.Protein += l.Protein
		t.Carbs += l.Carbs
		t.Fat += l.Fat
	}
	return t
}

func dayBounds(at time.Time) (time.Time, time.Time) {
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return start, start.AddDate(0, 0, 1)
}
