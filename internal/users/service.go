package users

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate looks up a user by telegram id, creating them with default
// goals on first contact. Profile fields refresh on every call.
func (s *Service) GetOrCreate(ctx context.Context, telegramID int64, username, firstName, lastName string) (*User, error) {
	user, err := s.repo.FindByTelegramID(ctx, telegramID)
	if err == nil {
		_ = s.repo.Touch(ctx, telegramID)
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user = &User{
		TelegramID:  telegramID,
		Username:    username,
		FirstName:   firstName,
		LastName:    lastName,
		CalorieGoal: DefaultCalorieGoal,
		ProteinGoal: DefaultProteinGoal,
		CarbsGoal:   DefaultCarbsGoal,
		FatGoal:     DefaultFatGoal,
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return s.repo.FindByTelegramID(ctx, telegramID)
}

func (s *Service) Get(ctx context.Context, telegramID int64) (*User, error) {
	return s.repo.FindByTelegramID(ctx, telegramID)
}

// UpdateGoals applies a partial goals update, rejecting non-positive values.
func (s *Service) UpdateGoals(ctx context.Context, telegramID int64, goals Goals) (*User, error) {
	for _, v := range []*int{goals.Calories, goals.Protein, goals.Carbs, goals.Fat} {
		if v != nil && *v <= 0 {
			return nil, errors.New("goals must be positive")
		}
	}
	return s.repo.UpdateGoals(ctx, telegramID, goals)
}
