package users

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	FindByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	Save(ctx context.Context, user *User) error
	UpdateGoals(ctx context.Context, telegramID int64, goals Goals) (*User, error)
	Touch(ctx context.Context, telegramID int64) error
}
