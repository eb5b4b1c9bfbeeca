package foodlog

import (
	"context"
	"errors"
	"time"
)

var ErrNoRecentLog = errors.New("no recent food log")

type Repository interface {
	Insert(ctx context.Context, entry *FoodLog) error
	// ListBetween returns logs in [from, to) ordered by logged_at ascending.
	ListBetween(ctx context.Context, telegramID int64, from, to time.Time) ([]*FoodLog, error)
	// ListSince returns logs from `since` onward, newest first.
	ListSince(ctx context.Context, telegramID int64, since time.Time) ([]*FoodLog, error)
	// MostRecentSince returns the newest log at or after `since`, or
	// ErrNoRecentLog.
	MostRecentSince(ctx context.Context, telegramID int64, since time.Time) (*FoodLog, error)
	Update(ctx context.Context, entry *FoodLog) error
	// DeleteBetween removes logs in [from, to) and reports how many.
	DeleteBetween(ctx context.Context, telegramID int64, from, to time.Time) (int64, error)
}
