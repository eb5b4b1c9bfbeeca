package foodlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu   sync.Mutex
	logs map[int64][]*FoodLog
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		logs: make(map[int64][]*FoodLog),
	}
}

func (r *InMemoryRepository) Insert(ctx context.Context, entry *FoodLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}

	copied := *entry
	r.logs[entry.TelegramID] = append(r.logs[entry.TelegramID], &copied)
	return nil
}

func (r *InMemoryRepository) ListBetween(ctx context.Context, telegramID int64, from, to time.Time) ([]*FoodLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*FoodLog
	for _, l := range r.logs[telegramID] {
		if !l.LoggedAt.Before(from) && l.LoggedAt.Before(to) {
			copied := *l
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.Before(out[j].LoggedAt) })
	return out, nil
}

func (r *InMemoryRepository) ListSince(ctx context.Context, telegramID int64, since time.Time) ([]*FoodLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*FoodLog
	for _, l := range r.logs[telegramID] {
		if !l.LoggedAt.Before(since) {
			copied := *l
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	return out, nil
}

func (r *InMemoryRepository) MostRecentSince(ctx context.Context, telegramID int64, since time.Time) (*FoodLog, error) {
	recent, err := r.ListSince(ctx, telegramID, since)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, ErrNoRecentLog
	}
	return recent[0], nil
}

func (r *InMemoryRepository) Update(ctx context.Context, entry *FoodLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, l := range r.logs[entry.TelegramID] {
		if l.ID == entry.ID {
			copied := *entry
			copied.LoggedAt = l.LoggedAt
			r.logs[entry.TelegramID][i] = &copied
			return nil
		}
	}
	return ErrNoRecentLog
}

func (r *InMemoryRepository) DeleteBetween(ctx context.Context, telegramID int64, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*FoodLog
	var deleted int64
	for _, l := range r.logs[telegramID] {
		if !l.LoggedAt.Before(from) && l.LoggedAt.Before(to) {
			deleted++
			continue
		}
		kept = append(kept, l)
	}
	r.logs[telegramID] = kept
	return deleted, nil
}
