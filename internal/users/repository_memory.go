package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.Mutex
	users map[int64]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users: make(map[int64]*User),
	}
}

func (r *InMemoryRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[telegramID]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	user.LastActive = time.Now()

	copied := *user
	r.users[user.TelegramID] = &copied
	return nil
}

func (r *InMemoryRepository) UpdateGoals(ctx context.Context, telegramID int64, goals Goals) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[telegramID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if goals.Calories != nil {
		user.CalorieGoal = *goals.Calories
	}
	if goals.Protein != nil {
		user.ProteinGoal = *goals.Protein
	}
	if goals.Carbs != nil {
		user.CarbsGoal = *goals.Carbs
	}
	if goals.Fat != nil {
		user.FatGoal = *goals.Fat
	}
	copied := *user
	return &copied, nil
}

func (r *InMemoryRepository) Touch(ctx context.Context, telegramID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.users[telegramID]; ok {
		user.LastActive = time.Now()
	}
	return nil
}
