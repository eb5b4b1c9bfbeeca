package users

import (
	"context"
	"errors"
	"testing"
)

func TestGetOrCreateNewUser(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	user, err := svc.GetOrCreate(context.Background(), 42, "jdoe", "Jane", "Doe")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID == "" {
		t.Error("expected an assigned id")
	}
	if user.CalorieGoal != DefaultCalorieGoal || user.ProteinGoal != DefaultProteinGoal {
		t.Errorf("expected default goals, got %+v", user)
	}
	if user.Username != "jdoe" || user.FirstName != "Jane" {
		t.Errorf("got %+v", user)
	}
}

func TestGetOrCreateExistingUser(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	first, err := svc.GetOrCreate(context.Background(), 42, "jdoe", "Jane", "Doe")
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.GetOrCreate(context.Background(), 42, "jdoe", "Jane", "Doe")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the same user, got %s and %s", first.ID, second.ID)
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc := NewService(NewInMemoryRepository())

	_, err := svc.Get(context.Background(), 99)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateGoalsPartial(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	if _, err := svc.GetOrCreate(context.Background(), 42, "jdoe", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}

	calories := 1800
	user, err := svc.UpdateGoals(context.Background(), 42, Goals{Calories: &calories})
	if err != nil {
		t.Fatal(err)
	}
	if user.CalorieGoal != 1800 {
		t.Errorf("expected 1800, got %d", user.CalorieGoal)
	}
	if user.ProteinGoal != DefaultProteinGoal || user.FatGoal != DefaultFatGoal {
		t.Errorf("untouched goals must keep their values: %+v", user)
	}
}

func TestUpdateGoalsRejectsNonPositive(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	if _, err := svc.GetOrCreate(context.Background(), 42, "jdoe", "Jane", "Doe"); err != nil {
		t.Fatal(err)
	}

	zero := 0
	if _, err := svc.UpdateGoals(context.Background(), 42, Goals{Protein: &zero}); err == nil {
		t.Error("expected non-positive goal to be rejected")
	}
}
