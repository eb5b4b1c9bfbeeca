package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	query := `
		SELECT id, telegram_id, username, first_name, last_name,
		       calorie_goal, protein_goal, carbs_goal, fat_goal,
		       created_at, last_active
		FROM users WHERE telegram_id = $1
	`
	row := r.db.QueryRow(ctx, query, telegramID)

	user := &User{}
	err := row.Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.LastName,
		&user.CalorieGoal, &user.ProteinGoal, &user.CarbsGoal, &user.FatGoal,
		&user.CreatedAt, &user.LastActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) Save(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, telegram_id, username, first_name, last_name,
		                   calorie_goal, protein_goal, carbs_goal, fat_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    last_active = CURRENT_TIMESTAMP
	`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.TelegramID, user.Username, user.FirstName, user.LastName,
		user.CalorieGoal, user.ProteinGoal, user.CarbsGoal, user.FatGoal,
	)
	return err
}

func (r *PostgresRepository) UpdateGoals(ctx context.Context, telegramID int64, goals Goals) (*User, error) {
	query := `
		UPDATE users
		SET calorie_goal = COALESCE($2, calorie_goal),
		    protein_goal = COALESCE($3, protein_goal),
		    carbs_goal   = COALESCE($4, carbs_goal),
		    fat_goal     = COALESCE($5, fat_goal)
		WHERE telegram_id = $1
	`
	tag, err := r.db.Exec(ctx, query, telegramID, goals.Calories, goals.Protein, goals.Carbs, goals.Fat)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByTelegramID(ctx, telegramID)
}

func (r *PostgresRepository) Touch(ctx context.Context, telegramID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET last_active = CURRENT_TIMESTAMP WHERE telegram_id = $1
	`, telegramID)
	return err
}
