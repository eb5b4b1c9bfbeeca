package foodlog

import (
	"context"
	"errors"
	"time"

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

const logColumns = `
	id, user_id, telegram_id, food, quantity, unit,
	calories, protein, carbs, fat, source, accuracy, notes, logged_at
`

func (r *PostgresRepository) Insert(ctx context.Context, entry *FoodLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now()
	}

	query := `
		INSERT INTO food_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.TelegramID, entry.Food, entry.Quantity, entry.Unit,
		entry.Calories, entry.Protein, entry.Carbs, entry.Fat,
		entry.Source, entry.Accuracy, entry.Notes, entry.LoggedAt,
	)
	return err
}

func (r *PostgresRepository) ListBetween(ctx context.Context, telegramID int64, from, to time.Time) ([]*FoodLog, error) {
	query := `
		SELECT ` + logColumns + `
		FROM food_logs
		WHERE telegram_id = $1 AND logged_at >= $2 AND logged_at < $3
		ORDER BY logged_at ASC
	`
	rows, err := r.db.Query(ctx, query, telegramID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *PostgresRepository) ListSince(ctx context.Context, telegramID int64, since time.Time) ([]*FoodLog, error) {
	query := `
		SELECT ` + logColumns + `
		FROM food_logs
		WHERE telegram_id = $1 AND logged_at >= $2
		ORDER BY logged_at DESC
	`
	rows, err := r.db.Query(ctx, query, telegramID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *PostgresRepository) MostRecentSince(ctx context.Context, telegramID int64, since time.Time) (*FoodLog, error) {
	query := `
		SELECT ` + logColumns + `
		FROM food_logs
		WHERE telegram_id = $1 AND logged_at >= $2
		ORDER BY logged_at DESC
		LIMIT 1
	`
	row := r.db.QueryRow(ctx, query, telegramID, since)

	entry := &FoodLog{}
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.TelegramID, &entry.Food, &entry.Quantity, &entry.Unit,
		&entry.Calories, &entry.Protein, &entry.Carbs, &entry.Fat,
		&entry.Source, &entry.Accuracy, &entry.Notes, &entry.LoggedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRecentLog
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *PostgresRepository) Update(ctx context.Context, entry *FoodLog) error {
	query := `
		UPDATE food_logs
		SET food = $2, quantity = $3, unit = $4, calories = $5,
		    protein = $6, carbs = $7, fat = $8, source = $9,
		    accuracy = $10, notes = $11
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.Food, entry.Quantity, entry.Unit, entry.Calories,
		entry.Protein, entry.Carbs, entry.Fat, entry.Source,
		entry.Accuracy, entry.Notes,
	)
	return err
}

func (r *PostgresRepository) DeleteBetween(ctx context.Context, telegramID int64, from, to time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM food_logs
		WHERE telegram_id = $1 AND logged_at >= $2 AND logged_at < $3
	`, telegramID, from, to)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanLogs(rows pgx.Rows) ([]*FoodLog, error) {
	var logs []*FoodLog
	for rows.Next() {
		entry := &FoodLog{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.TelegramID, &entry.Food, &entry.Quantity, &entry.Unit,
			&entry.Calories, &entry.Protein, &entry.Carbs, &entry.Fat,
			&entry.Source, &entry.Accuracy, &entry.Notes, &entry.LoggedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
