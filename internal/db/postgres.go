package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			telegram_id BIGINT UNIQUE NOT NULL,
			username VARCHAR(255) NOT NULL DEFAULT '',
			first_name VARCHAR(255) NOT NULL DEFAULT '',
			last_name VARCHAR(255) NOT NULL DEFAULT '',
			calorie_goal INT NOT NULL DEFAULT 2000,
			protein_goal INT NOT NULL DEFAULT 150,
			carbs_goal INT NOT NULL DEFAULT 200,
			fat_goal INT NOT NULL DEFAULT 65,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_active TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, usersSQL); err != nil {
		return err
	}

	foodLogsSQL := `
		CREATE TABLE IF NOT EXISTS food_logs (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			telegram_id BIGINT NOT NULL,
			food TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL DEFAULT 1,
			unit VARCHAR(50) NOT NULL DEFAULT 'serving',
			calories INT NOT NULL DEFAULT 0,
			protein DOUBLE PRECISION NOT NULL DEFAULT 0,
			carbs DOUBLE PRECISION NOT NULL DEFAULT 0,
			fat DOUBLE PRECISION NOT NULL DEFAULT 0,
			source VARCHAR(50) NOT NULL DEFAULT 'estimated',
			accuracy VARCHAR(20) NOT NULL DEFAULT 'low',
			notes TEXT NOT NULL DEFAULT '',
			logged_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, foodLogsSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_food_logs_user_time
		ON food_logs (telegram_id, logged_at)
	`
	if _, err := pool.Exec(ctx, indexSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
