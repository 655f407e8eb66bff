package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthRepository struct {
	db *pgxpool.Pool
}

func NewHealthRepository(db *pgxpool.Pool) *HealthRepository {
	return &HealthRepository{
		db: db,
	}
}

func (r *HealthRepository) IsOK() (bool, error) {
	return true, nil
}

func (r *HealthRepository) CheckDB(ctx context.Context, ext RepoExtension) error {
	if ext == nil {
		ext = r.db
	}

	var one int
	if err := ext.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	return nil
}
