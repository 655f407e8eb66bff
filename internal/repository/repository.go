package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RepoExtension - то, на чём выполняется запрос: пул или открытая транзакция.
// Если передан nil, репозиторий выполняет запрос на собственном пуле.
// Ему удовлетворяют и *pgxpool.Pool, и pgx.Tx.
type RepoExtension interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
