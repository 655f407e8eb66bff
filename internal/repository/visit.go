package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"corpsite-back/internal/model"
)

type VisitRepository struct {
	db *pgxpool.Pool
}

func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

func (r *VisitRepository) Pool() *pgxpool.Pool {
	return r.db
}

func (r *VisitRepository) InsertVisit(ctx context.Context, ext RepoExtension, visit *model.Visit) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO stats.visits (id, path, ip, user_agent, referer, country_code, asn, is_bot, visited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := ext.Exec(ctx, query,
		visit.ID,
		visit.Path,
		visit.IP,
		visit.UserAgent,
		visit.Referer,
		visit.CountryCode,
		visit.ASN,
		visit.IsBot,
		visit.VisitedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	return nil
}

// BumpDayStats инкрементирует суточный агрегат, заводя строку дня при первом визите.
func (r *VisitRepository) BumpDayStats(ctx context.Context, ext RepoExtension, day time.Time, isBot bool) error {
	if ext == nil {
		ext = r.db
	}

	botInc := 0
	if isBot {
		botInc = 1
	}

	const query = `
		INSERT INTO stats.visit_stats (day, total, bots)
		VALUES ($1, 1, $2)
		ON CONFLICT (day)
		DO UPDATE SET total = stats.visit_stats.total + 1,
		              bots  = stats.visit_stats.bots + $2
	`

	if _, err := ext.Exec(ctx, query, day, botInc); err != nil {
		return fmt.Errorf("failed to bump day stats: %w", err)
	}

	return nil
}

func (r *VisitRepository) SelectDayStats(ctx context.Context, ext RepoExtension, from, to time.Time) ([]model.VisitDayStats, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT s.day,
		       s.total,
		       s.bots,
		       COALESCE(u.unique_ips, 0)
		FROM stats.visit_stats s
		LEFT JOIN (
			SELECT visited_at::date AS day, COUNT(DISTINCT ip) AS unique_ips
			FROM stats.visits
			WHERE visited_at >= $1 AND visited_at < $2 + INTERVAL '1 day'
			GROUP BY visited_at::date
		) u ON u.day = s.day
		WHERE s.day BETWEEN $1 AND $2
		ORDER BY s.day
	`

	rows, err := ext.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select day stats: %w", err)
	}
	defer rows.Close()

	var days []model.VisitDayStats

	for rows.Next() {
		var d model.VisitDayStats

		if err := rows.Scan(&d.Day, &d.Total, &d.Bots, &d.UniqueIPs); err != nil {
			return nil, fmt.Errorf("failed to scan day stats: %w", err)
		}

		days = append(days, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day stats rows: %w", err)
	}

	return days, nil
}

func (r *VisitRepository) SelectSnapshot(ctx context.Context, ext RepoExtension) (*model.VisitSnapshot, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT COALESCE((SELECT total FROM stats.visit_stats WHERE day = CURRENT_DATE), 0),
		       COALESCE((SELECT bots FROM stats.visit_stats WHERE day = CURRENT_DATE), 0),
		       COALESCE((SELECT SUM(total) FROM stats.visit_stats), 0)
	`

	var snap model.VisitSnapshot

	if err := ext.QueryRow(ctx, query).Scan(&snap.Today, &snap.Bots, &snap.Total); err != nil {
		return nil, fmt.Errorf("failed to select visit snapshot: %w", err)
	}

	snap.UpdatedAt = time.Now()

	return &snap, nil
}
