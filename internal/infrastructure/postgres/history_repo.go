package postgres

import (
	"context"
	"fmt"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const historyColumns = `id, account_id, profile_id, movie_id, media_type,
	title, poster_path, last_position_sec, duration_sec,
	watched_percentage, status, started_at, last_played_at`

type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) ListByProfile(ctx context.Context, accountID, profileID string, limit int) ([]domain.WatchHistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+historyColumns+`
		FROM   watch_history
		WHERE  account_id = $1 AND profile_id = $2
		ORDER BY last_played_at DESC
		LIMIT  $3`,
		accountID, profileID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []domain.WatchHistoryEntry
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *HistoryRepository) Upsert(ctx context.Context, entry *domain.WatchHistoryEntry) (*domain.WatchHistoryEntry, error) {
	// started_at is set once on insert; conflicts replace progress only.
	row := r.pool.QueryRow(ctx, `
		INSERT INTO watch_history (
			account_id, profile_id, movie_id, media_type, title, poster_path,
			last_position_sec, duration_sec, watched_percentage, status,
			started_at, last_played_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (account_id, profile_id, movie_id) DO UPDATE
		SET title              = EXCLUDED.title,
		    poster_path        = EXCLUDED.poster_path,
		    last_position_sec  = EXCLUDED.last_position_sec,
		    duration_sec       = EXCLUDED.duration_sec,
		    watched_percentage = EXCLUDED.watched_percentage,
		    status             = EXCLUDED.status,
		    last_played_at     = NOW()
		RETURNING `+historyColumns,
		entry.AccountID,
		entry.ProfileID,
		entry.MovieID,
		entry.MediaType,
		entry.Title,
		entry.PosterPath,
		entry.LastPositionSec,
		entry.DurationSec,
		entry.WatchedPercentage,
		entry.Status,
	)
	return scanHistory(row)
}

func scanHistory(row pgx.Row) (*domain.WatchHistoryEntry, error) {
	var e domain.WatchHistoryEntry
	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.ProfileID,
		&e.MovieID,
		&e.MediaType,
		&e.Title,
		&e.PosterPath,
		&e.LastPositionSec,
		&e.DurationSec,
		&e.WatchedPercentage,
		&e.Status,
		&e.StartedAt,
		&e.LastPlayedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan history entry: %w", err)
	}
	return &e, nil
}
