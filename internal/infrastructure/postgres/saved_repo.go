package postgres

import (
	"context"
	"fmt"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const savedColumns = `id, account_id, profile_id, movie_id, media_type,
	title, poster_path, added_at`

type SavedRepository struct {
	pool *pgxpool.Pool
}

func NewSavedRepository(pool *pgxpool.Pool) *SavedRepository {
	return &SavedRepository{pool: pool}
}

func (r *SavedRepository) ListByProfile(ctx context.Context, accountID, profileID string) ([]domain.SavedItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+savedColumns+`
		FROM   saved_list
		WHERE  account_id = $1 AND profile_id = $2
		ORDER BY added_at DESC`,
		accountID, profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved: %w", err)
	}
	defer rows.Close()

	var items []domain.SavedItem
	for rows.Next() {
		item, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *SavedRepository) Upsert(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO saved_list (
			account_id, profile_id, movie_id, media_type, title, poster_path, added_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (account_id, profile_id, movie_id) DO UPDATE
		SET title       = EXCLUDED.title,
		    poster_path = EXCLUDED.poster_path,
		    added_at    = NOW()
		RETURNING `+savedColumns,
		item.AccountID,
		item.ProfileID,
		item.MovieID,
		item.MediaType,
		item.Title,
		item.PosterPath,
	)
	return scanSaved(row)
}

func (r *SavedRepository) Delete(ctx context.Context, accountID, profileID string, movieID int) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM saved_list
		WHERE account_id = $1 AND profile_id = $2 AND movie_id = $3`,
		accountID, profileID, movieID,
	)
	if err != nil {
		return fmt.Errorf("delete saved: %w", err)
	}
	return nil
}

func scanSaved(row pgx.Row) (*domain.SavedItem, error) {
	var item domain.SavedItem
	err := row.Scan(
		&item.ID,
		&item.AccountID,
		&item.ProfileID,
		&item.MovieID,
		&item.MediaType,
		&item.Title,
		&item.PosterPath,
		&item.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan saved item: %w", err)
	}
	return &item, nil
}
