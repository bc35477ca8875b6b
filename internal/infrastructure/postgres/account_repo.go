package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `id, email, password_hash, email_verified,
	verification_token, verification_expiry, profiles, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) FindByVerificationToken(ctx context.Context, token string, now time.Time) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE verification_token = $1 AND verification_expiry > $2`,
		token, now)
	return scanAccount(row)
}

func (r *AccountRepository) Create(ctx context.Context, acc *domain.Account) error {
	profiles, err := json.Marshal(acc.Profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	query := `
		INSERT INTO accounts (
			email, password_hash, email_verified,
			verification_token, verification_expiry, profiles
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		acc.Email,
		acc.PasswordHash,
		acc.EmailVerified,
		acc.VerificationToken,
		acc.VerificationExpiry,
		profiles,
	).Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// ReplacePendingSignup overwrites an unverified account in place. The
// email_verified guard keeps a racing verification from being undone.
func (r *AccountRepository) ReplacePendingSignup(ctx context.Context, acc *domain.Account) error {
	profiles, err := json.Marshal(acc.Profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET    password_hash       = $2,
		       verification_token  = $3,
		       verification_expiry = $4,
		       profiles            = $5,
		       updated_at          = NOW()
		WHERE  email = $1 AND email_verified = FALSE`,
		acc.Email,
		acc.PasswordHash,
		acc.VerificationToken,
		acc.VerificationExpiry,
		profiles,
	)
	if err != nil {
		return fmt.Errorf("replace pending signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) MarkVerified(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET    email_verified      = TRUE,
		       verification_token  = NULL,
		       verification_expiry = NULL,
		       updated_at          = NOW()
		WHERE  id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdateProfiles(ctx context.Context, id string, profiles []domain.Profile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET profiles = $2, updated_at = NOW() WHERE id = $1`,
		id, data)
	if err != nil {
		return fmt.Errorf("update profiles: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) DeleteExpiredUnverified(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM accounts
		WHERE email_verified = FALSE AND verification_expiry < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired unverified: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		acc      domain.Account
		profiles []byte
	)
	err := row.Scan(
		&acc.ID,
		&acc.Email,
		&acc.PasswordHash,
		&acc.EmailVerified,
		&acc.VerificationToken,
		&acc.VerificationExpiry,
		&profiles,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if err := json.Unmarshal(profiles, &acc.Profiles); err != nil {
		return nil, fmt.Errorf("unmarshal profiles: %w", err)
	}
	return &acc, nil
}
