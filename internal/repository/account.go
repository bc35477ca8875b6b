package repository

import (
	"context"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
)

type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// FindByVerificationToken matches only accounts whose verification
	// expiry is after now.
	FindByVerificationToken(ctx context.Context, token string, now time.Time) (*domain.Account, error)
	Create(ctx context.Context, acc *domain.Account) error
	// ReplacePendingSignup overwrites credentials, profiles and the
	// verification token of an unverified account.
	ReplacePendingSignup(ctx context.Context, acc *domain.Account) error
	// MarkVerified flips the activation flag and clears the
	// verification token and expiry in one statement.
	MarkVerified(ctx context.Context, id string) error
	UpdateProfiles(ctx context.Context, id string, profiles []domain.Profile) error
	// DeleteExpiredUnverified removes unverified accounts whose
	// verification expiry passed before cutoff. Returns rows removed.
	DeleteExpiredUnverified(ctx context.Context, cutoff time.Time) (int64, error)
}
