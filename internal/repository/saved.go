package repository

import (
	"context"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
)

type SavedRepository interface {
	// ListByProfile returns saved items newest first.
	ListByProfile(ctx context.Context, accountID, profileID string) ([]domain.SavedItem, error)
	Upsert(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error)
	Delete(ctx context.Context, accountID, profileID string, movieID int) error
}
