package repository

import (
	"context"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
)

type HistoryRepository interface {
	// ListByProfile returns the most recently played entries first.
	ListByProfile(ctx context.Context, accountID, profileID string, limit int) ([]domain.WatchHistoryEntry, error)
	// Upsert inserts or replaces progress for (accountID, profileID,
	// movieID), preserving StartedAt on replace.
	Upsert(ctx context.Context, entry *domain.WatchHistoryEntry) (*domain.WatchHistoryEntry, error)
}
