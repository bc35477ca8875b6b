package usecase

import (
	"context"
	"fmt"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/repository"
)

const historyListLimit = 50

// HistoryUsecase records and lists playback progress per profile.
type HistoryUsecase struct {
	history repository.HistoryRepository
}

func NewHistoryUsecase(history repository.HistoryRepository) *HistoryUsecase {
	return &HistoryUsecase{history: history}
}

func (u *HistoryUsecase) List(ctx context.Context, accountID, profileID string) ([]domain.WatchHistoryEntry, error) {
	return u.history.ListByProfile(ctx, accountID, profileID, historyListLimit)
}

type RecordProgressInput struct {
	ProfileID       string
	MovieID         int
	MediaType       string
	Title           string
	PosterPath      string
	LastPositionSec int
	DurationSec     int
}

// RecordProgress upserts a history entry, deriving watched percentage
// and status from the reported position.
func (u *HistoryUsecase) RecordProgress(ctx context.Context, accountID string, in RecordProgressInput) (*domain.WatchHistoryEntry, error) {
	var pct float64
	if in.DurationSec > 0 {
		pct = float64(in.LastPositionSec) / float64(in.DurationSec) * 100
	}

	status := domain.WatchStatusWatching
	if pct >= domain.CompletedThreshold {
		status = domain.WatchStatusCompleted
	}

	entry := &domain.WatchHistoryEntry{
		AccountID:         accountID,
		ProfileID:         in.ProfileID,
		MovieID:           in.MovieID,
		MediaType:         in.MediaType,
		Title:             in.Title,
		PosterPath:        in.PosterPath,
		LastPositionSec:   in.LastPositionSec,
		DurationSec:       in.DurationSec,
		WatchedPercentage: pct,
		Status:            status,
	}

	saved, err := u.history.Upsert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("upsert history: %w", err)
	}
	return saved, nil
}
