package usecase_test

import (
	"context"
	"testing"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/usecase"
)

type fakeHistoryRepo struct {
	listByProfile func(ctx context.Context, accountID, profileID string, limit int) ([]domain.WatchHistoryEntry, error)
	upsert        func(ctx context.Context, entry *domain.WatchHistoryEntry) (*domain.WatchHistoryEntry, error)
}

func (r *fakeHistoryRepo) ListByProfile(ctx context.Context, accountID, profileID string, limit int) ([]domain.WatchHistoryEntry, error) {
	return r.listByProfile(ctx, accountID, profileID, limit)
}

func (r *fakeHistoryRepo) Upsert(ctx context.Context, entry *domain.WatchHistoryEntry) (*domain.WatchHistoryEntry, error) {
	return r.upsert(ctx, entry)
}

func echoUpsert(_ context.Context, entry *domain.WatchHistoryEntry) (*domain.WatchHistoryEntry, error) {
	return entry, nil
}

func TestRecordProgress_DerivesStatus(t *testing.T) {
	tests := []struct {
		name       string
		positionS  int
		durationS  int
		wantPct    float64
		wantStatus domain.WatchStatus
	}{
		{"partial", 1800, 7200, 25, domain.WatchStatusWatching},
		{"exactly at threshold", 85, 100, 85, domain.WatchStatusCompleted},
		{"just below threshold", 84, 100, 84, domain.WatchStatusWatching},
		{"finished", 7200, 7200, 100, domain.WatchStatusCompleted},
		{"zero duration", 100, 0, 0, domain.WatchStatusWatching},
	}

	u := usecase.NewHistoryUsecase(&fakeHistoryRepo{upsert: echoUpsert})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := u.RecordProgress(context.Background(), "acc-1", usecase.RecordProgressInput{
				ProfileID:       "p-1",
				MovieID:         603,
				MediaType:       "movie",
				LastPositionSec: tt.positionS,
				DurationSec:     tt.durationS,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if entry.WatchedPercentage != tt.wantPct {
				t.Errorf("percentage = %v, want %v", entry.WatchedPercentage, tt.wantPct)
			}
			if entry.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", entry.Status, tt.wantStatus)
			}
		})
	}
}

func TestList_CapsAtFifty(t *testing.T) {
	var gotLimit int
	repo := &fakeHistoryRepo{
		listByProfile: func(_ context.Context, _, _ string, limit int) ([]domain.WatchHistoryEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	if _, err := usecase.NewHistoryUsecase(repo).List(context.Background(), "acc-1", "p-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 50 {
		t.Errorf("limit = %d, want 50", gotLimit)
	}
}
