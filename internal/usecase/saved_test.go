package usecase_test

import (
	"context"
	"testing"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/usecase"
)

type fakeSavedRepo struct {
	listByProfileFn func(ctx context.Context, accountID, profileID string) ([]domain.SavedItem, error)
	upsertFn        func(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error)
	deleteFn        func(ctx context.Context, accountID, profileID string, movieID int) error
}

func (f *fakeSavedRepo) ListByProfile(ctx context.Context, accountID, profileID string) ([]domain.SavedItem, error) {
	return f.listByProfileFn(ctx, accountID, profileID)
}

func (f *fakeSavedRepo) Upsert(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
	return f.upsertFn(ctx, item)
}

func (f *fakeSavedRepo) Delete(ctx context.Context, accountID, profileID string, movieID int) error {
	return f.deleteFn(ctx, accountID, profileID, movieID)
}

func TestSavedAdd_StampsOwnership(t *testing.T) {
	var got *domain.SavedItem
	repo := &fakeSavedRepo{
		upsertFn: func(_ context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
			got = item
			return item, nil
		},
	}
	uc := usecase.NewSavedUsecase(repo)

	item, err := uc.Add(context.Background(), "acc-1", usecase.SaveItemInput{
		ProfileID: "p1",
		MovieID:   603,
		MediaType: "movie",
		Title:     "The Matrix",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got.AccountID != "acc-1" || got.ProfileID != "p1" {
		t.Errorf("ownership = %s/%s, want acc-1/p1", got.AccountID, got.ProfileID)
	}
	if item.MovieID != 603 || item.Title != "The Matrix" {
		t.Errorf("item = %+v", item)
	}
}

func TestSavedRemove_PassesKey(t *testing.T) {
	var gotAccount, gotProfile string
	var gotMovie int
	repo := &fakeSavedRepo{
		deleteFn: func(_ context.Context, accountID, profileID string, movieID int) error {
			gotAccount, gotProfile, gotMovie = accountID, profileID, movieID
			return nil
		},
	}
	uc := usecase.NewSavedUsecase(repo)

	if err := uc.Remove(context.Background(), "acc-1", "p1", 603); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if gotAccount != "acc-1" || gotProfile != "p1" || gotMovie != 603 {
		t.Errorf("key = %s/%s/%d", gotAccount, gotProfile, gotMovie)
	}
}
