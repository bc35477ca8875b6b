package usecase

import (
	"context"
	"fmt"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/repository"
)

// SavedUsecase manages a profile's favorites list.
type SavedUsecase struct {
	saved repository.SavedRepository
}

func NewSavedUsecase(saved repository.SavedRepository) *SavedUsecase {
	return &SavedUsecase{saved: saved}
}

func (u *SavedUsecase) List(ctx context.Context, accountID, profileID string) ([]domain.SavedItem, error) {
	return u.saved.ListByProfile(ctx, accountID, profileID)
}

type SaveItemInput struct {
	ProfileID  string
	MovieID    int
	MediaType  string
	Title      string
	PosterPath string
}

func (u *SavedUsecase) Add(ctx context.Context, accountID string, in SaveItemInput) (*domain.SavedItem, error) {
	item, err := u.saved.Upsert(ctx, &domain.SavedItem{
		AccountID:  accountID,
		ProfileID:  in.ProfileID,
		MovieID:    in.MovieID,
		MediaType:  in.MediaType,
		Title:      in.Title,
		PosterPath: in.PosterPath,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert saved item: %w", err)
	}
	return item, nil
}

func (u *SavedUsecase) Remove(ctx context.Context, accountID, profileID string, movieID int) error {
	return u.saved.Delete(ctx, accountID, profileID, movieID)
}
