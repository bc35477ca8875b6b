package usecase

import (
	"context"
	"fmt"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/repository"
	"github.com/google/uuid"
)

// ProfileUsecase manages the profiles embedded in an account. At most
// domain.MaxProfiles per account; the last profile cannot be deleted.
type ProfileUsecase struct {
	accounts repository.AccountRepository
}

func NewProfileUsecase(accounts repository.AccountRepository) *ProfileUsecase {
	return &ProfileUsecase{accounts: accounts}
}

func (u *ProfileUsecase) Create(ctx context.Context, accountID, name, avatarURL string) (*domain.Profile, error) {
	acc, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if len(acc.Profiles) >= domain.MaxProfiles {
		return nil, domain.ErrProfileLimit
	}

	profile := domain.Profile{
		ID:          uuid.NewString(),
		Name:        name,
		AvatarURL:   avatarURL,
		Preferences: map[string]any{},
	}
	acc.Profiles = append(acc.Profiles, profile)

	if err = u.accounts.UpdateProfiles(ctx, accountID, acc.Profiles); err != nil {
		return nil, fmt.Errorf("update profiles: %w", err)
	}
	return &profile, nil
}

// ProfileUpdate carries optional changes; nil fields are left as-is.
// Preferences are merged key-by-key, not replaced.
type ProfileUpdate struct {
	Name        *string
	AvatarURL   *string
	Preferences map[string]any
}

func (u *ProfileUsecase) Update(ctx context.Context, accountID, profileID string, upd ProfileUpdate) (*domain.Profile, error) {
	acc, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	idx := -1
	for i := range acc.Profiles {
		if acc.Profiles[i].ID == profileID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrProfileNotFound
	}

	p := &acc.Profiles[idx]
	if upd.Name != nil && *upd.Name != "" {
		p.Name = *upd.Name
	}
	if upd.AvatarURL != nil {
		p.AvatarURL = *upd.AvatarURL
	}
	if upd.Preferences != nil {
		if p.Preferences == nil {
			p.Preferences = map[string]any{}
		}
		for k, v := range upd.Preferences {
			p.Preferences[k] = v
		}
	}

	if err = u.accounts.UpdateProfiles(ctx, accountID, acc.Profiles); err != nil {
		return nil, fmt.Errorf("update profiles: %w", err)
	}
	return p, nil
}

func (u *ProfileUsecase) Delete(ctx context.Context, accountID, profileID string) error {
	acc, err := u.accounts.FindByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	if len(acc.Profiles) <= 1 {
		return domain.ErrLastProfile
	}

	kept := acc.Profiles[:0]
	found := false
	for _, p := range acc.Profiles {
		if p.ID == profileID {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return domain.ErrProfileNotFound
	}

	if err = u.accounts.UpdateProfiles(ctx, accountID, kept); err != nil {
		return fmt.Errorf("update profiles: %w", err)
	}
	return nil
}
