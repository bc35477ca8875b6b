package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/usecase"
)

func profileRepo(acc *domain.Account) *fakeAccountRepo {
	return &fakeAccountRepo{
		findByID: func(_ context.Context, id string) (*domain.Account, error) {
			if acc.ID != id {
				return nil, domain.ErrAccountNotFound
			}
			cp := *acc
			return &cp, nil
		},
		updateProfiles: func(_ context.Context, _ string, profiles []domain.Profile) error {
			acc.Profiles = profiles
			return nil
		},
	}
}

func accountWithProfiles(names ...string) *domain.Account {
	acc := &domain.Account{ID: "acc-1", Email: "a@x.com", EmailVerified: true}
	for i, name := range names {
		acc.Profiles = append(acc.Profiles, domain.Profile{
			ID:   "p-" + string(rune('a'+i)),
			Name: name,
		})
	}
	return acc
}

func TestCreateProfile_AppendsWithFreshID(t *testing.T) {
	acc := accountWithProfiles("A")
	u := usecase.NewProfileUsecase(profileRepo(acc))

	p, err := u.Create(context.Background(), "acc-1", "Kids", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Error("new profile must get an id")
	}
	if len(acc.Profiles) != 2 || acc.Profiles[1].Name != "Kids" {
		t.Errorf("profiles = %+v, want A + Kids", acc.Profiles)
	}
}

func TestCreateProfile_LimitEnforced(t *testing.T) {
	acc := accountWithProfiles("1", "2", "3", "4", "5")
	u := usecase.NewProfileUsecase(profileRepo(acc))

	_, err := u.Create(context.Background(), "acc-1", "6th", "")
	if !errors.Is(err, domain.ErrProfileLimit) {
		t.Errorf("err = %v, want ErrProfileLimit", err)
	}
	if len(acc.Profiles) != 5 {
		t.Error("profile list must be unchanged")
	}
}

func TestUpdateProfile_MergesPreferences(t *testing.T) {
	acc := accountWithProfiles("A")
	acc.Profiles[0].Preferences = map[string]any{"lang": "en", "autoplay": true}
	u := usecase.NewProfileUsecase(profileRepo(acc))

	name := "Alice"
	p, err := u.Update(context.Background(), "acc-1", "p-a", usecase.ProfileUpdate{
		Name:        &name,
		Preferences: map[string]any{"autoplay": false, "subtitles": "on"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Name != "Alice" {
		t.Errorf("name = %q, want Alice", p.Name)
	}
	want := map[string]any{"lang": "en", "autoplay": false, "subtitles": "on"}
	for k, v := range want {
		if p.Preferences[k] != v {
			t.Errorf("preferences[%q] = %v, want %v", k, p.Preferences[k], v)
		}
	}
}

func TestUpdateProfile_UnknownProfile(t *testing.T) {
	u := usecase.NewProfileUsecase(profileRepo(accountWithProfiles("A")))

	_, err := u.Update(context.Background(), "acc-1", "p-zzz", usecase.ProfileUpdate{})
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestDeleteProfile_RemovesByID(t *testing.T) {
	acc := accountWithProfiles("A", "B")
	u := usecase.NewProfileUsecase(profileRepo(acc))

	if err := u.Delete(context.Background(), "acc-1", "p-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(acc.Profiles) != 1 || acc.Profiles[0].Name != "B" {
		t.Errorf("profiles = %+v, want only B", acc.Profiles)
	}
}

func TestDeleteProfile_LastProfileProtected(t *testing.T) {
	acc := accountWithProfiles("A")
	u := usecase.NewProfileUsecase(profileRepo(acc))

	err := u.Delete(context.Background(), "acc-1", "p-a")
	if !errors.Is(err, domain.ErrLastProfile) {
		t.Errorf("err = %v, want ErrLastProfile", err)
	}
}
