package domain

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrVerificationInvalid = errors.New("verification token is invalid or expired")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrProfileLimit        = errors.New("maximum number of profiles reached")
	ErrLastProfile         = errors.New("cannot delete the last profile")
)

// MaxProfiles is the hard cap on profiles per account.
const MaxProfiles = 5

type Profile struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	AvatarURL   string         `json:"avatarUrl"`
	Preferences map[string]any `json:"preferences"`
}

// Account is a registered (or pending) user. While EmailVerified is
// false the account holds a single-use verification token; password
// login is refused until the token is consumed.
type Account struct {
	ID                 string
	Email              string
	PasswordHash       string
	EmailVerified      bool
	VerificationToken  *string
	VerificationExpiry *time.Time
	Profiles           []Profile
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
