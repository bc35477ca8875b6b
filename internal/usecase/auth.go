package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/auth"
	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/email"
	"github.com/RusilKoirala/rusil-stream/internal/repository"
	"github.com/google/uuid"
)

const defaultVerificationTTL = 15 * time.Minute

// AuthUsecase drives the signup → verification → login state machine.
// Accounts stay unverified (and unable to log in) until the emailed
// verification token is consumed; a repeat signup on an unverified
// email replaces the pending token rather than failing.
type AuthUsecase struct {
	accounts        repository.AccountRepository
	email           email.Sender
	sessions        *auth.Sessions
	verificationTTL time.Duration
	appBaseURL      string
	now             func() time.Time
}

func NewAuthUsecase(accounts repository.AccountRepository, emailSender email.Sender, sessions *auth.Sessions, appBaseURL string) *AuthUsecase {
	return &AuthUsecase{
		accounts:        accounts,
		email:           emailSender,
		sessions:        sessions,
		verificationTTL: defaultVerificationTTL,
		appBaseURL:      appBaseURL,
		now:             time.Now,
	}
}

// WithClock replaces the usecase clock. Tests use it to force token
// expiry.
func (u *AuthUsecase) WithClock(now func() time.Time) *AuthUsecase {
	c := *u
	c.now = now
	return &c
}

// BeginSignup creates (or re-creates) a pending account and emails the
// verification link. A verified account with the same email fails with
// ErrAccountExists; an unverified one is overwritten, which doubles as
// "resend with a fresh token".
func (u *AuthUsecase) BeginSignup(ctx context.Context, emailAddr, name, password string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	existing, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("find account: %w", err)
	}
	if existing != nil && existing.EmailVerified {
		return domain.ErrAccountExists
	}

	raw := make([]byte, 32)
	if _, err = io.ReadFull(rand.Reader, raw); err != nil {
		return fmt.Errorf("generate verification token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiry := u.now().Add(u.verificationTTL)

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	acc := &domain.Account{
		Email:              emailAddr,
		PasswordHash:       hash,
		EmailVerified:      false,
		VerificationToken:  &token,
		VerificationExpiry: &expiry,
		Profiles: []domain.Profile{{
			ID:          uuid.NewString(),
			Name:        name,
			Preferences: map[string]any{},
		}},
	}

	if existing != nil {
		err = u.accounts.ReplacePendingSignup(ctx, acc)
	} else {
		err = u.accounts.Create(ctx, acc)
	}
	if err != nil {
		return fmt.Errorf("store pending signup: %w", err)
	}

	link := u.appBaseURL + "/verify-email?token=" + token
	subject := "Verify your email - Rusil Stream"
	body := fmt.Sprintf(
		`<h2>Welcome, %s!</h2><p>Confirm your email to start watching (link expires in 15 minutes):</p><p><a href="%s">%s</a></p><p>If you didn't create an account, you can safely ignore this email.</p>`,
		name, link, link,
	)
	if err = u.email.Send(ctx, emailAddr, subject, body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

// CompleteVerification consumes a verification token: the account is
// activated, the token cleared so it cannot be replayed, and a session
// token issued so the user is logged in without a separate login step.
// A missing, mismatched or expired token fails with
// ErrVerificationInvalid and changes nothing.
func (u *AuthUsecase) CompleteVerification(ctx context.Context, token string) (string, *domain.Account, error) {
	if token == "" {
		return "", nil, domain.ErrVerificationInvalid
	}

	acc, err := u.accounts.FindByVerificationToken(ctx, token, u.now())
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrVerificationInvalid
		}
		return "", nil, fmt.Errorf("find by verification token: %w", err)
	}

	if err = u.accounts.MarkVerified(ctx, acc.ID); err != nil {
		return "", nil, fmt.Errorf("mark verified: %w", err)
	}
	acc.EmailVerified = true
	acc.VerificationToken = nil
	acc.VerificationExpiry = nil

	session, err := u.sessions.Issue(auth.Claims{UserID: acc.ID, Email: acc.Email})
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return session, acc, nil
}

// Login checks credentials and returns a session token. Unknown email
// and wrong password are both ErrInvalidCredentials; correct
// credentials on an unverified account are ErrEmailNotVerified and no
// session is issued.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, *domain.Account, error) {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))

	acc, err := u.accounts.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find account: %w", err)
	}

	if !auth.CheckPassword(password, acc.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !acc.EmailVerified {
		return "", nil, domain.ErrEmailNotVerified
	}

	session, err := u.sessions.Issue(auth.Claims{UserID: acc.ID, Email: acc.Email})
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return session, acc, nil
}

// CurrentAccount loads the account behind a verified session.
func (u *AuthUsecase) CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	return u.accounts.FindByID(ctx, accountID)
}
