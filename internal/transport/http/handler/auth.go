package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RusilKoirala/rusil-stream/internal/auth"
	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/metrics"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	BeginSignup(ctx context.Context, email, name, password string) error
	CompleteVerification(ctx context.Context, token string) (string, *domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	CurrentAccount(ctx context.Context, accountID string) (*domain.Account, error)
}

type AuthHandler struct {
	authUsecase  authUsecaser
	logger       *slog.Logger
	cookieSecure bool
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		logger:       logger.With("component", "auth_handler"),
		cookieSecure: cookieSecure,
	}
}

type signupRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Name     string `json:"name"     binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.BeginSignup(c.Request.Context(), req.Email, req.Name, req.Password); err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			c.JSON(http.StatusConflict, gin.H{"error": errAccountExists})
			return
		}
		h.logger.Error("begin signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.SignupsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification email sent. Please check your inbox and spam folder.",
	})
}

type verifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// POST /api/auth/verify
// Consuming a valid token activates the account and logs the user in.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, acc, err := h.authUsecase.CompleteVerification(c.Request.Context(), req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationInvalid) {
			metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": errVerificationToken})
			return
		}
		h.logger.Error("complete verification", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	metrics.VerificationsTotal.WithLabelValues("success").Inc()
	auth.SetSessionCookie(c, session, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified successfully",
		"token":   session,
		"user":    accountResponse(acc),
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, acc, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCreds})
		case errors.Is(err, domain.ErrEmailNotVerified):
			metrics.LoginsTotal.WithLabelValues("unverified").Inc()
			c.JSON(http.StatusForbidden, gin.H{"error": errEmailNotVerified})
		default:
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	auth.SetSessionCookie(c, session, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   session,
		"user":    accountResponse(acc),
	})
}

// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	acc, err := h.authUsecase.CurrentAccount(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("current account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": accountResponse(acc)})
}

type userResponse struct {
	ID       string           `json:"id"`
	Email    string           `json:"email"`
	Profiles []domain.Profile `json:"profiles"`
}

func accountResponse(acc *domain.Account) userResponse {
	return userResponse{
		ID:       acc.ID,
		Email:    acc.Email,
		Profiles: acc.Profiles,
	}
}
