package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/usecase"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *usecase.ProfileUsecase
	logger   *slog.Logger
}

func NewProfileHandler(profiles *usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger.With("component", "profile_handler")}
}

type createProfileRequest struct {
	Name      string `json:"name"      binding:"required,max=50"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,max=512"`
}

// POST /api/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), c.GetString("userID"), req.Name, req.AvatarURL)
	if err != nil {
		if errors.Is(err, domain.ErrProfileLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 5 profiles allowed"})
			return
		}
		h.logger.Error("create profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

type updateProfileRequest struct {
	ProfileID   string         `json:"profileId" binding:"required"`
	Name        *string        `json:"name"      binding:"omitempty,max=50"`
	AvatarURL   *string        `json:"avatarUrl" binding:"omitempty,max=512"`
	Preferences map[string]any `json:"preferences"`
}

// PUT /api/profiles
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), c.GetString("userID"), req.ProfileID, usecase.ProfileUpdate{
		Name:        req.Name,
		AvatarURL:   req.AvatarURL,
		Preferences: req.Preferences,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		h.logger.Error("update profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profile": profile})
}

// DELETE /api/profiles?profileId=<id>
func (h *ProfileHandler) Delete(c *gin.Context) {
	profileID := c.Query("profileId")
	if profileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile ID is required"})
		return
	}

	err := h.profiles.Delete(c.Request.Context(), c.GetString("userID"), profileID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLastProfile):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete last profile"})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		default:
			h.logger.Error("delete profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
