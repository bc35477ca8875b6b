package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/usecase"
	"github.com/gin-gonic/gin"
)

type SavedHandler struct {
	saved  *usecase.SavedUsecase
	logger *slog.Logger
}

func NewSavedHandler(saved *usecase.SavedUsecase, logger *slog.Logger) *SavedHandler {
	return &SavedHandler{saved: saved, logger: logger.With("component", "saved_handler")}
}

type savedItem struct {
	MovieID    int       `json:"movieId"`
	MediaType  string    `json:"mediaType"`
	Title      string    `json:"movieTitle"`
	PosterPath string    `json:"posterPath"`
	AddedAt    time.Time `json:"addedAt"`
}

// GET /api/saved?profileId=<id>
func (h *SavedHandler) List(c *gin.Context) {
	profileID := c.Query("profileId")
	if profileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile ID is required"})
		return
	}

	items, err := h.saved.List(c.Request.Context(), c.GetString("userID"), profileID)
	if err != nil {
		h.logger.Error("list saved", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]savedItem, 0, len(items))
	for _, item := range items {
		out = append(out, savedItem{
			MovieID:    item.MovieID,
			MediaType:  item.MediaType,
			Title:      item.Title,
			PosterPath: item.PosterPath,
			AddedAt:    item.AddedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"saved": out})
}

type addSavedRequest struct {
	ProfileID  string `json:"profileId"  binding:"required"`
	MovieID    int    `json:"movieId"    binding:"required"`
	MediaType  string `json:"mediaType"  binding:"omitempty,oneof=movie tv"`
	Title      string `json:"movieTitle" binding:"max=512"`
	PosterPath string `json:"posterPath" binding:"max=512"`
}

// POST /api/saved
func (h *SavedHandler) Add(c *gin.Context) {
	var req addSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MediaType == "" {
		req.MediaType = "movie"
	}

	item, err := h.saved.Add(c.Request.Context(), c.GetString("userID"), usecase.SaveItemInput{
		ProfileID:  req.ProfileID,
		MovieID:    req.MovieID,
		MediaType:  req.MediaType,
		Title:      req.Title,
		PosterPath: req.PosterPath,
	})
	if err != nil {
		h.logger.Error("add saved", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "saved": savedItem{
		MovieID:    item.MovieID,
		MediaType:  item.MediaType,
		Title:      item.Title,
		PosterPath: item.PosterPath,
		AddedAt:    item.AddedAt,
	}})
}

// DELETE /api/saved?profileId=<id>&movieId=<id>
func (h *SavedHandler) Remove(c *gin.Context) {
	profileID := c.Query("profileId")
	movieID, err := strconv.Atoi(c.Query("movieId"))
	if profileID == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile ID and movie ID are required"})
		return
	}

	if err := h.saved.Remove(c.Request.Context(), c.GetString("userID"), profileID, movieID); err != nil {
		h.logger.Error("remove saved", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
