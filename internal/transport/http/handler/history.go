package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/domain"
	"github.com/RusilKoirala/rusil-stream/internal/usecase"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	history *usecase.HistoryUsecase
	logger  *slog.Logger
}

func NewHistoryHandler(history *usecase.HistoryUsecase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, logger: logger.With("component", "history_handler")}
}

type historyItem struct {
	MovieID           int                `json:"movieId"`
	MediaType         string             `json:"mediaType"`
	Title             string             `json:"movieTitle"`
	PosterPath        string             `json:"posterPath"`
	LastPositionSec   int                `json:"lastPositionSec"`
	DurationSec       int                `json:"durationSec"`
	WatchedPercentage float64            `json:"watchedPercentage"`
	Status            domain.WatchStatus `json:"status"`
	StartedAt         time.Time          `json:"startedAt"`
	LastPlayedAt      time.Time          `json:"lastPlayedAt"`
}

// GET /api/history?profileId=<id>
func (h *HistoryHandler) List(c *gin.Context) {
	profileID := c.Query("profileId")
	if profileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile ID is required"})
		return
	}

	entries, err := h.history.List(c.Request.Context(), c.GetString("userID"), profileID)
	if err != nil {
		h.logger.Error("list history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{
			MovieID:           e.MovieID,
			MediaType:         e.MediaType,
			Title:             e.Title,
			PosterPath:        e.PosterPath,
			LastPositionSec:   e.LastPositionSec,
			DurationSec:       e.DurationSec,
			WatchedPercentage: e.WatchedPercentage,
			Status:            e.Status,
			StartedAt:         e.StartedAt,
			LastPlayedAt:      e.LastPlayedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

type recordHistoryRequest struct {
	ProfileID       string `json:"profileId"  binding:"required"`
	MovieID         int    `json:"movieId"    binding:"required"`
	MediaType       string `json:"mediaType"  binding:"omitempty,oneof=movie tv"`
	Title           string `json:"movieTitle" binding:"max=512"`
	PosterPath      string `json:"posterPath" binding:"max=512"`
	LastPositionSec int    `json:"lastPositionSec" binding:"min=0"`
	DurationSec     int    `json:"durationSec"     binding:"min=0"`
}

// POST /api/history
func (h *HistoryHandler) Record(c *gin.Context) {
	var req recordHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MediaType == "" {
		req.MediaType = "movie"
	}

	entry, err := h.history.RecordProgress(c.Request.Context(), c.GetString("userID"), usecase.RecordProgressInput{
		ProfileID:       req.ProfileID,
		MovieID:         req.MovieID,
		MediaType:       req.MediaType,
		Title:           req.Title,
		PosterPath:      req.PosterPath,
		LastPositionSec: req.LastPositionSec,
		DurationSec:     req.DurationSec,
	})
	if err != nil {
		h.logger.Error("record history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "history": historyItem{
		MovieID:           entry.MovieID,
		MediaType:         entry.MediaType,
		Title:             entry.Title,
		PosterPath:        entry.PosterPath,
		LastPositionSec:   entry.LastPositionSec,
		DurationSec:       entry.DurationSec,
		WatchedPercentage: entry.WatchedPercentage,
		Status:            entry.Status,
		StartedAt:         entry.StartedAt,
		LastPlayedAt:      entry.LastPlayedAt,
	}})
}
