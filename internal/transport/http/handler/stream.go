package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// StreamHandler returns embed URLs for the external player. No media
// passes through this service.
type StreamHandler struct {
	embedBaseURL string
}

func NewStreamHandler(embedBaseURL string) *StreamHandler {
	return &StreamHandler{embedBaseURL: embedBaseURL}
}

// GET /api/stream/:id?mediaType=movie|tv&season=&episode=
func (h *StreamHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Movie ID is required"})
		return
	}

	var streamURL string
	if c.DefaultQuery("mediaType", "movie") == "tv" {
		season, _ := strconv.Atoi(c.DefaultQuery("season", "1"))
		episode, _ := strconv.Atoi(c.DefaultQuery("episode", "1"))
		streamURL = fmt.Sprintf("%s/tv/%d/%d/%d", h.embedBaseURL, id, season, episode)
	} else {
		streamURL = fmt.Sprintf("%s/movie/%d", h.embedBaseURL, id)
	}

	c.JSON(http.StatusOK, gin.H{
		"streamUrl": streamURL,
		"type":      "embed",
	})
}
