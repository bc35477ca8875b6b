package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/RusilKoirala/rusil-stream/internal/catalog"
	"github.com/gin-gonic/gin"
)

// catalogQuerier is the query surface of catalog.Client the handler
// dispatches to.
type catalogQuerier interface {
	Trending(ctx context.Context, mediaType, timeWindow string, page int) (json.RawMessage, error)
	Popular(ctx context.Context, mediaType string, page int) (json.RawMessage, error)
	TopRated(ctx context.Context, mediaType string, page int) (json.RawMessage, error)
	MovieDetails(ctx context.Context, movieID int) (json.RawMessage, error)
	TVDetails(ctx context.Context, tvID int) (json.RawMessage, error)
	TVSeasonDetails(ctx context.Context, tvID, season int) (json.RawMessage, error)
	SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error)
	SearchTV(ctx context.Context, query string, page int) (json.RawMessage, error)
	SearchMulti(ctx context.Context, query string, page int) (json.RawMessage, error)
	MoviesByGenre(ctx context.Context, genreID, page int) (json.RawMessage, error)
	TVByGenre(ctx context.Context, genreID, page int) (json.RawMessage, error)
	Genres(ctx context.Context, mediaType string) (json.RawMessage, error)
}

type CatalogHandler struct {
	catalog catalogQuerier
	logger  *slog.Logger
}

func NewCatalogHandler(cat catalogQuerier, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, logger: logger.With("component", "catalog_handler")}
}

// GET /api/movies
//
// One endpoint dispatching on query params, mirroring how the frontend
// queries it: tvId+season → season details; id → details; query →
// search; genre → discover; type=popular|top_rated|trending → lists;
// genres=1 → genre list; default → trending all/week.
func (h *CatalogHandler) Browse(c *gin.Context) {
	ctx := c.Request.Context()

	mediaType := c.DefaultQuery("mediaType", "movie")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var payload json.RawMessage

	switch {
	case c.Query("tvId") != "" && c.Query("season") != "":
		var tvID, season int
		if tvID, err = strconv.Atoi(c.Query("tvId")); err == nil {
			if season, err = strconv.Atoi(c.Query("season")); err == nil {
				payload, err = h.catalog.TVSeasonDetails(ctx, tvID, season)
			}
		}
	case c.Query("id") != "":
		var id int
		if id, err = strconv.Atoi(c.Query("id")); err == nil {
			if mediaType == "tv" {
				payload, err = h.catalog.TVDetails(ctx, id)
			} else {
				payload, err = h.catalog.MovieDetails(ctx, id)
			}
		}
	case c.Query("query") != "":
		q := c.Query("query")
		switch mediaType {
		case "tv":
			payload, err = h.catalog.SearchTV(ctx, q, page)
		case "multi":
			payload, err = h.catalog.SearchMulti(ctx, q, page)
		default:
			payload, err = h.catalog.SearchMovies(ctx, q, page)
		}
	case c.Query("genre") != "":
		var genreID int
		if genreID, err = strconv.Atoi(c.Query("genre")); err == nil {
			if mediaType == "tv" {
				payload, err = h.catalog.TVByGenre(ctx, genreID, page)
			} else {
				payload, err = h.catalog.MoviesByGenre(ctx, genreID, page)
			}
		}
	case c.Query("genres") != "":
		payload, err = h.catalog.Genres(ctx, mediaType)
	case c.Query("type") == "popular":
		payload, err = h.catalog.Popular(ctx, mediaType, page)
	case c.Query("type") == "top_rated":
		payload, err = h.catalog.TopRated(ctx, mediaType, page)
	default:
		payload, err = h.catalog.Trending(ctx, "all", "week", page)
	}

	if err != nil {
		var unavailable *catalog.UnavailableError
		if errors.As(err, &unavailable) {
			h.logger.Warn("catalog fetch failed", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": errFetchContent})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid catalog query"})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}
