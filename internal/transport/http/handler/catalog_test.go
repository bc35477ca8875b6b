package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RusilKoirala/rusil-stream/internal/catalog"
	"github.com/gin-gonic/gin"
)

// fakeCatalog records which query method Browse dispatched to.
type fakeCatalog struct {
	called string
	args   []any
	err    error
}

func (f *fakeCatalog) reply(name string, args ...any) (json.RawMessage, error) {
	f.called = name
	f.args = args
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"results":[]}`), nil
}

func (f *fakeCatalog) Trending(_ context.Context, mediaType, timeWindow string, page int) (json.RawMessage, error) {
	return f.reply("Trending", mediaType, timeWindow, page)
}
func (f *fakeCatalog) Popular(_ context.Context, mediaType string, page int) (json.RawMessage, error) {
	return f.reply("Popular", mediaType, page)
}
func (f *fakeCatalog) TopRated(_ context.Context, mediaType string, page int) (json.RawMessage, error) {
	return f.reply("TopRated", mediaType, page)
}
func (f *fakeCatalog) MovieDetails(_ context.Context, movieID int) (json.RawMessage, error) {
	return f.reply("MovieDetails", movieID)
}
func (f *fakeCatalog) TVDetails(_ context.Context, tvID int) (json.RawMessage, error) {
	return f.reply("TVDetails", tvID)
}
func (f *fakeCatalog) TVSeasonDetails(_ context.Context, tvID, season int) (json.RawMessage, error) {
	return f.reply("TVSeasonDetails", tvID, season)
}
func (f *fakeCatalog) SearchMovies(_ context.Context, query string, page int) (json.RawMessage, error) {
	return f.reply("SearchMovies", query, page)
}
func (f *fakeCatalog) SearchTV(_ context.Context, query string, page int) (json.RawMessage, error) {
	return f.reply("SearchTV", query, page)
}
func (f *fakeCatalog) SearchMulti(_ context.Context, query string, page int) (json.RawMessage, error) {
	return f.reply("SearchMulti", query, page)
}
func (f *fakeCatalog) MoviesByGenre(_ context.Context, genreID, page int) (json.RawMessage, error) {
	return f.reply("MoviesByGenre", genreID, page)
}
func (f *fakeCatalog) TVByGenre(_ context.Context, genreID, page int) (json.RawMessage, error) {
	return f.reply("TVByGenre", genreID, page)
}
func (f *fakeCatalog) Genres(_ context.Context, mediaType string) (json.RawMessage, error) {
	return f.reply("Genres", mediaType)
}

func browse(fc *fakeCatalog, rawQuery string) *httptest.ResponseRecorder {
	h := NewCatalogHandler(fc, discardLogger())
	r := gin.New()
	r.GET("/api/movies", h.Browse)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/movies?"+rawQuery, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestBrowse_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		called   string
		args     []any
	}{
		{"default is weekly trending", "", "Trending", []any{"all", "week", 1}},
		{"season details win over everything", "tvId=1399&season=2&id=5&query=x", "TVSeasonDetails", []any{1399, 2}},
		{"movie details by id", "id=603", "MovieDetails", []any{603}},
		{"tv details by id", "id=1399&mediaType=tv", "TVDetails", []any{1399}},
		{"movie search", "query=matrix&page=2", "SearchMovies", []any{"matrix", 2}},
		{"tv search", "query=matrix&mediaType=tv", "SearchTV", []any{"matrix", 1}},
		{"multi search", "query=matrix&mediaType=multi", "SearchMulti", []any{"matrix", 1}},
		{"movies by genre", "genre=28", "MoviesByGenre", []any{28, 1}},
		{"tv by genre", "genre=18&mediaType=tv", "TVByGenre", []any{18, 1}},
		{"genre list", "genres=1&mediaType=tv", "Genres", []any{"tv"}},
		{"popular", "type=popular&page=3", "Popular", []any{"movie", 3}},
		{"top rated tv", "type=top_rated&mediaType=tv", "TopRated", []any{"tv", 1}},
		{"bad page falls back to 1", "type=popular&page=zero", "Popular", []any{"movie", 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeCatalog{}
			w := browse(fc, tt.rawQuery)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
			}
			if fc.called != tt.called {
				t.Fatalf("dispatched to %s, want %s", fc.called, tt.called)
			}
			if len(fc.args) != len(tt.args) {
				t.Fatalf("args = %v, want %v", fc.args, tt.args)
			}
			for i := range tt.args {
				if fc.args[i] != tt.args[i] {
					t.Errorf("arg[%d] = %v, want %v", i, fc.args[i], tt.args[i])
				}
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestBrowse_NonNumericID_Returns400(t *testing.T) {
	w := browse(&fakeCatalog{}, "id=abc")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBrowse_UpstreamUnavailable_Returns502(t *testing.T) {
	fc := &fakeCatalog{err: &catalog.UnavailableError{Status: http.StatusServiceUnavailable}}
	w := browse(fc, "type=popular")

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}
