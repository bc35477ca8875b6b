package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUpstream returns a fake TMDB server that counts requests and a
// client pointed at it.
func newUpstream(t *testing.T, status int, body string, opts ...Option) (*Client, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "test-key", slog.Default(), opts...)
	return c, &calls
}

func TestFetch_SecondCallServedFromCache(t *testing.T) {
	c, calls := newUpstream(t, http.StatusOK, `{"results":[1,2,3]}`)

	first, err := c.Fetch(context.Background(), "/trending/all/week", url.Values{"page": {"1"}})
	require.NoError(t, err)

	second, err := c.Fetch(context.Background(), "/trending/all/week", url.Values{"page": {"1"}})
	require.NoError(t, err)

	assert.Equal(t, []byte(first), []byte(second), "cached payload must be byte-identical")
	assert.EqualValues(t, 1, calls.Load(), "second call must not hit upstream")
}

func TestFetch_DistinctParamsAreDistinctEntries(t *testing.T) {
	c, calls := newUpstream(t, http.StatusOK, `{}`)

	_, err := c.Fetch(context.Background(), "/trending/all/week", url.Values{"page": {"1"}})
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "/trending/all/week", url.Values{"page": {"2"}})
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load(), "different pages must not share a cache entry")
}

func TestFetch_ExpiredEntryRefetchedOnce(t *testing.T) {
	now := time.Now()
	c, calls := newUpstream(t, http.StatusOK, `{"page":1}`, WithClock(func() time.Time { return now }))

	_, err := c.Fetch(context.Background(), "/movie/popular", nil)
	require.NoError(t, err)

	now = now.Add(defaultCacheTTL + time.Minute)

	_, err = c.Fetch(context.Background(), "/movie/popular", nil)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "/movie/popular", nil)
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load(), "expiry must trigger exactly one refetch")
}

func TestFetch_UpstreamErrorNotCached(t *testing.T) {
	c, calls := newUpstream(t, http.StatusTooManyRequests, `{"status_message":"rate limited"}`)

	_, err := c.Fetch(context.Background(), "/search/movie", url.Values{"query": {"dune"}})
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, http.StatusTooManyRequests, unavailable.Status)

	_, err = c.Fetch(context.Background(), "/search/movie", url.Values{"query": {"dune"}})
	require.Error(t, err)
	assert.EqualValues(t, 2, calls.Load(), "failures must not populate the cache")
}

func TestFetch_TransportErrorIsUnavailable(t *testing.T) {
	c := New("http://127.0.0.1:0", "test-key", slog.Default())

	_, err := c.Fetch(context.Background(), "/movie/603", nil)
	var unavailable *UnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Zero(t, unavailable.Status)
}

func TestFetch_SendsAPIKeyAndParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "secret-key", slog.Default())
	_, err := c.Fetch(context.Background(), "/discover/movie", url.Values{"with_genres": {"28"}, "page": {"3"}})
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotQuery.Get("api_key"))
	assert.Equal(t, "28", gotQuery.Get("with_genres"))
	assert.Equal(t, "3", gotQuery.Get("page"))
}

func TestQueries_BindEndpointAndParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "k", slog.Default())
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		wantPath string
		wantKey  string
		wantVal  string
	}{
		{"trending", func() error { _, err := c.Trending(ctx, "all", "week", 2); return err }, "/trending/all/week", "page", "2"},
		{"popular", func() error { _, err := c.Popular(ctx, "tv", 1); return err }, "/tv/popular", "page", "1"},
		{"top rated", func() error { _, err := c.TopRated(ctx, "movie", 1); return err }, "/movie/top_rated", "page", "1"},
		{"movie details", func() error { _, err := c.MovieDetails(ctx, 603); return err }, "/movie/603", "append_to_response", "videos,credits"},
		{"tv details", func() error { _, err := c.TVDetails(ctx, 1399); return err }, "/tv/1399", "append_to_response", "videos,credits"},
		{"tv season", func() error { _, err := c.TVSeasonDetails(ctx, 1399, 3); return err }, "/tv/1399/season/3", "api_key", "k"},
		{"search movies", func() error { _, err := c.SearchMovies(ctx, "dune", 1); return err }, "/search/movie", "query", "dune"},
		{"search tv", func() error { _, err := c.SearchTV(ctx, "lost", 1); return err }, "/search/tv", "query", "lost"},
		{"search multi", func() error { _, err := c.SearchMulti(ctx, "alien", 1); return err }, "/search/multi", "query", "alien"},
		{"movies by genre", func() error { _, err := c.MoviesByGenre(ctx, 28, 1); return err }, "/discover/movie", "with_genres", "28"},
		{"tv by genre", func() error { _, err := c.TVByGenre(ctx, 16, 1); return err }, "/discover/tv", "with_genres", "16"},
		{"genres", func() error { _, err := c.Genres(ctx, "movie"); return err }, "/genre/movie/list", "api_key", "k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantVal, gotQuery.Get(tt.wantKey))
		})
	}
}
