package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// The query surface is a set of thin parameter bindings over Fetch.
// None of these add caching or error handling of their own.

func pageParams(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}}
}

// Trending returns trending titles. mediaType is "all", "movie" or
// "tv"; timeWindow is "day" or "week".
func (c *Client) Trending(ctx context.Context, mediaType, timeWindow string, page int) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/trending/%s/%s", mediaType, timeWindow), pageParams(page))
}

func (c *Client) Popular(ctx context.Context, mediaType string, page int) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/%s/popular", mediaType), pageParams(page))
}

func (c *Client) TopRated(ctx context.Context, mediaType string, page int) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/%s/top_rated", mediaType), pageParams(page))
}

func (c *Client) MovieDetails(ctx context.Context, movieID int) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/movie/%d", movieID), url.Values{
		"append_to_response": {"videos,credits"},
	})
}

func (c *Client) TVDetails(ctx context.Context, tvID int) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/tv/%d", tvID), url.Values{
		"append_to_response": {"videos,credits"},
	})
}

func (c *Client) TVSeasonDetails(ctx context.Context, tvID, season int) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/tv/%d/season/%d", tvID, season), nil)
}

func (c *Client) SearchMovies(ctx context.Context, query string, page int) (json.RawMessage, error) {
	p := pageParams(page)
	p.Set("query", query)
	return c.Fetch(ctx, "/search/movie", p)
}

func (c *Client) SearchTV(ctx context.Context, query string, page int) (json.RawMessage, error) {
	p := pageParams(page)
	p.Set("query", query)
	return c.Fetch(ctx, "/search/tv", p)
}

func (c *Client) SearchMulti(ctx context.Context, query string, page int) (json.RawMessage, error) {
	p := pageParams(page)
	p.Set("query", query)
	return c.Fetch(ctx, "/search/multi", p)
}

func (c *Client) MoviesByGenre(ctx context.Context, genreID, page int) (json.RawMessage, error) {
	p := pageParams(page)
	p.Set("with_genres", strconv.Itoa(genreID))
	return c.Fetch(ctx, "/discover/movie", p)
}

func (c *Client) TVByGenre(ctx context.Context, genreID, page int) (json.RawMessage, error) {
	p := pageParams(page)
	p.Set("with_genres", strconv.Itoa(genreID))
	return c.Fetch(ctx, "/discover/tv", p)
}

func (c *Client) Genres(ctx context.Context, mediaType string) (json.RawMessage, error) {
	return c.Fetch(ctx, fmt.Sprintf("/genre/%s/list", mediaType), nil)
}
