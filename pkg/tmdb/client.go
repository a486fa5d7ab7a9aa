package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cinematch/cinematch/pkg/config"
	"github.com/cinematch/cinematch/pkg/domain"
)

// Client talks to a TMDB-style movie metadata API. Responses carry the
// precomputed feature vector for each movie alongside the usual metadata.
type Client struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewClient creates a new metadata API client
func NewClient(cfg config.TMDBConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
	}
}

// movieJSON is the provider's movie representation
type movieJSON struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	FeatureVector []float64 `json:"feature_vector"`
	Genres        []string  `json:"genres"`
	Keywords      []string  `json:"keywords"`
	ReleaseYear   int       `json:"release_year"`
	Popularity    float64   `json:"popularity"`
	VoteAverage   float64   `json:"vote_average"`
}

type moviePageJSON struct {
	Results []movieJSON `json:"results"`
}

// Similar returns movies similar to the given one
func (c *Client) Similar(ctx context.Context, itemID int64, limit int) ([]domain.Candidate, error) {
	path := fmt.Sprintf("/movie/%d/similar", itemID)
	return c.fetchMovies(ctx, path, limit)
}

// Recommended returns the provider's editorial recommendations for a movie
func (c *Client) Recommended(ctx context.Context, itemID int64, limit int) ([]domain.Candidate, error) {
	path := fmt.Sprintf("/movie/%d/recommendations", itemID)
	return c.fetchMovies(ctx, path, limit)
}

// Popular returns currently popular movies, the cold start pool
func (c *Client) Popular(ctx context.Context, limit int) ([]domain.Candidate, error) {
	return c.fetchMovies(ctx, "/movie/popular", limit)
}

// TopRated returns all-time highly rated movies
func (c *Client) TopRated(ctx context.Context, limit int) ([]domain.Candidate, error) {
	return c.fetchMovies(ctx, "/movie/top_rated", limit)
}

// fetchMovies calls a list endpoint and converts the page to candidates
func (c *Client) fetchMovies(ctx context.Context, path string, limit int) ([]domain.Candidate, error) {
	reqURL, err := url.Parse(c.endpoint + path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	q := reqURL.Query()
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var page moviePageJSON
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(page.Results))
	for _, m := range page.Results {
		candidates = append(candidates, domain.Candidate{
			ItemID:      m.ID,
			Title:       m.Title,
			Vector:      m.FeatureVector,
			Genres:      m.Genres,
			Keywords:    m.Keywords,
			ReleaseYear: m.ReleaseYear,
			Popularity:  m.Popularity,
			VoteAverage: m.VoteAverage,
		})
	}
	return candidates, nil
}
