package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematch/cinematch/pkg/config"
)

const moviePage = `{
	"results": [
		{
			"id": 603,
			"title": "The Matrix",
			"feature_vector": [0.1, 0.9],
			"genres": ["sci-fi", "action"],
			"keywords": ["dystopia", "simulation"],
			"release_year": 1999,
			"popularity": 82.5,
			"vote_average": 8.2
		},
		{
			"id": 604,
			"title": "The Matrix Reloaded",
			"feature_vector": [0.2, 0.8],
			"genres": ["sci-fi", "action"],
			"release_year": 2003,
			"popularity": 45.1,
			"vote_average": 7.0
		}
	]
}`

func TestClient_Similar(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603/similar", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(moviePage)) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewClient(config.TMDBConfig{Endpoint: server.URL, APIKey: "test-key", Timeout: 5 * time.Second})

	movies, err := client.Similar(context.Background(), 603, 20)
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, int64(603), movies[0].ItemID)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, []float64{0.1, 0.9}, movies[0].Vector)
	assert.Equal(t, []string{"dystopia", "simulation"}, movies[0].Keywords)
	assert.Equal(t, 1999, movies[0].ReleaseYear)
	assert.InDelta(t, 8.2, movies[0].VoteAverage, 0.0001)
	assert.Empty(t, movies[1].Keywords)
}

func TestClient_Recommended(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603/recommendations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(moviePage)) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewClient(config.TMDBConfig{Endpoint: server.URL, Timeout: 5 * time.Second})

	movies, err := client.Recommended(context.Background(), 603, 20)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, int64(603), movies[0].ItemID)
}

func TestClient_PopularAndTopRated(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(moviePage)) //nolint:errcheck // test server
	}))
	defer server.Close()

	client := NewClient(config.TMDBConfig{Endpoint: server.URL, Timeout: 5 * time.Second})

	_, err := client.Popular(context.Background(), 10)
	require.NoError(t, err)
	_, err = client.TopRated(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, []string{"/movie/popular", "/movie/top_rated"}, paths)
}

func TestClient_Errors(t *testing.T) {
	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := NewClient(config.TMDBConfig{Endpoint: server.URL, Timeout: time.Second})
		_, err := client.Popular(context.Background(), 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 503")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json")) //nolint:errcheck // test server
		}))
		defer server.Close()

		client := NewClient(config.TMDBConfig{Endpoint: server.URL, Timeout: time.Second})
		_, err := client.Popular(context.Background(), 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(config.TMDBConfig{Endpoint: server.URL, Timeout: time.Second})
		_, err := client.Popular(context.Background(), 10)
		require.Error(t, err)
	})
}
