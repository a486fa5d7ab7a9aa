package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinematch/cinematch/pkg/domain"
	"github.com/cinematch/cinematch/pkg/recommender"
	"github.com/cinematch/cinematch/server/mocks"
)

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body)) //nolint:noctx // test request
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServer_Recommendations(t *testing.T) {
	engine := &mocks.RecommenderMock{
		RecommendFunc: func(ctx context.Context, userID string, count int) ([]domain.Recommendation, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, 5, count)
			return []domain.Recommendation{
				{ItemID: 101, Title: "Heat", Strategy: domain.StrategySafe, Score: 0.82, Explanation: "because you liked crime dramas"},
				{ItemID: 202, Title: "Stalker", Strategy: domain.StrategyWildcard, Score: 0.41},
			}, nil
		},
	}
	srv := testServer(engine, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{"user_id": "u1", "count": 5}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.InDelta(t, 2, body["count"], 0.01)
	recs := body["recommendations"].([]interface{})
	require.Len(t, recs, 2)
	first := recs[0].(map[string]interface{})
	assert.InDelta(t, 101, first["item_id"], 0.01)
	assert.Equal(t, "safe", first["strategy"])
	assert.Equal(t, "because you liked crime dramas", first["explanation"])
}

func TestServer_Recommendations_DefaultCount(t *testing.T) {
	engine := &mocks.RecommenderMock{
		RecommendFunc: func(ctx context.Context, userID string, count int) ([]domain.Recommendation, error) {
			assert.Equal(t, 10, count)
			return []domain.Recommendation{}, nil
		},
	}
	srv := testServer(engine, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{"user_id": "u1"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, engine.RecommendCalls(), 1)
}

func TestServer_Recommendations_Errors(t *testing.T) {
	tests := []struct {
		name         string
		engineErr    error
		expectedCode int
	}{
		{"rate limited", &domain.RateLimitError{RetryAfter: 30 * time.Second}, http.StatusTooManyRequests},
		{"validation", &domain.ValidationError{Field: "count", Reason: "must be between 1 and 20"}, http.StatusBadRequest},
		{"transient", &domain.TransientError{Op: "get profile", Err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mocks.RecommenderMock{
				RecommendFunc: func(ctx context.Context, userID string, count int) ([]domain.Recommendation, error) {
					return nil, tt.engineErr
				},
			}
			srv := testServer(engine, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
			ts := httptest.NewServer(srv.router)
			defer ts.Close()

			resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{"user_id": "u1", "count": 5}`)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedCode, resp.StatusCode)
		})
	}
}

func TestServer_Recommendations_MalformedBody(t *testing.T) {
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/recommendations", `{not json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Reviews(t *testing.T) {
	limiter := &mocks.RateLimiterMock{
		CheckAndTouchFunc: func(ctx context.Context, userID, action string, minInterval time.Duration) (bool, time.Duration, error) {
			assert.Equal(t, recommender.ActionReview, action)
			return true, 0, nil
		},
	}
	ratings := &mocks.RatingStoreMock{
		CreateRatedItemFunc: func(ctx context.Context, item *domain.RatedItem) error {
			item.ID = 55
			return nil
		},
	}
	jobs := &mocks.JobQueueMock{
		EnqueueFunc: func(ctx context.Context, job *domain.EmbeddingJob) error {
			job.ID = 9
			return nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, ratings, &mocks.ProfileStoreMock{}, jobs, limiter)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/reviews",
		`{"user_id": "u1", "item_id": 101, "rating": 4.5, "review": "  loved the slow burn  "}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.InDelta(t, 55, body["rated_item_id"], 0.01)
	assert.InDelta(t, 9, body["job_id"], 0.01)
	assert.Equal(t, "accepted", body["status"])

	require.Len(t, ratings.CreateRatedItemCalls(), 1)
	created := ratings.CreateRatedItemCalls()[0].Item
	assert.Equal(t, "loved the slow burn", created.Review, "review should be trimmed")
	assert.InDelta(t, 4.5, created.Rating, 0.001)

	require.Len(t, jobs.EnqueueCalls(), 1)
	assert.Equal(t, int64(55), jobs.EnqueueCalls()[0].Job.RatedItemID)
	assert.Equal(t, "loved the slow burn", jobs.EnqueueCalls()[0].Job.Text)
}

func TestServer_Reviews_NoText_NoJob(t *testing.T) {
	limiter := &mocks.RateLimiterMock{
		CheckAndTouchFunc: func(ctx context.Context, userID, action string, minInterval time.Duration) (bool, time.Duration, error) {
			return true, 0, nil
		},
	}
	ratings := &mocks.RatingStoreMock{
		CreateRatedItemFunc: func(ctx context.Context, item *domain.RatedItem) error {
			item.ID = 56
			return nil
		},
	}
	jobs := &mocks.JobQueueMock{}
	srv := testServer(&mocks.RecommenderMock{}, ratings, &mocks.ProfileStoreMock{}, jobs, limiter)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/reviews", `{"user_id": "u1", "item_id": 101, "rating": 3.0}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotContains(t, body, "job_id")
	assert.Empty(t, jobs.EnqueueCalls(), "rating without text must not enqueue an embedding job")
}

func TestServer_Reviews_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty user", `{"user_id": "", "item_id": 101, "rating": 3.0}`},
		{"missing item", `{"user_id": "u1", "rating": 3.0}`},
		{"negative item", `{"user_id": "u1", "item_id": -5, "rating": 3.0}`},
		{"oversized review", `{"user_id": "u1", "item_id": 101, "rating": 3.0, "review": "` + strings.Repeat("x", 5001) + `"}`},
		{"malformed json", `{broken`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := &mocks.RateLimiterMock{}
			ratings := &mocks.RatingStoreMock{}
			srv := testServer(&mocks.RecommenderMock{}, ratings, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, limiter)
			ts := httptest.NewServer(srv.router)
			defer ts.Close()

			resp := postJSON(t, ts.URL+"/api/v1/reviews", tt.body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, ratings.CreateRatedItemCalls(), "invalid input must be rejected before storage")
			assert.Empty(t, limiter.CheckAndTouchCalls(), "invalid input must not consume the rate limit")
		})
	}
}

func TestServer_Reviews_BadRating(t *testing.T) {
	limiter := &mocks.RateLimiterMock{
		CheckAndTouchFunc: func(ctx context.Context, userID, action string, minInterval time.Duration) (bool, time.Duration, error) {
			return true, 0, nil
		},
	}
	ratings := &mocks.RatingStoreMock{
		CreateRatedItemFunc: func(ctx context.Context, item *domain.RatedItem) error {
			return &domain.ValidationError{Field: "rating", Reason: "must be between 0 and 5 in half-point steps"}
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, ratings, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, limiter)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/reviews", `{"user_id": "u1", "item_id": 101, "rating": 3.7}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Reviews_RateLimited(t *testing.T) {
	limiter := &mocks.RateLimiterMock{
		CheckAndTouchFunc: func(ctx context.Context, userID, action string, minInterval time.Duration) (bool, time.Duration, error) {
			return false, 1500 * time.Millisecond, nil
		},
	}
	ratings := &mocks.RatingStoreMock{}
	srv := testServer(&mocks.RecommenderMock{}, ratings, &mocks.ProfileStoreMock{}, &mocks.JobQueueMock{}, limiter)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/reviews", `{"user_id": "u1", "item_id": 101, "rating": 3.0}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Empty(t, ratings.CreateRatedItemCalls(), "rejected submission must not create a rating")
}

func TestServer_Profile(t *testing.T) {
	lastTriggered := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	profiles := &mocks.ProfileStoreMock{
		GetProfileFunc: func(ctx context.Context, userID string) (*domain.TasteProfile, error) {
			return &domain.TasteProfile{
				UserID:  userID,
				Vector:  []float64{0.1, 0.2, 0.3},
				Version: 7,
				AvoidPatterns: []domain.AvoidPattern{
					{ID: "p1", Keywords: []string{"jump scares"}, Weight: -0.3, Confidence: 0.9, LastTriggered: &lastTriggered},
				},
			}, nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, profiles, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/profile/u1") //nolint:noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "u1", body["user_id"])
	assert.InDelta(t, 7, body["version"], 0.01)
	assert.InDelta(t, 3, body["vector_dim"], 0.01)
	assert.Equal(t, false, body["cold_start"])
	patterns := body["avoid_patterns"].([]interface{})
	require.Len(t, patterns, 1)
	assert.Equal(t, "p1", patterns[0].(map[string]interface{})["id"])
}

func TestServer_Profile_ColdStart(t *testing.T) {
	profiles := &mocks.ProfileStoreMock{
		GetProfileFunc: func(ctx context.Context, userID string) (*domain.TasteProfile, error) {
			return &domain.TasteProfile{UserID: userID}, nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, profiles, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/profile/nobody") //nolint:noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["cold_start"])
	assert.Equal(t, []interface{}{}, body["avoid_patterns"], "avoid patterns should serialize as an empty list")
}

func TestServer_AddAvoidPattern(t *testing.T) {
	profiles := &mocks.ProfileStoreMock{
		AddAvoidPatternFunc: func(ctx context.Context, userID string, pattern domain.AvoidPattern) error {
			return nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, profiles, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/profile/u1/avoid",
		`{"keywords": ["found footage", "shaky cam"], "weight": -0.4, "confidence": 0.8, "cooldown_days": 7}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["id"], "server should assign a pattern ID")

	require.Len(t, profiles.AddAvoidPatternCalls(), 1)
	call := profiles.AddAvoidPatternCalls()[0]
	assert.Equal(t, "u1", call.UserID)
	assert.Equal(t, []string{"found footage", "shaky cam"}, call.Pattern.Keywords)
	assert.InDelta(t, -0.4, call.Pattern.Weight, 0.001)
	assert.NotEmpty(t, call.Pattern.ID)
}

func TestServer_AddAvoidPattern_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no keywords", `{"keywords": [], "weight": -0.3, "confidence": 0.8}`},
		{"blank keyword", `{"keywords": ["  "], "weight": -0.3, "confidence": 0.8}`},
		{"oversized keyword", `{"keywords": ["` + strings.Repeat("k", 101) + `"], "weight": -0.3, "confidence": 0.8}`},
		{"positive weight", `{"keywords": ["gore"], "weight": 0.3, "confidence": 0.8}`},
		{"zero weight", `{"keywords": ["gore"], "weight": 0, "confidence": 0.8}`},
		{"confidence above one", `{"keywords": ["gore"], "weight": -0.3, "confidence": 1.5}`},
		{"negative cooldown", `{"keywords": ["gore"], "weight": -0.3, "confidence": 0.8, "cooldown_days": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &mocks.ProfileStoreMock{}
			srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, profiles, &mocks.JobQueueMock{}, &mocks.RateLimiterMock{})
			ts := httptest.NewServer(srv.router)
			defer ts.Close()

			resp := postJSON(t, ts.URL+"/api/v1/profile/u1/avoid", tt.body)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Empty(t, profiles.AddAvoidPatternCalls())
		})
	}
}

func TestServer_DeadLetter(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		GetDeadLetteredFunc: func(ctx context.Context, limit int) ([]domain.EmbeddingJob, error) {
			assert.Equal(t, 50, limit)
			return []domain.EmbeddingJob{
				{ID: 3, UserID: "u1", RatedItemID: 55, Status: domain.JobDeadLettered, Attempts: 3, MaxAttempts: 3, LastError: "provider 500"},
			}, nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, jobs, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/jobs/dead-letter") //nolint:noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.InDelta(t, 1, body["count"], 0.01)
	list := body["jobs"].([]interface{})
	require.Len(t, list, 1)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, "dead_lettered", entry["status"])
	assert.Equal(t, "provider 500", entry["last_error"])
}

func TestServer_DeadLetter_CustomLimit(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		GetDeadLetteredFunc: func(ctx context.Context, limit int) ([]domain.EmbeddingJob, error) {
			assert.Equal(t, 5, limit)
			return nil, nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, jobs, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/jobs/dead-letter?limit=5") //nolint:noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, jobs.GetDeadLetteredCalls(), 1)
}

func TestServer_Requeue(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		RequeueFunc: func(ctx context.Context, id int64) error {
			assert.Equal(t, int64(3), id)
			return nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, jobs, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/jobs/3/requeue", "")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "requeued", body["status"])
}

func TestServer_Requeue_NotDeadLettered(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		RequeueFunc: func(ctx context.Context, id int64) error {
			return domain.ErrNotFound
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, jobs, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp := postJSON(t, ts.URL+"/api/v1/jobs/99/requeue", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_Status(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		CountByStatusFunc: func(ctx context.Context) (map[string]int, error) {
			return map[string]int{"pending": 2, "dead_lettered": 1}, nil
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, jobs, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status") //nolint:noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
	counts := body["jobs"].(map[string]interface{})
	assert.InDelta(t, 2, counts["pending"], 0.01)
}

func TestServer_Status_CountFailureStillOK(t *testing.T) {
	jobs := &mocks.JobQueueMock{
		CountByStatusFunc: func(ctx context.Context) (map[string]int, error) {
			return nil, errors.New("db down")
		},
	}
	srv := testServer(&mocks.RecommenderMock{}, &mocks.RatingStoreMock{}, &mocks.ProfileStoreMock{}, jobs, &mocks.RateLimiterMock{})
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/status") //nolint:noctx // test request
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.NotContains(t, body, "jobs")
}
