package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/cinematch/cinematch/pkg/domain"
	"github.com/cinematch/cinematch/pkg/recommender"
)

const maxAvoidKeywordChars = 100

// recommendationsHandler produces a personalized pick list for the user
func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Count  int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if req.Count == 0 {
		req.Count = 10
	}

	recs, err := s.engine.Recommend(r.Context(), req.UserID, req.Count)
	if err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}

// reviewsHandler accepts a rating with an optional free-text review. The
// rated item is stored synchronously; the embedding is computed later by the
// job queue, so the response never waits on the provider.
func (s *Server) reviewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		UserID string  `json:"user_id"`
		ItemID int64   `json:"item_id"`
		Rating float64 `json:"rating"`
		Review string  `json:"review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if req.UserID == "" {
		renderError(w, r, &domain.ValidationError{Field: "user_id", Reason: "must not be empty"})
		return
	}
	if req.ItemID <= 0 {
		renderError(w, r, &domain.ValidationError{Field: "item_id", Reason: "must be positive"})
		return
	}
	if len(req.Review) > s.config.MaxReviewChars {
		renderError(w, r, &domain.ValidationError{Field: "review",
			Reason: fmt.Sprintf("must not exceed %d characters", s.config.MaxReviewChars)})
		return
	}

	// absorb duplicate button presses before touching storage
	allowed, retryAfter, err := s.limiter.CheckAndTouch(ctx, req.UserID, recommender.ActionReview, s.config.ReviewInterval)
	if err != nil {
		renderError(w, r, fmt.Errorf("review rate limit check: %w", err))
		return
	}
	if !allowed {
		renderError(w, r, &domain.RateLimitError{RetryAfter: retryAfter})
		return
	}

	item := &domain.RatedItem{
		UserID: req.UserID,
		ItemID: req.ItemID,
		Rating: req.Rating,
		Review: strings.TrimSpace(req.Review),
	}
	if err := s.ratings.CreateRatedItem(ctx, item); err != nil {
		renderError(w, r, err)
		return
	}

	resp := map[string]interface{}{
		"rated_item_id": item.ID,
		"status":        "accepted",
	}

	if item.Review != "" {
		job := &domain.EmbeddingJob{
			UserID:      req.UserID,
			RatedItemID: item.ID,
			Text:        item.Review,
		}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			renderError(w, r, fmt.Errorf("enqueue embedding job: %w", err))
			return
		}
		resp["job_id"] = job.ID
	}

	renderJSON(w, r, http.StatusAccepted, resp)
}

// profileHandler returns a taste profile summary. Unknown users get an empty
// cold-start profile, not a 404.
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		renderError(w, r, &domain.ValidationError{Field: "user_id", Reason: "must not be empty"})
		return
	}

	profile, err := s.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		renderError(w, r, err)
		return
	}

	patterns := profile.AvoidPatterns
	if patterns == nil {
		patterns = []domain.AvoidPattern{}
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"user_id":        profile.UserID,
		"version":        profile.Version,
		"vector_dim":     len(profile.Vector),
		"cold_start":     profile.ColdStart(),
		"updated_at":     profile.UpdatedAt,
		"avoid_patterns": patterns,
	})
}

// addAvoidHandler adds a user-defined avoidance pattern to the profile
func (s *Server) addAvoidHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		renderError(w, r, &domain.ValidationError{Field: "user_id", Reason: "must not be empty"})
		return
	}

	var req struct {
		Keywords     []string `json:"keywords"`
		Weight       float64  `json:"weight"`
		Confidence   float64  `json:"confidence"`
		CooldownDays int      `json:"cooldown_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &domain.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	if len(req.Keywords) == 0 {
		renderError(w, r, &domain.ValidationError{Field: "keywords", Reason: "must not be empty"})
		return
	}
	for _, kw := range req.Keywords {
		if strings.TrimSpace(kw) == "" {
			renderError(w, r, &domain.ValidationError{Field: "keywords", Reason: "must not contain blank entries"})
			return
		}
		if len(kw) > maxAvoidKeywordChars {
			renderError(w, r, &domain.ValidationError{Field: "keywords",
				Reason: fmt.Sprintf("keyword must not exceed %d characters", maxAvoidKeywordChars)})
			return
		}
	}
	if req.Weight >= 0 {
		renderError(w, r, &domain.ValidationError{Field: "weight", Reason: "must be negative"})
		return
	}
	if req.Confidence < 0 || req.Confidence > 1 {
		renderError(w, r, &domain.ValidationError{Field: "confidence", Reason: "must be between 0 and 1"})
		return
	}
	if req.CooldownDays < 0 {
		renderError(w, r, &domain.ValidationError{Field: "cooldown_days", Reason: "must be non-negative"})
		return
	}

	pattern := domain.AvoidPattern{
		ID:           uuid.New().String(),
		Keywords:     req.Keywords,
		Weight:       req.Weight,
		Confidence:   req.Confidence,
		CooldownDays: req.CooldownDays,
	}
	if err := s.profiles.AddAvoidPattern(r.Context(), userID, pattern); err != nil {
		renderError(w, r, err)
		return
	}

	renderJSON(w, r, http.StatusCreated, pattern)
}

// jobJSON is the operator-facing view of an embedding job
type jobJSON struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	RatedItemID int64     `json:"rated_item_id"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	LastError   string    `json:"last_error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// deadLetterHandler lists jobs that exhausted their retry budget
func (s *Server) deadLetterHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			renderError(w, r, &domain.ValidationError{Field: "limit", Reason: "must be a positive integer"})
			return
		}
		limit = parsed
	}

	jobs, err := s.jobs.GetDeadLettered(r.Context(), limit)
	if err != nil {
		renderError(w, r, err)
		return
	}

	out := make([]jobJSON, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobJSON{
			ID:          j.ID,
			UserID:      j.UserID,
			RatedItemID: j.RatedItemID,
			Status:      string(j.Status),
			Attempts:    j.Attempts,
			MaxAttempts: j.MaxAttempts,
			LastError:   j.LastError,
			CreatedAt:   j.CreatedAt,
			UpdatedAt:   j.UpdatedAt,
		})
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"jobs":  out,
		"count": len(out),
	})
}

// requeueHandler puts a dead-lettered job back in the queue with a fresh
// attempt budget. This is the only path out of the dead-letter state.
func (s *Server) requeueHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, &domain.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	if err := s.jobs.Requeue(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}

	lgr.Printf("[INFO] requeued dead-lettered job %d", id)
	renderJSON(w, r, http.StatusOK, map[string]interface{}{
		"id":     id,
		"status": "requeued",
	})
}

// statusHandler returns server status with job queue counters
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.config.Version,
		"time":    time.Now().UTC(),
	}

	if counts, err := s.jobs.CountByStatus(r.Context()); err != nil {
		lgr.Printf("[WARN] failed to count jobs by status: %v", err)
	} else {
		status["jobs"] = counts
	}

	renderJSON(w, r, http.StatusOK, status)
}
