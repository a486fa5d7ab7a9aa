package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/cinematch/cinematch/pkg/domain"
)

//go:generate moq -out mocks/recommender.go -pkg mocks -skip-ensure -fmt goimports . Recommender
//go:generate moq -out mocks/rating_store.go -pkg mocks -skip-ensure -fmt goimports . RatingStore
//go:generate moq -out mocks/profile_store.go -pkg mocks -skip-ensure -fmt goimports . ProfileStore
//go:generate moq -out mocks/job_queue.go -pkg mocks -skip-ensure -fmt goimports . JobQueue
//go:generate moq -out mocks/rate_limiter.go -pkg mocks -skip-ensure -fmt goimports . RateLimiter

// Server represents HTTP server instance
type Server struct {
	engine   Recommender
	ratings  RatingStore
	profiles ProfileStore
	jobs     JobQueue
	limiter  RateLimiter
	config   Config

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Recommender interface for the recommendation pipeline
type Recommender interface {
	Recommend(ctx context.Context, userID string, count int) ([]domain.Recommendation, error)
}

// RatingStore interface for review submissions
type RatingStore interface {
	CreateRatedItem(ctx context.Context, item *domain.RatedItem) error
}

// ProfileStore interface for profile inspection and avoid patterns
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*domain.TasteProfile, error)
	AddAvoidPattern(ctx context.Context, userID string, pattern domain.AvoidPattern) error
}

// JobQueue interface for embedding job submission and operator surface
type JobQueue interface {
	Enqueue(ctx context.Context, job *domain.EmbeddingJob) error
	GetDeadLettered(ctx context.Context, limit int) ([]domain.EmbeddingJob, error)
	Requeue(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// RateLimiter gates review submissions per user
type RateLimiter interface {
	CheckAndTouch(ctx context.Context, userID, action string, minInterval time.Duration) (allowed bool, retryAfter time.Duration, err error)
}

// Config holds server configuration
type Config struct {
	Listen         string
	Timeout        time.Duration
	Version        string
	Debug          bool
	MaxReviewChars int
	ReviewInterval time.Duration
}

// New initializes a new server instance
func New(engine Recommender, ratings RatingStore, profiles ProfileStore, jobs JobQueue, limiter RateLimiter, cfg Config) *Server {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxReviewChars == 0 {
		cfg.MaxReviewChars = 5000
	}
	if cfg.ReviewInterval == 0 {
		cfg.ReviewInterval = 2 * time.Second
	}

	s := &Server{
		engine:   engine,
		ratings:  ratings,
		profiles: profiles,
		jobs:     jobs,
		limiter:  limiter,
		config:   cfg,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	lgr.Printf("[INFO] starting server on %s", s.config.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.router,
		ReadTimeout:  s.config.Timeout,
		WriteTimeout: s.config.Timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("cinematch", "cinematch", s.config.Version))
	s.router.Use(rest.Ping)

	if s.config.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("POST /recommendations", s.recommendationsHandler)
		r.HandleFunc("POST /reviews", s.reviewsHandler)
		r.HandleFunc("GET /profile/{user_id}", s.profileHandler)
		r.HandleFunc("POST /profile/{user_id}/avoid", s.addAvoidHandler)
		r.HandleFunc("GET /jobs/dead-letter", s.deadLetterHandler)
		r.HandleFunc("POST /jobs/{id}/requeue", s.requeueHandler)
	})

	s.router.HandleFunc("GET /status", s.statusHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError maps engine errors to HTTP status codes with user-safe
// messages. Provider-internal error text never reaches the caller.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	body := map[string]interface{}{"error": domain.UserMessage(err)}

	var validationErr *domain.ValidationError
	var rateErr *domain.RateLimitError
	var conflictErr *domain.ConflictError
	switch {
	case errors.As(err, &validationErr):
		code = http.StatusBadRequest
	case errors.As(err, &rateErr):
		code = http.StatusTooManyRequests
		retryAfter := int(rateErr.RetryAfter.Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		body["retry_after"] = retryAfter
	case errors.As(err, &conflictErr):
		code = http.StatusConflict
		body["error"] = "conflicting update in progress, retry the request"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	default:
		lgr.Printf("[ERROR] request %s %s failed: %v", r.Method, r.URL.Path, err)
	}

	renderJSON(w, r, code, body)
}
