package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:cinematch.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Background worker configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for embeddings and explanations"`

	TMDB TMDBConfig `yaml:"tmdb" json:"tmdb" jsonschema:"description=Movie metadata provider configuration"`

	Recommend RecommendConfig `yaml:"recommend" json:"recommend" jsonschema:"description=Recommendation engine tuning"`
}

// ScheduleConfig controls the embedding job worker and maintenance loops
type ScheduleConfig struct {
	PollInterval      time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=5s,description=How often the worker polls for due jobs"`
	BatchSize         int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=10,minimum=1,description=Jobs claimed per poll"`
	BackoffBase       time.Duration `yaml:"backoff_base" json:"backoff_base" jsonschema:"default=30s,description=Base delay before a failed job retries; doubles per attempt"`
	VisibilityTimeout time.Duration `yaml:"visibility_timeout" json:"visibility_timeout" jsonschema:"default=5m,description=Processing lease before a stuck job is reclaimed"`
	PruneInterval     time.Duration `yaml:"prune_interval" json:"prune_interval" jsonschema:"default=1h,description=How often aged recency records are pruned"`
}

// EmbeddingConfig controls review text vectorization
type EmbeddingConfig struct {
	Model      string `yaml:"model" json:"model" jsonschema:"default=text-embedding-3-small,description=Embedding model name"`
	Dimensions int    `yaml:"dimensions" json:"dimensions" jsonschema:"default=1536,description=Embedding vector size"`
}

// LLMConfig represents LLM provider configuration
type LLMConfig struct {
	Endpoint    string          `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string          `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string          `yaml:"model" json:"model" jsonschema:"required,description=Chat model for explanations (e.g. gpt-4o-mini)"`
	Temperature float64         `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens   int             `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=200,description=Maximum tokens in response"`
	Timeout     time.Duration   `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	Embedding   EmbeddingConfig `yaml:"embedding" json:"embedding" jsonschema:"description=Embedding-specific settings"`
}

// TMDBConfig represents the movie metadata provider configuration
type TMDBConfig struct {
	Endpoint  string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=Metadata provider API endpoint"`
	APIKey    string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Request timeout"`
	PerSeed   int           `yaml:"per_seed" json:"per_seed" jsonschema:"default=20,description=Candidates fetched per seed movie"`
	MaxSeeds  int           `yaml:"max_seeds" json:"max_seeds" jsonschema:"default=5,description=Top rated movies used as candidate seeds"`
	PoolLimit int           `yaml:"pool_limit" json:"pool_limit" jsonschema:"default=100,description=Upper bound on the deduplicated candidate pool"`
}

// RecommendConfig tunes the scoring and diversification pipeline
type RecommendConfig struct {
	LikeWeight         float64       `yaml:"like_weight" json:"like_weight" jsonschema:"default=1.0,description=Weight of similarity to the like vector"`
	DislikeWeight      float64       `yaml:"dislike_weight" json:"dislike_weight" jsonschema:"default=0.7,description=Weight of similarity to the dislike vector (subtracted)"`
	NoveltyWeight      float64       `yaml:"novelty_weight" json:"novelty_weight" jsonschema:"default=0.2,description=Weight of distance from recently served items"`
	SafeThreshold      float64       `yaml:"safe_threshold" json:"safe_threshold" jsonschema:"default=0.45,description=Relevance at or above labels a pick safe"`
	AdjacentThreshold  float64       `yaml:"adjacent_threshold" json:"adjacent_threshold" jsonschema:"default=0.3,description=Relevance at or above labels a pick adjacent"`
	AdjacentNovelty    float64       `yaml:"adjacent_novelty" json:"adjacent_novelty" jsonschema:"default=0.7,description=Novelty at or above also labels a pick adjacent"`
	MinAvoidConfidence float64       `yaml:"min_avoid_confidence" json:"min_avoid_confidence" jsonschema:"default=0.6,description=Avoid patterns below this confidence are ignored"`
	HardAvoidThreshold float64       `yaml:"hard_avoid_threshold" json:"hard_avoid_threshold" jsonschema:"default=0.8,description=Total avoid penalty at or above this drops the candidate"`
	GenreRepeatWeight  float64       `yaml:"genre_repeat_weight" json:"genre_repeat_weight" jsonschema:"default=0.2,description=Repeat penalty per overrepresented genre"`
	DecadeRepeatWeight float64       `yaml:"decade_repeat_weight" json:"decade_repeat_weight" jsonschema:"default=0.12,description=Repeat penalty for an overrepresented decade"`
	MaxRepeatPenalty   float64       `yaml:"max_repeat_penalty" json:"max_repeat_penalty" jsonschema:"default=0.5,description=Cap on the total repeat penalty"`
	Lambda             float64       `yaml:"lambda" json:"lambda" jsonschema:"default=0.75,minimum=0,maximum=1,description=MMR relevance/diversity balance"`
	MaxCount           int           `yaml:"max_count" json:"max_count" jsonschema:"default=20,description=Upper bound on picks per request"`
	RateLimitInterval  time.Duration `yaml:"rate_limit_interval" json:"rate_limit_interval" jsonschema:"default=60s,description=Minimum time between requests per user"`
	ReviewInterval     time.Duration `yaml:"review_interval" json:"review_interval" jsonschema:"default=2s,description=Minimum time between review submissions per user"`
	RecencyWindow      time.Duration `yaml:"recency_window" json:"recency_window" jsonschema:"default=1440h,description=How long a served movie is suppressed"`
	RecentLimit        int           `yaml:"recent_limit" json:"recent_limit" jsonschema:"default=100,description=Recently served items considered for novelty"`
	MinPoolVectors     int           `yaml:"min_pool_vectors" json:"min_pool_vectors" jsonschema:"default=10,description=Pool size below which cold-start top-up kicks in"`
	MaxReviewChars     int           `yaml:"max_review_chars" json:"max_review_chars" jsonschema:"default=5000,description=Review text length limit"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) { //nolint:gocyclo // flat chain of default assignments
	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:cinematch.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.PollInterval == 0 {
		cfg.Schedule.PollInterval = 5 * time.Second
	}
	if cfg.Schedule.BatchSize == 0 {
		cfg.Schedule.BatchSize = 10
	}
	if cfg.Schedule.BackoffBase == 0 {
		cfg.Schedule.BackoffBase = 30 * time.Second
	}
	if cfg.Schedule.VisibilityTimeout == 0 {
		cfg.Schedule.VisibilityTimeout = 5 * time.Minute
	}
	if cfg.Schedule.PruneInterval == 0 {
		cfg.Schedule.PruneInterval = time.Hour
	}

	// set defaults for LLM
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 200
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 30 * time.Second
	}
	if cfg.LLM.Embedding.Model == "" {
		cfg.LLM.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.LLM.Embedding.Dimensions == 0 {
		cfg.LLM.Embedding.Dimensions = 1536
	}

	// set defaults for tmdb
	if cfg.TMDB.Timeout == 0 {
		cfg.TMDB.Timeout = 10 * time.Second
	}
	if cfg.TMDB.PerSeed == 0 {
		cfg.TMDB.PerSeed = 20
	}
	if cfg.TMDB.MaxSeeds == 0 {
		cfg.TMDB.MaxSeeds = 5
	}
	if cfg.TMDB.PoolLimit == 0 {
		cfg.TMDB.PoolLimit = 100
	}

	// set defaults for recommend
	if cfg.Recommend.LikeWeight == 0 {
		cfg.Recommend.LikeWeight = 1.0
	}
	if cfg.Recommend.DislikeWeight == 0 {
		cfg.Recommend.DislikeWeight = 0.7
	}
	if cfg.Recommend.NoveltyWeight == 0 {
		cfg.Recommend.NoveltyWeight = 0.2
	}
	if cfg.Recommend.SafeThreshold == 0 {
		cfg.Recommend.SafeThreshold = 0.45
	}
	if cfg.Recommend.AdjacentThreshold == 0 {
		cfg.Recommend.AdjacentThreshold = 0.30
	}
	if cfg.Recommend.AdjacentNovelty == 0 {
		cfg.Recommend.AdjacentNovelty = 0.70
	}
	if cfg.Recommend.MinAvoidConfidence == 0 {
		cfg.Recommend.MinAvoidConfidence = 0.6
	}
	if cfg.Recommend.HardAvoidThreshold == 0 {
		cfg.Recommend.HardAvoidThreshold = 0.8
	}
	if cfg.Recommend.GenreRepeatWeight == 0 {
		cfg.Recommend.GenreRepeatWeight = 0.20
	}
	if cfg.Recommend.DecadeRepeatWeight == 0 {
		cfg.Recommend.DecadeRepeatWeight = 0.12
	}
	if cfg.Recommend.MaxRepeatPenalty == 0 {
		cfg.Recommend.MaxRepeatPenalty = 0.5
	}
	if cfg.Recommend.Lambda == 0 {
		cfg.Recommend.Lambda = 0.75
	}
	if cfg.Recommend.MaxCount == 0 {
		cfg.Recommend.MaxCount = 20
	}
	if cfg.Recommend.RateLimitInterval == 0 {
		cfg.Recommend.RateLimitInterval = time.Minute
	}
	if cfg.Recommend.ReviewInterval == 0 {
		cfg.Recommend.ReviewInterval = 2 * time.Second
	}
	if cfg.Recommend.RecencyWindow == 0 {
		cfg.Recommend.RecencyWindow = 60 * 24 * time.Hour
	}
	if cfg.Recommend.RecentLimit == 0 {
		cfg.Recommend.RecentLimit = 100
	}
	if cfg.Recommend.MinPoolVectors == 0 {
		cfg.Recommend.MinPoolVectors = 10
	}
	if cfg.Recommend.MaxReviewChars == 0 {
		cfg.Recommend.MaxReviewChars = 5000
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate LLM config
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Embedding.Dimensions < 1 {
		return fmt.Errorf("llm.embedding.dimensions must be positive")
	}

	// validate tmdb config
	if cfg.TMDB.Endpoint == "" {
		return fmt.Errorf("tmdb.endpoint is required")
	}
	if cfg.TMDB.PerSeed < 1 {
		return fmt.Errorf("tmdb.per_seed must be at least 1")
	}

	// validate recommend config
	if cfg.Recommend.Lambda < 0 || cfg.Recommend.Lambda > 1 {
		return fmt.Errorf("recommend.lambda must be between 0 and 1")
	}
	if cfg.Recommend.SafeThreshold < cfg.Recommend.AdjacentThreshold {
		return fmt.Errorf("recommend.safe_threshold must not be below adjacent_threshold")
	}
	if cfg.Recommend.MaxCount < 1 {
		return fmt.Errorf("recommend.max_count must be at least 1")
	}
	if cfg.Recommend.RateLimitInterval < 0 {
		return fmt.Errorf("recommend.rate_limit_interval must be non-negative")
	}
	if cfg.Recommend.ReviewInterval < 0 {
		return fmt.Errorf("recommend.review_interval must be non-negative")
	}
	if cfg.Recommend.MinAvoidConfidence < 0 || cfg.Recommend.MinAvoidConfidence > 1 {
		return fmt.Errorf("recommend.min_avoid_confidence must be between 0 and 1")
	}
	if cfg.Recommend.HardAvoidThreshold <= 0 {
		return fmt.Errorf("recommend.hard_avoid_threshold must be positive")
	}

	// validate schedule config
	if cfg.Schedule.BatchSize < 1 {
		return fmt.Errorf("schedule.batch_size must be at least 1")
	}
	if cfg.Schedule.VisibilityTimeout < time.Second {
		return fmt.Errorf("schedule.visibility_timeout must be at least 1 second")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}
