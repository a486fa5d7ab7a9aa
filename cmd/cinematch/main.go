package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/cinematch/cinematch/pkg/config"
	"github.com/cinematch/cinematch/pkg/llm"
	"github.com/cinematch/cinematch/pkg/recommender"
	"github.com/cinematch/cinematch/pkg/repository"
	"github.com/cinematch/cinematch/pkg/scheduler"
	"github.com/cinematch/cinematch/pkg/tmdb"
	"github.com/cinematch/cinematch/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"cinematch.yml" description:"config file"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = opts.NoColor
	setupLog(opts.Debug)

	log.Printf("[INFO] starting cinematch version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires storage, providers, the recommendation engine, the background
// worker and the HTTP server, then blocks until the context is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// re-init logging so provider keys never show up in log output
	setupLog(opts.Debug, cfg.LLM.APIKey, cfg.TMDB.APIKey)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		RecencyWindow:   cfg.Recommend.RecencyWindow,
	})
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer func() {
		if closeErr := repos.Close(); closeErr != nil {
			log.Printf("[WARN] failed to close storage: %v", closeErr)
		}
	}()

	embedder := llm.NewEmbedder(cfg.LLM)
	explainer := llm.NewExplainer(cfg.LLM)

	movieAPI := tmdb.NewClient(cfg.TMDB)
	source := tmdb.NewSource(movieAPI, repos.Rating, repos.Item, cfg.TMDB)

	engine := recommender.NewEngine(repos.Profile, source, repos.Recency, repos.RateLimit, explainer,
		recommender.Config{
			Scorer: recommender.ScorerConfig{
				RelevanceWeight:    cfg.Recommend.LikeWeight,
				DislikeWeight:      cfg.Recommend.DislikeWeight,
				NoveltyWeight:      cfg.Recommend.NoveltyWeight,
				SafeThreshold:      cfg.Recommend.SafeThreshold,
				AdjacentThreshold:  cfg.Recommend.AdjacentThreshold,
				AdjacentNovelty:    cfg.Recommend.AdjacentNovelty,
				MinAvoidConfidence: cfg.Recommend.MinAvoidConfidence,
				HardAvoidThreshold: cfg.Recommend.HardAvoidThreshold,
				GenreRepeatWeight:  cfg.Recommend.GenreRepeatWeight,
				DecadeRepeatWeight: cfg.Recommend.DecadeRepeatWeight,
				MaxRepeatPenalty:   cfg.Recommend.MaxRepeatPenalty,
			},
			Lambda:            cfg.Recommend.Lambda,
			RateLimitInterval: cfg.Recommend.RateLimitInterval,
			MaxCount:          cfg.Recommend.MaxCount,
			RecentLimit:       cfg.Recommend.RecentLimit,
			MinPoolVectors:    cfg.Recommend.MinPoolVectors,
		})

	updater := recommender.NewProfileUpdater(repos.Rating, repos.Profile, recommender.ProfileUpdaterConfig{})

	sched := scheduler.NewScheduler(repos.Job, embedder, repos.Rating, updater, repos.Recency, scheduler.Config{
		PollInterval:      cfg.Schedule.PollInterval,
		BatchSize:         cfg.Schedule.BatchSize,
		BackoffBase:       cfg.Schedule.BackoffBase,
		VisibilityTimeout: cfg.Schedule.VisibilityTimeout,
		PruneInterval:     cfg.Schedule.PruneInterval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(engine, repos.Rating, repos.Profile, repos.Job, repos.RateLimit, server.Config{
		Listen:         cfg.Server.Listen,
		Timeout:        cfg.Server.Timeout,
		Version:        revision,
		Debug:          opts.Debug,
		MaxReviewChars: cfg.Recommend.MaxReviewChars,
		ReviewInterval: cfg.Recommend.ReviewInterval,
	})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	for _, sec := range secs {
		if sec != "" {
			logOpts = append(logOpts, lgr.Secret(sec))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
