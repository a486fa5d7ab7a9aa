package tmdb

import (
	"context"
	"sort"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/cinematch/cinematch/pkg/config"
	"github.com/cinematch/cinematch/pkg/domain"
)

//go:generate moq -out mocks/movie_api.go -pkg mocks -skip-ensure -fmt goimports . MovieAPI
//go:generate moq -out mocks/seed_lister.go -pkg mocks -skip-ensure -fmt goimports . SeedLister
//go:generate moq -out mocks/item_cache.go -pkg mocks -skip-ensure -fmt goimports . ItemCache

// MovieAPI is the metadata provider surface the source needs
type MovieAPI interface {
	Similar(ctx context.Context, itemID int64, limit int) ([]domain.Candidate, error)
	Recommended(ctx context.Context, itemID int64, limit int) ([]domain.Candidate, error)
	Popular(ctx context.Context, limit int) ([]domain.Candidate, error)
	TopRated(ctx context.Context, limit int) ([]domain.Candidate, error)
}

// SeedLister supplies the user's own ratings for seeding and exclusion
type SeedLister interface {
	SeedItemIDs(ctx context.Context, userID string, minRating float64, limit int) ([]int64, error)
	RatedItemIDs(ctx context.Context, userID string) (map[int64]bool, error)
}

// ItemCache persists candidate metadata for recency lookups
type ItemCache interface {
	UpsertItems(ctx context.Context, items []domain.Candidate) error
}

// seedMinRating is the floor for a rating to seed the pool
const seedMinRating = 4.0

// maxSeedFetchers bounds concurrent similar-movie requests per pool build
const maxSeedFetchers = 4

// Source builds candidate pools from the metadata provider. A warm user's
// pool comes from movies similar to their top-rated ones; cold start falls
// back to popular and top-rated lists. Provider outages degrade to whatever
// was fetched, never to an error.
type Source struct {
	api    MovieAPI
	seeds  SeedLister
	cache  ItemCache
	config config.TMDBConfig
}

// NewSource creates a new candidate source
func NewSource(api MovieAPI, seeds SeedLister, cache ItemCache, cfg config.TMDBConfig) *Source {
	return &Source{api: api, seeds: seeds, cache: cache, config: cfg}
}

// FetchCandidates returns a deduplicated candidate pool for the user,
// excluding the given IDs and everything the user already rated
func (s *Source) FetchCandidates(ctx context.Context, profile *domain.TasteProfile, excludeIDs map[int64]bool, coldStart bool) ([]domain.Candidate, error) {
	exclude := make(map[int64]bool, len(excludeIDs))
	for id := range excludeIDs {
		exclude[id] = true
	}

	rated, err := s.seeds.RatedItemIDs(ctx, profile.UserID)
	if err != nil {
		lgr.Printf("[WARN] failed to get rated ids for %s: %v", profile.UserID, err)
	}
	for id := range rated {
		exclude[id] = true
	}

	var pool []domain.Candidate
	if coldStart {
		pool = s.coldStartPool(ctx)
	} else {
		pool = s.seededPool(ctx, profile.UserID)
	}

	result := dedupe(pool, exclude, s.config.PoolLimit)

	if len(result) > 0 {
		if err := s.cache.UpsertItems(ctx, result); err != nil {
			lgr.Printf("[WARN] failed to cache %d candidates: %v", len(result), err)
		}
	}
	return result, nil
}

// seededPool gathers movies similar to the user's favorites
func (s *Source) seededPool(ctx context.Context, userID string) []domain.Candidate {
	seeds, err := s.seeds.SeedItemIDs(ctx, userID, seedMinRating, s.config.MaxSeeds)
	if err != nil {
		lgr.Printf("[WARN] failed to get seeds for %s: %v", userID, err)
		return nil
	}
	if len(seeds) == 0 {
		// nothing rated highly enough, treat like a cold start
		return s.coldStartPool(ctx)
	}

	// fetch similar and recommended per seed concurrently, keeping results in
	// seed order so dedupe prefers candidates from the strongest seeds
	similarPerSeed := make([][]domain.Candidate, len(seeds))
	recommendedPerSeed := make([][]domain.Candidate, len(seeds))
	var eg errgroup.Group
	eg.SetLimit(maxSeedFetchers)
	for i, seed := range seeds {
		eg.Go(func() error {
			similar, err := s.api.Similar(ctx, seed, s.config.PerSeed)
			if err != nil {
				lgr.Printf("[WARN] similar movies for %d failed: %v", seed, err)
				return nil // per-seed failures degrade, never abort the pool
			}
			similarPerSeed[i] = similar
			return nil
		})
		eg.Go(func() error {
			recommended, err := s.api.Recommended(ctx, seed, s.config.PerSeed)
			if err != nil {
				lgr.Printf("[WARN] recommended movies for %d failed: %v", seed, err)
				return nil
			}
			recommendedPerSeed[i] = recommended
			return nil
		})
	}
	_ = eg.Wait()

	var pool []domain.Candidate
	for i := range seeds {
		pool = append(pool, similarPerSeed[i]...)
		pool = append(pool, recommendedPerSeed[i]...)
	}
	return pool
}

// coldStartPool gathers broadly liked movies for users without taste signal
func (s *Source) coldStartPool(ctx context.Context) []domain.Candidate {
	var pool []domain.Candidate

	popular, err := s.api.Popular(ctx, s.config.PerSeed)
	if err != nil {
		lgr.Printf("[WARN] popular movies failed: %v", err)
	} else {
		pool = append(pool, popular...)
	}

	topRated, err := s.api.TopRated(ctx, s.config.PerSeed)
	if err != nil {
		lgr.Printf("[WARN] top rated movies failed: %v", err)
	} else {
		pool = append(pool, topRated...)
	}
	return pool
}

// dedupe drops excluded and duplicate movies, keeps the pool bounded and
// ordered by quality so the cap cuts the weakest candidates. A duplicate
// wins its slot when its quality is higher, so a stale listing arriving
// first does not shadow a richer one.
func dedupe(pool []domain.Candidate, exclude map[int64]bool, limit int) []domain.Candidate {
	seen := make(map[int64]int, len(pool)) // itemID -> index in result
	result := make([]domain.Candidate, 0, len(pool))
	for _, c := range pool {
		if c.ItemID == 0 || exclude[c.ItemID] {
			continue
		}
		if idx, ok := seen[c.ItemID]; ok {
			if c.Quality() > result[idx].Quality() {
				result[idx] = c
			}
			continue
		}
		seen[c.ItemID] = len(result)
		result = append(result, c)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Quality() != result[j].Quality() {
			return result[i].Quality() > result[j].Quality()
		}
		return result[i].ItemID < result[j].ItemID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
