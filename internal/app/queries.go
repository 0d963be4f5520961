package app

import (
	"context"
	"fmt"
	"strconv"

	"github.com/meeplestats/meeplestats/internal/adapters/cache"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/logging"
	"github.com/meeplestats/meeplestats/internal/reporting"
)

const maxYear = 9999

type SnapshotProvider interface {
	GetSnapshot(ctx context.Context) (domain.Snapshot, error)
}

type GetAvailableYears func(ctx context.Context) ([]int, error)
type GetYearSummary func(ctx context.Context, year int) (YearSummary, error)
type GetHIndexReport func(ctx context.Context, year int) (HIndexReport, error)
type GetMilestones func(ctx context.Context, metric domain.Metric, year int) ([]TierSummary, error)
type GetMilestoneGames func(ctx context.Context, metric domain.Metric, band int, year int) ([]TierGame, error)
type GetValueClubs func(ctx context.Context, metric domain.Metric, year int) ([]TierSummary, error)
type GetValueClubGames func(ctx context.Context, metric domain.Metric, band int, year int) ([]TierGame, error)
type GetActivity func(ctx context.Context, year int) (Activity, error)
type GetAchievements func(ctx context.Context, year int) ([]Achievement, error)
type GetRanking func(ctx context.Context, kind domain.RankingKind, metric domain.Metric, year int, limit int) ([]RankedEntry, error)

type queryKey struct {
	query  string
	year   int
	metric domain.Metric
	extra  string
}

func (k queryKey) cacheKey(version string) string {
	return fmt.Sprintf("%s/%s/%d/%s/%s", version, k.query, k.year, k.metric, k.extra)
}

// cachedQuery computes a result from the current snapshot, reusing an earlier
// result for the same snapshot version and parameters
func cachedQuery[T any](
	ctx context.Context,
	provider SnapshotProvider,
	resultCache cache.Cache[any],
	key queryKey,
	compute func(domain.Collection) T,
) (T, error) {
	var empty T

	snapshot, err := provider.GetSnapshot(ctx)
	if err != nil {
		// NOTE: SnapshotProvider implementations handle their own error reporting
		return empty, fmt.Errorf("failed to get snapshot: %w", err)
	}

	ctx = logging.AddMetaToContext(ctx, logging.SnapshotVersionAttr(snapshot.Version))
	ctx = reporting.SetSnapshotVersionInContext(ctx, snapshot.Version)

	result, _, err := cache.GetOrCreate(ctx, resultCache, key.cacheKey(snapshot.Version), func() (any, error) {
		return compute(snapshot.Collection), nil
	})
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to compute %s: %w", key.query, err))
		return empty, err
	}

	typed, ok := result.(T)
	if !ok {
		panic(fmt.Sprintf("logic error: cached %s result has type %T", key.query, result))
	}
	return typed, nil
}

func validateYear(year int) error {
	if year < domain.AllTime || year > maxYear {
		return fmt.Errorf("%w: %d", domain.ErrInvalidYear, year)
	}
	return nil
}

func validateMetric(metric domain.Metric) error {
	if !metric.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMetric, string(metric))
	}
	return nil
}

func validateBand(ladder domain.Ladder, band int) error {
	if !ladder.ValidBand(band) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidBand, band)
	}
	return nil
}

func BuildGetAvailableYears(provider SnapshotProvider, resultCache cache.Cache[any]) GetAvailableYears {
	return func(ctx context.Context) ([]int, error) {
		return cachedQuery(ctx, provider, resultCache, queryKey{query: "years"}, ComputeAvailableYears)
	}
}

func BuildGetYearSummary(provider SnapshotProvider, resultCache cache.Cache[any]) GetYearSummary {
	return func(ctx context.Context, year int) (YearSummary, error) {
		if err := validateYear(year); err != nil {
			return YearSummary{}, err
		}
		return cachedQuery(ctx, provider, resultCache, queryKey{query: "summary", year: year}, func(c domain.Collection) YearSummary {
			return ComputeYearSummary(c, year)
		})
	}
}

func BuildGetHIndexReport(provider SnapshotProvider, resultCache cache.Cache[any]) GetHIndexReport {
	return func(ctx context.Context, year int) (HIndexReport, error) {
		if err := validateYear(year); err != nil {
			return HIndexReport{}, err
		}
		return cachedQuery(ctx, provider, resultCache, queryKey{query: "hindex", year: year}, func(c domain.Collection) HIndexReport {
			return ComputeHIndexReport(c, year)
		})
	}
}

func BuildGetMilestones(provider SnapshotProvider, resultCache cache.Cache[any]) GetMilestones {
	return func(ctx context.Context, metric domain.Metric, year int) ([]TierSummary, error) {
		if err := validateYear(year); err != nil {
			return nil, err
		}
		if err := validateMetric(metric); err != nil {
			return nil, err
		}
		key := queryKey{query: "milestones", year: year, metric: metric}
		return cachedQuery(ctx, provider, resultCache, key, func(c domain.Collection) []TierSummary {
			return ComputeMilestones(c, metric, year)
		})
	}
}

func BuildGetMilestoneGames(provider SnapshotProvider, resultCache cache.Cache[any]) GetMilestoneGames {
	return func(ctx context.Context, metric domain.Metric, band int, year int) ([]TierGame, error) {
		if err := validateYear(year); err != nil {
			return nil, err
		}
		if err := validateMetric(metric); err != nil {
			return nil, err
		}
		if err := validateBand(domain.MilestoneLadder(metric), band); err != nil {
			return nil, err
		}
		key := queryKey{query: "milestone-games", year: year, metric: metric, extra: strconv.Itoa(band)}
		return cachedQuery(ctx, provider, resultCache, key, func(c domain.Collection) []TierGame {
			return ComputeMilestoneGames(c, metric, band, year)
		})
	}
}

func BuildGetValueClubs(provider SnapshotProvider, resultCache cache.Cache[any]) GetValueClubs {
	return func(ctx context.Context, metric domain.Metric, year int) ([]TierSummary, error) {
		if err := validateYear(year); err != nil {
			return nil, err
		}
		if err := validateMetric(metric); err != nil {
			return nil, err
		}
		key := queryKey{query: "valueclubs", year: year, metric: metric}
		return cachedQuery(ctx, provider, resultCache, key, func(c domain.Collection) []TierSummary {
			return ComputeValueClubs(c, metric, year)
		})
	}
}

func BuildGetValueClubGames(provider SnapshotProvider, resultCache cache.Cache[any]) GetValueClubGames {
	return func(ctx context.Context, metric domain.Metric, band int, year int) ([]TierGame, error) {
		if err := validateYear(year); err != nil {
			return nil, err
		}
		if err := validateMetric(metric); err != nil {
			return nil, err
		}
		if err := validateBand(domain.ValueClubLadder(), band); err != nil {
			return nil, err
		}
		key := queryKey{query: "valueclub-games", year: year, metric: metric, extra: strconv.Itoa(band)}
		return cachedQuery(ctx, provider, resultCache, key, func(c domain.Collection) []TierGame {
			return ComputeValueClubGames(c, metric, band, year)
		})
	}
}

func BuildGetActivity(provider SnapshotProvider, resultCache cache.Cache[any]) GetActivity {
	return func(ctx context.Context, year int) (Activity, error) {
		if err := validateYear(year); err != nil {
			return Activity{}, err
		}
		return cachedQuery(ctx, provider, resultCache, queryKey{query: "activity", year: year}, func(c domain.Collection) Activity {
			return ComputeActivity(c, domain.InYear(year))
		})
	}
}

func BuildGetAchievements(provider SnapshotProvider, resultCache cache.Cache[any]) GetAchievements {
	return func(ctx context.Context, year int) ([]Achievement, error) {
		if err := validateYear(year); err != nil {
			return nil, err
		}
		return cachedQuery(ctx, provider, resultCache, queryKey{query: "achievements", year: year}, func(c domain.Collection) []Achievement {
			return FilterAchievementsByYear(ComputeLoggingAchievements(c), year)
		})
	}
}

func BuildGetRanking(provider SnapshotProvider, resultCache cache.Cache[any]) GetRanking {
	return func(ctx context.Context, kind domain.RankingKind, metric domain.Metric, year int, limit int) ([]RankedEntry, error) {
		if err := validateYear(year); err != nil {
			return nil, err
		}
		if err := validateMetric(metric); err != nil {
			return nil, err
		}
		if _, err := domain.ParseRankingKind(string(kind)); err != nil {
			return nil, err
		}
		key := queryKey{query: "ranking-" + string(kind), year: year, metric: metric, extra: strconv.Itoa(limit)}
		return cachedQuery(ctx, provider, resultCache, key, func(c domain.Collection) []RankedEntry {
			return Rank(c, kind, metric, domain.InYear(year), limit)
		})
	}
}
