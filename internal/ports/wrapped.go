package ports

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/logging"
)

const wrappedTopGames = 5

type wrappedResponse struct {
	Year         int                   `json:"year"`
	Summary      yearSummaryResponse   `json:"summary"`
	HIndex       hIndexReportResponse  `json:"hIndex"`
	Activity     activityResponse      `json:"activity"`
	Achievements []achievementResponse `json:"achievements"`
	TopGames     []rankedEntryResponse `json:"topGames"`
}

// WrappedQueries are the queries making up a year in review
type WrappedQueries struct {
	GetYearSummary  app.GetYearSummary
	GetHIndexReport app.GetHIndexReport
	GetActivity     app.GetActivity
	GetAchievements app.GetAchievements
	GetRanking      app.GetRanking
}

// MakeGetWrappedHandler serves a year in review, running the underlying queries concurrently
func MakeGetWrappedHandler(
	queries WrappedQueries,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("wrapped", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseStatsParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		year := params.Year
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(year))

		var (
			summary      app.YearSummary
			report       app.HIndexReport
			activity     app.Activity
			achievements []app.Achievement
			topGames     []app.RankedEntry
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			summary, err = queries.GetYearSummary(gctx, year)
			return err
		})
		g.Go(func() error {
			var err error
			report, err = queries.GetHIndexReport(gctx, year)
			return err
		})
		g.Go(func() error {
			var err error
			activity, err = queries.GetActivity(gctx, year)
			return err
		})
		g.Go(func() error {
			var err error
			achievements, err = queries.GetAchievements(gctx, year)
			return err
		})
		g.Go(func() error {
			var err error
			topGames, err = queries.GetRanking(gctx, domain.RankingGames, params.metric(), year, wrappedTopGames)
			return err
		})
		if err := g.Wait(); err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning wrapped")
		writeSuccessResponse(ctx, w, wrappedResponse{
			Year:         year,
			Summary:      yearSummaryToResponse(summary),
			HIndex:       hIndexReportToResponse(report),
			Activity:     activityToResponse(year, activity),
			Achievements: achievementsToResponse(year, achievements).Achievements,
			TopGames:     rankingToResponse(year, domain.RankingGames, params.metric(), topGames).Entries,
		})
	}

	return middleware(handler)
}
