package ports

import (
	"log/slog"
	"net/http"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/logging"
	"github.com/meeplestats/meeplestats/internal/reporting"
)

// MakeGetRankingHandler serves the top entries of the ranking kind in the path.
// The limit defaults to 10.
func MakeGetRankingHandler(
	getRanking app.GetRanking,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("rankings", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseStatsParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		kind := domain.RankingKind(params.Kind)
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(params.Year), logging.MetricAttr(params.Metric), logging.RankingKindAttr(params.Kind))
		ctx = reporting.AddTagsToContext(ctx, map[string]string{"rankingKind": params.Kind})

		entries, err := getRanking(ctx, kind, params.metric(), params.Year, params.Limit)
		if err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning ranking", "count", len(entries))
		writeSuccessResponse(ctx, w, rankingToResponse(params.Year, kind, params.metric(), entries))
	}

	return middleware(handler)
}
