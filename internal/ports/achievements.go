package ports

import (
	"log/slog"
	"net/http"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/logging"
)

func MakeGetAchievementsHandler(
	getAchievements app.GetAchievements,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("achievements", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseStatsParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(params.Year))

		achievements, err := getAchievements(ctx, params.Year)
		if err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning achievements", "count", len(achievements))
		writeSuccessResponse(ctx, w, achievementsToResponse(params.Year, achievements))
	}

	return middleware(handler)
}
