package ports

import (
	"log/slog"
	"net/http"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/logging"
)

func MakeGetYearSummaryHandler(
	getYearSummary app.GetYearSummary,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("summary", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseStatsParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(params.Year))

		summary, err := getYearSummary(ctx, params.Year)
		if err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning year summary", "plays", summary.Totals.Plays)
		writeSuccessResponse(ctx, w, yearSummaryToResponse(summary))
	}

	return middleware(handler)
}
