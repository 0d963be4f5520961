package ports

import (
	"log/slog"
	"net/http"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/logging"
)

func MakeGetActivityHandler(
	getActivity app.GetActivity,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("activity", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseStatsParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(params.Year))

		activity, err := getActivity(ctx, params.Year)
		if err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning activity", "playDays", activity.PlayDays)
		writeSuccessResponse(ctx, w, activityToResponse(params.Year, activity))
	}

	return middleware(handler)
}
