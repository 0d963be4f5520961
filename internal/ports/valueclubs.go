package ports

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/logging"
	"github.com/meeplestats/meeplestats/internal/reporting"
)

func MakeGetValueClubsHandler(
	getValueClubs app.GetValueClubs,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("valueclubs", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseStatsParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(params.Year), logging.MetricAttr(params.Metric))

		clubs, err := getValueClubs(ctx, params.metric(), params.Year)
		if err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning value clubs")
		writeSuccessResponse(ctx, w, tiersToResponse(params.Year, params.metric(), clubs, true))
	}

	return middleware(handler)
}

func MakeGetValueClubGamesHandler(
	getValueClubGames app.GetValueClubGames,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStatsMiddleware("valueclub_games", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, band, err := parseBandParams(r)
		if err != nil {
			writeParamsError(ctx, w, err)
			return
		}
		ctx = logging.AddMetaToContext(ctx, logging.YearAttr(params.Year), logging.MetricAttr(params.Metric), logging.BandAttr(band))
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{"band": strconv.Itoa(band)})

		games, err := getValueClubGames(ctx, params.metric(), band, params.Year)
		if err != nil {
			writeQueryError(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning value club games", "count", len(games))
		writeSuccessResponse(ctx, w, tierGamesResponse{
			Year:   params.Year,
			Metric: params.Metric,
			Band:   bandToResponse(domain.ValueClubLadder().Band(band), true),
			Games:  tierGamesToResponse(games),
		})
	}

	return middleware(handler)
}
