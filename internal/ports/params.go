package ports

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/validation"
)

const (
	defaultMetric       = domain.MetricHours
	defaultRankingLimit = 10
)

var paramsValidator = validation.New()

// statsParams are the query and path parameters shared by the stats endpoints.
//
// A missing year means all time and a missing metric means hours.
type statsParams struct {
	Year   int    `json:"year" validate:"gte=0,lte=9999"`
	Metric string `json:"metric" validate:"oneof=hours sessions plays"`
	Band   *int   `json:"band" validate:"omitempty,gte=0"`
	Limit  int    `json:"limit" validate:"gte=1,lte=100"`
	Kind   string `json:"kind" validate:"omitempty,oneof=games players locations unique-players"`
}

func (p statsParams) metric() domain.Metric {
	return domain.Metric(p.Metric)
}

// intParam parses an optional integer parameter, recording a field error if malformed
func intParam(query url.Values, name string, fieldErrors validation.FieldErrors) *int {
	raw := query.Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		fieldErrors[name] = "must be a number"
		return nil
	}
	return &value
}

func parseStatsParams(r *http.Request) (statsParams, error) {
	query := r.URL.Query()
	fieldErrors := validation.FieldErrors{}

	params := statsParams{
		Metric: query.Get("metric"),
		Limit:  defaultRankingLimit,
		Kind:   r.PathValue("kind"),
	}
	if params.Metric == "" {
		params.Metric = string(defaultMetric)
	}

	if query.Get("year") != "all" {
		if year := intParam(query, "year", fieldErrors); year != nil {
			params.Year = *year
		}
	}
	params.Band = intParam(query, "band", fieldErrors)
	if limit := intParam(query, "limit", fieldErrors); limit != nil {
		params.Limit = *limit
	}

	if len(fieldErrors) > 0 {
		return statsParams{}, fmt.Errorf("%w: %w", validation.ErrValidation, fieldErrors)
	}

	if err := paramsValidator.Validate(params); err != nil {
		return statsParams{}, err
	}
	return params, nil
}

// parseBandParams is parseStatsParams for endpoints listing the games of a single band
func parseBandParams(r *http.Request) (statsParams, int, error) {
	params, err := parseStatsParams(r)
	if err != nil {
		return statsParams{}, 0, err
	}
	if params.Band == nil {
		return statsParams{}, 0, fmt.Errorf("%w: %w", validation.ErrValidation, validation.FieldErrors{"band": "is required"})
	}
	return params, *params.Band, nil
}
