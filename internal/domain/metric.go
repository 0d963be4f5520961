package domain

import "fmt"

// Metric is the accumulated quantity a statistic is computed over
type Metric string

const (
	MetricHours    Metric = "hours"
	MetricSessions Metric = "sessions"
	MetricPlays    Metric = "plays"
)

// Metrics returns every metric in canonical order.
//
// The order decides tie-breaks in rankings and the order of results that cover
// all metrics.
func Metrics() []Metric {
	return []Metric{MetricHours, MetricSessions, MetricPlays}
}

func ParseMetric(raw string) (Metric, error) {
	switch Metric(raw) {
	case MetricHours, MetricSessions, MetricPlays:
		return Metric(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMetric, raw)
}

func (m Metric) Valid() bool {
	switch m {
	case MetricHours, MetricSessions, MetricPlays:
		return true
	}
	return false
}

// Value picks the value of the metric from the totals
func (m Metric) Value(totals Totals) float64 {
	switch m {
	case MetricHours:
		return totals.Hours()
	case MetricSessions:
		return float64(totals.Sessions)
	case MetricPlays:
		return float64(totals.Plays)
	}
	panic(fmt.Sprintf("logic error: unknown metric %q", string(m)))
}

// TieBreakOrder returns m followed by the remaining metrics in canonical order
func (m Metric) TieBreakOrder() []Metric {
	if !m.Valid() {
		panic(fmt.Sprintf("logic error: unknown metric %q", string(m)))
	}
	order := []Metric{m}
	for _, other := range Metrics() {
		if other != m {
			order = append(order, other)
		}
	}
	return order
}
