package domain_test

import (
	"testing"

	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestMetric(t *testing.T) {
	t.Parallel()

	t.Run("parse", func(t *testing.T) {
		t.Parallel()

		for _, metric := range domain.Metrics() {
			parsed, err := domain.ParseMetric(string(metric))
			require.NoError(t, err)
			require.Equal(t, metric, parsed)
			require.True(t, metric.Valid())
		}

		for _, raw := range []string{"", "Hours", "minutes", "wins"} {
			_, err := domain.ParseMetric(raw)
			require.ErrorIs(t, err, domain.ErrInvalidMetric)
			require.False(t, domain.Metric(raw).Valid())
		}
	})

	t.Run("value", func(t *testing.T) {
		t.Parallel()

		totals := domain.Totals{Minutes: 90, Sessions: 2, Plays: 3}
		require.InDelta(t, 1.5, domain.MetricHours.Value(totals), 1e-9)
		require.Equal(t, 2.0, domain.MetricSessions.Value(totals))
		require.Equal(t, 3.0, domain.MetricPlays.Value(totals))

		require.Panics(t, func() {
			domain.Metric("wins").Value(totals)
		})
	})

	t.Run("tie break order", func(t *testing.T) {
		t.Parallel()

		require.Equal(t,
			[]domain.Metric{domain.MetricHours, domain.MetricSessions, domain.MetricPlays},
			domain.MetricHours.TieBreakOrder(),
		)
		require.Equal(t,
			[]domain.Metric{domain.MetricPlays, domain.MetricHours, domain.MetricSessions},
			domain.MetricPlays.TieBreakOrder(),
		)
		require.Equal(t,
			[]domain.Metric{domain.MetricSessions, domain.MetricHours, domain.MetricPlays},
			domain.MetricSessions.TieBreakOrder(),
		)
	})
}

func TestKinds(t *testing.T) {
	t.Parallel()

	require.Equal(t, domain.HIndexHours, domain.HIndexKindForMetric(domain.MetricHours))
	require.Equal(t, domain.HIndexPlays, domain.HIndexKindForMetric(domain.MetricPlays))
	require.Len(t, domain.HIndexKinds(), 4)

	for _, raw := range []string{"games", "players", "locations", "unique-players"} {
		kind, err := domain.ParseRankingKind(raw)
		require.NoError(t, err)
		require.Equal(t, domain.RankingKind(raw), kind)
	}
	_, err := domain.ParseRankingKind("designers")
	require.ErrorIs(t, err, domain.ErrInvalidRankingKind)
}
