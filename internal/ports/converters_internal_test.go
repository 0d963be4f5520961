package ports

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
)

func TestFiniteOrNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, finiteOrNil(math.Inf(1)))
	require.Nil(t, finiteOrNil(math.Inf(-1)))
	require.Nil(t, finiteOrNil(math.NaN()))
	require.Equal(t, 2.5, *finiteOrNil(2.5))
	require.Equal(t, 0.0, *finiteOrNil(0))
}

func TestBandToResponse(t *testing.T) {
	t.Parallel()

	ptr := func(value float64) *float64 {
		return &value
	}

	t.Run("milestones", func(t *testing.T) {
		t.Parallel()

		ladder := domain.MilestoneLadder(domain.MetricPlays)
		require.Equal(t, bandResponse{Name: "nickel", Min: 5, Max: ptr(10)}, bandToResponse(ladder.Band(0), false))
		require.Equal(t, bandResponse{Name: "dollar", Min: 100}, bandToResponse(ladder.Band(3), false))
	})

	t.Run("value clubs", func(t *testing.T) {
		t.Parallel()

		ladder := domain.ValueClubLadder()
		require.Equal(t, bandResponse{Name: "$5.00", Min: 2.5, Max: ptr(5)}, bandToResponse(ladder.Band(0), true))

		cheapest := bandToResponse(ladder.Band(3), true)
		require.Equal(t, bandResponse{Name: "$0.50", Min: 0, Max: ptr(0.5)}, cheapest)
		require.False(t, math.Signbit(cheapest.Min))
	})
}

func TestTierGamesToResponse(t *testing.T) {
	t.Parallel()

	games := tierGamesToResponse([]app.TierGame{
		{GameID: 1, Name: "Azul", Value: math.Inf(1), Band: -1, PreviousValue: math.Inf(1), PreviousBand: -1},
		{GameID: 2, Name: "Brass", Value: 1.5, Band: 1, PreviousValue: 3, PreviousBand: 0},
	})

	require.Nil(t, games[0].Value)
	require.Nil(t, games[0].PreviousValue)
	require.Equal(t, 1.5, *games[1].Value)
	require.Equal(t, 3.0, *games[1].PreviousValue)
}

func TestActivityToResponse(t *testing.T) {
	t.Parallel()

	response := activityToResponse(2024, app.Activity{})
	require.Nil(t, response.LongestDay)
	require.Nil(t, response.LongestStreak.Start)
	require.Equal(t, 0, response.LongestDrySpell.Length)
}
