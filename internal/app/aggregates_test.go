package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/domaintest"
)

func aggregatesCollection() domain.Collection {
	return domaintest.NewCollectionBuilder().
		WithSelf(1).
		WithAnonymous(99).
		WithPlayer(1, "Me").
		WithPlayer(2, "Alice").
		WithPlayer(3, "Bob").
		WithPlayer(99, "Anonymous").
		WithLocation(1, "Home").
		WithLocation(2, "Club").
		WithGames(
			domaintest.NewGameBuilder(1, "Azul").Build(),
			domaintest.NewGameBuilder(2, "Brass").WithType(domain.GameTypeExpansion).Build(),
		).
		WithPlays(
			domaintest.NewPlayBuilder(1, 1, "2024-01-01").WithMinutes(30).WithPlayers(1, 2, 99).AtLocation(1).Build(),
			domaintest.NewPlayBuilder(2, 1, "2024-01-01").WithMinutes(30).WithPlayers(1, 2, 99).AtLocation(2).Build(),
			domaintest.NewPlayBuilder(3, 2, "2024-02-01").WithMinutes(90).WithPlayers(1, 3, 3).AtLocation(1).Build(),
			// Not in the catalog, at an unknown location, with an unknown player
			domaintest.NewPlayBuilder(4, 42, "2024-03-01").WithMinutes(60).WithPlayers(1, 7).AtLocation(9).Build(),
			domaintest.NewPlayBuilder(5, 1, "2023-12-31").WithMinutes(-5).WithPlayers(2).Build(),
		).
		Build()
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	c := aggregatesCollection()

	t.Run("in year", func(t *testing.T) {
		t.Parallel()

		totals := app.ComputeTotals(c, domain.InYear(2024))
		require.Equal(t, domain.Totals{
			Minutes:  210,
			Sessions: 3,
			Plays:    4,
			// Me, Alice, Bob, the unknown player and two anonymous occurrences
			UniquePlayers: 6,
			Locations:     2,
			FirstPlayed:   domaintest.Date("2024-01-01"),
			LastPlayed:    domaintest.Date("2024-03-01"),
		}, totals)
		require.InDelta(t, 3.5, totals.Hours(), 1e-9)
	})

	t.Run("negative durations are ignored", func(t *testing.T) {
		t.Parallel()

		totals := app.ComputeTotals(c, domain.InYear(2023))
		require.Equal(t, 0, totals.Minutes)
		require.Equal(t, 1, totals.Plays)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, domain.Totals{}, app.ComputeTotals(c, domain.InYear(2020)))
	})
}

func TestComputeGameTotals(t *testing.T) {
	t.Parallel()

	c := aggregatesCollection()
	totals := app.ComputeGameTotals(c, domain.InYear(2024))

	require.Len(t, totals, 2)
	require.Equal(t, 1, totals[0].GameID)
	require.Equal(t, "Azul", totals[0].Name)
	require.Equal(t, domain.Totals{
		Minutes:       60,
		Sessions:      1,
		Plays:         2,
		UniquePlayers: 4,
		Locations:     2,
		FirstPlayed:   domaintest.Date("2024-01-01"),
		LastPlayed:    domaintest.Date("2024-01-01"),
	}, totals[0].Totals)

	require.Equal(t, domain.GameTypeExpansion, totals[1].Type)
	// Bob is listed twice but counted once
	require.Equal(t, 2, totals[1].Totals.UniquePlayers)

	untouched := app.ComputeGameTotals(c, domain.InYear(2020))
	require.Len(t, untouched, 2)
	require.Equal(t, domain.Totals{}, untouched[0].Totals)
}

func TestComputePlayerTotals(t *testing.T) {
	t.Parallel()

	c := aggregatesCollection()
	totals := app.ComputePlayerTotals(c, domain.AllTimeScope())

	require.Len(t, totals, 2)

	require.Equal(t, 2, totals[0].ID)
	require.Equal(t, "Alice", totals[0].Name)
	require.Equal(t, 3, totals[0].Totals.Plays)
	require.Equal(t, 2, totals[0].Totals.Sessions)
	require.Equal(t, 60, totals[0].Totals.Minutes)

	// Listed twice in one play, counted once
	require.Equal(t, 3, totals[1].ID)
	require.Equal(t, 1, totals[1].Totals.Plays)
	require.Equal(t, 90, totals[1].Totals.Minutes)
}

func TestComputeLocationTotals(t *testing.T) {
	t.Parallel()

	c := aggregatesCollection()
	totals := app.ComputeLocationTotals(c, domain.AllTimeScope())

	require.Len(t, totals, 2)
	require.Equal(t, "Home", totals[0].Name)
	require.Equal(t, 2, totals[0].Totals.Plays)
	require.Equal(t, 120, totals[0].Totals.Minutes)
	require.Equal(t, 1, totals[0].Totals.Locations)

	require.Equal(t, "Club", totals[1].Name)
	require.Equal(t, 1, totals[1].Totals.Plays)
}
