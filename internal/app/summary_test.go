package app_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meeplestats/meeplestats/internal/app"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/domaintest"
)

func summaryCollection() domain.Collection {
	return domaintest.NewCollectionBuilder().
		WithGames(
			domaintest.NewGameBuilder(1, "Azul").WithOwnedCopy(11, "2024-02-01", 40).Build(),
			domaintest.NewGameBuilder(2, "Brass").WithType(domain.GameTypeExpansion).WithOwnedCopy(21, "2023-05-01", 60).Build(),
			domaintest.NewGameBuilder(3, "Cascadia").WithUnpricedCopy(31, "2024-06-01").Build(),
			domaintest.NewGameBuilder(4, "Dune").WithOwnedCopy(41, "", 25).Build(),
			domaintest.NewGameBuilder(5, "Everdell").WithUnownedCopy(51, 10).Build(),
			domaintest.NewGameBuilder(6, "Fields").WithOwnedCopy(61, "2019-12-01", 0).Build(),
		).
		WithPlay(1, "2024-03-05", 60).
		WithPlay(3, "2024-02-20", 60).
		WithPlay(2, "2023-06-01", 60).
		WithPlay(2, "2024-01-10", 60).
		Build()
}

func gameRefIDs(refs []app.GameRef) []int {
	ids := make([]int, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	return ids
}

func acquisitionCopyIDs(acquisitions []app.Acquisition) []int {
	ids := make([]int, len(acquisitions))
	for i, acquisition := range acquisitions {
		ids[i] = acquisition.CopyID
	}
	return ids
}

func TestComputeYearSummary(t *testing.T) {
	t.Parallel()

	c := summaryCollection()

	t.Run("year", func(t *testing.T) {
		t.Parallel()

		summary := app.ComputeYearSummary(c, 2024)
		require.Equal(t, 2024, summary.Year)
		require.Equal(t, 3, summary.Totals.Plays)
		require.Equal(t, 3, summary.GamesPlayed)
		// Brass was first played the year before
		require.Equal(t, []int{3, 1}, gameRefIDs(summary.NewToMe))

		require.Equal(t, []int{11, 31}, acquisitionCopyIDs(summary.Acquisitions))
		require.Equal(t, domaintest.DatePtr("2024-02-01"), summary.Acquisitions[0].Date)
		require.Equal(t, domaintest.Ptr(40.0), summary.Acquisitions[0].PricePaid)
		require.Nil(t, summary.Acquisitions[1].PricePaid)
		require.Equal(t, map[domain.GameType]int{domain.GameTypeBase: 2}, summary.AcquisitionsByType)
		require.Equal(t, 40.0, summary.AmountSpent)
	})

	t.Run("all time", func(t *testing.T) {
		t.Parallel()

		summary := app.ComputeYearSummary(c, domain.AllTime)
		require.Equal(t, 4, summary.Totals.Plays)
		require.Equal(t, []int{2, 3, 1}, gameRefIDs(summary.NewToMe))

		// Copies without an acquisition date only show up all time
		require.Equal(t, []int{11, 21, 31, 41, 61}, acquisitionCopyIDs(summary.Acquisitions))
		require.Nil(t, summary.Acquisitions[3].Date)
		require.Equal(t, map[domain.GameType]int{
			domain.GameTypeBase:      4,
			domain.GameTypeExpansion: 1,
		}, summary.AcquisitionsByType)
		require.Equal(t, 125.0, summary.AmountSpent)
	})

	t.Run("empty year", func(t *testing.T) {
		t.Parallel()

		summary := app.ComputeYearSummary(c, 2021)
		require.Equal(t, domain.Totals{}, summary.Totals)
		require.Equal(t, 0, summary.GamesPlayed)
		require.NotNil(t, summary.NewToMe)
		require.Empty(t, summary.NewToMe)
		require.NotNil(t, summary.Acquisitions)
		require.Empty(t, summary.Acquisitions)
		require.Equal(t, 0.0, summary.AmountSpent)
	})
}

func TestComputeAvailableYears(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{2024, 2023, 2019}, app.ComputeAvailableYears(summaryCollection()))
	require.Empty(t, app.ComputeAvailableYears(domaintest.NewCollectionBuilder().Build()))
}
