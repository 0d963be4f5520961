package app

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/meeplestats/meeplestats/internal/domain"
)

type RankedEntry struct {
	Rank   int // 1-based position
	ID     int
	Name   string
	Totals domain.Totals
}

func compareByMetrics(order []domain.Metric) func(a, b RankedEntry) int {
	return func(a, b RankedEntry) int {
		for _, metric := range order {
			if c := cmp.Compare(metric.Value(b.Totals), metric.Value(a.Totals)); c != 0 {
				return c
			}
		}
		return 0
	}
}

// rank sorts entries that have at least one play, highest first, and keeps the
// top limit entries. limit <= 0 keeps all.
func rank(entries []RankedEntry, compare func(a, b RankedEntry) int, limit int) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Totals.Plays > 0 {
			ranked = append(ranked, entry)
		}
	}

	// Stable so input order decides remaining ties
	slices.SortStableFunc(ranked, compare)

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return slices.Clip(ranked)
}

func gameEntries(c domain.Collection, scope domain.Scope) []RankedEntry {
	totals := ComputeGameTotals(c, scope)
	entries := make([]RankedEntry, len(totals))
	for i, game := range totals {
		entries[i] = RankedEntry{ID: game.GameID, Name: game.Name, Totals: game.Totals}
	}
	return entries
}

func entityEntries(totals []EntityTotals) []RankedEntry {
	entries := make([]RankedEntry, len(totals))
	for i, entity := range totals {
		entries[i] = RankedEntry{ID: entity.ID, Name: entity.Name, Totals: entity.Totals}
	}
	return entries
}

// RankGames ranks the games played in scope by the metric.
// Ties are broken by the remaining metrics in canonical order, then catalog order.
func RankGames(c domain.Collection, metric domain.Metric, scope domain.Scope, limit int) []RankedEntry {
	return rank(gameEntries(c, scope), compareByMetrics(metric.TieBreakOrder()), limit)
}

// RankGamesByUniquePlayers ranks the games played in scope by their number of
// distinct participants. Ties are broken by hours, sessions, plays, then catalog order.
func RankGamesByUniquePlayers(c domain.Collection, scope domain.Scope, limit int) []RankedEntry {
	byMetrics := compareByMetrics(domain.Metrics())
	compare := func(a, b RankedEntry) int {
		if c := cmp.Compare(b.Totals.UniquePlayers, a.Totals.UniquePlayers); c != 0 {
			return c
		}
		return byMetrics(a, b)
	}
	return rank(gameEntries(c, scope), compare, limit)
}

// RankPlayers ranks the players you played with in scope by the metric.
// The self player and the anonymous player are not ranked.
func RankPlayers(c domain.Collection, metric domain.Metric, scope domain.Scope, limit int) []RankedEntry {
	entries := entityEntries(ComputePlayerTotals(c, scope))
	return rank(entries, compareByMetrics(metric.TieBreakOrder()), limit)
}

// RankLocations ranks the locations played at in scope by the metric
func RankLocations(c domain.Collection, metric domain.Metric, scope domain.Scope, limit int) []RankedEntry {
	entries := entityEntries(ComputeLocationTotals(c, scope))
	return rank(entries, compareByMetrics(metric.TieBreakOrder()), limit)
}

// Rank dispatches to the ranking of the given kind.
// The metric is ignored when ranking by unique players.
func Rank(c domain.Collection, kind domain.RankingKind, metric domain.Metric, scope domain.Scope, limit int) []RankedEntry {
	switch kind {
	case domain.RankingGames:
		return RankGames(c, metric, scope, limit)
	case domain.RankingPlayers:
		return RankPlayers(c, metric, scope, limit)
	case domain.RankingLocations:
		return RankLocations(c, metric, scope, limit)
	case domain.RankingUniquePlayers:
		return RankGamesByUniquePlayers(c, scope, limit)
	}
	panic(fmt.Sprintf("logic error: unknown ranking kind %q", string(kind)))
}
