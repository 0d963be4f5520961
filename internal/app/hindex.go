package app

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/meeplestats/meeplestats/internal/domain"
)

// IndexEntry is a game or player together with the value it contributes to an h-index
type IndexEntry struct {
	ID    int
	Name  string
	Value float64
}

type HIndex struct {
	Value int
	// The entries making up the index, highest value first
	Contributors []IndexEntry
}

type HIndexChange struct {
	Kind     domain.HIndexKind
	Current  HIndex // Through the year
	Previous HIndex // Through the year before
	Increase int
	// Entries contributing to the current index whose value through the year
	// before was below the current index
	NewContributors []IndexEntry
}

// ComputeHIndex returns the largest n such that at least n values are >= n
func ComputeHIndex(values []float64) int {
	sorted := slices.Clone(values)
	slices.SortFunc(sorted, func(a, b float64) int {
		return cmp.Compare(b, a)
	})

	h := 0
	for i, value := range sorted {
		if value < float64(i+1) {
			break
		}
		h = i + 1
	}
	return h
}

func computeHIndexFromEntries(entries []IndexEntry) HIndex {
	sorted := slices.Clone(entries)
	// Stable to keep input order among equal values
	slices.SortStableFunc(sorted, func(a, b IndexEntry) int {
		return cmp.Compare(b.Value, a.Value)
	})

	h := 0
	for i, entry := range sorted {
		if entry.Value < float64(i+1) {
			break
		}
		h = i + 1
	}

	return HIndex{
		Value:        h,
		Contributors: slices.Clip(sorted[:h]),
	}
}

// ComputeGameValues returns the value of every game in the catalog for the metric
func ComputeGameValues(c domain.Collection, metric domain.Metric, scope domain.Scope) []IndexEntry {
	totals := ComputeGameTotals(c, scope)
	entries := make([]IndexEntry, len(totals))
	for i, game := range totals {
		entries[i] = IndexEntry{
			ID:    game.GameID,
			Name:  game.Name,
			Value: metric.Value(game.Totals),
		}
	}
	return entries
}

// ComputePeopleValues returns the number of distinct participants of every game
func ComputePeopleValues(c domain.Collection, scope domain.Scope) []IndexEntry {
	totals := ComputeGameTotals(c, scope)
	entries := make([]IndexEntry, len(totals))
	for i, game := range totals {
		entries[i] = IndexEntry{
			ID:    game.GameID,
			Name:  game.Name,
			Value: float64(game.Totals.UniquePlayers),
		}
	}
	return entries
}

func ComputeGameHIndex(c domain.Collection, metric domain.Metric, scope domain.Scope) HIndex {
	return computeHIndexFromEntries(ComputeGameValues(c, metric, scope))
}

// ComputePeopleHIndex returns the largest n such that n games were each played
// with at least n distinct people
func ComputePeopleHIndex(c domain.Collection, scope domain.Scope) HIndex {
	return computeHIndexFromEntries(ComputePeopleValues(c, scope))
}

// ComputePlayerHIndex returns the largest n such that n players each have a
// value of at least n for the metric
func ComputePlayerHIndex(c domain.Collection, metric domain.Metric, scope domain.Scope) HIndex {
	totals := ComputePlayerTotals(c, scope)
	entries := make([]IndexEntry, len(totals))
	for i, player := range totals {
		entries[i] = IndexEntry{
			ID:    player.ID,
			Name:  player.Name,
			Value: metric.Value(player.Totals),
		}
	}
	return computeHIndexFromEntries(entries)
}

func computeKindValues(c domain.Collection, kind domain.HIndexKind, scope domain.Scope) []IndexEntry {
	switch kind {
	case domain.HIndexHours:
		return ComputeGameValues(c, domain.MetricHours, scope)
	case domain.HIndexSessions:
		return ComputeGameValues(c, domain.MetricSessions, scope)
	case domain.HIndexPlays:
		return ComputeGameValues(c, domain.MetricPlays, scope)
	case domain.HIndexPeople:
		return ComputePeopleValues(c, scope)
	}
	panic(fmt.Sprintf("logic error: unknown h-index kind %q", string(kind)))
}

// ComputeKindHIndex computes the h-index of the given kind within the scope
func ComputeKindHIndex(c domain.Collection, kind domain.HIndexKind, scope domain.Scope) HIndex {
	return computeHIndexFromEntries(computeKindValues(c, kind, scope))
}

// ComputeHIndexChange compares the h-index through the year with the h-index
// through the year before. For AllTime there is nothing to compare against.
func ComputeHIndexChange(c domain.Collection, kind domain.HIndexKind, year int) HIndexChange {
	current := ComputeKindHIndex(c, kind, domain.ThroughYear(year))

	previousValues := []IndexEntry{}
	if year != domain.AllTime {
		previousValues = computeKindValues(c, kind, domain.ThroughYear(year-1))
	}
	previous := computeHIndexFromEntries(previousValues)

	previousByID := make(map[int]float64, len(previousValues))
	for _, entry := range previousValues {
		previousByID[entry.ID] = entry.Value
	}

	newContributors := []IndexEntry{}
	for _, entry := range current.Contributors {
		if previousByID[entry.ID] < float64(current.Value) {
			newContributors = append(newContributors, entry)
		}
	}

	return HIndexChange{
		Kind:            kind,
		Current:         current,
		Previous:        previous,
		Increase:        current.Value - previous.Value,
		NewContributors: newContributors,
	}
}

// ComputeHIndexChanges computes the change of every h-index kind, in kind order
func ComputeHIndexChanges(c domain.Collection, year int) []HIndexChange {
	kinds := domain.HIndexKinds()
	changes := make([]HIndexChange, len(kinds))
	for i, kind := range kinds {
		changes[i] = ComputeHIndexChange(c, kind, year)
	}
	return changes
}

type KindHIndex struct {
	Kind   domain.HIndexKind
	HIndex HIndex
}

type MetricHIndex struct {
	Metric domain.Metric
	HIndex HIndex
}

// HIndexReport gathers every h-index of a year
type HIndexReport struct {
	Year int
	// Computed from the plays within the year only
	InYear []KindHIndex
	// Lifetime values through the year compared with the year before
	Changes []HIndexChange
	// Player h-indices within the year, in metric order
	Players []MetricHIndex
}

func ComputeHIndexReport(c domain.Collection, year int) HIndexReport {
	scope := domain.InYear(year)

	inYear := []KindHIndex{}
	for _, kind := range domain.HIndexKinds() {
		inYear = append(inYear, KindHIndex{Kind: kind, HIndex: ComputeKindHIndex(c, kind, scope)})
	}

	players := []MetricHIndex{}
	for _, metric := range domain.Metrics() {
		players = append(players, MetricHIndex{Metric: metric, HIndex: ComputePlayerHIndex(c, metric, scope)})
	}

	return HIndexReport{
		Year:    year,
		InYear:  inYear,
		Changes: ComputeHIndexChanges(c, year),
		Players: players,
	}
}
