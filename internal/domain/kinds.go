package domain

import "fmt"

// HIndexKind selects the per-entry value an h-index is computed over
type HIndexKind string

const (
	HIndexHours    HIndexKind = "hours"
	HIndexSessions HIndexKind = "sessions"
	HIndexPlays    HIndexKind = "plays"
	// Distinct participants per game
	HIndexPeople HIndexKind = "people"
)

func HIndexKinds() []HIndexKind {
	return []HIndexKind{HIndexHours, HIndexSessions, HIndexPlays, HIndexPeople}
}

// HIndexKindForMetric returns the game h-index kind of the metric
func HIndexKindForMetric(metric Metric) HIndexKind {
	switch metric {
	case MetricHours:
		return HIndexHours
	case MetricSessions:
		return HIndexSessions
	case MetricPlays:
		return HIndexPlays
	}
	panic(fmt.Sprintf("logic error: unknown metric %q", string(metric)))
}

// RankingKind selects what is being ranked
type RankingKind string

const (
	RankingGames         RankingKind = "games"
	RankingPlayers       RankingKind = "players"
	RankingLocations     RankingKind = "locations"
	RankingUniquePlayers RankingKind = "unique-players"
)

func ParseRankingKind(raw string) (RankingKind, error) {
	switch RankingKind(raw) {
	case RankingGames, RankingPlayers, RankingLocations, RankingUniquePlayers:
		return RankingKind(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRankingKind, raw)
}
