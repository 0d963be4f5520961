package app

import (
	"math"
	"time"

	"github.com/meeplestats/meeplestats/internal/domain"
)

func playedWithOwnedCopy(play domain.Play) bool {
	return play.CopyID != nil
}

// classifyValueClubs places every participating game on the value club ladder
// by its cost per metric through the year.
//
// Only games with an owned copy with a known price, acquired by the end of the
// year, participate. Only plays with an owned copy count towards the value.
func classifyValueClubs(c domain.Collection, metric domain.Metric, ladder domain.Ladder, year int) []classifiedGame {
	cutoff := domain.NewDate(9999, time.December, 31)
	if year != domain.AllTime {
		cutoff = domain.NewDate(year, time.December, 31)
	}

	totals := computeGameTotals(c, domain.ThroughYear(year), playedWithOwnedCopy)
	games := make([]classifiedGame, 0, len(totals))
	for i, game := range c.Games {
		price, ok := game.PricePaidThrough(cutoff)
		if !ok {
			continue
		}

		value := metric.Value(totals[i].Totals)
		cost := math.Inf(1)
		if value > 0 {
			cost = price / value
		}

		games = append(games, classifiedGame{
			gameID: game.ID,
			name:   game.Name,
			value:  cost,
			band:   ladder.ClassifyCost(cost),
		})
	}
	return games
}

func valueClubSnapshots(c domain.Collection, metric domain.Metric, year int) (domain.Ladder, []classifiedGame, []classifiedGame) {
	ladder := domain.ValueClubLadder()
	current := classifyValueClubs(c, metric, ladder, year)

	previous := []classifiedGame{}
	if year != domain.AllTime {
		previous = classifyValueClubs(c, metric, ladder, year-1)
	}
	return ladder, current, previous
}

// ComputeValueClubs summarizes each value club of the metric through the year,
// compared with the year before. Clubs are ordered from most to least expensive,
// and a club's cumulative count includes every cheaper club.
func ComputeValueClubs(c domain.Collection, metric domain.Metric, year int) []TierSummary {
	ladder, current, previous := valueClubSnapshots(c, metric, year)
	return summarizeTiers(ladder, current, previous)
}

// ComputeAllValueClubs computes the value clubs of every metric, in metric order
func ComputeAllValueClubs(c domain.Collection, year int) []MetricTiers {
	metrics := domain.Metrics()
	result := make([]MetricTiers, len(metrics))
	for i, metric := range metrics {
		result[i] = MetricTiers{
			Metric: metric,
			Tiers:  ComputeValueClubs(c, metric, year),
		}
	}
	return result
}

// ComputeValueClubGames lists the games in a value club through the year,
// cheapest first. Panics if band is not on the ladder.
func ComputeValueClubGames(c domain.Collection, metric domain.Metric, band int, year int) []TierGame {
	ladder, current, previous := valueClubSnapshots(c, metric, year)
	return gamesInBand(ladder, band, current, previous)
}
