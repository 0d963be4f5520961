package app

import (
	"github.com/meeplestats/meeplestats/internal/domain"
)

// classifyMilestones places every game on the milestone ladder by its lifetime value through the year
func classifyMilestones(c domain.Collection, metric domain.Metric, ladder domain.Ladder, year int) []classifiedGame {
	totals := ComputeGameTotals(c, domain.ThroughYear(year))
	games := make([]classifiedGame, len(totals))
	for i, game := range totals {
		value := metric.Value(game.Totals)
		games[i] = classifiedGame{
			gameID: game.GameID,
			name:   game.Name,
			value:  value,
			band:   ladder.Classify(value),
		}
	}
	return games
}

func milestoneSnapshots(c domain.Collection, metric domain.Metric, year int) (domain.Ladder, []classifiedGame, []classifiedGame) {
	ladder := domain.MilestoneLadder(metric)
	current := classifyMilestones(c, metric, ladder, year)

	previous := []classifiedGame{}
	if year != domain.AllTime {
		previous = classifyMilestones(c, metric, ladder, year-1)
	}
	return ladder, current, previous
}

// ComputeMilestones summarizes each milestone band of the metric through the
// year, compared with the year before.
//
// Milestones are lifetime achievements: a game's band is decided by everything
// logged up to and including the year.
func ComputeMilestones(c domain.Collection, metric domain.Metric, year int) []TierSummary {
	ladder, current, previous := milestoneSnapshots(c, metric, year)
	return summarizeTiers(ladder, current, previous)
}

// ComputeAllMilestones computes the milestones of every metric, in metric order
func ComputeAllMilestones(c domain.Collection, year int) []MetricTiers {
	metrics := domain.Metrics()
	result := make([]MetricTiers, len(metrics))
	for i, metric := range metrics {
		result[i] = MetricTiers{
			Metric: metric,
			Tiers:  ComputeMilestones(c, metric, year),
		}
	}
	return result
}

// ComputeMilestoneGames lists the games in a milestone band through the year,
// highest value first. Panics if band is not on the ladder.
func ComputeMilestoneGames(c domain.Collection, metric domain.Metric, band int, year int) []TierGame {
	ladder, current, previous := milestoneSnapshots(c, metric, year)
	return gamesInBand(ladder, band, current, previous)
}
