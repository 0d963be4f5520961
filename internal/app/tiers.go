package app

import (
	"cmp"
	"slices"

	"github.com/meeplestats/meeplestats/internal/domain"
)

// TierGame is a game placed on a ladder.
//
// Value is the metric value for milestones and the cost per metric for value clubs.
type TierGame struct {
	GameID        int
	Name          string
	Value         float64
	Band          int // -1 if below every band
	PreviousValue float64
	PreviousBand  int // -1 if below every band or not participating the year before
}

type TierSummary struct {
	Index int
	Band  domain.Band

	Count         int // Games in the band through the year
	PreviousCount int // Games in the band through the year before
	// Games in this band or any better band
	Cumulative         int
	PreviousCumulative int
	Increase           int

	// Games in the band now that were not the year before
	Entered []TierGame
	// Games in the band the year before that have moved on.
	// len(Entered) - len(Graduated) == Increase
	Graduated []TierGame
	// Games that passed over the band in a single year
	Skipped []TierGame
}

type MetricTiers struct {
	Metric domain.Metric
	Tiers  []TierSummary
}

type classifiedGame struct {
	gameID int
	name   string
	value  float64
	band   int
}

// pairSnapshots joins the current and previous classification by game id.
// Games only present in the previous snapshot are kept, placed below every band now.
func pairSnapshots(current, previous []classifiedGame) []TierGame {
	previousByID := make(map[int]classifiedGame, len(previous))
	for _, game := range previous {
		previousByID[game.gameID] = game
	}

	paired := make([]TierGame, 0, len(current))
	seen := make(map[int]struct{}, len(current))
	for _, game := range current {
		seen[game.gameID] = struct{}{}
		tierGame := TierGame{
			GameID:       game.gameID,
			Name:         game.name,
			Value:        game.value,
			Band:         game.band,
			PreviousBand: -1,
		}
		if prev, ok := previousByID[game.gameID]; ok {
			tierGame.PreviousValue = prev.value
			tierGame.PreviousBand = prev.band
		}
		paired = append(paired, tierGame)
	}

	for _, prev := range previous {
		if _, ok := seen[prev.gameID]; ok {
			continue
		}
		paired = append(paired, TierGame{
			GameID:        prev.gameID,
			Name:          prev.name,
			Band:          -1,
			PreviousValue: prev.value,
			PreviousBand:  prev.band,
		})
	}

	return paired
}

func summarizeTiers(ladder domain.Ladder, current, previous []classifiedGame) []TierSummary {
	games := pairSnapshots(current, previous)

	summaries := make([]TierSummary, len(ladder.Bands))
	for i, band := range ladder.Bands {
		summary := TierSummary{
			Index:     i,
			Band:      band,
			Entered:   []TierGame{},
			Graduated: []TierGame{},
			Skipped:   []TierGame{},
		}

		for _, game := range games {
			inNow := game.Band == i
			inBefore := game.PreviousBand == i

			if inNow {
				summary.Count++
			}
			if inBefore {
				summary.PreviousCount++
			}
			if game.Band >= i {
				summary.Cumulative++
			}
			if game.PreviousBand >= i {
				summary.PreviousCumulative++
			}

			switch {
			case inNow && !inBefore:
				summary.Entered = append(summary.Entered, game)
			case inBefore && !inNow:
				summary.Graduated = append(summary.Graduated, game)
			}

			if game.PreviousBand < i && game.Band > i {
				summary.Skipped = append(summary.Skipped, game)
			}
		}

		summary.Increase = summary.Count - summary.PreviousCount
		summaries[i] = summary
	}

	return summaries
}

// gamesInBand returns the games in the band, best first.
// Stable among equal values.
func gamesInBand(ladder domain.Ladder, band int, current, previous []classifiedGame) []TierGame {
	_ = ladder.Band(band) // Panics if out of range

	result := []TierGame{}
	for _, game := range pairSnapshots(current, previous) {
		if game.Band == band {
			result = append(result, game)
		}
	}

	slices.SortStableFunc(result, func(a, b TierGame) int {
		if ladder.Inverted {
			return cmp.Compare(a.Value, b.Value)
		}
		return cmp.Compare(b.Value, a.Value)
	})
	return result
}
