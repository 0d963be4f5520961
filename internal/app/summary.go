package app

import (
	"cmp"
	"slices"

	"github.com/meeplestats/meeplestats/internal/domain"
)

type GameRef struct {
	ID   int
	Name string
	Type domain.GameType
}

type Acquisition struct {
	Game      GameRef
	CopyID    int
	Date      *domain.Date
	PricePaid *float64
}

// YearSummary is the overview of a single year, or of all time
type YearSummary struct {
	Year   int
	Totals domain.Totals
	// Distinct catalog games played
	GamesPlayed int
	// Games played for the first time ever, in order of first play
	NewToMe      []GameRef
	Acquisitions []Acquisition
	// Number of acquired copies per game type
	AcquisitionsByType map[domain.GameType]int
	AmountSpent        float64
}

// ComputeYearSummary summarizes the plays and acquisitions of the year
func ComputeYearSummary(c domain.Collection, year int) YearSummary {
	scope := domain.InYear(year)

	summary := YearSummary{
		Year:               year,
		Totals:             ComputeTotals(c, scope),
		NewToMe:            []GameRef{},
		Acquisitions:       []Acquisition{},
		AcquisitionsByType: map[domain.GameType]int{},
	}

	allTime := ComputeGameTotals(c, domain.AllTimeScope())
	type newGame struct {
		ref   GameRef
		first domain.Date
	}
	newGames := []newGame{}
	for _, game := range allTime {
		if game.Totals.Plays == 0 {
			continue
		}
		ref := GameRef{ID: game.GameID, Name: game.Name, Type: game.Type}
		if scope.Includes(game.Totals.FirstPlayed) {
			newGames = append(newGames, newGame{ref: ref, first: game.Totals.FirstPlayed})
		}
	}
	slices.SortStableFunc(newGames, func(a, b newGame) int {
		return a.first.Compare(b.first)
	})
	for _, game := range newGames {
		summary.NewToMe = append(summary.NewToMe, game.ref)
	}

	for _, game := range ComputeGameTotals(c, scope) {
		if game.Totals.Plays > 0 {
			summary.GamesPlayed++
		}
	}

	for _, game := range c.Games {
		ref := GameRef{ID: game.ID, Name: game.Name, Type: game.Type}
		for _, gameCopy := range game.Copies {
			if !gameCopy.Owned {
				continue
			}
			if gameCopy.AcquisitionDate == nil {
				if year != domain.AllTime {
					continue
				}
			} else if !scope.Includes(*gameCopy.AcquisitionDate) {
				continue
			}

			acquisition := Acquisition{Game: ref, CopyID: gameCopy.ID}
			if gameCopy.AcquisitionDate != nil {
				date := *gameCopy.AcquisitionDate
				acquisition.Date = &date
			}
			if gameCopy.PricePaid != nil {
				price := *gameCopy.PricePaid
				acquisition.PricePaid = &price
				summary.AmountSpent += price
			}
			summary.Acquisitions = append(summary.Acquisitions, acquisition)
			summary.AcquisitionsByType[game.Type]++
		}
	}

	return summary
}

// ComputeAvailableYears returns every year with a play or an acquisition, newest first
func ComputeAvailableYears(c domain.Collection) []int {
	seen := map[int]struct{}{}
	for _, play := range c.Plays {
		seen[play.Date.Year] = struct{}{}
	}
	for _, game := range c.Games {
		for _, gameCopy := range game.Copies {
			if gameCopy.Owned && gameCopy.AcquisitionDate != nil {
				seen[gameCopy.AcquisitionDate.Year] = struct{}{}
			}
		}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	slices.SortFunc(years, func(a, b int) int {
		return cmp.Compare(b, a)
	})
	return years
}
