package app_test

import (
	"fmt"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/meeplestats/meeplestats/internal/domain"
)

const (
	generatedGames     = 5
	generatedPlayers   = 6
	generatedSelf      = 1
	generatedAnonymous = 6
	firstGeneratedYear = 2020
	lastGeneratedYear  = 2024
)

func genPlay() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, generatedGames),
		gen.IntRange(firstGeneratedYear, lastGeneratedYear),
		gen.IntRange(0, 364),
		gen.IntRange(0, 300),
		gen.SliceOfN(3, gen.IntRange(1, generatedPlayers)),
		gen.Bool(),
	).Map(func(values []any) domain.Play {
		year := values[1].(int)
		gameID := values[0].(int)
		play := domain.Play{
			GameID:          gameID,
			Date:            domain.NewDate(year, time.January, 1).AddDays(values[2].(int)),
			DurationMinutes: values[3].(int),
			PlayerIDs:       values[4].([]int),
		}
		if values[5].(bool) {
			copyID := 100 + gameID
			play.CopyID = &copyID
		}
		return play
	})
}

// genCollection generates a small catalog where every game has a priced copy
// and a play log spread over a handful of years
func genCollection() gopter.Gen {
	return gen.SliceOf(genPlay()).Map(func(plays []domain.Play) domain.Collection {
		c := domain.Collection{
			Games:             []domain.Game{},
			Plays:             []domain.Play{},
			Players:           []domain.Player{},
			Locations:         []domain.Location{},
			SelfPlayerID:      generatedSelf,
			AnonymousPlayerID: generatedAnonymous,
		}
		for id := 1; id <= generatedGames; id++ {
			price := float64(id * 10)
			acquired := domain.NewDate(firstGeneratedYear+id%3, time.March, 1)
			c.Games = append(c.Games, domain.Game{
				ID:   id,
				Name: fmt.Sprintf("Game %d", id),
				Type: domain.GameTypeBase,
				Copies: []domain.Copy{
					{ID: 100 + id, Owned: true, AcquisitionDate: &acquired, PricePaid: &price},
				},
			})
		}
		for id := 1; id <= generatedPlayers; id++ {
			c.Players = append(c.Players, domain.Player{ID: id, Name: fmt.Sprintf("Player %d", id)})
		}
		for i, play := range plays {
			play.ID = i + 1
			c.Plays = append(c.Plays, play)
		}
		return c
	})
}
