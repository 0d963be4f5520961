package app

import (
	"github.com/meeplestats/meeplestats/internal/domain"
)

// GameTotals are the accumulated values of a single game
type GameTotals struct {
	GameID int
	Name   string
	Type   domain.GameType
	Totals domain.Totals
}

// EntityTotals are the accumulated values of a player or location
type EntityTotals struct {
	ID     int
	Name   string
	Totals domain.Totals
}

type totalsAccumulator struct {
	anonymousPlayerID int
	locationIndex     map[int]int

	totals       domain.Totals
	days         map[domain.Date]struct{}
	namedPlayers map[int]struct{}
	anonymous    int
	locations    map[int]struct{}
}

func newTotalsAccumulator(c domain.Collection, locationIndex map[int]int) *totalsAccumulator {
	return &totalsAccumulator{
		anonymousPlayerID: c.AnonymousPlayerID,
		locationIndex:     locationIndex,
		days:              make(map[domain.Date]struct{}),
		namedPlayers:      make(map[int]struct{}),
		locations:         make(map[int]struct{}),
	}
}

func (a *totalsAccumulator) add(play domain.Play) {
	a.totals.Plays++
	if play.DurationMinutes > 0 {
		a.totals.Minutes += play.DurationMinutes
	}

	a.days[play.Date] = struct{}{}

	for _, playerID := range play.PlayerIDs {
		if a.anonymousPlayerID != 0 && playerID == a.anonymousPlayerID {
			a.anonymous++
			continue
		}
		a.namedPlayers[playerID] = struct{}{}
	}

	if _, ok := a.locationIndex[play.LocationID]; ok {
		a.locations[play.LocationID] = struct{}{}
	}

	if a.totals.FirstPlayed.IsZero() || play.Date.Before(a.totals.FirstPlayed) {
		a.totals.FirstPlayed = play.Date
	}
	if a.totals.LastPlayed.IsZero() || play.Date.After(a.totals.LastPlayed) {
		a.totals.LastPlayed = play.Date
	}
}

func (a *totalsAccumulator) result() domain.Totals {
	totals := a.totals
	totals.Sessions = len(a.days)
	totals.UniquePlayers = len(a.namedPlayers) + a.anonymous
	totals.Locations = len(a.locations)
	return totals
}

// ComputeTotals accumulates every play in scope, including plays of games
// missing from the catalog
func ComputeTotals(c domain.Collection, scope domain.Scope) domain.Totals {
	acc := newTotalsAccumulator(c, c.LocationIndex())
	for _, play := range c.Plays {
		if scope.Includes(play.Date) {
			acc.add(play)
		}
	}
	return acc.result()
}

// ComputeGameTotals returns the totals of every game in the catalog, in catalog
// order. Games without plays in scope have zero totals.
//
// Plays of games missing from the catalog are ignored.
func ComputeGameTotals(c domain.Collection, scope domain.Scope) []GameTotals {
	return computeGameTotals(c, scope, nil)
}

func computeGameTotals(c domain.Collection, scope domain.Scope, include func(domain.Play) bool) []GameTotals {
	gameIndex := c.GameIndex()
	locationIndex := c.LocationIndex()

	accumulators := make([]*totalsAccumulator, len(c.Games))
	for _, play := range c.Plays {
		if !scope.Includes(play.Date) {
			continue
		}
		if include != nil && !include(play) {
			continue
		}
		i, ok := gameIndex[play.GameID]
		if !ok {
			continue
		}
		if accumulators[i] == nil {
			accumulators[i] = newTotalsAccumulator(c, locationIndex)
		}
		accumulators[i].add(play)
	}

	result := make([]GameTotals, len(c.Games))
	for i, game := range c.Games {
		result[i] = GameTotals{
			GameID: game.ID,
			Name:   game.Name,
			Type:   game.Type,
		}
		if accumulators[i] != nil {
			result[i].Totals = accumulators[i].result()
		}
	}
	return result
}

// ComputePlayerTotals returns the totals of every player in Players order,
// counting the plays each player took part in.
//
// The self player and the anonymous player are left out. Participants missing
// from Players are ignored.
func ComputePlayerTotals(c domain.Collection, scope domain.Scope) []EntityTotals {
	playerIndex := c.PlayerIndex()
	locationIndex := c.LocationIndex()

	accumulators := make([]*totalsAccumulator, len(c.Players))
	for _, play := range c.Plays {
		if !scope.Includes(play.Date) {
			continue
		}
		seen := make(map[int]struct{}, len(play.PlayerIDs))
		for _, playerID := range play.PlayerIDs {
			if playerID == c.SelfPlayerID || c.IsAnonymous(playerID) {
				continue
			}
			if _, ok := seen[playerID]; ok {
				continue
			}
			seen[playerID] = struct{}{}

			i, ok := playerIndex[playerID]
			if !ok {
				continue
			}
			if accumulators[i] == nil {
				accumulators[i] = newTotalsAccumulator(c, locationIndex)
			}
			accumulators[i].add(play)
		}
	}

	result := make([]EntityTotals, 0, len(c.Players))
	for i, player := range c.Players {
		if player.ID == c.SelfPlayerID || c.IsAnonymous(player.ID) {
			continue
		}
		entry := EntityTotals{ID: player.ID, Name: player.Name}
		if accumulators[i] != nil {
			entry.Totals = accumulators[i].result()
		}
		result = append(result, entry)
	}
	return result
}

// ComputeLocationTotals returns the totals of every location in Locations order.
// Plays at locations missing from Locations are ignored.
func ComputeLocationTotals(c domain.Collection, scope domain.Scope) []EntityTotals {
	locationIndex := c.LocationIndex()

	accumulators := make([]*totalsAccumulator, len(c.Locations))
	for _, play := range c.Plays {
		if !scope.Includes(play.Date) {
			continue
		}
		i, ok := locationIndex[play.LocationID]
		if !ok {
			continue
		}
		if accumulators[i] == nil {
			accumulators[i] = newTotalsAccumulator(c, locationIndex)
		}
		accumulators[i].add(play)
	}

	result := make([]EntityTotals, len(c.Locations))
	for i, location := range c.Locations {
		result[i] = EntityTotals{ID: location.ID, Name: location.Name}
		if accumulators[i] != nil {
			result[i].Totals = accumulators[i].result()
		}
	}
	return result
}
