package domain

import "time"

// Collection is a read-only view of the catalog and play log.
//
// NOTE: Nothing in the engine mutates a Collection or any of its slices
type Collection struct {
	Games     []Game
	Plays     []Play
	Players   []Player
	Locations []Location

	SelfPlayerID int
	// Participants with this id are not deduplicated across or within plays.
	// 0 if the log has no anonymous player.
	AnonymousPlayerID int
}

// IsAnonymous reports whether the player id is the anonymous placeholder
func (c Collection) IsAnonymous(playerID int) bool {
	return c.AnonymousPlayerID != 0 && playerID == c.AnonymousPlayerID
}

// GameIndex maps game ids to their position in Games
func (c Collection) GameIndex() map[int]int {
	index := make(map[int]int, len(c.Games))
	for i, game := range c.Games {
		index[game.ID] = i
	}
	return index
}

// PlayerIndex maps player ids to their position in Players
func (c Collection) PlayerIndex() map[int]int {
	index := make(map[int]int, len(c.Players))
	for i, player := range c.Players {
		index[player.ID] = i
	}
	return index
}

// LocationIndex maps location ids to their position in Locations
func (c Collection) LocationIndex() map[int]int {
	index := make(map[int]int, len(c.Locations))
	for i, location := range c.Locations {
		index[location.ID] = i
	}
	return index
}

// Snapshot is a loaded collection together with an identifier for its content
type Snapshot struct {
	Collection Collection
	// Changes whenever the content changes
	Version  string
	LoadedAt time.Time
}
