package domain

// Totals are the accumulated values of a game, player, or location over a set of plays
type Totals struct {
	Minutes  int
	Sessions int // Distinct play dates
	Plays    int
	// Named players are counted once, every anonymous participant counts separately
	UniquePlayers int
	Locations     int

	FirstPlayed Date
	LastPlayed  Date
}

func (t Totals) Hours() float64 {
	return float64(t.Minutes) / 60
}
