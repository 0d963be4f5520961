package domain

// GameType is the classification of a game in the catalog
type GameType string

const (
	GameTypeBase        GameType = "base"
	GameTypeExpansion   GameType = "expansion"
	GameTypeExpandalone GameType = "expandalone"
	GameTypeUnknown     GameType = "unknown"
)

// ClassifyGame resolves the source flags into a single type.
// Expandalone takes priority over expansion, which takes priority over base.
func ClassifyGame(isBase, isExpansion, isExpandalone bool) GameType {
	switch {
	case isExpandalone:
		return GameTypeExpandalone
	case isExpansion:
		return GameTypeExpansion
	case isBase:
		return GameTypeBase
	default:
		return GameTypeUnknown
	}
}

type Game struct {
	ID     int
	Name   string
	Type   GameType
	Copies []Copy
}

// Copy is one physical copy of a game in the catalog
type Copy struct {
	ID              int
	Owned           bool
	AcquisitionDate *Date    // nil if unknown
	PricePaid       *float64 // nil if unknown
}

// Owned reports whether any copy of the game is owned
func (g Game) Owned() bool {
	for _, c := range g.Copies {
		if c.Owned {
			return true
		}
	}
	return false
}

// PricePaidThrough sums the price of owned copies with a known price that were
// acquired on or before the given date. Copies with an unknown acquisition date
// are always included.
//
// Returns false if no copy qualifies.
func (g Game) PricePaidThrough(date Date) (float64, bool) {
	total := 0.0
	found := false
	for _, c := range g.Copies {
		if !c.Owned || c.PricePaid == nil {
			continue
		}
		if c.AcquisitionDate != nil && c.AcquisitionDate.After(date) {
			continue
		}
		total += *c.PricePaid
		found = true
	}
	return total, found
}
