package domain

type Play struct {
	ID              int
	GameID          int
	Date            Date
	DurationMinutes int
	PlayerIDs       []int
	LocationID      int  // 0 if no location was logged
	CopyID          *int // nil if not played with an owned copy
}

type Player struct {
	ID   int
	Name string
}

type Location struct {
	ID   int
	Name string
}
