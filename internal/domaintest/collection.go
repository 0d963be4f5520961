package domaintest

import (
	"github.com/meeplestats/meeplestats/internal/domain"
)

// Date parses a YYYY-MM-DD date, panicking on malformed input
func Date(raw string) domain.Date {
	date, err := domain.ParseDate(raw)
	if err != nil {
		panic(err)
	}
	return date
}

func DatePtr(raw string) *domain.Date {
	date := Date(raw)
	return &date
}

func Ptr[T any](value T) *T {
	return &value
}

type gameBuilder struct {
	game domain.Game
}

func (gb *gameBuilder) WithType(gameType domain.GameType) *gameBuilder {
	gb.game.Type = gameType
	return gb
}

// WithOwnedCopy adds an owned copy. An empty acquired date means unknown.
func (gb *gameBuilder) WithOwnedCopy(copyID int, acquired string, price float64) *gameBuilder {
	gameCopy := domain.Copy{ID: copyID, Owned: true, PricePaid: Ptr(price)}
	if acquired != "" {
		gameCopy.AcquisitionDate = DatePtr(acquired)
	}
	gb.game.Copies = append(gb.game.Copies, gameCopy)
	return gb
}

func (gb *gameBuilder) WithUnpricedCopy(copyID int, acquired string) *gameBuilder {
	gameCopy := domain.Copy{ID: copyID, Owned: true}
	if acquired != "" {
		gameCopy.AcquisitionDate = DatePtr(acquired)
	}
	gb.game.Copies = append(gb.game.Copies, gameCopy)
	return gb
}

func (gb *gameBuilder) WithUnownedCopy(copyID int, price float64) *gameBuilder {
	gb.game.Copies = append(gb.game.Copies, domain.Copy{ID: copyID, Owned: false, PricePaid: Ptr(price)})
	return gb
}

func (gb *gameBuilder) Build() domain.Game {
	game := gb.game
	game.Copies = append([]domain.Copy{}, gb.game.Copies...)
	return game
}

func NewGameBuilder(id int, name string) *gameBuilder {
	return &gameBuilder{
		game: domain.Game{
			ID:     id,
			Name:   name,
			Type:   domain.GameTypeBase,
			Copies: []domain.Copy{},
		},
	}
}

type playBuilder struct {
	play domain.Play
}

func (pb *playBuilder) WithMinutes(minutes int) *playBuilder {
	pb.play.DurationMinutes = minutes
	return pb
}

func (pb *playBuilder) WithPlayers(playerIDs ...int) *playBuilder {
	pb.play.PlayerIDs = append([]int{}, playerIDs...)
	return pb
}

func (pb *playBuilder) AtLocation(locationID int) *playBuilder {
	pb.play.LocationID = locationID
	return pb
}

func (pb *playBuilder) WithCopy(copyID int) *playBuilder {
	pb.play.CopyID = Ptr(copyID)
	return pb
}

func (pb *playBuilder) Build() domain.Play {
	play := pb.play
	play.PlayerIDs = append([]int{}, pb.play.PlayerIDs...)
	if pb.play.CopyID != nil {
		play.CopyID = Ptr(*pb.play.CopyID)
	}
	return play
}

func NewPlayBuilder(id int, gameID int, date string) *playBuilder {
	return &playBuilder{
		play: domain.Play{
			ID:              id,
			GameID:          gameID,
			Date:            Date(date),
			DurationMinutes: 60,
			PlayerIDs:       []int{},
		},
	}
}

type collectionBuilder struct {
	collection domain.Collection
	nextPlayID int
}

func (cb *collectionBuilder) WithSelf(playerID int) *collectionBuilder {
	cb.collection.SelfPlayerID = playerID
	return cb
}

func (cb *collectionBuilder) WithAnonymous(playerID int) *collectionBuilder {
	cb.collection.AnonymousPlayerID = playerID
	return cb
}

func (cb *collectionBuilder) WithGames(games ...domain.Game) *collectionBuilder {
	cb.collection.Games = append(cb.collection.Games, games...)
	return cb
}

func (cb *collectionBuilder) WithPlayer(id int, name string) *collectionBuilder {
	cb.collection.Players = append(cb.collection.Players, domain.Player{ID: id, Name: name})
	return cb
}

func (cb *collectionBuilder) WithLocation(id int, name string) *collectionBuilder {
	cb.collection.Locations = append(cb.collection.Locations, domain.Location{ID: id, Name: name})
	return cb
}

func (cb *collectionBuilder) WithPlays(plays ...domain.Play) *collectionBuilder {
	cb.collection.Plays = append(cb.collection.Plays, plays...)
	return cb
}

// WithPlay adds a play of the game with a generated id
func (cb *collectionBuilder) WithPlay(gameID int, date string, minutes int, playerIDs ...int) *collectionBuilder {
	cb.nextPlayID++
	play := NewPlayBuilder(cb.nextPlayID, gameID, date).WithMinutes(minutes).WithPlayers(playerIDs...).Build()
	return cb.WithPlays(play)
}

func (cb *collectionBuilder) Build() domain.Collection {
	c := cb.collection
	c.Games = append([]domain.Game{}, cb.collection.Games...)
	c.Plays = append([]domain.Play{}, cb.collection.Plays...)
	c.Players = append([]domain.Player{}, cb.collection.Players...)
	c.Locations = append([]domain.Location{}, cb.collection.Locations...)
	return c
}

func NewCollectionBuilder() *collectionBuilder {
	return &collectionBuilder{
		collection: domain.Collection{
			Games:     []domain.Game{},
			Plays:     []domain.Play{},
			Players:   []domain.Player{},
			Locations: []domain.Location{},
		},
		nextPlayID: 1000,
	}
}
