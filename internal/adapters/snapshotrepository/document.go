package snapshotrepository

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/validation"
)

// Document is the JSON representation of a collection
type Document struct {
	SelfPlayerID      int                `json:"selfPlayerId" validate:"gte=0"`
	AnonymousPlayerID int                `json:"anonymousPlayerId" validate:"gte=0"`
	Games             []documentGame     `json:"games" validate:"dive"`
	Plays             []documentPlay     `json:"plays" validate:"dive"`
	Players           []documentPlayer   `json:"players" validate:"dive"`
	Locations         []documentLocation `json:"locations" validate:"dive"`
}

type documentGame struct {
	ID            int            `json:"id" validate:"gt=0"`
	Name          string         `json:"name"`
	IsBaseGame    bool           `json:"isBaseGame"`
	IsExpansion   bool           `json:"isExpansion"`
	IsExpandalone bool           `json:"isExpandalone"`
	Copies        []documentCopy `json:"copies" validate:"dive"`
}

type documentCopy struct {
	ID              int          `json:"id" validate:"gt=0"`
	Owned           bool         `json:"owned"`
	AcquisitionDate *domain.Date `json:"acquisitionDate"`
	PricePaid       *float64     `json:"pricePaid" validate:"omitempty,gte=0"`
}

type documentPlay struct {
	ID          int          `json:"id"`
	GameID      int          `json:"gameId"`
	Date        *domain.Date `json:"date" validate:"required"`
	DurationMin int          `json:"durationMin" validate:"gte=0"`
	PlayerIDs   []int        `json:"playerIds"`
	LocationID  int          `json:"locationId" validate:"gte=0"`
	CopyID      *int         `json:"copyId"`
}

type documentPlayer struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name"`
}

type documentLocation struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name"`
}

var documentValidator = validation.New()

// VersionOf returns the content version of a raw document
func VersionOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ParseDocument decodes and validates a JSON document into a snapshot.
//
// References between entities are not checked, plays referencing unknown games,
// players or locations are kept as is.
func ParseDocument(data []byte, loadedAt time.Time) (domain.Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to decode document: %w", err)
	}

	if err := documentValidator.Validate(doc); err != nil {
		return domain.Snapshot{}, fmt.Errorf("invalid document: %w", err)
	}

	return domain.Snapshot{
		Collection: doc.toCollection(),
		Version:    VersionOf(data),
		LoadedAt:   loadedAt,
	}, nil
}

func (doc Document) toCollection() domain.Collection {
	games := make([]domain.Game, len(doc.Games))
	for i, game := range doc.Games {
		copies := make([]domain.Copy, len(game.Copies))
		for j, gameCopy := range game.Copies {
			copies[j] = domain.Copy{
				ID:              gameCopy.ID,
				Owned:           gameCopy.Owned,
				AcquisitionDate: gameCopy.AcquisitionDate,
				PricePaid:       gameCopy.PricePaid,
			}
		}
		games[i] = domain.Game{
			ID:     game.ID,
			Name:   game.Name,
			Type:   domain.ClassifyGame(game.IsBaseGame, game.IsExpansion, game.IsExpandalone),
			Copies: copies,
		}
	}

	plays := make([]domain.Play, len(doc.Plays))
	for i, play := range doc.Plays {
		playerIDs := play.PlayerIDs
		if playerIDs == nil {
			playerIDs = []int{}
		}
		plays[i] = domain.Play{
			ID:              play.ID,
			GameID:          play.GameID,
			Date:            *play.Date,
			DurationMinutes: play.DurationMin,
			PlayerIDs:       playerIDs,
			LocationID:      play.LocationID,
			CopyID:          play.CopyID,
		}
	}

	players := make([]domain.Player, len(doc.Players))
	for i, player := range doc.Players {
		players[i] = domain.Player{ID: player.ID, Name: player.Name}
	}

	locations := make([]domain.Location, len(doc.Locations))
	for i, location := range doc.Locations {
		locations[i] = domain.Location{ID: location.ID, Name: location.Name}
	}

	return domain.Collection{
		Games:             games,
		Plays:             plays,
		Players:           players,
		Locations:         locations,
		SelfPlayerID:      doc.SelfPlayerID,
		AnonymousPlayerID: doc.AnonymousPlayerID,
	}
}

// DocumentFromCollection is the inverse of ParseDocument
func DocumentFromCollection(c domain.Collection) Document {
	games := make([]documentGame, len(c.Games))
	for i, game := range c.Games {
		copies := make([]documentCopy, len(game.Copies))
		for j, gameCopy := range game.Copies {
			copies[j] = documentCopy{
				ID:              gameCopy.ID,
				Owned:           gameCopy.Owned,
				AcquisitionDate: gameCopy.AcquisitionDate,
				PricePaid:       gameCopy.PricePaid,
			}
		}
		games[i] = documentGame{
			ID:            game.ID,
			Name:          game.Name,
			IsBaseGame:    game.Type == domain.GameTypeBase,
			IsExpansion:   game.Type == domain.GameTypeExpansion,
			IsExpandalone: game.Type == domain.GameTypeExpandalone,
			Copies:        copies,
		}
	}

	plays := make([]documentPlay, len(c.Plays))
	for i, play := range c.Plays {
		date := play.Date
		plays[i] = documentPlay{
			ID:          play.ID,
			GameID:      play.GameID,
			Date:        &date,
			DurationMin: play.DurationMinutes,
			PlayerIDs:   play.PlayerIDs,
			LocationID:  play.LocationID,
			CopyID:      play.CopyID,
		}
	}

	players := make([]documentPlayer, len(c.Players))
	for i, player := range c.Players {
		players[i] = documentPlayer{ID: player.ID, Name: player.Name}
	}

	locations := make([]documentLocation, len(c.Locations))
	for i, location := range c.Locations {
		locations[i] = documentLocation{ID: location.ID, Name: location.Name}
	}

	return Document{
		SelfPlayerID:      c.SelfPlayerID,
		AnonymousPlayerID: c.AnonymousPlayerID,
		Games:             games,
		Plays:             plays,
		Players:           players,
		Locations:         locations,
	}
}
