package snapshotrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/meeplestats/meeplestats/internal/adapters/database"
	"github.com/meeplestats/meeplestats/internal/domain"
	"github.com/meeplestats/meeplestats/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Keeps every batch well below the postgres limit of 65535 parameters
const insertBatchSize = 1000

type Postgres struct {
	db     *sqlx.DB
	schema string

	tracer trace.Tracer
}

func NewPostgres(db *sqlx.DB, schema string) *Postgres {
	tracer := otel.Tracer("meeplestats/snapshotrepository/postgres")

	return &Postgres{
		db:     db,
		schema: schema,

		tracer: tracer,
	}
}

type dbSnapshotMeta struct {
	Version           string    `db:"version"`
	ImportedAt        time.Time `db:"imported_at"`
	SelfPlayerID      int       `db:"self_player_id"`
	AnonymousPlayerID int       `db:"anonymous_player_id"`
}

type dbGame struct {
	Position      int    `db:"position"`
	ID            int    `db:"id"`
	Name          string `db:"name"`
	IsBaseGame    bool   `db:"is_base_game"`
	IsExpansion   bool   `db:"is_expansion"`
	IsExpandalone bool   `db:"is_expandalone"`
}

type dbCopy struct {
	Position        int        `db:"position"`
	GamePosition    int        `db:"game_position"`
	ID              int        `db:"id"`
	Owned           bool       `db:"owned"`
	AcquisitionDate *time.Time `db:"acquisition_date"`
	PricePaid       *float64   `db:"price_paid"`
}

type dbNamed struct {
	Position int    `db:"position"`
	ID       int    `db:"id"`
	Name     string `db:"name"`
}

type dbPlay struct {
	Position        int       `db:"position"`
	ID              int       `db:"id"`
	GameID          int       `db:"game_id"`
	PlayDate        time.Time `db:"play_date"`
	DurationMinutes int       `db:"duration_minutes"`
	LocationID      int       `db:"location_id"`
	CopyID          *int      `db:"copy_id"`
}

type dbPlayPlayer struct {
	PlayPosition int `db:"play_position"`
	Position     int `db:"position"`
	PlayerID     int `db:"player_id"`
}

func (p *Postgres) beginTx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	txx, err := p.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	_, err = txx.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", pq.QuoteIdentifier(p.schema)))
	if err != nil {
		_ = txx.Rollback()
		return nil, fmt.Errorf("failed to set search path: %w", err)
	}

	// Dates are written as midnight UTC
	_, err = txx.ExecContext(ctx, "SET LOCAL TIME ZONE 'UTC'")
	if err != nil {
		_ = txx.Rollback()
		return nil, fmt.Errorf("failed to set time zone: %w", err)
	}

	return txx, nil
}

func insertBatches[T any](ctx context.Context, txx *sqlx.Tx, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if _, err := txx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// StoreSnapshot replaces the stored collection with the one in the snapshot
func (p *Postgres) StoreSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	ctx, span := p.tracer.Start(ctx, "Postgres.StoreSnapshot")
	defer span.End()
	span.SetAttributes(
		attribute.String("snapshot.version", snapshot.Version),
		attribute.Int("snapshot.plays", len(snapshot.Collection.Plays)),
	)

	c := snapshot.Collection

	games := make([]dbGame, len(c.Games))
	copies := []dbCopy{}
	for i, game := range c.Games {
		games[i] = dbGame{
			Position:      i,
			ID:            game.ID,
			Name:          game.Name,
			IsBaseGame:    game.Type == domain.GameTypeBase,
			IsExpansion:   game.Type == domain.GameTypeExpansion,
			IsExpandalone: game.Type == domain.GameTypeExpandalone,
		}
		for _, gameCopy := range game.Copies {
			var acquisitionDate *time.Time
			if gameCopy.AcquisitionDate != nil {
				t := gameCopy.AcquisitionDate.Time()
				acquisitionDate = &t
			}
			copies = append(copies, dbCopy{
				Position:        len(copies),
				GamePosition:    i,
				ID:              gameCopy.ID,
				Owned:           gameCopy.Owned,
				AcquisitionDate: acquisitionDate,
				PricePaid:       gameCopy.PricePaid,
			})
		}
	}

	plays := make([]dbPlay, len(c.Plays))
	playPlayers := []dbPlayPlayer{}
	for i, play := range c.Plays {
		plays[i] = dbPlay{
			Position:        i,
			ID:              play.ID,
			GameID:          play.GameID,
			PlayDate:        play.Date.Time(),
			DurationMinutes: play.DurationMinutes,
			LocationID:      play.LocationID,
			CopyID:          play.CopyID,
		}
		for j, playerID := range play.PlayerIDs {
			playPlayers = append(playPlayers, dbPlayPlayer{PlayPosition: i, Position: j, PlayerID: playerID})
		}
	}

	players := make([]dbNamed, len(c.Players))
	for i, player := range c.Players {
		players[i] = dbNamed{Position: i, ID: player.ID, Name: player.Name}
	}

	locations := make([]dbNamed, len(c.Locations))
	for i, location := range c.Locations {
		locations[i] = dbNamed{Position: i, ID: location.ID, Name: location.Name}
	}

	txx, err := p.beginTx(ctx, nil)
	if err != nil {
		reporting.Report(ctx, err, map[string]string{"schema": p.schema})
		return err
	}
	defer txx.Rollback()

	tables := strings.Join(database.CollectionTables, ", ")

	// Readers see either the old or the new collection, never a mix
	_, err = txx.ExecContext(ctx, fmt.Sprintf("LOCK TABLE %s IN EXCLUSIVE MODE", tables))
	if err != nil {
		err := fmt.Errorf("failed to lock collection tables: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	_, err = txx.ExecContext(ctx, fmt.Sprintf("TRUNCATE %s", tables))
	if err != nil {
		err := fmt.Errorf("failed to clear collection tables: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	steps := []struct {
		table  string
		insert func() error
	}{
		{"games", func() error {
			return insertBatches(ctx, txx, `INSERT INTO games
				(position, id, name, is_base_game, is_expansion, is_expandalone)
				VALUES (:position, :id, :name, :is_base_game, :is_expansion, :is_expandalone)`, games)
		}},
		{"copies", func() error {
			return insertBatches(ctx, txx, `INSERT INTO copies
				(position, game_position, id, owned, acquisition_date, price_paid)
				VALUES (:position, :game_position, :id, :owned, :acquisition_date, :price_paid)`, copies)
		}},
		{"players", func() error {
			return insertBatches(ctx, txx, `INSERT INTO players (position, id, name) VALUES (:position, :id, :name)`, players)
		}},
		{"locations", func() error {
			return insertBatches(ctx, txx, `INSERT INTO locations (position, id, name) VALUES (:position, :id, :name)`, locations)
		}},
		{"plays", func() error {
			return insertBatches(ctx, txx, `INSERT INTO plays
				(position, id, game_id, play_date, duration_minutes, location_id, copy_id)
				VALUES (:position, :id, :game_id, :play_date, :duration_minutes, :location_id, :copy_id)`, plays)
		}},
		{"play_players", func() error {
			return insertBatches(ctx, txx, `INSERT INTO play_players
				(play_position, position, player_id)
				VALUES (:play_position, :position, :player_id)`, playPlayers)
		}},
	}
	for _, step := range steps {
		if err := step.insert(); err != nil {
			err := fmt.Errorf("failed to insert %s: %w", step.table, err)
			reporting.Report(ctx, err, map[string]string{"table": step.table})
			return err
		}
	}

	_, err = txx.ExecContext(
		ctx,
		`INSERT INTO snapshot_meta
		(version, imported_at, self_player_id, anonymous_player_id)
		VALUES ($1, $2, $3, $4)`,
		snapshot.Version,
		snapshot.LoadedAt,
		c.SelfPlayerID,
		c.AnonymousPlayerID,
	)
	if err != nil {
		err := fmt.Errorf("failed to insert snapshot meta: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	if err := txx.Commit(); err != nil {
		err := fmt.Errorf("failed to commit transaction: %w", err)
		reporting.Report(ctx, err)
		return err
	}

	return nil
}

// GetVersion returns the version of the stored snapshot.
// Returns domain.ErrSnapshotUnavailable if nothing has been stored.
func (p *Postgres) GetVersion(ctx context.Context) (string, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetVersion")
	defer span.End()

	txx, err := p.beginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		reporting.Report(ctx, err, map[string]string{"schema": p.schema})
		return "", err
	}
	defer txx.Rollback()

	var version string
	err = txx.GetContext(ctx, &version, "SELECT version FROM snapshot_meta")
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: no snapshot stored", domain.ErrSnapshotUnavailable)
	}
	if err != nil {
		err := fmt.Errorf("failed to get snapshot version: %w", err)
		reporting.Report(ctx, err)
		return "", err
	}

	return version, nil
}

// LoadSnapshot reads the stored collection.
// Returns domain.ErrSnapshotUnavailable if nothing has been stored.
func (p *Postgres) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.LoadSnapshot")
	defer span.End()

	// Repeatable read gives every select the same view of the tables
	txx, err := p.beginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		reporting.Report(ctx, err, map[string]string{"schema": p.schema})
		return domain.Snapshot{}, err
	}
	defer txx.Rollback()

	var meta dbSnapshotMeta
	err = txx.GetContext(ctx, &meta, "SELECT version, imported_at, self_player_id, anonymous_player_id FROM snapshot_meta")
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, fmt.Errorf("%w: no snapshot stored", domain.ErrSnapshotUnavailable)
	}
	if err != nil {
		err := fmt.Errorf("failed to get snapshot meta: %w", err)
		reporting.Report(ctx, err)
		return domain.Snapshot{}, err
	}

	var games []dbGame
	var copies []dbCopy
	var players []dbNamed
	var locations []dbNamed
	var plays []dbPlay
	var playPlayers []dbPlayPlayer

	selects := []struct {
		table string
		dest  any
		query string
	}{
		{"games", &games, "SELECT position, id, name, is_base_game, is_expansion, is_expandalone FROM games ORDER BY position"},
		{"copies", &copies, "SELECT position, game_position, id, owned, acquisition_date, price_paid FROM copies ORDER BY position"},
		{"players", &players, "SELECT position, id, name FROM players ORDER BY position"},
		{"locations", &locations, "SELECT position, id, name FROM locations ORDER BY position"},
		{"plays", &plays, "SELECT position, id, game_id, play_date, duration_minutes, location_id, copy_id FROM plays ORDER BY position"},
		{"play_players", &playPlayers, "SELECT play_position, position, player_id FROM play_players ORDER BY play_position, position"},
	}
	for _, s := range selects {
		if err := txx.SelectContext(ctx, s.dest, s.query); err != nil {
			err := fmt.Errorf("failed to select %s: %w", s.table, err)
			reporting.Report(ctx, err, map[string]string{"table": s.table})
			return domain.Snapshot{}, err
		}
	}

	span.SetAttributes(
		attribute.String("snapshot.version", meta.Version),
		attribute.Int("snapshot.plays", len(plays)),
	)

	return domain.Snapshot{
		Collection: collectionFromRows(meta, games, copies, players, locations, plays, playPlayers),
		Version:    meta.Version,
		LoadedAt:   meta.ImportedAt,
	}, nil
}

func collectionFromRows(
	meta dbSnapshotMeta,
	games []dbGame,
	copies []dbCopy,
	players []dbNamed,
	locations []dbNamed,
	plays []dbPlay,
	playPlayers []dbPlayPlayer,
) domain.Collection {
	c := domain.Collection{
		Games:             make([]domain.Game, len(games)),
		Plays:             make([]domain.Play, len(plays)),
		Players:           make([]domain.Player, len(players)),
		Locations:         make([]domain.Location, len(locations)),
		SelfPlayerID:      meta.SelfPlayerID,
		AnonymousPlayerID: meta.AnonymousPlayerID,
	}

	for i, game := range games {
		c.Games[i] = domain.Game{
			ID:     game.ID,
			Name:   game.Name,
			Type:   domain.ClassifyGame(game.IsBaseGame, game.IsExpansion, game.IsExpandalone),
			Copies: []domain.Copy{},
		}
	}
	for _, row := range copies {
		var acquisitionDate *domain.Date
		if row.AcquisitionDate != nil {
			date := domain.DateOf(*row.AcquisitionDate)
			acquisitionDate = &date
		}
		game := &c.Games[row.GamePosition]
		game.Copies = append(game.Copies, domain.Copy{
			ID:              row.ID,
			Owned:           row.Owned,
			AcquisitionDate: acquisitionDate,
			PricePaid:       row.PricePaid,
		})
	}

	for i, play := range plays {
		c.Plays[i] = domain.Play{
			ID:              play.ID,
			GameID:          play.GameID,
			Date:            domain.DateOf(play.PlayDate),
			DurationMinutes: play.DurationMinutes,
			PlayerIDs:       []int{},
			LocationID:      play.LocationID,
			CopyID:          play.CopyID,
		}
	}
	for _, row := range playPlayers {
		play := &c.Plays[row.PlayPosition]
		play.PlayerIDs = append(play.PlayerIDs, row.PlayerID)
	}

	for i, player := range players {
		c.Players[i] = domain.Player{ID: player.ID, Name: player.Name}
	}
	for i, location := range locations {
		c.Locations[i] = domain.Location{ID: location.ID, Name: location.Name}
	}

	return c
}
