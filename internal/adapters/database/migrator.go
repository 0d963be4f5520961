package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// CollectionTables are the tables holding a stored collection snapshot
var CollectionTables = []string{"snapshot_meta", "games", "copies", "players", "locations", "plays", "play_players"}

type migrator struct {
	db *sqlx.DB

	logger *slog.Logger
}

func NewDatabaseMigrator(db *sqlx.DB, logger *slog.Logger) *migrator {
	return &migrator{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the schema if needed and brings it up to the latest version
func (m *migrator) Migrate(ctx context.Context, schemaName string) error {
	return m.withSchemaMigrations(ctx, schemaName, func(instance *migrate.Migrate) error {
		m.logger.InfoContext(ctx, "Starting migrations", "schema", schemaName)
		if err := instance.Up(); err != nil {
			if !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("failed to migrate up: %w", err)
			}
			m.logger.InfoContext(ctx, "Schema is up to date", "schema", schemaName)
		}

		version, dirty, err := instance.Version()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		if dirty {
			return fmt.Errorf("schema %s is dirty at version %d", schemaName, version)
		}
		m.logger.InfoContext(ctx, "Migrations completed", "schema", schemaName, "version", version)
		return nil
	})
}

// withSchemaMigrations runs f with a migrate instance bound to schemaName on a
// dedicated connection, creating the schema first
func (m *migrator) withSchemaMigrations(ctx context.Context, schemaName string, f func(*migrate.Migrate) error) error {
	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("migrate: failed to connect to db: %w", err)
	}
	defer conn.Close()

	if err := useSchema(ctx, conn, schemaName); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	source, err := iofs.New(embeddedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrate: failed to read embedded migrations: %w", err)
	}
	defer source.Close()

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{
		DatabaseName: DB_NAME,
		SchemaName:   schemaName,
	})
	if err != nil {
		return fmt.Errorf("migrate: failed to create postgres driver: %w", err)
	}

	instance, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate: failed to create migration instance: %w", err)
	}
	defer instance.Close()

	if err := f(instance); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func useSchema(ctx context.Context, conn *sql.Conn, schemaName string) error {
	quoted := pq.QuoteIdentifier(schemaName)
	if _, err := conn.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", quoted)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET search_path TO %s", quoted)); err != nil {
		return fmt.Errorf("failed to set search path: %w", err)
	}
	return nil
}
