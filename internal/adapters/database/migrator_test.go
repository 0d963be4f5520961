package database

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestMigrator(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping migrator tests in short mode.")
	}
	t.Parallel()

	db, err := NewPostgresDatabase(LOCAL_CONNECTION_STRING)
	require.NoError(t, err)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	tablesIn := func(t *testing.T, schemaName string) []string {
		t.Helper()
		tables := []string{}
		err := db.Select(&tables, `
			SELECT table_name FROM information_schema.tables
			WHERE table_schema = $1 AND table_name != 'schema_migrations'
			ORDER BY table_name`,
			schemaName,
		)
		require.NoError(t, err)
		return tables
	}

	t.Run("creates the collection tables", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		schemaName := "migrate_collection_tables"
		db.MustExec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schemaName)))

		migrator := NewDatabaseMigrator(db, logger)
		require.NoError(t, migrator.Migrate(ctx, schemaName))

		require.ElementsMatch(t, CollectionTables, tablesIn(t, schemaName))

		// Running again is a no-op
		require.NoError(t, migrator.Migrate(ctx, schemaName))
		require.ElementsMatch(t, CollectionTables, tablesIn(t, schemaName))
	})

	t.Run("migrate up and down", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		schemaName := "migrate_up_down"
		db.MustExec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schemaName)))

		migrator := NewDatabaseMigrator(db, logger)
		require.NoError(t, migrator.Migrate(ctx, schemaName))

		err := migrator.withSchemaMigrations(ctx, schemaName, func(instance *migrate.Migrate) error {
			return instance.Down()
		})
		require.NoError(t, err, "error migrating down") // Should not even be ErrNoChange

		require.Empty(t, tablesIn(t, schemaName))
	})
}
