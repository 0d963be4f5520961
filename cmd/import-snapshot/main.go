package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/meeplestats/meeplestats/internal/adapters/database"
	"github.com/meeplestats/meeplestats/internal/adapters/snapshotrepository"
)

// Imports a collection export into postgres, or exports the stored collection with -export
func main() {
	testing := flag.Bool("testing", false, "use the testing schema")
	export := flag.Bool("export", false, "write the stored collection to stdout instead of importing")
	flag.Parse()

	connectionString := os.Getenv("DB_CONNECTION_STRING")
	if connectionString == "" {
		connectionString = database.LOCAL_CONNECTION_STRING
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.NewPostgresDatabase(connectionString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	schemaName := database.GetSchemaName(*testing)

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, schemaName)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	store := snapshotrepository.NewPostgres(db, schemaName)

	if *export {
		snapshot, err := store.LoadSnapshot(ctx)
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshotrepository.DocumentFromCollection(snapshot.Collection)); err != nil {
			log.Fatalf("Failed to write document: %v", err)
		}
		return
	}

	if flag.NArg() != 1 {
		log.Fatal("Usage: import-snapshot [-testing] <export.json>")
	}
	path := flag.Arg(0)

	snapshot, err := snapshotrepository.LoadFile(path, time.Now)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", path, err)
	}

	if err := store.StoreSnapshot(ctx, snapshot); err != nil {
		log.Fatalf("Failed to store snapshot: %v", err)
	}

	log.Printf(
		"Imported %s: %d games, %d plays, %d players, %d locations (version %s)",
		path,
		len(snapshot.Collection.Games),
		len(snapshot.Collection.Plays),
		len(snapshot.Collection.Players),
		len(snapshot.Collection.Locations),
		snapshot.Version,
	)
}
